package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
		// PublicBaseUrl is used in links embedded into candidate emails.
		PublicBaseUrl string `default:"http://localhost:3000" env:"APP_PUBLIC_BASE_URL"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"ats" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret             string `default:"change-me" env:"AUTH_JWT_SECRET"`
		JWTExpireInSec        int    `default:"86400" env:"AUTH_JWT_EXPIRE_SEC"`
		JWTRefreshExpireInSec int    `default:"604800" env:"AUTH_JWT_REFRESH_EXPIRE_SEC"`
		OtpTTLInSec           int    `default:"600" env:"AUTH_OTP_TTL_SEC"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		EmailFrom  string `default:"no-reply@ats.local" env:"SMTP_EMAIL_FROM"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"ats" env:"S3_BUCKET_NAME"`
	}
	ResumeParser struct {
		BaseUrl      string `default:"http://127.0.0.1:8000" env:"RESUME_PARSER_BASE_URL"`
		TimeoutInSec int    `default:"60" env:"RESUME_PARSER_TIMEOUT_SEC"`
	}
	AIScorer struct {
		BaseUrl      string `default:"http://127.0.0.1:8000" env:"AI_SCORER_BASE_URL"`
		TimeoutInSec int    `default:"60" env:"AI_SCORER_TIMEOUT_SEC"`
		// Batch requests go out in chunks with a pause in between to stay
		// under the scoring service rate limit.
		BatchChunkSize   int `default:"5" env:"AI_SCORER_BATCH_CHUNK_SIZE"`
		BatchDelayInMSec int `default:"1000" env:"AI_SCORER_BATCH_DELAY_MSEC"`
	}
	YandexGPT struct {
		IAMToken  string `default:"" env:"YANDEX_GPT_IAM_TOKEN"`
		CatalogID string `default:"" env:"YANDEX_GPT_CATALOG_ID"`
	}
	Billing struct {
		PlacementFeePercent float64 `default:"20" env:"BILLING_PLACEMENT_FEE_PERCENT"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
