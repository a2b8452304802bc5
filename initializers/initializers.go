package initializers

import (
	"context"

	"ats-backend/config"
	"ats-backend/fiberlog"
	activitylog "ats-backend/lib/activity-log"
	aihandler "ats-backend/lib/ai"
	"ats-backend/lib/analytics"
	authhandler "ats-backend/lib/auth"
	candidatehandler "ats-backend/lib/candidate"
	companyhandler "ats-backend/lib/company"
	companyusers "ats-backend/lib/company/users"
	xlsexport "ats-backend/lib/export/xls"
	filestorage "ats-backend/lib/file-storage"
	interviewhandler "ats-backend/lib/interview"
	jobhandler "ats-backend/lib/job"
	"ats-backend/lib/notification"
	pipelinehandler "ats-backend/lib/pipeline"
	resumehandler "ats-backend/lib/resume"
	connectionhub "ats-backend/lib/ws/hub/connection-hub"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, reading configuration from the environment")
	}
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	connectionhub.Init()
	filestorage.NewHandler()
	notification.NewHandler()
	activitylog.NewHandler()
	companyhandler.NewHandler()
	companyusers.NewHandler()
	authhandler.NewHandler()
	jobhandler.NewHandler()
	candidatehandler.NewHandler()
	pipelinehandler.NewHandler()
	interviewhandler.NewHandler()
	resumehandler.NewHandler()
	aihandler.NewHandler()
	xlsexport.NewHandler()
	analytics.NewHandler()
}
