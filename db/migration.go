package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "ats-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	migrations := []struct {
		name  string
		model interface{}
	}{
		{"Company", &dbmodels.Company{}},
		{"User", &dbmodels.User{}},
		{"SuperAdminUser", &dbmodels.SuperAdminUser{}},
		{"OtpCode", &dbmodels.OtpCode{}},
		{"JobPost", &dbmodels.JobPost{}},
		{"ResumeData", &dbmodels.ResumeData{}},
		{"CandidateApplication", &dbmodels.CandidateApplication{}},
		{"Interview", &dbmodels.Interview{}},
		{"Offer", &dbmodels.Offer{}},
		{"Hire", &dbmodels.Hire{}},
		{"ActivityLog", &dbmodels.ActivityLog{}},
		{"AIAnalysisResult", &dbmodels.AIAnalysisResult{}},
		{"FileStorage", &dbmodels.FileStorage{}},
		{"PushData", &dbmodels.PushData{}},
	}
	for _, m := range migrations {
		if err := DB.AutoMigrate(m.model); err != nil {
			return errors.Wrapf(err, "migration of %s failed", m.name)
		}
	}
	log.Info("migrations finished")
	return nil
}
