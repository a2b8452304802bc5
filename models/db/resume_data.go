package dbmodels

import (
	"gorm.io/datatypes"
)

// ResumeData is a parsed resume that has not yet been promoted into a
// CandidateApplication (the recruiter-facing side of bulk import).
type ResumeData struct {
	BaseCompanyModel
	FileName        string `gorm:"type:varchar(255)"`
	FileID          string `gorm:"type:varchar(36)"`
	Name            string `gorm:"type:varchar(255)"`
	Email           string `gorm:"type:varchar(255)"`
	Phone           string `gorm:"type:varchar(255)"`
	TotalExperience int    // months
	// Parsed keeps the raw structured payload from the parsing service.
	Parsed datatypes.JSON `gorm:"type:jsonb"`
}
