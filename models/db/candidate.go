package dbmodels

import (
	"fmt"

	"ats-backend/models"

	"github.com/lib/pq"
)

// CandidateApplication is a candidate on the hiring board. JobID is nullable:
// a candidate without a job belongs to the company's general pool.
type CandidateApplication struct {
	BaseCompanyModel
	JobID *string  `gorm:"type:varchar(36);index"`
	Job   *JobPost `gorm:"foreignKey:JobID"`
	// ResumeDataID links back to the imported resume the candidate was
	// promoted from. The unique index holds the at-most-one-candidate-per-
	// resume rule even under concurrent promotions; NULLs stay repeatable.
	ResumeDataID    *string               `gorm:"type:varchar(36);uniqueIndex"`
	Status          models.PipelineStatus  `gorm:"type:varchar(50);index" comment:"Stage"`
	Source          models.CandidateSource `gorm:"type:varchar(50)"`
	FirstName       string                 `gorm:"type:varchar(255)" comment:"First name"`
	LastName        string                 `gorm:"type:varchar(255)" comment:"Last name"`
	Email           string                 `gorm:"type:varchar(255);index" comment:"Email"`
	Phone           string                 `gorm:"type:varchar(255)" comment:"Phone"`
	Skills          pq.StringArray         `gorm:"type:text[]" comment:"Skills"`
	Education       string                 `comment:"Education"`
	TotalExperience int                    `comment:"Experience in months"`
	ExpectedSalary  int                    `comment:"Expected salary"`
	ResumeFileID    string                 `gorm:"type:varchar(36)"`
	CoverLetter     string                 `comment:"Cover letter"`
}

func (c CandidateApplication) GetFullName() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}

type CandidateFilter struct {
	JobID  string                `json:"job_id"`
	Status models.PipelineStatus `json:"status"`
	Search string                `json:"search"`
}
