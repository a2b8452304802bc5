package dbmodels

import (
	"time"

	"ats-backend/models"
)

type Interview struct {
	BaseCompanyModel
	CandidateID string                `gorm:"type:varchar(36);index"`
	Candidate   *CandidateApplication `gorm:"foreignKey:CandidateID"`
	JobID       string                `gorm:"type:varchar(36);index"`
	Job         *JobPost              `gorm:"foreignKey:JobID"`
	Type        models.InterviewType   `gorm:"type:varchar(50)"`
	Mode        models.InterviewMode   `gorm:"type:varchar(50)"`
	Status      models.InterviewStatus `gorm:"type:varchar(50);index"`
	Date        time.Time
	TimeSlot    string `gorm:"type:varchar(20)"` // HH:MM
	Interviewer string `gorm:"type:varchar(255)"`
	Notes       string
	Feedback    string
}
