package dbmodels

import (
	"ats-backend/models"

	"github.com/lib/pq"
)

type JobPost struct {
	BaseCompanyModel
	Title          string           `gorm:"type:varchar(255)" comment:"Title"`
	Slug           string           `gorm:"type:varchar(255);uniqueIndex"`
	Status         models.JobStatus `gorm:"type:varchar(50);index" comment:"Status"`
	Description    string           `comment:"Description"`
	Location       string           `gorm:"type:varchar(255)" comment:"Location"`
	EmploymentType string           `gorm:"type:varchar(100)" comment:"Employment type"`
	SalaryMin      int              `comment:"Salary from"`
	SalaryMax      int              `comment:"Salary to"`
	RequiredSkills pq.StringArray   `gorm:"type:text[]" comment:"Required skills"`
	ExperienceMin  int              `comment:"Minimum experience"` // years
	CreatedBy      string           `gorm:"type:varchar(36)"`
	Author         *User            `gorm:"foreignKey:CreatedBy"`
}
