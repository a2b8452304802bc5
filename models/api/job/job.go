package jobapimodels

import (
	"strings"

	"ats-backend/models"
	dbmodels "ats-backend/models/db"
	apimodels "ats-backend/models/api"

	"github.com/pkg/errors"
)

type JobData struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employment_type"`
	SalaryMin      int      `json:"salary_min"`
	SalaryMax      int      `json:"salary_max"`
	RequiredSkills []string `json:"required_skills"`
	ExperienceMin  int      `json:"experience_min"`
}

func (d JobData) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("job title is required")
	}
	if d.SalaryMin < 0 || d.SalaryMax < 0 {
		return errors.New("salary must not be negative")
	}
	if d.SalaryMax != 0 && d.SalaryMin > d.SalaryMax {
		return errors.New("salary_min must not exceed salary_max")
	}
	return nil
}

type JobStatusRequest struct {
	Status models.JobStatus `json:"status"`
}

func (r JobStatusRequest) Validate() error {
	if !r.Status.IsValid() {
		return errors.New("unknown job status")
	}
	return nil
}

type JobFilter struct {
	apimodels.Pagination
	Status models.JobStatus `json:"status"`
	Search string           `json:"search"`
}

type JobView struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Slug           string           `json:"slug"`
	Status         models.JobStatus `json:"status"`
	StatusName     string           `json:"status_name"`
	Description    string           `json:"description"`
	Location       string           `json:"location"`
	EmploymentType string           `json:"employment_type"`
	SalaryMin      int              `json:"salary_min"`
	SalaryMax      int              `json:"salary_max"`
	RequiredSkills []string         `json:"required_skills"`
	ExperienceMin  int              `json:"experience_min"`
	AuthorName     string           `json:"author_name,omitempty"`
}

func JobConvert(rec dbmodels.JobPost) JobView {
	view := JobView{
		ID:             rec.ID,
		Title:          rec.Title,
		Slug:           rec.Slug,
		Status:         rec.Status,
		StatusName:     rec.Status.ToHuman(),
		Description:    rec.Description,
		Location:       rec.Location,
		EmploymentType: rec.EmploymentType,
		SalaryMin:      rec.SalaryMin,
		SalaryMax:      rec.SalaryMax,
		RequiredSkills: rec.RequiredSkills,
		ExperienceMin:  rec.ExperienceMin,
	}
	if rec.Author != nil {
		view.AuthorName = rec.Author.GetFullName()
	}
	return view
}

// PublicJobView is the unauthenticated listing-page shape. No tenant or
// author internals leak through it.
type PublicJobView struct {
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	CompanyName    string   `json:"company_name"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employment_type"`
	SalaryMin      int      `json:"salary_min"`
	SalaryMax      int      `json:"salary_max"`
	RequiredSkills []string `json:"required_skills"`
}

func PublicJobConvert(rec dbmodels.JobPost, companyName string) PublicJobView {
	return PublicJobView{
		Title:          rec.Title,
		Slug:           rec.Slug,
		CompanyName:    companyName,
		Description:    rec.Description,
		Location:       rec.Location,
		EmploymentType: rec.EmploymentType,
		SalaryMin:      rec.SalaryMin,
		SalaryMax:      rec.SalaryMax,
		RequiredSkills: rec.RequiredSkills,
	}
}
