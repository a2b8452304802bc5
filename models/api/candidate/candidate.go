package candidateapimodels

import (
	"strings"

	"ats-backend/models"
	apimodels "ats-backend/models/api"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
)

type CandidateFilter struct {
	apimodels.Pagination
	JobID  string                `json:"job_id"`
	Status models.PipelineStatus `json:"status"`
	Search string                `json:"search"`
}

func (f CandidateFilter) Validate() error {
	if f.Status != "" && !f.Status.IsValid() {
		return errors.New("unknown pipeline stage")
	}
	return nil
}

type CandidateView struct {
	ID              string                `json:"id"`
	JobID           *string               `json:"job_id,omitempty"`
	JobTitle        string                `json:"job_title,omitempty"`
	Status          models.PipelineStatus `json:"status"`
	StatusName      string                `json:"status_name"`
	StageOrder      int                   `json:"stage_order"`
	Source          models.CandidateSource `json:"source"`
	FirstName       string                `json:"first_name"`
	LastName        string                `json:"last_name"`
	Email           string                `json:"email"`
	Phone           string                `json:"phone"`
	Skills          []string              `json:"skills"`
	Education       string                `json:"education"`
	TotalExperience int                   `json:"total_experience"`
	ExpectedSalary  int                   `json:"expected_salary"`
	ResumeFileID    string                `json:"resume_file_id,omitempty"`
}

func Convert(rec dbmodels.CandidateApplication) CandidateView {
	view := CandidateView{
		ID:              rec.ID,
		JobID:           rec.JobID,
		Status:          rec.Status,
		StatusName:      rec.Status.ToHuman(),
		StageOrder:      rec.Status.Order(),
		Source:          rec.Source,
		FirstName:       rec.FirstName,
		LastName:        rec.LastName,
		Email:           rec.Email,
		Phone:           rec.Phone,
		Skills:          rec.Skills,
		Education:       rec.Education,
		TotalExperience: rec.TotalExperience,
		ExpectedSalary:  rec.ExpectedSalary,
		ResumeFileID:    rec.ResumeFileID,
	}
	if rec.Job != nil {
		view.JobTitle = rec.Job.Title
	}
	return view
}

type CandidateData struct {
	JobID           *string  `json:"job_id"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Skills          []string `json:"skills"`
	Education       string   `json:"education"`
	TotalExperience int      `json:"total_experience"` // months
	ExpectedSalary  int      `json:"expected_salary"`
	CoverLetter     string   `json:"cover_letter"`
}

func (d CandidateData) Validate() error {
	if strings.TrimSpace(d.FirstName) == "" {
		return errors.New("first_name is required")
	}
	if strings.TrimSpace(d.Email) == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(d.Email, "@") {
		return errors.New("email is malformed")
	}
	return nil
}

type CreateFromResumeRequest struct {
	ResumeDataID string  `json:"resume_data_id"`
	JobID        *string `json:"job_id"`
}

func (r CreateFromResumeRequest) Validate() error {
	if strings.TrimSpace(r.ResumeDataID) == "" {
		return errors.New("resume_data_id is required")
	}
	return nil
}

type TransitionRequest struct {
	FromStatus models.PipelineStatus `json:"from_status"`
	ToStatus   models.PipelineStatus `json:"to_status"`
	Reason     string                `json:"reason"`
	// Salary overrides the candidate's expected salary in the hire/offer
	// records produced by terminal transitions.
	Salary int `json:"salary"`
}

func (r TransitionRequest) Validate() error {
	if !r.FromStatus.IsValid() {
		return errors.New("unknown from_status")
	}
	if !r.ToStatus.IsValid() {
		return errors.New("unknown to_status")
	}
	return nil
}

type ActivityLogFilter struct {
	apimodels.Pagination
}

type ActivityLogView struct {
	ID          string `json:"id"`
	EntityType  string `json:"entity_type"`
	EntityID    string `json:"entity_id"`
	UserName    string `json:"user_name"`
	ActionType  string `json:"action_type"`
	Description string `json:"description"`
	Reason      string `json:"reason,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func ActivityLogConvert(rec dbmodels.ActivityLog) ActivityLogView {
	return ActivityLogView{
		ID:          rec.ID,
		EntityType:  rec.EntityType,
		EntityID:    rec.EntityID,
		UserName:    rec.UserName,
		ActionType:  string(rec.ActionType),
		Description: rec.Changes.Description,
		Reason:      rec.Changes.Reason,
		CreatedAt:   rec.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
