package interviewapimodels

import (
	"strings"
	"time"

	"ats-backend/models"
	apimodels "ats-backend/models/api"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
)

type ScheduleRequest struct {
	CandidateID string               `json:"candidate_id"`
	JobID       string               `json:"job_id"`
	Date        string               `json:"date"` // YYYY-MM-DD
	TimeSlot    string               `json:"time"` // HH:MM
	Type        models.InterviewType `json:"type"`
	Mode        models.InterviewMode `json:"mode"`
	Interviewer string               `json:"interviewer"`
	Notes       string               `json:"notes"`
}

func (r ScheduleRequest) Validate() error {
	if strings.TrimSpace(r.CandidateID) == "" {
		return errors.New("candidate_id is required")
	}
	if strings.TrimSpace(r.JobID) == "" {
		return errors.New("job_id is required")
	}
	if _, err := r.ParseDate(); err != nil {
		return errors.New("date must be YYYY-MM-DD")
	}
	if !r.Type.IsValid() {
		return errors.New("unknown interview type")
	}
	if !r.Mode.IsValid() {
		return errors.New("unknown interview mode")
	}
	return nil
}

func (r ScheduleRequest) ParseDate() (time.Time, error) {
	return time.Parse("2006-01-02", r.Date)
}

type BulkScheduleRequest struct {
	CandidateIDs []string             `json:"candidate_ids"`
	JobID        string               `json:"job_id"`
	Date         string               `json:"date"`
	TimeSlot     string               `json:"time"`
	Type         models.InterviewType `json:"type"`
	Mode         models.InterviewMode `json:"mode"`
	Interviewer  string               `json:"interviewer"`
	Notes        string               `json:"notes"`
}

func (r BulkScheduleRequest) Validate() error {
	if len(r.CandidateIDs) == 0 {
		return errors.New("candidate_ids is required")
	}
	single := ScheduleRequest{
		CandidateID: r.CandidateIDs[0],
		JobID:       r.JobID,
		Date:        r.Date,
		TimeSlot:    r.TimeSlot,
		Type:        r.Type,
		Mode:        r.Mode,
		Interviewer: r.Interviewer,
		Notes:       r.Notes,
	}
	return single.Validate()
}

func (r BulkScheduleRequest) ForCandidate(candidateID string) ScheduleRequest {
	return ScheduleRequest{
		CandidateID: candidateID,
		JobID:       r.JobID,
		Date:        r.Date,
		TimeSlot:    r.TimeSlot,
		Type:        r.Type,
		Mode:        r.Mode,
		Interviewer: r.Interviewer,
		Notes:       r.Notes,
	}
}

// BulkScheduleItem is the per-candidate outcome; one failure never aborts
// the rest of the batch.
type BulkScheduleItem struct {
	CandidateID string `json:"candidate_id"`
	Status      string `json:"status"` // scheduled/error
	InterviewID string `json:"interview_id,omitempty"`
	Error       string `json:"error,omitempty"`
}

type InterviewFilter struct {
	apimodels.Pagination
	CandidateID string                 `json:"candidate_id"`
	JobID       string                 `json:"job_id"`
	Status      models.InterviewStatus `json:"status"`
}

type RescheduleRequest struct {
	Date     string `json:"date"` // YYYY-MM-DD
	TimeSlot string `json:"time"` // HH:MM
}

func (r RescheduleRequest) Validate() error {
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return errors.New("date must be YYYY-MM-DD")
	}
	return nil
}

func (r RescheduleRequest) ParseDate() (time.Time, error) {
	return time.Parse("2006-01-02", r.Date)
}

type FeedbackRequest struct {
	Status   models.InterviewStatus `json:"status"`
	Feedback string                 `json:"feedback"`
}

func (r FeedbackRequest) Validate() error {
	if !r.Status.IsValid() {
		return errors.New("unknown interview status")
	}
	return nil
}

type InterviewView struct {
	ID            string                 `json:"id"`
	CandidateID   string                 `json:"candidate_id"`
	CandidateName string                 `json:"candidate_name,omitempty"`
	JobID         string                 `json:"job_id"`
	JobTitle      string                 `json:"job_title,omitempty"`
	Type          models.InterviewType   `json:"type"`
	TypeName      string                 `json:"type_name"`
	Mode          models.InterviewMode   `json:"mode"`
	Status        models.InterviewStatus `json:"status"`
	Date          string                 `json:"date"`
	TimeSlot      string                 `json:"time"`
	Interviewer   string                 `json:"interviewer"`
	Notes         string                 `json:"notes,omitempty"`
	Feedback      string                 `json:"feedback,omitempty"`
}

func Convert(rec dbmodels.Interview) InterviewView {
	view := InterviewView{
		ID:          rec.ID,
		CandidateID: rec.CandidateID,
		JobID:       rec.JobID,
		Type:        rec.Type,
		TypeName:    rec.Type.ToHuman(),
		Mode:        rec.Mode,
		Status:      rec.Status,
		Date:        rec.Date.Format("2006-01-02"),
		TimeSlot:    rec.TimeSlot,
		Interviewer: rec.Interviewer,
		Notes:       rec.Notes,
		Feedback:    rec.Feedback,
	}
	if rec.Candidate != nil {
		view.CandidateName = rec.Candidate.GetFullName()
	}
	if rec.Job != nil {
		view.JobTitle = rec.Job.Title
	}
	return view
}
