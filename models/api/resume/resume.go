package resumeapimodels

import (
	"strings"

	apimodels "ats-backend/models/api"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
)

// ParsedResume is the structured payload returned by the external parsing
// service for one file.
type ParsedResume struct {
	Name            string   `json:"Name"`
	Email           string   `json:"Email"`
	Phone           string   `json:"Phone"`
	Skills          []string `json:"Skills"`
	Experience      []string `json:"Experience"`
	Education       []string `json:"Education"`
	TotalExperience int      `json:"TotalExperience"` // months
}

type ApplyRequest struct {
	FirstName      string `form:"first_name" json:"first_name"`
	LastName       string `form:"last_name" json:"last_name"`
	Email          string `form:"email" json:"email"`
	Phone          string `form:"phone" json:"phone"`
	CoverLetter    string `form:"cover_letter" json:"cover_letter"`
	ExpectedSalary int    `form:"expected_salary" json:"expected_salary"`
}

func (r ApplyRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" {
		return errors.New("first_name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(r.Email, "@") {
		return errors.New("email is malformed")
	}
	return nil
}

type ApplyResponse struct {
	ApplicationID string `json:"application_id"`
	// ParseWarning is set when the resume could not be parsed; the
	// application is still accepted with the form data only.
	ParseWarning string `json:"parse_warning,omitempty"`
}

type ResumeDataFilter struct {
	apimodels.Pagination
	Search string `json:"search"`
}

type ResumeDataView struct {
	ID              string `json:"id"`
	FileName        string `json:"file_name"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	TotalExperience int    `json:"total_experience"`
	CreatedAt       string `json:"created_at"`
}

func Convert(rec dbmodels.ResumeData) ResumeDataView {
	return ResumeDataView{
		ID:              rec.ID,
		FileName:        rec.FileName,
		Name:            rec.Name,
		Email:           rec.Email,
		Phone:           rec.Phone,
		TotalExperience: rec.TotalExperience,
		CreatedAt:       rec.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// BulkImportItem reports the outcome for one uploaded file. Failed files are
// reported individually and never abort the batch.
type BulkImportItem struct {
	FileName     string `json:"file_name"`
	Status       string `json:"status"` // imported/error
	ResumeDataID string `json:"resume_data_id,omitempty"`
	Error        string `json:"error,omitempty"`
}

type BulkImportResponse struct {
	TotalFiles    int              `json:"total_files"`
	ImportedFiles int              `json:"imported_files"`
	FailedFiles   int              `json:"failed_files"`
	Results       []BulkImportItem `json:"results"`
}
