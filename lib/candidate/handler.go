package candidate

import (
	"encoding/json"
	"fmt"
	"strings"

	"ats-backend/db"
	activitylog "ats-backend/lib/activity-log"
	candidatestore "ats-backend/lib/candidate/store"
	resumestore "ats-backend/lib/resume/store"
	"ats-backend/lib/utils/apperr"
	"ats-backend/models"
	candidateapimodels "ats-backend/models/api/candidate"
	resumeapimodels "ats-backend/models/api/resume"
	dbmodels "ats-backend/models/db"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(companyID, userID string, data candidateapimodels.CandidateData) (candidateapimodels.CandidateView, error)
	Update(companyID, id, userID string, data candidateapimodels.CandidateData) error
	Get(companyID, id string) (candidateapimodels.CandidateView, error)
	List(companyID string, filter candidateapimodels.CandidateFilter) ([]candidateapimodels.CandidateView, int64, error)
	Delete(companyID, id, userID string) error
	CreateFromResume(companyID, userID string, req candidateapimodels.CreateFromResumeRequest) (candidateapimodels.CandidateView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:       candidatestore.NewInstance(db.DB),
		resumeStore: resumestore.NewInstance(db.DB),
	}
}

type impl struct {
	store       candidatestore.Provider
	resumeStore resumestore.Provider
}

func (i impl) Create(companyID, userID string, data candidateapimodels.CandidateData) (candidateapimodels.CandidateView, error) {
	if err := data.Validate(); err != nil {
		return candidateapimodels.CandidateView{}, apperr.Validation(err.Error())
	}
	rec := dbmodels.CandidateApplication{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			CompanyID: companyID,
		},
		JobID:           data.JobID,
		Status:          models.StageNewApplication,
		Source:          models.SourceManual,
		FirstName:       data.FirstName,
		LastName:        data.LastName,
		Email:           data.Email,
		Phone:           data.Phone,
		Skills:          data.Skills,
		Education:       data.Education,
		TotalExperience: data.TotalExperience,
		ExpectedSalary:  data.ExpectedSalary,
		CoverLetter:     data.CoverLetter,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return candidateapimodels.CandidateView{}, err
	}
	activitylog.Instance.Save(companyID, dbmodels.EntityTypeCandidate, id, userID, dbmodels.HistoryTypeAdded,
		dbmodels.ActivityChanges{Description: fmt.Sprintf("Candidate %s added manually", rec.GetFullName())})
	return i.Get(companyID, id)
}

func (i impl) Update(companyID, id, userID string, data candidateapimodels.CandidateData) error {
	if err := data.Validate(); err != nil {
		return apperr.Validation(err.Error())
	}
	rec, err := i.getOwn(companyID, id)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"job_id":           data.JobID,
		"first_name":       data.FirstName,
		"last_name":        data.LastName,
		"email":            data.Email,
		"phone":            data.Phone,
		"skills":           pq.StringArray(data.Skills),
		"education":        data.Education,
		"total_experience": data.TotalExperience,
		"expected_salary":  data.ExpectedSalary,
		"cover_letter":     data.CoverLetter,
	}
	err = i.store.Update(companyID, id, updMap)
	if err != nil {
		return err
	}
	activitylog.Instance.Save(companyID, dbmodels.EntityTypeCandidate, id, userID, dbmodels.HistoryTypeUpdate,
		activitylog.UpdateChanges("Candidate profile updated", *rec, updMap))
	return nil
}

func (i impl) Get(companyID, id string) (candidateapimodels.CandidateView, error) {
	rec, err := i.getOwn(companyID, id)
	if err != nil {
		return candidateapimodels.CandidateView{}, err
	}
	return candidateapimodels.Convert(*rec), nil
}

func (i impl) List(companyID string, filter candidateapimodels.CandidateFilter) ([]candidateapimodels.CandidateView, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, apperr.Validation(err.Error())
	}
	rowCount, err := i.store.ListCount(companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	if int64((page-1)*limit) > rowCount {
		return []candidateapimodels.CandidateView{}, rowCount, nil
	}
	list, err := i.store.List(companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]candidateapimodels.CandidateView, 0, len(list))
	for _, rec := range list {
		result = append(result, candidateapimodels.Convert(rec))
	}
	return result, rowCount, nil
}

// Delete removes the candidate with interviews, offers, hires and cached
// analyses in one transaction.
func (i impl) Delete(companyID, id, userID string) error {
	rec, err := i.getOwn(companyID, id)
	if err != nil {
		return err
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return candidatestore.NewInstance(tx).Delete(companyID, id)
	})
	if err != nil {
		return err
	}
	activitylog.Instance.Save(companyID, dbmodels.EntityTypeCandidate, id, userID, dbmodels.HistoryTypeDelete,
		dbmodels.ActivityChanges{Description: fmt.Sprintf("Candidate %s deleted", rec.GetFullName())})
	return nil
}

// CreateFromResume promotes an imported resume into a pipeline candidate.
// Each resume may be promoted at most once.
func (i impl) CreateFromResume(companyID, userID string, req candidateapimodels.CreateFromResumeRequest) (candidateapimodels.CandidateView, error) {
	if err := req.Validate(); err != nil {
		return candidateapimodels.CandidateView{}, apperr.Validation(err.Error())
	}
	resume, err := i.resumeStore.GetByID(companyID, req.ResumeDataID)
	if err != nil {
		return candidateapimodels.CandidateView{}, err
	}
	if resume == nil {
		return candidateapimodels.CandidateView{}, apperr.NotFound("resume not found")
	}
	existing, err := i.store.GetByResumeDataID(companyID, req.ResumeDataID)
	if err != nil {
		return candidateapimodels.CandidateView{}, err
	}
	if existing != nil {
		return candidateapimodels.CandidateView{}, apperr.Conflict("this resume is already promoted to a candidate")
	}

	firstName, lastName := splitName(resume.Name)
	rec := dbmodels.CandidateApplication{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			CompanyID: companyID,
		},
		JobID:           req.JobID,
		ResumeDataID:    &resume.ID,
		Status:          models.StageNewApplication,
		Source:          models.SourceBulkImport,
		FirstName:       firstName,
		LastName:        lastName,
		Email:           resume.Email,
		Phone:           resume.Phone,
		TotalExperience: resume.TotalExperience,
		ResumeFileID:    resume.FileID,
	}
	if parsed := parsedPayload(resume); parsed != nil {
		rec.Skills = parsed.Skills
		rec.Education = strings.Join(parsed.Education, "; ")
	}
	id, err := i.store.Create(rec)
	if err != nil {
		// the unique index on resume_data_id catches a concurrent promotion
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return candidateapimodels.CandidateView{}, apperr.Conflict("this resume is already promoted to a candidate")
		}
		return candidateapimodels.CandidateView{}, err
	}
	activitylog.Instance.Save(companyID, dbmodels.EntityTypeCandidate, id, userID, dbmodels.HistoryTypeAdded,
		dbmodels.ActivityChanges{Description: fmt.Sprintf("Candidate %s created from imported resume %q", resume.Name, resume.FileName)})
	return i.Get(companyID, id)
}

func (i impl) getOwn(companyID, id string) (*dbmodels.CandidateApplication, error) {
	rec, err := i.store.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperr.NotFound("candidate not found")
	}
	return rec, nil
}

func parsedPayload(resume *dbmodels.ResumeData) *resumeapimodels.ParsedResume {
	if len(resume.Parsed) == 0 {
		return nil
	}
	parsed := resumeapimodels.ParsedResume{}
	if err := json.Unmarshal(resume.Parsed, &parsed); err != nil {
		return nil
	}
	return &parsed
}

func splitName(fullName string) (firstName, lastName string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "Unknown", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
