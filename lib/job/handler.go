package job

import (
	"fmt"

	"ats-backend/db"
	activitylog "ats-backend/lib/activity-log"
	companystore "ats-backend/lib/company/store"
	jobstore "ats-backend/lib/job/store"
	"ats-backend/lib/utils/apperr"
	"ats-backend/lib/utils/helpers"
	"ats-backend/models"
	jobapimodels "ats-backend/models/api/job"
	dbmodels "ats-backend/models/db"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Provider interface {
	Create(companyID, userID string, data jobapimodels.JobData) (jobapimodels.JobView, error)
	Update(companyID, id, userID string, data jobapimodels.JobData) error
	SetStatus(companyID, id, userID string, newStatus models.JobStatus) error
	Get(companyID, id string) (jobapimodels.JobView, error)
	List(companyID string, filter jobapimodels.JobFilter) ([]jobapimodels.JobView, int64, error)
	Delete(companyID, id, userID string) error
	PublicList() ([]jobapimodels.PublicJobView, error)
	PublicGetBySlug(slug string) (jobapimodels.PublicJobView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:        jobstore.NewInstance(db.DB),
		companyStore: companystore.NewInstance(db.DB),
	}
}

type impl struct {
	store        jobstore.Provider
	companyStore companystore.Provider
}

func (i impl) Create(companyID, userID string, data jobapimodels.JobData) (jobapimodels.JobView, error) {
	if err := data.Validate(); err != nil {
		return jobapimodels.JobView{}, apperr.Validation(err.Error())
	}
	slug, err := i.generateSlug(data.Title)
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	rec := dbmodels.JobPost{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			CompanyID: companyID,
		},
		Title:          data.Title,
		Slug:           slug,
		Status:         models.JobStatusDraft,
		Description:    data.Description,
		Location:       data.Location,
		EmploymentType: data.EmploymentType,
		SalaryMin:      data.SalaryMin,
		SalaryMax:      data.SalaryMax,
		RequiredSkills: data.RequiredSkills,
		ExperienceMin:  data.ExperienceMin,
		CreatedBy:      userID,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	activitylog.Instance.Save(companyID, dbmodels.EntityTypeJob, id, userID, dbmodels.HistoryTypeAdded,
		dbmodels.ActivityChanges{Description: fmt.Sprintf("Job %q created as draft", data.Title)})
	return i.Get(companyID, id)
}

func (i impl) Update(companyID, id, userID string, data jobapimodels.JobData) error {
	if err := data.Validate(); err != nil {
		return apperr.Validation(err.Error())
	}
	rec, err := i.getOwn(companyID, id)
	if err != nil {
		return err
	}
	// the slug never changes after creation, published links stay valid
	updMap := map[string]interface{}{
		"title":           data.Title,
		"description":     data.Description,
		"location":        data.Location,
		"employment_type": data.EmploymentType,
		"salary_min":      data.SalaryMin,
		"salary_max":      data.SalaryMax,
		"required_skills": pq.StringArray(data.RequiredSkills),
		"experience_min":  data.ExperienceMin,
	}
	err = i.store.Update(companyID, id, updMap)
	if err != nil {
		return err
	}
	activitylog.Instance.Save(companyID, dbmodels.EntityTypeJob, id, userID, dbmodels.HistoryTypeUpdate,
		activitylog.UpdateChanges("Job details updated", *rec, updMap))
	return nil
}

func (i impl) SetStatus(companyID, id, userID string, newStatus models.JobStatus) error {
	rec, err := i.getOwn(companyID, id)
	if err != nil {
		return err
	}
	allowed, err := rec.Status.IsAllowStatusChange(newStatus)
	if err != nil {
		return apperr.Validation(err.Error())
	}
	if !allowed {
		// same-status request, nothing to do
		return nil
	}
	err = i.store.Update(companyID, id, map[string]interface{}{"status": newStatus})
	if err != nil {
		return err
	}
	activitylog.Instance.Save(companyID, dbmodels.EntityTypeJob, id, userID, dbmodels.HistoryTypeJobStatus,
		dbmodels.ActivityChanges{
			Description: fmt.Sprintf("Job status changed: %s -> %s", rec.Status.ToHuman(), newStatus.ToHuman()),
			Data: []dbmodels.ActivityChange{
				{Field: "status", OldValue: rec.Status, NewValue: newStatus},
			},
		})
	return nil
}

func (i impl) Get(companyID, id string) (jobapimodels.JobView, error) {
	rec, err := i.getOwn(companyID, id)
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	return jobapimodels.JobConvert(*rec), nil
}

func (i impl) List(companyID string, filter jobapimodels.JobFilter) ([]jobapimodels.JobView, int64, error) {
	rowCount, err := i.store.ListCount(companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	if int64((page-1)*limit) > rowCount {
		return []jobapimodels.JobView{}, rowCount, nil
	}
	list, err := i.store.List(companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]jobapimodels.JobView, 0, len(list))
	for _, rec := range list {
		result = append(result, jobapimodels.JobConvert(rec))
	}
	return result, rowCount, nil
}

// Delete is destructive: the job disappears together with its candidates,
// interviews, offers and cached analyses.
func (i impl) Delete(companyID, id, userID string) error {
	rec, err := i.getOwn(companyID, id)
	if err != nil {
		return err
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return jobstore.NewInstance(tx).DeleteCascade(companyID, id)
	})
	if err != nil {
		return err
	}
	activitylog.Instance.Save(companyID, dbmodels.EntityTypeJob, id, userID, dbmodels.HistoryTypeDelete,
		dbmodels.ActivityChanges{Description: fmt.Sprintf("Job %q deleted with its pipeline", rec.Title)})
	return nil
}

func (i impl) PublicList() ([]jobapimodels.PublicJobView, error) {
	list, err := i.store.ListPublic()
	if err != nil {
		return nil, err
	}
	result := make([]jobapimodels.PublicJobView, 0, len(list))
	for _, rec := range list {
		companyName := ""
		company, err := i.companyStore.GetByID(rec.CompanyID)
		if err == nil && company != nil {
			companyName = company.Name
		}
		result = append(result, jobapimodels.PublicJobConvert(rec, companyName))
	}
	return result, nil
}

func (i impl) PublicGetBySlug(slug string) (jobapimodels.PublicJobView, error) {
	rec, err := i.store.GetBySlug(slug)
	if err != nil {
		return jobapimodels.PublicJobView{}, err
	}
	if rec == nil || rec.Status != models.JobStatusActive {
		// a paused or closed job hides from the public page
		return jobapimodels.PublicJobView{}, apperr.NotFound("job listing not found")
	}
	companyName := ""
	company, err := i.companyStore.GetByID(rec.CompanyID)
	if err == nil && company != nil {
		companyName = company.Name
	}
	return jobapimodels.PublicJobConvert(*rec, companyName), nil
}

func (i impl) getOwn(companyID, id string) (*dbmodels.JobPost, error) {
	rec, err := i.store.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperr.NotFound("job not found")
	}
	return rec, nil
}

// generateSlug derives a unique slug from the title, suffixing a counter on
// collision: senior-engineer, senior-engineer-2, senior-engineer-3.
func (i impl) generateSlug(title string) (string, error) {
	base := helpers.ToSlug(title)
	if base == "" {
		base = "job"
	}
	slug := base
	for n := 2; ; n++ {
		exists, err := i.store.SlugExists(slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
