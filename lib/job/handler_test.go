package job

import (
	"fmt"
	"testing"

	activitylog "ats-backend/lib/activity-log"
	activitylogstore "ats-backend/lib/activity-log/store"
	"ats-backend/lib/utils/apperr"
	"ats-backend/models"
	candidateapimodels "ats-backend/models/api/candidate"
	jobapimodels "ats-backend/models/api/job"
	dbmodels "ats-backend/models/db"

	"github.com/stretchr/testify/require"
)

type fakeJobStore struct {
	recs   map[string]*dbmodels.JobPost
	nextID int
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{recs: map[string]*dbmodels.JobPost{}}
}

func (f *fakeJobStore) Create(rec dbmodels.JobPost) (string, error) {
	f.nextID++
	rec.ID = fmt.Sprintf("job-%d", f.nextID)
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}
func (f *fakeJobStore) Update(companyID, id string, updMap map[string]interface{}) error {
	rec := f.recs[id]
	if rec == nil {
		return nil
	}
	if status, ok := updMap["status"]; ok {
		rec.Status = status.(models.JobStatus)
	}
	if title, ok := updMap["title"]; ok {
		rec.Title = title.(string)
	}
	return nil
}
func (f *fakeJobStore) GetByID(companyID, id string) (*dbmodels.JobPost, error) {
	rec := f.recs[id]
	if rec == nil || rec.CompanyID != companyID {
		return nil, nil
	}
	return rec, nil
}
func (f *fakeJobStore) GetBySlug(slug string) (*dbmodels.JobPost, error) {
	for _, rec := range f.recs {
		if rec.Slug == slug {
			return rec, nil
		}
	}
	return nil, nil
}
func (f *fakeJobStore) SlugExists(slug string) (bool, error) {
	rec, _ := f.GetBySlug(slug)
	return rec != nil, nil
}
func (f *fakeJobStore) ListCount(companyID string, filter jobapimodels.JobFilter) (int64, error) {
	return int64(len(f.recs)), nil
}
func (f *fakeJobStore) List(companyID string, filter jobapimodels.JobFilter) ([]dbmodels.JobPost, error) {
	list := make([]dbmodels.JobPost, 0, len(f.recs))
	for _, rec := range f.recs {
		list = append(list, *rec)
	}
	return list, nil
}
func (f *fakeJobStore) ListPublic() ([]dbmodels.JobPost, error) {
	list := []dbmodels.JobPost{}
	for _, rec := range f.recs {
		if rec.Status == models.JobStatusActive {
			list = append(list, *rec)
		}
	}
	return list, nil
}
func (f *fakeJobStore) DeleteCascade(companyID, id string) error {
	delete(f.recs, id)
	return nil
}

type fakeCompanyStore struct{}

func (f fakeCompanyStore) Create(rec dbmodels.Company) (string, error) { return "", nil }
func (f fakeCompanyStore) Update(id string, updMap map[string]interface{}) error {
	return nil
}
func (f fakeCompanyStore) GetByID(id string) (*dbmodels.Company, error) {
	company := &dbmodels.Company{Name: "Acme", IsActive: true}
	company.ID = id
	return company, nil
}
func (f fakeCompanyStore) List() ([]dbmodels.Company, error) { return nil, nil }

type noopActivityLog struct{}

func (noopActivityLog) List(companyID, entityType, entityID string, filter candidateapimodels.ActivityLogFilter) ([]candidateapimodels.ActivityLogView, int64, error) {
	return nil, 0, nil
}
func (noopActivityLog) Save(companyID, entityType, entityID, userID string, action dbmodels.ActionType, changes dbmodels.ActivityChanges) {
}
func (noopActivityLog) SaveTx(store activitylogstore.Provider, companyID, entityType, entityID, userID string, action dbmodels.ActionType, changes dbmodels.ActivityChanges) error {
	return nil
}

func newTestHandler() (impl, *fakeJobStore) {
	activitylog.Instance = noopActivityLog{}
	store := newFakeJobStore()
	return impl{store: store, companyStore: fakeCompanyStore{}}, store
}

func TestCreate(t *testing.T) {
	t.Run(`slug derives from the title`, func(t *testing.T) {
		handler, _ := newTestHandler()
		view, err := handler.Create("company-1", "user-1", jobapimodels.JobData{Title: "Senior Go Engineer"})
		require.Nil(t, err)
		require.Equal(t, "senior-go-engineer", view.Slug)
		require.Equal(t, models.JobStatusDraft, view.Status)
	})

	t.Run(`slug collision gets a numeric suffix`, func(t *testing.T) {
		handler, _ := newTestHandler()
		for idx, want := range []string{"senior-go-engineer", "senior-go-engineer-2", "senior-go-engineer-3"} {
			view, err := handler.Create("company-1", "user-1", jobapimodels.JobData{Title: "Senior Go Engineer"})
			require.Nil(t, err, "create %d", idx+1)
			require.Equal(t, want, view.Slug)
		}
	})

	t.Run(`missing title rejected`, func(t *testing.T) {
		handler, _ := newTestHandler()
		_, err := handler.Create("company-1", "user-1", jobapimodels.JobData{})
		require.NotNil(t, err)
		require.True(t, apperr.IsValidation(err))
	})
}

func TestSetStatus(t *testing.T) {
	t.Run(`draft can go live, closed is terminal`, func(t *testing.T) {
		handler, store := newTestHandler()
		view, err := handler.Create("company-1", "user-1", jobapimodels.JobData{Title: "Backend Developer"})
		require.Nil(t, err)

		require.Nil(t, handler.SetStatus("company-1", view.ID, "user-1", models.JobStatusActive))
		require.Equal(t, models.JobStatusActive, store.recs[view.ID].Status)

		require.Nil(t, handler.SetStatus("company-1", view.ID, "user-1", models.JobStatusClosed))
		err = handler.SetStatus("company-1", view.ID, "user-1", models.JobStatusActive)
		require.NotNil(t, err)
		require.True(t, apperr.IsValidation(err))
	})

	t.Run(`same status is a no-op`, func(t *testing.T) {
		handler, store := newTestHandler()
		view, err := handler.Create("company-1", "user-1", jobapimodels.JobData{Title: "Backend Developer"})
		require.Nil(t, err)
		require.Nil(t, handler.SetStatus("company-1", view.ID, "user-1", models.JobStatusDraft))
		require.Equal(t, models.JobStatusDraft, store.recs[view.ID].Status)
	})
}

func TestPublicGetBySlug(t *testing.T) {
	handler, store := newTestHandler()
	view, err := handler.Create("company-1", "user-1", jobapimodels.JobData{Title: "Data Engineer"})
	require.Nil(t, err)

	t.Run(`draft job hides from the public page`, func(t *testing.T) {
		_, err := handler.PublicGetBySlug(view.Slug)
		require.NotNil(t, err)
		require.True(t, apperr.IsNotFound(err))
	})

	t.Run(`active job is visible with the company name`, func(t *testing.T) {
		store.recs[view.ID].Status = models.JobStatusActive
		public, err := handler.PublicGetBySlug(view.Slug)
		require.Nil(t, err)
		require.Equal(t, "Data Engineer", public.Title)
		require.Equal(t, "Acme", public.CompanyName)
	})
}
