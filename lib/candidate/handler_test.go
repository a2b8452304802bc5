package candidate

import (
	"fmt"
	"testing"

	activitylog "ats-backend/lib/activity-log"
	activitylogstore "ats-backend/lib/activity-log/store"
	"ats-backend/lib/utils/apperr"
	"ats-backend/models"
	candidateapimodels "ats-backend/models/api/candidate"
	resumeapimodels "ats-backend/models/api/resume"
	dbmodels "ats-backend/models/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCandidateStore struct {
	recs       map[string]*dbmodels.CandidateApplication
	nextID     int
	createFail error
}

func newFakeCandidateStore() *fakeCandidateStore {
	return &fakeCandidateStore{recs: map[string]*dbmodels.CandidateApplication{}}
}

func (f *fakeCandidateStore) Create(rec dbmodels.CandidateApplication) (string, error) {
	if f.createFail != nil {
		return "", f.createFail
	}
	if rec.ResumeDataID != nil {
		for _, existing := range f.recs {
			if existing.ResumeDataID != nil && *existing.ResumeDataID == *rec.ResumeDataID {
				return "", gorm.ErrDuplicatedKey
			}
		}
	}
	f.nextID++
	rec.ID = fmt.Sprintf("cand-%d", f.nextID)
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}
func (f *fakeCandidateStore) Update(companyID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeCandidateStore) GetByID(companyID, id string) (*dbmodels.CandidateApplication, error) {
	return f.recs[id], nil
}
func (f *fakeCandidateStore) GetByResumeDataID(companyID, resumeDataID string) (*dbmodels.CandidateApplication, error) {
	for _, rec := range f.recs {
		if rec.ResumeDataID != nil && *rec.ResumeDataID == resumeDataID {
			return rec, nil
		}
	}
	return nil, nil
}
func (f *fakeCandidateStore) UpdateStatusFrom(companyID, id string, from, to models.PipelineStatus) (int64, error) {
	return 0, nil
}
func (f *fakeCandidateStore) ListCount(companyID string, filter candidateapimodels.CandidateFilter) (int64, error) {
	return int64(len(f.recs)), nil
}
func (f *fakeCandidateStore) List(companyID string, filter candidateapimodels.CandidateFilter) ([]dbmodels.CandidateApplication, error) {
	return nil, nil
}
func (f *fakeCandidateStore) ListForExport(companyID string, filter candidateapimodels.CandidateFilter) ([]dbmodels.CandidateApplication, error) {
	return nil, nil
}
func (f *fakeCandidateStore) Delete(companyID, id string) error {
	delete(f.recs, id)
	return nil
}

type fakeResumeStore struct {
	recs map[string]*dbmodels.ResumeData
}

func (f *fakeResumeStore) Create(rec dbmodels.ResumeData) (string, error) { return "", nil }
func (f *fakeResumeStore) GetByID(companyID, id string) (*dbmodels.ResumeData, error) {
	return f.recs[id], nil
}
func (f *fakeResumeStore) ListCount(companyID string, filter resumeapimodels.ResumeDataFilter) (int64, error) {
	return 0, nil
}
func (f *fakeResumeStore) List(companyID string, filter resumeapimodels.ResumeDataFilter) ([]dbmodels.ResumeData, error) {
	return nil, nil
}
func (f *fakeResumeStore) Delete(companyID, id string) error { return nil }

type noopActivityLog struct{}

func (noopActivityLog) List(companyID, entityType, entityID string, filter candidateapimodels.ActivityLogFilter) ([]candidateapimodels.ActivityLogView, int64, error) {
	return nil, 0, nil
}
func (noopActivityLog) Save(companyID, entityType, entityID, userID string, action dbmodels.ActionType, changes dbmodels.ActivityChanges) {
}
func (noopActivityLog) SaveTx(store activitylogstore.Provider, companyID, entityType, entityID, userID string, action dbmodels.ActionType, changes dbmodels.ActivityChanges) error {
	return nil
}

func newTestHandler() (impl, *fakeCandidateStore) {
	activitylog.Instance = noopActivityLog{}
	store := newFakeCandidateStore()
	resume := &dbmodels.ResumeData{
		FileName:        "jane_smith.pdf",
		FileID:          "file-1",
		Name:            "Jane Smith",
		Email:           "jane@example.com",
		TotalExperience: 48,
	}
	resume.ID = "resume-1"
	resume.CompanyID = "company-1"
	return impl{
		store: store,
		resumeStore: &fakeResumeStore{recs: map[string]*dbmodels.ResumeData{
			"resume-1": resume,
		}},
	}, store
}

func TestCreateFromResume(t *testing.T) {
	t.Run(`first promotion succeeds`, func(t *testing.T) {
		handler, _ := newTestHandler()
		view, err := handler.CreateFromResume("company-1", "user-1", candidateapimodels.CreateFromResumeRequest{
			ResumeDataID: "resume-1",
		})
		require.Nil(t, err)
		require.Equal(t, "Jane", view.FirstName)
		require.Equal(t, models.StageNewApplication, view.Status)
	})

	t.Run(`second promotion conflicts`, func(t *testing.T) {
		handler, _ := newTestHandler()
		_, err := handler.CreateFromResume("company-1", "user-1", candidateapimodels.CreateFromResumeRequest{
			ResumeDataID: "resume-1",
		})
		require.Nil(t, err)
		_, err = handler.CreateFromResume("company-1", "user-1", candidateapimodels.CreateFromResumeRequest{
			ResumeDataID: "resume-1",
		})
		require.NotNil(t, err)
		require.True(t, apperr.IsConflict(err))
	})

	t.Run(`racing insert maps the duplicate key to a conflict`, func(t *testing.T) {
		handler, store := newTestHandler()
		store.createFail = gorm.ErrDuplicatedKey
		_, err := handler.CreateFromResume("company-1", "user-1", candidateapimodels.CreateFromResumeRequest{
			ResumeDataID: "resume-1",
		})
		require.NotNil(t, err)
		require.True(t, apperr.IsConflict(err))
	})

	t.Run(`unknown resume`, func(t *testing.T) {
		handler, _ := newTestHandler()
		_, err := handler.CreateFromResume("company-1", "user-1", candidateapimodels.CreateFromResumeRequest{
			ResumeDataID: "missing",
		})
		require.NotNil(t, err)
		require.True(t, apperr.IsNotFound(err))
	})
}
