package interview

import (
	"testing"

	"ats-backend/lib/notification"
	"ats-backend/lib/utils/apperr"
	"ats-backend/models"
	candidateapimodels "ats-backend/models/api/candidate"
	interviewapimodels "ats-backend/models/api/interview"
	jobapimodels "ats-backend/models/api/job"
	dbmodels "ats-backend/models/db"

	"github.com/stretchr/testify/require"
)

type fakeInterviewStore struct {
	created []dbmodels.Interview
	updates map[string]map[string]interface{}
}

func (f *fakeInterviewStore) Create(rec dbmodels.Interview) (string, error) {
	f.created = append(f.created, rec)
	return "int-1", nil
}
func (f *fakeInterviewStore) Update(companyID, id string, updMap map[string]interface{}) error {
	if f.updates == nil {
		f.updates = map[string]map[string]interface{}{}
	}
	f.updates[id] = updMap
	return nil
}
func (f *fakeInterviewStore) GetByID(companyID, id string) (*dbmodels.Interview, error) {
	if id == "int-1" {
		return &dbmodels.Interview{Status: models.InterviewStatusScheduled}, nil
	}
	return nil, nil
}
func (f *fakeInterviewStore) ListCount(companyID string, filter interviewapimodels.InterviewFilter) (int64, error) {
	return int64(len(f.created)), nil
}
func (f *fakeInterviewStore) List(companyID string, filter interviewapimodels.InterviewFilter) ([]dbmodels.Interview, error) {
	return f.created, nil
}

type fakeCandStore struct {
	known map[string]*dbmodels.CandidateApplication
}

func (f *fakeCandStore) Create(rec dbmodels.CandidateApplication) (string, error) { return "", nil }
func (f *fakeCandStore) Update(companyID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeCandStore) GetByID(companyID, id string) (*dbmodels.CandidateApplication, error) {
	return f.known[id], nil
}
func (f *fakeCandStore) GetByResumeDataID(companyID, resumeDataID string) (*dbmodels.CandidateApplication, error) {
	return nil, nil
}
func (f *fakeCandStore) UpdateStatusFrom(companyID, id string, from, to models.PipelineStatus) (int64, error) {
	return 0, nil
}
func (f *fakeCandStore) ListCount(companyID string, filter candidateapimodels.CandidateFilter) (int64, error) {
	return 0, nil
}
func (f *fakeCandStore) List(companyID string, filter candidateapimodels.CandidateFilter) ([]dbmodels.CandidateApplication, error) {
	return nil, nil
}
func (f *fakeCandStore) ListForExport(companyID string, filter candidateapimodels.CandidateFilter) ([]dbmodels.CandidateApplication, error) {
	return nil, nil
}
func (f *fakeCandStore) Delete(companyID, id string) error { return nil }

type fakeJobStore struct {
	job *dbmodels.JobPost
}

func (f *fakeJobStore) Create(rec dbmodels.JobPost) (string, error) { return "", nil }
func (f *fakeJobStore) Update(companyID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeJobStore) GetByID(companyID, id string) (*dbmodels.JobPost, error) {
	if f.job != nil && f.job.ID == id {
		return f.job, nil
	}
	return nil, nil
}
func (f *fakeJobStore) GetBySlug(slug string) (*dbmodels.JobPost, error) { return nil, nil }
func (f *fakeJobStore) SlugExists(slug string) (bool, error)             { return false, nil }
func (f *fakeJobStore) ListCount(companyID string, filter jobapimodels.JobFilter) (int64, error) {
	return 0, nil
}
func (f *fakeJobStore) List(companyID string, filter jobapimodels.JobFilter) ([]dbmodels.JobPost, error) {
	return nil, nil
}
func (f *fakeJobStore) ListPublic() ([]dbmodels.JobPost, error) { return nil, nil }
func (f *fakeJobStore) DeleteCascade(companyID, id string) error { return nil }

type fakeUserStore struct{}

func (f *fakeUserStore) Create(rec dbmodels.User) (string, error) { return "", nil }
func (f *fakeUserStore) Update(companyID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeUserStore) Delete(companyID, id string) error { return nil }
func (f *fakeUserStore) GetByID(id string) (*dbmodels.User, error) {
	return &dbmodels.User{FirstName: "Rita", LastName: "Recruiter"}, nil
}
func (f *fakeUserStore) GetByEmail(email string) (*dbmodels.User, error) { return nil, nil }
func (f *fakeUserStore) List(companyID string) ([]dbmodels.User, error)  { return nil, nil }
func (f *fakeUserStore) ListByRoles(companyID string, roles []string) ([]dbmodels.User, error) {
	return []dbmodels.User{{
		BaseCompanyModel: dbmodels.BaseCompanyModel{BaseModel: dbmodels.BaseModel{ID: "rec-1"}},
		Email:            "rita@acme.example",
	}}, nil
}

type fakeActivityStore struct {
	records []dbmodels.ActivityLog
}

func (f *fakeActivityStore) Create(rec dbmodels.ActivityLog) (string, error) {
	f.records = append(f.records, rec)
	return "log-1", nil
}
func (f *fakeActivityStore) ListCount(companyID, entityType, entityID string) (int64, error) {
	return 0, nil
}
func (f *fakeActivityStore) List(companyID, entityType, entityID string, filter candidateapimodels.ActivityLogFilter) ([]dbmodels.ActivityLog, error) {
	return nil, nil
}

func newTestHandler() (*impl, *fakeInterviewStore, *fakeActivityStore, *[]*notification.Outbox) {
	store := &fakeInterviewStore{}
	activity := &fakeActivityStore{}
	flushed := &[]*notification.Outbox{}
	job := &dbmodels.JobPost{Title: "Senior Engineer"}
	job.ID = "job-1"
	cand := &dbmodels.CandidateApplication{
		FirstName: "Jane",
		LastName:  "Smith",
		Email:     "jane@example.com",
	}
	cand.ID = "cand-1"
	handler := &impl{
		store:         store,
		candStore:     &fakeCandStore{known: map[string]*dbmodels.CandidateApplication{"cand-1": cand}},
		jobStore:      &fakeJobStore{job: job},
		userStore:     &fakeUserStore{},
		activityStore: activity,
		flush: func(outbox *notification.Outbox) {
			*flushed = append(*flushed, outbox)
		},
	}
	return handler, store, activity, flushed
}

func scheduleReq(candidateID string) interviewapimodels.ScheduleRequest {
	return interviewapimodels.ScheduleRequest{
		CandidateID: candidateID,
		JobID:       "job-1",
		Date:        "2026-09-10",
		TimeSlot:    "14:00",
		Type:        models.InterviewTypeTechnical,
		Mode:        models.InterviewModeOnline,
		Interviewer: "Bob Lee",
	}
}

func TestSchedule(t *testing.T) {
	t.Run(`schedules with audit and notifications`, func(t *testing.T) {
		handler, store, activity, flushed := newTestHandler()
		view, err := handler.Schedule("company-1", "user-1", scheduleReq("cand-1"))
		require.Nil(t, err)
		require.Equal(t, models.InterviewStatusScheduled, view.Status)
		require.Equal(t, "Jane Smith", view.CandidateName)

		require.Len(t, store.created, 1)
		require.Len(t, activity.records, 1)
		require.Equal(t, dbmodels.HistoryTypeInterview, activity.records[0].ActionType)

		require.Len(t, *flushed, 1)
		msgs := (*flushed)[0].Messages()
		require.Len(t, msgs, 3)
		require.Equal(t, "jane@example.com", msgs[0].ToEmail)
		require.Equal(t, "rita@acme.example", msgs[1].ToEmail)
		require.Contains(t, msgs[1].Body, "Confirm interviewer availability")
		require.Equal(t, models.PushCodeInterviewScheduled, msgs[2].PushCode)
	})

	t.Run(`unknown candidate`, func(t *testing.T) {
		handler, _, _, _ := newTestHandler()
		_, err := handler.Schedule("company-1", "user-1", scheduleReq("missing"))
		require.NotNil(t, err)
		require.True(t, apperr.IsNotFound(err))
	})

	t.Run(`bad date rejected`, func(t *testing.T) {
		handler, _, _, _ := newTestHandler()
		req := scheduleReq("cand-1")
		req.Date = "10.09.2026"
		_, err := handler.Schedule("company-1", "user-1", req)
		require.NotNil(t, err)
		require.True(t, apperr.IsValidation(err))
	})
}

func TestReschedule(t *testing.T) {
	t.Run(`moves the slot back to scheduled`, func(t *testing.T) {
		handler, store, _, _ := newTestHandler()
		err := handler.Reschedule("company-1", "int-1", interviewapimodels.RescheduleRequest{
			Date:     "2026-09-12",
			TimeSlot: "09:30",
		})
		require.Nil(t, err)
		upd := store.updates["int-1"]
		require.NotNil(t, upd)
		require.Equal(t, "09:30", upd["time_slot"])
		require.Equal(t, models.InterviewStatusScheduled, upd["status"])
	})

	t.Run(`unknown interview`, func(t *testing.T) {
		handler, _, _, _ := newTestHandler()
		err := handler.Reschedule("company-1", "missing", interviewapimodels.RescheduleRequest{Date: "2026-09-12"})
		require.NotNil(t, err)
		require.True(t, apperr.IsNotFound(err))
	})
}

func TestBulkSchedule(t *testing.T) {
	t.Run(`one failure does not abort the batch`, func(t *testing.T) {
		handler, store, _, _ := newTestHandler()
		results, err := handler.BulkSchedule("company-1", "user-1", interviewapimodels.BulkScheduleRequest{
			CandidateIDs: []string{"cand-1", "missing", "cand-1"},
			JobID:        "job-1",
			Date:         "2026-09-10",
			TimeSlot:     "14:00",
			Type:         models.InterviewTypeHR,
			Mode:         models.InterviewModeOnline,
		})
		require.Nil(t, err)
		require.Len(t, results, 3)
		require.Equal(t, "scheduled", results[0].Status)
		require.Equal(t, "error", results[1].Status)
		require.NotEmpty(t, results[1].Error)
		require.Equal(t, "scheduled", results[2].Status)
		require.Len(t, store.created, 2)
	})
}
