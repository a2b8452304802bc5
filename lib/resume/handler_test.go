package resume

import (
	"context"
	"testing"

	filestorage "ats-backend/lib/file-storage"
	"ats-backend/lib/notification"
	"ats-backend/lib/utils/apperr"
	"ats-backend/models"
	candidateapimodels "ats-backend/models/api/candidate"
	jobapimodels "ats-backend/models/api/job"
	resumeapimodels "ats-backend/models/api/resume"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeParser struct {
	failFor map[string]error
}

func (f *fakeParser) Parse(ctx context.Context, fileName string, data []byte) (resumeapimodels.ParsedResume, error) {
	if err, ok := f.failFor[fileName]; ok {
		return resumeapimodels.ParsedResume{}, err
	}
	return resumeapimodels.ParsedResume{
		Name:            "Jane Smith",
		Email:           "jane@example.com",
		Skills:          []string{"go", "sql"},
		TotalExperience: 48,
	}, nil
}

type fakeFiles struct {
	uploads int
	fail    error
}

func (f *fakeFiles) Upload(ctx context.Context, companyID, candidateID string, fileType dbmodels.FileType, fileName, contentType string, data []byte) (string, error) {
	if f.fail != nil {
		return "", f.fail
	}
	f.uploads++
	return "file-1", nil
}
func (f *fakeFiles) GetFile(ctx context.Context, companyID, fileID string) ([]byte, *dbmodels.FileStorage, error) {
	return nil, nil, nil
}
func (f *fakeFiles) GetResume(ctx context.Context, companyID, candidateID string) ([]byte, *dbmodels.FileStorage, error) {
	return nil, nil, nil
}
func (f *fakeFiles) MakeCompanyBucket(ctx context.Context, companyID string) error { return nil }

type fakeResumeStore struct {
	created []dbmodels.ResumeData
}

func (f *fakeResumeStore) Create(rec dbmodels.ResumeData) (string, error) {
	f.created = append(f.created, rec)
	return "resume-1", nil
}
func (f *fakeResumeStore) GetByID(companyID, id string) (*dbmodels.ResumeData, error) {
	return nil, nil
}
func (f *fakeResumeStore) ListCount(companyID string, filter resumeapimodels.ResumeDataFilter) (int64, error) {
	return 0, nil
}
func (f *fakeResumeStore) List(companyID string, filter resumeapimodels.ResumeDataFilter) ([]dbmodels.ResumeData, error) {
	return nil, nil
}
func (f *fakeResumeStore) Delete(companyID, id string) error { return nil }

type fakeCandStore struct {
	created []dbmodels.CandidateApplication
}

func (f *fakeCandStore) Create(rec dbmodels.CandidateApplication) (string, error) {
	f.created = append(f.created, rec)
	return "cand-1", nil
}
func (f *fakeCandStore) Update(companyID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeCandStore) GetByID(companyID, id string) (*dbmodels.CandidateApplication, error) {
	return nil, nil
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
func (f *fakeJobStore) GetByID(companyID, id string) (*dbmodels.JobPost, error) { return nil, nil }
func (f *fakeJobStore) GetBySlug(slug string) (*dbmodels.JobPost, error) {
	if f.job != nil && f.job.Slug == slug {
		return f.job, nil
	}
	return nil, nil
}
func (f *fakeJobStore) SlugExists(slug string) (bool, error) { return false, nil }
func (f *fakeJobStore) ListCount(companyID string, filter jobapimodels.JobFilter) (int64, error) {
	return 0, nil
}
func (f *fakeJobStore) List(companyID string, filter jobapimodels.JobFilter) ([]dbmodels.JobPost, error) {
	return nil, nil
}
func (f *fakeJobStore) ListPublic() ([]dbmodels.JobPost, error)  { return nil, nil }
func (f *fakeJobStore) DeleteCascade(companyID, id string) error { return nil }

type fakeUserStore struct{}

func (f *fakeUserStore) Create(rec dbmodels.User) (string, error) { return "", nil }
func (f *fakeUserStore) Update(companyID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeUserStore) Delete(companyID, id string) error          { return nil }
func (f *fakeUserStore) GetByID(id string) (*dbmodels.User, error)  { return nil, nil }
func (f *fakeUserStore) GetByEmail(email string) (*dbmodels.User, error) {
	return nil, nil
}
func (f *fakeUserStore) List(companyID string) ([]dbmodels.User, error) { return nil, nil }
func (f *fakeUserStore) ListByRoles(companyID string, roles []string) ([]dbmodels.User, error) {
	return []dbmodels.User{{
		BaseCompanyModel: dbmodels.BaseCompanyModel{BaseModel: dbmodels.BaseModel{ID: "rec-1"}},
		Email:            "recruiter@acme.com",
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

type testEnv struct {
	handler   *impl
	parser    *fakeParser
	files     *fakeFiles
	store     *fakeResumeStore
	candStore *fakeCandStore
	flushed   []*notification.Outbox
}

func newTestEnv() *testEnv {
	job := &dbmodels.JobPost{
		Title:  "Senior Engineer",
		Slug:   "senior-engineer",
		Status: models.JobStatusActive,
	}
	job.ID = "job-1"
	job.CompanyID = "company-1"
	env := &testEnv{
		parser:    &fakeParser{failFor: map[string]error{}},
		files:     &fakeFiles{},
		store:     &fakeResumeStore{},
		candStore: &fakeCandStore{},
	}
	env.handler = &impl{
		store:         env.store,
		candStore:     env.candStore,
		jobStore:      &fakeJobStore{job: job},
		userStore:     &fakeUserStore{},
		activityStore: &fakeActivityStore{},
		parser:        env.parser,
		files:         func() filestorage.Provider { return env.files },
		flush: func(outbox *notification.Outbox) {
			env.flushed = append(env.flushed, outbox)
		},
	}
	return env
}

func applyReq() resumeapimodels.ApplyRequest {
	return resumeapimodels.ApplyRequest{
		FirstName: "Jane",
		LastName:  "Smith",
		Email:     "jane@example.com",
	}
}

func TestPublicApply(t *testing.T) {
	file := &UploadedFile{Name: "cv.pdf", ContentType: "application/pdf", Data: []byte("pdf")}

	t.Run(`parsed application carries resume fields`, func(t *testing.T) {
		env := newTestEnv()
		resp, err := env.handler.PublicApply(context.Background(), "senior-engineer", applyReq(), file)
		require.Nil(t, err)
		require.Equal(t, "cand-1", resp.ApplicationID)
		require.Empty(t, resp.ParseWarning)

		require.Len(t, env.candStore.created, 1)
		cand := env.candStore.created[0]
		require.Equal(t, models.StageNewApplication, cand.Status)
		require.Equal(t, models.SourcePublicApply, cand.Source)
		require.Equal(t, []string{"go", "sql"}, []string(cand.Skills))
		require.NotNil(t, cand.ResumeDataID)
		require.Len(t, env.store.created, 1)

		require.Len(t, env.flushed, 1)
		msgs := env.flushed[0].Messages()
		require.Len(t, msgs, 2) // recruiter email + recruiter push
		require.Equal(t, "recruiter@acme.com", msgs[0].ToEmail)
		require.Equal(t, models.PushCodeNewApplication, msgs[1].PushCode)
	})

	t.Run(`parse failure degrades, never rejects`, func(t *testing.T) {
		env := newTestEnv()
		env.parser.failFor["cv.pdf"] = apperr.External("parser down")
		resp, err := env.handler.PublicApply(context.Background(), "senior-engineer", applyReq(), file)
		require.Nil(t, err)
		require.NotEmpty(t, resp.ParseWarning)
		require.Len(t, env.candStore.created, 1)
		require.Empty(t, env.candStore.created[0].Skills)
		require.Empty(t, env.store.created)
	})

	t.Run(`application without a file is accepted`, func(t *testing.T) {
		env := newTestEnv()
		resp, err := env.handler.PublicApply(context.Background(), "senior-engineer", applyReq(), nil)
		require.Nil(t, err)
		require.Equal(t, "cand-1", resp.ApplicationID)
		require.Equal(t, 0, env.files.uploads)
	})

	t.Run(`unknown slug`, func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.PublicApply(context.Background(), "no-such-job", applyReq(), file)
		require.NotNil(t, err)
		require.True(t, apperr.IsNotFound(err))
	})

	t.Run(`missing required form fields`, func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.PublicApply(context.Background(), "senior-engineer", resumeapimodels.ApplyRequest{}, file)
		require.NotNil(t, err)
		require.True(t, apperr.IsValidation(err))
	})
}

func TestBulkImport(t *testing.T) {
	t.Run(`broken file reported per item, batch continues`, func(t *testing.T) {
		env := newTestEnv()
		env.parser.failFor["broken.pdf"] = errors.New("unreadable file")
		resp, err := env.handler.BulkImport(context.Background(), "company-1", "user-1", []UploadedFile{
			{Name: "one.pdf", Data: []byte("a")},
			{Name: "broken.pdf", Data: []byte("b")},
			{Name: "two.pdf", Data: []byte("c")},
		})
		require.Nil(t, err)
		require.Equal(t, 3, resp.TotalFiles)
		require.Equal(t, 2, resp.ImportedFiles)
		require.Equal(t, 1, resp.FailedFiles)
		require.Equal(t, "error", resp.Results[1].Status)
		require.Equal(t, "unreadable file", resp.Results[1].Error)
		require.Equal(t, "resume-1", resp.Results[0].ResumeDataID)
		require.Len(t, env.store.created, 2)
	})

	t.Run(`empty batch rejected`, func(t *testing.T) {
		env := newTestEnv()
		_, err := env.handler.BulkImport(context.Background(), "company-1", "user-1", nil)
		require.NotNil(t, err)
		require.True(t, apperr.IsValidation(err))
	})
}
