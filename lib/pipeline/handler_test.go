package pipeline

import (
	"testing"

	"ats-backend/config"
	candidatestore "ats-backend/lib/candidate/store"
	"ats-backend/lib/notification"
	"ats-backend/models"
	candidateapimodels "ats-backend/models/api/candidate"
	dbmodels "ats-backend/models/db"

	"ats-backend/lib/utils/apperr"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID   = "company-1"
	testCandidateID = "cand-1"
	testUserID      = "user-1"
)

type fakeCandidateStore struct {
	rec        *dbmodels.CandidateApplication
	updateFail error
}

func (f *fakeCandidateStore) Create(rec dbmodels.CandidateApplication) (string, error) {
	return "", nil
}
func (f *fakeCandidateStore) Update(companyID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeCandidateStore) GetByID(companyID, id string) (*dbmodels.CandidateApplication, error) {
	if f.rec == nil || f.rec.ID != id || f.rec.CompanyID != companyID {
		return nil, nil
	}
	cp := *f.rec
	return &cp, nil
}
func (f *fakeCandidateStore) GetByResumeDataID(companyID, resumeDataID string) (*dbmodels.CandidateApplication, error) {
	return nil, nil
}
func (f *fakeCandidateStore) UpdateStatusFrom(companyID, id string, from, to models.PipelineStatus) (int64, error) {
	if f.updateFail != nil {
		return 0, f.updateFail
	}
	if f.rec == nil || f.rec.Status != from {
		return 0, nil
	}
	f.rec.Status = to
	return 1, nil
}
func (f *fakeCandidateStore) ListCount(companyID string, filter candidateapimodels.CandidateFilter) (int64, error) {
	return 0, nil
}
func (f *fakeCandidateStore) List(companyID string, filter candidateapimodels.CandidateFilter) ([]dbmodels.CandidateApplication, error) {
	return nil, nil
}
func (f *fakeCandidateStore) ListForExport(companyID string, filter candidateapimodels.CandidateFilter) ([]dbmodels.CandidateApplication, error) {
	return nil, nil
}
func (f *fakeCandidateStore) Delete(companyID, id string) error { return nil }

type fakePipelineStore struct {
	offers map[string]*dbmodels.Offer
	hires  map[string]*dbmodels.Hire
}

func newFakePipelineStore() *fakePipelineStore {
	return &fakePipelineStore{
		offers: map[string]*dbmodels.Offer{},
		hires:  map[string]*dbmodels.Hire{},
	}
}

func (f *fakePipelineStore) GetOfferByID(companyID, id string) (*dbmodels.Offer, error) {
	for _, offer := range f.offers {
		if offer.ID == id {
			return offer, nil
		}
	}
	return nil, nil
}
func (f *fakePipelineStore) GetOfferByCandidate(companyID, candidateID string) (*dbmodels.Offer, error) {
	return f.offers[candidateID], nil
}
func (f *fakePipelineStore) UpsertOffer(rec dbmodels.Offer) (string, error) {
	f.offers[rec.CandidateID] = &rec
	return "offer-1", nil
}
func (f *fakePipelineStore) UpdateOfferStatus(companyID, candidateID string, status dbmodels.OfferStatus) error {
	if offer, ok := f.offers[candidateID]; ok {
		offer.Status = status
	}
	return nil
}
func (f *fakePipelineStore) GetHireByCandidate(companyID, candidateID string) (*dbmodels.Hire, error) {
	return f.hires[candidateID], nil
}
func (f *fakePipelineStore) CreateHire(rec dbmodels.Hire) (string, error) {
	f.hires[rec.CandidateID] = &rec
	return "hire-1", nil
}

type fakeActivityStore struct {
	records    []dbmodels.ActivityLog
	createFail error
}

func (f *fakeActivityStore) Create(rec dbmodels.ActivityLog) (string, error) {
	if f.createFail != nil {
		return "", f.createFail
	}
	f.records = append(f.records, rec)
	return "log-1", nil
}
func (f *fakeActivityStore) ListCount(companyID, entityType, entityID string) (int64, error) {
	return int64(len(f.records)), nil
}
func (f *fakeActivityStore) List(companyID, entityType, entityID string, filter candidateapimodels.ActivityLogFilter) ([]dbmodels.ActivityLog, error) {
	return f.records, nil
}

type fakeUserStore struct {
	recruiters []dbmodels.User
}

func (f *fakeUserStore) Create(rec dbmodels.User) (string, error)  { return "", nil }
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
	return f.recruiters, nil
}

type fakeCompanyStore struct{}

func (f *fakeCompanyStore) Create(rec dbmodels.Company) (string, error) { return "", nil }
func (f *fakeCompanyStore) Update(id string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeCompanyStore) GetByID(id string) (*dbmodels.Company, error) {
	return &dbmodels.Company{Name: "Acme"}, nil
}
func (f *fakeCompanyStore) List() ([]dbmodels.Company, error) { return nil, nil }

type testEnv struct {
	handler       *impl
	candStore     *fakeCandidateStore
	pipelineStore *fakePipelineStore
	activityStore *fakeActivityStore
	flushed       []*notification.Outbox
}

func newTestEnv(status models.PipelineStatus) *testEnv {
	config.Conf = &config.Configuration{}
	config.Conf.Billing.PlacementFeePercent = 20
	env := &testEnv{
		candStore: &fakeCandidateStore{
			rec: &dbmodels.CandidateApplication{
				BaseCompanyModel: dbmodels.BaseCompanyModel{
					BaseModel: dbmodels.BaseModel{ID: testCandidateID},
					CompanyID: testCompanyID,
				},
				Status:         status,
				FirstName:      "Jane",
				LastName:       "Smith",
				Email:          "jane@example.com",
				ExpectedSalary: 90000,
			},
		},
		pipelineStore: newFakePipelineStore(),
		activityStore: &fakeActivityStore{},
	}
	env.handler = &impl{
		store: env.candStore,
		userStore: &fakeUserStore{recruiters: []dbmodels.User{
			{
				BaseCompanyModel: dbmodels.BaseCompanyModel{BaseModel: dbmodels.BaseModel{ID: "rec-1"}},
				Email:            "rita@acme.example",
			},
		}},
		companyStore: &fakeCompanyStore{},
		runTx: func(fn func(s TxStores) error) error {
			return fn(TxStores{
				Candidate: env.candStore,
				Pipeline:  env.pipelineStore,
				Activity:  env.activityStore,
			})
		},
		flush: func(outbox *notification.Outbox) {
			env.flushed = append(env.flushed, outbox)
		},
	}
	return env
}

func TestTransition(t *testing.T) {
	t.Run(`forward move writes status, audit and notifications`, func(t *testing.T) {
		env := newTestEnv(models.StageScreening)
		view, err := env.handler.Transition(testCompanyID, testCandidateID, testUserID, candidateapimodels.TransitionRequest{
			FromStatus: models.StageScreening,
			ToStatus:   models.StagePhoneInterview,
			Reason:     "strong screening call",
		})
		require.Nil(t, err)
		require.Equal(t, models.StagePhoneInterview, view.Status)

		require.Len(t, env.activityStore.records, 1)
		logRec := env.activityStore.records[0]
		require.Equal(t, dbmodels.HistoryTypeStageChange, logRec.ActionType)
		require.Equal(t, "strong screening call", logRec.Changes.Reason)
		require.Equal(t, "Rita Recruiter", logRec.UserName)

		require.Len(t, env.flushed, 1)
		msgs := env.flushed[0].Messages()
		require.Len(t, msgs, 3)
		require.Equal(t, notification.ChannelEmail, msgs[0].Channel)
		require.Equal(t, "jane@example.com", msgs[0].ToEmail)
		require.Equal(t, notification.ChannelEmail, msgs[1].Channel)
		require.Equal(t, "rita@acme.example", msgs[1].ToEmail)
		require.Equal(t, notification.ChannelPush, msgs[2].Channel)
		require.Equal(t, "rec-1", msgs[2].ToUserID)
		require.Equal(t, models.PushCodeStageChanged, msgs[2].PushCode)
	})

	t.Run(`stale from status is a conflict`, func(t *testing.T) {
		env := newTestEnv(models.StageTechnicalInterview)
		_, err := env.handler.Transition(testCompanyID, testCandidateID, testUserID, candidateapimodels.TransitionRequest{
			FromStatus: models.StageScreening,
			ToStatus:   models.StagePhoneInterview,
		})
		require.NotNil(t, err)
		require.True(t, apperr.IsConflict(err))
		require.Empty(t, env.flushed)
		require.Empty(t, env.activityStore.records)
	})

	t.Run(`lost update race is a conflict`, func(t *testing.T) {
		env := newTestEnv(models.StageScreening)
		inner := env.handler.runTx
		// another session moves the candidate between the read and the update
		env.handler.runTx = func(fn func(s TxStores) error) error {
			env.candStore.rec.Status = models.StageWithdrawn
			return inner(fn)
		}
		_, err := env.handler.Transition(testCompanyID, testCandidateID, testUserID, candidateapimodels.TransitionRequest{
			FromStatus: models.StageScreening,
			ToStatus:   models.StagePhoneInterview,
		})
		require.NotNil(t, err)
		require.True(t, apperr.IsConflict(err))
		require.Empty(t, env.flushed)
	})

	t.Run(`same stage replay re-runs the side effects`, func(t *testing.T) {
		env := newTestEnv(models.StageScreening)
		view, err := env.handler.Transition(testCompanyID, testCandidateID, testUserID, candidateapimodels.TransitionRequest{
			FromStatus: models.StageScreening,
			ToStatus:   models.StageScreening,
		})
		require.Nil(t, err)
		require.Equal(t, models.StageScreening, view.Status)
		require.Len(t, env.flushed, 1)
		require.Len(t, env.activityStore.records, 1)
	})

	t.Run(`unknown candidate`, func(t *testing.T) {
		env := newTestEnv(models.StageScreening)
		_, err := env.handler.Transition(testCompanyID, "missing", testUserID, candidateapimodels.TransitionRequest{
			FromStatus: models.StageScreening,
			ToStatus:   models.StagePhoneInterview,
		})
		require.NotNil(t, err)
		require.True(t, apperr.IsNotFound(err))
	})

	t.Run(`invalid stage names rejected`, func(t *testing.T) {
		env := newTestEnv(models.StageScreening)
		_, err := env.handler.Transition(testCompanyID, testCandidateID, testUserID, candidateapimodels.TransitionRequest{
			FromStatus: "no-such-stage",
			ToStatus:   models.StagePhoneInterview,
		})
		require.NotNil(t, err)
		require.True(t, apperr.IsValidation(err))
	})

	t.Run(`offer sent upserts the offer with salary fallback`, func(t *testing.T) {
		env := newTestEnv(models.StageOfferPreparation)
		_, err := env.handler.Transition(testCompanyID, testCandidateID, testUserID, candidateapimodels.TransitionRequest{
			FromStatus: models.StageOfferPreparation,
			ToStatus:   models.StageOfferSent,
		})
		require.Nil(t, err)
		offer := env.pipelineStore.offers[testCandidateID]
		require.NotNil(t, offer)
		require.Equal(t, 90000, offer.Salary) // expected salary, request carried none
		require.Equal(t, dbmodels.OfferStatusSent, offer.Status)

		require.Len(t, env.flushed, 1)
		require.Equal(t, models.PushCodeOfferSent, env.flushed[0].Messages()[2].PushCode)
	})

	t.Run(`hired writes the hire record with the placement fee`, func(t *testing.T) {
		env := newTestEnv(models.StageOnboarding)
		_, err := env.handler.Transition(testCompanyID, testCandidateID, testUserID, candidateapimodels.TransitionRequest{
			FromStatus: models.StageOnboarding,
			ToStatus:   models.StageHired,
			Salary:     100000,
		})
		require.Nil(t, err)
		hire := env.pipelineStore.hires[testCandidateID]
		require.NotNil(t, hire)
		require.Equal(t, 100000, hire.Salary)
		require.Equal(t, float64(20000), hire.PlacementFee)
		require.Equal(t, models.PushCodeCandidateHired, env.flushed[0].Messages()[2].PushCode)
	})

	t.Run(`hired salary falls back to the offer`, func(t *testing.T) {
		env := newTestEnv(models.StageOfferAccepted)
		env.pipelineStore.offers[testCandidateID] = &dbmodels.Offer{CandidateID: testCandidateID, Salary: 95000}
		_, err := env.handler.Transition(testCompanyID, testCandidateID, testUserID, candidateapimodels.TransitionRequest{
			FromStatus: models.StageOfferAccepted,
			ToStatus:   models.StageHired,
		})
		require.Nil(t, err)
		hire := env.pipelineStore.hires[testCandidateID]
		require.NotNil(t, hire)
		require.Equal(t, 95000, hire.Salary)
		require.Equal(t, float64(19000), hire.PlacementFee)
	})

	t.Run(`second hire transition does not duplicate the hire record`, func(t *testing.T) {
		env := newTestEnv(models.StageOnboarding)
		env.pipelineStore.hires[testCandidateID] = &dbmodels.Hire{CandidateID: testCandidateID, Salary: 80000}
		_, err := env.handler.Transition(testCompanyID, testCandidateID, testUserID, candidateapimodels.TransitionRequest{
			FromStatus: models.StageOnboarding,
			ToStatus:   models.StageHired,
			Salary:     120000,
		})
		require.Nil(t, err)
		require.Equal(t, 80000, env.pipelineStore.hires[testCandidateID].Salary)
	})

	t.Run(`failed transaction sends nothing`, func(t *testing.T) {
		env := newTestEnv(models.StageScreening)
		env.activityStore.createFail = errors.New("insert failed")
		_, err := env.handler.Transition(testCompanyID, testCandidateID, testUserID, candidateapimodels.TransitionRequest{
			FromStatus: models.StageScreening,
			ToStatus:   models.StagePhoneInterview,
		})
		require.NotNil(t, err)
		require.Empty(t, env.flushed)
	})
}

var _ candidatestore.Provider = (*fakeCandidateStore)(nil)
