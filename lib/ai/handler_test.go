package ai

import (
	"context"
	"fmt"
	"testing"

	scorerclient "ats-backend/lib/ai/scorer-client"
	"ats-backend/lib/utils/apperr"
	"ats-backend/models"
	aiapimodels "ats-backend/models/api/ai"
	candidateapimodels "ats-backend/models/api/candidate"
	jobapimodels "ats-backend/models/api/job"
	dbmodels "ats-backend/models/db"

	"github.com/stretchr/testify/require"
)

type fakeAIStore struct {
	results map[string]*dbmodels.AIAnalysisResult
}

func key(candidateID, jobID string) string { return candidateID + "/" + jobID }

func (f *fakeAIStore) Get(companyID, candidateID, jobID string) (*dbmodels.AIAnalysisResult, error) {
	return f.results[key(candidateID, jobID)], nil
}
func (f *fakeAIStore) Save(rec dbmodels.AIAnalysisResult) (string, error) {
	f.results[key(rec.CandidateID, rec.JobID)] = &rec
	return "ai-1", nil
}
func (f *fakeAIStore) Delete(companyID, candidateID, jobID string) error {
	delete(f.results, key(candidateID, jobID))
	return nil
}

type fakeScorer struct {
	calls   int
	failFor map[string]bool
}

func (f *fakeScorer) AnalyzeMatch(ctx context.Context, req scorerclient.MatchRequest) (scorerclient.MatchResult, error) {
	f.calls++
	if f.failFor[req.CandidateName] {
		return scorerclient.MatchResult{}, apperr.External("scorer overloaded")
	}
	return scorerclient.MatchResult{Score: 0.82, Verdict: "strong match", Explanation: "skills overlap"}, nil
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
func (f *fakeJobStore) ListPublic() ([]dbmodels.JobPost, error)  { return nil, nil }
func (f *fakeJobStore) DeleteCascade(companyID, id string) error { return nil }

func newTestHandler(candidateIDs ...string) (*impl, *fakeScorer, *fakeAIStore) {
	known := map[string]*dbmodels.CandidateApplication{}
	for _, id := range candidateIDs {
		cand := &dbmodels.CandidateApplication{
			FirstName: "Candidate",
			LastName:  id,
			Skills:    []string{"go"},
		}
		cand.ID = id
		known[id] = cand
	}
	job := &dbmodels.JobPost{Title: "Senior Engineer"}
	job.ID = "job-1"
	store := &fakeAIStore{results: map[string]*dbmodels.AIAnalysisResult{}}
	scorer := &fakeScorer{failFor: map[string]bool{}}
	handler := &impl{
		store:      store,
		candStore:  &fakeCandStore{known: known},
		jobStore:   &fakeJobStore{job: job},
		scorer:     scorer,
		chunkSize:  2,
		chunkDelay: 0,
	}
	return handler, scorer, store
}

func TestAnalyze(t *testing.T) {
	ctx := context.Background()
	req := aiapimodels.AnalyzeRequest{CandidateID: "cand-1", JobID: "job-1"}

	t.Run(`miss calls the scorer and memoizes`, func(t *testing.T) {
		handler, scorer, store := newTestHandler("cand-1")
		result, err := handler.Analyze(ctx, "company-1", req)
		require.Nil(t, err)
		require.False(t, result.Cached)
		require.Equal(t, 0.82, result.Score)
		require.Equal(t, 1, scorer.calls)
		require.Len(t, store.results, 1)

		result, err = handler.Analyze(ctx, "company-1", req)
		require.Nil(t, err)
		require.True(t, result.Cached)
		require.Equal(t, 1, scorer.calls) // no second scorer round-trip
	})

	t.Run(`delete evicts, next call recomputes`, func(t *testing.T) {
		handler, scorer, _ := newTestHandler("cand-1")
		_, err := handler.Analyze(ctx, "company-1", req)
		require.Nil(t, err)
		require.Nil(t, handler.DeleteResult("company-1", req))
		result, err := handler.Analyze(ctx, "company-1", req)
		require.Nil(t, err)
		require.False(t, result.Cached)
		require.Equal(t, 2, scorer.calls)
	})

	t.Run(`unknown candidate`, func(t *testing.T) {
		handler, _, _ := newTestHandler("cand-1")
		_, err := handler.Analyze(ctx, "company-1", aiapimodels.AnalyzeRequest{CandidateID: "missing", JobID: "job-1"})
		require.NotNil(t, err)
		require.True(t, apperr.IsNotFound(err))
	})
}

func TestBatchAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run(`exactly one item per candidate, errors inline`, func(t *testing.T) {
		ids := make([]string, 0, 7)
		for n := 1; n <= 7; n++ {
			ids = append(ids, fmt.Sprintf("cand-%d", n))
		}
		handler, scorer, _ := newTestHandler(ids...)
		scorer.failFor["Candidate cand-3"] = true

		results, err := handler.BatchAnalyze(ctx, "company-1", aiapimodels.BatchAnalyzeRequest{
			CandidateIDs: ids,
			JobID:        "job-1",
		})
		require.Nil(t, err)
		require.Len(t, results, 7)
		require.Equal(t, 7, scorer.calls)
		for idx, item := range results {
			require.Equal(t, ids[idx], item.CandidateID)
			if item.CandidateID == "cand-3" {
				require.Equal(t, "error", item.Status)
				require.NotEmpty(t, item.Error)
				require.Nil(t, item.Result)
			} else {
				require.Equal(t, "analyzed", item.Status)
				require.NotNil(t, item.Result)
			}
		}
	})

	t.Run(`empty batch rejected`, func(t *testing.T) {
		handler, _, _ := newTestHandler()
		_, err := handler.BatchAnalyze(ctx, "company-1", aiapimodels.BatchAnalyzeRequest{JobID: "job-1"})
		require.NotNil(t, err)
		require.True(t, apperr.IsValidation(err))
	})
}
