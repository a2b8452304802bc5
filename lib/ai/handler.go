package ai

import (
	"context"
	"time"

	"ats-backend/config"
	"ats-backend/db"
	scorerclient "ats-backend/lib/ai/scorer-client"
	aistore "ats-backend/lib/ai/store"
	yagptclient "ats-backend/lib/ai/yagpt-client"
	candidatestore "ats-backend/lib/candidate/store"
	jobstore "ats-backend/lib/job/store"
	"ats-backend/lib/utils/apperr"
	"ats-backend/lib/utils/helpers"
	aiapimodels "ats-backend/models/api/ai"
	dbmodels "ats-backend/models/db"
)

type Provider interface {
	// Analyze returns the cached verdict when one exists; otherwise it calls
	// the scoring service and memoizes the result. Cached results never
	// expire, DeleteResult is the manual eviction.
	Analyze(ctx context.Context, companyID string, req aiapimodels.AnalyzeRequest) (aiapimodels.AnalyzeResult, error)
	// BatchAnalyze processes candidates in fixed-size chunks with a delay in
	// between, returning exactly one item per requested candidate.
	BatchAnalyze(ctx context.Context, companyID string, req aiapimodels.BatchAnalyzeRequest) ([]aiapimodels.BatchItem, error)
	DeleteResult(companyID string, req aiapimodels.AnalyzeRequest) error
	GenerateJobDescription(companyID string, req aiapimodels.GenerateJobDescRequest) (aiapimodels.GenerateJobDescResponse, error)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		store:     aistore.NewInstance(db.DB),
		candStore: candidatestore.NewInstance(db.DB),
		jobStore:  jobstore.NewInstance(db.DB),
		scorer:    scorerclient.NewClient(),
		gpt: yagptclient.NewClient(
			config.Conf.YandexGPT.IAMToken,
			config.Conf.YandexGPT.CatalogID,
		),
		chunkSize:  config.Conf.AIScorer.BatchChunkSize,
		chunkDelay: time.Millisecond * time.Duration(config.Conf.AIScorer.BatchDelayInMSec),
	}
}

type impl struct {
	store      aistore.Provider
	candStore  candidatestore.Provider
	jobStore   jobstore.Provider
	scorer     scorerclient.Provider
	gpt        yagptclient.Provider
	chunkSize  int
	chunkDelay time.Duration
}

func (i *impl) Analyze(ctx context.Context, companyID string, req aiapimodels.AnalyzeRequest) (aiapimodels.AnalyzeResult, error) {
	if err := req.Validate(); err != nil {
		return aiapimodels.AnalyzeResult{}, apperr.Validation(err.Error())
	}
	cached, err := i.store.Get(companyID, req.CandidateID, req.JobID)
	if err != nil {
		return aiapimodels.AnalyzeResult{}, err
	}
	if cached != nil {
		return convertResult(*cached, true), nil
	}

	cand, err := i.candStore.GetByID(companyID, req.CandidateID)
	if err != nil {
		return aiapimodels.AnalyzeResult{}, err
	}
	if cand == nil {
		return aiapimodels.AnalyzeResult{}, apperr.NotFound("candidate not found")
	}
	job, err := i.jobStore.GetByID(companyID, req.JobID)
	if err != nil {
		return aiapimodels.AnalyzeResult{}, err
	}
	if job == nil {
		return aiapimodels.AnalyzeResult{}, apperr.NotFound("job not found")
	}

	match, err := i.scorer.AnalyzeMatch(ctx, scorerclient.MatchRequest{
		CandidateName:   cand.GetFullName(),
		Skills:          cand.Skills,
		TotalExperience: cand.TotalExperience,
		Education:       cand.Education,
		JobTitle:        job.Title,
		JobDescription:  job.Description,
		RequiredSkills:  job.RequiredSkills,
		ExperienceMin:   job.ExperienceMin,
	})
	if err != nil {
		return aiapimodels.AnalyzeResult{}, err
	}

	rec := dbmodels.AIAnalysisResult{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			CompanyID: companyID,
		},
		CandidateID: req.CandidateID,
		JobID:       req.JobID,
		Score:       match.Score,
		Verdict:     match.Verdict,
		Explanation: match.Explanation,
		AnalyzedAt:  time.Now(),
	}
	if _, err = i.store.Save(rec); err != nil {
		return aiapimodels.AnalyzeResult{}, err
	}
	return convertResult(rec, false), nil
}

func (i *impl) BatchAnalyze(ctx context.Context, companyID string, req aiapimodels.BatchAnalyzeRequest) ([]aiapimodels.BatchItem, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err.Error())
	}
	chunkSize := i.chunkSize
	if chunkSize <= 0 {
		chunkSize = 5
	}
	results := make([]aiapimodels.BatchItem, 0, len(req.CandidateIDs))
	for start := 0; start < len(req.CandidateIDs); start += chunkSize {
		if start > 0 && i.chunkDelay > 0 {
			// spread the load on the scoring service
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(i.chunkDelay):
			}
		}
		end := start + chunkSize
		if end > len(req.CandidateIDs) {
			end = len(req.CandidateIDs)
		}
		for _, candidateID := range req.CandidateIDs[start:end] {
			if helpers.IsContextDone(ctx) {
				return nil, ctx.Err()
			}
			result, err := i.Analyze(ctx, companyID, aiapimodels.AnalyzeRequest{
				CandidateID: candidateID,
				JobID:       req.JobID,
			})
			if err != nil {
				results = append(results, aiapimodels.BatchItem{
					CandidateID: candidateID,
					Status:      "error",
					Error:       err.Error(),
				})
				continue
			}
			results = append(results, aiapimodels.BatchItem{
				CandidateID: candidateID,
				Status:      "analyzed",
				Result:      &result,
			})
		}
	}
	return results, nil
}

func (i *impl) DeleteResult(companyID string, req aiapimodels.AnalyzeRequest) error {
	if err := req.Validate(); err != nil {
		return apperr.Validation(err.Error())
	}
	return i.store.Delete(companyID, req.CandidateID, req.JobID)
}

const jobDescPrompt = "You are a recruiting assistant. Write a clear, appealing job description in plain language. Keep it factual, structure it with short sections, do not invent benefits that were not provided."

func (i *impl) GenerateJobDescription(companyID string, req aiapimodels.GenerateJobDescRequest) (aiapimodels.GenerateJobDescResponse, error) {
	if err := req.Validate(); err != nil {
		return aiapimodels.GenerateJobDescResponse{}, apperr.Validation(err.Error())
	}
	description, err := i.gpt.GenerateByPromptAndText(jobDescPrompt,
		"Generate a job description from these inputs: "+req.Text)
	if err != nil {
		return aiapimodels.GenerateJobDescResponse{}, apperr.ExternalWrap(err, "description generation failed")
	}
	return aiapimodels.GenerateJobDescResponse{Description: description}, nil
}

func convertResult(rec dbmodels.AIAnalysisResult, cached bool) aiapimodels.AnalyzeResult {
	return aiapimodels.AnalyzeResult{
		CandidateID: rec.CandidateID,
		JobID:       rec.JobID,
		Score:       rec.Score,
		Verdict:     rec.Verdict,
		Explanation: rec.Explanation,
		Cached:      cached,
		AnalyzedAt:  rec.AnalyzedAt.Format("2006-01-02 15:04:05"),
	}
}
