package scorerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ats-backend/config"
	"ats-backend/lib/utils/apperr"
)

// MatchRequest is the candidate/job context sent to the scoring service.
type MatchRequest struct {
	CandidateName   string   `json:"candidate_name"`
	Skills          []string `json:"skills"`
	TotalExperience int      `json:"total_experience"` // months
	Education       string   `json:"education"`
	JobTitle        string   `json:"job_title"`
	JobDescription  string   `json:"job_description"`
	RequiredSkills  []string `json:"required_skills"`
	ExperienceMin   int      `json:"experience_min"` // years
}

type MatchResult struct {
	Score       float64 `json:"score"`
	Verdict     string  `json:"verdict"`
	Explanation string  `json:"explanation"`
}

type Provider interface {
	AnalyzeMatch(ctx context.Context, req MatchRequest) (MatchResult, error)
}

func NewClient() Provider {
	return &impl{
		client: &http.Client{
			Timeout: time.Second * time.Duration(config.Conf.AIScorer.TimeoutInSec),
		},
		baseURL: config.Conf.AIScorer.BaseUrl,
	}
}

type impl struct {
	client  *http.Client
	baseURL string
}

func (i impl) AnalyzeMatch(ctx context.Context, req MatchRequest) (MatchResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return MatchResult{}, err
	}
	url := fmt.Sprintf("%s/analyze-match", i.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return MatchResult{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := i.client.Do(httpReq)
	if err != nil {
		return MatchResult{}, apperr.ExternalWrap(err, "scoring service is unavailable")
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return MatchResult{}, apperr.ExternalWrap(err, "failed to read scorer response")
	}
	if resp.StatusCode != http.StatusOK {
		return MatchResult{}, apperr.External(fmt.Sprintf("scorer responded with code %d", resp.StatusCode))
	}
	result := MatchResult{}
	if err = json.Unmarshal(body, &result); err != nil {
		return MatchResult{}, apperr.ExternalWrap(err, "failed to decode scorer response")
	}
	return result, nil
}
