package aiapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

type AnalyzeRequest struct {
	CandidateID string `json:"candidate_id"`
	JobID       string `json:"job_id"`
}

func (r AnalyzeRequest) Validate() error {
	if strings.TrimSpace(r.CandidateID) == "" {
		return errors.New("candidate_id is required")
	}
	if strings.TrimSpace(r.JobID) == "" {
		return errors.New("job_id is required")
	}
	return nil
}

type BatchAnalyzeRequest struct {
	CandidateIDs []string `json:"candidate_ids"`
	JobID        string   `json:"job_id"`
}

func (r BatchAnalyzeRequest) Validate() error {
	if len(r.CandidateIDs) == 0 {
		return errors.New("candidate_ids is required")
	}
	if strings.TrimSpace(r.JobID) == "" {
		return errors.New("job_id is required")
	}
	return nil
}

type AnalyzeResult struct {
	CandidateID string  `json:"candidate_id"`
	JobID       string  `json:"job_id"`
	Score       float64 `json:"score"`
	Verdict     string  `json:"verdict"`
	Explanation string  `json:"explanation"`
	Cached      bool    `json:"cached"`
	AnalyzedAt  string  `json:"analyzed_at"`
}

// BatchItem is the per-candidate outcome: exactly one per requested ID,
// success or error.
type BatchItem struct {
	CandidateID string         `json:"candidate_id"`
	Status      string         `json:"status"` // analyzed/error
	Result      *AnalyzeResult `json:"result,omitempty"`
	Error       string         `json:"error,omitempty"`
}

type GenerateJobDescRequest struct {
	Text string `json:"text"`
}

func (r GenerateJobDescRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return errors.New("text is required")
	}
	return nil
}

type GenerateJobDescResponse struct {
	Description string `json:"description"`
}
