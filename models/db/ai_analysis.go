package dbmodels

import "time"

// AIAnalysisResult memoizes one external scoring call, keyed by the
// (candidate, job, company) triple. Disposable: recomputable at any time,
// valid until explicitly deleted.
type AIAnalysisResult struct {
	BaseCompanyModel
	CandidateID string `gorm:"type:varchar(36);index:idx_ai_key,unique"`
	JobID       string `gorm:"type:varchar(36);index:idx_ai_key,unique"`
	Score       float64
	Verdict     string `gorm:"type:varchar(100)"`
	Explanation string
	AnalyzedAt  time.Time
}
