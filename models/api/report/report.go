package reportapimodels

// ReportsAllView is the aggregate dashboard report for one company.
type ReportsAllView struct {
	JobsByStatus       map[string]int64 `json:"jobs_by_status"`
	CandidatesByStage  map[string]int64 `json:"candidates_by_stage"`
	TotalCandidates    int64            `json:"total_candidates"`
	TotalInterviews    int64            `json:"total_interviews"`
	ScheduledInterviews int64           `json:"scheduled_interviews"`
	TotalHires         int64            `json:"total_hires"`
	PlacementRevenue   float64          `json:"placement_revenue"`
	PendingResumes     int64            `json:"pending_resumes"`
}
