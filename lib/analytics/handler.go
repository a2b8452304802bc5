package analytics

import (
	"bytes"

	"ats-backend/db"
	analyticsstore "ats-backend/lib/analytics/store"
	candidatestore "ats-backend/lib/candidate/store"
	xlsexport "ats-backend/lib/export/xls"
	candidateapimodels "ats-backend/models/api/candidate"
	reportapimodels "ats-backend/models/api/report"
)

type Provider interface {
	// ReportsAll assembles the dashboard numbers for one company.
	ReportsAll(companyID string) (reportapimodels.ReportsAllView, error)
	ExportCandidatesToXls(companyID string, filter candidateapimodels.CandidateFilter) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:     analyticsstore.NewInstance(db.DB),
		candStore: candidatestore.NewInstance(db.DB),
	}
}

type impl struct {
	store     analyticsstore.Provider
	candStore candidatestore.Provider
}

func (i impl) ReportsAll(companyID string) (reportapimodels.ReportsAllView, error) {
	view := reportapimodels.ReportsAllView{}

	jobs, err := i.store.JobCountByStatus(companyID)
	if err != nil {
		return view, err
	}
	view.JobsByStatus = jobs

	stages, err := i.store.CandidateCountByStage(companyID)
	if err != nil {
		return view, err
	}
	view.CandidatesByStage = stages
	for _, count := range stages {
		view.TotalCandidates += count
	}

	view.TotalInterviews, view.ScheduledInterviews, err = i.store.InterviewCounts(companyID)
	if err != nil {
		return view, err
	}

	view.TotalHires, view.PlacementRevenue, err = i.store.HireTotals(companyID)
	if err != nil {
		return view, err
	}

	view.PendingResumes, err = i.store.PendingResumeCount(companyID)
	if err != nil {
		return view, err
	}
	return view, nil
}

func (i impl) ExportCandidatesToXls(companyID string, filter candidateapimodels.CandidateFilter) (*bytes.Buffer, error) {
	list, err := i.candStore.ListForExport(companyID, filter)
	if err != nil {
		return nil, err
	}
	return xlsexport.Instance.ExportCandidateList(list)
}
