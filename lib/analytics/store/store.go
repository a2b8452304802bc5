package analyticsstore

import (
	"ats-backend/models"
	dbmodels "ats-backend/models/db"

	"gorm.io/gorm"
)

// Provider runs the aggregate queries behind the dashboard report.
type Provider interface {
	JobCountByStatus(companyID string) (map[string]int64, error)
	CandidateCountByStage(companyID string) (map[string]int64, error)
	InterviewCounts(companyID string) (total, scheduled int64, err error)
	HireTotals(companyID string) (count int64, revenue float64, err error)
	// PendingResumeCount counts imported resumes not yet promoted to a
	// candidate.
	PendingResumeCount(companyID string) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

type countRow struct {
	Key   string
	Count int64
}

func (i impl) JobCountByStatus(companyID string) (map[string]int64, error) {
	rows := []countRow{}
	err := i.db.
		Model(&dbmodels.JobPost{}).
		Select("status as key, count(*) as count").
		Where("company_id = ?", companyID).
		Group("status").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return toMap(rows), nil
}

func (i impl) CandidateCountByStage(companyID string) (map[string]int64, error) {
	rows := []countRow{}
	err := i.db.
		Model(&dbmodels.CandidateApplication{}).
		Select("status as key, count(*) as count").
		Where("company_id = ?", companyID).
		Group("status").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return toMap(rows), nil
}

func (i impl) InterviewCounts(companyID string) (total, scheduled int64, err error) {
	err = i.db.
		Model(&dbmodels.Interview{}).
		Where("company_id = ?", companyID).
		Count(&total).
		Error
	if err != nil {
		return 0, 0, err
	}
	err = i.db.
		Model(&dbmodels.Interview{}).
		Where("company_id = ?", companyID).
		Where("status = ?", models.InterviewStatusScheduled).
		Count(&scheduled).
		Error
	if err != nil {
		return 0, 0, err
	}
	return total, scheduled, nil
}

func (i impl) HireTotals(companyID string) (count int64, revenue float64, err error) {
	row := struct {
		Count   int64
		Revenue float64
	}{}
	err = i.db.
		Model(&dbmodels.Hire{}).
		Select("count(*) as count, coalesce(sum(placement_fee), 0) as revenue").
		Where("company_id = ?", companyID).
		Find(&row).
		Error
	if err != nil {
		return 0, 0, err
	}
	return row.Count, row.Revenue, nil
}

func (i impl) PendingResumeCount(companyID string) (int64, error) {
	count := int64(0)
	err := i.db.
		Model(&dbmodels.ResumeData{}).
		Where("company_id = ?", companyID).
		Where("id NOT IN (?)", i.db.
			Model(&dbmodels.CandidateApplication{}).
			Select("resume_data_id").
			Where("company_id = ?", companyID).
			Where("resume_data_id IS NOT NULL")).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func toMap(rows []countRow) map[string]int64 {
	result := map[string]int64{}
	for _, row := range rows {
		result[row.Key] = row.Count
	}
	return result
}
