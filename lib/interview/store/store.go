package interviewstore

import (
	interviewapimodels "ats-backend/models/api/interview"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Interview) (id string, err error)
	Update(companyID, id string, updMap map[string]interface{}) error
	GetByID(companyID, id string) (*dbmodels.Interview, error)
	ListCount(companyID string, filter interviewapimodels.InterviewFilter) (int64, error)
	List(companyID string, filter interviewapimodels.InterviewFilter) ([]dbmodels.Interview, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Interview) (id string, err error) {
	err = i.db.
		Omit("Candidate", "Job").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(companyID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Interview{}).
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		Updates(updMap).
		Error
	return err
}

func (i impl) GetByID(companyID, id string) (*dbmodels.Interview, error) {
	rec := dbmodels.Interview{}
	err := i.db.
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		Preload("Candidate").
		Preload("Job").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListCount(companyID string, filter interviewapimodels.InterviewFilter) (int64, error) {
	var rowCount int64
	err := i.listQuery(companyID, filter).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) List(companyID string, filter interviewapimodels.InterviewFilter) ([]dbmodels.Interview, error) {
	list := []dbmodels.Interview{}
	tx := i.listQuery(companyID, filter)
	page, limit := filter.GetPage()
	tx.Limit(limit).Offset((page - 1) * limit)
	tx.Order("date, time_slot")
	err := tx.Preload("Candidate").Preload("Job").Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) listQuery(companyID string, filter interviewapimodels.InterviewFilter) *gorm.DB {
	tx := i.db.
		Model(dbmodels.Interview{}).
		Where("company_id = ?", companyID)
	if filter.CandidateID != "" {
		tx = tx.Where("candidate_id = ?", filter.CandidateID)
	}
	if filter.JobID != "" {
		tx = tx.Where("job_id = ?", filter.JobID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	return tx
}
