package candidatestore

import (
	"ats-backend/models"
	candidateapimodels "ats-backend/models/api/candidate"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.CandidateApplication) (id string, err error)
	Update(companyID, id string, updMap map[string]interface{}) error
	GetByID(companyID, id string) (*dbmodels.CandidateApplication, error)
	// GetByResumeDataID finds the candidate promoted from an imported resume.
	GetByResumeDataID(companyID, resumeDataID string) (*dbmodels.CandidateApplication, error)
	// UpdateStatusFrom moves the candidate only when the stored status still
	// matches from; the returned row count exposes lost races.
	UpdateStatusFrom(companyID, id string, from, to models.PipelineStatus) (updated int64, err error)
	ListCount(companyID string, filter candidateapimodels.CandidateFilter) (int64, error)
	List(companyID string, filter candidateapimodels.CandidateFilter) ([]dbmodels.CandidateApplication, error)
	ListForExport(companyID string, filter candidateapimodels.CandidateFilter) ([]dbmodels.CandidateApplication, error)
	Delete(companyID, id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.CandidateApplication) (id string, err error) {
	err = i.db.
		Omit("Job").
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
		Model(&dbmodels.CandidateApplication{}).
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		Updates(updMap).
		Error
	return err
}

func (i impl) GetByID(companyID, id string) (*dbmodels.CandidateApplication, error) {
	rec := dbmodels.CandidateApplication{}
	err := i.db.
		Where("company_id = ?", companyID).
		Where("id = ?", id).
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

func (i impl) GetByResumeDataID(companyID, resumeDataID string) (*dbmodels.CandidateApplication, error) {
	rec := dbmodels.CandidateApplication{}
	err := i.db.
		Where("company_id = ?", companyID).
		Where("resume_data_id = ?", resumeDataID).
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

func (i impl) UpdateStatusFrom(companyID, id string, from, to models.PipelineStatus) (int64, error) {
	tx := i.db.
		Model(&dbmodels.CandidateApplication{}).
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		Where("status = ?", from).
		Update("status", to)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (i impl) ListCount(companyID string, filter candidateapimodels.CandidateFilter) (int64, error) {
	var rowCount int64
	err := i.listQuery(companyID, filter).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) List(companyID string, filter candidateapimodels.CandidateFilter) ([]dbmodels.CandidateApplication, error) {
	list := []dbmodels.CandidateApplication{}
	tx := i.listQuery(companyID, filter)
	page, limit := filter.GetPage()
	tx.Limit(limit).Offset((page - 1) * limit)
	tx.Order("created_at desc")
	err := tx.Preload("Job").Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

// ListForExport is the unpaginated variant feeding the XLS export.
func (i impl) ListForExport(companyID string, filter candidateapimodels.CandidateFilter) ([]dbmodels.CandidateApplication, error) {
	list := []dbmodels.CandidateApplication{}
	err := i.listQuery(companyID, filter).
		Order("created_at desc").
		Preload("Job").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) listQuery(companyID string, filter candidateapimodels.CandidateFilter) *gorm.DB {
	tx := i.db.
		Model(dbmodels.CandidateApplication{}).
		Where("company_id = ?", companyID)
	if filter.JobID != "" {
		tx = tx.Where("job_id = ?", filter.JobID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		tx = tx.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
	}
	return tx
}

func (i impl) Delete(companyID, id string) error {
	if err := i.db.Where("candidate_id = ?", id).Delete(&dbmodels.Interview{}).Error; err != nil {
		return err
	}
	if err := i.db.Where("candidate_id = ?", id).Delete(&dbmodels.Offer{}).Error; err != nil {
		return err
	}
	if err := i.db.Where("candidate_id = ?", id).Delete(&dbmodels.Hire{}).Error; err != nil {
		return err
	}
	if err := i.db.Where("candidate_id = ?", id).Delete(&dbmodels.AIAnalysisResult{}).Error; err != nil {
		return err
	}
	err := i.db.
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		Delete(&dbmodels.CandidateApplication{}).
		Error
	return err
}
