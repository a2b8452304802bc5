package jobstore

import (
	"ats-backend/models"
	jobapimodels "ats-backend/models/api/job"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.JobPost) (id string, err error)
	Update(companyID, id string, updMap map[string]interface{}) error
	GetByID(companyID, id string) (*dbmodels.JobPost, error)
	GetBySlug(slug string) (*dbmodels.JobPost, error)
	SlugExists(slug string) (bool, error)
	ListCount(companyID string, filter jobapimodels.JobFilter) (int64, error)
	List(companyID string, filter jobapimodels.JobFilter) ([]dbmodels.JobPost, error)
	ListPublic() ([]dbmodels.JobPost, error)
	// DeleteCascade removes the job and everything hanging off it. Call it on
	// a transaction-scoped instance only.
	DeleteCascade(companyID, id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.JobPost) (id string, err error) {
	err = i.db.
		Omit("Author").
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
		Model(&dbmodels.JobPost{}).
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		Updates(updMap).
		Error
	return err
}

func (i impl) GetByID(companyID, id string) (*dbmodels.JobPost, error) {
	rec := dbmodels.JobPost{}
	err := i.db.
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		Preload("Author").
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

// GetBySlug is the public lookup, so it is not tenant-scoped.
func (i impl) GetBySlug(slug string) (*dbmodels.JobPost, error) {
	rec := dbmodels.JobPost{}
	err := i.db.
		Where("slug = ?", slug).
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

func (i impl) SlugExists(slug string) (bool, error) {
	var count int64
	err := i.db.
		Model(dbmodels.JobPost{}).
		Where("slug = ?", slug).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) ListCount(companyID string, filter jobapimodels.JobFilter) (int64, error) {
	var rowCount int64
	err := i.listQuery(companyID, filter).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) List(companyID string, filter jobapimodels.JobFilter) ([]dbmodels.JobPost, error) {
	list := []dbmodels.JobPost{}
	tx := i.listQuery(companyID, filter)
	page, limit := filter.GetPage()
	tx.Limit(limit).Offset((page - 1) * limit)
	tx.Order("created_at desc")
	err := tx.Preload("Author").Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) listQuery(companyID string, filter jobapimodels.JobFilter) *gorm.DB {
	tx := i.db.
		Model(dbmodels.JobPost{}).
		Where("company_id = ?", companyID)
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		tx = tx.Where("title ILIKE ? OR location ILIKE ?", like, like)
	}
	return tx
}

func (i impl) ListPublic() ([]dbmodels.JobPost, error) {
	list := []dbmodels.JobPost{}
	err := i.db.
		Model(dbmodels.JobPost{}).
		Where("status = ?", models.JobStatusActive).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) DeleteCascade(companyID, id string) error {
	var candidateIDs []string
	err := i.db.
		Model(dbmodels.CandidateApplication{}).
		Where("company_id = ?", companyID).
		Where("job_id = ?", id).
		Pluck("id", &candidateIDs).
		Error
	if err != nil {
		return err
	}
	if len(candidateIDs) > 0 {
		if err = i.db.Where("candidate_id IN ?", candidateIDs).Delete(&dbmodels.Interview{}).Error; err != nil {
			return err
		}
		if err = i.db.Where("candidate_id IN ?", candidateIDs).Delete(&dbmodels.Offer{}).Error; err != nil {
			return err
		}
		if err = i.db.Where("candidate_id IN ?", candidateIDs).Delete(&dbmodels.Hire{}).Error; err != nil {
			return err
		}
	}
	if err = i.db.Where("job_id = ?", id).Delete(&dbmodels.AIAnalysisResult{}).Error; err != nil {
		return err
	}
	if err = i.db.
		Where("company_id = ?", companyID).
		Where("job_id = ?", id).
		Delete(&dbmodels.CandidateApplication{}).
		Error; err != nil {
		return err
	}
	err = i.db.
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		Delete(&dbmodels.JobPost{}).
		Error
	return err
}
