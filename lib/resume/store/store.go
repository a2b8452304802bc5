package resumestore

import (
	resumeapimodels "ats-backend/models/api/resume"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.ResumeData) (id string, err error)
	GetByID(companyID, id string) (*dbmodels.ResumeData, error)
	ListCount(companyID string, filter resumeapimodels.ResumeDataFilter) (int64, error)
	List(companyID string, filter resumeapimodels.ResumeDataFilter) ([]dbmodels.ResumeData, error)
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

func (i impl) Create(rec dbmodels.ResumeData) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(companyID, id string) (*dbmodels.ResumeData, error) {
	rec := dbmodels.ResumeData{}
	err := i.db.
		Where("company_id = ?", companyID).
		Where("id = ?", id).
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

func (i impl) ListCount(companyID string, filter resumeapimodels.ResumeDataFilter) (int64, error) {
	var rowCount int64
	err := i.listQuery(companyID, filter).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) List(companyID string, filter resumeapimodels.ResumeDataFilter) ([]dbmodels.ResumeData, error) {
	list := []dbmodels.ResumeData{}
	tx := i.listQuery(companyID, filter)
	page, limit := filter.GetPage()
	tx.Limit(limit).Offset((page - 1) * limit)
	tx.Order("created_at desc")
	err := tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) listQuery(companyID string, filter resumeapimodels.ResumeDataFilter) *gorm.DB {
	tx := i.db.
		Model(dbmodels.ResumeData{}).
		Where("company_id = ?", companyID)
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		tx = tx.Where("name ILIKE ? OR email ILIKE ? OR file_name ILIKE ?", like, like, like)
	}
	return tx
}

func (i impl) Delete(companyID, id string) error {
	err := i.db.
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		Delete(&dbmodels.ResumeData{}).
		Error
	return err
}
