package activitylogstore

import (
	candidateapimodels "ats-backend/models/api/candidate"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.ActivityLog) (id string, err error)
	ListCount(companyID, entityType, entityID string) (count int64, err error)
	List(companyID, entityType, entityID string, filter candidateapimodels.ActivityLogFilter) (list []dbmodels.ActivityLog, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ActivityLog) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListCount(companyID, entityType, entityID string) (count int64, err error) {
	var rowCount int64
	err = i.db.
		Model(dbmodels.ActivityLog{}).
		Where("company_id = ?", companyID).
		Where("entity_type = ?", entityType).
		Where("entity_id = ?", entityID).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) List(companyID, entityType, entityID string, filter candidateapimodels.ActivityLogFilter) (list []dbmodels.ActivityLog, err error) {
	list = []dbmodels.ActivityLog{}
	tx := i.db.
		Model(dbmodels.ActivityLog{}).
		Where("company_id = ?", companyID).
		Where("entity_type = ?", entityType).
		Where("entity_id = ?", entityID)
	page, limit := filter.GetPage()
	tx.Limit(limit).Offset((page - 1) * limit)
	tx.Order("created_at desc")
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
