package usersstore

import (
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.User) (id string, err error)
	Update(companyID, id string, updMap map[string]interface{}) error
	Delete(companyID, id string) error
	GetByID(id string) (*dbmodels.User, error)
	GetByEmail(email string) (*dbmodels.User, error)
	List(companyID string) ([]dbmodels.User, error)
	ListByRoles(companyID string, roles []string) ([]dbmodels.User, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.User) (id string, err error) {
	err = i.db.
		Omit("Manager").
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
		Model(&dbmodels.User{}).
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		Updates(updMap).
		Error
	return err
}

func (i impl) Delete(companyID, id string) error {
	err := i.db.
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		Delete(&dbmodels.User{}).
		Error
	return err
}

func (i impl) GetByID(id string) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
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

// GetByEmail is a cross-tenant lookup: the email is the login identity and is
// unique across the whole system.
func (i impl) GetByEmail(email string) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
		Where("lower(email) = lower(?)", email).
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

func (i impl) List(companyID string) ([]dbmodels.User, error) {
	list := []dbmodels.User{}
	err := i.db.
		Model(dbmodels.User{}).
		Where("company_id = ?", companyID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByRoles(companyID string, roles []string) ([]dbmodels.User, error) {
	list := []dbmodels.User{}
	err := i.db.
		Model(dbmodels.User{}).
		Where("company_id = ?", companyID).
		Where("role IN ?", roles).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
