package authstore

import (
	"time"

	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	CreateOtp(rec dbmodels.OtpCode) (id string, err error)
	// GetActiveOtp returns the newest unused, unexpired code for the email.
	GetActiveOtp(email string, now time.Time) (*dbmodels.OtpCode, error)
	MarkOtpUsed(id string, now time.Time) error
	InvalidateOtps(email string, now time.Time) error
	GetSuperAdminByEmail(email string) (*dbmodels.SuperAdminUser, error)
	UpdateSuperAdminLastLogin(id string, now time.Time) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateOtp(rec dbmodels.OtpCode) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetActiveOtp(email string, now time.Time) (*dbmodels.OtpCode, error) {
	rec := dbmodels.OtpCode{}
	err := i.db.
		Where("lower(email) = lower(?)", email).
		Where("date_expires > ?", now).
		Where("date_used IS NULL").
		Order("date_generated desc").
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

func (i impl) MarkOtpUsed(id string, now time.Time) error {
	err := i.db.
		Model(&dbmodels.OtpCode{}).
		Where("id = ?", id).
		Update("date_used", now).
		Error
	return err
}

// InvalidateOtps expires every outstanding code for the email, so at most one
// code is valid at a time.
func (i impl) InvalidateOtps(email string, now time.Time) error {
	err := i.db.
		Model(&dbmodels.OtpCode{}).
		Where("lower(email) = lower(?)", email).
		Where("date_expires > ?", now).
		Update("date_expires", now).
		Error
	return err
}

func (i impl) GetSuperAdminByEmail(email string) (*dbmodels.SuperAdminUser, error) {
	rec := dbmodels.SuperAdminUser{}
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

func (i impl) UpdateSuperAdminLastLogin(id string, now time.Time) error {
	err := i.db.
		Model(&dbmodels.SuperAdminUser{}).
		Where("id = ?", id).
		Update("last_login", now).
		Error
	return err
}
