package company

import (
	"ats-backend/db"
	companystore "ats-backend/lib/company/store"
	usersstore "ats-backend/lib/company/users/store"
	"ats-backend/lib/utils/apperr"
	"ats-backend/models"
	companyapimodels "ats-backend/models/api/company"
	dbmodels "ats-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Create(data companyapimodels.CompanyData, adminEmail string) (id string, err error)
	Update(id string, data companyapimodels.CompanyData) error
	SetActive(id string, isActive bool) error
	Get(id string) (companyapimodels.CompanyView, error)
	List() ([]companyapimodels.CompanyView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:     companystore.NewInstance(db.DB),
		userStore: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store     companystore.Provider
	userStore usersstore.Provider
}

// Create provisions a tenant together with its first admin user. The admin
// logs in by OTP, so only the email is required.
func (i impl) Create(data companyapimodels.CompanyData, adminEmail string) (id string, err error) {
	if err = data.Validate(); err != nil {
		return "", apperr.Validation(err.Error())
	}
	if adminEmail == "" {
		return "", apperr.Validation("admin email is required")
	}
	existing, err := i.userStore.GetByEmail(adminEmail)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", apperr.Conflict("user with this email already exists")
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		txCompanyStore := companystore.NewInstance(tx)
		txUserStore := usersstore.NewInstance(tx)
		companyID, txErr := txCompanyStore.Create(dbmodels.Company{
			Name:         data.Name,
			Description:  data.Description,
			Website:      data.Website,
			ContactEmail: data.ContactEmail,
			Phone:        data.Phone,
			Address:      data.Address,
			IsActive:     true,
		})
		if txErr != nil {
			return txErr
		}
		_, txErr = txUserStore.Create(dbmodels.User{
			BaseCompanyModel: dbmodels.BaseCompanyModel{
				CompanyID: companyID,
			},
			Email:  adminEmail,
			Role:   models.CompanyAdminRole,
			Status: models.UserStatusActive,
		})
		if txErr != nil {
			return txErr
		}
		id = companyID
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (i impl) Update(id string, data companyapimodels.CompanyData) error {
	if err := data.Validate(); err != nil {
		return apperr.Validation(err.Error())
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperr.NotFound("company not found")
	}
	updMap := map[string]interface{}{
		"name":          data.Name,
		"description":   data.Description,
		"website":       data.Website,
		"contact_email": data.ContactEmail,
		"phone":         data.Phone,
		"address":       data.Address,
	}
	return i.store.Update(id, updMap)
}

func (i impl) SetActive(id string, isActive bool) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperr.NotFound("company not found")
	}
	return i.store.Update(id, map[string]interface{}{"is_active": isActive})
}

func (i impl) Get(id string) (companyapimodels.CompanyView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return companyapimodels.CompanyView{}, err
	}
	if rec == nil {
		return companyapimodels.CompanyView{}, apperr.NotFound("company not found")
	}
	return companyapimodels.CompanyConvert(*rec), nil
}

func (i impl) List() ([]companyapimodels.CompanyView, error) {
	list, err := i.store.List()
	if err != nil {
		return nil, err
	}
	result := make([]companyapimodels.CompanyView, 0, len(list))
	for _, rec := range list {
		result = append(result, companyapimodels.CompanyConvert(rec))
	}
	return result, nil
}
