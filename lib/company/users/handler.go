package companyusers

import (
	"ats-backend/db"
	usersstore "ats-backend/lib/company/users/store"
	"ats-backend/lib/utils/apperr"
	companyapimodels "ats-backend/models/api/company"
	dbmodels "ats-backend/models/db"
)

type Provider interface {
	Create(companyID string, data companyapimodels.UserData) (id string, err error)
	Update(companyID, id string, data companyapimodels.UserData) error
	Delete(companyID, id string) error
	Get(companyID, id string) (companyapimodels.UserView, error)
	List(companyID string) ([]companyapimodels.UserView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store usersstore.Provider
}

func (i impl) Create(companyID string, data companyapimodels.UserData) (id string, err error) {
	if err = data.Validate(); err != nil {
		return "", apperr.Validation(err.Error())
	}
	existing, err := i.store.GetByEmail(data.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", apperr.Conflict("user with this email already exists")
	}
	rec := dbmodels.User{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			CompanyID: companyID,
		},
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		Phone:     data.Phone,
		Role:      data.Role,
		Status:    data.Status,
		ManagerID: data.ManagerID,
	}
	return i.store.Create(rec)
}

func (i impl) Update(companyID, id string, data companyapimodels.UserData) error {
	if err := data.Validate(); err != nil {
		return apperr.Validation(err.Error())
	}
	rec, err := i.getOwn(companyID, id)
	if err != nil {
		return err
	}
	if rec.Email != data.Email {
		existing, err := i.store.GetByEmail(data.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.Conflict("user with this email already exists")
		}
	}
	updMap := map[string]interface{}{
		"first_name": data.FirstName,
		"last_name":  data.LastName,
		"email":      data.Email,
		"phone":      data.Phone,
		"role":       data.Role,
		"status":     data.Status,
		"manager_id": data.ManagerID,
	}
	return i.store.Update(companyID, id, updMap)
}

func (i impl) Delete(companyID, id string) error {
	_, err := i.getOwn(companyID, id)
	if err != nil {
		return err
	}
	return i.store.Delete(companyID, id)
}

func (i impl) Get(companyID, id string) (companyapimodels.UserView, error) {
	rec, err := i.getOwn(companyID, id)
	if err != nil {
		return companyapimodels.UserView{}, err
	}
	return companyapimodels.UserConvert(*rec), nil
}

func (i impl) List(companyID string) ([]companyapimodels.UserView, error) {
	list, err := i.store.List(companyID)
	if err != nil {
		return nil, err
	}
	result := make([]companyapimodels.UserView, 0, len(list))
	for _, rec := range list {
		result = append(result, companyapimodels.UserConvert(rec))
	}
	return result, nil
}

// getOwn resolves the user and enforces the tenant boundary.
func (i impl) getOwn(companyID, id string) (*dbmodels.User, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.CompanyID != companyID {
		return nil, apperr.NotFound("user not found")
	}
	return rec, nil
}
