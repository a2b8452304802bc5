package companyapimodels

import (
	"strings"

	"ats-backend/models"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
)

type CompanyData struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Website      string `json:"website"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

func (d CompanyData) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("company name is required")
	}
	return nil
}

// CreateCompanyRequest creates the tenant together with its first admin
// user, who logs in by OTP to the given email.
type CreateCompanyRequest struct {
	CompanyData
	AdminEmail string `json:"admin_email"`
}

func (r CreateCompanyRequest) Validate() error {
	if err := r.CompanyData.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.AdminEmail) == "" {
		return errors.New("admin_email is required")
	}
	if !strings.Contains(r.AdminEmail, "@") {
		return errors.New("admin_email is malformed")
	}
	return nil
}

type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

type CompanyView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Website      string `json:"website"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	IsActive     bool   `json:"is_active"`
}

func CompanyConvert(rec dbmodels.Company) CompanyView {
	return CompanyView{
		ID:           rec.ID,
		Name:         rec.Name,
		Description:  rec.Description,
		Website:      rec.Website,
		ContactEmail: rec.ContactEmail,
		Phone:        rec.Phone,
		Address:      rec.Address,
		IsActive:     rec.IsActive,
	}
}

type UserData struct {
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Role      models.UserRole   `json:"role"`
	Status    models.UserStatus `json:"status"`
	ManagerID *string           `json:"manager_id"`
}

func (d UserData) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return errors.New("email is required")
	}
	switch d.Role {
	case models.CompanyAdminRole, models.CompanyRecruiterRole, models.CompanyUserRole:
	default:
		return errors.New("unknown user role")
	}
	return nil
}

type UserView struct {
	ID        string            `json:"id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Role      models.UserRole   `json:"role"`
	RoleName  string            `json:"role_name"`
	Status    models.UserStatus `json:"status"`
	ManagerID *string           `json:"manager_id,omitempty"`
}

func UserConvert(rec dbmodels.User) UserView {
	return UserView{
		ID:        rec.ID,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Email:     rec.Email,
		Phone:     rec.Phone,
		Role:      rec.Role,
		RoleName:  rec.Role.ToHuman(),
		Status:    rec.Status,
		ManagerID: rec.ManagerID,
	}
}
