package dbmodels

import (
	"fmt"
	"time"

	"ats-backend/models"
)

type User struct {
	BaseCompanyModel
	FirstName string `gorm:"type:varchar(255)"`
	LastName  string `gorm:"type:varchar(255)"`
	Email     string `gorm:"type:varchar(255);index"`
	Phone     string `gorm:"type:varchar(255)"`
	Role      models.UserRole   `gorm:"type:varchar(100)"`
	Status    models.UserStatus `gorm:"type:varchar(50)"`
	// ManagerID forms a shallow reporting hierarchy inside the company.
	ManagerID *string `gorm:"type:varchar(36)"`
	Manager   *User   `gorm:"foreignKey:ManagerID"`
	LastLogin time.Time
}

func (u User) GetFullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

type SuperAdminUser struct {
	BaseModel
	FirstName string `gorm:"type:varchar(255)"`
	LastName  string `gorm:"type:varchar(255)"`
	Email     string `gorm:"type:varchar(255);uniqueIndex"`
	Password  string `gorm:"type:varchar(255)"` // md5 hex
	LastLogin time.Time
}
