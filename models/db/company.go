package dbmodels

type Company struct {
	BaseModel
	Name         string `gorm:"type:varchar(255)"`
	Description  string
	Website      string `gorm:"type:varchar(255)"`
	ContactEmail string `gorm:"type:varchar(255)"`
	Phone        string `gorm:"type:varchar(255)"`
	Address      string
	LogoFileID   string `gorm:"type:varchar(36)"`
	IsActive     bool   `gorm:"default:true"`
}
