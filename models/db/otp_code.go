package dbmodels

import "time"

type OtpCode struct {
	BaseModel
	Email         string `gorm:"type:varchar(255);index"`
	Code          string `gorm:"type:varchar(10)"`
	DateGenerated time.Time
	DateExpires   time.Time
	DateUsed      *time.Time
}
