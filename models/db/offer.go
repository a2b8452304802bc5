package dbmodels

import "time"

type OfferStatus string

const (
	OfferStatusSent     OfferStatus = "sent"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusDeclined OfferStatus = "declined"
)

type Offer struct {
	BaseCompanyModel
	CandidateID string                `gorm:"type:varchar(36);uniqueIndex"`
	Candidate   *CandidateApplication `gorm:"foreignKey:CandidateID"`
	JobID       *string               `gorm:"type:varchar(36)"`
	Salary      int
	Benefits    string
	Status      OfferStatus `gorm:"type:varchar(50)"`
	SentAt      time.Time
}

// Hire is the terminal record for revenue reporting. Exactly one per
// candidate; PlacementFee is derived from salary at transition time.
type Hire struct {
	BaseCompanyModel
	CandidateID  string                `gorm:"type:varchar(36);uniqueIndex"`
	Candidate    *CandidateApplication `gorm:"foreignKey:CandidateID"`
	JobID        *string               `gorm:"type:varchar(36)"`
	Salary       int
	PlacementFee float64
	HiredAt      time.Time
}
