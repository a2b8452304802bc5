package pipelinestore

import (
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Provider persists the records produced by terminal pipeline transitions:
// offers and hires.
type Provider interface {
	GetOfferByID(companyID, id string) (*dbmodels.Offer, error)
	GetOfferByCandidate(companyID, candidateID string) (*dbmodels.Offer, error)
	// UpsertOffer creates the candidate's offer or refreshes the existing one;
	// a candidate has at most one offer.
	UpsertOffer(rec dbmodels.Offer) (id string, err error)
	UpdateOfferStatus(companyID, candidateID string, status dbmodels.OfferStatus) error
	GetHireByCandidate(companyID, candidateID string) (*dbmodels.Hire, error)
	CreateHire(rec dbmodels.Hire) (id string, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetOfferByID(companyID, id string) (*dbmodels.Offer, error) {
	rec := dbmodels.Offer{}
	err := i.db.
		Preload("Candidate").
		Where("company_id = ?", companyID).
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

func (i impl) GetOfferByCandidate(companyID, candidateID string) (*dbmodels.Offer, error) {
	rec := dbmodels.Offer{}
	err := i.db.
		Where("company_id = ?", companyID).
		Where("candidate_id = ?", candidateID).
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

func (i impl) UpsertOffer(rec dbmodels.Offer) (id string, err error) {
	existing, err := i.GetOfferByCandidate(rec.CompanyID, rec.CandidateID)
	if err != nil {
		return "", err
	}
	if existing == nil {
		err = i.db.Omit("Candidate").Create(&rec).Error
		if err != nil {
			return "", err
		}
		return rec.ID, nil
	}
	err = i.db.
		Model(&dbmodels.Offer{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"salary":   rec.Salary,
			"benefits": rec.Benefits,
			"status":   rec.Status,
			"sent_at":  rec.SentAt,
		}).
		Error
	if err != nil {
		return "", err
	}
	return existing.ID, nil
}

func (i impl) UpdateOfferStatus(companyID, candidateID string, status dbmodels.OfferStatus) error {
	err := i.db.
		Model(&dbmodels.Offer{}).
		Where("company_id = ?", companyID).
		Where("candidate_id = ?", candidateID).
		Update("status", status).
		Error
	return err
}

func (i impl) GetHireByCandidate(companyID, candidateID string) (*dbmodels.Hire, error) {
	rec := dbmodels.Hire{}
	err := i.db.
		Where("company_id = ?", companyID).
		Where("candidate_id = ?", candidateID).
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

func (i impl) CreateHire(rec dbmodels.Hire) (id string, err error) {
	err = i.db.Omit("Candidate").Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}
