package aistore

import (
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Get(companyID, candidateID, jobID string) (*dbmodels.AIAnalysisResult, error)
	Save(rec dbmodels.AIAnalysisResult) (id string, err error)
	Delete(companyID, candidateID, jobID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Get(companyID, candidateID, jobID string) (*dbmodels.AIAnalysisResult, error) {
	rec := dbmodels.AIAnalysisResult{}
	err := i.db.
		Where("company_id = ?", companyID).
		Where("candidate_id = ?", candidateID).
		Where("job_id = ?", jobID).
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

func (i impl) Save(rec dbmodels.AIAnalysisResult) (id string, err error) {
	existing, err := i.Get(rec.CompanyID, rec.CandidateID, rec.JobID)
	if err != nil {
		return "", err
	}
	if existing == nil {
		err = i.db.Create(&rec).Error
		if err != nil {
			return "", err
		}
		return rec.ID, nil
	}
	err = i.db.
		Model(&dbmodels.AIAnalysisResult{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"score":       rec.Score,
			"verdict":     rec.Verdict,
			"explanation": rec.Explanation,
			"analyzed_at": rec.AnalyzedAt,
		}).
		Error
	if err != nil {
		return "", err
	}
	return existing.ID, nil
}

func (i impl) Delete(companyID, candidateID, jobID string) error {
	err := i.db.
		Where("company_id = ?", companyID).
		Where("candidate_id = ?", candidateID).
		Where("job_id = ?", jobID).
		Delete(&dbmodels.AIAnalysisResult{}).
		Error
	return err
}
