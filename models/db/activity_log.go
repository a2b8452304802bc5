package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
)

// ActivityLog is the append-only audit trail. Rows are written whenever a
// pipeline transition, job change or hire happens, and are never updated.
type ActivityLog struct {
	BaseCompanyModel
	EntityType string  `gorm:"type:varchar(50);index"` // candidate/job/interview
	EntityID   string  `gorm:"type:varchar(36);index"`
	UserID     *string `gorm:"type:varchar(36)"`
	UserName   string  `gorm:"type:varchar(255)"`
	ActionType ActionType      `gorm:"type:varchar(100)"`
	Changes    ActivityChanges `gorm:"type:jsonb"`
}

const (
	EntityTypeCandidate = "candidate"
	EntityTypeJob       = "job"
	EntityTypeInterview = "interview"
)

type ActionType string

const (
	HistoryTypeAdded       ActionType = "added"
	HistoryTypeUpdate      ActionType = "update"
	HistoryTypeStageChange ActionType = "stage_change"
	HistoryTypeJobStatus   ActionType = "job_status_change"
	HistoryTypeInterview   ActionType = "interview_scheduled"
	HistoryTypeOffer       ActionType = "offer"
	HistoryTypeHire        ActionType = "hire"
	HistoryTypeDelete      ActionType = "delete"
)

type ActivityChanges struct {
	Description string           `json:"description"`
	Reason      string           `json:"reason,omitempty"`
	Data        []ActivityChange `json:"data,omitempty"`
}

type ActivityChange struct {
	Field    string      `json:"field"`
	OldValue interface{} `json:"old_value"`
	NewValue interface{} `json:"new_value"`
}

func (j ActivityChanges) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *ActivityChanges) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}
