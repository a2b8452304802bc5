package activitylog

import (
	"ats-backend/db"
	activitylogstore "ats-backend/lib/activity-log/store"
	usersstore "ats-backend/lib/company/users/store"
	"ats-backend/models"
	candidateapimodels "ats-backend/models/api/candidate"
	dbmodels "ats-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	List(companyID, entityType, entityID string, filter candidateapimodels.ActivityLogFilter) ([]candidateapimodels.ActivityLogView, int64, error)
	// Save is fire-and-forget: audit writes outside a transaction must never
	// fail the action they describe. For transactional writes use SaveTx.
	Save(companyID, entityType, entityID, userID string, action dbmodels.ActionType, changes dbmodels.ActivityChanges)
	// SaveTx builds the same record but returns the error, for callers that
	// write the audit row inside the same transaction as the state change.
	SaveTx(store activitylogstore.Provider, companyID, entityType, entityID, userID string, action dbmodels.ActionType, changes dbmodels.ActivityChanges) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:     activitylogstore.NewInstance(db.DB),
		userStore: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store     activitylogstore.Provider
	userStore usersstore.Provider
}

func (i impl) List(companyID, entityType, entityID string, filter candidateapimodels.ActivityLogFilter) ([]candidateapimodels.ActivityLogView, int64, error) {
	rowCount, err := i.store.ListCount(companyID, entityType, entityID)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []candidateapimodels.ActivityLogView{}, rowCount, nil
	}
	list, err := i.store.List(companyID, entityType, entityID, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]candidateapimodels.ActivityLogView, 0, len(list))
	for _, rec := range list {
		result = append(result, candidateapimodels.ActivityLogConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) Save(companyID, entityType, entityID, userID string, action dbmodels.ActionType, changes dbmodels.ActivityChanges) {
	err := i.SaveTx(i.store, companyID, entityType, entityID, userID, action, changes)
	if err != nil {
		log.WithError(err).
			WithField("company_id", companyID).
			WithField("entity_type", entityType).
			WithField("entity_id", entityID).
			WithField("action", action).
			Error("failed to save activity log record")
	}
}

func (i impl) SaveTx(store activitylogstore.Provider, companyID, entityType, entityID, userID string, action dbmodels.ActionType, changes dbmodels.ActivityChanges) error {
	rec := dbmodels.ActivityLog{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			CompanyID: companyID,
		},
		EntityType: entityType,
		EntityID:   entityID,
		ActionType: action,
		Changes:    changes,
	}
	rec.UserName = models.SystemUser
	if userID != "" {
		rec.UserID = &userID
		user, err := i.userStore.GetByID(userID)
		if err != nil {
			return err
		}
		if user != nil {
			rec.UserName = user.GetFullName()
		}
	}
	_, err := store.Create(rec)
	return err
}
