package interview

import (
	"fmt"

	"ats-backend/db"
	activitylogstore "ats-backend/lib/activity-log/store"
	candidatestore "ats-backend/lib/candidate/store"
	usersstore "ats-backend/lib/company/users/store"
	interviewstore "ats-backend/lib/interview/store"
	jobstore "ats-backend/lib/job/store"
	"ats-backend/lib/notification"
	"ats-backend/lib/utils/apperr"
	"ats-backend/models"
	interviewapimodels "ats-backend/models/api/interview"
	dbmodels "ats-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Schedule(companyID, userID string, req interviewapimodels.ScheduleRequest) (interviewapimodels.InterviewView, error)
	// BulkSchedule creates one interview per candidate; a failed candidate is
	// reported in its result item and never aborts the others.
	BulkSchedule(companyID, userID string, req interviewapimodels.BulkScheduleRequest) ([]interviewapimodels.BulkScheduleItem, error)
	SetFeedback(companyID, id string, req interviewapimodels.FeedbackRequest) error
	// Reschedule moves the slot and puts the interview back to scheduled.
	Reschedule(companyID, id string, req interviewapimodels.RescheduleRequest) error
	Get(companyID, id string) (interviewapimodels.InterviewView, error)
	List(companyID string, filter interviewapimodels.InterviewFilter) ([]interviewapimodels.InterviewView, int64, error)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		store:         interviewstore.NewInstance(db.DB),
		candStore:     candidatestore.NewInstance(db.DB),
		jobStore:      jobstore.NewInstance(db.DB),
		userStore:     usersstore.NewInstance(db.DB),
		activityStore: activitylogstore.NewInstance(db.DB),
		flush: func(outbox *notification.Outbox) {
			notification.Instance.Flush(outbox)
		},
	}
}

type impl struct {
	store         interviewstore.Provider
	candStore     candidatestore.Provider
	jobStore      jobstore.Provider
	userStore     usersstore.Provider
	activityStore activitylogstore.Provider
	flush         func(outbox *notification.Outbox)
}

func (i *impl) Schedule(companyID, userID string, req interviewapimodels.ScheduleRequest) (interviewapimodels.InterviewView, error) {
	if err := req.Validate(); err != nil {
		return interviewapimodels.InterviewView{}, apperr.Validation(err.Error())
	}
	cand, err := i.candStore.GetByID(companyID, req.CandidateID)
	if err != nil {
		return interviewapimodels.InterviewView{}, err
	}
	if cand == nil {
		return interviewapimodels.InterviewView{}, apperr.NotFound("candidate not found")
	}
	job, err := i.jobStore.GetByID(companyID, req.JobID)
	if err != nil {
		return interviewapimodels.InterviewView{}, err
	}
	if job == nil {
		return interviewapimodels.InterviewView{}, apperr.NotFound("job not found")
	}
	date, _ := req.ParseDate()
	rec := dbmodels.Interview{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			CompanyID: companyID,
		},
		CandidateID: req.CandidateID,
		JobID:       req.JobID,
		Type:        req.Type,
		Mode:        req.Mode,
		Status:      models.InterviewStatusScheduled,
		Date:        date,
		TimeSlot:    req.TimeSlot,
		Interviewer: req.Interviewer,
		Notes:       req.Notes,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return interviewapimodels.InterviewView{}, err
	}
	i.saveAudit(companyID, userID, cand, job, req)

	outbox := &notification.Outbox{}
	i.collectNotifications(outbox, companyID, cand, job, req)
	i.flush(outbox)

	rec.ID = id
	rec.Candidate = cand
	rec.Job = job
	return interviewapimodels.Convert(rec), nil
}

func (i *impl) BulkSchedule(companyID, userID string, req interviewapimodels.BulkScheduleRequest) ([]interviewapimodels.BulkScheduleItem, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Validation(err.Error())
	}
	results := make([]interviewapimodels.BulkScheduleItem, 0, len(req.CandidateIDs))
	for _, candidateID := range req.CandidateIDs {
		view, err := i.Schedule(companyID, userID, req.ForCandidate(candidateID))
		if err != nil {
			results = append(results, interviewapimodels.BulkScheduleItem{
				CandidateID: candidateID,
				Status:      "error",
				Error:       err.Error(),
			})
			continue
		}
		results = append(results, interviewapimodels.BulkScheduleItem{
			CandidateID: candidateID,
			Status:      "scheduled",
			InterviewID: view.ID,
		})
	}
	return results, nil
}

func (i *impl) SetFeedback(companyID, id string, req interviewapimodels.FeedbackRequest) error {
	if err := req.Validate(); err != nil {
		return apperr.Validation(err.Error())
	}
	rec, err := i.store.GetByID(companyID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperr.NotFound("interview not found")
	}
	return i.store.Update(companyID, id, map[string]interface{}{
		"status":   req.Status,
		"feedback": req.Feedback,
	})
}

func (i *impl) Reschedule(companyID, id string, req interviewapimodels.RescheduleRequest) error {
	if err := req.Validate(); err != nil {
		return apperr.Validation(err.Error())
	}
	rec, err := i.store.GetByID(companyID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperr.NotFound("interview not found")
	}
	date, _ := req.ParseDate()
	return i.store.Update(companyID, id, map[string]interface{}{
		"date":      date,
		"time_slot": req.TimeSlot,
		"status":    models.InterviewStatusScheduled,
	})
}

func (i *impl) Get(companyID, id string) (interviewapimodels.InterviewView, error) {
	rec, err := i.store.GetByID(companyID, id)
	if err != nil {
		return interviewapimodels.InterviewView{}, err
	}
	if rec == nil {
		return interviewapimodels.InterviewView{}, apperr.NotFound("interview not found")
	}
	return interviewapimodels.Convert(*rec), nil
}

func (i *impl) List(companyID string, filter interviewapimodels.InterviewFilter) ([]interviewapimodels.InterviewView, int64, error) {
	rowCount, err := i.store.ListCount(companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	if int64((page-1)*limit) > rowCount {
		return []interviewapimodels.InterviewView{}, rowCount, nil
	}
	list, err := i.store.List(companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]interviewapimodels.InterviewView, 0, len(list))
	for _, rec := range list {
		result = append(result, interviewapimodels.Convert(rec))
	}
	return result, rowCount, nil
}

func (i *impl) saveAudit(companyID, userID string, cand *dbmodels.CandidateApplication, job *dbmodels.JobPost, req interviewapimodels.ScheduleRequest) {
	rec := dbmodels.ActivityLog{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			CompanyID: companyID,
		},
		EntityType: dbmodels.EntityTypeCandidate,
		EntityID:   cand.ID,
		ActionType: dbmodels.HistoryTypeInterview,
		Changes: dbmodels.ActivityChanges{
			Description: fmt.Sprintf("%s scheduled for %s %s, job %q",
				req.Type.ToHuman(), req.Date, req.TimeSlot, job.Title),
		},
	}
	rec.UserName = models.SystemUser
	if userID != "" {
		rec.UserID = &userID
		if user, err := i.userStore.GetByID(userID); err == nil && user != nil {
			rec.UserName = user.GetFullName()
		}
	}
	if _, err := i.activityStore.Create(rec); err != nil {
		log.WithError(err).WithField("candidate_id", cand.ID).Error("failed to save interview audit record")
	}
}

func (i *impl) collectNotifications(outbox *notification.Outbox, companyID string, cand *dbmodels.CandidateApplication, job *dbmodels.JobPost, req interviewapimodels.ScheduleRequest) {
	data := notification.InterviewData{
		CandidateName: cand.GetFullName(),
		JobTitle:      job.Title,
		TypeName:      req.Type.ToHuman(),
		Mode:          string(req.Mode),
		Date:          req.Date,
		TimeSlot:      req.TimeSlot,
		Interviewer:   req.Interviewer,
	}
	subject, body, err := notification.InterviewCandidateMsg(req.Type, data)
	if err != nil {
		log.WithError(err).Error("failed to render candidate interview email")
	} else {
		outbox.AddEmail(cand.Email, subject, body)
	}
	pushText := fmt.Sprintf("%s: %s on %s %s", req.Type.ToHuman(), cand.GetFullName(), req.Date, req.TimeSlot)
	recruiterSubject, recruiterBody, err := notification.InterviewRecruiterMsg(data)
	if err != nil {
		log.WithError(err).Error("failed to render recruiter interview email")
	}
	recruiters, err := i.userStore.ListByRoles(companyID,
		[]string{string(models.CompanyAdminRole), string(models.CompanyRecruiterRole)})
	if err != nil {
		log.WithError(err).Error("failed to list recruiters for interview push")
		return
	}
	for _, recruiter := range recruiters {
		if recruiterBody != "" {
			outbox.AddEmail(recruiter.Email, recruiterSubject, recruiterBody)
		}
		outbox.AddPush(recruiter.ID, models.PushCodeInterviewScheduled, pushText)
	}
}
