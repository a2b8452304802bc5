package pipeline

import (
	"fmt"
	"time"

	"ats-backend/config"
	"ats-backend/db"
	activitylogstore "ats-backend/lib/activity-log/store"
	candidatestore "ats-backend/lib/candidate/store"
	companystore "ats-backend/lib/company/store"
	usersstore "ats-backend/lib/company/users/store"
	pdfexport "ats-backend/lib/export/pdf"
	jobstore "ats-backend/lib/job/store"
	"ats-backend/lib/notification"
	pipelinestore "ats-backend/lib/pipeline/store"
	"ats-backend/lib/utils/apperr"
	"ats-backend/models"
	candidateapimodels "ats-backend/models/api/candidate"
	dbmodels "ats-backend/models/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	// Transition moves a candidate to another stage. The status change, audit
	// record and the stage's side records commit atomically; notifications go
	// out only after the commit.
	Transition(companyID, candidateID, userID string, req candidateapimodels.TransitionRequest) (candidateapimodels.CandidateView, error)
	// OfferLetter renders the offer as a downloadable PDF.
	OfferLetter(companyID, offerID string) (fileName string, pdfFile []byte, err error)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		store:        candidatestore.NewInstance(db.DB),
		offerStore:   pipelinestore.NewInstance(db.DB),
		jobStore:     jobstore.NewInstance(db.DB),
		userStore:    usersstore.NewInstance(db.DB),
		companyStore: companystore.NewInstance(db.DB),
		runTx: func(fn func(s TxStores) error) error {
			return db.DB.Transaction(func(tx *gorm.DB) error {
				return fn(TxStores{
					Candidate: candidatestore.NewInstance(tx),
					Pipeline:  pipelinestore.NewInstance(tx),
					Activity:  activitylogstore.NewInstance(tx),
				})
			})
		},
		flush: func(outbox *notification.Outbox) {
			notification.Instance.Flush(outbox)
		},
	}
}

// TxStores bundles the transaction-scoped stores a transition writes through.
type TxStores struct {
	Candidate candidatestore.Provider
	Pipeline  pipelinestore.Provider
	Activity  activitylogstore.Provider
}

type impl struct {
	store        candidatestore.Provider
	offerStore   pipelinestore.Provider
	jobStore     jobstore.Provider
	userStore    usersstore.Provider
	companyStore companystore.Provider
	runTx        func(fn func(s TxStores) error) error
	flush        func(outbox *notification.Outbox)
}

func (i *impl) Transition(companyID, candidateID, userID string, req candidateapimodels.TransitionRequest) (candidateapimodels.CandidateView, error) {
	if err := req.Validate(); err != nil {
		return candidateapimodels.CandidateView{}, apperr.Validation(err.Error())
	}
	cand, err := i.store.GetByID(companyID, candidateID)
	if err != nil {
		return candidateapimodels.CandidateView{}, err
	}
	if cand == nil {
		return candidateapimodels.CandidateView{}, apperr.NotFound("candidate not found")
	}
	if cand.Status != req.FromStatus {
		return candidateapimodels.CandidateView{}, apperr.Conflict(
			fmt.Sprintf("the candidate is already in stage %q", cand.Status.ToHuman()))
	}
	if !models.AllowedFrom(cand.Status)[req.ToStatus] {
		return candidateapimodels.CandidateView{}, apperr.Validation(
			fmt.Sprintf("transition %s -> %s is not allowed", cand.Status, req.ToStatus))
	}

	userName := models.SystemUser
	if userID != "" {
		user, err := i.userStore.GetByID(userID)
		if err == nil && user != nil {
			userName = user.GetFullName()
		}
	}

	outbox := &notification.Outbox{}
	err = i.runTx(func(s TxStores) error {
		updated, txErr := s.Candidate.UpdateStatusFrom(companyID, candidateID, req.FromStatus, req.ToStatus)
		if txErr != nil {
			return txErr
		}
		if updated == 0 {
			return apperr.Conflict("the candidate was moved by someone else, refresh and retry")
		}
		if txErr = i.writeAuditRecord(s, companyID, candidateID, userID, userName, req); txErr != nil {
			return txErr
		}
		return i.writeSideRecords(s, companyID, cand, req)
	})
	if err != nil {
		return candidateapimodels.CandidateView{}, err
	}

	i.collectNotifications(outbox, companyID, cand, req)
	i.flush(outbox)

	updated, err := i.store.GetByID(companyID, candidateID)
	if err != nil || updated == nil {
		// the move itself committed, degrade to the pre-read view
		view := candidateapimodels.Convert(*cand)
		view.Status = req.ToStatus
		view.StatusName = req.ToStatus.ToHuman()
		view.StageOrder = req.ToStatus.Order()
		return view, nil
	}
	return candidateapimodels.Convert(*updated), nil
}

func (i *impl) OfferLetter(companyID, offerID string) (string, []byte, error) {
	offer, err := i.offerStore.GetOfferByID(companyID, offerID)
	if err != nil {
		return "", nil, err
	}
	if offer == nil {
		return "", nil, apperr.NotFound("offer not found")
	}
	data := pdfexport.OfferLetterData{
		Salary:   offer.Salary,
		Benefits: offer.Benefits,
		SentDate: offer.SentAt.Format("02.01.2006"),
	}
	if offer.Candidate != nil {
		data.CandidateName = offer.Candidate.GetFullName()
	}
	if company, err := i.companyStore.GetByID(companyID); err == nil && company != nil {
		data.CompanyName = company.Name
		data.CompanyEmail = company.ContactEmail
	}
	if offer.JobID != nil {
		if job, err := i.jobStore.GetByID(companyID, *offer.JobID); err == nil && job != nil {
			data.JobTitle = job.Title
		}
	}
	pdfFile, err := pdfexport.GenerateOfferLetter(data)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("offer_%s.pdf", offer.ID), pdfFile, nil
}

func (i *impl) writeAuditRecord(s TxStores, companyID, candidateID, userID, userName string, req candidateapimodels.TransitionRequest) error {
	rec := dbmodels.ActivityLog{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			CompanyID: companyID,
		},
		EntityType: dbmodels.EntityTypeCandidate,
		EntityID:   candidateID,
		UserName:   userName,
		ActionType: dbmodels.HistoryTypeStageChange,
		Changes: dbmodels.ActivityChanges{
			Description: fmt.Sprintf("Stage changed: %s -> %s", req.FromStatus.ToHuman(), req.ToStatus.ToHuman()),
			Reason:      req.Reason,
			Data: []dbmodels.ActivityChange{
				{Field: "status", OldValue: req.FromStatus, NewValue: req.ToStatus},
			},
		},
	}
	if userID != "" {
		rec.UserID = &userID
	}
	_, err := s.Activity.Create(rec)
	return err
}

// writeSideRecords produces the stage-specific rows: the offer on offer-sent,
// the offer resolution on accept/decline and the hire record on hired.
func (i *impl) writeSideRecords(s TxStores, companyID string, cand *dbmodels.CandidateApplication, req candidateapimodels.TransitionRequest) error {
	switch req.ToStatus {
	case models.StageOfferSent:
		salary := req.Salary
		if salary == 0 {
			salary = cand.ExpectedSalary
		}
		_, err := s.Pipeline.UpsertOffer(dbmodels.Offer{
			BaseCompanyModel: dbmodels.BaseCompanyModel{
				CompanyID: companyID,
			},
			CandidateID: cand.ID,
			JobID:       cand.JobID,
			Salary:      salary,
			Status:      dbmodels.OfferStatusSent,
			SentAt:      time.Now(),
		})
		return err
	case models.StageOfferAccepted:
		return s.Pipeline.UpdateOfferStatus(companyID, cand.ID, dbmodels.OfferStatusAccepted)
	case models.StageOfferDeclined:
		return s.Pipeline.UpdateOfferStatus(companyID, cand.ID, dbmodels.OfferStatusDeclined)
	case models.StageHired:
		existing, err := s.Pipeline.GetHireByCandidate(companyID, cand.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		salary := req.Salary
		if salary == 0 {
			offer, err := s.Pipeline.GetOfferByCandidate(companyID, cand.ID)
			if err != nil {
				return err
			}
			if offer != nil {
				salary = offer.Salary
			}
		}
		if salary == 0 {
			salary = cand.ExpectedSalary
		}
		fee := float64(salary) * config.Conf.Billing.PlacementFeePercent / 100
		_, err = s.Pipeline.CreateHire(dbmodels.Hire{
			BaseCompanyModel: dbmodels.BaseCompanyModel{
				CompanyID: companyID,
			},
			CandidateID:  cand.ID,
			JobID:        cand.JobID,
			Salary:       salary,
			PlacementFee: fee,
			HiredAt:      time.Now(),
		})
		return err
	}
	return nil
}

func (i *impl) collectNotifications(outbox *notification.Outbox, companyID string, cand *dbmodels.CandidateApplication, req candidateapimodels.TransitionRequest) {
	companyName := ""
	if company, err := i.companyStore.GetByID(companyID); err == nil && company != nil {
		companyName = company.Name
	}
	jobTitle := ""
	if cand.Job != nil {
		jobTitle = cand.Job.Title
	}
	data := notification.StageChangeData{
		CandidateName: cand.GetFullName(),
		JobTitle:      jobTitle,
		CompanyName:   companyName,
		FromStage:     req.FromStatus.ToHuman(),
		Reason:        req.Reason,
	}

	subject, body, err := notification.StageChangedCandidateMsg(req.ToStatus, data)
	if err != nil {
		log.WithError(err).Error("failed to render candidate stage email")
	} else {
		outbox.AddEmail(cand.Email, subject, body)
	}

	pushCode := models.PushCodeStageChanged
	switch req.ToStatus {
	case models.StageOfferSent:
		pushCode = models.PushCodeOfferSent
	case models.StageHired:
		pushCode = models.PushCodeCandidateHired
	}
	pushText := fmt.Sprintf("%s moved to %s", cand.GetFullName(), req.ToStatus.ToHuman())
	recruiterSubject, recruiterBody, err := notification.StageChangedRecruiterMsg(req.ToStatus, data)
	if err != nil {
		log.WithError(err).Error("failed to render recruiter stage email")
	}
	recruiters, err := i.userStore.ListByRoles(companyID,
		[]string{string(models.CompanyAdminRole), string(models.CompanyRecruiterRole)})
	if err != nil {
		log.WithError(err).WithField("company_id", companyID).Error("failed to list recruiters for push notification")
		return
	}
	for _, recruiter := range recruiters {
		if recruiterBody != "" {
			outbox.AddEmail(recruiter.Email, recruiterSubject, recruiterBody)
		}
		outbox.AddPush(recruiter.ID, pushCode, pushText)
	}
}
