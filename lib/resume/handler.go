package resume

import (
	"context"
	"encoding/json"
	"fmt"

	"ats-backend/db"
	activitylogstore "ats-backend/lib/activity-log/store"
	candidatestore "ats-backend/lib/candidate/store"
	usersstore "ats-backend/lib/company/users/store"
	filestorage "ats-backend/lib/file-storage"
	jobstore "ats-backend/lib/job/store"
	"ats-backend/lib/notification"
	parserclient "ats-backend/lib/resume/parser-client"
	resumestore "ats-backend/lib/resume/store"
	"ats-backend/lib/utils/apperr"
	"ats-backend/models"
	resumeapimodels "ats-backend/models/api/resume"
	dbmodels "ats-backend/models/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// UploadedFile is one incoming resume file.
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type Provider interface {
	// PublicApply accepts an application from the public job page. A parse
	// failure degrades to form data only and never rejects the application.
	PublicApply(ctx context.Context, slug string, req resumeapimodels.ApplyRequest, file *UploadedFile) (resumeapimodels.ApplyResponse, error)
	// BulkImport parses and stores each file independently; one broken file
	// never aborts the batch.
	BulkImport(ctx context.Context, companyID, userID string, files []UploadedFile) (resumeapimodels.BulkImportResponse, error)
	List(companyID string, filter resumeapimodels.ResumeDataFilter) ([]resumeapimodels.ResumeDataView, int64, error)
	Delete(companyID, id string) error
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		store:         resumestore.NewInstance(db.DB),
		candStore:     candidatestore.NewInstance(db.DB),
		jobStore:      jobstore.NewInstance(db.DB),
		userStore:     usersstore.NewInstance(db.DB),
		activityStore: activitylogstore.NewInstance(db.DB),
		parser:        parserclient.NewClient(),
		files: func() filestorage.Provider {
			return filestorage.Instance
		},
		flush: func(outbox *notification.Outbox) {
			notification.Instance.Flush(outbox)
		},
	}
}

type impl struct {
	store         resumestore.Provider
	candStore     candidatestore.Provider
	jobStore      jobstore.Provider
	userStore     usersstore.Provider
	activityStore activitylogstore.Provider
	parser        parserclient.Provider
	files         func() filestorage.Provider
	flush         func(outbox *notification.Outbox)
}

func (i *impl) PublicApply(ctx context.Context, slug string, req resumeapimodels.ApplyRequest, file *UploadedFile) (resumeapimodels.ApplyResponse, error) {
	if err := req.Validate(); err != nil {
		return resumeapimodels.ApplyResponse{}, apperr.Validation(err.Error())
	}
	job, err := i.jobStore.GetBySlug(slug)
	if err != nil {
		return resumeapimodels.ApplyResponse{}, err
	}
	if job == nil || job.Status != models.JobStatusActive {
		return resumeapimodels.ApplyResponse{}, apperr.NotFound("job listing not found")
	}
	companyID := job.CompanyID

	rec := dbmodels.CandidateApplication{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			CompanyID: companyID,
		},
		JobID:          &job.ID,
		Status:         models.StageNewApplication,
		Source:         models.SourcePublicApply,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		ExpectedSalary: req.ExpectedSalary,
		CoverLetter:    req.CoverLetter,
	}

	parseWarning := ""
	if file != nil {
		fileID, err := i.files().Upload(ctx, companyID, "", dbmodels.ResumeFileType, file.Name, file.ContentType, file.Data)
		if err != nil {
			// the application survives a broken object store
			log.WithError(err).WithField("slug", slug).Error("failed to store applicant resume file")
		} else {
			rec.ResumeFileID = fileID
		}
		parsed, err := i.parser.Parse(ctx, file.Name, file.Data)
		if err != nil {
			log.WithError(err).WithField("slug", slug).Warn("resume parse failed, application accepted with form data only")
			parseWarning = "the resume could not be parsed automatically"
		} else {
			rec.Skills = parsed.Skills
			rec.TotalExperience = parsed.TotalExperience
			resumeID, err := i.saveResumeData(companyID, file.Name, rec.ResumeFileID, parsed)
			if err != nil {
				log.WithError(err).Error("failed to store parsed resume data")
			} else {
				rec.ResumeDataID = &resumeID
			}
		}
	}

	candidateID, err := i.candStore.Create(rec)
	if err != nil {
		return resumeapimodels.ApplyResponse{}, err
	}
	i.saveApplyAudit(companyID, candidateID, rec.GetFullName(), job.Title)

	outbox := &notification.Outbox{}
	i.collectApplyNotifications(outbox, companyID, rec.GetFullName(), rec.Email, job.Title)
	i.flush(outbox)

	return resumeapimodels.ApplyResponse{
		ApplicationID: candidateID,
		ParseWarning:  parseWarning,
	}, nil
}

func (i *impl) BulkImport(ctx context.Context, companyID, userID string, files []UploadedFile) (resumeapimodels.BulkImportResponse, error) {
	if len(files) == 0 {
		return resumeapimodels.BulkImportResponse{}, apperr.Validation("no files uploaded")
	}
	response := resumeapimodels.BulkImportResponse{
		TotalFiles: len(files),
		Results:    make([]resumeapimodels.BulkImportItem, 0, len(files)),
	}
	for _, file := range files {
		resumeID, err := i.importOne(ctx, companyID, file)
		if err != nil {
			response.FailedFiles++
			response.Results = append(response.Results, resumeapimodels.BulkImportItem{
				FileName: file.Name,
				Status:   "error",
				Error:    err.Error(),
			})
			continue
		}
		response.ImportedFiles++
		response.Results = append(response.Results, resumeapimodels.BulkImportItem{
			FileName:     file.Name,
			Status:       "imported",
			ResumeDataID: resumeID,
		})
	}
	return response, nil
}

func (i *impl) importOne(ctx context.Context, companyID string, file UploadedFile) (string, error) {
	parsed, err := i.parser.Parse(ctx, file.Name, file.Data)
	if err != nil {
		return "", err
	}
	fileID, err := i.files().Upload(ctx, companyID, "", dbmodels.ResumeFileType, file.Name, file.ContentType, file.Data)
	if err != nil {
		return "", err
	}
	return i.saveResumeData(companyID, file.Name, fileID, parsed)
}

func (i *impl) saveResumeData(companyID, fileName, fileID string, parsed resumeapimodels.ParsedResume) (string, error) {
	payload, err := json.Marshal(parsed)
	if err != nil {
		return "", err
	}
	return i.store.Create(dbmodels.ResumeData{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			CompanyID: companyID,
		},
		FileName:        fileName,
		FileID:          fileID,
		Name:            parsed.Name,
		Email:           parsed.Email,
		Phone:           parsed.Phone,
		TotalExperience: parsed.TotalExperience,
		Parsed:          datatypes.JSON(payload),
	})
}

func (i *impl) List(companyID string, filter resumeapimodels.ResumeDataFilter) ([]resumeapimodels.ResumeDataView, int64, error) {
	rowCount, err := i.store.ListCount(companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	if int64((page-1)*limit) > rowCount {
		return []resumeapimodels.ResumeDataView{}, rowCount, nil
	}
	list, err := i.store.List(companyID, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]resumeapimodels.ResumeDataView, 0, len(list))
	for _, rec := range list {
		result = append(result, resumeapimodels.Convert(rec))
	}
	return result, rowCount, nil
}

func (i *impl) Delete(companyID, id string) error {
	rec, err := i.store.GetByID(companyID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperr.NotFound("resume not found")
	}
	return i.store.Delete(companyID, id)
}

func (i *impl) saveApplyAudit(companyID, candidateID, candidateName, jobTitle string) {
	rec := dbmodels.ActivityLog{
		BaseCompanyModel: dbmodels.BaseCompanyModel{
			CompanyID: companyID,
		},
		EntityType: dbmodels.EntityTypeCandidate,
		EntityID:   candidateID,
		UserName:   models.SystemUser,
		ActionType: dbmodels.HistoryTypeAdded,
		Changes: dbmodels.ActivityChanges{
			Description: fmt.Sprintf("%s applied to %q from the public page", candidateName, jobTitle),
		},
	}
	if _, err := i.activityStore.Create(rec); err != nil {
		log.WithError(err).WithField("candidate_id", candidateID).Error("failed to save application audit record")
	}
}

func (i *impl) collectApplyNotifications(outbox *notification.Outbox, companyID, candidateName, email, jobTitle string) {
	subject, body, err := notification.NewApplicationRecruiterMsg(notification.NewApplicationData{
		CandidateName: candidateName,
		JobTitle:      jobTitle,
		Email:         email,
	})
	if err != nil {
		log.WithError(err).Error("failed to render new application email")
		return
	}
	recruiters, err := i.userStore.ListByRoles(companyID,
		[]string{string(models.CompanyAdminRole), string(models.CompanyRecruiterRole)})
	if err != nil {
		log.WithError(err).Error("failed to list recruiters for new application notice")
		return
	}
	pushText := fmt.Sprintf("New application: %s for %s", candidateName, jobTitle)
	for _, recruiter := range recruiters {
		outbox.AddEmail(recruiter.Email, subject, body)
		outbox.AddPush(recruiter.ID, models.PushCodeNewApplication, pushText)
	}
}
