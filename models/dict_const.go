package models

import "github.com/pkg/errors"

type JobStatus string

const (
	JobStatusDraft  JobStatus = "draft"
	JobStatusActive JobStatus = "active"
	JobStatusPaused JobStatus = "paused"
	JobStatusClosed JobStatus = "closed"
	JobStatusFilled JobStatus = "filled"
)

var jobStatusHumanName = map[JobStatus]string{
	JobStatusDraft:  "Draft",
	JobStatusActive: "Active",
	JobStatusPaused: "Paused",
	JobStatusClosed: "Closed",
	JobStatusFilled: "Filled",
}

func (s JobStatus) IsValid() bool {
	_, ok := jobStatusHumanName[s]
	return ok
}

func (s JobStatus) ToHuman() string {
	if human, exist := jobStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// jobStatusFlow: draft goes live once, a live job can be paused, closed or
// filled, a paused job can go back to active or be closed/filled.
var jobStatusFlow = map[JobStatus][]JobStatus{
	JobStatusDraft:  {JobStatusActive, JobStatusClosed},
	JobStatusActive: {JobStatusPaused, JobStatusClosed, JobStatusFilled},
	JobStatusPaused: {JobStatusActive, JobStatusClosed, JobStatusFilled},
	JobStatusClosed: {},
	JobStatusFilled: {},
}

func (s JobStatus) IsAllowStatusChange(newStatus JobStatus) (bool, error) {
	if !newStatus.IsValid() {
		return false, errors.New("unknown job status")
	}
	if s == newStatus {
		return false, nil
	}
	for _, allowed := range jobStatusFlow[s] {
		if allowed == newStatus {
			return true, nil
		}
	}
	return false, errors.Errorf("job status change %v -> %v is not allowed", s, newStatus)
}

type InterviewType string

const (
	InterviewTypePhone      InterviewType = "phone"
	InterviewTypeTechnical  InterviewType = "technical"
	InterviewTypeBehavioral InterviewType = "behavioral"
	InterviewTypeFinal      InterviewType = "final"
	InterviewTypeHR         InterviewType = "hr"
)

func (t InterviewType) IsValid() bool {
	switch t {
	case InterviewTypePhone, InterviewTypeTechnical, InterviewTypeBehavioral, InterviewTypeFinal, InterviewTypeHR:
		return true
	}
	return false
}

var interviewTypeHumanName = map[InterviewType]string{
	InterviewTypePhone:      "Phone interview",
	InterviewTypeTechnical:  "Technical interview",
	InterviewTypeBehavioral: "Behavioral interview",
	InterviewTypeFinal:      "Final interview",
	InterviewTypeHR:         "HR interview",
}

func (t InterviewType) ToHuman() string {
	if human, exist := interviewTypeHumanName[t]; exist {
		return human
	}
	return string(t)
}

type InterviewMode string

const (
	InterviewModeOnline   InterviewMode = "online"
	InterviewModeInPerson InterviewMode = "in-person"
	InterviewModeHybrid   InterviewMode = "hybrid"
)

func (m InterviewMode) IsValid() bool {
	switch m {
	case InterviewModeOnline, InterviewModeInPerson, InterviewModeHybrid:
		return true
	}
	return false
}

type InterviewStatus string

const (
	InterviewStatusScheduled   InterviewStatus = "scheduled"
	InterviewStatusCompleted   InterviewStatus = "completed"
	InterviewStatusCancelled   InterviewStatus = "cancelled"
	InterviewStatusRescheduled InterviewStatus = "rescheduled"
)

func (s InterviewStatus) IsValid() bool {
	switch s {
	case InterviewStatusScheduled, InterviewStatusCompleted, InterviewStatusCancelled, InterviewStatusRescheduled:
		return true
	}
	return false
}

type CandidateSource string

const (
	SourcePublicApply CandidateSource = "public-apply"
	SourceBulkImport  CandidateSource = "bulk-import"
	SourceManual      CandidateSource = "manual"
)
