package models

// PushCode identifies an in-app event on the dashboard websocket.
type PushCode string

const (
	PushCodeStageChanged       PushCode = "STAGE_CHANGED"
	PushCodeInterviewScheduled PushCode = "INTERVIEW_SCHEDULED"
	PushCodeNewApplication     PushCode = "NEW_APPLICATION"
	PushCodeOfferSent          PushCode = "OFFER_SENT"
	PushCodeCandidateHired     PushCode = "CANDIDATE_HIRED"
)
