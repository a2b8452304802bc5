package models

// PipelineStatus is the stage of a candidate application on the hiring board.
// The main flow is strictly ordered; exit stages are reachable from any
// non-terminal stage. The order value is used for board-column ordering and
// reporting only; transition validation is delegated to AllowedFrom.
type PipelineStatus string

const (
	StageNewApplication     PipelineStatus = "new-application"
	StageInitialReview      PipelineStatus = "initial-review"
	StageScreening          PipelineStatus = "screening"
	StagePhoneInterview     PipelineStatus = "phone-interview"
	StageTechnicalInterview PipelineStatus = "technical-interview"
	StageFinalInterview     PipelineStatus = "final-interview"
	StageReferenceCheck     PipelineStatus = "reference-check"
	StageOfferPreparation   PipelineStatus = "offer-preparation"
	StageOfferSent          PipelineStatus = "offer-sent"
	StageOfferNegotiation   PipelineStatus = "offer-negotiation"
	StageOfferAccepted      PipelineStatus = "offer-accepted"
	StageBackgroundCheck    PipelineStatus = "background-check"
	StageOnboarding         PipelineStatus = "onboarding"
	StageHired              PipelineStatus = "hired"

	StageRejected      PipelineStatus = "rejected"
	StageWithdrawn     PipelineStatus = "withdrawn"
	StageOnHold        PipelineStatus = "on-hold"
	StageOfferDeclined PipelineStatus = "offer-declined"
)

// OrderedStages is the forward flow, in board-column order.
var OrderedStages = []PipelineStatus{
	StageNewApplication,
	StageInitialReview,
	StageScreening,
	StagePhoneInterview,
	StageTechnicalInterview,
	StageFinalInterview,
	StageReferenceCheck,
	StageOfferPreparation,
	StageOfferSent,
	StageOfferNegotiation,
	StageOfferAccepted,
	StageBackgroundCheck,
	StageOnboarding,
	StageHired,
}

// ExitStages are the branches out of the forward flow.
var ExitStages = []PipelineStatus{
	StageRejected,
	StageWithdrawn,
	StageOnHold,
	StageOfferDeclined,
}

var stageOrder = func() map[PipelineStatus]int {
	m := make(map[PipelineStatus]int, len(OrderedStages)+len(ExitStages))
	for idx, s := range OrderedStages {
		m[s] = idx
	}
	for idx, s := range ExitStages {
		m[s] = len(OrderedStages) + idx
	}
	return m
}()

var stageHumanName = map[PipelineStatus]string{
	StageNewApplication:     "New application",
	StageInitialReview:      "Initial review",
	StageScreening:          "Screening",
	StagePhoneInterview:     "Phone interview",
	StageTechnicalInterview: "Technical interview",
	StageFinalInterview:     "Final interview",
	StageReferenceCheck:     "Reference check",
	StageOfferPreparation:   "Offer preparation",
	StageOfferSent:          "Offer sent",
	StageOfferNegotiation:   "Offer negotiation",
	StageOfferAccepted:      "Offer accepted",
	StageBackgroundCheck:    "Background check",
	StageOnboarding:         "Onboarding",
	StageHired:              "Hired",
	StageRejected:           "Rejected",
	StageWithdrawn:          "Withdrawn",
	StageOnHold:             "On hold",
	StageOfferDeclined:      "Offer declined",
}

func (s PipelineStatus) IsValid() bool {
	_, ok := stageOrder[s]
	return ok
}

// Order returns the board-column position of the stage, -1 for unknown.
func (s PipelineStatus) Order() int {
	order, ok := stageOrder[s]
	if !ok {
		return -1
	}
	return order
}

func (s PipelineStatus) ToHuman() string {
	if human, exist := stageHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsExit reports whether the stage is a branch out of the forward flow.
func (s PipelineStatus) IsExit() bool {
	for _, e := range ExitStages {
		if s == e {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a candidate in this stage leaves the active board.
func (s PipelineStatus) IsTerminal() bool {
	return s == StageHired || s.IsExit()
}

// AllowedFrom is the transition policy hook. The product currently allows a
// candidate to move from any stage to any stage, the current one included, so
// a replayed move re-runs its side effects; a stricter rule set can be
// plugged in here without touching the data model.
func AllowedFrom(from PipelineStatus) map[PipelineStatus]bool {
	allowed := make(map[PipelineStatus]bool, len(stageOrder))
	for s := range stageOrder {
		allowed[s] = true
	}
	return allowed
}
