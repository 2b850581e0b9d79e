package models

import "time"

// SessionStatus is the lifecycle state of a planning session.
type SessionStatus string

const (
	StatusProcessing          SessionStatus = "processing"
	StatusRequirementsMissing SessionStatus = "requirements_missing"
	StatusDraftFailed         SessionStatus = "draft_failed"
	StatusDraftReady          SessionStatus = "draft_ready"
	StatusConfirmed           SessionStatus = "confirmed"
	StatusFinalizationFailed  SessionStatus = "finalization_failed"
	StatusTravelReady         SessionStatus = "travel_ready"
)

// statusRank orders statuses along the pipeline. Transitions never move a
// session to a lower rank within a run; a brand-new request resets to
// processing by replacing the run, not by regressing the old one.
var statusRank = map[SessionStatus]int{
	StatusProcessing:          0,
	StatusRequirementsMissing: 1,
	StatusDraftFailed:         1,
	StatusDraftReady:          2,
	StatusConfirmed:           3,
	StatusFinalizationFailed:  4,
	StatusTravelReady:         4,
}

// CanTransition reports whether moving from s to next keeps the status
// machine monotonic.
func (s SessionStatus) CanTransition(next SessionStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to >= from
}

// Terminal reports whether the planning graph may not advance s further.
func (s SessionStatus) Terminal() bool {
	switch s {
	case StatusRequirementsMissing, StatusDraftFailed, StatusFinalizationFailed, StatusTravelReady:
		return true
	}
	return false
}

// Session is the durable record of one planning conversation. The engine
// creates it at pipeline start and updates it at phase-boundary checkpoints;
// deletion is an external concern.
type Session struct {
	SessionID           string         `json:"sessionId" bson:"session_id"`
	CustomerID          string         `json:"customerId" bson:"customer_id"`
	OriginalRequest     string         `json:"originalRequest" bson:"original_request"`
	Nationality         string         `json:"nationality,omitempty" bson:"nationality,omitempty"`
	ConversationContext map[string]any `json:"conversationContext,omitempty" bson:"conversation_context,omitempty"`

	ExtractedRequirements map[string]any `json:"extractedRequirements,omitempty" bson:"extracted_requirements,omitempty"`
	FinalItinerary        map[string]any `json:"finalItinerary,omitempty" bson:"final_itinerary,omitempty"`

	Status    SessionStatus `json:"status" bson:"status"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updated_at"`
}
