package convo

import "time"

// Stage is the discrete state of a single user's conversation.
type Stage string

const (
	// StageWaitingService waits for a numbered pick from the service menu.
	StageWaitingService Stage = "waiting_service"
	// StageWaitingLocation waits for a free-text site location.
	StageWaitingLocation Stage = "waiting_location"
	// StageOfferActions offers "book a visit" or "talk to expert".
	StageOfferActions Stage = "offer_actions"
	// StageChooseSlot waits for a numbered pick from the visit slot menu.
	StageChooseSlot Stage = "choose_slot"
	// StageDone holds a confirmed booking that can still be rescheduled or
	// cancelled. Only reachable when the reschedule flow is enabled.
	StageDone Stage = "done"
	// StageHandoff means the user is connected to a human expert. Terminal
	// except for a global reset.
	StageHandoff Stage = "handoff"
)

// Session captures one user's conversation state for the process lifetime.
type Session struct {
	UserKey       string    `json:"userKey"`
	Stage         Stage     `json:"stage"`
	Service       string    `json:"service,omitempty"`
	Location      string    `json:"location,omitempty"`
	Slot          string    `json:"slot,omitempty"`
	LastHandoffAt time.Time `json:"lastHandoffAt,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// HandedOff reports whether the expert contact block was ever sent.
func (s *Session) HandedOff() bool {
	return !s.LastHandoffAt.IsZero()
}
