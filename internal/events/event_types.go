package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/restaurant-console/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionHydrated EventType = "session_hydrated"
	EventLoggedIn        EventType = "logged_in"
	EventLoggedOut       EventType = "logged_out"
	EventForcedLogout    EventType = "forced_logout"
)

// AllEventTypes lists every session event type.
var AllEventTypes = []EventType{EventSessionHydrated, EventLoggedIn, EventLoggedOut, EventForcedLogout}

// Forced logout reasons.
const (
	ReasonMalformed = "malformed"
	ReasonExpired   = "expired"
	ReasonRejected  = "rejected"
)

// Event is a session lifecycle event.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject,omitempty"`
	Role      domain.Role `json:"role"`
	Reason    string      `json:"reason,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewSessionEvent builds an event. For logouts identity is the one that was
// logged out; for hydration it is empty when nothing was restored.
func NewSessionEvent(eventType EventType, identity domain.Identity, reason string, at time.Time) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   identity.Subject,
		Role:      identity.Role,
		Reason:    reason,
		Timestamp: at.UTC(),
	}
}
