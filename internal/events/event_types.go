package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketProcessed EventType = "ticket_processed"
	EventTicketSkipped   EventType = "ticket_skipped"
	EventTicketFailed    EventType = "ticket_failed"
	EventUserCreated     EventType = "user_created"
	EventMacroApplied    EventType = "macro_applied"
	EventMacroFailed     EventType = "macro_failed"
)

// Event represents something that happened while processing a ticket.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with an id and the current time.
func New(eventType EventType, ticketID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticketID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// TicketProcessedPayload payload.
type TicketProcessedPayload struct {
	UserID      int64  `json:"user_id"`
	UserEmail   string `json:"user_email"`
	UserCreated bool   `json:"user_created"`
}

// TicketSkippedPayload payload.
type TicketSkippedPayload struct {
	Reason string `json:"reason"`
}

// TicketFailedPayload payload.
type TicketFailedPayload struct {
	Reason string `json:"reason"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	WithPhone bool   `json:"with_phone"`
}

// MacroPayload payload for macro events.
type MacroPayload struct {
	MacroID  string `json:"macro_id"`
	Strategy string `json:"strategy,omitempty"`
	Error    string `json:"error,omitempty"`
}
