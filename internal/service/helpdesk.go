package service

import (
	"context"
	"encoding/json"

	"github.com/spec-kit/contact-bridge/internal/domain"
	"github.com/spec-kit/contact-bridge/internal/persistence"
)

// TicketAPI reads and updates remote tickets.
type TicketAPI interface {
	GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error)
	ListComments(ctx context.Context, ticketID string) ([]domain.Comment, error)
	UpdateTicket(ctx context.Context, ticketID string, patch any) (*domain.Ticket, error)
}

// UserAPI searches and creates remote users.
type UserAPI interface {
	SearchUsersByEmail(ctx context.Context, email string) ([]domain.User, error)
	CreateUser(ctx context.Context, user domain.UserCreate) (*domain.User, error)
}

// MacroAPI reads macros and previews their effect on a ticket.
type MacroAPI interface {
	GetMacro(ctx context.Context, macroID string) (*domain.Macro, error)
	PreviewMacro(ctx context.Context, ticketID, macroID string) (json.RawMessage, error)
}

// ContactExtractor scrapes contact details from ticket content.
type ContactExtractor interface {
	Extract(content string) domain.ContactInfo
}

// TicketLocker guards against two runs for the same ticket.
type TicketLocker interface {
	Acquire(ctx context.Context, ticketID string) (persistence.ReleaseFunc, bool, error)
}
