package zendesk

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"

	"github.com/spec-kit/contact-bridge/internal/domain"
)

type ticketEnvelope struct {
	Ticket   domain.Ticket    `json:"ticket"`
	Comments []domain.Comment `json:"comments"`
}

type commentsEnvelope struct {
	Comments []domain.Comment `json:"comments"`
}

// GetTicket fetches a ticket with its comments. Comments sideloaded next to
// the ticket are merged in. Use ListComments when none came back.
func (c *Client) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	var env ticketEnvelope
	err := c.do(ctx, resty.MethodGet, "/tickets/{ticketID}.json", func(r *resty.Request) {
		r.SetPathParam("ticketID", ticketID).SetQueryParam("include", "comments")
	}, &env)
	if err != nil {
		return nil, err
	}

	ticket := env.Ticket
	if len(ticket.Comments) == 0 {
		ticket.Comments = env.Comments
	}
	return &ticket, nil
}

// ListComments returns the ticket's comments in creation order.
func (c *Client) ListComments(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	var env commentsEnvelope
	err := c.do(ctx, resty.MethodGet, "/tickets/{ticketID}/comments.json", func(r *resty.Request) {
		r.SetPathParam("ticketID", ticketID)
	}, &env)
	if err != nil {
		return nil, err
	}
	return env.Comments, nil
}

// UpdateTicket sends a partial update. patch is anything that encodes to a
// ticket object: a *domain.TicketUpdate or a raw patch returned by the API.
func (c *Client) UpdateTicket(ctx context.Context, ticketID string, patch any) (*domain.Ticket, error) {
	var env ticketEnvelope
	err := c.do(ctx, resty.MethodPut, "/tickets/{ticketID}.json", func(r *resty.Request) {
		r.SetPathParam("ticketID", ticketID).SetBody(map[string]any{"ticket": patch})
	}, &env)
	if err != nil {
		return nil, err
	}
	return &env.Ticket, nil
}

type macroApplyEnvelope struct {
	Result struct {
		Ticket json.RawMessage `json:"ticket"`
	} `json:"result"`
}

// PreviewMacro asks the API what the ticket would look like after macroID is
// applied. It returns the resulting ticket patch, or nil when none came back.
func (c *Client) PreviewMacro(ctx context.Context, ticketID, macroID string) (json.RawMessage, error) {
	var env macroApplyEnvelope
	err := c.do(ctx, resty.MethodGet, "/tickets/{ticketID}/macros/{macroID}/apply.json", func(r *resty.Request) {
		r.SetPathParams(map[string]string{"ticketID": ticketID, "macroID": macroID})
	}, &env)
	if err != nil {
		return nil, err
	}
	patch := env.Result.Ticket
	if len(patch) == 0 || string(patch) == "null" {
		return nil, nil
	}
	return patch, nil
}
