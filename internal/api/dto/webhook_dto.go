package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spec-kit/contact-bridge/internal/domain"
)

// TicketID accepts a ticket id sent as a JSON number or string.
type TicketID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *TicketID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TicketID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("ticket id must be a number or string: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("ticket id must be an integer: %w", err)
	}
	*id = TicketID(n.String())
	return nil
}

// Missing reports whether no usable id was sent. Zero is never a real ticket.
func (id TicketID) Missing() bool {
	s := strings.TrimSpace(string(id))
	if s == "" {
		return true
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return err == nil && n == 0
}

// WebhookRequest is the body the helpdesk trigger posts.
type WebhookRequest struct {
	Ticket struct {
		ID TicketID `json:"id"`
	} `json:"ticket"`
}

// ProcessResponse wraps a pipeline result for HTTP callers.
type ProcessResponse struct {
	Success  bool                 `json:"success"`
	TicketID string               `json:"ticketId"`
	Result   domain.ProcessResult `json:"result"`
}

// MacroResponse is the inspection view of a macro.
type MacroResponse struct {
	ID          int64                `json:"id"`
	Title       string               `json:"title"`
	Active      bool                 `json:"active"`
	Actions     []domain.MacroAction `json:"actions"`
	Description string               `json:"description"`
}
