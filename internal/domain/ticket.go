package domain

import "encoding/json"

// TicketStatus is a helpdesk ticket state.
type TicketStatus string

// TicketStatusClosed is the only state the bridge writes. A closed ticket
// cannot be reopened by a customer reply.
const TicketStatusClosed TicketStatus = "closed"

// Ticket is the read view of a remote helpdesk ticket.
type Ticket struct {
	ID          int64        `json:"id"`
	Subject     string       `json:"subject"`
	Description string       `json:"description"`
	Status      TicketStatus `json:"status"`
	Tags        []string     `json:"tags"`
	RequesterID *int64       `json:"requester_id"`
	AssigneeID  *int64       `json:"assignee_id"`
	GroupID     *int64       `json:"group_id"`
	Comments    []Comment    `json:"comments,omitempty"`
}

// HasTag reports whether the ticket carries tag.
func (t *Ticket) HasTag(tag string) bool {
	for _, candidate := range t.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}

// Comment is a ticket comment as returned by the helpdesk.
type Comment struct {
	ID       int64  `json:"id"`
	Body     string `json:"body"`
	HTMLBody string `json:"html_body"`
	Public   bool   `json:"public"`
}

// CommentInput is a comment attached to a ticket update.
type CommentInput struct {
	Body     string `json:"body"`
	HTMLBody string `json:"html_body,omitempty"`
	Public   bool   `json:"public"`
}

// TicketUpdate is a partial ticket update. Only fields that were set are sent,
// which lets a field be cleared explicitly with a JSON null.
type TicketUpdate struct {
	fields map[string]any
}

// NewTicketUpdate returns an empty update.
func NewTicketUpdate() *TicketUpdate {
	return &TicketUpdate{fields: make(map[string]any)}
}

// Set assigns an arbitrary ticket field.
func (u *TicketUpdate) Set(field string, value any) *TicketUpdate {
	u.fields[field] = value
	return u
}

// SetRequester sets requester_id.
func (u *TicketUpdate) SetRequester(userID int64) *TicketUpdate {
	return u.Set("requester_id", userID)
}

// ClearAssignee sends assignee_id as null.
func (u *TicketUpdate) ClearAssignee() *TicketUpdate {
	return u.Set("assignee_id", nil)
}

// SetGroup sets group_id.
func (u *TicketUpdate) SetGroup(groupID int64) *TicketUpdate {
	return u.Set("group_id", groupID)
}

// SetStatus sets status.
func (u *TicketUpdate) SetStatus(status TicketStatus) *TicketUpdate {
	return u.Set("status", status)
}

// SetComment attaches a comment.
func (u *TicketUpdate) SetComment(comment CommentInput) *TicketUpdate {
	return u.Set("comment", comment)
}

// Empty reports whether nothing was set.
func (u *TicketUpdate) Empty() bool {
	return len(u.fields) == 0
}

// MarshalJSON encodes only the fields that were set.
func (u *TicketUpdate) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.fields)
}
