package domain

// Pipeline skip reasons reported to callers.
const (
	ReasonMissingTag     = "Missing target tag"
	ReasonNoEmail        = "No email found"
	ReasonNoName         = "No name found"
	ReasonAlreadyRunning = "Ticket is already being processed"
)

// ProcessResult is the outcome of one pipeline run.
type ProcessResult struct {
	Success     bool         `json:"success"`
	Reason      string       `json:"reason,omitempty"`
	UserID      int64        `json:"userId,omitempty"`
	UserEmail   string       `json:"userEmail,omitempty"`
	ContactInfo *ContactInfo `json:"contactInfo,omitempty"`
}
