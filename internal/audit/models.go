package audit

import "time"

// Actions emitted by the issuance and verification paths.
const (
	ActionTagIssued  = "tag.issued"
	ActionTagScanned = "tag.scanned"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	CertID    string    `json:"cert_id,omitempty"`
	BatchCode string    `json:"batch_code,omitempty"`
	Verdict   string    `json:"verdict,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}
