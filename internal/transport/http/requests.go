package httpapi

import "strings"

// IssueRequest is the body of POST /tags.
type IssueRequest struct {
	BatchCode string `json:"batch_code"`
}

// Normalize trims surrounding whitespace and upcases the code so hand-typed
// batch codes survive. Format validation belongs to the issue service.
func (r *IssueRequest) Normalize() {
	r.BatchCode = strings.ToUpper(strings.TrimSpace(r.BatchCode))
}
