// Package httputil centralizes JSON response writing so handlers stay thin.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "github.com/AVN-Software/skern-tag-system/pkg/domain-errors"
)

// WriteJSON serializes v with the given status. Encoding failures are silently
// dropped; by the time encoding fails the status line is already written.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteError maps a domain error to its HTTP response. Internal errors omit
// the description so infrastructure details never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	var dErr *dErrors.Error
	if !errors.As(err, &dErr) {
		dErr = dErrors.New(dErrors.CodeInternal, err.Error())
	}

	body := errorBody{Error: string(dErr.Code)}
	if dErr.Code != dErrors.CodeInternal {
		body.Description = dErr.Description
	}
	WriteJSON(w, dErrors.HTTPStatus(dErr.Code), body)
}
