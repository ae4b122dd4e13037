// Package domainerrors defines the error vocabulary exposed at API boundaries.
// Services translate sentinel infrastructure errors into these codes; the HTTP
// layer maps codes to status lines without inspecting wrapped causes.
package domainerrors

import "net/http"

// Code identifies a class of domain error.
type Code string

const (
	CodeBadRequest    Code = "bad_request"
	CodeNotFound      Code = "not_found"
	CodeConflict      Code = "conflict"
	CodeUnprocessable Code = "unprocessable"
	CodeInternal      Code = "internal_error"
)

// Error carries a machine-readable code and a human-readable description.
type Error struct {
	Code        Code
	Description string
}

func New(code Code, description string) *Error {
	return &Error{Code: code, Description: description}
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Description
}

// HTTPStatus maps a code to its HTTP status. Unknown codes are treated as
// internal so new codes fail closed.
func HTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
