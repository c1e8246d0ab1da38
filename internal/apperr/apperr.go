package apperr

import (
	"fmt"
	"net/http"
)

// Business error codes, stable across releases. Clients match on these,
// not on messages.
const (
	CodeBadRequest    = 400
	CodeInternalError = 500

	CodeUserNotFound      = 1001
	CodeUserAlreadyExists = 1002
	CodePasswordIncorrect = 1003
	CodePasswordMismatch  = 1004
	CodeInvalidToken      = 1005
)

// Error is a typed business failure: an expected outcome, not a fault.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Shared instances so errors.Is works by identity across packages.
var (
	ErrUserNotFound      = &Error{Code: CodeUserNotFound, Message: "user does not exist"}
	ErrUserAlreadyExists = &Error{Code: CodeUserAlreadyExists, Message: "user already exists"}
	ErrPasswordIncorrect = &Error{Code: CodePasswordIncorrect, Message: "incorrect password"}
	ErrPasswordMismatch  = &Error{Code: CodePasswordMismatch, Message: "passwords do not match"}
	ErrInvalidToken      = &Error{Code: CodeInvalidToken, Message: "invalid token"}
)

// BadRequest builds a validation failure with a caller-supplied message.
func BadRequest(message string) *Error {
	return &Error{Code: CodeBadRequest, Message: message}
}

// HTTPStatus maps a business code to its HTTP status. Every handler goes
// through this table; there are no ad hoc per-handler statuses.
func HTTPStatus(code int) int {
	switch code {
	case CodeUserNotFound:
		return http.StatusNotFound
	case CodeUserAlreadyExists:
		return http.StatusConflict
	case CodePasswordIncorrect, CodePasswordMismatch, CodeBadRequest:
		return http.StatusBadRequest
	case CodeInvalidToken:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
