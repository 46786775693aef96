package domain

import "net/http"

// ErrorKind classifies a failure. Every kind maps to exactly one HTTP status
// at the API boundary; nothing else about the transport leaks into here.
type ErrorKind int

const (
	KindValidation     ErrorKind = iota // bad input, all violated rules joined
	KindAuthentication                  // generic credential failure, never says which part was wrong
	KindNotFound                        // missing resource OR missing ownership, deliberately indistinguishable
	KindConflict                        // uniqueness violation
	KindInternal                        // unexpected persistence or infrastructure failure
)

// Error is the single failure channel for all domain operations.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Status returns the fixed HTTP status for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewAuthenticationError(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NewInternalError(message string) *Error {
	return &Error{Kind: KindInternal, Message: message}
}
