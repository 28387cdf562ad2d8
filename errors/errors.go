package errors

import (
	"errors"
	"net/http"
)

// Error carries a message and the HTTP status it should surface as.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

var (
	ErrNotFound            = New("record not found", http.StatusNotFound)
	ErrInsufficientPoints  = New("insufficient points", http.StatusUnprocessableEntity)
	ErrValidation          = New("invalid input", http.StatusBadRequest)
	ErrPersistence         = New("storage operation failed", http.StatusInternalServerError)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	InActiveUserError      = New("user inactive", http.StatusUnauthorized)
)

// ValidationError returns a field-specific validation failure that still
// matches ErrValidation in errors.Is checks.
func ValidationError(message string) error {
	return &wrapped{sentinel: ErrValidation, err: New(message, http.StatusBadRequest)}
}

// NotFoundError returns a descriptive not-found failure matching ErrNotFound.
func NotFoundError(message string) error {
	return &wrapped{sentinel: ErrNotFound, err: New(message, http.StatusNotFound)}
}

type wrapped struct {
	sentinel *Error
	err      *Error
}

func (w *wrapped) Error() string { return w.err.Message }

func (w *wrapped) Is(target error) bool {
	return target == w.sentinel || target == w.err
}

// Status extracts the HTTP status carried by err, falling back to 500.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	var w *wrapped
	if errors.As(err, &w) {
		return w.err.Status
	}
	return http.StatusInternalServerError
}
