package apperror

import (
	"errors"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("Validation Error")
	ErrRateLimited = errors.New("rate limited")
	ErrUnreachable = errors.New("unreachable")
	ErrRemote      = errors.New("remote error")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// RateLimited returns an AppError for a 403 from the GitHub API — for
// unauthenticated requests that almost always means the hourly rate limit
// was exhausted. HTTP handlers map this to 429 Too Many Requests.
func RateLimited(message string) *AppError {
	return &AppError{
		Err:     ErrRateLimited,
		Message: message,
	}
}

// Unreachable returns an AppError for a transport-level failure — the
// request never produced an HTTP status at all (DNS failure, refused
// connection, timeout).
func Unreachable(message string) *AppError {
	return &AppError{
		Err:     ErrUnreachable,
		Message: message,
	}
}

// Remote returns an AppError carrying an error message the remote API
// reported in its JSON error payload, for statuses we don't classify
// more specifically.
func Remote(message string) *AppError {
	return &AppError{
		Err:     ErrRemote,
		Message: message,
	}
}
