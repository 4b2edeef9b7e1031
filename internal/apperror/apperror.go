package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors for the application's failure taxonomy.
//
// The first group is the generic HTTP-facing set; the second group classifies
// idea generation and persistence failures, which each get their own treatment:
//
//	ErrUnsupportedCategory — category outside the closed set; fails before
//	                         any network call, user must re-pick
//	ErrMissingCredential   — provider API key absent from server config;
//	                         fatal for that request, surfaced as a generic
//	                         service-unavailable message (never the detail)
//	ErrUpstream            — provider returned non-2xx; user may retry
//	ErrNetwork             — transport failed before any response; same
//	ErrPersistence         — store read/write/delete failed; always logged,
//	                         never surfaced as a blocking error
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")

	ErrUnsupportedCategory = errors.New("unsupported category")
	ErrMissingCredential   = errors.New("missing credential")
	ErrUpstream            = errors.New("upstream error")
	ErrNetwork             = errors.New("network error")
	ErrPersistence         = errors.New("persistence error")
)

type AppError struct {
	Err     error  // sentinel classifying the failure
	Message string // Human-readable error message
	Field   string // Optional: field causing the error

	// StatusCode and Body carry provider diagnostics for upstream failures.
	// They are logged, never returned to API clients.
	StatusCode int
	Body       string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthorized returns an AppError for requests without a valid session.
// HTTP handlers map this to 401.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// UnsupportedCategory is the validation failure for a category key outside
// the closed set. The message is the one the product shows inline.
func UnsupportedCategory(category string) *AppError {
	return &AppError{
		Err:     ErrUnsupportedCategory,
		Message: "지원하지 않는 카테고리입니다.",
		Field:   "category",
	}
}

// MissingCredential signals absent server-side provider configuration.
// The message stays generic — the real cause goes to the logs only.
func MissingCredential(name string) *AppError {
	return &AppError{
		Err:     ErrMissingCredential,
		Message: fmt.Sprintf("%s is not configured", name),
	}
}

// Upstream wraps a non-2xx provider response, keeping the status code and raw
// body for diagnostics.
func Upstream(statusCode int, body string) *AppError {
	return &AppError{
		Err:        ErrUpstream,
		Message:    fmt.Sprintf("provider request failed with status %d", statusCode),
		StatusCode: statusCode,
		Body:       body,
	}
}

// Network wraps a transport-level failure that happened before any provider
// response was obtained.
func Network(err error) *AppError {
	return &AppError{
		Err:     ErrNetwork,
		Message: fmt.Sprintf("could not reach the generation provider: %v", err),
	}
}

// Persistence wraps a store failure. Callers log these and continue — a
// persistence failure must never block the generate-and-view flow.
func Persistence(op string, err error) *AppError {
	return &AppError{
		Err:     ErrPersistence,
		Message: fmt.Sprintf("persistence failure during %s: %v", op, err),
	}
}
