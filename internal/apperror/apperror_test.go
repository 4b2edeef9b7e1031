package apperror

import (
	"errors"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	// Each test case checks that errors.Is() correctly identifies the error type
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("idea", "abc123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("category", "category is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "UnsupportedCategory wraps ErrUnsupportedCategory",
			err:       UnsupportedCategory("gaming"),
			target:    ErrUnsupportedCategory,
			wantMatch: true,
		},
		{
			name:      "MissingCredential wraps ErrMissingCredential",
			err:       MissingCredential("OPENROUTER_API_KEY"),
			target:    ErrMissingCredential,
			wantMatch: true,
		},
		{
			name:      "Upstream wraps ErrUpstream",
			err:       Upstream(502, "bad gateway"),
			target:    ErrUpstream,
			wantMatch: true,
		},
		{
			name:      "Persistence wraps ErrPersistence",
			err:       Persistence("create idea", errors.New("disk full")),
			target:    ErrPersistence,
			wantMatch: true,
		},
		{
			name:      "Upstream does NOT match ErrNetwork",
			err:       Upstream(500, ""),
			target:    ErrNetwork,
			wantMatch: false,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("idea", "abc123"),
			target:    ErrValidation,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("idea", "abc123"),
			wantMessage: "idea not found with id abc123",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("category", "category is required"),
			wantMessage: "category is required",
		},
		{
			name:        "UnsupportedCategory uses the inline product message",
			err:         UnsupportedCategory("gaming"),
			wantMessage: "지원하지 않는 카테고리입니다.",
		},
		{
			name:        "Upstream message names the status",
			err:         Upstream(503, "overloaded"),
			wantMessage: "provider request failed with status 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	// Unwrap() must return the underlying sentinel — that's what makes
	// errors.Is() walk the chain.
	err := NotFound("idea", "abc123")
	if unwrapped := err.Unwrap(); unwrapped != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrNotFound)
	}
}

func TestUpstreamDiagnostics(t *testing.T) {
	// Upstream failures keep the raw status and body so the caller can log
	// them. They must not leak into the user-facing message.
	err := Upstream(429, `{"error":"rate limited"}`)

	if err.StatusCode != 429 {
		t.Errorf("StatusCode = %d, want 429", err.StatusCode)
	}
	if err.Body != `{"error":"rate limited"}` {
		t.Errorf("Body = %q, want the raw provider body", err.Body)
	}
}
