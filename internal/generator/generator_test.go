package generator

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/sakif/idea-generator/internal/apperror"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newProviderStub spins up a fake chat-completions endpoint and counts the
// requests it receives, so tests can assert which paths hit the network.
func newProviderStub(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func completionResponse(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":` + jsonString(content) + `}}]}`
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGenerate_Success(t *testing.T) {
	var gotReq chatRequest
	srv, calls := newProviderStub(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("provider called at %q, want /chat/completions", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		w.Write([]byte(completionResponse("## 멋진 아이디어\n\n내용")))
	})

	g := New("test-key", "test-model", srv.URL, testLogger())
	content, err := g.Generate(context.Background(), "startup")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if content != "## 멋진 아이디어\n\n내용" {
		t.Errorf("Generate() = %q", content)
	}
	if *calls != 1 {
		t.Errorf("provider called %d times, want 1", *calls)
	}

	// Deterministic request shape: one system turn, one user turn,
	// temperature 1, bounded output.
	if len(gotReq.Messages) != 2 {
		t.Fatalf("request has %d messages, want 2", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("message roles = %q, %q", gotReq.Messages[0].Role, gotReq.Messages[1].Role)
	}
	if gotReq.Temperature != 1 {
		t.Errorf("temperature = %v, want 1", gotReq.Temperature)
	}
	if gotReq.MaxTokens != 4000 {
		t.Errorf("max_tokens = %d, want 4000", gotReq.MaxTokens)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("model = %q", gotReq.Model)
	}
}

func TestGenerate_UnsupportedCategory_NoNetworkCall(t *testing.T) {
	srv, calls := newProviderStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionResponse("should never be reached")))
	})

	g := New("test-key", "test-model", srv.URL, testLogger())
	_, err := g.Generate(context.Background(), "gaming")
	if !errors.Is(err, apperror.ErrUnsupportedCategory) {
		t.Fatalf("Generate() error = %v, want ErrUnsupportedCategory", err)
	}
	if *calls != 0 {
		t.Errorf("provider called %d times, want 0 — validation must run before any network call", *calls)
	}
}

func TestGenerate_MissingCredential_NoNetworkCall(t *testing.T) {
	srv, calls := newProviderStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionResponse("nope")))
	})

	g := New("", "test-model", srv.URL, testLogger())
	_, err := g.Generate(context.Background(), "startup")
	if !errors.Is(err, apperror.ErrMissingCredential) {
		t.Fatalf("Generate() error = %v, want ErrMissingCredential", err)
	}
	if *calls != 0 {
		t.Errorf("provider called %d times, want 0", *calls)
	}
}

func TestGenerate_UpstreamError(t *testing.T) {
	srv, _ := newProviderStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"overloaded"}`))
	})

	g := New("test-key", "test-model", srv.URL, testLogger())
	_, err := g.Generate(context.Background(), "blog")
	if !errors.Is(err, apperror.ErrUpstream) {
		t.Fatalf("Generate() error = %v, want ErrUpstream", err)
	}

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error is not an *AppError: %v", err)
	}
	if appErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", appErr.StatusCode)
	}
	if appErr.Body != `{"error":"overloaded"}` {
		t.Errorf("Body = %q, want the raw provider body", appErr.Body)
	}
}

func TestGenerate_NetworkError(t *testing.T) {
	// An address nothing listens on: the transport fails before any
	// response is obtained.
	g := New("test-key", "test-model", "http://127.0.0.1:1", testLogger())
	_, err := g.Generate(context.Background(), "project")
	if !errors.Is(err, apperror.ErrNetwork) {
		t.Fatalf("Generate() error = %v, want ErrNetwork", err)
	}
}

func TestGenerate_EmptyCompletion_SoftFallback(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no choices", body: `{"choices":[]}`},
		{name: "empty content", body: completionResponse("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newProviderStub(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			g := New("test-key", "test-model", srv.URL, testLogger())
			content, err := g.Generate(context.Background(), "youtube")
			// Soft failure: the sentinel comes back as a SUCCESS so the
			// UI never crashes on an empty completion.
			if err != nil {
				t.Fatalf("Generate() error = %v, want nil", err)
			}
			if content != NoContentFallback {
				t.Errorf("Generate() = %q, want %q", content, NoContentFallback)
			}
		})
	}
}
