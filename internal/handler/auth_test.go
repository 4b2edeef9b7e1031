package handler_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/idea-generator/internal/auth"
	"github.com/sakif/idea-generator/internal/handler"
	"github.com/sakif/idea-generator/internal/repository/sqlite"
	"github.com/sakif/idea-generator/internal/service"
)

type authStack struct {
	router *chi.Mux
}

func newAuthStack(t *testing.T) *authStack {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	require.NoError(t, err)
	passwords := auth.NewPasswordServiceForTest(bcrypt.MinCost)

	svc := service.NewAuthService(db, tokens, passwords, logger)
	google := auth.NewGoogleProvider("client-id", "client-secret", "http://localhost:8080/auth/google/callback")
	h := handler.NewAuthHandler(svc, google, logger)

	router := chi.NewRouter()
	router.Post("/auth/signup", h.HandleSignup)
	router.Post("/auth/login", h.HandleLogin)
	router.Post("/auth/logout", h.HandleLogout)
	router.Get("/auth/google/login", h.HandleGoogleLogin)
	router.Get("/auth/google/callback", h.HandleGoogleCallback)
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))
		r.Get("/api/me", h.HandleMe)
	})
	return &authStack{router: router}
}

func (s *authStack) do(method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func sessionCookieFrom(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestHandleSignup(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := newAuthStack(t)

		rr := s.do(http.MethodPost, "/auth/signup", `{"email":"Mina@Example.com","password":"correct horse"}`)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var user struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		}
		decodeBody(t, rr, &user)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "mina@example.com", user.Email)
		assert.NotContains(t, rr.Body.String(), "passwordHash")

		cookie := sessionCookieFrom(t, rr)
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("short password", func(t *testing.T) {
		s := newAuthStack(t)

		rr := s.do(http.MethodPost, "/auth/signup", `{"email":"a@b.com","password":"short"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		s := newAuthStack(t)

		body := `{"email":"a@b.com","password":"long enough"}`
		rr := s.do(http.MethodPost, "/auth/signup", body)
		require.Equal(t, http.StatusCreated, rr.Code)

		rr = s.do(http.MethodPost, "/auth/signup", body)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		s := newAuthStack(t)

		rr := s.do(http.MethodPost, "/auth/signup", `{"email":`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleLogin(t *testing.T) {
	s := newAuthStack(t)
	rr := s.do(http.MethodPost, "/auth/signup", `{"email":"a@b.com","password":"long enough"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	t.Run("success", func(t *testing.T) {
		rr := s.do(http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"long enough"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		sessionCookieFrom(t, rr)
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := s.do(http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"wrong wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("unknown email matches wrong-password response", func(t *testing.T) {
		wrongPass := s.do(http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"wrong wrong"}`)
		unknown := s.do(http.MethodPost, "/auth/login", `{"email":"nobody@b.com","password":"wrong wrong"}`)

		assert.Equal(t, wrongPass.Code, unknown.Code)
		assert.JSONEq(t, wrongPass.Body.String(), unknown.Body.String())
	})
}

func TestHandleMe(t *testing.T) {
	s := newAuthStack(t)

	t.Run("without session", func(t *testing.T) {
		rr := s.do(http.MethodGet, "/api/me", "")

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("with session", func(t *testing.T) {
		rr := s.do(http.MethodPost, "/auth/signup", `{"email":"a@b.com","password":"long enough","displayName":"Mina"}`)
		require.Equal(t, http.StatusCreated, rr.Code)
		cookie := sessionCookieFrom(t, rr)

		rr = s.do(http.MethodGet, "/api/me", "", cookie)

		assert.Equal(t, http.StatusOK, rr.Code)
		var user struct {
			Email       string `json:"email"`
			DisplayName string `json:"displayName"`
		}
		decodeBody(t, rr, &user)
		assert.Equal(t, "a@b.com", user.Email)
		assert.Equal(t, "Mina", user.DisplayName)
	})
}

func TestHandleLogout(t *testing.T) {
	s := newAuthStack(t)
	rr := s.do(http.MethodPost, "/auth/signup", `{"email":"a@b.com","password":"long enough"}`)
	cookie := sessionCookieFrom(t, rr)

	rr = s.do(http.MethodPost, "/auth/logout", "", cookie)

	assert.Equal(t, http.StatusOK, rr.Code)
	cleared := sessionCookieFrom(t, rr)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestHandleGoogleLogin(t *testing.T) {
	s := newAuthStack(t)

	rr := s.do(http.MethodGet, "/auth/google/login", "")

	assert.Equal(t, http.StatusTemporaryRedirect, rr.Code)
	location := rr.Header().Get("Location")
	assert.Contains(t, location, "accounts.google.com")
	assert.Contains(t, location, "client_id=client-id")

	var stateCookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == "oauth_state" {
			stateCookie = c
		}
	}
	require.NotNil(t, stateCookie)
	assert.Contains(t, location, "state="+stateCookie.Value)
}

func TestHandleGoogleCallback_BadState(t *testing.T) {
	s := newAuthStack(t)

	rr := s.do(http.MethodGet, "/auth/google/callback?state=forged&code=abc",
		"", &http.Cookie{Name: "oauth_state", Value: "genuine"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
