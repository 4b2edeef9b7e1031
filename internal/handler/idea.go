package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/sakif/idea-generator/internal/apperror"
	"github.com/sakif/idea-generator/internal/auth"
	"github.com/sakif/idea-generator/internal/catalog"
	"github.com/sakif/idea-generator/internal/model"
	"github.com/sakif/idea-generator/internal/service"
)

// sessionIDCookie identifies an anonymous browser so its lifecycle state
// and local favorites survive across requests without an account.
const sessionIDCookie = "session_id"

// fallbackMessage is the retry suggestion shown for provider-side
// failures on the generation endpoint.
const fallbackMessage = "현재 AI 서비스에 일시적인 문제가 있습니다. 잠시 후 다시 시도해주세요."

// IdeaHandler exposes generation, history, like, select, and delete over
// HTTP. All routes run behind OptionalAuth: an authenticated request is
// served from the user's cloud history, an anonymous one from the shared
// local favorites file keyed by the session cookie.
type IdeaHandler struct {
	ideas  *service.IdeaService
	users  *service.AuthService
	logger *slog.Logger
}

func NewIdeaHandler(ideas *service.IdeaService, users *service.AuthService, logger *slog.Logger) *IdeaHandler {
	return &IdeaHandler{
		ideas:  ideas,
		users:  users,
		logger: logger,
	}
}

// generateRequest is the body of POST /api/generate-idea.
type generateRequest struct {
	Category string `json:"category"`
}

// generateResponse preserves the wire shape the frontend expects:
// {success, content} on success, {success, error, fallbackMessage?} on
// failure.
type generateResponse struct {
	Success         bool   `json:"success"`
	Content         string `json:"content,omitempty"`
	ID              string `json:"id,omitempty"`
	Category        string `json:"category,omitempty"`
	Error           string `json:"error,omitempty"`
	FallbackMessage string `json:"fallbackMessage,omitempty"`
}

// HandleGenerate runs one generation attempt.
//
// HTTP: POST /api/generate-idea
// BODY: {"category": "startup"}
//
// This endpoint keeps its own error envelope instead of writeError: the
// {success:false, error, fallbackMessage} shape is a frontend contract.
func (h *IdeaHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, generateResponse{
			Success: false,
			Error:   "요청 본문이 올바르지 않습니다.",
		})
		return
	}

	user := h.currentUser(r)
	idea, err := h.ideas.Generate(r.Context(), user, h.sessionKey(w, r), req.Category)
	if err != nil {
		h.writeGenerateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Success:  true,
		Content:  idea.Content,
		ID:       idea.ID,
		Category: idea.Category,
	})
}

func (h *IdeaHandler) writeGenerateError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	message := "요청 처리 중 오류가 발생했습니다."
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	switch {
	case errors.Is(err, apperror.ErrUnsupportedCategory), errors.Is(err, apperror.ErrValidation):
		writeJSON(w, http.StatusBadRequest, generateResponse{
			Success: false,
			Error:   message,
		})
	case errors.Is(err, apperror.ErrMissingCredential):
		// Misconfiguration stays generic: no hint which key is absent.
		writeJSON(w, http.StatusServiceUnavailable, generateResponse{
			Success: false,
			Error:   "현재 AI 서비스를 이용할 수 없습니다.",
		})
	case errors.Is(err, apperror.ErrUpstream), errors.Is(err, apperror.ErrNetwork):
		writeJSON(w, http.StatusBadGateway, generateResponse{
			Success:         false,
			Error:           message,
			FallbackMessage: fallbackMessage,
		})
	default:
		h.logger.Error("generate: unexpected error", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, generateResponse{
			Success: false,
			Error:   "요청 처리 중 오류가 발생했습니다.",
		})
	}
}

// HandleList returns the caller's stored ideas, newest first.
//
// HTTP: GET /api/ideas
//
// Always 200: an unreadable store degrades to an empty history.
func (h *IdeaHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ideas := h.ideas.List(r.Context(), h.currentUser(r), h.sessionKey(w, r))
	writeJSON(w, http.StatusOK, ideas)
}

// HandleLike marks the session's freshly generated idea as liked.
//
// HTTP: POST /api/like
//
// No idea ID in the route: the like affordance only ever applies to the
// current generated idea, so the session state names the target.
func (h *IdeaHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	idea, err := h.ideas.Like(r.Context(), h.currentUser(r), h.sessionKey(w, r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idea)
}

// HandleSelect replaces the session's current view with a stored idea.
//
// HTTP: POST /api/ideas/{id}/select
func (h *IdeaHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	idea, err := h.ideas.Select(r.Context(), h.currentUser(r), h.sessionKey(w, r), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idea)
}

// deleteRequest carries the typed confirmation for a destructive delete.
type deleteRequest struct {
	ConfirmTitle string `json:"confirmTitle"`
}

// HandleDelete removes a stored idea after title confirmation.
//
// HTTP: DELETE /api/ideas/{id}
// BODY: {"confirmTitle": "<the idea's extracted title>"}
//
// Responds with the reloaded history so the client reconciles in one
// round trip.
func (h *IdeaHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("confirmTitle", "요청 본문이 올바르지 않습니다."))
		return
	}

	ideas, err := h.ideas.Delete(r.Context(), h.currentUser(r), h.sessionKey(w, r), r.PathValue("id"), req.ConfirmTitle)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ideas)
}

// sessionView is the rendering surface of the lifecycle state machine.
type sessionView struct {
	State   string      `json:"state"`
	Current *model.Idea `json:"current,omitempty"`
	Liked   bool        `json:"liked"`
	Error   string      `json:"error,omitempty"`
}

// HandleSession reports the caller's lifecycle state.
//
// HTTP: GET /api/session
func (h *IdeaHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	snap := h.ideas.Session(h.currentUser(r), h.sessionKey(w, r))

	view := sessionView{
		State:   string(snap.State),
		Current: snap.Current,
		Liked:   snap.Liked,
	}
	if snap.Err != nil {
		var appErr *apperror.AppError
		if errors.As(snap.Err, &appErr) {
			view.Error = appErr.Message
		} else {
			view.Error = "요청 처리 중 오류가 발생했습니다."
		}
	}

	writeJSON(w, http.StatusOK, view)
}

// HandleCategories lists the closed category set with display names.
//
// HTTP: GET /api/categories
func (h *IdeaHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.All())
}

// currentUser resolves the full user record for an authenticated request,
// or nil for an anonymous one. A token whose account no longer exists is
// treated as anonymous rather than failing the request.
func (h *IdeaHandler) currentUser(r *http.Request) *model.User {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return nil
	}
	user, err := h.users.GetUserByID(r.Context(), userID)
	if err != nil {
		h.logger.Warn("resolving authenticated user failed, serving anonymously",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return user
}

// sessionKey returns the anonymous session cookie value, minting the
// cookie on first contact.
func (h *IdeaHandler) sessionKey(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionIDCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	key := xid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionIDCookie,
		Value:    key,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return key
}
