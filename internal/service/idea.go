// Package service contains the business logic layer of the application.
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository/stores (data) → read and write persistent state
//
// The service knows nothing about HTTP: handlers hand it primitives and
// models, and it returns domain errors (apperror) that the handler maps
// to status codes. That keeps the generation/persistence rules callable
// from tests (and any future non-HTTP surface) as plain Go functions.
package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/sakif/idea-generator/internal/apperror"
	"github.com/sakif/idea-generator/internal/favorites"
	"github.com/sakif/idea-generator/internal/lifecycle"
	"github.com/sakif/idea-generator/internal/markdown"
	"github.com/sakif/idea-generator/internal/model"
	"github.com/sakif/idea-generator/internal/repository"
)

// Generator produces idea content for a category. Satisfied by
// *generator.Gateway; tests substitute a stub.
type Generator interface {
	Generate(ctx context.Context, category string) (string, error)
}

// IdeaService orchestrates generation, the per-session lifecycle, and the
// two persistence strategies.
//
// Each session (an authenticated user, or an anonymous browser identified
// by its session cookie) gets one lifecycle.Controller, created lazily and
// kept for the life of the process. Authenticated sessions are backed by
// the per-user cloud store and persist every generation immediately;
// anonymous sessions are backed by the shared local favorites file and
// write only on like.
type IdeaService struct {
	gen    Generator
	ideas  repository.IdeaRepository
	favs   *favorites.Store
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// session pairs a controller with the store it was built over, so
// operations that need direct store access (select, delete) don't have to
// round-trip through the controller.
type session struct {
	ctrl  *lifecycle.Controller
	store lifecycle.Store
}

func NewIdeaService(gen Generator, ideas repository.IdeaRepository, favs *favorites.Store, logger *slog.Logger) *IdeaService {
	return &IdeaService{
		gen:      gen,
		ideas:    ideas,
		favs:     favs,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

// sessionFor returns (creating if needed) the session for the caller.
// user is nil for anonymous requests; sessionKey is the anonymous session
// cookie value and is ignored when a user is present.
func (s *IdeaService) sessionFor(user *model.User, sessionKey string) *session {
	key := "anon:" + sessionKey
	if user != nil {
		key = "user:" + user.ID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[key]; ok {
		return sess
	}

	var store lifecycle.Store
	eager := false
	if user != nil {
		store = lifecycle.NewCloudStore(s.ideas, user)
		eager = true
	} else {
		store = lifecycle.NewLocalStore(s.favs)
	}

	sess := &session{
		ctrl:  lifecycle.New(store, eager, s.logger),
		store: store,
	}
	s.sessions[key] = sess
	return sess
}

// Generate runs one full generation attempt for the caller's session:
// dispatch, upstream call, and completion (or classified failure).
//
// The returned idea is what the caller should display. When the session
// moved on mid-flight (another generation, or a stored idea selected),
// the result is still returned to this caller but is not applied to the
// session and not persisted.
func (s *IdeaService) Generate(ctx context.Context, user *model.User, sessionKey, category string) (*model.Idea, error) {
	sess := s.sessionFor(user, sessionKey)

	token, err := sess.ctrl.BeginGenerate(category)
	if err != nil {
		return nil, err
	}

	content, err := s.gen.Generate(ctx, category)
	if err != nil {
		sess.ctrl.FailGenerate(token, err)
		return nil, err
	}

	if sess.ctrl.CompleteGenerate(ctx, token, content) {
		return sess.ctrl.Snapshot().Current, nil
	}

	s.logger.Info("generation finished after the session moved on",
		slog.String("category", category))
	return &model.Idea{Content: content, Category: category}, nil
}

// List returns the caller's stored ideas, newest first. An unreadable
// store degrades to an empty history rather than an error.
func (s *IdeaService) List(ctx context.Context, user *model.User, sessionKey string) []model.Idea {
	return s.sessionFor(user, sessionKey).ctrl.List(ctx)
}

// Like marks the session's freshly generated idea as liked.
func (s *IdeaService) Like(ctx context.Context, user *model.User, sessionKey string) (*model.Idea, error) {
	sess := s.sessionFor(user, sessionKey)
	if err := sess.ctrl.Like(ctx); err != nil {
		return nil, err
	}
	return sess.ctrl.Snapshot().Current, nil
}

// Select replaces the session's current view with a stored idea.
func (s *IdeaService) Select(ctx context.Context, user *model.User, sessionKey, id string) (*model.Idea, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.ValidationFailed("id", "idea ID is required")
	}

	sess := s.sessionFor(user, sessionKey)
	idea, err := sess.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.ctrl.SelectStored(*idea)
	return idea, nil
}

// Session reports the caller's current lifecycle view for rendering.
func (s *IdeaService) Session(user *model.User, sessionKey string) lifecycle.Snapshot {
	return s.sessionFor(user, sessionKey).ctrl.Snapshot()
}

// Delete removes one stored idea, but only when the caller confirmed the
// deletion by typing the idea's extracted title. A missing or mismatched
// confirmation fails validation before any store access happens.
//
// On success the refreshed history is returned, so the caller's view is
// reconciled with the store in the same round trip.
func (s *IdeaService) Delete(ctx context.Context, user *model.User, sessionKey, id, confirmTitle string) ([]model.Idea, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.ValidationFailed("id", "idea ID is required")
	}
	confirmTitle = strings.TrimSpace(confirmTitle)
	if confirmTitle == "" {
		return nil, apperror.ValidationFailed("confirmTitle", "삭제하려면 아이디어 제목을 입력해주세요.")
	}

	sess := s.sessionFor(user, sessionKey)

	idea, err := sess.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	title := markdown.Title(idea.Content)
	if confirmTitle != title {
		return nil, apperror.ValidationFailed("confirmTitle", "제목이 일치하지 않습니다.")
	}

	if err := sess.store.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("idea deleted",
		slog.String("id", id),
		slog.String("title", title),
	)

	return sess.ctrl.List(ctx), nil
}
