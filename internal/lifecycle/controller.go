// Package lifecycle implements the state machine that governs how a
// generated idea moves between "just generated", "selected from history",
// and "liked", and which of the two persistence strategies it flows into.
//
// The machine is event-driven: the HTTP layer dispatches generation as an
// asynchronous task and reports its outcome back with the token handed out
// at dispatch time. A result whose token is no longer the latest is stale
// (the user moved on) and is discarded instead of applied.
package lifecycle

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sakif/idea-generator/internal/apperror"
	"github.com/sakif/idea-generator/internal/catalog"
	"github.com/sakif/idea-generator/internal/model"
)

// State is the controller's position in the idea lifecycle.
type State string

const (
	// StateIdle is the initial state: nothing generated, nothing selected.
	StateIdle State = "idle"
	// StateGenerating means a generation request is in flight.
	StateGenerating State = "generating"
	// StateDisplayingGenerated shows the most recent generation result.
	// This is the only state where the like affordance is offered.
	StateDisplayingGenerated State = "displaying_generated"
	// StateDisplayingSelected shows a stored idea the user picked from
	// history. Pure display: no writes, no like affordance.
	StateDisplayingSelected State = "displaying_selected"
	// StateErred carries a classified generation failure until the user
	// retries or selects a stored idea.
	StateErred State = "erred"
)

// Snapshot is a consistent read of the controller for rendering.
type Snapshot struct {
	State   State
	Current *model.Idea
	Liked   bool
	Err     error
}

// Controller ties generation, selection, and persistence together for one
// session. It is safe for concurrent use; every transition happens under
// the mutex so observers always see a coherent (state, current, liked)
// triple.
type Controller struct {
	store        Store
	eagerPersist bool
	logger       *slog.Logger

	mu      sync.Mutex
	state   State
	token   uint64
	pending string // category of the in-flight generation
	current *model.Idea
	liked   bool
	lastErr error
}

// New builds a controller over the given store. eagerPersist selects the
// cloud-backed behavior: persist every successful generation immediately.
// The local variant passes false and writes only when the user likes.
func New(store Store, eagerPersist bool, logger *slog.Logger) *Controller {
	return &Controller{
		store:        store,
		eagerPersist: eagerPersist,
		logger:       logger,
		state:        StateIdle,
	}
}

// BeginGenerate validates the category and moves to Generating, returning
// the token the eventual CompleteGenerate/FailGenerate call must present.
// An empty or unknown category fails synchronously without changing state.
func (c *Controller) BeginGenerate(category string) (uint64, error) {
	if category == "" {
		return 0, apperror.ValidationFailed("category", "카테고리를 선택해주세요!")
	}
	if _, err := catalog.Get(category); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.token++
	c.state = StateGenerating
	c.pending = category
	c.lastErr = nil
	return c.token, nil
}

// CompleteGenerate applies a successful generation result. It reports
// whether the result was applied; a stale token (the user started another
// generation or selected a stored idea meanwhile) is dropped untouched.
//
// In the eager-persist variant the idea is written to the store here.
// A write failure is logged and otherwise ignored: the user still sees the
// generated idea, it just has no ID and won't appear in history.
func (c *Controller) CompleteGenerate(ctx context.Context, token uint64, content string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isLatest(token) {
		return false
	}

	idea := &model.Idea{
		Content:  content,
		Category: c.pending,
	}
	if c.eagerPersist {
		if id, err := c.store.Save(ctx, idea); err != nil {
			c.logger.Error("persisting generated idea failed, continuing unpersisted",
				"category", idea.Category, "error", err)
		} else {
			idea.ID = id
		}
	}

	c.state = StateDisplayingGenerated
	c.current = idea
	c.liked = false
	c.lastErr = nil
	return true
}

// FailGenerate applies a generation failure, moving to Erred. Stale
// failures are dropped the same way stale successes are.
func (c *Controller) FailGenerate(token uint64, genErr error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isLatest(token) {
		return false
	}

	c.state = StateErred
	c.current = nil
	c.liked = false
	c.lastErr = genErr
	return true
}

// Like marks the freshly generated idea as liked, with exactly one store
// call: Like when the idea already has a persisted ID, Save(liked) when it
// does not (the local variant, or an eager persist that failed). A second
// call after success is a no-op. Outside DisplayingGenerated there is no
// like affordance and the call is a validation error.
//
// Store failures are logged, not surfaced; the affordance stays enabled so
// the user can try again.
func (c *Controller) Like(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDisplayingGenerated || c.current == nil {
		return apperror.ValidationFailed("state", "좋아요는 방금 생성된 아이디어에만 가능합니다.")
	}
	if c.liked {
		return nil
	}

	if c.current.ID != "" {
		if err := c.store.Like(ctx, c.current.ID); err != nil {
			c.logger.Error("persisting like failed", "id", c.current.ID, "error", err)
			return nil
		}
	} else {
		c.current.Liked = true
		id, err := c.store.Save(ctx, c.current)
		if err != nil {
			c.current.Liked = false
			c.logger.Error("persisting liked idea failed", "category", c.current.Category, "error", err)
			return nil
		}
		c.current.ID = id
	}

	c.current.Liked = true
	c.liked = true
	return nil
}

// SelectStored replaces the current view with a stored idea. It is pure
// display: no generation, no writes. Any in-flight generation is
// invalidated so a late-arriving result cannot overwrite the selection,
// and any error or like affordance from the previous view is cleared.
func (c *Controller) SelectStored(idea model.Idea) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token++ // strand any in-flight generation
	c.state = StateDisplayingSelected
	c.current = &idea
	c.liked = false
	c.lastErr = nil
	c.pending = ""
}

// Snapshot returns a coherent view of the controller. Current is a copy;
// mutating it does not touch controller state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{State: c.state, Liked: c.liked, Err: c.lastErr}
	if c.current != nil {
		cp := *c.current
		snap.Current = &cp
	}
	return snap
}

// List reads the stored ideas, failing open: an unreadable history
// degrades to "no history" (logged) rather than blocking generation.
func (c *Controller) List(ctx context.Context) []model.Idea {
	ideas, err := c.store.List(ctx)
	if err != nil {
		c.logger.Error("listing stored ideas failed, degrading to empty history", "error", err)
		return []model.Idea{}
	}
	return ideas
}

// isLatest reports whether a completion token still names the in-flight
// generation. Callers hold the mutex.
func (c *Controller) isLatest(token uint64) bool {
	if token != c.token || c.state != StateGenerating {
		c.logger.Debug("discarding stale generation result", "token", token, "latest", c.token)
		return false
	}
	return true
}
