package lifecycle

import (
	"context"
	"time"

	"github.com/sakif/idea-generator/internal/apperror"
	"github.com/sakif/idea-generator/internal/favorites"
	"github.com/sakif/idea-generator/internal/markdown"
	"github.com/sakif/idea-generator/internal/model"
	"github.com/sakif/idea-generator/internal/repository"
)

// Store is the single persistence capability the controller programs
// against. Two implementations back it: the per-account cloud store and
// the anonymous local favorites file. Which one a controller gets is
// decided by authentication state at construction time, not inside the
// state machine.
type Store interface {
	// Save persists a new idea and returns its assigned ID.
	Save(ctx context.Context, idea *model.Idea) (string, error)

	// List returns the stored ideas, newest first.
	List(ctx context.Context) ([]model.Idea, error)

	// Get fetches one stored idea for selection-by-identity.
	Get(ctx context.Context, id string) (*model.Idea, error)

	// Like marks an already-persisted idea as liked.
	Like(ctx context.Context, id string) error

	// Delete removes one stored idea.
	Delete(ctx context.Context, id string) error
}

// cloudListLimit caps history reads; the UI never shows more.
const cloudListLimit = 20

// CloudStore adapts the per-user idea repository to the Store capability.
// Every call is scoped to the one user the store was built for, with the
// owner snapshot (email, display name) stamped onto each write.
type CloudStore struct {
	repo repository.IdeaRepository
	user *model.User
}

var _ Store = (*CloudStore)(nil)

func NewCloudStore(repo repository.IdeaRepository, user *model.User) *CloudStore {
	return &CloudStore{repo: repo, user: user}
}

func (s *CloudStore) Save(ctx context.Context, idea *model.Idea) (string, error) {
	idea.UserID = s.user.ID
	idea.UserEmail = s.user.Email
	idea.UserDisplayName = s.user.DisplayName
	if err := s.repo.Create(ctx, idea); err != nil {
		return "", apperror.Persistence("create idea", err)
	}
	return idea.ID, nil
}

func (s *CloudStore) List(ctx context.Context) ([]model.Idea, error) {
	ideas, err := s.repo.ListByUser(ctx, s.user.ID, cloudListLimit)
	if err != nil {
		return nil, apperror.Persistence("list ideas", err)
	}
	return ideas, nil
}

func (s *CloudStore) Get(ctx context.Context, id string) (*model.Idea, error) {
	return s.repo.GetByID(ctx, s.user.ID, id)
}

func (s *CloudStore) Like(ctx context.Context, id string) error {
	if err := s.repo.Like(ctx, s.user.ID, id); err != nil {
		return err
	}
	return nil
}

func (s *CloudStore) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, s.user.ID, id)
}

// LocalStore adapts the favorites file to the Store capability for
// anonymous sessions. The local variant writes nothing at generation
// time: an idea reaches this store only through a like, so Save is the
// like path and a stored idea is liked by definition.
type LocalStore struct {
	favs *favorites.Store
}

var _ Store = (*LocalStore)(nil)

func NewLocalStore(favs *favorites.Store) *LocalStore {
	return &LocalStore{favs: favs}
}

func (s *LocalStore) Save(ctx context.Context, idea *model.Idea) (string, error) {
	fav, err := s.favs.Add(model.Favorite{
		Title:    markdown.Title(idea.Content),
		Content:  idea.Content,
		Category: idea.Category,
	})
	if err != nil {
		return "", err
	}
	return fav.ID, nil
}

func (s *LocalStore) List(ctx context.Context) ([]model.Idea, error) {
	favs := s.favs.List()
	ideas := make([]model.Idea, 0, len(favs))
	for _, f := range favs {
		ideas = append(ideas, favoriteToIdea(f))
	}
	return ideas, nil
}

func (s *LocalStore) Get(ctx context.Context, id string) (*model.Idea, error) {
	f, err := s.favs.Get(id)
	if err != nil {
		return nil, err
	}
	idea := favoriteToIdea(f)
	return &idea, nil
}

// favoriteToIdea maps the browser-local record shape back onto the
// central entity. A favorite is liked by definition.
func favoriteToIdea(f model.Favorite) model.Idea {
	return model.Idea{
		ID:        f.ID,
		Content:   f.Content,
		Category:  f.Category,
		Liked:     true,
		CreatedAt: time.UnixMilli(f.Timestamp).UTC(),
	}
}

// Like is a no-op for a favorite that exists: presence in the list IS the
// liked state.
func (s *LocalStore) Like(ctx context.Context, id string) error {
	if _, err := s.favs.Get(id); err != nil {
		return err
	}
	return nil
}

// Delete is not part of the local variant — favorites only leave the list
// through eviction.
func (s *LocalStore) Delete(ctx context.Context, id string) error {
	return apperror.Forbidden("favorites cannot be deleted, only evicted")
}
