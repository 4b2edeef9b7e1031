// Package repository defines the storage interfaces the service layer
// programs against. The sqlite subpackage is the concrete implementation;
// tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/sakif/idea-generator/internal/model"
)

// IdeaRepository is the per-user idea collection (the cloud store).
//
// Every read and every mutation is scoped to an owner: a query never returns
// — and a mutation never touches — another user's ideas.
type IdeaRepository interface {
	// Create inserts a new idea, assigning ID and CreatedAt (server clock).
	Create(ctx context.Context, idea *model.Idea) error

	// ListByUser returns the owner's most recent ideas, newest first,
	// capped at limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]model.Idea, error)

	// GetByID fetches one idea owned by userID.
	GetByID(ctx context.Context, userID, id string) (*model.Idea, error)

	// Like sets liked=true on one idea owned by userID. Re-invoking on an
	// already-liked idea is a harmless no-op.
	Like(ctx context.Context, userID, id string) error

	// Delete removes one idea owned by userID.
	Delete(ctx context.Context, userID, id string) error
}

type UserRepository interface {
	// CreateUser inserts a new account, assigning ID and timestamps.
	CreateUser(ctx context.Context, user *model.User) error

	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// UpsertGoogle links a Google identity: insert on first login, update
	// the profile snapshot (and attach the Google ID to an existing
	// password account with the same email) on subsequent logins.
	UpsertGoogle(ctx context.Context, user *model.User) error
}
