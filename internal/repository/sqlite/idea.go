package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/idea-generator/internal/apperror"
	"github.com/sakif/idea-generator/internal/model"
	"github.com/sakif/idea-generator/internal/repository"
)

// compile-time check that *DB implements repository.IdeaRepository
var _ repository.IdeaRepository = (*DB)(nil)

// Create inserts a new idea document. ID and CreatedAt are assigned here —
// the server clock stamps creation so client clock skew never orders the
// history wrong. The caller's struct is updated in place.
func (db *DB) Create(ctx context.Context, idea *model.Idea) error {
	idea.ID = xid.New().String()
	idea.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO ideas (id, user_id, user_email, user_display_name, content, category, liked, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		idea.ID,
		idea.UserID,
		idea.UserEmail,
		idea.UserDisplayName,
		idea.Content,
		idea.Category,
		idea.Liked,
		idea.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating idea: %w", err)
	}

	return nil
}

// ListByUser returns the owner's ideas, newest first, capped at limit.
// The WHERE clause is the tenancy boundary: no query path exists that can
// return another user's documents.
func (db *DB) ListByUser(ctx context.Context, userID string, limit int) ([]model.Idea, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, user_email, user_display_name, content, category, liked, created_at
		 FROM ideas
		 WHERE user_id = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		userID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing ideas for user %s: %w", userID, err)
	}
	defer rows.Close()

	ideas := make([]model.Idea, 0, limit)
	for rows.Next() {
		var i model.Idea
		if err := rows.Scan(
			&i.ID, &i.UserID, &i.UserEmail, &i.UserDisplayName,
			&i.Content, &i.Category, &i.Liked, &i.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning idea row: %w", err)
		}
		ideas = append(ideas, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating ideas: %w", err)
	}

	return ideas, nil
}

// GetByID fetches one idea owned by userID. An idea belonging to a different
// user behaves exactly like a missing one.
func (db *DB) GetByID(ctx context.Context, userID, id string) (*model.Idea, error) {
	var i model.Idea

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, user_email, user_display_name, content, category, liked, created_at
		 FROM ideas
		 WHERE id = ? AND user_id = ?`,
		id, userID,
	).Scan(
		&i.ID, &i.UserID, &i.UserEmail, &i.UserDisplayName,
		&i.Content, &i.Category, &i.Liked, &i.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("idea", id)
		}
		return nil, fmt.Errorf("sqlite: getting idea %s: %w", id, err)
	}

	return &i, nil
}

// Like flips the single liked field to true. The transition only ever goes
// false → true; setting an already-liked idea is a harmless no-op at the SQL
// level (the row matches, the value doesn't change).
func (db *DB) Like(ctx context.Context, userID, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE ideas SET liked = 1 WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: liking idea %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("idea", id)
	}

	return nil
}

// Delete removes one idea owned by userID. RowsAffected distinguishes "gone"
// from "never existed / not yours".
func (db *DB) Delete(ctx context.Context, userID, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM ideas WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting idea %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("idea", id)
	}

	return nil
}
