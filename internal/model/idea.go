// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — plain records with struct tags
// describing their JSON and database shapes.
package model

import "time"

// Idea is the central entity: one generated text artifact belonging to a
// category. An Idea with an empty ID has never been persisted — the ID is
// assigned by whichever store writes it first.
//
// IMMUTABILITY CONTRACT:
// Content, Category, CreatedAt and the owner snapshot never change after the
// first write. The only mutable field is Liked, and it only ever transitions
// false → true (there is no un-like).
//
// The owner fields (UserEmail, UserDisplayName) are a denormalized snapshot
// taken at write time. They are NOT kept in sync with later profile edits —
// the stored idea shows who created it as they were at that moment.
type Idea struct {
	ID              string    `json:"id"              db:"id"`
	UserID          string    `json:"userId,omitempty"          db:"user_id"`
	UserEmail       string    `json:"userEmail,omitempty"       db:"user_email"`
	UserDisplayName string    `json:"userDisplayName,omitempty" db:"user_display_name"`
	Content         string    `json:"content"         db:"content"`
	Category        string    `json:"category"        db:"category"`
	Liked           bool      `json:"liked"           db:"liked"`
	CreatedAt       time.Time `json:"createdAt"       db:"created_at"`
}

// Favorite is the record kept by the local favorites store. It mirrors the
// browser-local shape of the original product: the extracted title is stored
// alongside the content so lists can render without re-parsing markdown, and
// the timestamp is a Unix epoch in milliseconds rather than a time.Time.
//
// There is no Liked flag here — presence in the favorites list IS the liked
// state.
type Favorite struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
	Category  string `json:"category"`
}
