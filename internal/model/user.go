package model

import "time"

// User represents a registered account.
//
// Two login paths exist: email+password (PasswordHash is set) and Google
// federated login (GoogleID is set). A single account can have both — a user
// who signed up with a password and later logs in with Google on the same
// email gets their GoogleID attached to the existing row.
//
// WHY GoogleID string (not int64)?
// Google's OIDC "sub" claim is an opaque string identifier. Unlike GitHub's
// numeric IDs, it must not be parsed or compared numerically.
//
// PasswordHash is never serialized: the `json:"-"` tag keeps the bcrypt hash
// out of every API response, including /api/me.
type User struct {
	ID           string    `json:"id"          db:"id"`
	GoogleID     string    `json:"-"           db:"google_id"`    // OIDC subject, empty for password-only accounts
	Email        string    `json:"email"       db:"email"`
	DisplayName  string    `json:"displayName" db:"display_name"` // shown in the navbar; may be empty
	PasswordHash string    `json:"-"           db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt"   db:"updated_at"`
}
