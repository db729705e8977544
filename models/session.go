package models

import "time"

// Session is the persisted record of an issued access token.
//
// The row is keyed by TokenHash — the SHA-256 digest of the raw token.
// The raw token never touches the database; the digest is only a lookup
// key, useless to an attacker who reads the table.
//
// Lifecycle invariant: at most one row per token hash, and a row moves
// active -> revoked exactly once, never back. Revocation is recorded with
// a timestamp and a reason ("logout", "password_reset", ...).
type Session struct {
	TokenHash     string     `json:"-"`
	UserID        string     `json:"userId"`
	IsActive      bool       `json:"isActive"`
	IsRevoked     bool       `json:"isRevoked"`
	RevokedAt     *time.Time `json:"revokedAt,omitempty"`
	RevokedReason *string    `json:"revokedReason,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}
