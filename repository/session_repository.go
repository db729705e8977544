package repository

import (
	"context"
	"time"

	"github.com/irisedu/iris/models"
)

// SessionRepository, session records keyed by access-token digest.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)

	// Revoke marks the matching session inactive and revoked, stamping
	// revoked_at and revoked_reason — but only on the FIRST revocation:
	// an already-revoked row is left untouched (the transition is one-way
	// and happens exactly once). Returns the number of rows that actually
	// transitioned; 0 means the row was missing or already revoked, which
	// callers are free to ignore.
	Revoke(ctx context.Context, tokenHash, reason string) (int64, error)

	// RevokeAllForUser revokes every active session of a user, e.g. after
	// a password reset.
	RevokeAllForUser(ctx context.Context, userID, reason string) error

	// DeleteOlderThan removes rows created before cutoff. Sessions carry
	// no expiry column — the access token expires on its own — so age is
	// the retention criterion.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) error
}
