package models

import "time"

// PasswordResetToken is a one-shot token for the email reset flow.
// Stored hashed, same rule as sessions: the plaintext only ever lives in
// the email link. Consumed (deleted) on successful reset.
type PasswordResetToken struct {
	TokenHash string    `json:"-"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
