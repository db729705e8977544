package repository

import (
	"context"

	"github.com/irisedu/iris/models"
)

// ResetTokenRepository, hashed one-shot password-reset tokens.
type ResetTokenRepository interface {
	Create(ctx context.Context, token *models.PasswordResetToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error)

	// Delete consumes a token after use (or invalidates it early).
	Delete(ctx context.Context, tokenHash string) error
	DeleteByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) error
}
