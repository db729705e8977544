package repository

import (
	"context"

	"github.com/irisedu/iris/models"
)

// NotificationRepository, per-user notification inbox.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error

	// List returns a user's notifications, newest first.
	// unreadOnly filters to is_read = 0; limit caps the result (0 = all).
	List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error)

	// MarkRead flips is_read on one notification. Idempotent.
	MarkRead(ctx context.Context, id string) error
}
