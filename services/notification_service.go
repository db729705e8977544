package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
	"github.com/irisedu/iris/repository"
	"github.com/irisedu/iris/ws"
)

// NotificationService persists notifications and pushes them over the
// websocket hub in the same call. The inbox row is the source of truth;
// the push is best-effort (a disconnected user reads it later).
type NotificationService interface {
	Notify(ctx context.Context, userID string, kind models.NotificationType, title, message string) (*models.Notification, error)
	List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	hub              ws.EventPublisher
}

// NewNotificationService, constructor. hub may be nil in tests.
func NewNotificationService(notificationRepo repository.NotificationRepository, hub ws.EventPublisher) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		hub:              hub,
	}
}

func (s *notificationService) Notify(ctx context.Context, userID string, kind models.NotificationType, title, message string) (*models.Notification, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", pkg.ErrBadRequest)
	}

	n := &models.Notification{
		ID:      uuid.NewString(),
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToUser(userID, ws.Event{
			Op:   ws.OpNotificationCreate,
			Data: n,
		})
	}
	return n, nil
}

func (s *notificationService) List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", pkg.ErrBadRequest)
	}
	return s.notificationRepo.List(ctx, userID, unreadOnly, limit)
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	return s.notificationRepo.MarkRead(ctx, id)
}
