package handlers

import (
	"net/http"
	"strconv"

	"github.com/irisedu/iris/pkg"
	"github.com/irisedu/iris/services"
)

// NotificationHandler serves the notification inbox endpoints.
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler, constructor.
func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List godoc
// GET /api/notifications?userId=...&unreadOnly=true&limit=20
// Returns a bare array, newest first. userId is mandatory.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "userId is required")
		return
	}

	unreadOnly := r.URL.Query().Get("unreadOnly") == "true"

	limit := 0
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 0 {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	notifications, err := h.notificationService.List(r.Context(), userID, unreadOnly, limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, notifications)
}

// MarkRead godoc
// PATCH /api/notifications/{id}/read
// Idempotent; marking an already-read notification succeeds too.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "notification id is required")
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
