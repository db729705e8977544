package models

import "time"

// NotificationType tags what a notification is about, so the frontend can
// pick an icon and a deep link.
type NotificationType string

const (
	NotificationIssueAssigned NotificationType = "issue_assigned"
	NotificationIssueUpdated  NotificationType = "issue_updated"
	NotificationCycleStarted  NotificationType = "cycle_started"
	NotificationSystem        NotificationType = "system"
)

// Notification is a per-user inbox entry.
// Delivered twice: persisted here for the inbox, and pushed over the
// websocket hub when the user is connected.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}
