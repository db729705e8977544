// Package main — handler layer wire-up.
package main

import (
	"github.com/irisedu/iris/handlers"
)

// Handlers is the container holding every HTTP handler instance.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Workspace    *handlers.WorkspaceHandler
	Admin        *handlers.AdminHandler
	Project      *handlers.ProjectHandler
	Notification *handlers.NotificationHandler
	FAQ          *handlers.FAQHandler
}

// initHandlers builds every handler from the services.
func initHandlers(svcs *Services, limiters *RateLimiters) *Handlers {
	return &Handlers{
		Auth:         handlers.NewAuthHandler(svcs.Auth, svcs.User, limiters.Login),
		Workspace:    handlers.NewWorkspaceHandler(svcs.Workspace),
		Admin:        handlers.NewAdminHandler(svcs.Admin),
		Project:      handlers.NewProjectHandler(svcs.Project),
		Notification: handlers.NewNotificationHandler(svcs.Notification),
		FAQ:          handlers.NewFAQHandler(svcs.FAQ),
	}
}
