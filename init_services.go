// Package main — service layer wire-up.
//
// initServices builds every service. Each service receives the
// repository interfaces and shared dependencies it needs through its
// constructor (constructor injection).
package main

import (
	"log"
	"time"

	"github.com/irisedu/iris/config"
	"github.com/irisedu/iris/pkg/email"
	"github.com/irisedu/iris/pkg/ratelimit"
	"github.com/irisedu/iris/pkg/token"
	"github.com/irisedu/iris/services"
	"github.com/irisedu/iris/ws"
)

// Services is the container holding every service instance.
type Services struct {
	Auth         services.AuthService
	User         services.UserService
	Workspace    services.WorkspaceService
	Admin        services.AdminService
	Project      services.ProjectService
	Notification services.NotificationService
	FAQ          services.FAQService
}

// RateLimiters holds the rate limiter instances so main can Close them
// on shutdown.
type RateLimiters struct {
	Login *ratelimit.LoginRateLimiter
}

// initServices builds every service and rate limiter.
//
// The notification service comes first — the project service pushes
// assignee notifications through it.
func initServices(repos *Repositories, hub ws.EventPublisher, cfg *config.Config) (*Services, *RateLimiters) {
	codec := token.NewCodec(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Email is optional wiring: without Resend credentials the reset
	// flow logs the token instead of emailing it.
	var mailer email.EmailSender
	if cfg.Email.ResendAPIKey != "" && cfg.Email.FromEmail != "" && cfg.Email.AppURL != "" {
		mailer = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AppURL)
		log.Println("[main] email sender configured")
	} else {
		log.Println("[main] email sender NOT configured, reset tokens will be logged")
	}

	notificationService := services.NewNotificationService(repos.Notification, hub)

	svcs := &Services{
		Auth:         services.NewAuthService(repos.User, repos.Session, repos.ResetToken, codec, mailer),
		User:         services.NewUserService(repos.User),
		Workspace:    services.NewWorkspaceService(repos.Workspace, repos.User),
		Admin:        services.NewAdminService(repos.Priority, repos.Team, hub),
		Project:      services.NewProjectService(repos.Project, notificationService, hub),
		Notification: notificationService,
		FAQ:          services.NewFAQService(repos.FAQ),
	}

	limiters := &RateLimiters{
		// 5 attempts per IP per minute, the window slides.
		Login: ratelimit.NewLoginRateLimiter(5, time.Minute),
	}

	return svcs, limiters
}
