// Package main — repository layer wire-up.
//
// initRepositories builds every repository implementation. Moved out of
// main.go to keep the wire-up modular.
package main

import (
	"database/sql"

	"github.com/irisedu/iris/repository"
)

// Repositories is the container holding every repository instance.
//
// Why a struct? One struct instead of nine loose variables:
// 1. keeps function signatures short
// 2. a new repository touches only the struct and initRepositories
// 3. easy access via repos.User, repos.Session, ...
type Repositories struct {
	User         repository.UserRepository
	Session      repository.SessionRepository
	ResetToken   repository.ResetTokenRepository
	Workspace    repository.WorkspaceRepository
	Team         repository.TeamRepository
	Project      repository.ProjectRepository
	Priority     repository.PriorityRepository
	Notification repository.NotificationRepository
	FAQ          repository.FAQRepository
}

// initRepositories builds all repositories from one connection.
// sql.DB is a thread-safe connection pool; sharing it is fine.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:         repository.NewSQLiteUserRepo(conn),
		Session:      repository.NewSQLiteSessionRepo(conn),
		ResetToken:   repository.NewSQLiteResetTokenRepo(conn),
		Workspace:    repository.NewSQLiteWorkspaceRepo(conn),
		Team:         repository.NewSQLiteTeamRepo(conn),
		Project:      repository.NewSQLiteProjectRepo(conn),
		Priority:     repository.NewSQLitePriorityRepo(conn),
		Notification: repository.NewSQLiteNotificationRepo(conn),
		FAQ:          repository.NewSQLiteFAQRepo(conn),
	}
}
