// Package repository defines the data-access interfaces and their SQLite
// implementations. Services depend on the interfaces only; tests swap in
// in-memory fakes.
package repository

import (
	"context"

	"github.com/irisedu/iris/models"
)

// UserRepository, account storage.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
