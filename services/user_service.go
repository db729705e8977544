package services

import (
	"context"

	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/repository"
)

// UserService exposes account reads for the profile endpoints.
type UserService interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService, constructor.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
