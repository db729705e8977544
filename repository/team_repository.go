package repository

import (
	"context"

	"github.com/irisedu/iris/models"
)

// TeamRepository, teams and their cycles.
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Team, error)
	ListCycles(ctx context.Context, teamID string) ([]models.Cycle, error)
	CreateCycle(ctx context.Context, cycle *models.Cycle) error
}
