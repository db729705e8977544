package repository

import (
	"context"

	"github.com/irisedu/iris/models"
)

// PriorityRepository, the seeded priority lookup table (read-only at runtime).
type PriorityRepository interface {
	// List returns all priorities ordered by rank ascending (most urgent first).
	List(ctx context.Context) ([]models.Priority, error)
}
