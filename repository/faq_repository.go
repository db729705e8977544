package repository

import (
	"context"

	"github.com/irisedu/iris/models"
)

// FAQRepository, public help entries.
type FAQRepository interface {
	// List returns every FAQ ordered by display_order ascending.
	List(ctx context.Context) ([]models.FAQ, error)
	Create(ctx context.Context, faq *models.FAQ) error
	Delete(ctx context.Context, id string) error
}
