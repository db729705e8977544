package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
	"github.com/irisedu/iris/repository"
)

// FAQService manages the public help entries. Reading is open to
// everyone; writes are admin-only (enforced in the routes).
type FAQService interface {
	List(ctx context.Context) ([]models.FAQ, error)
	Create(ctx context.Context, req *models.CreateFAQRequest) (*models.FAQ, error)
	Delete(ctx context.Context, id string) error
}

type faqService struct {
	faqRepo repository.FAQRepository
}

// NewFAQService, constructor.
func NewFAQService(faqRepo repository.FAQRepository) FAQService {
	return &faqService{faqRepo: faqRepo}
}

func (s *faqService) List(ctx context.Context) ([]models.FAQ, error) {
	return s.faqRepo.List(ctx)
}

func (s *faqService) Create(ctx context.Context, req *models.CreateFAQRequest) (*models.FAQ, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	faq := &models.FAQ{
		ID:           uuid.NewString(),
		Question:     req.Question,
		Answer:       req.Answer,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.faqRepo.Create(ctx, faq); err != nil {
		return nil, err
	}
	return faq, nil
}

func (s *faqService) Delete(ctx context.Context, id string) error {
	return s.faqRepo.Delete(ctx, id)
}
