package repository

import (
	"context"

	"github.com/irisedu/iris/models"
)

// ProjectRepository, projects and their issues.
type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*models.Project, error)
	ListIssues(ctx context.Context, projectID string) ([]models.Issue, error)
	GetIssue(ctx context.Context, id string) (*models.Issue, error)

	// UpdateIssue applies the non-nil fields of req and bumps updated_at.
	UpdateIssue(ctx context.Context, id string, req *models.UpdateIssueRequest) (*models.Issue, error)
}
