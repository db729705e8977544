package services

import (
	"context"
	"fmt"
	"log"

	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
	"github.com/irisedu/iris/repository"
	"github.com/irisedu/iris/ws"
)

// ProjectService exposes project issue listings and issue updates.
type ProjectService interface {
	ListIssues(ctx context.Context, projectID string) ([]models.Issue, error)

	// UpdateIssue applies a partial update and notifies the assignee.
	UpdateIssue(ctx context.Context, issueID string, req *models.UpdateIssueRequest) (*models.Issue, error)
}

type projectService struct {
	projectRepo   repository.ProjectRepository
	notifications NotificationService
	hub           ws.EventPublisher
}

// NewProjectService, constructor. hub may be nil in tests.
func NewProjectService(projectRepo repository.ProjectRepository, notifications NotificationService, hub ws.EventPublisher) ProjectService {
	return &projectService{
		projectRepo:   projectRepo,
		notifications: notifications,
		hub:           hub,
	}
}

func (s *projectService) ListIssues(ctx context.Context, projectID string) ([]models.Issue, error) {
	// The project must exist; a typo'd id is a 404, not an empty list.
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.projectRepo.ListIssues(ctx, projectID)
}

func (s *projectService) UpdateIssue(ctx context.Context, issueID string, req *models.UpdateIssueRequest) (*models.Issue, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	before, err := s.projectRepo.GetIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}

	issue, err := s.projectRepo.UpdateIssue(ctx, issueID, req)
	if err != nil {
		return nil, err
	}

	// Boards refresh live off this event; the inbox notification below
	// only goes to the assignee.
	if s.hub != nil {
		s.hub.BroadcastToAll(ws.Event{Op: ws.OpIssueUpdate, Data: issue})
	}

	s.notifyAssignee(ctx, before, issue, req)
	return issue, nil
}

// notifyAssignee tells the affected user what changed. A fresh
// assignment notifies the new assignee; any other change notifies the
// current assignee. Notification failures are logged, never surfaced —
// the issue update itself already succeeded.
func (s *projectService) notifyAssignee(ctx context.Context, before, after *models.Issue, req *models.UpdateIssueRequest) {
	newlyAssigned := req.AssigneeID != nil && after.AssigneeID != nil &&
		(before.AssigneeID == nil || *before.AssigneeID != *after.AssigneeID)

	switch {
	case newlyAssigned:
		_, err := s.notifications.Notify(ctx, *after.AssigneeID,
			models.NotificationIssueAssigned,
			"Nueva asignación",
			fmt.Sprintf("Se te asignó la tarea «%s»", after.Title))
		if err != nil {
			log.Printf("[project] failed to notify assignee for issue %s: %v", after.ID, err)
		}

	case after.AssigneeID != nil:
		_, err := s.notifications.Notify(ctx, *after.AssigneeID,
			models.NotificationIssueUpdated,
			"Tarea actualizada",
			fmt.Sprintf("La tarea «%s» fue actualizada", after.Title))
		if err != nil {
			log.Printf("[project] failed to notify assignee for issue %s: %v", after.ID, err)
		}
	}
}
