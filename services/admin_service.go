package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
	"github.com/irisedu/iris/repository"
	"github.com/irisedu/iris/ws"
)

// AdminService backs the /api/admin/* surface: priorities, teams and
// cycles. "Admin" in the path is historical — read access only needs a
// logged-in user; writes are gated by role in the middleware.
type AdminService interface {
	ListPriorities(ctx context.Context) ([]models.Priority, error)
	ListTeams(ctx context.Context, workspaceID string) ([]models.Team, error)
	CreateTeam(ctx context.Context, req *models.CreateTeamRequest) (*models.Team, error)
	ListCycles(ctx context.Context, teamID string) ([]models.Cycle, error)
	CreateCycle(ctx context.Context, teamID, name string, startsAt, endsAt time.Time) (*models.Cycle, error)
}

type adminService struct {
	priorityRepo repository.PriorityRepository
	teamRepo     repository.TeamRepository
	hub          ws.EventPublisher
}

// NewAdminService, constructor. hub may be nil in tests.
func NewAdminService(priorityRepo repository.PriorityRepository, teamRepo repository.TeamRepository, hub ws.EventPublisher) AdminService {
	return &adminService{
		priorityRepo: priorityRepo,
		teamRepo:     teamRepo,
		hub:          hub,
	}
}

func (s *adminService) ListPriorities(ctx context.Context) ([]models.Priority, error) {
	return s.priorityRepo.List(ctx)
}

func (s *adminService) ListTeams(ctx context.Context, workspaceID string) ([]models.Team, error) {
	return s.teamRepo.ListByWorkspace(ctx, workspaceID)
}

func (s *adminService) CreateTeam(ctx context.Context, req *models.CreateTeamRequest) (*models.Team, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	team := &models.Team{
		ID:          uuid.NewString(),
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
		Key:         req.Key,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *adminService) ListCycles(ctx context.Context, teamID string) ([]models.Cycle, error) {
	// Confirm the team exists first — a bogus team id should 404, not
	// return an empty list.
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	return s.teamRepo.ListCycles(ctx, teamID)
}

func (s *adminService) CreateCycle(ctx context.Context, teamID, name string, startsAt, endsAt time.Time) (*models.Cycle, error) {
	if !endsAt.After(startsAt) {
		return nil, fmt.Errorf("%w: cycle must end after it starts", pkg.ErrBadRequest)
	}

	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	// Cycle numbers are sequential per team; the newest cycle carries the
	// highest number.
	existing, err := s.teamRepo.ListCycles(ctx, teamID)
	if err != nil {
		return nil, err
	}
	number := 1
	if len(existing) > 0 {
		// ListCycles orders by number descending.
		number = existing[0].Number + 1
	}

	cycle := &models.Cycle{
		ID:       uuid.NewString(),
		TeamID:   teamID,
		Number:   number,
		Name:     name,
		StartsAt: startsAt,
		EndsAt:   endsAt,
	}
	if err := s.teamRepo.CreateCycle(ctx, cycle); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToAll(ws.Event{Op: ws.OpCycleStart, Data: cycle})
	}
	return cycle, nil
}
