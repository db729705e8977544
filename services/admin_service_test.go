package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
	"github.com/irisedu/iris/ws"
)

type memTeamRepo struct {
	mu     sync.Mutex
	teams  map[string]*models.Team
	cycles map[string][]models.Cycle // teamID → cycles
}

func newMemTeamRepo() *memTeamRepo {
	return &memTeamRepo{
		teams:  make(map[string]*models.Team),
		cycles: make(map[string][]models.Cycle),
	}
}

func (r *memTeamRepo) Create(ctx context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams[team.ID] = team
	return nil
}

func (r *memTeamRepo) GetByID(ctx context.Context, id string) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	team, ok := r.teams[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	copied := *team
	return &copied, nil
}

func (r *memTeamRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Team, error) {
	return []models.Team{}, nil
}

func (r *memTeamRepo) ListCycles(ctx context.Context, teamID string) ([]models.Cycle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]models.Cycle{}, r.cycles[teamID]...)
	// highest number first, like the SQL ordering
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return out, nil
}

func (r *memTeamRepo) CreateCycle(ctx context.Context, cycle *models.Cycle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cycles[cycle.TeamID] = append(r.cycles[cycle.TeamID], *cycle)
	return nil
}

func adminFixture(t *testing.T) (*memTeamRepo, *memHub, AdminService) {
	t.Helper()

	teamRepo := newMemTeamRepo()
	hub := newMemHub()
	svc := NewAdminService(nil, teamRepo, hub)

	teamRepo.teams["team-1"] = &models.Team{ID: "team-1", WorkspaceID: "ws-1", Name: "Matemáticas", Key: "MAT"}

	return teamRepo, hub, svc
}

func TestCreateCycleNumbersSequentially(t *testing.T) {
	_, hub, svc := adminFixture(t)
	start := time.Now()

	first, err := svc.CreateCycle(context.Background(), "team-1", "Ciclo 1", start, start.Add(14*24*time.Hour))
	if err != nil {
		t.Fatalf("CreateCycle: %v", err)
	}
	if first.Number != 1 {
		t.Errorf("first cycle number = %d, want 1", first.Number)
	}

	second, err := svc.CreateCycle(context.Background(), "team-1", "Ciclo 2", start, start.Add(14*24*time.Hour))
	if err != nil {
		t.Fatalf("CreateCycle: %v", err)
	}
	if second.Number != 2 {
		t.Errorf("second cycle number = %d, want 2", second.Number)
	}

	ops := hub.broadcastOps()
	if len(ops) != 2 || ops[0] != ws.OpCycleStart || ops[1] != ws.OpCycleStart {
		t.Fatalf("broadcast ops = %v, want two %s events", ops, ws.OpCycleStart)
	}
}

func TestCreateCycleRejectsInvertedDates(t *testing.T) {
	_, hub, svc := adminFixture(t)
	start := time.Now()

	_, err := svc.CreateCycle(context.Background(), "team-1", "Ciclo", start, start)
	if !errors.Is(err, pkg.ErrBadRequest) {
		t.Fatalf("end == start: err = %v, want ErrBadRequest", err)
	}
	if len(hub.broadcastOps()) != 0 {
		t.Error("rejected cycle still broadcast an event")
	}
}

func TestCreateCycleUnknownTeam(t *testing.T) {
	_, _, svc := adminFixture(t)
	start := time.Now()

	_, err := svc.CreateCycle(context.Background(), "team-nope", "Ciclo", start, start.Add(time.Hour))
	if !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListCyclesUnknownTeam(t *testing.T) {
	_, _, svc := adminFixture(t)

	_, err := svc.ListCycles(context.Background(), "team-nope")
	if !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
