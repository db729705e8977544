package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
	"github.com/irisedu/iris/ws"
)

// memHub records broadcast events instead of pushing them anywhere.
type memHub struct {
	mu        sync.Mutex
	broadcast []ws.Event
	perUser   map[string][]ws.Event
}

func newMemHub() *memHub {
	return &memHub{perUser: make(map[string][]ws.Event)}
}

func (h *memHub) BroadcastToAll(event ws.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcast = append(h.broadcast, event)
}

func (h *memHub) BroadcastToUser(userID string, event ws.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.perUser[userID] = append(h.perUser[userID], event)
}

func (h *memHub) GetOnlineUserIDs() []string { return nil }

func (h *memHub) broadcastOps() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	ops := make([]string, 0, len(h.broadcast))
	for _, e := range h.broadcast {
		ops = append(ops, e.Op)
	}
	return ops
}

type memProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*models.Project
	issues   map[string]*models.Issue
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{
		projects: make(map[string]*models.Project),
		issues:   make(map[string]*models.Issue),
	}
}

func (r *memProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memProjectRepo) ListIssues(ctx context.Context, projectID string) ([]models.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Issue{}
	for _, i := range r.issues {
		if i.ProjectID == projectID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *memProjectRepo) GetIssue(ctx context.Context, id string) (*models.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.issues[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	copied := *i
	return &copied, nil
}

func (r *memProjectRepo) UpdateIssue(ctx context.Context, id string, req *models.UpdateIssueRequest) (*models.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.issues[id]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	if req.Status != nil {
		i.Status = *req.Status
	}
	if req.PriorityID != nil {
		i.PriorityID = req.PriorityID
	}
	if req.AssigneeID != nil {
		i.AssigneeID = req.AssigneeID
	}
	copied := *i
	return &copied, nil
}

type memNotificationRepo struct {
	mu      sync.Mutex
	created []*models.Notification
}

func (r *memNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, n)
	return nil
}

func (r *memNotificationRepo) List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	return []models.Notification{}, nil
}

func (r *memNotificationRepo) MarkRead(ctx context.Context, id string) error { return nil }

func projectFixture(t *testing.T) (*memProjectRepo, *memHub, ProjectService) {
	t.Helper()

	repo := newMemProjectRepo()
	hub := newMemHub()
	notifications := NewNotificationService(&memNotificationRepo{}, hub)
	svc := NewProjectService(repo, notifications, hub)

	assignee := "user-2"
	repo.projects["proj-1"] = &models.Project{ID: "proj-1", Name: "Plataforma"}
	repo.issues["issue-1"] = &models.Issue{
		ID:         "issue-1",
		ProjectID:  "proj-1",
		Title:      "Corregir inicio de sesión",
		Status:     models.IssueTodo,
		AssigneeID: &assignee,
	}

	return repo, hub, svc
}

func TestUpdateIssueBroadcastsUpdate(t *testing.T) {
	_, hub, svc := projectFixture(t)

	done := models.IssueDone
	issue, err := svc.UpdateIssue(context.Background(), "issue-1", &models.UpdateIssueRequest{Status: &done})
	if err != nil {
		t.Fatalf("UpdateIssue: %v", err)
	}
	if issue.Status != models.IssueDone {
		t.Errorf("Status = %q, want done", issue.Status)
	}

	ops := hub.broadcastOps()
	if len(ops) != 1 || ops[0] != ws.OpIssueUpdate {
		t.Fatalf("broadcast ops = %v, want [%s]", ops, ws.OpIssueUpdate)
	}

	// the assignee also gets an inbox push
	events := hub.perUser["user-2"]
	if len(events) != 1 || events[0].Op != ws.OpNotificationCreate {
		t.Fatalf("assignee events = %v, want one notification_create", events)
	}
}

func TestUpdateIssueUnknownIssue(t *testing.T) {
	_, hub, svc := projectFixture(t)

	done := models.IssueDone
	_, err := svc.UpdateIssue(context.Background(), "issue-nope", &models.UpdateIssueRequest{Status: &done})
	if !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(hub.broadcastOps()) != 0 {
		t.Error("failed update still broadcast an event")
	}
}

func TestUpdateIssueEmptyRequest(t *testing.T) {
	_, _, svc := projectFixture(t)

	_, err := svc.UpdateIssue(context.Background(), "issue-1", &models.UpdateIssueRequest{})
	if !errors.Is(err, pkg.ErrBadRequest) {
		t.Fatalf("err = %v, want ErrBadRequest", err)
	}
}
