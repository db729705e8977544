package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
)

type memWorkspaceRepo struct {
	mu      sync.Mutex
	roles   map[string]models.WorkspaceRole // "workspaceID:userID" → role
	roleErr error                           // forced GetMemberRole failure
}

func newMemWorkspaceRepo() *memWorkspaceRepo {
	return &memWorkspaceRepo{roles: make(map[string]models.WorkspaceRole)}
}

func (r *memWorkspaceRepo) Create(ctx context.Context, workspace *models.Workspace, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[workspace.ID+":"+ownerID] = models.RoleAdmin
	return nil
}

func (r *memWorkspaceRepo) ListByUserID(ctx context.Context, userID string) ([]models.WorkspaceWithRole, error) {
	return []models.WorkspaceWithRole{}, nil
}

func (r *memWorkspaceRepo) GetMemberRole(ctx context.Context, workspaceID, userID string) (models.WorkspaceRole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.roleErr != nil {
		return "", r.roleErr
	}
	role, ok := r.roles[workspaceID+":"+userID]
	if !ok {
		return "", pkg.ErrNotFound
	}
	return role, nil
}

func (r *memWorkspaceRepo) AddMember(ctx context.Context, member *models.WorkspaceMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := member.WorkspaceID + ":" + member.UserID
	if _, ok := r.roles[key]; ok {
		return pkg.ErrAlreadyExists
	}
	r.roles[key] = member.Role
	return nil
}

func workspaceFixture(t *testing.T) (*memWorkspaceRepo, *memUserRepo, WorkspaceService) {
	t.Helper()

	workspaceRepo := newMemWorkspaceRepo()
	userRepo := newMemUserRepo()
	svc := NewWorkspaceService(workspaceRepo, userRepo)

	users := []*models.User{
		{ID: "user-manager", Email: "gestora@iris.edu", FullName: "Lucía Ortiz"},
		{ID: "user-member", Email: "alumno@iris.edu", FullName: "Diego Ruiz"},
		{ID: "user-new", Email: "nueva@iris.edu", FullName: "Carmen Vega"},
	}
	for _, u := range users {
		if err := userRepo.Create(context.Background(), u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	workspaceRepo.roles["ws-1:user-manager"] = models.RoleManager
	workspaceRepo.roles["ws-1:user-member"] = models.RoleMember

	return workspaceRepo, userRepo, svc
}

func TestMemberRoleNonMemberIsForbidden(t *testing.T) {
	_, _, svc := workspaceFixture(t)

	_, err := svc.MemberRole(context.Background(), "ws-1", "user-stranger")
	if !errors.Is(err, pkg.ErrForbidden) {
		t.Fatalf("non-member: err = %v, want ErrForbidden", err)
	}

	// unknown workspace must be indistinguishable from non-membership
	_, err2 := svc.MemberRole(context.Background(), "ws-nope", "user-member")
	if !errors.Is(err2, pkg.ErrForbidden) {
		t.Fatalf("unknown workspace: err = %v, want ErrForbidden", err2)
	}
	if err.Error() != err2.Error() {
		t.Errorf("error messages differ: %q vs %q", err, err2)
	}
}

// A database failure during the role lookup is an internal error, not a
// membership verdict — it must NOT look like forbidden.
func TestMemberRoleRepoFailureSurfaces(t *testing.T) {
	workspaceRepo, _, svc := workspaceFixture(t)
	repoErr := errors.New("database is locked")
	workspaceRepo.roleErr = repoErr

	_, err := svc.MemberRole(context.Background(), "ws-1", "user-member")
	if errors.Is(err, pkg.ErrForbidden) {
		t.Fatal("infrastructure failure was reported as forbidden")
	}
	if !errors.Is(err, repoErr) {
		t.Fatalf("repo error lost: %v", err)
	}
}

func TestInviteMember(t *testing.T) {
	workspaceRepo, _, svc := workspaceFixture(t)

	member, err := svc.InviteMember(context.Background(), "ws-1", "user-manager",
		&models.InviteMemberRequest{Email: "nueva@iris.edu"})
	if err != nil {
		t.Fatalf("InviteMember: %v", err)
	}
	if member.UserID != "user-new" {
		t.Errorf("UserID = %q, want user-new", member.UserID)
	}
	// omitted role defaults to member
	if member.Role != models.RoleMember {
		t.Errorf("Role = %q, want member", member.Role)
	}
	if got, _ := workspaceRepo.GetMemberRole(context.Background(), "ws-1", "user-new"); got != models.RoleMember {
		t.Errorf("stored role = %q, want member", got)
	}
}

func TestInviteMemberRequiresPermission(t *testing.T) {
	_, _, svc := workspaceFixture(t)

	// plain members do not carry invite_members
	_, err := svc.InviteMember(context.Background(), "ws-1", "user-member",
		&models.InviteMemberRequest{Email: "nueva@iris.edu"})
	if !errors.Is(err, pkg.ErrForbidden) {
		t.Fatalf("member inviter: err = %v, want ErrForbidden", err)
	}

	// non-members even less so
	_, err = svc.InviteMember(context.Background(), "ws-1", "user-stranger",
		&models.InviteMemberRequest{Email: "nueva@iris.edu"})
	if !errors.Is(err, pkg.ErrForbidden) {
		t.Fatalf("stranger inviter: err = %v, want ErrForbidden", err)
	}
}

func TestInviteMemberUnknownEmail(t *testing.T) {
	_, _, svc := workspaceFixture(t)

	_, err := svc.InviteMember(context.Background(), "ws-1", "user-manager",
		&models.InviteMemberRequest{Email: "nadie@iris.edu"})
	if !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("unknown email: err = %v, want ErrNotFound", err)
	}
}

func TestInviteMemberAlreadyMember(t *testing.T) {
	_, _, svc := workspaceFixture(t)

	_, err := svc.InviteMember(context.Background(), "ws-1", "user-manager",
		&models.InviteMemberRequest{Email: "alumno@iris.edu"})
	if !errors.Is(err, pkg.ErrAlreadyExists) {
		t.Fatalf("duplicate invite: err = %v, want ErrAlreadyExists", err)
	}
}

func TestInviteMemberInvalidRole(t *testing.T) {
	_, _, svc := workspaceFixture(t)

	_, err := svc.InviteMember(context.Background(), "ws-1", "user-manager",
		&models.InviteMemberRequest{Email: "nueva@iris.edu", Role: "superuser"})
	if !errors.Is(err, pkg.ErrBadRequest) {
		t.Fatalf("invalid role: err = %v, want ErrBadRequest", err)
	}
}
