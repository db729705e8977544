package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/irisedu/iris/handlers"
	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
)

type fakeWorkspaceService struct {
	roleCalls atomic.Int64
	roles     map[string]models.WorkspaceRole // "workspaceID:userID" → role
}

func (f *fakeWorkspaceService) MemberRole(ctx context.Context, workspaceID, userID string) (models.WorkspaceRole, error) {
	f.roleCalls.Add(1)
	if role, ok := f.roles[workspaceID+":"+userID]; ok {
		return role, nil
	}
	return "", fmt.Errorf("%w: not a workspace member", pkg.ErrForbidden)
}

func (f *fakeWorkspaceService) List(ctx context.Context, userID string) ([]models.WorkspaceWithRole, error) {
	return nil, nil
}

func (f *fakeWorkspaceService) Create(ctx context.Context, ownerID, name string) (*models.Workspace, error) {
	return nil, nil
}

func (f *fakeWorkspaceService) InviteMember(ctx context.Context, workspaceID, inviterID string, req *models.InviteMemberRequest) (*models.WorkspaceMember, error) {
	return nil, nil
}

func roleRequest(userID, workspaceID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/teams", nil)
	if workspaceID != "" {
		req.Header.Set("X-Workspace-ID", workspaceID)
	}
	if userID != "" {
		ctx := context.WithValue(req.Context(), handlers.UserIDContextKey, userID)
		req = req.WithContext(ctx)
	}
	return req
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		minimum    models.WorkspaceRole
		wantStatus int
	}{
		{"member blocked from manager route", "member-user", models.RoleManager, http.StatusForbidden},
		{"manager passes manager route", "manager-user", models.RoleManager, http.StatusOK},
		{"admin passes manager route", "admin-user", models.RoleManager, http.StatusOK},
		{"admin passes admin route", "admin-user", models.RoleAdmin, http.StatusOK},
		{"manager blocked from admin route", "manager-user", models.RoleAdmin, http.StatusForbidden},
		{"non-member blocked", "outsider", models.RoleMember, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeWorkspaceService{roles: map[string]models.WorkspaceRole{
				"ws-1:member-user":  models.RoleMember,
				"ws-1:manager-user": models.RoleManager,
				"ws-1:admin-user":   models.RoleAdmin,
			}}
			mw := NewRoleMiddleware(fake)

			handler := mw.Require(tt.minimum, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, roleRequest(tt.userID, "ws-1"))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireRoleMissingWorkspace(t *testing.T) {
	fake := &fakeWorkspaceService{roles: map[string]models.WorkspaceRole{}}
	mw := NewRoleMiddleware(fake)

	handler := mw.Require(models.RoleManager, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler ran without a workspace scope")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, roleRequest("manager-user", ""))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRequireRoleCachesLookups(t *testing.T) {
	fake := &fakeWorkspaceService{roles: map[string]models.WorkspaceRole{
		"ws-1:manager-user": models.RoleManager,
	}}
	mw := NewRoleMiddleware(fake)

	handler := mw.Require(models.RoleManager, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, roleRequest("manager-user", "ws-1"))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}

	if n := fake.roleCalls.Load(); n != 1 {
		t.Errorf("MemberRole called %d times for 3 requests, want 1 (cached)", n)
	}
}
