package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/irisedu/iris/handlers"
	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
	"github.com/irisedu/iris/pkg/cache"
	"github.com/irisedu/iris/services"
)

// workspaceHeader names the header carrying the workspace scope of a
// role-gated request. The query parameter workspaceId works too.
const workspaceHeader = "X-Workspace-ID"

// roleCacheTTL bounds how stale a cached membership role may be. A
// demoted manager keeps manager powers for at most this long.
const roleCacheTTL = 30 * time.Second

// RoleMiddleware gates routes on workspace membership roles.
//
// Runs AFTER AuthMiddleware — the user ID is already in the context.
// Membership lookups hit the database, so results are held briefly in a
// TTL cache; role changes are rare and a short window of staleness is
// an acceptable trade for dropping a query from every gated request.
type RoleMiddleware struct {
	workspaces services.WorkspaceService
	roleCache  *cache.TTLCache[string, models.WorkspaceRole]
}

// NewRoleMiddleware, constructor.
func NewRoleMiddleware(workspaces services.WorkspaceService) *RoleMiddleware {
	return &RoleMiddleware{
		workspaces: workspaces,
		roleCache:  cache.New[string, models.WorkspaceRole](roleCacheTTL, time.Minute),
	}
}

// Require returns a middleware enforcing a minimum workspace role.
//
// Usage (middleware factory pattern):
//
//	roleMW.Require(models.RoleManager, http.HandlerFunc(teamHandler.Create))
//
// The admin role passes every minimum. Non-members are rejected with
// the same error as members of too-low rank.
func (m *RoleMiddleware) Require(minimum models.WorkspaceRole, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(handlers.UserIDContextKey).(string)
		if !ok || userID == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		workspaceID := workspaceFromRequest(r)
		if workspaceID == "" {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "workspace is required")
			return
		}

		role, err := m.memberRole(r.Context(), workspaceID, userID)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		if !models.RoleAtLeast(role, minimum) {
			pkg.ErrorWithMessage(w, http.StatusForbidden, "permisos insuficientes")
			return
		}

		ctx := context.WithValue(r.Context(), handlers.RoleContextKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// memberRole resolves the role through the cache.
func (m *RoleMiddleware) memberRole(ctx context.Context, workspaceID, userID string) (models.WorkspaceRole, error) {
	key := workspaceID + ":" + userID
	if role, ok := m.roleCache.Get(key); ok {
		return role, nil
	}

	role, err := m.workspaces.MemberRole(ctx, workspaceID, userID)
	if err != nil {
		// Negative results are NOT cached: a user added to a workspace
		// should not wait out a TTL before their access works.
		return "", err
	}

	m.roleCache.Set(key, role)
	return role, nil
}

// workspaceFromRequest reads the workspace scope from the header or the
// query string.
func workspaceFromRequest(r *http.Request) string {
	if id := r.Header.Get(workspaceHeader); id != "" {
		return id
	}
	return r.URL.Query().Get("workspaceId")
}
