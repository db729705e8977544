package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
	"github.com/irisedu/iris/services"
)

// WorkspaceHandler serves /api/workspaces.
type WorkspaceHandler struct {
	workspaceService services.WorkspaceService
}

// NewWorkspaceHandler, constructor.
func NewWorkspaceHandler(workspaceService services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// List godoc
// GET /api/workspaces
// Returns { "workspaces": [...] } with the caller's role on each entry.
func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDContextKey).(string)
	if !ok || userID == "" {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	workspaces, err := h.workspaceService.List(r.Context(), userID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"workspaces": workspaces})
}

// Create godoc
// POST /api/workspaces
// Body: { "name": "..." } — the caller becomes the workspace admin.
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDContextKey).(string)
	if !ok || userID == "" {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	workspace, err := h.workspaceService.Create(r.Context(), userID, req.Name)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, workspace)
}

// Invite godoc
// POST /api/workspaces/{id}/members
// Body: { "email": "...", "role": "member|manager|admin" }
// The caller needs the invite_members permission in the workspace; the
// service enforces it because the workspace id travels in the path.
func (h *WorkspaceHandler) Invite(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDContextKey).(string)
	if !ok || userID == "" {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	workspaceID := r.PathValue("id")
	if workspaceID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "workspace is required")
		return
	}

	var req models.InviteMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	member, err := h.workspaceService.InviteMember(r.Context(), workspaceID, userID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, member)
}
