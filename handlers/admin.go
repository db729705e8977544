package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
	"github.com/irisedu/iris/services"
)

// AdminHandler serves the /api/admin/* surface.
type AdminHandler struct {
	adminService services.AdminService
}

// NewAdminHandler, constructor.
func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListPriorities godoc
// GET /api/admin/priorities
// Returns { "priorities": [...] } ordered by rank, most urgent first.
func (h *AdminHandler) ListPriorities(w http.ResponseWriter, r *http.Request) {
	priorities, err := h.adminService.ListPriorities(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"priorities": priorities})
}

// ListTeams godoc
// GET /api/admin/teams?workspaceId=...
// Returns { "teams": [...] }.
func (h *AdminHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.URL.Query().Get("workspaceId")
	if workspaceID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "workspaceId is required")
		return
	}

	teams, err := h.adminService.ListTeams(r.Context(), workspaceID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"teams": teams})
}

// CreateTeam godoc
// POST /api/admin/teams  (manager or above)
func (h *AdminHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	team, err := h.adminService.CreateTeam(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, team)
}

// ListCycles godoc
// GET /api/admin/teams/{teamId}/cycles
// Returns { "cycles": [...] } newest first.
func (h *AdminHandler) ListCycles(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("teamId")
	if teamID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "teamId is required")
		return
	}

	cycles, err := h.adminService.ListCycles(r.Context(), teamID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"cycles": cycles})
}

// CreateCycle godoc
// POST /api/admin/teams/{teamId}/cycles  (manager or above)
// Body: { "name": "...", "startsAt": "...", "endsAt": "..." }
// The cycle number is assigned server-side, sequential per team.
func (h *AdminHandler) CreateCycle(w http.ResponseWriter, r *http.Request) {
	teamID := r.PathValue("teamId")
	if teamID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "teamId is required")
		return
	}

	var req struct {
		Name     string    `json:"name"`
		StartsAt time.Time `json:"startsAt"`
		EndsAt   time.Time `json:"endsAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cycle, err := h.adminService.CreateCycle(r.Context(), teamID, req.Name, req.StartsAt, req.EndsAt)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, cycle)
}
