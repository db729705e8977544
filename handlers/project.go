package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
	"github.com/irisedu/iris/services"
)

// ProjectHandler serves project and issue endpoints.
type ProjectHandler struct {
	projectService services.ProjectService
}

// NewProjectHandler, constructor.
func NewProjectHandler(projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ListIssues godoc
// GET /api/admin/projects/{id}/issues
// Returns { "issues": [...] }. An empty project id is a 400 with the
// exact message the frontend matches on.
func (h *ProjectHandler) ListIssues(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	issues, err := h.projectService.ListIssues(r.Context(), projectID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"issues": issues})
}

// UpdateIssue godoc
// PATCH /api/issues/{id}  (manager or above)
// Partial update: absent fields stay untouched. The assignee gets a
// notification, persisted and pushed over the websocket.
func (h *ProjectHandler) UpdateIssue(w http.ResponseWriter, r *http.Request) {
	issueID := r.PathValue("id")
	if issueID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Issue ID is required")
		return
	}

	var req models.UpdateIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	issue, err := h.projectService.UpdateIssue(r.Context(), issueID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, issue)
}
