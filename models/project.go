package models

import (
	"fmt"
	"time"
)

// Project is a team-scoped container of issues.
type Project struct {
	ID          string    `json:"id"`
	TeamID      string    `json:"teamId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IssueStatus is the workflow state of an issue.
type IssueStatus string

const (
	IssueBacklog    IssueStatus = "backlog"
	IssueTodo       IssueStatus = "todo"
	IssueInProgress IssueStatus = "in_progress"
	IssueDone       IssueStatus = "done"
	IssueCancelled  IssueStatus = "cancelled"
)

// ValidIssueStatus reports whether s is a known workflow state.
func ValidIssueStatus(s IssueStatus) bool {
	switch s {
	case IssueBacklog, IssueTodo, IssueInProgress, IssueDone, IssueCancelled:
		return true
	}
	return false
}

// Issue is a unit of work inside a project.
// PriorityID references the seeded priorities table; AssigneeID the users
// table. Both nullable.
type Issue struct {
	ID          string      `json:"id"`
	ProjectID   string      `json:"projectId"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      IssueStatus `json:"status"`
	PriorityID  *string     `json:"priorityId"`
	AssigneeID  *string     `json:"assigneeId"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// UpdateIssueRequest is the PATCH /api/issues/{id} payload.
// Pointer fields: nil means "leave unchanged".
type UpdateIssueRequest struct {
	Status     *IssueStatus `json:"status"`
	PriorityID *string      `json:"priorityId"`
	AssigneeID *string      `json:"assigneeId"`
}

// Validate checks the update payload. An update with no fields is an error,
// not a silent no-op.
func (r *UpdateIssueRequest) Validate() error {
	if r.Status == nil && r.PriorityID == nil && r.AssigneeID == nil {
		return fmt.Errorf("at least one field must be provided")
	}
	if r.Status != nil && !ValidIssueStatus(*r.Status) {
		return fmt.Errorf("invalid status: %s", *r.Status)
	}
	return nil
}
