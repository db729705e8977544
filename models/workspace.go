package models

import (
	"fmt"
	"strings"
	"time"
)

// Workspace groups the teams, cycles and projects of one institution
// or program.
type Workspace struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// WorkspaceMember links a user to a workspace with a role.
// The role drives every authorization decision inside the workspace.
type WorkspaceMember struct {
	WorkspaceID string        `json:"workspaceId"`
	UserID      string        `json:"userId"`
	Role        WorkspaceRole `json:"role"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// WorkspaceWithRole is a workspace joined with the caller's own role,
// the shape GET /api/workspaces returns.
type WorkspaceWithRole struct {
	Workspace
	Role WorkspaceRole `json:"role"`
}

// InviteMemberRequest adds an existing user to a workspace by email.
type InviteMemberRequest struct {
	Email string        `json:"email"`
	Role  WorkspaceRole `json:"role"`
}

// Validate normalizes the payload. An omitted role defaults to member.
func (r *InviteMemberRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	if r.Role == "" {
		r.Role = RoleMember
	}
	if _, ok := roleRank[r.Role]; !ok {
		return fmt.Errorf("invalid role %q", r.Role)
	}
	return nil
}
