package repository

import (
	"context"

	"github.com/irisedu/iris/models"
)

// WorkspaceRepository, workspaces and their memberships.
type WorkspaceRepository interface {
	// Create inserts the workspace AND the owner's admin membership
	// atomically — a workspace without an admin would be unmanageable.
	Create(ctx context.Context, workspace *models.Workspace, ownerID string) error

	// ListByUserID returns the workspaces the user belongs to, each with
	// the user's own role.
	ListByUserID(ctx context.Context, userID string) ([]models.WorkspaceWithRole, error)

	// GetMemberRole returns the user's role in a workspace, or ErrNotFound
	// when the user is not a member.
	GetMemberRole(ctx context.Context, workspaceID, userID string) (models.WorkspaceRole, error)

	AddMember(ctx context.Context, member *models.WorkspaceMember) error
}
