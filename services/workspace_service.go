package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
	"github.com/irisedu/iris/repository"
)

// WorkspaceService covers workspace listing, creation and membership
// role lookups.
type WorkspaceService interface {
	// List returns the workspaces the user belongs to, each annotated
	// with the caller's own role. Never nil — an empty slice serializes
	// to [] instead of null.
	List(ctx context.Context, userID string) ([]models.WorkspaceWithRole, error)

	// Create makes a workspace with the caller as admin.
	Create(ctx context.Context, ownerID, name string) (*models.Workspace, error)

	// MemberRole returns the user's role in a workspace, ErrForbidden
	// when the user is not a member.
	MemberRole(ctx context.Context, workspaceID, userID string) (models.WorkspaceRole, error)

	// InviteMember adds the user with the given email to the workspace.
	// The inviter must hold the invite_members permission.
	InviteMember(ctx context.Context, workspaceID, inviterID string, req *models.InviteMemberRequest) (*models.WorkspaceMember, error)
}

type workspaceService struct {
	workspaceRepo repository.WorkspaceRepository
	userRepo      repository.UserRepository
}

// NewWorkspaceService, constructor.
func NewWorkspaceService(workspaceRepo repository.WorkspaceRepository, userRepo repository.UserRepository) WorkspaceService {
	return &workspaceService{workspaceRepo: workspaceRepo, userRepo: userRepo}
}

func (s *workspaceService) List(ctx context.Context, userID string) ([]models.WorkspaceWithRole, error) {
	return s.workspaceRepo.ListByUserID(ctx, userID)
}

func (s *workspaceService) Create(ctx context.Context, ownerID, name string) (*models.Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: workspace name is required", pkg.ErrBadRequest)
	}

	id := uuid.NewString()
	workspace := &models.Workspace{
		ID:   id,
		Name: name,
		// The id suffix keeps slugs unique without a retry loop when two
		// workspaces share a name.
		Slug: slugify(name) + "-" + id[:8],
	}
	// The repository inserts the workspace and the owner's admin
	// membership in one transaction.
	if err := s.workspaceRepo.Create(ctx, workspace, ownerID); err != nil {
		return nil, err
	}
	return workspace, nil
}

// slugify lowercases the name and collapses everything that is not a
// letter or digit into single hyphens.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func (s *workspaceService) MemberRole(ctx context.Context, workspaceID, userID string) (models.WorkspaceRole, error) {
	role, err := s.workspaceRepo.GetMemberRole(ctx, workspaceID, userID)
	if err != nil {
		// Non-membership looks the same as a missing workspace on
		// purpose: nothing about foreign workspaces is disclosed.
		// Infrastructure failures keep their identity so they surface
		// as 500, not as a bogus "forbidden".
		if errors.Is(err, pkg.ErrNotFound) {
			return "", fmt.Errorf("%w: not a workspace member", pkg.ErrForbidden)
		}
		return "", err
	}
	return role, nil
}

func (s *workspaceService) InviteMember(ctx context.Context, workspaceID, inviterID string, req *models.InviteMemberRequest) (*models.WorkspaceMember, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// The workspace id comes from the URL path, so the gate lives here
	// instead of in the role middleware.
	inviterRole, err := s.MemberRole(ctx, workspaceID, inviterID)
	if err != nil {
		return nil, err
	}
	if !models.RoleHasPermission(inviterRole, models.PermInviteMembers) {
		return nil, fmt.Errorf("%w: permisos insuficientes", pkg.ErrForbidden)
	}

	invitee, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: usuario no encontrado", pkg.ErrNotFound)
		}
		return nil, err
	}

	member := &models.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      invitee.ID,
		Role:        req.Role,
	}
	if err := s.workspaceRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}
