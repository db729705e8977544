package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/irisedu/iris/database"
	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
)

// sqliteWorkspaceRepo is the SQLite implementation of WorkspaceRepository.
// It holds the concrete *sql.DB (not just TxQuerier) because Create runs
// a transaction.
type sqliteWorkspaceRepo struct {
	conn *sql.DB
}

// NewSQLiteWorkspaceRepo, constructor.
func NewSQLiteWorkspaceRepo(conn *sql.DB) WorkspaceRepository {
	return &sqliteWorkspaceRepo{conn: conn}
}

func (r *sqliteWorkspaceRepo) Create(ctx context.Context, workspace *models.Workspace, ownerID string) error {
	// Workspace row + owner admin membership, all-or-nothing.
	err := database.WithTx(ctx, r.conn, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO workspaces (id, name, slug)
			VALUES (?, ?, ?)
			RETURNING created_at`,
			workspace.ID, workspace.Name, workspace.Slug,
		).Scan(&workspace.CreatedAt)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO workspace_members (workspace_id, user_id, role)
			VALUES (?, ?, ?)`,
			workspace.ID, ownerID, models.RoleAdmin,
		)
		return err
	})

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: workspace slug already taken", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	return nil
}

func (r *sqliteWorkspaceRepo) ListByUserID(ctx context.Context, userID string) ([]models.WorkspaceWithRole, error) {
	query := `
		SELECT w.id, w.name, w.slug, w.created_at, m.role
		FROM workspaces w
		JOIN workspace_members m ON m.workspace_id = w.id
		WHERE m.user_id = ?
		ORDER BY w.name`

	rows, err := r.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	// Initialized non-nil so an empty result serializes as [] rather than null.
	workspaces := []models.WorkspaceWithRole{}
	for rows.Next() {
		var w models.WorkspaceWithRole
		if err := rows.Scan(&w.ID, &w.Name, &w.Slug, &w.CreatedAt, &w.Role); err != nil {
			return nil, fmt.Errorf("failed to scan workspace row: %w", err)
		}
		workspaces = append(workspaces, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workspace rows: %w", err)
	}

	return workspaces, nil
}

func (r *sqliteWorkspaceRepo) GetMemberRole(ctx context.Context, workspaceID, userID string) (models.WorkspaceRole, error) {
	var role models.WorkspaceRole
	err := r.conn.QueryRowContext(ctx, `
		SELECT role FROM workspace_members
		WHERE workspace_id = ? AND user_id = ?`,
		workspaceID, userID,
	).Scan(&role)

	if errors.Is(err, sql.ErrNoRows) {
		return "", pkg.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get member role: %w", err)
	}

	return role, nil
}

func (r *sqliteWorkspaceRepo) AddMember(ctx context.Context, member *models.WorkspaceMember) error {
	err := r.conn.QueryRowContext(ctx, `
		INSERT INTO workspace_members (workspace_id, user_id, role)
		VALUES (?, ?, ?)
		RETURNING created_at`,
		member.WorkspaceID, member.UserID, member.Role,
	).Scan(&member.CreatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: user is already a member", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to add workspace member: %w", err)
	}

	return nil
}
