package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/irisedu/iris/database"
	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
)

// sqliteProjectRepo is the SQLite implementation of ProjectRepository.
type sqliteProjectRepo struct {
	db database.TxQuerier
}

// NewSQLiteProjectRepo, constructor.
func NewSQLiteProjectRepo(db database.TxQuerier) ProjectRepository {
	return &sqliteProjectRepo{db: db}
}

func (r *sqliteProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	project := &models.Project{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, team_id, name, description, created_at
		FROM projects WHERE id = ?`, id,
	).Scan(&project.ID, &project.TeamID, &project.Name, &project.Description, &project.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

func (r *sqliteProjectRepo) ListIssues(ctx context.Context, projectID string) ([]models.Issue, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, title, description, status, priority_id, assignee_id, created_at, updated_at
		FROM issues WHERE project_id = ?
		ORDER BY created_at DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	defer rows.Close()

	issues := []models.Issue{}
	for rows.Next() {
		var i models.Issue
		if err := rows.Scan(&i.ID, &i.ProjectID, &i.Title, &i.Description, &i.Status,
			&i.PriorityID, &i.AssigneeID, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan issue row: %w", err)
		}
		issues = append(issues, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate issue rows: %w", err)
	}

	return issues, nil
}

func (r *sqliteProjectRepo) GetIssue(ctx context.Context, id string) (*models.Issue, error) {
	issue := &models.Issue{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, project_id, title, description, status, priority_id, assignee_id, created_at, updated_at
		FROM issues WHERE id = ?`, id,
	).Scan(&issue.ID, &issue.ProjectID, &issue.Title, &issue.Description, &issue.Status,
		&issue.PriorityID, &issue.AssigneeID, &issue.CreatedAt, &issue.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	return issue, nil
}

func (r *sqliteProjectRepo) UpdateIssue(ctx context.Context, id string, req *models.UpdateIssueRequest) (*models.Issue, error) {
	// COALESCE keeps the stored value wherever the request field is nil.
	query := `
		UPDATE issues
		SET status      = COALESCE(?, status),
		    priority_id = COALESCE(?, priority_id),
		    assignee_id = COALESCE(?, assignee_id),
		    updated_at  = CURRENT_TIMESTAMP
		WHERE id = ?`

	var status *string
	if req.Status != nil {
		s := string(*req.Status)
		status = &s
	}

	res, err := r.db.ExecContext(ctx, query, status, req.PriorityID, req.AssigneeID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update issue: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, pkg.ErrNotFound
	}

	return r.GetIssue(ctx, id)
}
