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

// sqliteTeamRepo is the SQLite implementation of TeamRepository.
type sqliteTeamRepo struct {
	db database.TxQuerier
}

// NewSQLiteTeamRepo, constructor.
func NewSQLiteTeamRepo(db database.TxQuerier) TeamRepository {
	return &sqliteTeamRepo{db: db}
}

func (r *sqliteTeamRepo) Create(ctx context.Context, team *models.Team) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO teams (id, workspace_id, name, team_key)
		VALUES (?, ?, ?, ?)
		RETURNING created_at`,
		team.ID, team.WorkspaceID, team.Name, team.Key,
	).Scan(&team.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *sqliteTeamRepo) GetByID(ctx context.Context, id string) (*models.Team, error) {
	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, workspace_id, name, team_key, created_at
		FROM teams WHERE id = ?`, id,
	).Scan(&team.ID, &team.WorkspaceID, &team.Name, &team.Key, &team.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return team, nil
}

func (r *sqliteTeamRepo) ListByWorkspace(ctx context.Context, workspaceID string) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, workspace_id, name, team_key, created_at
		FROM teams WHERE workspace_id = ?
		ORDER BY name`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.WorkspaceID, &t.Name, &t.Key, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team rows: %w", err)
	}

	return teams, nil
}

func (r *sqliteTeamRepo) ListCycles(ctx context.Context, teamID string) ([]models.Cycle, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, team_id, number, name, starts_at, ends_at, created_at
		FROM cycles WHERE team_id = ?
		ORDER BY number DESC`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cycles: %w", err)
	}
	defer rows.Close()

	cycles := []models.Cycle{}
	for rows.Next() {
		var c models.Cycle
		if err := rows.Scan(&c.ID, &c.TeamID, &c.Number, &c.Name, &c.StartsAt, &c.EndsAt, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cycle row: %w", err)
		}
		cycles = append(cycles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cycle rows: %w", err)
	}

	return cycles, nil
}

func (r *sqliteTeamRepo) CreateCycle(ctx context.Context, cycle *models.Cycle) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cycles (id, team_id, number, name, starts_at, ends_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING created_at`,
		cycle.ID, cycle.TeamID, cycle.Number, cycle.Name,
		cycle.StartsAt.UTC(), cycle.EndsAt.UTC(),
	).Scan(&cycle.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create cycle: %w", err)
	}
	return nil
}
