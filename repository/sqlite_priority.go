package repository

import (
	"context"
	"fmt"

	"github.com/irisedu/iris/database"
	"github.com/irisedu/iris/models"
)

// sqlitePriorityRepo is the SQLite implementation of PriorityRepository.
type sqlitePriorityRepo struct {
	db database.TxQuerier
}

// NewSQLitePriorityRepo, constructor.
func NewSQLitePriorityRepo(db database.TxQuerier) PriorityRepository {
	return &sqlitePriorityRepo{db: db}
}

func (r *sqlitePriorityRepo) List(ctx context.Context) ([]models.Priority, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, rank, color
		FROM priorities
		ORDER BY rank ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list priorities: %w", err)
	}
	defer rows.Close()

	priorities := []models.Priority{}
	for rows.Next() {
		var p models.Priority
		if err := rows.Scan(&p.ID, &p.Name, &p.Rank, &p.Color); err != nil {
			return nil, fmt.Errorf("failed to scan priority row: %w", err)
		}
		priorities = append(priorities, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate priority rows: %w", err)
	}

	return priorities, nil
}
