package repository

import (
	"context"
	"fmt"

	"github.com/irisedu/iris/database"
	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
)

// sqliteFAQRepo is the SQLite implementation of FAQRepository.
type sqliteFAQRepo struct {
	db database.TxQuerier
}

// NewSQLiteFAQRepo, constructor.
func NewSQLiteFAQRepo(db database.TxQuerier) FAQRepository {
	return &sqliteFAQRepo{db: db}
}

func (r *sqliteFAQRepo) List(ctx context.Context) ([]models.FAQ, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, question, answer, display_order
		FROM faqs
		ORDER BY display_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}
	defer rows.Close()

	faqs := []models.FAQ{}
	for rows.Next() {
		var f models.FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.DisplayOrder); err != nil {
			return nil, fmt.Errorf("failed to scan faq row: %w", err)
		}
		faqs = append(faqs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate faq rows: %w", err)
	}

	return faqs, nil
}

func (r *sqliteFAQRepo) Create(ctx context.Context, faq *models.FAQ) error {
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO faqs (id, question, answer, display_order)
		VALUES (?, ?, ?, ?)`,
		faq.ID, faq.Question, faq.Answer, faq.DisplayOrder); err != nil {
		return fmt.Errorf("failed to create faq: %w", err)
	}
	return nil
}

func (r *sqliteFAQRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM faqs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete faq: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}
