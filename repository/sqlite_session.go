package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/irisedu/iris/database"
	"github.com/irisedu/iris/models"
	"github.com/irisedu/iris/pkg"
)

// sqliteSessionRepo is the SQLite implementation of SessionRepository.
type sqliteSessionRepo struct {
	db database.TxQuerier
}

// NewSQLiteSessionRepo, constructor.
func NewSQLiteSessionRepo(db database.TxQuerier) SessionRepository {
	return &sqliteSessionRepo{db: db}
}

func (r *sqliteSessionRepo) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (token_hash, user_id, is_active, is_revoked)
		VALUES (?, ?, 1, 0)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		session.TokenHash, session.UserID,
	).Scan(&session.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	session.IsActive = true
	session.IsRevoked = false
	return nil
}

func (r *sqliteSessionRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	query := `
		SELECT token_hash, user_id, is_active, is_revoked, revoked_at, revoked_reason, created_at
		FROM sessions WHERE token_hash = ?`

	session := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&session.TokenHash, &session.UserID, &session.IsActive, &session.IsRevoked,
		&session.RevokedAt, &session.RevokedReason, &session.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session by token hash: %w", err)
	}

	return session, nil
}

func (r *sqliteSessionRepo) Revoke(ctx context.Context, tokenHash, reason string) (int64, error) {
	// The is_revoked = 0 guard makes the revocation one-way: rerunning
	// logout on the same token matches zero rows and changes nothing,
	// so revoked_at keeps its original timestamp.
	query := `
		UPDATE sessions
		SET is_active = 0, is_revoked = 1, revoked_at = CURRENT_TIMESTAMP, revoked_reason = ?
		WHERE token_hash = ? AND is_revoked = 0`

	res, err := r.db.ExecContext(ctx, query, reason, tokenHash)
	if err != nil {
		return 0, fmt.Errorf("failed to revoke session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}

func (r *sqliteSessionRepo) RevokeAllForUser(ctx context.Context, userID, reason string) error {
	query := `
		UPDATE sessions
		SET is_active = 0, is_revoked = 1, revoked_at = CURRENT_TIMESTAMP, revoked_reason = ?
		WHERE user_id = ? AND is_revoked = 0`

	if _, err := r.db.ExecContext(ctx, query, reason, userID); err != nil {
		return fmt.Errorf("failed to revoke user sessions: %w", err)
	}
	return nil
}

func (r *sqliteSessionRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return fmt.Errorf("failed to delete old sessions: %w", err)
	}
	return nil
}
