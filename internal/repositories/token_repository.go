package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bigipmachine/backend/internal/models"
	"go.uber.org/zap"
)

type tokensRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTokensRepository creates a new instance of the TokenRepository interface
func NewTokensRepository(db *sql.DB, logger *zap.Logger) *tokensRepository {
	return &tokensRepository{
		db:     db,
		logger: logger,
	}
}

// Save stores the current refresh token for a user, replacing any previous
// one. A user holds at most one active refresh token.
func (r *tokensRepository) Save(ctx context.Context, userID int, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO user_tokens (user_id, token, expires_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE token = VALUES(token), expires_at = VALUES(expires_at)
	`

	if _, err := r.db.ExecContext(ctx, query, userID, token, expiresAt); err != nil {
		r.logger.Error("failed to save refresh token", zap.Int("user_id", userID), zap.Error(err))
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// GetByUserID retrieves the stored refresh token for a user.
func (r *tokensRepository) GetByUserID(ctx context.Context, userID int) (*models.UserToken, error) {
	query := `
		SELECT id, user_id, token, expires_at
		FROM user_tokens
		WHERE user_id = ?
		LIMIT 1
	`

	t := &models.UserToken{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&t.ID,
		&t.UserID,
		&t.Token,
		&t.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return t, nil
}

// GetByToken retrieves a stored refresh token by its value.
func (r *tokensRepository) GetByToken(ctx context.Context, token string) (*models.UserToken, error) {
	query := `
		SELECT id, user_id, token, expires_at
		FROM user_tokens
		WHERE token = ?
		LIMIT 1
	`

	t := &models.UserToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&t.ID,
		&t.UserID,
		&t.Token,
		&t.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return t, nil
}

// DeleteByUserID revokes the stored refresh token for a user.
func (r *tokensRepository) DeleteByUserID(ctx context.Context, userID int) error {
	query := `DELETE FROM user_tokens WHERE user_id = ?`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

// DeleteExpired removes refresh tokens past their expiry. Returns the number
// of rows removed.
func (r *tokensRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM user_tokens WHERE expires_at < NOW()`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}
