package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bigipmachine/backend/internal/models"
	"go.uber.org/zap"
)

type verificationsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVerificationsRepository creates a new instance of the VerificationRepository interface
func NewVerificationsRepository(db *sql.DB, logger *zap.Logger) *verificationsRepository {
	return &verificationsRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new verification token for a user. Any previous tokens for
// the user are invalidated so only the latest link works.
func (r *verificationsRepository) Create(ctx context.Context, userID int, token string, expiresAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	invalidate := `UPDATE email_verifications SET used = TRUE WHERE user_id = ? AND used = FALSE`
	if _, err := tx.ExecContext(ctx, invalidate, userID); err != nil {
		return fmt.Errorf("failed to invalidate old tokens: %w", err)
	}

	insert := `
		INSERT INTO email_verifications (user_id, token, expires_at)
		VALUES (?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, insert, userID, token, expiresAt); err != nil {
		return fmt.Errorf("failed to create verification token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetByToken retrieves an unused verification record by token value.
func (r *verificationsRepository) GetByToken(ctx context.Context, token string) (*models.EmailVerification, error) {
	query := `
		SELECT id, user_id, token, created_at, expires_at, used
		FROM email_verifications
		WHERE token = ?
		LIMIT 1
	`

	v := &models.EmailVerification{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&v.ID,
		&v.UserID,
		&v.Token,
		&v.CreatedAt,
		&v.ExpiresAt,
		&v.Used,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verification token: %w", err)
	}

	return v, nil
}

// MarkUsed consumes a verification token.
func (r *verificationsRepository) MarkUsed(ctx context.Context, id int) error {
	query := `UPDATE email_verifications SET used = TRUE WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to mark token used: %w", err)
	}
	return nil
}

// DeleteExpired removes verification rows past their expiry. Returns the
// number of rows removed.
func (r *verificationsRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM email_verifications WHERE expires_at < NOW()`

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
