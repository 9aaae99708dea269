package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bigipmachine/backend/internal/models"
	"go.uber.org/zap"
)

type emailTasksRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEmailTasksRepository creates a new instance of the EmailTaskRepository interface
func NewEmailTasksRepository(db *sql.DB, logger *zap.Logger) *emailTasksRepository {
	return &emailTasksRepository{
		db:     db,
		logger: logger,
	}
}

// Create records a queued email and returns the generated ID.
func (r *emailTasksRepository) Create(ctx context.Context, task *models.EmailTask) (int, error) {
	query := `
		INSERT INTO email_tasks (user_id, kind, recipient, subject, body, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		task.UserID,
		task.Kind,
		task.Recipient,
		task.Subject,
		task.Body,
		task.Status,
	)
	if err != nil {
		r.logger.Error("failed to create email task", zap.Error(err))
		return 0, fmt.Errorf("failed to create email task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get email task id: %w", err)
	}

	return int(id), nil
}

// GetByID retrieves one queued email with its rendered body.
func (r *emailTasksRepository) GetByID(ctx context.Context, id int) (*models.EmailTask, error) {
	query := `
		SELECT id, user_id, kind, recipient, subject, body, created_at, status, COALESCE(error, '')
		FROM email_tasks
		WHERE id = ?
		LIMIT 1
	`

	task := &models.EmailTask{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.UserID,
		&task.Kind,
		&task.Recipient,
		&task.Subject,
		&task.Body,
		&task.CreatedAt,
		&task.Status,
		&task.Error,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get email task: %w", err)
	}

	return task, nil
}

// UpdateStatus records the delivery outcome for a queued email.
func (r *emailTasksRepository) UpdateStatus(ctx context.Context, id int, status models.EmailTaskStatus, taskErr string) error {
	query := `UPDATE email_tasks SET status = ?, error = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, status, taskErr, id); err != nil {
		return fmt.Errorf("failed to update email task status: %w", err)
	}
	return nil
}

// ListByUser returns a user's email history, newest first.
func (r *emailTasksRepository) ListByUser(ctx context.Context, userID int, limit int) ([]models.EmailTask, error) {
	query := `
		SELECT id, user_id, kind, recipient, subject, created_at, status, COALESCE(error, '')
		FROM email_tasks
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query email tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.EmailTask
	for rows.Next() {
		var task models.EmailTask
		if err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Kind,
			&task.Recipient,
			&task.Subject,
			&task.CreatedAt,
			&task.Status,
			&task.Error,
		); err != nil {
			return nil, fmt.Errorf("failed to scan email task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tasks, nil
}
