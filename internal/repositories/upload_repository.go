package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bigipmachine/backend/internal/models"
	"go.uber.org/zap"
)

type uploadsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUploadsRepository creates a new instance of the UploadRepository interface
func NewUploadsRepository(db *sql.DB, logger *zap.Logger) *uploadsRepository {
	return &uploadsRepository{
		db:     db,
		logger: logger,
	}
}

// Create records one tokenized upload and returns the generated ID.
func (r *uploadsRepository) Create(ctx context.Context, record *models.UploadRecord) (int, error) {
	query := `
		INSERT INTO upload_records (user_id, filename, category, tokens_created,
			estimated_value, file_size_mb, blockchain_status, marketplace_listed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		record.UserID,
		record.Filename,
		record.Category,
		record.TokensCreated,
		record.EstimatedValue,
		record.FileSizeMB,
		record.BlockchainState,
		record.Listed,
	)
	if err != nil {
		r.logger.Error("failed to create upload record", zap.Error(err))
		return 0, fmt.Errorf("failed to create upload record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get upload record id: %w", err)
	}

	return int(id), nil
}

// ListByUser returns a user's upload history, newest first.
func (r *uploadsRepository) ListByUser(ctx context.Context, userID int) ([]models.UploadRecord, error) {
	query := `
		SELECT id, user_id, filename, category, tokens_created, estimated_value,
			file_size_mb, upload_timestamp, blockchain_status, marketplace_listed
		FROM upload_records
		WHERE user_id = ?
		ORDER BY upload_timestamp DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to query upload records", zap.Int("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to query upload records: %w", err)
	}
	defer rows.Close()

	var records []models.UploadRecord
	for rows.Next() {
		var rec models.UploadRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Filename,
			&rec.Category,
			&rec.TokensCreated,
			&rec.EstimatedValue,
			&rec.FileSizeMB,
			&rec.UploadTimestamp,
			&rec.BlockchainState,
			&rec.Listed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan upload record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

// Stats aggregates platform-wide upload numbers grouped by category.
func (r *uploadsRepository) Stats(ctx context.Context) (*models.UploadStats, error) {
	query := `
		SELECT category, COUNT(*), COALESCE(SUM(tokens_created), 0), COALESCE(SUM(estimated_value), 0)
		FROM upload_records
		GROUP BY category
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query upload stats: %w", err)
	}
	defer rows.Close()

	stats := &models.UploadStats{
		Categories: make(map[string]models.CategoryUploadAgg),
	}
	for rows.Next() {
		var category string
		var agg models.CategoryUploadAgg
		var value float64
		if err := rows.Scan(&category, &agg.Count, &agg.Tokens, &value); err != nil {
			return nil, fmt.Errorf("failed to scan upload stats: %w", err)
		}

		stats.Categories[category] = agg
		stats.TotalUploads += agg.Count
		stats.TotalTokens += agg.Tokens
		stats.TotalValue += value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return stats, nil
}
