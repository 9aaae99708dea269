package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bigipmachine/backend/internal/models"
	"go.uber.org/zap"
)

type contentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewContentRepository creates a new instance of the ContentRepository interface
func NewContentRepository(db *sql.DB, logger *zap.Logger) *contentRepository {
	return &contentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new content record.
func (r *contentRepository) Create(ctx context.Context, content *models.Content) error {
	query := `
		INSERT INTO contents (id, user_id, title, description, creator, filename,
			stored_name, extension, category, file_size, file_hash, sample_hash, metadata_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		content.ID,
		content.UserID,
		content.Title,
		content.Description,
		content.Creator,
		content.Filename,
		content.StoredName,
		content.Extension,
		content.Category,
		content.FileSize,
		content.FileHash,
		content.SampleHash,
		content.MetadataHash,
	)
	if err != nil {
		r.logger.Error("failed to create content", zap.String("content_id", content.ID), zap.Error(err))
		return fmt.Errorf("failed to create content: %w", err)
	}

	return nil
}

// GetByID retrieves one content record.
func (r *contentRepository) GetByID(ctx context.Context, id string) (*models.Content, error) {
	query := `
		SELECT id, user_id, title, description, creator, filename, stored_name,
			extension, category, file_size, file_hash, sample_hash, metadata_hash, uploaded_at
		FROM contents
		WHERE id = ?
		LIMIT 1
	`

	content := &models.Content{}
	var userID sql.NullInt64
	var description, sampleHash, metadataHash sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&content.ID,
		&userID,
		&content.Title,
		&description,
		&content.Creator,
		&content.Filename,
		&content.StoredName,
		&content.Extension,
		&content.Category,
		&content.FileSize,
		&content.FileHash,
		&sampleHash,
		&metadataHash,
		&content.UploadedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}

	if userID.Valid {
		uid := int(userID.Int64)
		content.UserID = &uid
	}
	content.Description = description.String
	content.SampleHash = sampleHash.String
	content.MetadataHash = metadataHash.String

	return content, nil
}

// FindByFileHash looks for an existing upload with the same full-file hash,
// which flags duplicate submissions.
func (r *contentRepository) FindByFileHash(ctx context.Context, fileHash string) (*models.Content, error) {
	query := `SELECT id FROM contents WHERE file_hash = ? LIMIT 1`

	var id string
	err := r.db.QueryRowContext(ctx, query, fileHash).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find content by hash: %w", err)
	}

	return r.GetByID(ctx, id)
}

// ListByUser returns a user's uploads, newest first.
func (r *contentRepository) ListByUser(ctx context.Context, userID int, limit int) ([]models.ContentListItem, error) {
	query := `
		SELECT id, title, filename, category, file_size, uploaded_at
		FROM contents
		WHERE user_id = ?
		ORDER BY uploaded_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error("failed to query contents", zap.Int("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to query contents: %w", err)
	}
	defer rows.Close()

	var items []models.ContentListItem
	for rows.Next() {
		var item models.ContentListItem
		if err := rows.Scan(&item.ContentID, &item.Title, &item.Filename, &item.Category, &item.FileSize, &item.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		item.FileSizeMB = float64(item.FileSize) / 1024 / 1024
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

// Delete removes a content record.
func (r *contentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM contents WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
