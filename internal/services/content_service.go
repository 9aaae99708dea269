package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bigipmachine/backend/internal/models"
	"github.com/bigipmachine/backend/internal/repositories"
	"github.com/bigipmachine/backend/internal/storage"
	"github.com/bigipmachine/backend/internal/tokenize"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// ContentRepository is the interface that wraps methods for Content table data access
type ContentRepository interface {
	Create(ctx context.Context, content *models.Content) error
	GetByID(ctx context.Context, id string) (*models.Content, error)
	FindByFileHash(ctx context.Context, fileHash string) (*models.Content, error)
	ListByUser(ctx context.Context, userID int, limit int) ([]models.ContentListItem, error)
	Delete(ctx context.Context, id string) error
}

// Storage abstracts where uploaded files live.
type Storage interface {
	Create(name, category string) (io.WriteCloser, error)
	Open(name, category string) (io.ReadCloser, error)
	Stat(name, category string) (os.FileInfo, error)
	Delete(name, category string) error
	Path(name, category string) string
}

// mediaClass groups the accepted upload extensions; anything outside these
// classes is rejected before a byte is written to disk.
type mediaClass struct {
	name       string
	extensions []string
}

var mediaClasses = []mediaClass{
	{"video", []string{"mp4", "mov", "avi", "mkv", "wmv", "flv", "webm", "m4v"}},
	{"image", []string{"jpg", "jpeg", "png", "gif", "bmp", "tiff", "webp"}},
	{"audio", []string{"mp3", "wav", "aac", "flac", "ogg", "m4a", "wma"}},
	{"document", []string{"pdf", "txt", "doc", "docx", "rtf", "odt"}},
}

func extensionAllowed(extension string) bool {
	return lo.SomeBy(mediaClasses, func(c mediaClass) bool {
		return lo.Contains(c.extensions, extension)
	})
}

func allowedExtensionList() []string {
	return lo.Flatten(lo.Map(mediaClasses, func(c mediaClass, _ int) []string {
		return c.extensions
	}))
}

// UploadRequest carries the metadata accompanying an upload stream.
type UploadRequest struct {
	Filename    string
	Title       string
	Description string
	Creator     string
	Category    string
	UserID      *int
}

// contentService implements ContentService
type contentService struct {
	contentRepo ContentRepository
	store       Storage
	logger      *zap.Logger
}

// NewContentService creates a new content service
func NewContentService(contentRepo ContentRepository, store Storage, logger *zap.Logger) *contentService {
	return &contentService{
		contentRepo: contentRepo,
		store:       store,
		logger:      logger,
	}
}

// Upload streams a file to storage, fingerprints it and records the content.
// The file is never buffered in memory: it is copied straight from the
// request body to disk and hashed from disk afterwards.
func (s *contentService) Upload(ctx context.Context, file io.Reader, req *UploadRequest) (*models.UploadResponse, error) {
	started := time.Now()

	filename := filepath.Base(strings.TrimSpace(req.Filename))
	if filename == "" || filename == "." {
		return nil, fmt.Errorf("filename is required")
	}

	extension := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if !extensionAllowed(extension) {
		return nil, fmt.Errorf("file type not supported. Allowed types: %s", strings.Join(allowedExtensionList(), ", "))
	}

	// Resolve the category up front so the file lands in the right
	// directory. An explicit category that cannot accept the extension is
	// rejected rather than silently reassigned.
	category := strings.TrimSpace(req.Category)
	if category == "" {
		result := tokenize.Classify(filename, extension, req.Title)
		category = result.Category
	} else if !tokenize.ValidateCategorySelection(category, extension) {
		return nil, fmt.Errorf("category %q does not accept .%s files", category, extension)
	}

	storedName := storage.GenerateFileName(extension)
	dst, err := s.store.Create(storedName, category)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		s.store.Delete(storedName, category)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		s.store.Delete(storedName, category)
		return nil, fmt.Errorf("failed to close file: %w", err)
	}

	fingerprint, err := storage.GenerateFingerprint(s.store.Path(storedName, category))
	if err != nil {
		s.store.Delete(storedName, category)
		return nil, fmt.Errorf("failed to fingerprint file: %w", err)
	}

	existing, err := s.contentRepo.FindByFileHash(ctx, fingerprint.FileHash)
	if err != nil && err != repositories.ErrNotFound {
		s.store.Delete(storedName, category)
		return nil, err
	}
	if existing != nil {
		s.store.Delete(storedName, category)
		return nil, fmt.Errorf("duplicate upload: content %s has the same file hash", existing.ID)
	}

	creator := strings.TrimSpace(req.Creator)
	if creator == "" {
		creator = "anonymous"
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = filename
	}

	content := &models.Content{
		ID:           uuid.New().String(),
		UserID:       req.UserID,
		Title:        title,
		Description:  strings.TrimSpace(req.Description),
		Creator:      creator,
		Filename:     filename,
		StoredName:   storedName,
		Extension:    extension,
		Category:     category,
		FileSize:     fingerprint.FileSize,
		FileHash:     fingerprint.FileHash,
		SampleHash:   fingerprint.SampleHash,
		MetadataHash: fingerprint.MetadataHash,
		UploadedAt:   time.Now(),
	}

	if err := s.contentRepo.Create(ctx, content); err != nil {
		s.store.Delete(storedName, category)
		return nil, err
	}

	s.logger.Info("content uploaded",
		zap.String("content_id", content.ID),
		zap.String("category", category),
		zap.Int64("file_size", content.FileSize),
		zap.String("processing_method", fingerprint.ProcessingMethod),
	)

	return &models.UploadResponse{
		Message:    "File uploaded successfully",
		ContentID:  content.ID,
		FileSize:   content.FileSize,
		FileSizeMB: round2mb(content.FileSizeMB()),
		UploadTime: time.Since(started).Seconds(),
		Metadata:   content,
	}, nil
}

// Status reports the stored state of one upload.
func (s *contentService) Status(ctx context.Context, contentID string) (*models.ContentStatus, error) {
	content, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}

	status := "completed"
	if _, err := s.store.Stat(content.StoredName, content.Category); err != nil {
		status = "missing"
	}

	return &models.ContentStatus{
		ContentID:  content.ID,
		Status:     status,
		FileSize:   content.FileSize,
		FileSizeMB: round2mb(content.FileSizeMB()),
		Filename:   content.Filename,
	}, nil
}

// Get returns the full content record.
func (s *contentService) Get(ctx context.Context, contentID string) (*models.Content, error) {
	return s.contentRepo.GetByID(ctx, contentID)
}

// List returns a user's uploads, newest first.
func (s *contentService) List(ctx context.Context, userID int, limit int) ([]models.ContentListItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.contentRepo.ListByUser(ctx, userID, limit)
}

// Delete removes the stored file and the content record.
func (s *contentService) Delete(ctx context.Context, contentID string) error {
	content, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(content.StoredName, content.Category); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to delete stored file",
			zap.String("content_id", contentID), zap.Error(err))
	}

	return s.contentRepo.Delete(ctx, contentID)
}

func round2mb(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
