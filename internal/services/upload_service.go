package services

import (
	"context"
	"strings"

	"github.com/bigipmachine/backend/internal/models"
	"github.com/bigipmachine/backend/internal/tokenize"
	"go.uber.org/zap"
)

// UploadRecordRepository is the interface that wraps methods for UploadRecord table data access
type UploadRecordRepository interface {
	Create(ctx context.Context, record *models.UploadRecord) (int, error)
	ListByUser(ctx context.Context, userID int) ([]models.UploadRecord, error)
	Stats(ctx context.Context) (*models.UploadStats, error)
}

// UploadNotifier queues the post-upload notification email.
type UploadNotifier interface {
	SendUploadSuccessEmail(ctx context.Context, req *models.UploadSuccessEmailRequest) error
}

// UploadSuccessResult is the splash-screen payload shown after tokenization.
type UploadSuccessResult struct {
	Breakdown tokenize.UploadBreakdown `json:"token_breakdown"`
	Message   map[string]any           `json:"success_message"`
	RecordID  int                      `json:"record_id,omitempty"`
	EmailSent bool                     `json:"email_sent"`
}

// uploadService implements UploadService
type uploadService struct {
	uploadRepo UploadRecordRepository
	userRepo   UserRepository
	notifier   UploadNotifier
	logger     *zap.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(
	uploadRepo UploadRecordRepository,
	userRepo UserRepository,
	notifier UploadNotifier,
	logger *zap.Logger,
) *uploadService {
	return &uploadService{
		uploadRepo: uploadRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// RecordSuccess computes the token breakdown for a finished upload, stores
// the history row and queues the confirmation email for registered users.
func (s *uploadService) RecordSuccess(ctx context.Context, req *models.UploadSuccessRequest) (*UploadSuccessResult, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = tokenize.DefaultCategory
	}

	breakdown := tokenize.CalculateUploadBreakdown(category, req.FileSizeMB)
	message := tokenize.SuccessMessage(req.Filename, category, breakdown)

	result := &UploadSuccessResult{
		Breakdown: breakdown,
		Message:   message,
	}

	if req.UserID == nil {
		return result, nil
	}

	record := &models.UploadRecord{
		UserID:          *req.UserID,
		Filename:        req.Filename,
		Category:        category,
		TokensCreated:   breakdown.TotalTokens,
		EstimatedValue:  breakdown.EstimatedValue,
		FileSizeMB:      breakdown.FileSizeMB,
		BlockchainState: "pending",
		Listed:          false,
	}

	recordID, err := s.uploadRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	result.RecordID = recordID

	result.EmailSent = s.queueSuccessEmail(ctx, *req.UserID, req.Filename, category, breakdown)
	return result, nil
}

// queueSuccessEmail sends the upload confirmation when the user has
// transactional notifications enabled. Delivery problems never fail the
// upload flow.
func (s *uploadService) queueSuccessEmail(ctx context.Context, userID int, filename, category string, breakdown tokenize.UploadBreakdown) bool {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load user for upload email", zap.Int("user_id", userID), zap.Error(err))
		return false
	}
	if !user.EmailNotifications {
		return false
	}

	emailReq := &models.UploadSuccessEmailRequest{
		UserID:   userID,
		Username: user.Username,
		Email:    user.Email,
		UploadData: models.UploadSuccessData{
			Filename:       filename,
			Category:       category,
			TokensCreated:  breakdown.TotalTokens,
			EstimatedValue: breakdown.EstimatedValue,
			FileSizeMB:     breakdown.FileSizeMB,
		},
	}
	if err := s.notifier.SendUploadSuccessEmail(ctx, emailReq); err != nil {
		s.logger.Warn("failed to queue upload success email", zap.Int("user_id", userID), zap.Error(err))
		return false
	}
	return true
}

// UserUploads returns the upload history for a user.
func (s *uploadService) UserUploads(ctx context.Context, userID int) ([]models.UploadRecord, error) {
	return s.uploadRepo.ListByUser(ctx, userID)
}

// Stats aggregates platform-wide upload numbers.
func (s *uploadService) Stats(ctx context.Context) (*models.UploadStats, error) {
	return s.uploadRepo.Stats(ctx)
}
