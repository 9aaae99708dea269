package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bigipmachine/backend/internal/models"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TaskTypeEmail is the asynq task type for queued emails. The payload is
// the email_tasks row ID.
const TaskTypeEmail = "email:deliver"

// EmailQueue is the asynq queue emails are enqueued on.
const EmailQueue = "emails"

// EmailTaskRepository is the interface that wraps methods for EmailTask table data access
type EmailTaskRepository interface {
	Create(ctx context.Context, task *models.EmailTask) (int, error)
	ListByUser(ctx context.Context, userID int, limit int) ([]models.EmailTask, error)
}

// TaskEnqueuer abstracts the asynq client for tests.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// notificationService implements the Notifier and UploadNotifier interfaces:
// it renders the email, records it in email_tasks and enqueues the delivery
// job. Actual SMTP delivery happens in the worker process.
type notificationService struct {
	emailTaskRepo EmailTaskRepository
	userRepo      UserRepository
	client        TaskEnqueuer
	logger        *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	emailTaskRepo EmailTaskRepository,
	userRepo UserRepository,
	client TaskEnqueuer,
	logger *zap.Logger,
) *notificationService {
	return &notificationService{
		emailTaskRepo: emailTaskRepo,
		userRepo:      userRepo,
		client:        client,
		logger:        logger,
	}
}

// SendVerificationEmail queues the account verification email. Verification
// emails are always sent regardless of notification preferences, since the
// account is unusable without them.
func (s *notificationService) SendVerificationEmail(ctx context.Context, user *models.User, verifyURL string) error {
	body, err := renderEmail("verification", verificationEmailData{
		Username:  user.Username,
		VerifyURL: verifyURL,
	})
	if err != nil {
		return err
	}

	return s.enqueue(ctx, &models.EmailTask{
		UserID:    user.ID,
		Kind:      models.EmailKindVerification,
		Recipient: user.Email,
		Subject:   "Verify your email - The Big IP Machine",
		Body:      body,
	})
}

// SendWelcomeEmail queues the post-verification welcome email.
func (s *notificationService) SendWelcomeEmail(ctx context.Context, req *models.WelcomeEmailRequest) error {
	allowed, err := s.transactionalAllowed(ctx, req.UserID)
	if err != nil {
		return err
	}
	if !allowed {
		return nil
	}

	body, err := renderEmail("welcome", welcomeEmailData{Username: req.Username})
	if err != nil {
		return err
	}

	return s.enqueue(ctx, &models.EmailTask{
		UserID:    req.UserID,
		Kind:      models.EmailKindWelcome,
		Recipient: req.Email,
		Subject:   "Welcome to The Big IP Machine! 🎉",
		Body:      body,
	})
}

// SendUploadSuccessEmail queues the upload confirmation email.
func (s *notificationService) SendUploadSuccessEmail(ctx context.Context, req *models.UploadSuccessEmailRequest) error {
	allowed, err := s.transactionalAllowed(ctx, req.UserID)
	if err != nil {
		return err
	}
	if !allowed {
		return nil
	}

	body, err := renderEmail("upload_success", uploadSuccessEmailData{
		Username: req.Username,
		Data:     req.UploadData,
	})
	if err != nil {
		return err
	}

	return s.enqueue(ctx, &models.EmailTask{
		UserID:    req.UserID,
		Kind:      models.EmailKindUploadSuccess,
		Recipient: req.Email,
		Subject:   fmt.Sprintf("🎉 %q is now protected - The Big IP Machine", req.UploadData.Filename),
		Body:      body,
	})
}

// SendMarketplaceUpdate queues a marketplace digest. These are marketing
// emails and respect the marketing_emails opt-in.
func (s *notificationService) SendMarketplaceUpdate(ctx context.Context, req *models.MarketplaceUpdateRequest) error {
	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return err
	}
	if !user.MarketingEmails {
		return fmt.Errorf("user has not opted in to marketing emails")
	}

	updateType := req.UpdateType
	if _, ok := marketplaceUpdates[updateType]; !ok {
		updateType = "general"
	}
	parts := marketplaceUpdates[updateType]

	username := req.Username
	if username == "" {
		username = user.Username
	}
	email := req.Email
	if email == "" {
		email = user.Email
	}

	body, err := renderEmail("marketplace_update", marketplaceEmailData{
		Username: username,
		Headline: parts[1],
		Body:     parts[2],
	})
	if err != nil {
		return err
	}

	return s.enqueue(ctx, &models.EmailTask{
		UserID:    req.UserID,
		Kind:      models.EmailKindMarketplaceUpdate,
		Recipient: email,
		Subject:   parts[0],
		Body:      body,
	})
}

// History returns the stored email history for a user.
func (s *notificationService) History(ctx context.Context, userID int, limit int) ([]models.EmailTask, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.emailTaskRepo.ListByUser(ctx, userID, limit)
}

// transactionalAllowed reports whether the user accepts transactional
// notification emails.
func (s *notificationService) transactionalAllowed(ctx context.Context, userID int) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.EmailNotifications, nil
}

// enqueue persists the rendered email and queues its delivery job.
func (s *notificationService) enqueue(ctx context.Context, task *models.EmailTask) error {
	task.Status = models.EmailTaskStatusEnqueued

	id, err := s.emailTaskRepo.Create(ctx, task)
	if err != nil {
		return err
	}
	task.ID = id

	payload := []byte(strconv.Itoa(id))
	asynqTask := asynq.NewTask(TaskTypeEmail, payload)
	if _, err := s.client.EnqueueContext(ctx, asynqTask, asynq.Queue(EmailQueue)); err != nil {
		return fmt.Errorf("failed to enqueue email task: %w", err)
	}

	s.logger.Info("email queued",
		zap.Int("task_id", id),
		zap.String("kind", string(task.Kind)),
	)
	return nil
}
