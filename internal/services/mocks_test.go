package services

import (
	"context"
	"time"

	"github.com/bigipmachine/backend/internal/models"
	"github.com/bigipmachine/backend/internal/repositories"
	"github.com/hibiken/asynq"
)

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	user           *models.User
	err            error
	createdID      int
	createErr      error
	usernameExists bool
	emailExists    bool
	existsErr      error
	verifiedIDs    []int
	updatedPrefs   *models.UpdateEmailPreferencesRequest
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) (int, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	if m.createdID == 0 {
		m.createdID = 1
	}
	return m.createdID, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user == nil {
		return nil, repositories.ErrNotFound
	}
	return m.user, nil
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.GetByID(ctx, 0)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetByID(ctx, 0)
}

func (m *mockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.usernameExists, nil
}

func (m *mockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.emailExists, nil
}

func (m *mockUserRepository) MarkEmailVerified(ctx context.Context, userID int) error {
	m.verifiedIDs = append(m.verifiedIDs, userID)
	return m.err
}

func (m *mockUserRepository) UpdateLastLogin(ctx context.Context, userID int) error {
	return nil
}

func (m *mockUserRepository) UpdateEmailPreferences(ctx context.Context, userID int, prefs *models.UpdateEmailPreferencesRequest) error {
	m.updatedPrefs = prefs
	return m.err
}

// mockVerificationRepository is a mock implementation of VerificationRepository
type mockVerificationRepository struct {
	verification *models.EmailVerification
	err          error
	createdToken string
	usedIDs      []int
}

func (m *mockVerificationRepository) Create(ctx context.Context, userID int, token string, expiresAt time.Time) error {
	m.createdToken = token
	return m.err
}

func (m *mockVerificationRepository) GetByToken(ctx context.Context, token string) (*models.EmailVerification, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.verification == nil {
		return nil, repositories.ErrNotFound
	}
	return m.verification, nil
}

func (m *mockVerificationRepository) MarkUsed(ctx context.Context, id int) error {
	m.usedIDs = append(m.usedIDs, id)
	return nil
}

// mockNotifier is a mock implementation of Notifier and UploadNotifier
type mockNotifier struct {
	err             error
	verifications   []string
	welcomes        []*models.WelcomeEmailRequest
	uploadSuccesses []*models.UploadSuccessEmailRequest
}

func (m *mockNotifier) SendVerificationEmail(ctx context.Context, user *models.User, verifyURL string) error {
	if m.err != nil {
		return m.err
	}
	m.verifications = append(m.verifications, verifyURL)
	return nil
}

func (m *mockNotifier) SendWelcomeEmail(ctx context.Context, req *models.WelcomeEmailRequest) error {
	if m.err != nil {
		return m.err
	}
	m.welcomes = append(m.welcomes, req)
	return nil
}

func (m *mockNotifier) SendUploadSuccessEmail(ctx context.Context, req *models.UploadSuccessEmailRequest) error {
	if m.err != nil {
		return m.err
	}
	m.uploadSuccesses = append(m.uploadSuccesses, req)
	return nil
}

// mockUserTokenRepository is a mock implementation of UserTokenRepository
type mockUserTokenRepository struct {
	token      *models.UserToken
	err        error
	saved      map[int]string
	deletedIDs []int
}

func (m *mockUserTokenRepository) Save(ctx context.Context, userID int, token string, expiresAt time.Time) error {
	if m.err != nil {
		return m.err
	}
	if m.saved == nil {
		m.saved = make(map[int]string)
	}
	m.saved[userID] = token
	return nil
}

func (m *mockUserTokenRepository) GetByToken(ctx context.Context, token string) (*models.UserToken, error) {
	if m.token == nil {
		return nil, repositories.ErrNotFound
	}
	return m.token, nil
}

func (m *mockUserTokenRepository) DeleteByUserID(ctx context.Context, userID int) error {
	m.deletedIDs = append(m.deletedIDs, userID)
	return m.err
}

// mockContentRepository is a mock implementation of ContentRepository
type mockContentRepository struct {
	content   *models.Content
	byHash    *models.Content
	items     []models.ContentListItem
	err       error
	created   []*models.Content
	deletedID string
}

func (m *mockContentRepository) Create(ctx context.Context, content *models.Content) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, content)
	return nil
}

func (m *mockContentRepository) GetByID(ctx context.Context, id string) (*models.Content, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.content == nil {
		return nil, repositories.ErrNotFound
	}
	return m.content, nil
}

func (m *mockContentRepository) FindByFileHash(ctx context.Context, fileHash string) (*models.Content, error) {
	if m.byHash == nil {
		return nil, repositories.ErrNotFound
	}
	return m.byHash, nil
}

func (m *mockContentRepository) ListByUser(ctx context.Context, userID int, limit int) ([]models.ContentListItem, error) {
	return m.items, m.err
}

func (m *mockContentRepository) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	return m.err
}

// mockUploadRecordRepository is a mock implementation of UploadRecordRepository
type mockUploadRecordRepository struct {
	records   []models.UploadRecord
	stats     *models.UploadStats
	err       error
	created   []*models.UploadRecord
	createdID int
}

func (m *mockUploadRecordRepository) Create(ctx context.Context, record *models.UploadRecord) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.created = append(m.created, record)
	if m.createdID == 0 {
		m.createdID = 1
	}
	return m.createdID, nil
}

func (m *mockUploadRecordRepository) ListByUser(ctx context.Context, userID int) ([]models.UploadRecord, error) {
	return m.records, m.err
}

func (m *mockUploadRecordRepository) Stats(ctx context.Context) (*models.UploadStats, error) {
	return m.stats, m.err
}

// mockEmailTaskRepository is a mock implementation of EmailTaskRepository
type mockEmailTaskRepository struct {
	tasks   []models.EmailTask
	err     error
	created []*models.EmailTask
}

func (m *mockEmailTaskRepository) Create(ctx context.Context, task *models.EmailTask) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.created = append(m.created, task)
	return len(m.created), nil
}

func (m *mockEmailTaskRepository) ListByUser(ctx context.Context, userID int, limit int) ([]models.EmailTask, error) {
	return m.tasks, m.err
}

// mockEnqueuer is a mock implementation of TaskEnqueuer
type mockEnqueuer struct {
	err      error
	enqueued []*asynq.Task
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.enqueued = append(m.enqueued, task)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}
