package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	authmw "github.com/bigipmachine/backend/internal/auth/middleware"
	authservice "github.com/bigipmachine/backend/internal/auth/service"
	"github.com/bigipmachine/backend/internal/models"
	"github.com/bigipmachine/backend/internal/services"
)

// testTokens issues real JWTs so the auth middleware runs unmodified in
// handler tests.
var testTokens = authservice.NewTokenGenerator("test-secret", 15*time.Minute, 24*time.Hour)

func testAuthMiddleware() func(http.Handler) http.Handler {
	return authmw.AuthMiddleware(testTokens)
}

func testOptionalAuthMiddleware() func(http.Handler) http.Handler {
	return authmw.OptionalAuthMiddleware(testTokens)
}

func accessTokenFor(userID, role int) string {
	access, _, err := testTokens.GenerateTokens(userID, role)
	if err != nil {
		panic(err)
	}
	return access
}

type mockRegistrationService struct {
	registered  []*models.RegisterRequest
	verifyErr   error
	resendCalls []string
	prefs       models.EmailPreferences
}

func (m *mockRegistrationService) Register(_ context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	if req.Username == "taken" {
		return nil, errors.New("username is already taken")
	}
	m.registered = append(m.registered, req)
	return &models.RegisterResponse{
		Message:              "Registration successful! Please check your email.",
		UserID:               1,
		EmailSent:            true,
		VerificationRequired: true,
	}, nil
}

func (m *mockRegistrationService) VerifyEmail(_ context.Context, token string) (*models.User, error) {
	if m.verifyErr != nil {
		return nil, m.verifyErr
	}
	return &models.User{ID: 1, Username: "creator", Email: "creator@example.com", EmailVerified: true}, nil
}

func (m *mockRegistrationService) ResendVerification(_ context.Context, email string) error {
	m.resendCalls = append(m.resendCalls, email)
	return nil
}

func (m *mockRegistrationService) CheckAvailability(_ context.Context, req *models.AvailabilityRequest) (*models.AvailabilityResponse, error) {
	return &models.AvailabilityResponse{
		UsernameAvailable: req.Username != "taken",
		EmailAvailable:    req.Email != "taken@example.com",
	}, nil
}

func (m *mockRegistrationService) GetEmailPreferences(_ context.Context, userID int) (*models.EmailPreferences, error) {
	prefs := m.prefs
	return &prefs, nil
}

func (m *mockRegistrationService) UpdateEmailPreferences(_ context.Context, userID int, req *models.UpdateEmailPreferencesRequest) (*models.EmailPreferences, error) {
	if req.EmailNotifications == nil && req.MarketingEmails == nil {
		return nil, errors.New("no preferences provided")
	}
	if req.EmailNotifications != nil {
		m.prefs.EmailNotifications = *req.EmailNotifications
	}
	if req.MarketingEmails != nil {
		m.prefs.MarketingEmails = *req.MarketingEmails
	}
	prefs := m.prefs
	return &prefs, nil
}

type mockAuthService struct {
	loggedOut []int
}

func (m *mockAuthService) Login(_ context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Password != "correct horse" {
		return nil, errors.New("invalid credentials")
	}
	return &models.LoginResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         &models.User{ID: 7, Username: req.Username},
	}, nil
}

func (m *mockAuthService) Refresh(_ context.Context, refreshToken string) (*models.LoginResponse, error) {
	if refreshToken != "refresh" {
		return nil, errors.New("invalid refresh token")
	}
	return &models.LoginResponse{AccessToken: "access2", RefreshToken: "refresh2"}, nil
}

func (m *mockAuthService) Logout(_ context.Context, userID int) error {
	m.loggedOut = append(m.loggedOut, userID)
	return nil
}

func (m *mockAuthService) GetProfile(_ context.Context, userID int) (*models.User, error) {
	return &models.User{ID: userID, Username: "creator", Email: "creator@example.com"}, nil
}

type mockContentService struct {
	lastUpload *services.UploadRequest
	lastBody   []byte
	contents   map[string]*models.Content
	deleted    []string
}

func (m *mockContentService) Upload(_ context.Context, file io.Reader, req *services.UploadRequest) (*models.UploadResponse, error) {
	body, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	m.lastUpload = req
	m.lastBody = body
	return &models.UploadResponse{
		Message:    "Upload successful",
		ContentID:  "content-1",
		FileSize:   int64(len(body)),
		FileSizeMB: float64(len(body)) / (1024 * 1024),
	}, nil
}

func (m *mockContentService) Status(_ context.Context, contentID string) (*models.ContentStatus, error) {
	if content, ok := m.contents[contentID]; ok {
		return &models.ContentStatus{ContentID: contentID, Status: "completed", Filename: content.Filename}, nil
	}
	return nil, errors.New("not found")
}

func (m *mockContentService) Get(_ context.Context, contentID string) (*models.Content, error) {
	if content, ok := m.contents[contentID]; ok {
		return content, nil
	}
	return nil, errors.New("not found")
}

func (m *mockContentService) List(_ context.Context, userID int, limit int) ([]models.ContentListItem, error) {
	var items []models.ContentListItem
	for id, c := range m.contents {
		if c.UserID != nil && *c.UserID == userID {
			items = append(items, models.ContentListItem{ContentID: id, Filename: c.Filename})
		}
	}
	return items, nil
}

func (m *mockContentService) Delete(_ context.Context, contentID string) error {
	m.deleted = append(m.deleted, contentID)
	delete(m.contents, contentID)
	return nil
}

type mockUploadService struct {
	recorded []*models.UploadSuccessRequest
}

func (m *mockUploadService) RecordSuccess(_ context.Context, req *models.UploadSuccessRequest) (*services.UploadSuccessResult, error) {
	m.recorded = append(m.recorded, req)
	return &services.UploadSuccessResult{RecordID: 1}, nil
}

func (m *mockUploadService) UserUploads(_ context.Context, userID int) ([]models.UploadRecord, error) {
	return []models.UploadRecord{{ID: 1, UserID: userID, Filename: "movie.mp4"}}, nil
}

func (m *mockUploadService) Stats(_ context.Context) (*models.UploadStats, error) {
	return &models.UploadStats{TotalUploads: 3, TotalTokens: 12011, TotalValue: 120.11}, nil
}

type mockNotificationService struct {
	welcomes    []*models.WelcomeEmailRequest
	marketplace []*models.MarketplaceUpdateRequest
	optedOut    bool
}

func (m *mockNotificationService) SendWelcomeEmail(_ context.Context, req *models.WelcomeEmailRequest) error {
	m.welcomes = append(m.welcomes, req)
	return nil
}

func (m *mockNotificationService) SendUploadSuccessEmail(_ context.Context, req *models.UploadSuccessEmailRequest) error {
	return nil
}

func (m *mockNotificationService) SendMarketplaceUpdate(_ context.Context, req *models.MarketplaceUpdateRequest) error {
	if m.optedOut {
		return errors.New("user has not opted in to marketing emails")
	}
	m.marketplace = append(m.marketplace, req)
	return nil
}

func (m *mockNotificationService) History(_ context.Context, userID int, limit int) ([]models.EmailTask, error) {
	return []models.EmailTask{{ID: 1, UserID: userID, Kind: models.EmailKindWelcome}}, nil
}
