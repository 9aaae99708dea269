package services

import (
	"context"
	"testing"
	"time"

	"github.com/bigipmachine/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validRegisterRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Username:        "alice_films",
		Email:           "Alice@Example.com",
		Password:        "Str0ng!pass",
		UserType:        models.UserTypeCreator,
		TermsAccepted:   true,
		PrivacyAccepted: true,
	}
}

func newRegistrationService(userRepo *mockUserRepository, verificationRepo *mockVerificationRepository, notifier *mockNotifier) *registrationService {
	return NewRegistrationService(userRepo, verificationRepo, notifier, zap.NewNop(),
		"http://localhost:8080", 24*time.Hour)
}

func TestRegistrationService_Register(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*models.RegisterRequest)
		userRepo      *mockUserRepository
		expectedError string
	}{
		{
			name:     "success",
			mutate:   func(r *models.RegisterRequest) {},
			userRepo: &mockUserRepository{createdID: 42},
		},
		{
			name:          "password without uppercase",
			mutate:        func(r *models.RegisterRequest) { r.Password = "weak!pass1" },
			userRepo:      &mockUserRepository{},
			expectedError: "password must be",
		},
		{
			name:          "password without special character",
			mutate:        func(r *models.RegisterRequest) { r.Password = "Str0ngpass" },
			userRepo:      &mockUserRepository{},
			expectedError: "password must be",
		},
		{
			name:          "username too short",
			mutate:        func(r *models.RegisterRequest) { r.Username = "ab" },
			userRepo:      &mockUserRepository{},
			expectedError: "username must be",
		},
		{
			name:          "username with invalid characters",
			mutate:        func(r *models.RegisterRequest) { r.Username = "alice films!" },
			userRepo:      &mockUserRepository{},
			expectedError: "username must be",
		},
		{
			name:          "invalid email",
			mutate:        func(r *models.RegisterRequest) { r.Email = "not-an-email" },
			userRepo:      &mockUserRepository{},
			expectedError: "invalid email format",
		},
		{
			name:          "username taken",
			mutate:        func(r *models.RegisterRequest) {},
			userRepo:      &mockUserRepository{usernameExists: true},
			expectedError: "username already exists",
		},
		{
			name:          "email taken",
			mutate:        func(r *models.RegisterRequest) {},
			userRepo:      &mockUserRepository{emailExists: true},
			expectedError: "email already exists",
		},
		{
			name:          "terms not accepted",
			mutate:        func(r *models.RegisterRequest) { r.TermsAccepted = false },
			userRepo:      &mockUserRepository{},
			expectedError: "terms of service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verificationRepo := &mockVerificationRepository{}
			notifier := &mockNotifier{}
			svc := newRegistrationService(tt.userRepo, verificationRepo, notifier)

			req := validRegisterRequest()
			tt.mutate(req)

			resp, err := svc.Register(context.Background(), req)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 42, resp.UserID)
			assert.True(t, resp.EmailSent)
			assert.True(t, resp.VerificationRequired)
			assert.NotEmpty(t, verificationRepo.createdToken)
			require.Len(t, notifier.verifications, 1)
			assert.Contains(t, notifier.verifications[0], verificationRepo.createdToken)
		})
	}
}

func TestRegistrationService_Register_EmailQueueFailure(t *testing.T) {
	userRepo := &mockUserRepository{createdID: 42}
	verificationRepo := &mockVerificationRepository{}
	notifier := &mockNotifier{err: assert.AnError}
	svc := newRegistrationService(userRepo, verificationRepo, notifier)

	resp, err := svc.Register(context.Background(), validRegisterRequest())

	// Registration still succeeds; the user can request a resend.
	require.NoError(t, err)
	assert.False(t, resp.EmailSent)
}

func TestRegistrationService_VerifyEmail(t *testing.T) {
	user := &models.User{ID: 7, Username: "alice_films", Email: "alice@example.com"}

	tests := []struct {
		name          string
		verification  *models.EmailVerification
		expectedError string
	}{
		{
			name: "success",
			verification: &models.EmailVerification{
				ID:        3,
				UserID:    7,
				Token:     "tok",
				ExpiresAt: time.Now().Add(time.Hour),
			},
		},
		{
			name:          "unknown token",
			verification:  nil,
			expectedError: "invalid verification token",
		},
		{
			name: "already used",
			verification: &models.EmailVerification{
				ID:        3,
				UserID:    7,
				ExpiresAt: time.Now().Add(time.Hour),
				Used:      true,
			},
			expectedError: "already used",
		},
		{
			name: "expired",
			verification: &models.EmailVerification{
				ID:        3,
				UserID:    7,
				ExpiresAt: time.Now().Add(-time.Hour),
			},
			expectedError: "expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mockUserRepository{user: user}
			verificationRepo := &mockVerificationRepository{verification: tt.verification}
			svc := newRegistrationService(userRepo, verificationRepo, &mockNotifier{})

			got, err := svc.VerifyEmail(context.Background(), "tok")

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}

			require.NoError(t, err)
			assert.True(t, got.EmailVerified)
			assert.Equal(t, []int{7}, userRepo.verifiedIDs)
			assert.Equal(t, []int{3}, verificationRepo.usedIDs)
		})
	}
}

func TestRegistrationService_ResendVerification(t *testing.T) {
	t.Run("unknown email is silently accepted", func(t *testing.T) {
		svc := newRegistrationService(&mockUserRepository{}, &mockVerificationRepository{}, &mockNotifier{})

		err := svc.ResendVerification(context.Background(), "ghost@example.com")
		assert.NoError(t, err)
	})

	t.Run("already verified", func(t *testing.T) {
		userRepo := &mockUserRepository{user: &models.User{ID: 7, EmailVerified: true}}
		svc := newRegistrationService(userRepo, &mockVerificationRepository{}, &mockNotifier{})

		err := svc.ResendVerification(context.Background(), "alice@example.com")
		assert.ErrorContains(t, err, "already verified")
	})

	t.Run("issues a new token", func(t *testing.T) {
		userRepo := &mockUserRepository{user: &models.User{ID: 7, Username: "alice_films", Email: "alice@example.com"}}
		verificationRepo := &mockVerificationRepository{}
		notifier := &mockNotifier{}
		svc := newRegistrationService(userRepo, verificationRepo, notifier)

		err := svc.ResendVerification(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, verificationRepo.createdToken)
		assert.Len(t, notifier.verifications, 1)
	})
}

func TestRegistrationService_CheckAvailability(t *testing.T) {
	userRepo := &mockUserRepository{usernameExists: true, emailExists: false}
	svc := newRegistrationService(userRepo, &mockVerificationRepository{}, &mockNotifier{})

	resp, err := svc.CheckAvailability(context.Background(), &models.AvailabilityRequest{
		Username: "taken",
		Email:    "free@example.com",
	})
	require.NoError(t, err)
	assert.False(t, resp.UsernameAvailable)
	assert.True(t, resp.EmailAvailable)
}

func TestRegistrationService_UpdateEmailPreferences(t *testing.T) {
	t.Run("no fields", func(t *testing.T) {
		svc := newRegistrationService(&mockUserRepository{}, &mockVerificationRepository{}, &mockNotifier{})

		_, err := svc.UpdateEmailPreferences(context.Background(), 7, &models.UpdateEmailPreferencesRequest{})
		assert.ErrorContains(t, err, "no preferences provided")
	})

	t.Run("updates and returns fresh preferences", func(t *testing.T) {
		userRepo := &mockUserRepository{user: &models.User{
			ID: 7, Email: "alice@example.com", EmailNotifications: true, MarketingEmails: true,
		}}
		svc := newRegistrationService(userRepo, &mockVerificationRepository{}, &mockNotifier{})

		marketing := true
		prefs, err := svc.UpdateEmailPreferences(context.Background(), 7, &models.UpdateEmailPreferencesRequest{
			MarketingEmails: &marketing,
		})
		require.NoError(t, err)
		assert.NotNil(t, userRepo.updatedPrefs)
		assert.Equal(t, "alice@example.com", prefs.Email)
	})
}
