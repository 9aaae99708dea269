// Package services holds the business logic between HTTP handlers and
// repositories.
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bigipmachine/backend/internal/models"
	"github.com/bigipmachine/backend/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (int, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	MarkEmailVerified(ctx context.Context, userID int) error
	UpdateLastLogin(ctx context.Context, userID int) error
	UpdateEmailPreferences(ctx context.Context, userID int, prefs *models.UpdateEmailPreferencesRequest) error
}

// VerificationRepository is the interface that wraps methods for EmailVerification table data access
type VerificationRepository interface {
	Create(ctx context.Context, userID int, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*models.EmailVerification, error)
	MarkUsed(ctx context.Context, id int) error
}

// Notifier queues outgoing notification emails.
type Notifier interface {
	SendVerificationEmail(ctx context.Context, user *models.User, verifyURL string) error
	SendWelcomeEmail(ctx context.Context, req *models.WelcomeEmailRequest) error
}

// usernameRegex validates username format: 3-30 chars, letters, digits, underscore, hyphen
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// passwordRegex validates password: at least 8 chars, uppercase, lowercase, digit, special
var passwordRegex = []*regexp.Regexp{
	regexp.MustCompile(`.{8,}`),
	regexp.MustCompile(`[a-z]`),
	regexp.MustCompile(`[A-Z]`),
	regexp.MustCompile(`[0-9]`),
	regexp.MustCompile(`[^a-zA-Z0-9]`),
}

// registrationService implements RegistrationService
type registrationService struct {
	userRepo         UserRepository
	verificationRepo VerificationRepository
	notifier         Notifier
	logger           *zap.Logger
	baseURL          string
	tokenExpiry      time.Duration
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	userRepo UserRepository,
	verificationRepo VerificationRepository,
	notifier Notifier,
	logger *zap.Logger,
	baseURL string,
	tokenExpiry time.Duration,
) *registrationService {
	return &registrationService{
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		notifier:         notifier,
		logger:           logger,
		baseURL:          baseURL,
		tokenExpiry:      tokenExpiry,
	}
}

// Register creates a new creator account and queues a verification email.
func (s *registrationService) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	normalizedEmail, normalizedUsername, err := s.checkRegisterCredentials(ctx, req)
	if err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	userType := req.UserType
	if userType == "" {
		userType = models.UserTypeCreator
	}

	user := &models.User{
		Username:           normalizedUsername,
		Email:              normalizedEmail,
		PasswordHash:       string(passwordHash),
		FullName:           strings.TrimSpace(req.FullName),
		CompanyName:        strings.TrimSpace(req.CompanyName),
		UserType:           userType,
		Role:               models.RoleUser,
		EmailNotifications: true,
		MarketingEmails:    req.MarketingEmails,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	emailSent := s.issueVerification(ctx, user)

	return &models.RegisterResponse{
		Message:              "Registration successful! Please check your email to verify your account.",
		UserID:               userID,
		EmailSent:            emailSent,
		VerificationRequired: true,
	}, nil
}

// issueVerification stores a fresh verification token and queues the email.
// Registration itself succeeds even when the email cannot be queued; the
// user can request a resend.
func (s *registrationService) issueVerification(ctx context.Context, user *models.User) bool {
	token, err := generateVerificationToken()
	if err != nil {
		s.logger.Error("failed to generate verification token", zap.Int("user_id", user.ID), zap.Error(err))
		return false
	}

	if err := s.verificationRepo.Create(ctx, user.ID, token, time.Now().Add(s.tokenExpiry)); err != nil {
		s.logger.Error("failed to store verification token", zap.Int("user_id", user.ID), zap.Error(err))
		return false
	}

	verifyURL := fmt.Sprintf("%s/api/v1/registration/verify-email/%s", s.baseURL, token)
	if err := s.notifier.SendVerificationEmail(ctx, user, verifyURL); err != nil {
		s.logger.Warn("failed to queue verification email", zap.Int("user_id", user.ID), zap.Error(err))
		return false
	}

	return true
}

// VerifyEmail consumes a verification token and marks the account verified.
// A welcome email is queued on first verification.
func (s *registrationService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	verification, err := s.verificationRepo.GetByToken(ctx, token)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, fmt.Errorf("invalid verification token")
		}
		return nil, err
	}

	if verification.Used {
		return nil, fmt.Errorf("verification token already used")
	}
	if time.Now().After(verification.ExpiresAt) {
		return nil, fmt.Errorf("verification token expired")
	}

	user, err := s.userRepo.GetByID(ctx, verification.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.MarkEmailVerified(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := s.verificationRepo.MarkUsed(ctx, verification.ID); err != nil {
		return nil, err
	}
	user.EmailVerified = true

	// Queue the welcome email without blocking verification.
	go func() {
		req := &models.WelcomeEmailRequest{
			UserID:   user.ID,
			Username: user.Username,
			Email:    user.Email,
		}
		if err := s.notifier.SendWelcomeEmail(context.Background(), req); err != nil {
			s.logger.Warn("failed to queue welcome email", zap.Int("user_id", user.ID), zap.Error(err))
		}
	}()

	return user, nil
}

// ResendVerification issues a fresh verification token for an unverified
// account.
func (s *registrationService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if err == repositories.ErrNotFound {
			// Deliberately vague so the endpoint cannot be used to probe
			// which emails are registered.
			return nil
		}
		return err
	}

	if user.EmailVerified {
		return fmt.Errorf("email already verified")
	}

	if !s.issueVerification(ctx, user) {
		return fmt.Errorf("failed to send verification email")
	}
	return nil
}

// CheckAvailability reports whether the requested username and email are
// free. Empty fields count as available.
func (s *registrationService) CheckAvailability(ctx context.Context, req *models.AvailabilityRequest) (*models.AvailabilityResponse, error) {
	resp := &models.AvailabilityResponse{
		UsernameAvailable: true,
		EmailAvailable:    true,
	}

	if req.Username != "" {
		exists, err := s.userRepo.UsernameExists(ctx, strings.TrimSpace(req.Username))
		if err != nil {
			return nil, err
		}
		resp.UsernameAvailable = !exists
	}

	if req.Email != "" {
		exists, err := s.userRepo.EmailExists(ctx, strings.TrimSpace(strings.ToLower(req.Email)))
		if err != nil {
			return nil, err
		}
		resp.EmailAvailable = !exists
	}

	return resp, nil
}

// GetEmailPreferences returns a user's notification opt-ins.
func (s *registrationService) GetEmailPreferences(ctx context.Context, userID int) (*models.EmailPreferences, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.EmailPreferences{
		EmailNotifications: user.EmailNotifications,
		MarketingEmails:    user.MarketingEmails,
		Email:              user.Email,
	}, nil
}

// UpdateEmailPreferences updates the preference fields that are set.
func (s *registrationService) UpdateEmailPreferences(ctx context.Context, userID int, req *models.UpdateEmailPreferencesRequest) (*models.EmailPreferences, error) {
	if req.EmailNotifications == nil && req.MarketingEmails == nil {
		return nil, fmt.Errorf("no preferences provided")
	}

	if err := s.userRepo.UpdateEmailPreferences(ctx, userID, req); err != nil {
		return nil, err
	}

	return s.GetEmailPreferences(ctx, userID)
}

// checkRegisterCredentials validates all registration fields in parallel and
// returns the normalized email and username.
//
// The checks are independent, so goroutines run them concurrently the same
// way the other validation paths do.
func (s *registrationService) checkRegisterCredentials(ctx context.Context, req *models.RegisterRequest) (string, string, error) {
	validationErrors := make(chan error, 4)
	normalizedEmail := strings.TrimSpace(strings.ToLower(req.Email))
	normalizedUsername := strings.TrimSpace(req.Username)

	// Validate password policy
	go func() {
		for _, regex := range passwordRegex {
			if !regex.MatchString(req.Password) {
				validationErrors <- fmt.Errorf("password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one special character")
				return
			}
		}
		validationErrors <- nil
	}()

	// Validate username format and check its uniqueness
	go func() {
		if !usernameRegex.MatchString(normalizedUsername) {
			validationErrors <- fmt.Errorf("username must be 3-30 characters and contain only letters, numbers, underscores and hyphens")
			return
		}
		usernameExists, err := s.userRepo.UsernameExists(ctx, normalizedUsername)
		if err != nil {
			validationErrors <- fmt.Errorf("failed to check username: %w", err)
			return
		}
		if usernameExists {
			validationErrors <- fmt.Errorf("username already exists")
			return
		}
		validationErrors <- nil
	}()

	// Validate email format and check its uniqueness
	go func() {
		if !emailRegex.MatchString(normalizedEmail) {
			validationErrors <- fmt.Errorf("invalid email format")
			return
		}
		emailExists, err := s.userRepo.EmailExists(ctx, normalizedEmail)
		if err != nil {
			validationErrors <- fmt.Errorf("failed to check email: %w", err)
			return
		}
		if emailExists {
			validationErrors <- fmt.Errorf("email already exists")
			return
		}
		validationErrors <- nil
	}()

	// Validate agreement checkboxes
	go func() {
		if !req.TermsAccepted || !req.PrivacyAccepted {
			validationErrors <- fmt.Errorf("terms of service and privacy policy must be accepted")
			return
		}
		validationErrors <- nil
	}()

	for range 4 {
		if err := <-validationErrors; err != nil {
			return "", "", err
		}
	}

	return normalizedEmail, normalizedUsername, nil
}

// generateVerificationToken returns a URL-safe random token.
func generateVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
