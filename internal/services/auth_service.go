package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bigipmachine/backend/internal/auth/service"
	"github.com/bigipmachine/backend/internal/models"
	"github.com/bigipmachine/backend/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserTokenRepository is the interface that wraps methods for UserToken table data access
type UserTokenRepository interface {
	Save(ctx context.Context, userID int, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*models.UserToken, error)
	DeleteByUserID(ctx context.Context, userID int) error
}

// authService implements AuthService
type authService struct {
	userRepo       UserRepository
	userTokenRepo  UserTokenRepository
	tokenGenerator *service.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepository,
	userTokenRepo UserTokenRepository,
	tokenGenerator *service.TokenGenerator,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:       userRepo,
		userTokenRepo:  userTokenRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// Login authenticates a user by username or email.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	login := strings.TrimSpace(req.Username)
	if login == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}
	if req.Password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}

	user, err := s.getByUsernameOrEmail(ctx, login)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, fmt.Errorf("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if !user.EmailVerified {
		return nil, fmt.Errorf("email not verified")
	}

	// Record the login time without blocking the response.
	go func() {
		if err := s.userRepo.UpdateLastLogin(context.Background(), user.ID); err != nil {
			s.logger.Warn("failed to update last login", zap.Int("user_id", user.ID), zap.Error(err))
		}
	}()

	accessToken, refreshToken, err := s.generateAndSaveTokens(ctx, user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh rotates a refresh token and issues a new token pair.
//
// The signature check and the database lookup are independent, so they run
// in parallel.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.LoginResponse, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	errorChan := make(chan error, 2)
	userTokenChan := make(chan *models.UserToken, 1) // Buffered to prevent goroutine leak

	// Check if the refresh token exists in the database and return it
	go func() {
		userToken, err := s.userTokenRepo.GetByToken(ctx, refreshToken)
		if err != nil {
			errorChan <- fmt.Errorf("invalid or expired refresh token")
			userTokenChan <- nil
			return
		}
		userTokenChan <- userToken
		errorChan <- nil
	}()

	// Validate the refresh token signature and expiry
	go func() {
		if err := s.tokenGenerator.ValidateRefreshToken(refreshToken); err != nil {
			errorChan <- fmt.Errorf("invalid or expired refresh token")
			return
		}
		errorChan <- nil
	}()

	for range 2 {
		if err := <-errorChan; err != nil {
			return nil, err
		}
	}
	userToken := <-userTokenChan
	if userToken == nil {
		return nil, fmt.Errorf("invalid or expired refresh token")
	}
	if time.Now().After(userToken.ExpiresAt) {
		return nil, fmt.Errorf("invalid or expired refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, userToken.UserID)
	if err != nil {
		return nil, err
	}

	accessToken, newRefreshToken, err := s.generateAndSaveTokens(ctx, user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		User:         user,
	}, nil
}

// Logout revokes the user's stored refresh token.
func (s *authService) Logout(ctx context.Context, userID int) error {
	return s.userTokenRepo.DeleteByUserID(ctx, userID)
}

// GetProfile returns the profile of the authenticated user.
func (s *authService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) getByUsernameOrEmail(ctx context.Context, login string) (*models.User, error) {
	if strings.Contains(login, "@") {
		return s.userRepo.GetByEmail(ctx, strings.ToLower(login))
	}
	return s.userRepo.GetByUsername(ctx, login)
}

// generateAndSaveTokens issues a token pair and stores the refresh token,
// replacing any previous one for the user.
func (s *authService) generateAndSaveTokens(ctx context.Context, userID int, role models.Role) (string, string, error) {
	accessToken, refreshToken, err := s.tokenGenerator.GenerateTokens(userID, int(role))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	expiresAt := time.Now().Add(s.tokenGenerator.RefreshTokenExpiry())
	if err := s.userTokenRepo.Save(ctx, userID, refreshToken, expiresAt); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}
