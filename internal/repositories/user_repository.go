package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bigipmachine/backend/internal/models"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type usersRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUsersRepository creates a new instance of the UserRepository interface
func NewUsersRepository(db *sql.DB, logger *zap.Logger) *usersRepository {
	return &usersRepository{
		db:     db,
		logger: logger,
	}
}

const userColumns = `id, username, email, password_hash, full_name, company_name, user_type,
		role, email_verified, email_notifications, marketing_emails, created_at, last_login`

func (r *usersRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var fullName, companyName sql.NullString
	var lastLogin sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&fullName,
		&companyName,
		&user.UserType,
		&user.Role,
		&user.EmailVerified,
		&user.EmailNotifications,
		&user.MarketingEmails,
		&user.CreatedAt,
		&lastLogin,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	user.FullName = fullName.String
	user.CompanyName = companyName.String
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}
	return user, nil
}

// Create inserts a new user and returns the generated ID.
func (r *usersRepository) Create(ctx context.Context, user *models.User) (int, error) {
	query := `
		INSERT INTO users (username, email, password_hash, full_name, company_name,
			user_type, role, email_verified, email_notifications, marketing_emails)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.CompanyName,
		user.UserType,
		user.Role,
		user.EmailVerified,
		user.EmailNotifications,
		user.MarketingEmails,
	)
	if err != nil {
		r.logger.Error("failed to create user", zap.Error(err))
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get user id: %w", err)
	}

	return int(id), nil
}

// GetByID retrieves a user by ID.
func (r *usersRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = ? LIMIT 1`, userColumns)
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByUsername retrieves a user by exact username.
func (r *usersRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = ? LIMIT 1`, userColumns)
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

// GetByEmail retrieves a user by email.
func (r *usersRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = ? LIMIT 1`, userColumns)
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// UsernameExists reports whether a username is already taken.
func (r *usersRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT COUNT(*) FROM users WHERE username = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}

// EmailExists reports whether an email is already registered.
func (r *usersRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT COUNT(*) FROM users WHERE email = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// MarkEmailVerified sets the verified flag for a user.
func (r *usersRepository) MarkEmailVerified(ctx context.Context, userID int) error {
	query := `UPDATE users SET email_verified = TRUE WHERE id = ?`

	// The driver reports rows changed, not matched, so an already verified
	// user is indistinguishable from a missing one here. Callers look the
	// user up first.
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	return nil
}

// UpdateLastLogin records the login time.
func (r *usersRepository) UpdateLastLogin(ctx context.Context, userID int) error {
	query := `UPDATE users SET last_login = NOW() WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// UpdateEmailPreferences updates only the preference fields that are set.
func (r *usersRepository) UpdateEmailPreferences(ctx context.Context, userID int, prefs *models.UpdateEmailPreferencesRequest) error {
	query := `
		UPDATE users
		SET email_notifications = COALESCE(?, email_notifications),
			marketing_emails = COALESCE(?, marketing_emails)
		WHERE id = ?
	`

	var notifications, marketing any
	if prefs.EmailNotifications != nil {
		notifications = *prefs.EmailNotifications
	}
	if prefs.MarketingEmails != nil {
		marketing = *prefs.MarketingEmails
	}

	if _, err := r.db.ExecContext(ctx, query, notifications, marketing, userID); err != nil {
		r.logger.Error("failed to update email preferences", zap.Int("user_id", userID), zap.Error(err))
		return fmt.Errorf("failed to update email preferences: %w", err)
	}

	return nil
}
