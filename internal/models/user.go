package models

import "time"

type Role int

// UserRole constants
const (
	RoleUser  Role = 1
	RoleAdmin Role = 2
)

// UserType labels what kind of account the creator registered.
type UserType string

const (
	UserTypeCreator  UserType = "creator"
	UserTypeInvestor UserType = "investor"
	UserTypeCompany  UserType = "company"
)

// User represents a registered creator account.
type User struct {
	ID                 int        `json:"id"`
	Username           string     `json:"username"`
	Email              string     `json:"email"`
	PasswordHash       string     `json:"-"` // Never serialize password hash
	FullName           string     `json:"full_name,omitempty"`
	CompanyName        string     `json:"company_name,omitempty"`
	UserType           UserType   `json:"user_type"`
	Role               Role       `json:"role"` // 1=User, 2=Admin, default=1
	EmailVerified      bool       `json:"email_verified"`
	EmailNotifications bool       `json:"email_notifications"`
	MarketingEmails    bool       `json:"marketing_emails"`
	CreatedAt          time.Time  `json:"created_at"`
	LastLogin          *time.Time `json:"last_login,omitempty"`
}

// RegisterRequest represents a registration request. The password policy
// beyond min length (upper/lower/digit/special) is checked in the service.
type RegisterRequest struct {
	Username        string   `json:"username" validate:"required,min=3,max=30,username"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=8"`
	FullName        string   `json:"full_name,omitempty" validate:"max=100"`
	CompanyName     string   `json:"company_name,omitempty" validate:"max=100"`
	UserType        UserType `json:"user_type,omitempty"`
	TermsAccepted   bool     `json:"terms_accepted"`
	PrivacyAccepted bool     `json:"privacy_accepted"`
	MarketingEmails bool     `json:"marketing_emails"`
}

// RegisterResponse represents a successful registration.
type RegisterResponse struct {
	Message              string `json:"message"`
	UserID               int    `json:"user_id"`
	EmailSent            bool   `json:"email_sent"`
	VerificationRequired bool   `json:"verification_required"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token pair and the user profile.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserToken represents a stored refresh token for a user.
type UserToken struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// EmailVerification represents one email verification token. Tokens are
// single use and expire.
type EmailVerification struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

// AvailabilityRequest asks whether a username and/or email is free.
type AvailabilityRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// AvailabilityResponse reports username/email availability.
type AvailabilityResponse struct {
	UsernameAvailable bool `json:"username_available"`
	EmailAvailable    bool `json:"email_available"`
}

// EmailPreferences represents a user's notification opt-ins.
type EmailPreferences struct {
	EmailNotifications bool   `json:"email_notifications"`
	MarketingEmails    bool   `json:"marketing_emails"`
	Email              string `json:"email,omitempty"`
}

// UpdateEmailPreferencesRequest represents a preferences update.
type UpdateEmailPreferencesRequest struct {
	EmailNotifications *bool `json:"email_notifications,omitempty"`
	MarketingEmails    *bool `json:"marketing_emails,omitempty"`
}
