package models

import "time"

// EmailTaskStatus represents the delivery status of a queued email.
type EmailTaskStatus string

const (
	EmailTaskStatusEnqueued  EmailTaskStatus = "Enqueued"
	EmailTaskStatusCompleted EmailTaskStatus = "Completed"
	EmailTaskStatusFailed    EmailTaskStatus = "Failed"
)

// EmailKind distinguishes the notification templates.
type EmailKind string

const (
	EmailKindVerification      EmailKind = "verification"
	EmailKindWelcome           EmailKind = "welcome"
	EmailKindUploadSuccess     EmailKind = "upload_success"
	EmailKindMarketplaceUpdate EmailKind = "marketplace_update"
)

// EmailTask represents one queued outgoing email.
type EmailTask struct {
	ID        int             `json:"id"`
	UserID    int             `json:"user_id"`
	Kind      EmailKind       `json:"kind"`
	Recipient string          `json:"recipient"`
	Subject   string          `json:"subject"`
	Body      string          `json:"body"`
	CreatedAt time.Time       `json:"created_at"`
	Status    EmailTaskStatus `json:"status"`
	Error     string          `json:"error,omitempty"`
}

// WelcomeEmailRequest asks for a welcome email to be queued.
type WelcomeEmailRequest struct {
	UserID   int    `json:"user_id" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// UploadSuccessEmailRequest asks for an upload-success email to be queued.
type UploadSuccessEmailRequest struct {
	UserID     int               `json:"user_id" validate:"required"`
	Username   string            `json:"username"`
	Email      string            `json:"email" validate:"required,email"`
	UploadData UploadSuccessData `json:"upload_data" validate:"required"`
}

// UploadSuccessData carries the token breakdown shown in the email.
type UploadSuccessData struct {
	Filename       string  `json:"filename"`
	Category       string  `json:"category"`
	TokensCreated  int     `json:"tokens_created"`
	EstimatedValue float64 `json:"estimated_value"`
	FileSizeMB     float64 `json:"file_size_mb"`
}

// MarketplaceUpdateRequest asks for a marketplace digest to be queued.
// UpdateType is one of new_listing, price_drop, trending or general.
type MarketplaceUpdateRequest struct {
	UserID     int    `json:"user_id" validate:"required"`
	Username   string `json:"username"`
	Email      string `json:"email" validate:"required,email"`
	UpdateType string `json:"update_type,omitempty"`
}
