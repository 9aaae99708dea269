package models

import "time"

// Content represents one uploaded piece of intellectual property.
type Content struct {
	ID           string    `json:"content_id" db:"id"`
	UserID       *int      `json:"user_id,omitempty" db:"user_id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description,omitempty" db:"description"`
	Creator      string    `json:"creator" db:"creator"`
	Filename     string    `json:"filename" db:"filename"`
	StoredName   string    `json:"safe_filename" db:"stored_name"`
	Extension    string    `json:"file_extension" db:"extension"`
	Category     string    `json:"category" db:"category"`
	FileSize     int64     `json:"file_size" db:"file_size"`
	FileHash     string    `json:"file_hash" db:"file_hash"`
	SampleHash   string    `json:"sample_hash,omitempty" db:"sample_hash"`
	MetadataHash string    `json:"metadata_hash,omitempty" db:"metadata_hash"`
	UploadedAt   time.Time `json:"uploaded_at" db:"uploaded_at"`
}

// FileSizeMB reports the file size in megabytes.
func (c *Content) FileSizeMB() float64 {
	return float64(c.FileSize) / 1024 / 1024
}

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	Message    string   `json:"message"`
	ContentID  string   `json:"content_id"`
	FileSize   int64    `json:"file_size"`
	FileSizeMB float64  `json:"file_size_mb"`
	UploadTime float64  `json:"upload_time"`
	Metadata   *Content `json:"metadata"`
}

// ContentStatus reports the stored state of one upload.
type ContentStatus struct {
	ContentID  string  `json:"content_id"`
	Status     string  `json:"status"`
	FileSize   int64   `json:"file_size"`
	FileSizeMB float64 `json:"file_size_mb"`
	Filename   string  `json:"filename"`
}

// ContentListItem is one row in a content listing.
type ContentListItem struct {
	ContentID  string    `json:"content_id"`
	Title      string    `json:"title"`
	Filename   string    `json:"filename"`
	Category   string    `json:"category"`
	FileSize   int64     `json:"file_size"`
	FileSizeMB float64   `json:"file_size_mb"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// UploadRecord is one row of a user's tokenized upload history.
type UploadRecord struct {
	ID              int       `json:"id"`
	UserID          int       `json:"user_id"`
	Filename        string    `json:"filename"`
	Category        string    `json:"category"`
	TokensCreated   int       `json:"tokens_created"`
	EstimatedValue  float64   `json:"estimated_value"`
	FileSizeMB      float64   `json:"file_size_mb"`
	UploadTimestamp time.Time `json:"upload_timestamp"`
	BlockchainState string    `json:"blockchain_status"`
	Listed          bool      `json:"marketplace_listed"`
}

// UploadStats aggregates platform-wide upload numbers.
type UploadStats struct {
	TotalUploads int                          `json:"total_uploads"`
	TotalTokens  int                          `json:"total_tokens"`
	TotalValue   float64                      `json:"total_value"`
	Categories   map[string]CategoryUploadAgg `json:"categories"`
}

// CategoryUploadAgg is the per-category slice of UploadStats.
type CategoryUploadAgg struct {
	Count  int `json:"count"`
	Tokens int `json:"tokens"`
}
