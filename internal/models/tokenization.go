package models

// DetectCategoryRequest asks for a category guess from a file extension.
type DetectCategoryRequest struct {
	FileExtension string `json:"file_extension" validate:"required"`
}

// AnalyzeContentRequest asks for an originality analysis of an upload.
// Category is auto-detected from the extension when omitted.
type AnalyzeContentRequest struct {
	ContentID     string `json:"content_id" validate:"required"`
	Category      string `json:"category,omitempty"`
	FileExtension string `json:"file_extension,omitempty"`
}

// TokenizeRequest asks for a token allocation for analyzed content.
// Originality is a pointer so an explicit 0 (which zeroes every bucket's
// value) can be told apart from an absent score, which defaults to 90.
type TokenizeRequest struct {
	ContentID      string   `json:"content_id" validate:"required"`
	CreatorAddress string   `json:"creator_address,omitempty"`
	Title          string   `json:"title,omitempty"`
	Category       string   `json:"category,omitempty"`
	FileExtension  string   `json:"file_extension,omitempty"`
	Originality    *float64 `json:"originality_score,omitempty"`
}

// FullWorkflowRequest runs analyze + tokenize + wallet integration for an
// already-uploaded piece of content in one call.
type FullWorkflowRequest struct {
	ContentID      string `json:"content_id" validate:"required"`
	Title          string `json:"title,omitempty"`
	CreatorAddress string `json:"creator_address,omitempty"`
	Category       string `json:"category,omitempty"`
	FileExtension  string `json:"file_extension,omitempty"`
}

// UploadSuccessRequest asks for the post-upload splash screen payload.
type UploadSuccessRequest struct {
	Filename   string  `json:"filename" validate:"required"`
	Category   string  `json:"category,omitempty"`
	FileSizeMB float64 `json:"file_size_mb"`
	UserID     *int    `json:"user_id,omitempty"`
	UploadID   string  `json:"upload_id,omitempty"`
}
