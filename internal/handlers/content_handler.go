package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"

	authmw "github.com/bigipmachine/backend/internal/auth/middleware"
	"github.com/bigipmachine/backend/internal/models"
	"github.com/bigipmachine/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ContentService is the interface that wraps methods for content upload business logic.
type ContentService interface {
	Upload(ctx context.Context, file io.Reader, req *services.UploadRequest) (*models.UploadResponse, error)
	Status(ctx context.Context, contentID string) (*models.ContentStatus, error)
	Get(ctx context.Context, contentID string) (*models.Content, error)
	List(ctx context.Context, userID int, limit int) ([]models.ContentListItem, error)
	Delete(ctx context.Context, contentID string) error
}

// UploadService is the interface that wraps methods for upload history business logic.
type UploadService interface {
	RecordSuccess(ctx context.Context, req *models.UploadSuccessRequest) (*services.UploadSuccessResult, error)
	UserUploads(ctx context.Context, userID int) ([]models.UploadRecord, error)
	Stats(ctx context.Context) (*models.UploadStats, error)
}

// ContentHandler handles HTTP requests for content upload and history
type ContentHandler struct {
	BaseHandler
	service        ContentService
	uploads        UploadService
	authMiddleware func(http.Handler) http.Handler
	optionalAuth   func(http.Handler) http.Handler
}

// NewContentHandler creates a new content handler
func NewContentHandler(
	svc ContentService,
	uploads UploadService,
	authMiddleware, optionalAuth func(http.Handler) http.Handler,
	logger *zap.Logger,
) *ContentHandler {
	return &ContentHandler{
		service:        svc,
		uploads:        uploads,
		authMiddleware: authMiddleware,
		optionalAuth:   optionalAuth,
		BaseHandler:    BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all content handler routes
func (h *ContentHandler) RegisterRoutes(r chi.Router) {
	r.Route("/content", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.optionalAuth)
			r.Post("/upload", h.Upload)
			r.Post("/upload-success", h.UploadSuccess)
		})
		r.Get("/status/{contentID}", h.Status)
		r.Get("/{contentID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware)
			r.Get("/my", h.List)
			r.Delete("/{contentID}", h.Delete)
			r.Get("/user-uploads", h.UserUploads)
		})
		r.Get("/upload-stats", h.Stats)
	})
}

// Upload handles POST /api/v1/content/upload
// @Summary Upload a file for tokenization
// @Description Stream a multipart upload to storage; the file is fingerprinted and classified
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Content file"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param creator formData string false "Creator name"
// @Param category formData string false "Category (auto-detected when omitted)"
// @Success 201 {object} models.UploadResponse
// @Failure 400 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Router /api/v1/content/upload [post]
func (h *ContentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Walk the multipart stream by hand so large files never land in
	// memory. Metadata fields must precede the file part.
	reader, err := r.MultipartReader()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "expected multipart/form-data")
		return
	}

	req := &services.UploadRequest{}
	if userID, ok := authmw.GetUserID(r.Context()); ok {
		req.UserID = &userID
	}

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			h.respondError(w, http.StatusBadRequest, "file part is required")
			return
		}
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "malformed multipart body")
			return
		}

		if part.FormName() == "file" {
			req.Filename = part.FileName()
			resp, err := h.service.Upload(r.Context(), part, req)
			part.Close()
			if err != nil {
				h.respondError(w, http.StatusBadRequest, err.Error())
				return
			}
			h.respondJSON(w, http.StatusCreated, resp)
			return
		}

		value, err := io.ReadAll(io.LimitReader(part, 4096))
		part.Close()
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "malformed multipart body")
			return
		}

		switch part.FormName() {
		case "title":
			req.Title = string(value)
		case "description":
			req.Description = string(value)
		case "creator":
			req.Creator = string(value)
		case "category":
			req.Category = string(value)
		}
	}
}

// Status handles GET /api/v1/content/status/{contentID}
// @Summary Get upload status
// @Tags content
// @Produce json
// @Param contentID path string true "Content ID"
// @Success 200 {object} models.ContentStatus
// @Failure 404 {object} map[string]string
// @Router /api/v1/content/status/{contentID} [get]
func (h *ContentHandler) Status(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentID")

	status, err := h.service.Status(r.Context(), contentID)
	if err != nil {
		h.respondError(w, http.StatusNotFound, "content not found")
		return
	}

	h.respondJSON(w, http.StatusOK, status)
}

// Get handles GET /api/v1/content/{contentID}
// @Summary Get content metadata
// @Tags content
// @Produce json
// @Param contentID path string true "Content ID"
// @Success 200 {object} models.Content
// @Failure 404 {object} map[string]string
// @Router /api/v1/content/{contentID} [get]
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentID")

	content, err := h.service.Get(r.Context(), contentID)
	if err != nil {
		h.respondError(w, http.StatusNotFound, "content not found")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"metadata": content})
}

// List handles GET /api/v1/content/my
// @Summary List the authenticated user's uploads
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max results (default 20)"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /api/v1/content/my [get]
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.service.List(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error("failed to list contents", zap.Int("user_id", userID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to list contents")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

// Delete handles DELETE /api/v1/content/{contentID}
// @Summary Delete an upload
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param contentID path string true "Content ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/content/{contentID} [delete]
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	contentID := chi.URLParam(r, "contentID")

	content, err := h.service.Get(r.Context(), contentID)
	if err != nil {
		h.respondError(w, http.StatusNotFound, "content not found")
		return
	}

	role, _ := authmw.GetRole(r.Context())
	owner := content.UserID != nil && *content.UserID == userID
	if !owner && role != int(models.RoleAdmin) {
		h.respondError(w, http.StatusForbidden, "you do not own this content")
		return
	}

	if err := h.service.Delete(r.Context(), contentID); err != nil {
		h.logger.Error("failed to delete content", zap.String("content_id", contentID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to delete content")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Content deleted"})
}

// UploadSuccess handles POST /api/v1/content/upload-success
// @Summary Get the post-upload token breakdown
// @Description Compute the token breakdown splash payload; registered users also get a history row and a confirmation email
// @Tags content
// @Accept json
// @Produce json
// @Param request body models.UploadSuccessRequest true "Upload result data"
// @Success 200 {object} services.UploadSuccessResult
// @Failure 400 {object} map[string]string
// @Router /api/v1/content/upload-success [post]
func (h *ContentHandler) UploadSuccess(w http.ResponseWriter, r *http.Request) {
	var req models.UploadSuccessRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The authenticated user always wins over the body field.
	if userID, ok := authmw.GetUserID(r.Context()); ok {
		req.UserID = &userID
	}

	result, err := h.uploads.RecordSuccess(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to record upload success", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to record upload")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// UserUploads handles GET /api/v1/content/user-uploads
// @Summary Get the authenticated user's tokenized upload history
// @Tags content
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /api/v1/content/user-uploads [get]
func (h *ContentHandler) UserUploads(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	records, err := h.uploads.UserUploads(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get user uploads", zap.Int("user_id", userID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get uploads")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"uploads": records, "count": len(records)})
}

// Stats handles GET /api/v1/content/upload-stats
// @Summary Get platform-wide upload statistics
// @Tags content
// @Produce json
// @Success 200 {object} models.UploadStats
// @Failure 500 {object} map[string]string
// @Router /api/v1/content/upload-stats [get]
func (h *ContentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.uploads.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to get upload stats", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}
