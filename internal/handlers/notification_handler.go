package handlers

import (
	"context"
	"net/http"
	"strconv"

	authmw "github.com/bigipmachine/backend/internal/auth/middleware"
	"github.com/bigipmachine/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NotificationService is the interface that wraps methods for queueing email notifications.
type NotificationService interface {
	SendWelcomeEmail(ctx context.Context, req *models.WelcomeEmailRequest) error
	SendUploadSuccessEmail(ctx context.Context, req *models.UploadSuccessEmailRequest) error
	SendMarketplaceUpdate(ctx context.Context, req *models.MarketplaceUpdateRequest) error
	History(ctx context.Context, userID int, limit int) ([]models.EmailTask, error)
}

// NotificationHandler handles HTTP requests for email notifications
type NotificationHandler struct {
	BaseHandler
	service        NotificationService
	authMiddleware func(http.Handler) http.Handler
	serviceKey     string
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(
	svc NotificationService,
	authMiddleware func(http.Handler) http.Handler,
	serviceKey string,
	logger *zap.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		service:        svc,
		authMiddleware: authMiddleware,
		serviceKey:     serviceKey,
		BaseHandler:    BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all notification handler routes
func (h *NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		// Queueing endpoints are for service-to-service calls only.
		r.Group(func(r chi.Router) {
			r.Use(h.requireServiceKey)
			r.Post("/welcome", h.Welcome)
			r.Post("/upload-success", h.UploadSuccess)
			r.Post("/marketplace-update", h.MarketplaceUpdate)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware)
			r.Get("/history", h.History)
		})
	})
}

// requireServiceKey rejects requests that do not carry the shared
// service key. It protects endpoints meant for internal callers.
func (h *NotificationHandler) requireServiceKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.serviceKey == "" || r.Header.Get("X-Service-Key") != h.serviceKey {
			h.respondError(w, http.StatusForbidden, "service key required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Welcome handles POST /api/v1/notifications/welcome
// @Summary Queue a welcome email
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body models.WelcomeEmailRequest true "Recipient"
// @Success 202 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/v1/notifications/welcome [post]
func (h *NotificationHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	var req models.WelcomeEmailRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.SendWelcomeEmail(r.Context(), &req); err != nil {
		h.logger.Error("failed to queue welcome email", zap.Int("user_id", req.UserID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to queue email")
		return
	}

	h.respondJSON(w, http.StatusAccepted, map[string]string{"message": "Welcome email queued"})
}

// UploadSuccess handles POST /api/v1/notifications/upload-success
// @Summary Queue an upload confirmation email
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body models.UploadSuccessEmailRequest true "Recipient and upload data"
// @Success 202 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/v1/notifications/upload-success [post]
func (h *NotificationHandler) UploadSuccess(w http.ResponseWriter, r *http.Request) {
	var req models.UploadSuccessEmailRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.SendUploadSuccessEmail(r.Context(), &req); err != nil {
		h.logger.Error("failed to queue upload success email", zap.Int("user_id", req.UserID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to queue email")
		return
	}

	h.respondJSON(w, http.StatusAccepted, map[string]string{"message": "Upload confirmation queued"})
}

// MarketplaceUpdate handles POST /api/v1/notifications/marketplace-update
// @Summary Queue a marketplace update email
// @Description Requires the recipient to have opted in to marketing emails
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body models.MarketplaceUpdateRequest true "Recipient and update type"
// @Success 202 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/v1/notifications/marketplace-update [post]
func (h *NotificationHandler) MarketplaceUpdate(w http.ResponseWriter, r *http.Request) {
	var req models.MarketplaceUpdateRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.SendMarketplaceUpdate(r.Context(), &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusAccepted, map[string]string{"message": "Marketplace update queued"})
}

// History handles GET /api/v1/notifications/history
// @Summary Get the authenticated user's email history
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max results (default 50)"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /api/v1/notifications/history [get]
func (h *NotificationHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	tasks, err := h.service.History(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error("failed to get email history", zap.Int("user_id", userID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get history")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"emails": tasks, "count": len(tasks)})
}
