package handlers

import (
	"context"
	"net/http"
	"strings"

	authmw "github.com/bigipmachine/backend/internal/auth/middleware"
	"github.com/bigipmachine/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RegistrationService is the interface that wraps methods for account registration business logic.
type RegistrationService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error)
	VerifyEmail(ctx context.Context, token string) (*models.User, error)
	ResendVerification(ctx context.Context, email string) error
	CheckAvailability(ctx context.Context, req *models.AvailabilityRequest) (*models.AvailabilityResponse, error)
	GetEmailPreferences(ctx context.Context, userID int) (*models.EmailPreferences, error)
	UpdateEmailPreferences(ctx context.Context, userID int, req *models.UpdateEmailPreferencesRequest) (*models.EmailPreferences, error)
}

// RegistrationHandler handles HTTP requests for account registration
type RegistrationHandler struct {
	BaseHandler
	service        RegistrationService
	authMiddleware func(http.Handler) http.Handler
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(svc RegistrationService, authMiddleware func(http.Handler) http.Handler, logger *zap.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		service:        svc,
		authMiddleware: authMiddleware,
		BaseHandler:    BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all registration handler routes
func (h *RegistrationHandler) RegisterRoutes(r chi.Router) {
	r.Route("/registration", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Get("/verify-email/{token}", h.VerifyEmail)
		r.Post("/resend-verification", h.ResendVerification)
		r.Post("/check-availability", h.CheckAvailability)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware)
			r.Get("/email-preferences", h.GetEmailPreferences)
			r.Put("/email-preferences", h.UpdateEmailPreferences)
		})
	})
}

// Register handles POST /api/v1/registration/register
// @Summary Register a new creator account
// @Description Create an account and send a verification email
// @Tags registration
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.RegisterResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/registration/register [post]
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, resp)
}

// VerifyEmail handles GET /api/v1/registration/verify-email/{token}
// @Summary Verify an email address
// @Description Consume a verification token from the email link
// @Tags registration
// @Produce json
// @Param token path string true "Verification token"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /api/v1/registration/verify-email/{token} [get]
func (h *RegistrationHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		h.respondError(w, http.StatusBadRequest, "verification token is required")
		return
	}

	user, err := h.service.VerifyEmail(r.Context(), token)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"message":  "Email verified successfully! You can now log in.",
		"username": user.Username,
	})
}

// ResendVerification handles POST /api/v1/registration/resend-verification
// @Summary Resend the verification email
// @Tags registration
// @Accept json
// @Produce json
// @Param request body object{email=string} true "Account email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/v1/registration/resend-verification [post]
func (h *RegistrationHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.ResendVerification(r.Context(), strings.TrimSpace(req.Email)); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "If the email is registered and unverified, a new verification link has been sent.",
	})
}

// CheckAvailability handles POST /api/v1/registration/check-availability
// @Summary Check username and email availability
// @Tags registration
// @Accept json
// @Produce json
// @Param request body models.AvailabilityRequest true "Fields to check"
// @Success 200 {object} models.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/registration/check-availability [post]
func (h *RegistrationHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req models.AvailabilityRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Username == "" && req.Email == "" {
		h.respondError(w, http.StatusBadRequest, "username or email is required")
		return
	}

	resp, err := h.service.CheckAvailability(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to check availability", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to check availability")
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// GetEmailPreferences handles GET /api/v1/registration/email-preferences
// @Summary Get notification preferences
// @Tags registration
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.EmailPreferences
// @Failure 401 {object} map[string]string
// @Router /api/v1/registration/email-preferences [get]
func (h *RegistrationHandler) GetEmailPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	prefs, err := h.service.GetEmailPreferences(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get email preferences", zap.Int("user_id", userID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get email preferences")
		return
	}

	h.respondJSON(w, http.StatusOK, prefs)
}

// UpdateEmailPreferences handles PUT /api/v1/registration/email-preferences
// @Summary Update notification preferences
// @Tags registration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateEmailPreferencesRequest true "Preference changes"
// @Success 200 {object} models.EmailPreferences
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/registration/email-preferences [put]
func (h *RegistrationHandler) UpdateEmailPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.UpdateEmailPreferencesRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	prefs, err := h.service.UpdateEmailPreferences(r.Context(), userID, &req)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, prefs)
}
