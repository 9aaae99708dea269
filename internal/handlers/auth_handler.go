package handlers

import (
	"context"
	"net/http"

	authmw "github.com/bigipmachine/backend/internal/auth/middleware"
	"github.com/bigipmachine/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*models.LoginResponse, error)
	Logout(ctx context.Context, userID int) error
	GetProfile(ctx context.Context, userID int) (*models.User, error)
}

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	BaseHandler
	service        AuthService
	authMiddleware func(http.Handler) http.Handler
	optionalAuth   func(http.Handler) http.Handler
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc AuthService, authMiddleware, optionalAuth func(http.Handler) http.Handler, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:        svc,
		authMiddleware: authMiddleware,
		optionalAuth:   optionalAuth,
		BaseHandler:    BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(h.optionalAuth)
			r.Get("/check", h.Check)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware)
			r.Post("/logout", h.Logout)
			r.Get("/profile", h.Profile)
		})
	})
}

// Login handles POST /api/v1/auth/login
// @Summary Log in
// @Description Authenticate with username (or email) and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// Refresh handles POST /api/v1/auth/refresh
// @Summary Refresh the token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RefreshRequest true "Refresh token"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// Check handles GET /api/v1/auth/check
// @Summary Report whether the request carries a valid access token
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/v1/auth/check [get]
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.respondJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	resp := map[string]any{
		"authenticated": true,
		"user_id":       userID,
	}
	if role, ok := authmw.GetRole(r.Context()); ok {
		resp["role"] = role
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// Logout handles POST /api/v1/auth/logout
// @Summary Log out
// @Description Revoke the stored refresh token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), userID); err != nil {
		h.logger.Error("failed to log out", zap.Int("user_id", userID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to log out")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Profile handles GET /api/v1/auth/profile
// @Summary Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get profile", zap.Int("user_id", userID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"user": user})
}
