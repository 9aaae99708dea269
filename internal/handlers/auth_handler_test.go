package handlers

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupAuthRouter(svc *mockAuthService) chi.Router {
	h := NewAuthHandler(svc, testAuthMiddleware(), testOptionalAuthMiddleware(), zap.NewNop())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestLoginHandler(t *testing.T) {
	router := setupAuthRouter(&mockAuthService{})

	w, body := doJSON(t, router, http.MethodPost, "/auth/login",
		map[string]any{"username": "creator", "password": "correct horse"}, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "access", body["access_token"])
	assert.Equal(t, "refresh", body["refresh_token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "creator", user["username"])
}

func TestLoginHandlerBadCredentials(t *testing.T) {
	router := setupAuthRouter(&mockAuthService{})

	w, body := doJSON(t, router, http.MethodPost, "/auth/login",
		map[string]any{"username": "creator", "password": "wrong"}, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", body["error"])
}

func TestLoginHandlerMissingPassword(t *testing.T) {
	router := setupAuthRouter(&mockAuthService{})

	w, _ := doJSON(t, router, http.MethodPost, "/auth/login",
		map[string]any{"username": "creator"}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshHandler(t *testing.T) {
	router := setupAuthRouter(&mockAuthService{})

	w, body := doJSON(t, router, http.MethodPost, "/auth/refresh",
		map[string]any{"refresh_token": "refresh"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "access2", body["access_token"])

	w, _ = doJSON(t, router, http.MethodPost, "/auth/refresh",
		map[string]any{"refresh_token": "bogus"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutHandler(t *testing.T) {
	svc := &mockAuthService{}
	router := setupAuthRouter(svc)

	w, _ := doJSON(t, router, http.MethodPost, "/auth/logout", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := doJSON(t, router, http.MethodPost, "/auth/logout", nil, accessTokenFor(7, 1))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logged out successfully", body["message"])
	assert.Equal(t, []int{7}, svc.loggedOut)
}

func TestProfileHandler(t *testing.T) {
	router := setupAuthRouter(&mockAuthService{})

	w, body := doJSON(t, router, http.MethodGet, "/auth/profile", nil, accessTokenFor(42, 1))

	assert.Equal(t, http.StatusOK, w.Code)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), user["id"])
}

func TestProfileHandlerRejectsBadToken(t *testing.T) {
	router := setupAuthRouter(&mockAuthService{})

	w, _ := doJSON(t, router, http.MethodGet, "/auth/profile", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckHandler(t *testing.T) {
	router := setupAuthRouter(&mockAuthService{})

	w, body := doJSON(t, router, http.MethodGet, "/auth/check", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["authenticated"])

	w, body = doJSON(t, router, http.MethodGet, "/auth/check", nil, accessTokenFor(42, 2))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, float64(42), body["user_id"])
	assert.Equal(t, float64(2), body["role"])
}
