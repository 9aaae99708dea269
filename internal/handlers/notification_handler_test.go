package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testServiceKey = "svc-key"

func setupNotificationRouter(svc *mockNotificationService) chi.Router {
	h := NewNotificationHandler(svc, testAuthMiddleware(), testServiceKey, zap.NewNop())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func doServiceJSON(t *testing.T, router chi.Router, path string, payload any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var body bytes.Buffer
	require.NoError(t, json.NewEncoder(&body).Encode(payload))
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Service-Key", testServiceKey)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestWelcomeEmailHandler(t *testing.T) {
	svc := &mockNotificationService{}
	router := setupNotificationRouter(svc)

	w, body := doServiceJSON(t, router, "/notifications/welcome", map[string]any{
		"user_id":  1,
		"username": "creator",
		"email":    "creator@example.com",
	})

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "Welcome email queued", body["message"])
	require.Len(t, svc.welcomes, 1)
	assert.Equal(t, "creator@example.com", svc.welcomes[0].Email)
}

func TestNotificationEndpointsRequireServiceKey(t *testing.T) {
	router := setupNotificationRouter(&mockNotificationService{})

	w, _ := doJSON(t, router, http.MethodPost, "/notifications/welcome", map[string]any{
		"user_id": 1, "username": "creator", "email": "creator@example.com",
	}, "")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMarketplaceUpdateHandler(t *testing.T) {
	t.Run("OptedIn", func(t *testing.T) {
		svc := &mockNotificationService{}
		router := setupNotificationRouter(svc)

		w, _ := doServiceJSON(t, router, "/notifications/marketplace-update", map[string]any{
			"user_id": 1, "email": "creator@example.com", "update_type": "trending",
		})

		assert.Equal(t, http.StatusAccepted, w.Code)
		require.Len(t, svc.marketplace, 1)
		assert.Equal(t, "trending", svc.marketplace[0].UpdateType)
	})

	t.Run("OptedOut", func(t *testing.T) {
		router := setupNotificationRouter(&mockNotificationService{optedOut: true})

		w, body := doServiceJSON(t, router, "/notifications/marketplace-update", map[string]any{
			"user_id": 1, "email": "creator@example.com",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, body["error"], "not opted in")
	})
}

func TestUploadSuccessEmailHandler(t *testing.T) {
	router := setupNotificationRouter(&mockNotificationService{})

	w, _ := doServiceJSON(t, router, "/notifications/upload-success", map[string]any{
		"user_id": 1,
		"email":   "creator@example.com",
		"upload_data": map[string]any{
			"filename":        "movie.mp4",
			"category":        "film",
			"tokens_created":  5005,
			"estimated_value": 50.05,
			"file_size_mb":    50.0,
		},
	})

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestEmailHistoryHandler(t *testing.T) {
	router := setupNotificationRouter(&mockNotificationService{})

	w, body := doJSON(t, router, http.MethodGet, "/notifications/history", nil, accessTokenFor(7, 1))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["count"])

	w, _ = doJSON(t, router, http.MethodGet, "/notifications/history", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
