package handlers

import (
	"net/http"
	"testing"

	"github.com/bigipmachine/backend/internal/analysis"
	"github.com/bigipmachine/backend/internal/services"
	"github.com/bigipmachine/backend/internal/tokenize"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// The tokenization handler is tested against the real pipeline: with no
// content repository the service works from the category and extension
// supplied in the request.
func setupTokenizationRouter() chi.Router {
	svc := services.NewTokenizationService(
		nil,
		tokenize.NewAllocatorWithSource(tokenize.FixedFactorSource{}),
		analysis.NewEngineWithSampler(analysis.MidpointSampler{}),
		zap.NewNop(),
	)
	h := NewTokenizationHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestCategoriesHandler(t *testing.T) {
	router := setupTokenizationRouter()

	w, body := doJSON(t, router, http.MethodGet, "/tokenization/categories", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	categories, ok := body["categories"].([]any)
	require.True(t, ok)
	assert.Equal(t, float64(len(categories)), body["count"])
	assert.NotEmpty(t, categories)
}

func TestDetectCategoryHandler(t *testing.T) {
	router := setupTokenizationRouter()

	w, body := doJSON(t, router, http.MethodPost, "/tokenization/detect-category",
		map[string]any{"filename": "my_screenplay_script.pdf"}, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "screenplay", body["category"])

	w, _ = doJSON(t, router, http.MethodPost, "/tokenization/detect-category", map[string]any{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeHandler(t *testing.T) {
	router := setupTokenizationRouter()

	w, body := doJSON(t, router, http.MethodPost, "/tokenization/analyze",
		map[string]any{"content_id": "c1", "category": "film"}, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "film", body["category"])
	analysisBody, ok := body["analysis"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, analysisBody, "originality_score")
}

func TestTokenizeHandler(t *testing.T) {
	router := setupTokenizationRouter()

	w, body := doJSON(t, router, http.MethodPost, "/tokenization/tokenize", map[string]any{
		"content_id":        "c1",
		"category":          "film",
		"originality_score": 90,
	}, "")

	assert.Equal(t, http.StatusOK, w.Code)
	tokenization, ok := body["tokenization"].(map[string]any)
	require.True(t, ok)
	assert.NotZero(t, tokenization["total_tokens"])

	blockchain, ok := body["blockchain"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, blockchain)
}

func TestTokenizeHandlerClampsOriginality(t *testing.T) {
	router := setupTokenizationRouter()

	w, body := doJSON(t, router, http.MethodPost, "/tokenization/tokenize", map[string]any{
		"content_id":        "c1",
		"category":          "film",
		"originality_score": 250,
	}, "")

	assert.Equal(t, http.StatusOK, w.Code)
	tokenization, ok := body["tokenization"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), tokenization["originality_factor"])
}

func TestTokenizeHandlerHonorsExplicitZero(t *testing.T) {
	router := setupTokenizationRouter()

	w, body := doJSON(t, router, http.MethodPost, "/tokenization/tokenize", map[string]any{
		"content_id":        "c1",
		"category":          "film",
		"originality_score": 0,
	}, "")

	assert.Equal(t, http.StatusOK, w.Code)
	tokenization, ok := body["tokenization"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(0), tokenization["originality_factor"])
	assert.Equal(t, float64(0), tokenization["total_value_usd"])
}

func TestFullWorkflowHandler(t *testing.T) {
	router := setupTokenizationRouter()

	w, body := doJSON(t, router, http.MethodPost, "/tokenization/full-workflow", map[string]any{
		"content_id":     "c1",
		"category":       "music_composition",
		"file_extension": "mp3",
	}, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c1", body["content_id"])
	assert.Equal(t, "music_composition", body["category"])
	assert.Contains(t, body, "originality_analysis")
	assert.Contains(t, body, "tokenization")
	assert.Contains(t, body, "blockchain")
}

func TestWalletContentsHandler(t *testing.T) {
	router := setupTokenizationRouter()

	w, body := doJSON(t, router, http.MethodGet, "/tokenization/wallet/0xabc123", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	contents, ok := body["wallet_contents"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "0xabc123", contents["creator_address"])
	assert.Equal(t, float64(1000), contents["total_tokens_owned"])
	assert.Equal(t, float64(0), contents["total_value_usd"])

	portfolio, ok := contents["content_portfolio"].([]any)
	require.True(t, ok)
	assert.Len(t, portfolio, 1)
}
