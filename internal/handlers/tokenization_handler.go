package handlers

import (
	"context"
	"net/http"

	"github.com/bigipmachine/backend/internal/analysis"
	"github.com/bigipmachine/backend/internal/models"
	"github.com/bigipmachine/backend/internal/services"
	"github.com/bigipmachine/backend/internal/tokenize"
	"github.com/bigipmachine/backend/internal/wallet"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TokenizationService is the interface that wraps methods for the tokenization pipeline.
type TokenizationService interface {
	Categories() []tokenize.Category
	DetectCategory(filename, fileExtension, title string) tokenize.ClassificationResult
	AnalyzeContent(ctx context.Context, req *models.AnalyzeContentRequest) (*analysis.OriginalityAnalysis, string, error)
	Tokenize(ctx context.Context, req *models.TokenizeRequest) (*services.TokenizationResult, error)
	FullWorkflow(ctx context.Context, req *models.FullWorkflowRequest) (*services.WorkflowResult, error)
	WalletContents(creatorAddress string) wallet.Contents
}

// TokenizationHandler handles HTTP requests for the tokenization pipeline
type TokenizationHandler struct {
	BaseHandler
	service TokenizationService
}

// NewTokenizationHandler creates a new tokenization handler
func NewTokenizationHandler(svc TokenizationService, logger *zap.Logger) *TokenizationHandler {
	return &TokenizationHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all tokenization handler routes
func (h *TokenizationHandler) RegisterRoutes(r chi.Router) {
	r.Route("/tokenization", func(r chi.Router) {
		r.Get("/categories", h.Categories)
		r.Post("/detect-category", h.DetectCategory)
		r.Post("/analyze", h.Analyze)
		r.Post("/tokenize", h.Tokenize)
		r.Post("/full-workflow", h.FullWorkflow)
		r.Get("/wallet/{creatorAddress}", h.WalletContents)
	})
}

type detectCategoryRequest struct {
	Filename      string `json:"filename" validate:"required"`
	FileExtension string `json:"file_extension,omitempty"`
	Title         string `json:"title,omitempty"`
}

// Categories handles GET /api/v1/tokenization/categories
// @Summary List tokenization categories
// @Description List every content category with its token factor and base rate
// @Tags tokenization
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/v1/tokenization/categories [get]
func (h *TokenizationHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories := h.service.Categories()
	h.respondJSON(w, http.StatusOK, map[string]any{
		"categories": categories,
		"count":      len(categories),
	})
}

// DetectCategory handles POST /api/v1/tokenization/detect-category
// @Summary Detect the content category for a filename
// @Tags tokenization
// @Accept json
// @Produce json
// @Param request body detectCategoryRequest true "Filename to classify"
// @Success 200 {object} tokenize.ClassificationResult
// @Failure 400 {object} map[string]string
// @Router /api/v1/tokenization/detect-category [post]
func (h *TokenizationHandler) DetectCategory(w http.ResponseWriter, r *http.Request) {
	var req detectCategoryRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.service.DetectCategory(req.Filename, req.FileExtension, req.Title)
	h.respondJSON(w, http.StatusOK, result)
}

// Analyze handles POST /api/v1/tokenization/analyze
// @Summary Run originality analysis on uploaded content
// @Tags tokenization
// @Accept json
// @Produce json
// @Param request body models.AnalyzeContentRequest true "Content to analyze"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /api/v1/tokenization/analyze [post]
func (h *TokenizationHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeContentRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, category, err := h.service.AnalyzeContent(r.Context(), &req)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"content_id": req.ContentID,
		"category":   category,
		"analysis":   result,
	})
}

// Tokenize handles POST /api/v1/tokenization/tokenize
// @Summary Allocate tokens for analyzed content
// @Tags tokenization
// @Accept json
// @Produce json
// @Param request body models.TokenizeRequest true "Tokenization parameters"
// @Success 200 {object} services.TokenizationResult
// @Failure 400 {object} map[string]string
// @Router /api/v1/tokenization/tokenize [post]
func (h *TokenizationHandler) Tokenize(w http.ResponseWriter, r *http.Request) {
	var req models.TokenizeRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Tokenize(r.Context(), &req)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// WalletContents handles GET /api/v1/tokenization/wallet/{creatorAddress}
// @Summary Show the token portfolio for a creator wallet address
// @Tags tokenization
// @Produce json
// @Param creatorAddress path string true "Creator wallet address"
// @Success 200 {object} wallet.Contents
// @Router /api/v1/tokenization/wallet/{creatorAddress} [get]
func (h *TokenizationHandler) WalletContents(w http.ResponseWriter, r *http.Request) {
	creatorAddress := chi.URLParam(r, "creatorAddress")

	contents := h.service.WalletContents(creatorAddress)
	h.respondJSON(w, http.StatusOK, map[string]any{"wallet_contents": contents})
}

// FullWorkflow handles POST /api/v1/tokenization/full-workflow
// @Summary Run the full analyze-tokenize-integrate pipeline
// @Tags tokenization
// @Accept json
// @Produce json
// @Param request body models.FullWorkflowRequest true "Workflow parameters"
// @Success 200 {object} services.WorkflowResult
// @Failure 400 {object} map[string]string
// @Router /api/v1/tokenization/full-workflow [post]
func (h *TokenizationHandler) FullWorkflow(w http.ResponseWriter, r *http.Request) {
	var req models.FullWorkflowRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.FullWorkflow(r.Context(), &req)
	if err != nil {
		h.logger.Error("full workflow failed", zap.String("content_id", req.ContentID), zap.Error(err))
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}
