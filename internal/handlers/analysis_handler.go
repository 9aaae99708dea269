package handlers

import (
	"net/http"

	"github.com/bigipmachine/backend/internal/analysis"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AnalysisHandler handles HTTP requests for the AI analysis endpoints
type AnalysisHandler struct {
	BaseHandler
	engine *analysis.Engine
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(engine *analysis.Engine, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		engine:      engine,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all analysis handler routes
func (h *AnalysisHandler) RegisterRoutes(r chi.Router) {
	r.Route("/analysis", func(r chi.Router) {
		r.Post("/content-analysis", h.ContentAnalysis)
		r.Post("/originality-review", h.OriginalityReview)
		r.Post("/improvement-suggestions", h.ImprovementSuggestions)
		r.Get("/protection-plans", h.ProtectionPlans)
	})
}

type contentAnalysisRequest struct {
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Title       string `json:"title,omitempty"`
}

type originalityReviewRequest struct {
	ContentType string `json:"content_type,omitempty"`
}

type improvementSuggestionsRequest struct {
	Description      string  `json:"description,omitempty"`
	OriginalityScore float64 `json:"originality_score,omitempty"`
}

// ContentAnalysis handles POST /api/v1/analysis/content-analysis
// @Summary Analyze content characteristics
// @Description Classify the content type and estimate market value from the description
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body contentAnalysisRequest true "Content description"
// @Success 200 {object} analysis.ContentAnalysis
// @Failure 400 {object} map[string]string
// @Router /api/v1/analysis/content-analysis [post]
func (h *AnalysisHandler) ContentAnalysis(w http.ResponseWriter, r *http.Request) {
	var req contentAnalysisRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.engine.AnalyzeContent(req.Description, req.Category, req.Title)
	h.respondJSON(w, http.StatusOK, map[string]any{"analysis": result})
}

// OriginalityReview handles POST /api/v1/analysis/originality-review
// @Summary Run the staged originality review
// @Description Produce the multi-stage review payload with fair use percentage and similar content
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body originalityReviewRequest true "Content type"
// @Success 200 {object} analysis.OriginalityReview
// @Failure 400 {object} map[string]string
// @Router /api/v1/analysis/originality-review [post]
func (h *AnalysisHandler) OriginalityReview(w http.ResponseWriter, r *http.Request) {
	var req originalityReviewRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.engine.ReviewOriginality(req.ContentType)
	h.respondJSON(w, http.StatusOK, result)
}

// ImprovementSuggestions handles POST /api/v1/analysis/improvement-suggestions
// @Summary Suggest originality improvements
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body improvementSuggestionsRequest true "Current analysis state"
// @Success 200 {object} analysis.ImprovementReport
// @Failure 400 {object} map[string]string
// @Router /api/v1/analysis/improvement-suggestions [post]
func (h *AnalysisHandler) ImprovementSuggestions(w http.ResponseWriter, r *http.Request) {
	var req improvementSuggestionsRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.engine.SuggestImprovements(req.Description, req.OriginalityScore)
	h.respondJSON(w, http.StatusOK, result)
}

// ProtectionPlans handles GET /api/v1/analysis/protection-plans
// @Summary List IP protection plans
// @Tags analysis
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/v1/analysis/protection-plans [get]
func (h *AnalysisHandler) ProtectionPlans(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]any{
		"plans":               analysis.ProtectionPlans(),
		"additional_services": analysis.AdditionalServices(),
	})
}
