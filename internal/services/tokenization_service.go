package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/bigipmachine/backend/internal/analysis"
	"github.com/bigipmachine/backend/internal/models"
	"github.com/bigipmachine/backend/internal/repositories"
	"github.com/bigipmachine/backend/internal/tokenize"
	"github.com/bigipmachine/backend/internal/wallet"
	"go.uber.org/zap"
)

// defaultOriginalityScore is used when a tokenize request carries no score.
const defaultOriginalityScore = 90.0

// TokenizationResult bundles the allocation with its simulated on-chain
// registration.
type TokenizationResult struct {
	Allocation *tokenize.TokenAllocation `json:"tokenization"`
	Blockchain wallet.Integration        `json:"blockchain"`
}

// WorkflowResult is the combined output of the full tokenization pipeline.
type WorkflowResult struct {
	ContentID   string                       `json:"content_id"`
	Category    string                       `json:"category"`
	Originality analysis.OriginalityAnalysis `json:"originality_analysis"`
	Allocation  *tokenize.TokenAllocation    `json:"tokenization"`
	Blockchain  wallet.Integration           `json:"blockchain"`
}

// tokenizationService implements TokenizationService
type tokenizationService struct {
	contentRepo ContentRepository
	allocator   *tokenize.Allocator
	engine      *analysis.Engine
	logger      *zap.Logger
}

// NewTokenizationService creates a new tokenization service
func NewTokenizationService(
	contentRepo ContentRepository,
	allocator *tokenize.Allocator,
	engine *analysis.Engine,
	logger *zap.Logger,
) *tokenizationService {
	return &tokenizationService{
		contentRepo: contentRepo,
		allocator:   allocator,
		engine:      engine,
		logger:      logger,
	}
}

// Categories returns the static category table with rights structures.
func (s *tokenizationService) Categories() []tokenize.Category {
	return tokenize.Categories()
}

// DetectCategory classifies content from its filename, extension and title.
func (s *tokenizationService) DetectCategory(filename, fileExtension, title string) tokenize.ClassificationResult {
	return tokenize.Classify(filename, fileExtension, title)
}

// resolveContent fills category, extension and size from the stored content
// record when the request leaves them blank. Requests for never-uploaded
// content IDs still work with explicit fields, matching the stateless
// analyze endpoints.
func (s *tokenizationService) resolveContent(ctx context.Context, contentID, category, extension, title string) (string, string, int64, error) {
	var fileSize int64
	if s.contentRepo != nil {
		content, err := s.contentRepo.GetByID(ctx, contentID)
		if err == nil {
			if category == "" {
				category = content.Category
			}
			if extension == "" {
				extension = content.Extension
			}
			fileSize = content.FileSize
		} else if err != repositories.ErrNotFound {
			return "", "", 0, err
		}
	}

	if category == "" {
		if extension == "" && title == "" {
			return "", "", 0, fmt.Errorf("category or file_extension is required")
		}
		// Full keyword detection: title keywords can outvote the bare
		// extension mapping.
		category = tokenize.Classify("", extension, title).Category
	}
	if _, ok := tokenize.GetCategory(category); !ok {
		return "", "", 0, fmt.Errorf("unknown category: %s", category)
	}

	return category, extension, fileSize, nil
}

// AnalyzeContent produces the originality analysis for uploaded content.
func (s *tokenizationService) AnalyzeContent(ctx context.Context, req *models.AnalyzeContentRequest) (*analysis.OriginalityAnalysis, string, error) {
	category, _, fileSize, err := s.resolveContent(ctx, req.ContentID, req.Category, req.FileExtension, "")
	if err != nil {
		return nil, "", err
	}

	result := s.engine.AnalyzeOriginality(category, fileSize)
	return &result, category, nil
}

// Tokenize allocates rights tokens for content and simulates the on-chain
// registration.
func (s *tokenizationService) Tokenize(ctx context.Context, req *models.TokenizeRequest) (*TokenizationResult, error) {
	category, _, _, err := s.resolveContent(ctx, req.ContentID, req.Category, req.FileExtension, req.Title)
	if err != nil {
		return nil, err
	}

	// The score is caller-supplied and defaults to 90 when absent. An
	// explicit 0 is honored (it zeroes every bucket's value); out-of-range
	// scores are clamped rather than rejected.
	originality := defaultOriginalityScore
	if req.Originality != nil {
		originality = *req.Originality
	}
	originality = math.Min(math.Max(originality, 0), 100)

	allocation := s.allocator.Allocate(req.ContentID, category, originality)
	integration := wallet.NewIntegration(req.ContentID, strings.TrimSpace(req.CreatorAddress), category, allocation.TotalTokens)

	s.logger.Info("content tokenized",
		zap.String("content_id", req.ContentID),
		zap.String("category", category),
		zap.Int("total_tokens", allocation.TotalTokens),
		zap.Float64("total_value", allocation.TotalValue),
	)

	return &TokenizationResult{
		Allocation: allocation,
		Blockchain: integration,
	}, nil
}

// FullWorkflow runs analysis, allocation and wallet registration in one
// call.
func (s *tokenizationService) FullWorkflow(ctx context.Context, req *models.FullWorkflowRequest) (*WorkflowResult, error) {
	category, _, fileSize, err := s.resolveContent(ctx, req.ContentID, req.Category, req.FileExtension, req.Title)
	if err != nil {
		return nil, err
	}

	originality := s.engine.AnalyzeOriginality(category, fileSize)
	allocation := s.allocator.Allocate(req.ContentID, category, originality.OriginalityScore)
	integration := wallet.NewIntegration(req.ContentID, strings.TrimSpace(req.CreatorAddress), category, allocation.TotalTokens)

	return &WorkflowResult{
		ContentID:   req.ContentID,
		Category:    category,
		Originality: originality,
		Allocation:  allocation,
		Blockchain:  integration,
	}, nil
}

// WalletContents returns the demo portfolio for a creator address. No real
// chain exists, so the portfolio is a single sample holding the full token
// budget with value pinned at zero.
func (s *tokenizationService) WalletContents(creatorAddress string) wallet.Contents {
	portfolio := []wallet.PortfolioItem{
		{
			ContentID:           "sample-content-id",
			Title:               "Sample Content",
			Category:            "film",
			TokensOwned:         tokenize.TotalTokenBudget,
			OwnershipPercentage: 100.0,
			EstimatedValueUSD:   0.0,
		},
	}
	return wallet.BuildContents(creatorAddress, portfolio)
}
