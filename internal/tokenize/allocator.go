package tokenize

import (
	"math"
	"math/rand"
	"strings"
	"time"
)

// TotalTokenBudget is the fixed number of tokens minted per content piece.
const TotalTokenBudget = 1000

// BucketAllocation is the token/value breakdown for one rights bucket.
// Sold always starts at 0: there is no transaction ledger here.
type BucketAllocation struct {
	Description       string  `json:"description"`
	TokenCount        int     `json:"token_count"`
	UnitValue         float64 `json:"token_value_usd"`
	TotalValue        float64 `json:"total_value_usd"`
	Available         int     `json:"available_tokens"`
	Sold              int     `json:"sold_tokens"`
	OriginalityFactor float64 `json:"originality_factor"`
	ValueMultiplier   float64 `json:"value_multiplier"`
}

// TokenAllocation is the full fractional-ownership breakdown for one piece
// of content. Buckets preserve the rights-table order.
type TokenAllocation struct {
	ContentID         string                      `json:"content_id"`
	Category          string                      `json:"content_category"`
	TotalTokens       int                         `json:"total_tokens"`
	Buckets           map[string]BucketAllocation `json:"token_categories"`
	BucketOrder       []string                    `json:"-"`
	TotalValue        float64                     `json:"total_value_usd"`
	OriginalityFactor float64                     `json:"originality_factor"`
	QualityScores     map[string]float64          `json:"category_analysis,omitempty"`
	CreatedAt         int64                       `json:"created_timestamp"`
}

// FactorSource produces the per-dimension quality factors that scale bucket
// unit values. The default source is randomized (demo flavor); tests and
// callers that need reproducible output inject a deterministic one.
type FactorSource interface {
	// Factor returns a value in [min, max].
	Factor(dimension string, min, max float64) float64
}

// randomSource draws uniformly from [min, max] per call.
type randomSource struct {
	rng *rand.Rand
}

func (s randomSource) Factor(_ string, min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

// FixedFactorSource always returns the midpoint of the requested range,
// making allocations reproducible.
type FixedFactorSource struct{}

func (FixedFactorSource) Factor(_ string, min, max float64) float64 {
	return (min + max) / 2
}

// qualityDimension is one content-analysis dimension sampled per allocation
// together with its sampling range.
type qualityDimension struct {
	name     string
	min, max float64
}

// bucketRule multiplies buckets whose name contains the substring by the
// named dimension's factor, additionally scaled by weight.
type bucketRule struct {
	substring string
	dimension string
	weight    float64
}

// categoryAdjustment holds the specialized per-category value adjustments.
// Categories without an entry use a uniform multiplier of 1.0.
type categoryAdjustment struct {
	dimensions []qualityDimension
	rules      []bucketRule
}

var categoryAdjustments = map[string]categoryAdjustment{
	"film": {
		dimensions: []qualityDimension{
			{"production_quality", 0.8, 1.0},
			{"narrative_complexity", 0.7, 0.95},
			{"technical_innovation", 0.6, 0.9},
			{"commercial_potential", 0.5, 0.85},
		},
		rules: []bucketRule{
			{"cinematography", "technical_innovation", 1.0},
			{"narrative", "narrative_complexity", 1.0},
			{"distribution", "commercial_potential", 1.0},
		},
	},
	"animation": {
		dimensions: []qualityDimension{
			{"artistic_style", 0.8, 1.0},
			{"animation_quality", 0.7, 0.95},
			{"character_appeal", 0.6, 0.9},
			{"technical_complexity", 0.5, 0.85},
		},
		rules: []bucketRule{
			{"artistry", "artistic_style", 1.0},
			{"character", "character_appeal", 1.0},
			{"technical", "technical_complexity", 1.0},
		},
	},
	"screenplay": {
		dimensions: []qualityDimension{
			{"dialogue_quality", 0.8, 1.0},
			{"plot_originality", 0.7, 0.95},
			{"character_depth", 0.6, 0.9},
			{"adaptation_potential", 0.5, 0.85},
		},
		rules: []bucketRule{
			{"dialogue", "dialogue_quality", 1.0},
			{"plot", "plot_originality", 1.0},
			{"character", "character_depth", 1.0},
			{"adaptation", "adaptation_potential", 1.0},
		},
	},
	"book_writing": {
		dimensions: []qualityDimension{
			{"prose_quality", 0.8, 1.0},
			{"narrative_innovation", 0.7, 0.95},
			{"world_building", 0.6, 0.9},
			{"market_appeal", 0.5, 0.85},
		},
		rules: []bucketRule{
			{"prose", "prose_quality", 1.0},
			{"plot", "narrative_innovation", 1.0},
			{"world", "world_building", 1.0},
			{"publishing", "market_appeal", 1.0},
		},
	},
	"digital_art": {
		dimensions: []qualityDimension{
			{"artistic_skill", 0.8, 1.0},
			{"concept_originality", 0.7, 0.95},
			{"technical_execution", 0.6, 0.9},
			{"commercial_viability", 0.5, 0.85},
		},
		rules: []bucketRule{
			{"composition", "artistic_skill", 1.0},
			{"concept", "concept_originality", 1.0},
			{"technical", "technical_execution", 1.0},
			{"commercial", "commercial_viability", 1.0},
		},
	},
	"video_games": {
		dimensions: []qualityDimension{
			{"artistic_quality", 0.8, 1.0},
			{"audio_production", 0.7, 0.95},
			{"narrative_depth", 0.6, 0.9},
			{"gameplay_innovation", 0.7, 1.0},
			{"technical_execution", 0.6, 0.95},
			{"commercial_potential", 0.5, 0.85},
		},
		rules: []bucketRule{
			{"visual_art", "artistic_quality", 1.0},
			{"audio_music", "audio_production", 1.0},
			{"sound_effects", "audio_production", 0.9},
			{"narrative", "narrative_depth", 1.0},
			{"gameplay", "gameplay_innovation", 1.0},
			{"code_programming", "technical_execution", 1.0},
			{"distribution", "commercial_potential", 1.0},
		},
	},
}

// Allocator partitions the fixed token budget across a category's rights
// buckets. It is stateless apart from its factor source and never fails:
// unknown categories use the default category's rights structure.
type Allocator struct {
	factors     FactorSource
	totalTokens int
}

// NewAllocator creates an allocator with a randomized factor source.
func NewAllocator() *Allocator {
	return &Allocator{
		factors:     randomSource{rng: rand.New(rand.NewSource(time.Now().UnixNano()))},
		totalTokens: TotalTokenBudget,
	}
}

// NewAllocatorWithSource creates an allocator drawing quality factors from
// the given source.
func NewAllocatorWithSource(factors FactorSource) *Allocator {
	return &Allocator{
		factors:     factors,
		totalTokens: TotalTokenBudget,
	}
}

// Allocate produces the token/value breakdown for one piece of content.
// originalityScore is expected in [0, 100]; callers clamp out-of-range
// values. Unknown categories fall back to the default category.
//
// Per bucket: token_count = floor(budget * percentage / 100), so the bucket
// counts sum to at most the budget, never more. Unit values scale with the
// originality factor and the category's quality-factor rules.
func (a *Allocator) Allocate(contentID, categoryID string, originalityScore float64) *TokenAllocation {
	resolvedID, buckets := rightsStructure(categoryID)
	originalityFactor := originalityScore / 100

	adjustment, specialized := categoryAdjustments[resolvedID]

	// Sample every dimension once per allocation, whether or not a bucket
	// rule consumes it: the full set is reported as the category analysis.
	factors := make(map[string]float64, len(adjustment.dimensions))
	scores := make(map[string]float64, len(adjustment.dimensions))
	for _, dim := range adjustment.dimensions {
		f := a.factors.Factor(dim.name, dim.min, dim.max)
		factors[dim.name] = f
		scores[dim.name+"_score"] = round1(f * 100)
	}

	allocation := &TokenAllocation{
		ContentID:         contentID,
		Category:          resolvedID,
		TotalTokens:       a.totalTokens,
		Buckets:           make(map[string]BucketAllocation, len(buckets)),
		BucketOrder:       make([]string, 0, len(buckets)),
		OriginalityFactor: round3(originalityFactor),
		CreatedAt:         time.Now().Unix(),
	}
	if specialized {
		allocation.QualityScores = scores
	}

	for _, bucket := range buckets {
		tokenCount := int(float64(a.totalTokens) * bucket.Percentage / 100)

		multiplier := 1.0
		if specialized {
			for _, rule := range adjustment.rules {
				if strings.Contains(bucket.Name, rule.substring) {
					multiplier *= factors[rule.dimension] * rule.weight
					break
				}
			}
		}

		unitValue := bucket.BaseValue * originalityFactor * multiplier
		totalValue := unitValue * float64(tokenCount)

		allocation.Buckets[bucket.Name] = BucketAllocation{
			Description:       bucket.Description,
			TokenCount:        tokenCount,
			UnitValue:         round2(unitValue),
			TotalValue:        round2(totalValue),
			Available:         tokenCount,
			Sold:              0,
			OriginalityFactor: round3(originalityFactor),
			ValueMultiplier:   round3(multiplier),
		}
		allocation.BucketOrder = append(allocation.BucketOrder, bucket.Name)
		allocation.TotalValue += round2(totalValue)
	}
	allocation.TotalValue = round2(allocation.TotalValue)

	return allocation
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
