// Package analysis implements the demo content-analysis engine: originality
// scoring, fair-use review, improvement suggestions and protection plans.
// Scores are sampled from realistic ranges rather than computed from the
// content itself; the sampler is injectable so callers can pin results.
package analysis

import (
	"math"
	"math/rand"
	"strings"
	"time"
)

// Sampler produces the random draws behind the simulated scores. Tests
// inject a deterministic one.
type Sampler interface {
	// Uniform returns a value in [min, max].
	Uniform(min, max float64) float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

type randSampler struct {
	rng *rand.Rand
}

func (s randSampler) Uniform(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

func (s randSampler) Intn(n int) int { return s.rng.Intn(n) }

// MidpointSampler always returns range midpoints, making analyses
// reproducible.
type MidpointSampler struct{}

func (MidpointSampler) Uniform(min, max float64) float64 { return (min + max) / 2 }
func (MidpointSampler) Intn(n int) int                   { return 0 }

// Engine runs the simulated analyses.
type Engine struct {
	sampler Sampler
}

// NewEngine creates an engine with a time-seeded random sampler.
func NewEngine() *Engine {
	return &Engine{sampler: randSampler{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}}
}

// NewEngineWithSampler creates an engine drawing from the given sampler.
func NewEngineWithSampler(sampler Sampler) *Engine {
	return &Engine{sampler: sampler}
}

// OriginalityAnalysis is the category-aware originality report attached to
// an upload before tokenization.
type OriginalityAnalysis struct {
	OriginalityScore  float64            `json:"originality_score"`
	UniquenessIndex   float64            `json:"uniqueness_index"`
	CopyrightStatus   string             `json:"copyright_status"`
	AIConfidence      float64            `json:"ai_confidence"`
	ContentType       string             `json:"content_type"`
	ContentCategory   string             `json:"content_category"`
	AnalysisTimestamp int64              `json:"analysis_timestamp"`
	FileSizeMB        float64            `json:"file_size_mb"`
	Breakdown         map[string]float64 `json:"breakdown"`
}

// categoryComplexityBonus shifts the base originality draw per category.
var categoryComplexityBonus = map[string]float64{
	"film":              5,
	"animation":         7,
	"screenplay":        8,
	"book_writing":      6,
	"digital_art":       9,
	"photography":       4,
	"music_composition": 8,
	"podcast_audio":     3,
	"software_code":     10,
	"video_games":       9,
}

// breakdownDimensions lists the per-category score dimensions with their
// sampling ranges. Categories without an entry use the generic set.
var breakdownDimensions = map[string][]dimension{
	"film": {
		{"visual_cinematography", 85, 95},
		{"audio_production", 80, 90},
		{"narrative_structure", 88, 96},
		{"technical_execution", 75, 90},
		{"production_value", 70, 85},
	},
	"animation": {
		{"artistic_style", 85, 95},
		{"animation_technique", 80, 90},
		{"character_design", 88, 96},
		{"technical_innovation", 75, 90},
	},
	"screenplay": {
		{"dialogue_quality", 85, 95},
		{"plot_structure", 80, 90},
		{"character_development", 88, 96},
		{"scene_description", 75, 90},
	},
	"digital_art": {
		{"artistic_composition", 85, 95},
		{"color_theory", 80, 90},
		{"technical_skill", 88, 96},
		{"concept_originality", 75, 90},
	},
	"video_games": {
		{"visual_art_quality", 85, 95},
		{"audio_music_quality", 80, 90},
		{"sound_effects_quality", 75, 88},
		{"narrative_depth", 70, 90},
		{"gameplay_innovation", 80, 95},
		{"technical_execution", 75, 90},
		{"overall_production", 78, 92},
	},
}

var genericDimensions = []dimension{
	{"content_originality", 85, 95},
	{"technical_quality", 80, 90},
	{"creative_execution", 88, 96},
	{"market_potential", 75, 90},
}

type dimension struct {
	name     string
	min, max float64
}

// AnalyzeOriginality produces the originality report for one upload. The
// originality score is drawn from [85, 98] shifted by the category's
// complexity bonus and capped at 98.
func (e *Engine) AnalyzeOriginality(category string, fileSizeBytes int64) OriginalityAnalysis {
	base := e.sampler.Uniform(85, 98)
	adjusted := math.Min(98, base+categoryComplexityBonus[category])

	dims, ok := breakdownDimensions[category]
	if !ok {
		dims = genericDimensions
	}
	breakdown := make(map[string]float64, len(dims))
	for _, d := range dims {
		breakdown[d.name] = round1(e.sampler.Uniform(d.min, d.max))
	}

	contentType := category
	if contentType == "" {
		contentType = "unknown"
	}

	return OriginalityAnalysis{
		OriginalityScore:  round1(adjusted),
		UniquenessIndex:   round1(e.sampler.Uniform(80, 95)),
		CopyrightStatus:   "Original Content",
		AIConfidence:      round1(e.sampler.Uniform(90, 99)),
		ContentType:       contentType,
		ContentCategory:   category,
		AnalysisTimestamp: time.Now().Unix(),
		FileSizeMB:        round2(float64(fileSizeBytes) / 1024 / 1024),
		Breakdown:         breakdown,
	}
}

// ContentAnalysis is the lightweight classification returned by the
// content-analysis endpoint.
type ContentAnalysis struct {
	Confidence             float64  `json:"confidence"`
	ContentType            string   `json:"content_type"`
	CategoryClassification string   `json:"category_classification"`
	CreativeElements       []string `json:"creative_elements"`
	EstimatedValue         float64  `json:"estimated_value"`
	AnalysisTimestamp      int64    `json:"analysis_timestamp"`
}

var contentTypesByCategory = map[string][]string{
	"film":              {"Short Film", "Documentary", "Feature Film", "Music Video"},
	"music_composition": {"Original Song", "Instrumental", "Album", "Sound Design"},
	"screenplay":        {"Creative Writing", "Screenplay", "Teleplay", "Stage Play"},
	"book_writing":      {"Novel", "Short Story", "Poetry", "Non-Fiction"},
	"digital_art":       {"Digital Art", "Illustration", "Concept Art", "Photography"},
	"animation":         {"2D Animation", "3D Animation", "Motion Graphics", "VFX"},
	"video_games":       {"Game Concept", "Game Art", "Game Music", "Interactive Media"},
}

var creativeElements = []string{
	"Original narrative structure",
	"Unique character development",
	"Innovative visual concepts",
	"Creative dialogue patterns",
	"Distinctive artistic style",
	"Novel storytelling approach",
	"Unique world-building elements",
	"Original musical composition",
}

// AnalyzeContent classifies a described piece of content and estimates its
// value. Titles mentioning a feature or album double the base estimate.
func (e *Engine) AnalyzeContent(description, category, title string) ContentAnalysis {
	types, ok := contentTypesByCategory[category]
	if !ok {
		types = []string{"Creative Content"}
	}
	contentType := types[e.sampler.Intn(len(types))]

	count := 3 + e.sampler.Intn(3)
	elements := make([]string, 0, count)
	taken := make(map[int]bool, count)
	for len(elements) < count {
		i := e.sampler.Intn(len(creativeElements))
		if taken[i] {
			// Midpoint samplers repeat; walk forward to the next free slot.
			for taken[i] {
				i = (i + 1) % len(creativeElements)
			}
		}
		taken[i] = true
		elements = append(elements, creativeElements[i])
	}

	value := e.sampler.Uniform(1500, 5000)
	lowerTitle := strings.ToLower(title)
	if strings.Contains(lowerTitle, "feature") || strings.Contains(lowerTitle, "album") {
		value *= 2
	}

	return ContentAnalysis{
		Confidence:             round1(e.sampler.Uniform(90, 98)),
		ContentType:            contentType,
		CategoryClassification: contentType + " - " + titleCase(category) + " Content",
		CreativeElements:       elements,
		EstimatedValue:         round2(value),
		AnalysisTimestamp:      time.Now().Unix(),
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// titleCase uppercases the first letter of each underscore-separated word.
func titleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
