package analysis

import (
	"math"
	"strings"
)

// Suggestion is one improvement recommendation.
type Suggestion struct {
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
}

// ImprovementReport groups suggestions with the projected score gain.
type ImprovementReport struct {
	Suggestions          []Suggestion `json:"suggestions"`
	CurrentOriginality   float64      `json:"current_originality"`
	PotentialOriginality float64      `json:"potential_originality"`
	SuggestionsCount     int          `json:"suggestions_count"`
}

// SuggestImprovements recommends changes that would raise the originality
// score. Low scores get a narrative-structure suggestion; mentions of
// characters get a character one; the world-building suggestion always
// applies.
func (e *Engine) SuggestImprovements(description string, originalityScore float64) ImprovementReport {
	var suggestions []Suggestion

	if originalityScore < 75 {
		suggestions = append(suggestions, Suggestion{
			Type:        "Similar narrative structure detected",
			Priority:    "medium",
			Description: "Consider modifying the opening sequence to increase originality",
			Suggestion:  "Start with a unique perspective or unconventional narrative approach",
		})
	}

	if strings.Contains(strings.ToLower(description), "character") {
		suggestions = append(suggestions, Suggestion{
			Type:        "Character development opportunity",
			Priority:    "low",
			Description: "Character elements could be more distinctive",
			Suggestion:  "Consider adding unique character traits or backstory elements",
		})
	}

	suggestions = append(suggestions, Suggestion{
		Type:        "World-building opportunity",
		Priority:    "low",
		Description: "Add unique technological or cultural elements",
		Suggestion:  "Develop distinctive environmental or social structures",
	})

	potential := math.Min(95, originalityScore+e.sampler.Uniform(10, 20))

	return ImprovementReport{
		Suggestions:          suggestions,
		CurrentOriginality:   round0(originalityScore),
		PotentialOriginality: round0(potential),
		SuggestionsCount:     len(suggestions),
	}
}
