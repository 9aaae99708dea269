package tokenize

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// DetectionMethod identifies how a classification result was produced.
type DetectionMethod string

const (
	MethodKeywordAnalysis   DetectionMethod = "keyword_analysis"
	MethodExtensionFallback DetectionMethod = "file_extension_fallback"
	MethodDefaultFallback   DetectionMethod = "default_fallback"
)

// ClassificationResult is the outcome of classifying one upload. It is
// computed per upload event and not persisted here.
type ClassificationResult struct {
	Category         string             `json:"category"`
	Confidence       float64            `json:"confidence"`
	Method           DetectionMethod    `json:"method"`
	DetectedKeywords []string           `json:"detected_keywords"`
	AllScores        map[string]float64 `json:"all_scores"`
}

// keywordProfile holds the keyword table used to score one category against
// the combined filename+title text. FileTypes may be wider than the
// category's accepted upload extensions: it lists extensions that count as
// a non-contradictory match for scoring purposes.
type keywordProfile struct {
	keywords        []string
	fileTypes       []string
	confidenceBoost float64
}

// keywordProfiles is keyed by the same category ids as the rights tables.
var keywordProfiles = map[string]keywordProfile{
	"film": {
		keywords:        []string{"movie", "film", "cinema", "documentary", "feature", "short film", "trailer", "scene"},
		fileTypes:       []string{"mp4", "mov", "avi", "mkv", "wmv", "m4v", "flv"},
		confidenceBoost: 0.15,
	},
	"screenplay": {
		keywords:        []string{"screenplay", "script", "dialogue", "scene", "act", "fade in", "fade out", "treatment"},
		fileTypes:       []string{"pdf", "txt", "doc", "docx", "rtf", "fountain"},
		confidenceBoost: 0.20,
	},
	"music_composition": {
		keywords:        []string{"song", "music", "track", "album", "beat", "melody", "audio", "sound"},
		fileTypes:       []string{"mp3", "wav", "flac", "aac", "m4a", "ogg"},
		confidenceBoost: 0.18,
	},
	"book_writing": {
		keywords:        []string{"book", "novel", "chapter", "story", "manuscript", "literature", "writing", "text"},
		fileTypes:       []string{"pdf", "txt", "doc", "docx", "epub", "rtf"},
		confidenceBoost: 0.16,
	},
	"digital_art": {
		keywords:        []string{"art", "design", "illustration", "graphic", "visual", "artwork", "drawing", "painting"},
		fileTypes:       []string{"jpg", "jpeg", "png", "gif", "bmp", "svg", "psd", "ai"},
		confidenceBoost: 0.14,
	},
	"photography": {
		keywords:        []string{"photo", "photograph", "image", "picture", "shot", "portrait", "landscape"},
		fileTypes:       []string{"jpg", "jpeg", "png", "raw", "tiff", "cr2", "nef"},
		confidenceBoost: 0.17,
	},
	"animation": {
		keywords:        []string{"animation", "animated", "cartoon", "motion", "frame", "tween", "3d", "2d"},
		fileTypes:       []string{"mp4", "mov", "gif", "avi", "mkv", "swf"},
		confidenceBoost: 0.19,
	},
	"video_games": {
		keywords:        []string{"game", "gaming", "level", "character", "gameplay", "interactive", "unity", "unreal"},
		fileTypes:       []string{"exe", "apk", "ipa", "unity", "unreal", "zip"},
		confidenceBoost: 0.13,
	},
	"software_code": {
		keywords:        []string{"app", "software", "program", "code", "application", "tool", "utility"},
		fileTypes:       []string{"exe", "dmg", "apk", "ipa", "zip", "tar", "gz"},
		confidenceBoost: 0.12,
	},
	"podcast_audio": {
		keywords:        []string{"podcast", "episode", "interview", "show", "talk", "radio"},
		fileTypes:       []string{"mp3", "wav", "aac", "m4a"},
		confidenceBoost: 0.15,
	},
}

// profileOrder fixes the scoring iteration order; on equal scores the
// earlier category wins.
var profileOrder = []string{
	"film", "screenplay", "music_composition", "book_writing", "digital_art",
	"photography", "animation", "video_games", "software_code", "podcast_audio",
}

// Media classes used to detect strong keyword/extension contradictions.
var (
	videoExtensions = []string{"mp4", "mov", "avi", "mkv", "wmv"}
	textExtensions  = []string{"pdf", "txt", "doc", "docx"}
	audioExtensions = []string{"mp3", "wav", "flac", "aac"}
)

// stronglyContradicts reports whether the extension's media class rules out
// the category keyword match outright (e.g. screenplay keywords on a video
// file), as opposed to a mild mismatch.
func stronglyContradicts(categoryID, ext string) bool {
	switch {
	case slices.Contains(videoExtensions, ext):
		return categoryID == "screenplay" || categoryID == "book_writing"
	case slices.Contains(textExtensions, ext):
		return categoryID == "film" || categoryID == "music_composition" || categoryID == "animation"
	case slices.Contains(audioExtensions, ext):
		return categoryID == "film" || categoryID == "digital_art" || categoryID == "photography"
	}
	return false
}

// Classify proposes a content category from a filename, a file extension and
// a content title. It is pure and deterministic: the same inputs always
// produce the same result, and every input shape has a defined fallback.
//
// Scoring per category: +0.4 for an extension match, +(0.1 + 0.01*len) per
// keyword found as a substring of the lowercased filename+title text, plus
// the category's confidence boost and a match-count bonus capped at 0.2 when
// any keyword matched. Keyword matches on a non-matching extension are
// penalized (x0.3 for a strong media-class contradiction, x0.7 otherwise).
// Scores are clamped to [0, 1].
func Classify(filename, fileExtension, title string) ClassificationResult {
	ext := normalizeExtension(fileExtension)
	searchText := strings.TrimSpace(strings.ToLower(filename) + " " + strings.ToLower(title))

	scores := make(map[string]float64, len(keywordProfiles))
	for _, categoryID := range profileOrder {
		profile := keywordProfiles[categoryID]
		score := 0.0

		extensionMatch := slices.Contains(profile.fileTypes, ext)
		if extensionMatch {
			score += 0.4
		}

		matches := 0
		for _, keyword := range profile.keywords {
			if strings.Contains(searchText, keyword) {
				matches++
				score += 0.1 + float64(len(keyword))*0.01
			}
		}

		if matches > 0 {
			score += profile.confidenceBoost
			score += min(float64(matches)*0.05, 0.2)

			if !extensionMatch {
				if stronglyContradicts(categoryID, ext) {
					score *= 0.3
				} else {
					score *= 0.7
				}
			}
		}

		scores[categoryID] = min(score, 1.0)
	}

	best := profileOrder[0]
	for _, categoryID := range profileOrder[1:] {
		if scores[categoryID] > scores[best] {
			best = categoryID
		}
	}
	winningScore := scores[best]

	// Nothing matched at all: neither keywords nor an extension any
	// category table knows about.
	if winningScore == 0 && !extensionKnown(ext) {
		return ClassificationResult{
			Category:         DefaultCategory,
			Confidence:       0.75,
			Method:           MethodDefaultFallback,
			DetectedKeywords: []string{},
			AllScores:        scores,
		}
	}

	// Too weak for keyword analysis: trust the extension table alone.
	if winningScore < 0.3 {
		return ClassificationResult{
			Category:         CategoryByExtension(ext),
			Confidence:       0.85,
			Method:           MethodExtensionFallback,
			DetectedKeywords: []string{},
			AllScores:        scores,
		}
	}

	detected := lo.Filter(keywordProfiles[best].keywords, func(kw string, _ int) bool {
		return strings.Contains(searchText, kw)
	})

	return ClassificationResult{
		Category:         best,
		Confidence:       min(winningScore+0.05, 0.98),
		Method:           MethodKeywordAnalysis,
		DetectedKeywords: detected,
		AllScores:        scores,
	}
}

// extensionKnown reports whether any category's accepted extension set
// contains ext.
func extensionKnown(ext string) bool {
	for _, c := range categories {
		if slices.Contains(c.FileTypes, ext) {
			return true
		}
	}
	return false
}

// normalizeExtension lowercases an extension and strips any leading dot.
func normalizeExtension(extension string) string {
	return strings.TrimPrefix(strings.ToLower(extension), ".")
}
