package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_KeywordAnalysis(t *testing.T) {
	tests := []struct {
		name             string
		filename         string
		extension        string
		title            string
		expectedCategory string
		expectedKeywords []string
	}{
		{
			name:             "screenplay with matching extension and keywords",
			filename:         "my_screenplay_draft.pdf",
			extension:        "pdf",
			title:            "Act One Dialogue",
			expectedCategory: "screenplay",
			expectedKeywords: []string{"screenplay", "dialogue", "act"},
		},
		{
			name:             "film trailer",
			filename:         "feature_film_trailer.mp4",
			extension:        "mp4",
			title:            "The Last Documentary",
			expectedCategory: "film",
			expectedKeywords: []string{"film", "documentary", "feature", "trailer"},
		},
		{
			name:             "music track",
			filename:         "demo_track_v2.mp3",
			extension:        "mp3",
			title:            "Original Song Melody",
			expectedCategory: "music_composition",
			expectedKeywords: []string{"song", "track", "melody"},
		},
		{
			name:             "podcast episode",
			filename:         "podcast_episode_12.mp3",
			extension:        "mp3",
			title:            "Interview Show",
			expectedCategory: "podcast_audio",
			expectedKeywords: []string{"podcast", "episode", "interview", "show"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.filename, tt.extension, tt.title)

			assert.Equal(t, tt.expectedCategory, result.Category)
			assert.Equal(t, MethodKeywordAnalysis, result.Method)
			assert.GreaterOrEqual(t, result.Confidence, 0.3)
			assert.ElementsMatch(t, tt.expectedKeywords, result.DetectedKeywords)
		})
	}
}

func TestClassify_ExtensionContributesBaseScore(t *testing.T) {
	// Any accepted extension alone must contribute at least 0.4 to its
	// category's score, even with no keywords in the name or title.
	for categoryID, profile := range keywordProfiles {
		for _, ext := range profile.fileTypes {
			result := Classify("zzqqxy", ext, "")
			assert.GreaterOrEqual(t, result.AllScores[categoryID], 0.4,
				"category %s extension %s", categoryID, ext)
		}
	}
}

func TestClassify_DefaultFallback(t *testing.T) {
	result := Classify("clip.xyz", "xyz", "")

	assert.Equal(t, DefaultCategory, result.Category)
	assert.Equal(t, 0.75, result.Confidence)
	assert.Equal(t, MethodDefaultFallback, result.Method)
	assert.Empty(t, result.DetectedKeywords)
}

func TestClassify_ExtensionFallback(t *testing.T) {
	// "webp" is accepted by the digital_art rights table but carries no
	// keyword profile score, so the classifier trusts the extension table.
	result := Classify("zzqqxy", "webp", "")

	assert.Equal(t, "digital_art", result.Category)
	assert.Equal(t, 0.85, result.Confidence)
	assert.Equal(t, MethodExtensionFallback, result.Method)
}

func TestClassify_ContradictionPenalty(t *testing.T) {
	// Screenplay keywords on a video file: strong contradiction, so the
	// screenplay score is scaled down and the extension's category wins.
	onVideo := Classify("screenplay_dialogue_treatment", "mp4", "")
	onText := Classify("screenplay_dialogue_treatment", "pdf", "")

	require.Contains(t, onVideo.AllScores, "screenplay")
	assert.Less(t, onVideo.AllScores["screenplay"], onText.AllScores["screenplay"])
	assert.Equal(t, "film", onVideo.Category)
	assert.Equal(t, "screenplay", onText.Category)
}

func TestClassify_ConfidenceBounds(t *testing.T) {
	inputs := []struct{ filename, ext, title string }{
		{"", "", ""},
		{"movie_film_cinema_documentary_feature_trailer.mp4", "mp4", "short film scene"},
		{"photo.jpg", "jpg", "portrait shot"},
		{"x", "xyz", "y"},
		{"game_level.unity", "unity", "gameplay character"},
	}

	for _, in := range inputs {
		result := Classify(in.filename, in.ext, in.title)
		assert.GreaterOrEqual(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 0.98)
		for id, score := range result.AllScores {
			assert.GreaterOrEqual(t, score, 0.0, "score for %s", id)
			assert.LessOrEqual(t, score, 1.0, "score for %s", id)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	first := Classify("my_screenplay_draft.pdf", "pdf", "Act One Dialogue")
	for range 5 {
		assert.Equal(t, first, Classify("my_screenplay_draft.pdf", "pdf", "Act One Dialogue"))
	}
}

func TestClassify_NormalizesExtension(t *testing.T) {
	withDot := Classify("artwork", ".PNG", "illustration")
	withoutDot := Classify("artwork", "png", "illustration")

	assert.Equal(t, withoutDot, withDot)
}

func TestCategoryByExtension(t *testing.T) {
	tests := []struct {
		name      string
		extension string
		expected  string
	}{
		{"film extension", "mp4", "film"},
		{"leading dot stripped", ".mp4", "film"},
		{"uppercase normalized", "PDF", "screenplay"},
		{"image maps to digital art", "png", "digital_art"},
		{"unknown falls back to default", "xyz", DefaultCategory},
		{"empty falls back to default", "", DefaultCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategoryByExtension(tt.extension))
		})
	}
}

func TestValidateCategorySelection(t *testing.T) {
	assert.True(t, ValidateCategorySelection("film", "mp4"))
	assert.True(t, ValidateCategorySelection("screenplay", ".PDF"))
	assert.False(t, ValidateCategorySelection("film", "pdf"))
	assert.False(t, ValidateCategorySelection("unknown_category", "mp4"))
}

func TestKeywordProfilesMatchCategoryTable(t *testing.T) {
	// Every category must carry a keyword profile, and vice versa.
	ids := CategoryIDs()
	require.Len(t, keywordProfiles, len(ids))
	for _, id := range ids {
		assert.Contains(t, keywordProfiles, id)
	}
	assert.ElementsMatch(t, ids, profileOrder)
}
