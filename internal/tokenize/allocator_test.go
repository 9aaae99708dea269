package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate_FilmBreakdown(t *testing.T) {
	allocator := NewAllocatorWithSource(FixedFactorSource{})

	allocation := allocator.Allocate("content-1", "film", 90)

	require.NotNil(t, allocation)
	assert.Equal(t, "content-1", allocation.ContentID)
	assert.Equal(t, "film", allocation.Category)
	assert.Equal(t, TotalTokenBudget, allocation.TotalTokens)
	assert.Equal(t, 0.9, allocation.OriginalityFactor)

	// 25% of the budget, unit value 60 * 0.9 * technical_innovation
	// midpoint 0.75.
	cine := allocation.Buckets["cinematography_rights"]
	assert.Equal(t, 250, cine.TokenCount)
	assert.Equal(t, 40.5, cine.UnitValue)
	assert.Equal(t, 0.75, cine.ValueMultiplier)
	assert.Equal(t, 10125.0, cine.TotalValue)
	assert.Equal(t, 250, cine.Available)
	assert.Equal(t, 0, cine.Sold)

	// No bucket rule matches the soundtrack bucket, so only the
	// originality factor applies.
	audio := allocation.Buckets["audio_soundtrack_rights"]
	assert.Equal(t, 200, audio.TokenCount)
	assert.Equal(t, 1.0, audio.ValueMultiplier)
	assert.Equal(t, 40.5, audio.UnitValue)

	distribution := allocation.Buckets["distribution_licensing_rights"]
	assert.Equal(t, 0.675, distribution.ValueMultiplier)
	assert.Equal(t, 18.23, distribution.UnitValue)

	assert.Equal(t, 36022.5, allocation.TotalValue)
}

func TestAllocate_QualityScoresOnlyForSpecializedCategories(t *testing.T) {
	allocator := NewAllocatorWithSource(FixedFactorSource{})

	film := allocator.Allocate("c1", "film", 80)
	require.NotNil(t, film.QualityScores)
	assert.Equal(t, map[string]float64{
		"production_quality_score":   90,
		"narrative_complexity_score": 82.5,
		"technical_innovation_score": 75,
		"commercial_potential_score": 67.5,
	}, film.QualityScores)

	// Photography has no specialized adjustment: uniform multipliers and
	// no analysis block.
	photo := allocator.Allocate("c2", "photography", 80)
	assert.Nil(t, photo.QualityScores)
	for name, bucket := range photo.Buckets {
		assert.Equal(t, 1.0, bucket.ValueMultiplier, "bucket %s", name)
	}
}

func TestAllocate_UnknownCategoryFallsBack(t *testing.T) {
	allocator := NewAllocatorWithSource(FixedFactorSource{})

	allocation := allocator.Allocate("c1", "interpretive_dance", 50)

	require.NotNil(t, allocation)
	assert.Equal(t, DefaultCategory, allocation.Category)
	assert.Len(t, allocation.Buckets, 4)
	assert.Contains(t, allocation.Buckets, "artistic_composition_rights")
}

func TestAllocate_TokenCountsNeverExceedBudget(t *testing.T) {
	allocator := NewAllocator()

	for _, id := range CategoryIDs() {
		allocation := allocator.Allocate("c", id, 75)

		sum := 0
		for _, bucket := range allocation.Buckets {
			sum += bucket.TokenCount
		}
		assert.LessOrEqual(t, sum, TotalTokenBudget, "category %s", id)
	}
}

func TestAllocate_ZeroOriginalityZeroesValues(t *testing.T) {
	allocator := NewAllocator()

	allocation := allocator.Allocate("c1", "music_composition", 0)

	assert.Equal(t, 0.0, allocation.OriginalityFactor)
	assert.Equal(t, 0.0, allocation.TotalValue)
	for name, bucket := range allocation.Buckets {
		assert.Equal(t, 0.0, bucket.UnitValue, "bucket %s", name)
		assert.Equal(t, 0.0, bucket.TotalValue, "bucket %s", name)
		assert.Greater(t, bucket.TokenCount, 0, "bucket %s", name)
	}
}

func TestAllocate_BucketOrderMatchesRightsTable(t *testing.T) {
	allocator := NewAllocatorWithSource(FixedFactorSource{})

	allocation := allocator.Allocate("c1", "video_games", 60)

	category, ok := GetCategory("video_games")
	require.True(t, ok)
	require.Len(t, allocation.BucketOrder, len(category.Rights))
	for i, bucket := range category.Rights {
		assert.Equal(t, bucket.Name, allocation.BucketOrder[i])
	}
}

func TestAllocate_VideoGamesSoundEffectsWeight(t *testing.T) {
	allocator := NewAllocatorWithSource(FixedFactorSource{})

	allocation := allocator.Allocate("c1", "video_games", 100)

	// audio_production midpoint is 0.825; the sound-effects bucket takes
	// it at weight 0.9, the music bucket at full weight.
	music := allocation.Buckets["audio_music_rights"]
	effects := allocation.Buckets["sound_effects_rights"]
	assert.Equal(t, 0.825, music.ValueMultiplier)
	assert.Equal(t, 0.743, effects.ValueMultiplier)
	assert.Less(t, effects.ValueMultiplier, music.ValueMultiplier)
}

func TestAllocate_RandomFactorsStayInRange(t *testing.T) {
	allocator := NewAllocator()

	for range 20 {
		allocation := allocator.Allocate("c1", "screenplay", 85)
		for name, score := range allocation.QualityScores {
			assert.GreaterOrEqual(t, score, 50.0, "dimension %s", name)
			assert.LessOrEqual(t, score, 100.0, "dimension %s", name)
		}
		for name, bucket := range allocation.Buckets {
			assert.GreaterOrEqual(t, bucket.ValueMultiplier, 0.0, "bucket %s", name)
			assert.LessOrEqual(t, bucket.ValueMultiplier, 1.0, "bucket %s", name)
		}
	}
}
