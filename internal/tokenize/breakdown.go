package tokenize

import "fmt"

// UploadBreakdown summarizes the token grant presented to a creator right
// after an upload. Unlike TokenAllocation this is a headline number, not a
// per-bucket split: the total varies with category and file size.
type UploadBreakdown struct {
	TotalTokens        int     `json:"total_tokens"`
	BaseTokens         int     `json:"base_tokens"`
	CategoryBonus      int     `json:"category_bonus"`
	SizeBonus          int     `json:"size_bonus"`
	QualityBonus       int     `json:"quality_bonus"`
	Category           string  `json:"category"`
	CategoryMultiplier float64 `json:"category_multiplier"`
	FileSizeMB         float64 `json:"file_size_mb"`
	EstimatedValue     float64 `json:"estimated_value"`
}

// categoryTokenMultipliers weight the base token grant per category.
var categoryTokenMultipliers = map[string]float64{
	"film":              5.0,
	"animation":         4.5,
	"screenplay":        3.0,
	"book_writing":      3.5,
	"digital_art":       2.5,
	"photography":       2.0,
	"music_composition": 3.0,
	"podcast_audio":     2.5,
	"software_code":     4.0,
	"video_games":       4.5,
}

// successMessages are the per-category congratulation headlines.
var successMessages = map[string]string{
	"film":              "Your cinematic masterpiece has been successfully tokenized!",
	"animation":         "Your animated creation is now ready for the blockchain!",
	"screenplay":        "Your screenplay has been professionally tokenized!",
	"book_writing":      "Your literary work is now blockchain-ready!",
	"digital_art":       "Your digital artwork has been successfully tokenized!",
	"photography":       "Your photograph is now part of the IP marketplace!",
	"music_composition": "Your musical composition has been tokenized!",
	"podcast_audio":     "Your podcast content is now blockchain-ready!",
	"software_code":     "Your software has been successfully tokenized!",
	"video_games":       "Your game content is now ready for licensing!",
}

// CalculateUploadBreakdown computes the headline token grant for an upload:
// base tokens weighted by the category multiplier, a size bonus of 0.1
// tokens per MB capped at 500, and a quality multiplier for large files.
// Unknown categories use a 2.0 multiplier.
func CalculateUploadBreakdown(categoryID string, fileSizeMB float64) UploadBreakdown {
	const baseTokens = 1000

	categoryMultiplier, ok := categoryTokenMultipliers[categoryID]
	if !ok {
		categoryMultiplier = 2.0
	}

	sizeBonus := min(fileSizeMB*0.1, 500)

	qualityMultiplier := 1.0
	if fileSizeMB > 1000 {
		qualityMultiplier = 1.5
	} else if fileSizeMB > 100 {
		qualityMultiplier = 1.2
	}

	totalTokens := int((baseTokens*categoryMultiplier + sizeBonus) * qualityMultiplier)

	return UploadBreakdown{
		TotalTokens:        totalTokens,
		BaseTokens:         baseTokens,
		CategoryBonus:      int(baseTokens * (categoryMultiplier - 1)),
		SizeBonus:          int(sizeBonus),
		QualityBonus:       int(float64(totalTokens) * (qualityMultiplier - 1)),
		Category:           categoryID,
		CategoryMultiplier: categoryMultiplier,
		FileSizeMB:         fileSizeMB,
		EstimatedValue:     round2(float64(totalTokens) * 0.01),
	}
}

// SuccessMessage builds the personalized headline shown after an upload.
func SuccessMessage(filename, categoryID string, breakdown UploadBreakdown) map[string]any {
	headline, ok := successMessages[categoryID]
	if !ok {
		headline = "Your intellectual property has been successfully tokenized!"
	}

	return map[string]any{
		"title":           "Congratulations!",
		"message":         headline,
		"subtitle":        fmt.Sprintf("%q is now protected and ready for fractional ownership.", filename),
		"tokens_created":  breakdown.TotalTokens,
		"estimated_value": fmt.Sprintf("$%.2f", breakdown.EstimatedValue),
	}
}
