// Package tokenize implements the content-category classifier and the
// fractional-ownership token allocator. Both are pure functions over the
// static category tables defined in this file; nothing here touches I/O.
package tokenize

import (
	"slices"

	"github.com/samber/lo"
)

// DefaultCategory is substituted whenever a category cannot be determined.
const DefaultCategory = "digital_art"

// RightsBucket is a named partition of a category's economic rights.
type RightsBucket struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Percentage  float64 `json:"percentage"`
	BaseValue   float64 `json:"base_value"`
}

// Category describes one content category: display strings, the file
// extensions it accepts and the ordered rights buckets its token budget is
// split across. Bucket percentages are designed to approximate 100 but are
// not enforced to sum exactly.
type Category struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	FileTypes   []string       `json:"file_types"`
	Rights      []RightsBucket `json:"rights_structure"`
}

// categories is the static category table, loaded once at process start.
// Order matters: extension fallback picks the first category whose extension
// set contains the uploaded file's extension.
var categories = []Category{
	{
		ID:          "film",
		Name:        "Film & Cinema",
		Description: "Feature films, short films, documentaries, and cinematic content",
		FileTypes:   []string{"mp4", "mov", "avi", "mkv", "wmv"},
		Rights: []RightsBucket{
			{"cinematography_rights", "Visual composition, camera work, and cinematographic elements", 25, 60.0},
			{"audio_soundtrack_rights", "Original music, sound design, and audio production", 20, 45.0},
			{"narrative_story_rights", "Plot, storyline, and narrative structure", 20, 50.0},
			{"character_performance_rights", "Character development and performance elements", 15, 40.0},
			{"production_design_rights", "Set design, costumes, and visual production elements", 10, 35.0},
			{"distribution_licensing_rights", "Rights to distribute and license the film", 10, 30.0},
		},
	},
	{
		ID:          "animation",
		Name:        "Animation & Motion Graphics",
		Description: "Animated content, motion graphics, and digital animation",
		FileTypes:   []string{"mp4", "mov", "gif", "webm"},
		Rights: []RightsBucket{
			{"animation_artistry_rights", "Animation techniques, style, and artistic execution", 30, 55.0},
			{"character_design_rights", "Original character designs and visual development", 25, 50.0},
			{"story_concept_rights", "Narrative concept and storytelling approach", 20, 45.0},
			{"audio_design_rights", "Sound effects, music, and audio synchronization", 15, 35.0},
			{"technical_innovation_rights", "Technical animation methods and innovations", 10, 40.0},
		},
	},
	{
		ID:          "screenplay",
		Name:        "Screenplay Writing",
		Description: "Film scripts, TV scripts, and screenplay content",
		FileTypes:   []string{"pdf", "txt", "doc", "docx", "rtf"},
		Rights: []RightsBucket{
			{"dialogue_rights", "Original dialogue and character voice", 30, 45.0},
			{"plot_structure_rights", "Story structure, plot development, and pacing", 25, 50.0},
			{"character_development_rights", "Character arcs, personalities, and development", 20, 40.0},
			{"scene_description_rights", "Scene setting, action descriptions, and visual elements", 15, 35.0},
			{"adaptation_rights", "Rights to adapt the screenplay for different media", 10, 55.0},
		},
	},
	{
		ID:          "book_writing",
		Name:        "Book & Literature Writing",
		Description: "Novels, non-fiction books, poetry, and literary works",
		FileTypes:   []string{"pdf", "txt", "doc", "docx", "epub"},
		Rights: []RightsBucket{
			{"narrative_prose_rights", "Writing style, prose, and narrative voice", 35, 50.0},
			{"plot_concept_rights", "Original plot, story concept, and structure", 25, 45.0},
			{"character_creation_rights", "Original characters and character development", 20, 40.0},
			{"world_building_rights", "Setting, world creation, and environmental details", 10, 35.0},
			{"publishing_adaptation_rights", "Rights to publish and adapt in different formats", 10, 60.0},
		},
	},
	{
		ID:          "digital_art",
		Name:        "Digital Art & Illustration",
		Description: "Digital paintings, illustrations, and artistic creations",
		FileTypes:   []string{"jpg", "jpeg", "png", "gif", "bmp", "tiff", "webp"},
		Rights: []RightsBucket{
			{"artistic_composition_rights", "Visual composition, color theory, and artistic style", 40, 55.0},
			{"concept_originality_rights", "Original concept, theme, and creative vision", 25, 50.0},
			{"technical_execution_rights", "Digital technique, skill, and technical innovation", 20, 45.0},
			{"commercial_usage_rights", "Rights for commercial use and reproduction", 15, 65.0},
		},
	},
	{
		ID:          "photography",
		Name:        "Photography",
		Description: "Original photographs and photographic art",
		FileTypes:   []string{"jpg", "jpeg", "png", "raw", "tiff"},
		Rights: []RightsBucket{
			{"photographic_composition_rights", "Composition, framing, and photographic vision", 35, 50.0},
			{"subject_capture_rights", "Original subject matter and moment capture", 25, 45.0},
			{"technical_photography_rights", "Camera technique, lighting, and technical execution", 20, 40.0},
			{"post_processing_rights", "Digital editing, color grading, and enhancement", 10, 35.0},
			{"commercial_licensing_rights", "Rights for commercial use and licensing", 10, 70.0},
		},
	},
	{
		ID:          "music_composition",
		Name:        "Music Composition",
		Description: "Original music compositions and musical works",
		FileTypes:   []string{"mp3", "wav", "aac", "flac", "ogg", "m4a"},
		Rights: []RightsBucket{
			{"melody_composition_rights", "Original melody, musical themes, and composition", 30, 55.0},
			{"lyrical_content_rights", "Song lyrics, vocal content, and lyrical creativity", 25, 45.0},
			{"arrangement_production_rights", "Musical arrangement, instrumentation, and production", 20, 50.0},
			{"performance_rights", "Performance and recording rights", 15, 60.0},
			{"synchronization_rights", "Rights for use in media, films, and advertisements", 10, 75.0},
		},
	},
	{
		ID:          "podcast_audio",
		Name:        "Podcast & Audio Content",
		Description: "Podcasts, audio shows, and spoken content",
		FileTypes:   []string{"mp3", "wav", "aac", "m4a"},
		Rights: []RightsBucket{
			{"content_creation_rights", "Original content, topics, and creative approach", 35, 40.0},
			{"host_personality_rights", "Host persona, style, and unique presentation", 25, 35.0},
			{"production_quality_rights", "Audio production, editing, and technical quality", 20, 30.0},
			{"format_concept_rights", "Show format, structure, and conceptual framework", 10, 45.0},
			{"distribution_syndication_rights", "Rights to distribute and syndicate content", 10, 50.0},
		},
	},
	{
		ID:          "software_code",
		Name:        "Software & Code",
		Description: "Software applications, code, and digital tools",
		FileTypes:   []string{"py", "js", "html", "css", "java", "cpp", "zip"},
		Rights: []RightsBucket{
			{"algorithm_logic_rights", "Core algorithms, logic, and computational methods", 35, 60.0},
			{"user_interface_rights", "UI/UX design, interface, and user experience", 25, 45.0},
			{"architecture_design_rights", "Software architecture and system design", 20, 55.0},
			{"innovation_patent_rights", "Technical innovations and patentable methods", 10, 80.0},
			{"commercial_licensing_rights", "Rights to license and commercialize the software", 10, 70.0},
		},
	},
	{
		ID:          "video_games",
		Name:        "Video Games & Interactive Media",
		Description: "Video games, interactive entertainment, and game-related content",
		FileTypes:   []string{"exe", "apk", "ipa", "unity", "unreal", "zip", "rar", "mp4", "mov"},
		Rights: []RightsBucket{
			{"visual_art_assets_rights", "Character designs, environments, textures, UI art, and visual assets", 25, 55.0},
			{"audio_music_rights", "Original soundtrack, background music, and musical compositions", 15, 50.0},
			{"sound_effects_rights", "Sound effects, voice acting, and audio design", 10, 40.0},
			{"narrative_story_rights", "Storyline, dialogue, lore, and narrative content", 15, 45.0},
			{"gameplay_mechanics_rights", "Game mechanics, rules, systems, and interactive design", 20, 60.0},
			{"code_programming_rights", "Source code, programming, and technical implementation", 10, 65.0},
			{"distribution_licensing_rights", "Rights to distribute, publish, and license the game", 5, 75.0},
		},
	},
}

// Categories returns the full category table in declaration order.
func Categories() []Category {
	return categories
}

// CategoryIDs returns the ids of all known categories in declaration order.
func CategoryIDs() []string {
	return lo.Map(categories, func(c Category, _ int) string { return c.ID })
}

// GetCategory looks up a category by id.
func GetCategory(id string) (Category, bool) {
	return lo.Find(categories, func(c Category) bool { return c.ID == id })
}

// CategoryByExtension returns the id of the first category accepting the
// given extension (lowercase, leading dot stripped), or DefaultCategory if
// no category accepts it.
func CategoryByExtension(extension string) string {
	ext := normalizeExtension(extension)
	for _, c := range categories {
		if slices.Contains(c.FileTypes, ext) {
			return c.ID
		}
	}
	return DefaultCategory
}

// ValidateCategorySelection reports whether the selected category accepts
// the given file extension.
func ValidateCategorySelection(categoryID, extension string) bool {
	c, ok := GetCategory(categoryID)
	if !ok {
		return false
	}
	return slices.Contains(c.FileTypes, normalizeExtension(extension))
}

// rightsStructure returns the rights buckets for a category, substituting
// the default category for unknown ids. It never fails.
func rightsStructure(categoryID string) (string, []RightsBucket) {
	if c, ok := GetCategory(categoryID); ok {
		return c.ID, c.Rights
	}
	c, _ := GetCategory(DefaultCategory)
	return c.ID, c.Rights
}
