package core

// Category identifies one of the eight supported generation modes. The set is
// closed; the dispatcher treats any value outside it as a programming error.
type Category string

const (
	// CategoryPresentation generates slide-oriented presentation outlines.
	CategoryPresentation Category = "presentation"
	// CategoryResearch generates structured academic research content.
	CategoryResearch Category = "research"
	// CategoryThesis generates in-depth thesis analysis.
	CategoryThesis Category = "thesis"
	// CategoryArticle generates general-audience articles.
	CategoryArticle Category = "article"
	// CategoryIndependent generates independent-study overviews.
	CategoryIndependent Category = "independent-study"
	// CategorySearch generates retrieval-augmented answers with citations.
	CategorySearch Category = "search"
	// CategorySpeech synthesizes spoken audio from prompt text.
	CategorySpeech Category = "speech"
	// CategoryVideo generates video through a long-running operation.
	CategoryVideo Category = "video"
)

// Categories returns every supported category in display order.
func Categories() []Category {
	return []Category{
		CategoryPresentation,
		CategoryResearch,
		CategoryThesis,
		CategoryArticle,
		CategoryIndependent,
		CategorySearch,
		CategorySpeech,
		CategoryVideo,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryPresentation, CategoryResearch, CategoryThesis, CategoryArticle,
		CategoryIndependent, CategorySearch, CategorySpeech, CategoryVideo:
		return true
	}
	return false
}

// Option keys recognized by at least one category. Keys outside a category's
// recognized set are silently dropped when building instructions.
const (
	// OptionSlides is the approximate slide count for presentations.
	OptionSlides = "slides"
	// OptionTone selects the writing tone for text categories.
	OptionTone = "tone"
	// OptionLength selects the target length for text categories.
	OptionLength = "length"
	// OptionVoice selects the prebuilt voice profile for speech synthesis.
	OptionVoice = "voice"
	// OptionAspectRatio selects the video aspect ratio ("16:9" or "9:16").
	OptionAspectRatio = "aspectRatio"
)

// RecognizedOptions returns the option keys the category understands.
func (c Category) RecognizedOptions() []string {
	switch c {
	case CategoryPresentation:
		return []string{OptionSlides}
	case CategoryResearch, CategoryThesis, CategoryArticle, CategoryIndependent:
		return []string{OptionTone, OptionLength}
	case CategorySpeech:
		return []string{OptionVoice}
	case CategoryVideo:
		return []string{OptionAspectRatio}
	}
	return nil
}

// Recognizes reports whether the category understands the given option key.
func (c Category) Recognizes(key string) bool {
	for _, k := range c.RecognizedOptions() {
		if k == key {
			return true
		}
	}
	return false
}
