package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.Valid(), "category %s should be valid", c)
	}
	assert.False(t, Category("podcast").Valid())
}

func TestCategoryRecognizedOptions(t *testing.T) {
	assert.Equal(t, []string{OptionSlides}, CategoryPresentation.RecognizedOptions())
	assert.Equal(t, []string{OptionTone, OptionLength}, CategoryResearch.RecognizedOptions())
	assert.Equal(t, []string{OptionVoice}, CategorySpeech.RecognizedOptions())
	assert.Equal(t, []string{OptionAspectRatio}, CategoryVideo.RecognizedOptions())
	assert.Empty(t, CategorySearch.RecognizedOptions())

	assert.True(t, CategoryPresentation.Recognizes(OptionSlides))
	assert.False(t, CategoryPresentation.Recognizes(OptionVoice))
}

func TestRequestEmpty(t *testing.T) {
	assert.True(t, NewRequest(CategoryArticle, "   ", nil, nil).Empty())
	assert.False(t, NewRequest(CategoryArticle, "hello", nil, nil).Empty())

	att := Attachment{Name: "a.png", MIMEType: "image/png", Data: []byte{1}}
	assert.False(t, NewRequest(CategoryArticle, "", []Attachment{att}, nil).Empty())
}

func TestRequestOptionsCopied(t *testing.T) {
	opts := map[string]any{OptionSlides: 10}
	req := NewRequest(CategoryPresentation, "topic", nil, opts)
	opts[OptionSlides] = 99

	v, ok := req.Option(OptionSlides)
	assert.True(t, ok)
	assert.Equal(t, 10, v)
}

func TestStringOptionFallback(t *testing.T) {
	req := NewRequest(CategorySpeech, "hi", nil, map[string]any{OptionVoice: "Puck"})
	assert.Equal(t, "Puck", req.StringOption(OptionVoice, "Kore"))
	assert.Equal(t, "Kore", req.StringOption("missing", "Kore"))

	req = NewRequest(CategorySpeech, "hi", nil, map[string]any{OptionVoice: 42})
	assert.Equal(t, "Kore", req.StringOption(OptionVoice, "Kore"))
}

func TestSourceDisplayText(t *testing.T) {
	assert.Equal(t, "Example", Source{URI: "https://example.com", Title: "Example"}.DisplayText())
	assert.Equal(t, "https://example.com", Source{URI: "https://example.com"}.DisplayText())
}

func TestUserMessageCollapsesUnknown(t *testing.T) {
	generic := UserMessage(ErrTransport)
	assert.Equal(t, generic, UserMessage(assert.AnError))
	assert.NotEqual(t, generic, UserMessage(ErrCredentialRequired))
	assert.Empty(t, UserMessage(nil))
}

func TestPhasePredicates(t *testing.T) {
	assert.True(t, PhaseDone.Terminal())
	assert.True(t, PhaseFailed.Terminal())
	assert.False(t, PhasePolling.Terminal())

	assert.True(t, PhaseSubmitting.InFlight())
	assert.True(t, PhasePolling.InFlight())
	assert.True(t, PhaseFetching.InFlight())
	assert.False(t, PhaseIdle.InFlight())
	assert.False(t, PhaseDone.InFlight())
}

func TestSessionCloneIsolation(t *testing.T) {
	s := NewSession("s1")
	s.AddEvent(NewPhaseEvent("r1", PhaseSubmitting, "submitting"))

	clone := s.Clone()
	clone.AddEvent(NewPhaseEvent("r1", PhaseDone, "done"))

	assert.Len(t, s.Events(), 1)
	assert.Len(t, clone.Events(), 2)
}
