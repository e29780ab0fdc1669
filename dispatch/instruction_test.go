package dispatch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soffai/studio/core"
)

func TestSystemInstructionPerCategory(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range core.Categories() {
		inst := SystemInstruction(c)
		assert.NotEmpty(t, inst, "category %s", c)
		seen[inst] = true
	}
	// Speech and video share the generic fallback; the six text-bearing
	// categories each get a dedicated persona.
	assert.GreaterOrEqual(t, len(seen), 7)
}

func TestBuildPromptSlidesClause(t *testing.T) {
	req := core.NewRequest(core.CategoryPresentation, "solar system", nil, map[string]any{
		core.OptionSlides: 15,
	})
	prompt := BuildPrompt(req)
	assert.Contains(t, prompt, `Topic: "solar system"`)
	assert.Contains(t, prompt, "approximately 15 slides")
}

func TestBuildPromptDropsUnrecognizedOptions(t *testing.T) {
	req := core.NewRequest(core.CategoryPresentation, "solar system", nil, map[string]any{
		core.OptionSlides: 10,
		"bogus":           "unexpected-value",
		core.OptionTone:   "Formal", // not recognized for presentations
	})
	prompt := BuildPrompt(req)
	assert.Contains(t, prompt, "approximately 10 slides")
	assert.NotContains(t, prompt, "bogus")
	assert.NotContains(t, prompt, "unexpected-value")
	assert.NotContains(t, prompt, "tone should be")
}

func TestBuildPromptToneAndLengthOrder(t *testing.T) {
	req := core.NewRequest(core.CategoryResearch, "photosynthesis", nil, map[string]any{
		core.OptionLength: "Long",
		core.OptionTone:   "Academic",
	})
	prompt := BuildPrompt(req)
	toneIdx := strings.Index(prompt, "The tone should be Academic.")
	lengthIdx := strings.Index(prompt, "The length should be Long.")
	assert.NotEqual(t, -1, toneIdx)
	assert.NotEqual(t, -1, lengthIdx)
	assert.Less(t, toneIdx, lengthIdx, "clauses follow recognized option order")
}

func TestBuildPromptSkipsEmptyValues(t *testing.T) {
	req := core.NewRequest(core.CategoryResearch, "x", nil, map[string]any{
		core.OptionTone: "",
	})
	assert.NotContains(t, BuildPrompt(req), "tone should be")
}
