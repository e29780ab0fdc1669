package dispatch

import (
	"fmt"

	"github.com/soffai/studio/core"
)

// SystemInstruction returns the persona instruction for a category. The
// wording tracks the production prompt set; unknown categories fall back to
// a generic assistant persona.
func SystemInstruction(c core.Category) string {
	switch c {
	case core.CategoryPresentation:
		return "You are an expert in creating engaging and structured presentation outlines. Generate content suitable for slides, with clear headings and bullet points."
	case core.CategoryResearch:
		return "You are a research assistant. Generate well-structured, academic content for a research paper, including an introduction, methodology, findings, and conclusion. Use a formal tone."
	case core.CategoryThesis:
		return "You are an academic advisor helping to write a thesis. Generate a detailed, in-depth analysis on the given topic, with a strong theoretical framework and clear arguments."
	case core.CategoryArticle:
		return "You are a professional writer and editor. Generate a well-written, engaging article on the topic provided. The tone should be accessible to a general audience."
	case core.CategoryIndependent:
		return "You are a knowledgeable tutor. Generate a comprehensive overview for an independent study paper on the given topic, covering key concepts, historical context, and important figures or events."
	case core.CategorySearch:
		return "You are a helpful AI assistant that provides accurate and up-to-date information based on web search results."
	default:
		return "You are a helpful AI assistant."
	}
}

// BuildPrompt composes the user prompt: the topic line plus human-readable
// clauses derived from the options the category recognizes. Clause order
// follows the category's recognized option order so output is deterministic;
// unrecognized keys produce no clause.
func BuildPrompt(req core.Request) string {
	prompt := fmt.Sprintf("Topic: %q. Please generate content for a %q.", req.Prompt, string(req.Category))
	for _, key := range req.Category.RecognizedOptions() {
		value, ok := req.Option(key)
		if !ok || value == nil || value == "" {
			continue
		}
		if clause := optionClause(key, value); clause != "" {
			prompt += " " + clause
		}
	}
	return prompt
}

// optionClause renders one option as a prompt clause. Keys without a clause
// template (voice, aspect ratio) are consumed by their strategies directly
// and never appear in prompt text.
func optionClause(key string, value any) string {
	switch key {
	case core.OptionSlides:
		return fmt.Sprintf("It should have approximately %v slides.", value)
	case core.OptionTone:
		return fmt.Sprintf("The tone should be %v.", value)
	case core.OptionLength:
		return fmt.Sprintf("The length should be %v.", value)
	}
	return ""
}
