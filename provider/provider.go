package provider

import (
	"context"
	"errors"

	"github.com/soffai/studio/core"
)

// ErrUnsupported is returned by adapters asked for a capability they do not
// implement (e.g. speech on a text-only vendor). The dispatcher treats it as
// a configuration error, not a user-facing failure.
var ErrUnsupported = errors.New("provider: capability not supported")

// Info contains metadata about a provider implementation.
type Info struct {
	// Vendor identifies the backing service ("gemini", "openai", "anthropic", "mock").
	Vendor string `json:"vendor"`
	// Model is the default text model identifier.
	Model string `json:"model"`
	// SupportsSearch reports retrieval-augmented generation with citations.
	SupportsSearch bool `json:"supports_search"`
	// SupportsSpeech reports text-to-speech synthesis.
	SupportsSpeech bool `json:"supports_speech"`
	// SupportsVideo reports long-running video generation operations.
	SupportsVideo bool `json:"supports_video"`
}

// TextRequest captures the normalized input of a text or search generation
// call produced by the dispatcher.
type TextRequest struct {
	// Instruction is the category system instruction.
	Instruction string
	// Prompt is the composite user prompt including option clauses.
	Prompt string
	// Attachments are appended as typed inline parts alongside the prompt.
	Attachments []core.Attachment
	// Search requests retrieval augmentation and citation metadata.
	Search bool
}

// TextResponse is the terminal payload of a text or search call.
type TextResponse struct {
	Content string
	// Sources holds normalized citations, in provider order. Empty unless
	// the request asked for search.
	Sources []core.Source
}

// SpeechRequest captures the normalized input of a speech synthesis call.
type SpeechRequest struct {
	Text string
	// Voice selects the prebuilt voice profile.
	Voice string
}

// SpeechResponse is the terminal payload of a speech call.
type SpeechResponse struct {
	// Audio is the provider's base64-encoded raw PCM payload (24 kHz mono
	// 16-bit). Decoding is the caller's responsibility via media.DecodeBase64.
	Audio string
}

// VideoRequest captures the normalized input of a video generation call.
type VideoRequest struct {
	Prompt string
	// Image is an optional seed image; at most one is used.
	Image *core.Attachment
	// AspectRatio is "16:9" or "9:16".
	AspectRatio string
}

// Provider is the minimal interface the dispatcher and poller require from a
// generation vendor. Text and speech calls complete synchronously from the
// caller's perspective; video returns an operation handle polled via
// CheckVideo. Adapters map every vendor failure onto the core error taxonomy
// before returning.
type Provider interface {
	GenerateText(ctx context.Context, req TextRequest) (*TextResponse, error)
	GenerateSpeech(ctx context.Context, req SpeechRequest) (*SpeechResponse, error)
	StartVideo(ctx context.Context, req VideoRequest) (*core.Operation, error)
	// CheckVideo re-issues the status query for the handle, returning a
	// refreshed handle. Callers must poll with the most recently returned
	// value, never an earlier one.
	CheckVideo(ctx context.Context, op *core.Operation) (*core.Operation, error)
	// FetchAsset downloads the finished asset addressed by a done
	// operation's result URI, qualified with the provider credential.
	FetchAsset(ctx context.Context, uri string) ([]byte, error)

	// Info returns information about the provider implementation.
	Info() Info
}

// Factory constructs a Provider bound to the given credential. The video
// path builds a fresh client immediately before each call so a newly
// selected credential takes effect without restarting.
type Factory func(ctx context.Context, credential string) (Provider, error)
