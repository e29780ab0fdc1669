// Package dispatch maps a generation request onto one of three strategies
// (text/search, speech, video) and normalizes their differing result shapes.
// Text, search and speech complete synchronously from the caller's
// perspective; video returns an operation handle for the poller. Every
// provider failure leaving this package is a member of the core taxonomy.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/soffai/studio/core"
	"github.com/soffai/studio/credential"
	"github.com/soffai/studio/logging"
	"github.com/soffai/studio/media"
	"github.com/soffai/studio/provider"
)

// Outcome is the normalized dispatch product. Exactly one field is set:
// Result for the synchronous strategies, Operation for video.
type Outcome struct {
	Result    core.Result
	Operation *core.Operation
}

// Options holds dependency and configuration overrides passed to New().
type Options struct {
	// TextProvider overrides the provider used for the plain text
	// categories, letting an OpenAI or Anthropic adapter serve them while
	// search, speech and video stay on the base provider.
	TextProvider provider.Provider
	// Logger receives dispatch diagnostics.
	Logger logging.Logger
}

// Dispatcher routes requests to generation strategies. Safe for concurrent
// use; it holds no per-request state.
type Dispatcher struct {
	base         provider.Provider
	textProvider provider.Provider
	videoFactory provider.Factory
	credentials  credential.Host
	logger       logging.Logger
}

// New constructs a Dispatcher. The base provider serves search and speech;
// videoFactory builds a fresh video-capable provider immediately before each
// video call, threading the credential currently selected in the host.
func New(base provider.Provider, host credential.Host, videoFactory provider.Factory, optFns ...func(o *Options)) *Dispatcher {
	opts := Options{
		TextProvider: base,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Dispatcher{
		base:         base,
		textProvider: opts.TextProvider,
		videoFactory: videoFactory,
		credentials:  host,
		logger:       opts.Logger,
	}
}

// Dispatch runs the strategy for the request's category. The category to
// strategy mapping is total over the closed category set; anything else
// fails with core.ErrUnsupportedCategory.
func (d *Dispatcher) Dispatch(ctx context.Context, req core.Request) (*Outcome, error) {
	if req.Empty() {
		return nil, core.ErrEmptyPrompt
	}

	start := time.Now()
	outcome, err := d.route(ctx, req)
	if err != nil {
		d.logger.Error("dispatch failed",
			"category", string(req.Category),
			"request_id", req.ID,
			"duration", time.Since(start).String(),
			"error", err)
		return nil, err
	}
	d.logger.Debug("dispatch completed",
		"category", string(req.Category),
		"request_id", req.ID,
		"duration", time.Since(start).String())
	return outcome, nil
}

func (d *Dispatcher) route(ctx context.Context, req core.Request) (*Outcome, error) {
	switch req.Category {
	case core.CategoryPresentation, core.CategoryResearch, core.CategoryThesis,
		core.CategoryArticle, core.CategoryIndependent, core.CategorySearch:
		return d.generateText(ctx, req)
	case core.CategorySpeech:
		return d.generateSpeech(ctx, req)
	case core.CategoryVideo:
		return d.generateVideo(ctx, req)
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedCategory, req.Category)
	}
}

// generateText serves the five text categories plus search. Search always
// runs on the base provider since the text override may lack grounding.
func (d *Dispatcher) generateText(ctx context.Context, req core.Request) (*Outcome, error) {
	isSearch := req.Category == core.CategorySearch
	prov := d.textProvider
	if isSearch {
		prov = d.base
	}

	resp, err := prov.GenerateText(ctx, provider.TextRequest{
		Instruction: SystemInstruction(req.Category),
		Prompt:      BuildPrompt(req),
		Attachments: req.Attachments,
		Search:      isSearch,
	})
	if err != nil {
		return nil, normalize(err)
	}

	result := core.TextResult{Content: resp.Content}
	if isSearch {
		result.Sources = resp.Sources
	}
	return &Outcome{Result: result}, nil
}

// generateSpeech requires non-empty prompt text; attachments alone are not
// speakable input. The provider's base64 payload is decoded here so the
// result carries raw PCM.
func (d *Dispatcher) generateSpeech(ctx context.Context, req core.Request) (*Outcome, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, core.ErrEmptyPrompt
	}

	resp, err := d.base.GenerateSpeech(ctx, provider.SpeechRequest{
		Text:  req.Prompt,
		Voice: req.StringOption(core.OptionVoice, "Kore"),
	})
	if err != nil {
		return nil, normalize(err)
	}

	pcm, err := media.DecodeBase64(resp.Audio)
	if err != nil {
		return nil, fmt.Errorf("%w: undecodable audio payload: %v", core.ErrTransport, err)
	}
	return &Outcome{Result: core.AudioResult{PCM: pcm}}, nil
}

// generateVideo enforces the credential precondition, then starts the
// long-running operation on a freshly built provider so the selected
// credential is always the one used. At most one attachment seeds the
// generation; extras are ignored.
func (d *Dispatcher) generateVideo(ctx context.Context, req core.Request) (*Outcome, error) {
	cred, ok := d.credentials.Credential()
	if !ok {
		d.credentials.PromptSelection()
		return nil, core.ErrCredentialRequired
	}

	prov, err := d.videoFactory(ctx, cred)
	if err != nil {
		return nil, normalize(err)
	}

	var image *core.Attachment
	if len(req.Attachments) > 0 {
		image = &req.Attachments[0]
	}

	op, err := prov.StartVideo(ctx, provider.VideoRequest{
		Prompt:      req.Prompt,
		Image:       image,
		AspectRatio: req.StringOption(core.OptionAspectRatio, "16:9"),
	})
	if err != nil {
		return nil, normalize(err)
	}
	return &Outcome{Operation: op}, nil
}

// normalize guarantees every error leaving the dispatcher belongs to the
// taxonomy. Capability misses are configuration mistakes, reported as the
// defensive unsupported-category kind; adapters already map everything else.
func normalize(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, provider.ErrUnsupported):
		return fmt.Errorf("%w: %v", core.ErrUnsupportedCategory, err)
	case errors.Is(err, core.ErrEmptyPrompt),
		errors.Is(err, core.ErrUnsupportedCategory),
		errors.Is(err, core.ErrCredentialRequired),
		errors.Is(err, core.ErrInvalidCredential),
		errors.Is(err, core.ErrPermissionDenied),
		errors.Is(err, core.ErrMissingAsset),
		errors.Is(err, core.ErrTransport):
		return err
	default:
		return fmt.Errorf("%w: %v", core.ErrTransport, err)
	}
}
