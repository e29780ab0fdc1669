// Package anthropic provides a text-only implementation of provider.Provider
// using the Anthropic Messages API. It serves the plain text categories;
// search grounding, speech synthesis and video operations are Gemini
// capabilities and report provider.ErrUnsupported here.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/soffai/studio/core"
	"github.com/soffai/studio/media"
	"github.com/soffai/studio/provider"
)

// Options configure the Anthropic adapter (temperature, model id, max
// tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Provider wraps the Anthropic Messages API behind the generic
// provider.Provider interface.
type Provider struct {
	client *anthropic.Client
	opts   Options
}

// New creates a new Anthropic provider using the official client.
func New(optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Provider{client: &client, opts: opts}
}

// NewFromClient creates a new Anthropic provider from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Provider{client: client, opts: opts}
}

// Info implements provider.Provider.
func (p *Provider) Info() provider.Info {
	return provider.Info{Vendor: "anthropic", Model: string(p.opts.Model)}
}

// GenerateText implements provider.Provider. Attachments are passed as
// base64 image blocks; search requests are refused since citation grounding
// is not available through this adapter.
func (p *Provider) GenerateText(ctx context.Context, req provider.TextRequest) (*provider.TextResponse, error) {
	if req.Search {
		return nil, fmt.Errorf("%w: anthropic adapter has no search grounding", provider.ErrUnsupported)
	}

	blocks := []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(req.Prompt)}
	for _, att := range req.Attachments {
		blocks = append(blocks, anthropic.NewImageBlockBase64(att.MIMEType, media.EncodeBase64(att.Data)))
	}

	params := anthropic.MessageNewParams{
		Model:       p.opts.Model,
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
		MaxTokens:   p.opts.MaxTokens,
		Temperature: anthropic.Float(p.opts.Temperature),
	}
	if req.Instruction != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.Instruction}}
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.AsText().Text
		}
	}
	if content == "" {
		return nil, fmt.Errorf("%w: empty message response", core.ErrTransport)
	}
	return &provider.TextResponse{Content: content}, nil
}

// GenerateSpeech implements provider.Provider.
func (p *Provider) GenerateSpeech(context.Context, provider.SpeechRequest) (*provider.SpeechResponse, error) {
	return nil, fmt.Errorf("%w: anthropic adapter has no speech synthesis", provider.ErrUnsupported)
}

// StartVideo implements provider.Provider.
func (p *Provider) StartVideo(context.Context, provider.VideoRequest) (*core.Operation, error) {
	return nil, fmt.Errorf("%w: anthropic adapter has no video generation", provider.ErrUnsupported)
}

// CheckVideo implements provider.Provider.
func (p *Provider) CheckVideo(context.Context, *core.Operation) (*core.Operation, error) {
	return nil, fmt.Errorf("%w: anthropic adapter has no video generation", provider.ErrUnsupported)
}

// FetchAsset implements provider.Provider.
func (p *Provider) FetchAsset(context.Context, string) ([]byte, error) {
	return nil, fmt.Errorf("%w: anthropic adapter has no asset downloads", provider.ErrUnsupported)
}

// mapError re-maps SDK failures onto the core taxonomy.
func mapError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %v", core.ErrInvalidCredential, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %v", core.ErrPermissionDenied, err)
		}
	}
	return fmt.Errorf("%w: %v", core.ErrTransport, err)
}
