// Package openai provides a text-only implementation of provider.Provider
// using the OpenAI Chat Completions API. It serves the plain text categories;
// search grounding, speech synthesis and video operations are Gemini
// capabilities and report provider.ErrUnsupported here.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"

	"github.com/soffai/studio/core"
	"github.com/soffai/studio/media"
	"github.com/soffai/studio/provider"
)

// Options configure the OpenAI adapter. Fields mirror a subset of Chat
// Completion parameters intentionally kept minimal; extend via functional
// options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Provider wraps the OpenAI Chat Completions API behind the generic
// provider.Provider interface.
type Provider struct {
	client *openai.Client
	opts   Options
}

// New creates a new OpenAI provider using the official client.
func New(optFns ...func(o *Options)) *Provider {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a new OpenAI provider from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Provider{client: client, opts: opts}
}

// Info implements provider.Provider.
func (p *Provider) Info() provider.Info {
	return provider.Info{Vendor: "openai", Model: p.opts.Model}
}

// GenerateText implements provider.Provider. Attachments are passed as data
// URI image parts; search requests are refused since citation grounding is
// not available through this adapter.
func (p *Provider) GenerateText(ctx context.Context, req provider.TextRequest) (*provider.TextResponse, error) {
	if req.Search {
		return nil, fmt.Errorf("%w: openai adapter has no search grounding", provider.ErrUnsupported)
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if req.Instruction != "" {
		messages = append(messages, openai.SystemMessage(req.Instruction))
	}
	messages = append(messages, userMessage(req))

	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               p.opts.Model,
		Temperature:         openai.Float(p.opts.Temperature),
		MaxCompletionTokens: openai.Int(p.opts.MaxCompletionTokens),
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", core.ErrTransport)
	}
	return &provider.TextResponse{Content: resp.Choices[0].Message.Content}, nil
}

// userMessage builds the user turn, switching to content parts when image
// attachments are present.
func userMessage(req provider.TextRequest) openai.ChatCompletionMessageParamUnion {
	if len(req.Attachments) == 0 {
		return openai.UserMessage(req.Prompt)
	}
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(req.Prompt),
	}
	for _, att := range req.Attachments {
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: "data:" + att.MIMEType + ";base64," + media.EncodeBase64(att.Data),
		}))
	}
	return openai.UserMessage(parts)
}

// GenerateSpeech implements provider.Provider.
func (p *Provider) GenerateSpeech(context.Context, provider.SpeechRequest) (*provider.SpeechResponse, error) {
	return nil, fmt.Errorf("%w: openai adapter has no speech synthesis", provider.ErrUnsupported)
}

// StartVideo implements provider.Provider.
func (p *Provider) StartVideo(context.Context, provider.VideoRequest) (*core.Operation, error) {
	return nil, fmt.Errorf("%w: openai adapter has no video generation", provider.ErrUnsupported)
}

// CheckVideo implements provider.Provider.
func (p *Provider) CheckVideo(context.Context, *core.Operation) (*core.Operation, error) {
	return nil, fmt.Errorf("%w: openai adapter has no video generation", provider.ErrUnsupported)
}

// FetchAsset implements provider.Provider.
func (p *Provider) FetchAsset(context.Context, string) ([]byte, error) {
	return nil, fmt.Errorf("%w: openai adapter has no asset downloads", provider.ErrUnsupported)
}

// mapError re-maps SDK failures onto the core taxonomy.
func mapError(err error) error {
	var apiErr *openai.Error
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
