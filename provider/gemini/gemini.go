// Package gemini implements provider.Provider on Google's genai SDK. It is
// the reference adapter: text generation with system instructions and inline
// image parts, Google Search grounding with citation normalization, speech
// synthesis via audio response modalities, and Veo video generation through
// long-running operations.
package gemini

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/soffai/studio/core"
	"github.com/soffai/studio/media"
	"github.com/soffai/studio/provider"
)

// Options configure the Gemini adapter. Model identifiers default to the
// studio's production set; override via functional options.
type Options struct {
	TextModel   string
	SpeechModel string
	VideoModel  string
	// Resolution is passed to the video model ("720p" or "1080p").
	Resolution string
	// HTTPClient is used for asset downloads. Defaults to a client with a
	// generous timeout since finished videos can be large.
	HTTPClient *http.Client
}

// Provider wraps the genai client behind the generic provider.Provider
// interface. Construct a fresh instance per video call so the currently
// selected credential is always the one used.
type Provider struct {
	client     *genai.Client
	apiKey     string
	httpClient *http.Client
	opts       Options
}

// New creates a Gemini provider bound to the given API key.
func New(ctx context.Context, apiKey string, optFns ...func(o *Options)) (*Provider, error) {
	opts := Options{
		TextModel:   "gemini-2.5-flash",
		SpeechModel: "gemini-2.5-flash-preview-tts",
		VideoModel:  "veo-3.1-fast-generate-preview",
		Resolution:  "720p",
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", mapError(err))
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Minute}
	}

	return &Provider{client: client, apiKey: apiKey, httpClient: httpClient, opts: opts}, nil
}

// Factory returns a provider.Factory that constructs a fresh Gemini client
// per invocation, threading the supplied credential.
func Factory(optFns ...func(o *Options)) provider.Factory {
	return func(ctx context.Context, credential string) (provider.Provider, error) {
		return New(ctx, credential, optFns...)
	}
}

// Info implements provider.Provider.
func (p *Provider) Info() provider.Info {
	return provider.Info{
		Vendor:         "gemini",
		Model:          p.opts.TextModel,
		SupportsSearch: true,
		SupportsSpeech: true,
		SupportsVideo:  true,
	}
}

// GenerateText implements provider.Provider. Attachments are appended as
// inline data parts after the prompt text; search requests attach the Google
// Search tool and normalize the returned grounding chunks.
func (p *Provider) GenerateText(ctx context.Context, req provider.TextRequest) (*provider.TextResponse, error) {
	parts := []*genai.Part{{Text: req.Prompt}}
	for _, att := range req.Attachments {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: att.MIMEType, Data: att.Data},
		})
	}
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	cfg := &genai.GenerateContentConfig{}
	if req.Instruction != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.Instruction}}}
	}
	if req.Search {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.opts.TextModel, contents, cfg)
	if err != nil {
		return nil, mapError(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: empty text response", core.ErrTransport)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	return &provider.TextResponse{
		Content: sb.String(),
		Sources: groundingSources(resp.Candidates[0].GroundingMetadata),
	}, nil
}

// groundingSources normalizes grounding chunks into citation sources,
// preserving provider order and skipping non-web chunks.
func groundingSources(md *genai.GroundingMetadata) []core.Source {
	if md == nil {
		return nil
	}
	var sources []core.Source
	for _, chunk := range md.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		sources = append(sources, core.Source{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return sources
}

// GenerateSpeech implements provider.Provider. The payload is returned
// base64-encoded; raw PCM decoding stays with the caller.
func (p *Provider) GenerateSpeech(ctx context.Context, req provider.SpeechRequest) (*provider.SpeechResponse, error) {
	voice := req.Voice
	if voice == "" {
		voice = "Kore"
	}
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}
	contents := []*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: req.Text}}}}

	resp, err := p.client.Models.GenerateContent(ctx, p.opts.SpeechModel, contents, cfg)
	if err != nil {
		return nil, mapError(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: empty speech response", core.ErrTransport)
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return &provider.SpeechResponse{Audio: media.EncodeBase64(part.InlineData.Data)}, nil
		}
	}
	return nil, fmt.Errorf("%w: speech response carried no audio part", core.ErrTransport)
}

// StartVideo implements provider.Provider. At most one seed image is used.
func (p *Provider) StartVideo(ctx context.Context, req provider.VideoRequest) (*core.Operation, error) {
	var image *genai.Image
	if req.Image != nil {
		image = &genai.Image{ImageBytes: req.Image.Data, MIMEType: req.Image.MIMEType}
	}
	aspectRatio := req.AspectRatio
	if aspectRatio == "" {
		aspectRatio = "16:9"
	}
	cfg := &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		Resolution:     p.opts.Resolution,
		AspectRatio:    aspectRatio,
	}

	op, err := p.client.Models.GenerateVideos(ctx, p.opts.VideoModel, req.Prompt, image, cfg)
	if err != nil {
		return nil, mapError(err)
	}
	return p.wrapOperation(op), nil
}

// CheckVideo implements provider.Provider. It always queries with the raw
// token of the handle passed in, so refreshed handles keep working even when
// the service reissues operation names.
func (p *Provider) CheckVideo(ctx context.Context, op *core.Operation) (*core.Operation, error) {
	raw, ok := op.Token.(*genai.GenerateVideosOperation)
	if !ok {
		return nil, fmt.Errorf("%w: foreign operation token %T", core.ErrTransport, op.Token)
	}
	fresh, err := p.client.Operations.GetVideosOperation(ctx, raw, nil)
	if err != nil {
		return nil, mapError(err)
	}
	return p.wrapOperation(fresh), nil
}

// wrapOperation converts the SDK operation into the pipeline handle,
// extracting the result URI or failure once done.
func (p *Provider) wrapOperation(op *genai.GenerateVideosOperation) *core.Operation {
	out := &core.Operation{Provider: "gemini", Token: op, Done: op.Done}
	if !op.Done {
		return out
	}
	if msg := operationError(op); msg != "" {
		out.Err = fmt.Errorf("%w: %s", core.ErrTransport, msg)
		return out
	}
	if op.Response != nil {
		for _, gv := range op.Response.GeneratedVideos {
			if gv != nil && gv.Video != nil && gv.Video.URI != "" {
				out.ResultURI = gv.Video.URI
				break
			}
		}
	}
	return out
}

// operationError extracts the failure message of a done-but-failed operation.
func operationError(op *genai.GenerateVideosOperation) string {
	if len(op.Error) == 0 {
		return ""
	}
	if msg, ok := op.Error["message"].(string); ok && msg != "" {
		return msg
	}
	return fmt.Sprintf("operation error: %v", op.Error)
}

// FetchAsset implements provider.Provider. The download URI is qualified
// with the API key the way the file service expects.
func (p *Provider) FetchAsset(ctx context.Context, uri string) ([]byte, error) {
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, uri+sep+"key="+p.apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrTransport, err)
	}
	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, mapHTTPStatus(resp.StatusCode, fmt.Sprintf("asset fetch returned %s", resp.Status))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrTransport, err)
	}
	return data, nil
}

// Interface compliance (compile-time assertion)
var _ provider.Provider = (*Provider)(nil)
