package anthropic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soffai/studio/core"
	"github.com/soffai/studio/provider"
)

var _ provider.Provider = (*Provider)(nil)

func TestInfoReportsTextOnly(t *testing.T) {
	p := New()
	info := p.Info()
	assert.Equal(t, "anthropic", info.Vendor)
	assert.False(t, info.SupportsSearch)
	assert.False(t, info.SupportsSpeech)
	assert.False(t, info.SupportsVideo)
}

func TestUnsupportedCapabilitiesRefuse(t *testing.T) {
	p := New()
	ctx := context.Background()

	_, err := p.GenerateText(ctx, provider.TextRequest{Prompt: "q", Search: true})
	assert.ErrorIs(t, err, provider.ErrUnsupported)

	_, err = p.GenerateSpeech(ctx, provider.SpeechRequest{Text: "hi"})
	assert.ErrorIs(t, err, provider.ErrUnsupported)

	_, err = p.StartVideo(ctx, provider.VideoRequest{Prompt: "clip"})
	assert.ErrorIs(t, err, provider.ErrUnsupported)

	_, err = p.CheckVideo(ctx, &core.Operation{})
	assert.ErrorIs(t, err, provider.ErrUnsupported)

	_, err = p.FetchAsset(ctx, "https://example.com/a.mp4")
	assert.ErrorIs(t, err, provider.ErrUnsupported)
}

func TestOptionsOverride(t *testing.T) {
	p := New(func(o *Options) {
		o.Model = "claude-test"
		o.MaxTokens = 128
	})
	assert.Equal(t, "claude-test", p.Info().Model)
}
