package openai

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
	assert.Equal(t, "openai", info.Vendor)
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

func TestUserMessageShapes(t *testing.T) {
	plain := userMessage(provider.TextRequest{Prompt: "hello"})
	assert.NotNil(t, plain.OfUser)

	withImage := userMessage(provider.TextRequest{
		Prompt: "describe this",
		Attachments: []core.Attachment{
			{Name: "a.png", MIMEType: "image/png", Data: []byte{1, 2, 3}},
		},
	})
	assert.NotNil(t, withImage.OfUser)
}
