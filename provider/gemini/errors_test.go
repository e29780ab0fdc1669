package gemini

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"

	"github.com/soffai/studio/core"
)

func TestMapErrorStructuredCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unauthorized", genai.APIError{Code: 401, Message: "bad key"}, core.ErrInvalidCredential},
		{"invalid key 400", genai.APIError{Code: 400, Message: "API key not valid. Please pass a valid API key."}, core.ErrInvalidCredential},
		{"other 400", genai.APIError{Code: 400, Message: "malformed request"}, core.ErrTransport},
		{"forbidden", genai.APIError{Code: 403, Message: "denied"}, core.ErrPermissionDenied},
		{"not found", genai.APIError{Code: 404, Message: "Requested entity was not found."}, core.ErrPermissionDenied},
		{"server error", genai.APIError{Code: 500, Message: "internal"}, core.ErrTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError(tt.err), tt.want)
		})
	}
}

func TestMapErrorSubstringFallback(t *testing.T) {
	assert.ErrorIs(t, mapError(errors.New("API key not valid. Please pass a valid API key.")), core.ErrInvalidCredential)
	assert.ErrorIs(t, mapError(errors.New("Requested entity was not found.")), core.ErrPermissionDenied)
	assert.ErrorIs(t, mapError(errors.New("connection reset by peer")), core.ErrTransport)
}

func TestMapErrorKeepsDiagnosticDetail(t *testing.T) {
	err := mapError(genai.APIError{Code: 403, Message: "quota exhausted for veo"})
	assert.ErrorIs(t, err, core.ErrPermissionDenied)
	assert.Contains(t, err.Error(), "quota exhausted for veo")
	// The user never sees the raw detail.
	assert.NotContains(t, core.UserMessage(err), "quota")
}

func TestMapErrorWrappedChain(t *testing.T) {
	err := fmt.Errorf("outer: %w", genai.APIError{Code: 401, Message: "no"})
	assert.ErrorIs(t, mapError(err), core.ErrInvalidCredential)
}

func TestGroundingSources(t *testing.T) {
	md := &genai.GroundingMetadata{
		GroundingChunks: []*genai.GroundingChunk{
			{Web: &genai.GroundingChunkWeb{URI: "https://a.example", Title: "A"}},
			nil,
			{Web: nil},
			{Web: &genai.GroundingChunkWeb{URI: "https://b.example"}},
		},
	}
	sources := groundingSources(md)
	assert.Equal(t, []core.Source{
		{URI: "https://a.example", Title: "A"},
		{URI: "https://b.example"},
	}, sources)
	assert.Nil(t, groundingSources(nil))
}

func TestWrapOperation(t *testing.T) {
	p := &Provider{}

	pending := p.wrapOperation(&genai.GenerateVideosOperation{Done: false})
	assert.False(t, pending.Done)
	assert.Empty(t, pending.ResultURI)

	done := p.wrapOperation(&genai.GenerateVideosOperation{
		Done: true,
		Response: &genai.GenerateVideosResponse{
			GeneratedVideos: []*genai.GeneratedVideo{
				{Video: &genai.Video{URI: "https://files.example/v.mp4"}},
			},
		},
	})
	assert.True(t, done.Done)
	assert.Equal(t, "https://files.example/v.mp4", done.ResultURI)

	failed := p.wrapOperation(&genai.GenerateVideosOperation{
		Done:  true,
		Error: map[string]any{"message": "safety block"},
	})
	assert.True(t, failed.Done)
	assert.ErrorIs(t, failed.Err, core.ErrTransport)

	// Done without a video leaves ResultURI empty; the poller turns that
	// into a missing-asset failure.
	empty := p.wrapOperation(&genai.GenerateVideosOperation{Done: true, Response: &genai.GenerateVideosResponse{}})
	assert.True(t, empty.Done)
	assert.Empty(t, empty.ResultURI)
	assert.NoError(t, empty.Err)
}
