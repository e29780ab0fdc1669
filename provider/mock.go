package provider

import (
	"context"
	"encoding/base64"
	"sync"

	"github.com/soffai/studio/core"
)

// MockProvider is a lightweight in-memory Provider useful for tests and
// examples. Behavior can be overridden per method via the *Fn hooks; calls
// are counted so tests can assert how often each path ran.
type MockProvider struct {
	mu    sync.Mutex
	calls map[string]int

	// TextFn overrides GenerateText when non-nil.
	TextFn func(ctx context.Context, req TextRequest) (*TextResponse, error)
	// SpeechFn overrides GenerateSpeech when non-nil.
	SpeechFn func(ctx context.Context, req SpeechRequest) (*SpeechResponse, error)
	// StartVideoFn overrides StartVideo when non-nil.
	StartVideoFn func(ctx context.Context, req VideoRequest) (*core.Operation, error)
	// CheckVideoFn overrides CheckVideo when non-nil.
	CheckVideoFn func(ctx context.Context, op *core.Operation) (*core.Operation, error)
	// FetchAssetFn overrides FetchAsset when non-nil.
	FetchAssetFn func(ctx context.Context, uri string) ([]byte, error)
}

// NewMockProvider constructs a MockProvider with all capabilities enabled.
func NewMockProvider() *MockProvider {
	return &MockProvider{calls: map[string]int{}}
}

func (m *MockProvider) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[name]++
}

// Calls returns how many times the named method was invoked.
func (m *MockProvider) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

// GenerateText implements Provider.
func (m *MockProvider) GenerateText(ctx context.Context, req TextRequest) (*TextResponse, error) {
	m.record("GenerateText")
	if m.TextFn != nil {
		return m.TextFn(ctx, req)
	}
	return &TextResponse{Content: "mock response for: " + req.Prompt}, nil
}

// GenerateSpeech implements Provider.
func (m *MockProvider) GenerateSpeech(ctx context.Context, req SpeechRequest) (*SpeechResponse, error) {
	m.record("GenerateSpeech")
	if m.SpeechFn != nil {
		return m.SpeechFn(ctx, req)
	}
	// Two silent 16-bit samples; a decodable default payload.
	return &SpeechResponse{Audio: base64.StdEncoding.EncodeToString([]byte{0, 0, 0, 0})}, nil
}

// StartVideo implements Provider.
func (m *MockProvider) StartVideo(ctx context.Context, req VideoRequest) (*core.Operation, error) {
	m.record("StartVideo")
	if m.StartVideoFn != nil {
		return m.StartVideoFn(ctx, req)
	}
	return &core.Operation{Provider: "mock", Token: "op-1"}, nil
}

// CheckVideo implements Provider.
func (m *MockProvider) CheckVideo(ctx context.Context, op *core.Operation) (*core.Operation, error) {
	m.record("CheckVideo")
	if m.CheckVideoFn != nil {
		return m.CheckVideoFn(ctx, op)
	}
	return &core.Operation{Provider: "mock", Token: op.Token, Done: true, ResultURI: "https://example.com/video.mp4"}, nil
}

// FetchAsset implements Provider.
func (m *MockProvider) FetchAsset(ctx context.Context, uri string) ([]byte, error) {
	m.record("FetchAsset")
	if m.FetchAssetFn != nil {
		return m.FetchAssetFn(ctx, uri)
	}
	return []byte("mock-video-bytes"), nil
}

// Info implements Provider.
func (m *MockProvider) Info() Info {
	return Info{Vendor: "mock", Model: "mock-model", SupportsSearch: true, SupportsSpeech: true, SupportsVideo: true}
}
