// Package studio provides a high-level façade over the generation pipeline
// (dispatcher, operation poller, orchestration state machine and the session
// and artifact stores). Most applications interact with this package by:
//  1. Creating a Studio via New() with a credential host (optionally
//     overriding providers, stores or the logger)
//  2. Submitting generation requests with Generate / GenerateSync
//  3. Reading session state, history and packaged download artifacts
//
// All defaults are safe for local development and testing: in-memory stores,
// a no-op logger and a Gemini provider built lazily from the credential host.
package studio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/soffai/studio/artifact"
	"github.com/soffai/studio/core"
	"github.com/soffai/studio/credential"
	"github.com/soffai/studio/dispatch"
	"github.com/soffai/studio/logging"
	"github.com/soffai/studio/orchestrator"
	"github.com/soffai/studio/poller"
	"github.com/soffai/studio/provider"
	"github.com/soffai/studio/provider/gemini"
	"github.com/soffai/studio/session"
)

// ErrInFlight is returned by GenerateSync when the session already has a
// request in flight.
var ErrInFlight = errors.New("a request is already in flight for this session")

// Options configures the Studio instance.
type Options struct {
	// Provider serves search, speech and, unless VideoFactory is set, acts
	// as the default for everything built from it. When nil a Gemini
	// provider is constructed from the credential host.
	Provider provider.Provider
	// TextProvider optionally serves the plain text categories on a
	// different vendor (OpenAI, Anthropic) while search, speech and video
	// stay on the base provider.
	TextProvider provider.Provider
	// VideoFactory builds the video-capable provider immediately before
	// each video call. Defaults to the Gemini factory.
	VideoFactory provider.Factory
	// GeminiOptions tune the default Gemini adapter (model names,
	// resolution). Ignored when both Provider and VideoFactory are set.
	GeminiOptions []func(o *gemini.Options)

	// Stores (defaults to in-memory implementations if not provided)
	SessionStore  core.SessionStore
	ArtifactStore core.ArtifactStore

	// PollInitialDelay and PollInterval tune the video operation poller.
	PollInitialDelay time.Duration
	PollInterval     time.Duration

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Studio is the high-level façade aggregating the pipeline and its stores.
type Studio struct {
	host      credential.Host
	orch      *orchestrator.Orchestrator
	sessions  core.SessionStore
	artifacts core.ArtifactStore
	logger    logging.Logger
}

// New creates a Studio bound to the credential host. Any unset dependency is
// initialized with its default implementation.
func New(ctx context.Context, host credential.Host, optFns ...func(o *Options)) (*Studio, error) {
	opts := Options{
		SessionStore:     session.NewInMemoryStore(),
		ArtifactStore:    artifact.NewInMemoryStore(),
		PollInitialDelay: poller.DefaultInitialDelay,
		PollInterval:     poller.DefaultInterval,
		Logger:           logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.VideoFactory == nil {
		opts.VideoFactory = gemini.Factory(opts.GeminiOptions...)
	}
	if opts.Provider == nil {
		key, ok := host.Credential()
		if !ok {
			return nil, fmt.Errorf("studio: %w", core.ErrCredentialRequired)
		}
		p, err := gemini.New(ctx, key, opts.GeminiOptions...)
		if err != nil {
			return nil, fmt.Errorf("studio: build default provider: %w", err)
		}
		opts.Provider = p
	}

	d := dispatch.New(opts.Provider, host, opts.VideoFactory, func(o *dispatch.Options) {
		if opts.TextProvider != nil {
			o.TextProvider = opts.TextProvider
		}
		o.Logger = opts.Logger
	})
	p := poller.New(opts.VideoFactory, host, func(o *poller.Options) {
		o.InitialDelay = opts.PollInitialDelay
		o.Interval = opts.PollInterval
		o.Logger = opts.Logger
	})
	orch := orchestrator.New(d, p, func(o *orchestrator.Options) {
		o.SessionStore = opts.SessionStore
		o.ArtifactStore = opts.ArtifactStore
		o.Logger = opts.Logger
	})

	return &Studio{
		host:      host,
		orch:      orch,
		sessions:  opts.SessionStore,
		artifacts: opts.ArtifactStore,
		logger:    opts.Logger,
	}, nil
}

// Generate submits a request for the session, reporting whether it was
// accepted. Progress is observable through State and Events; video requests
// keep running in the background after Generate returns.
func (s *Studio) Generate(ctx context.Context, sessionID string, req core.Request) bool {
	return s.orch.Submit(ctx, sessionID, req)
}

// GenerateSync submits a request and blocks until the cycle reaches a
// terminal phase, polling the session snapshot. It returns the result on
// Done and the mapped error on Failed.
func (s *Studio) GenerateSync(ctx context.Context, sessionID string, req core.Request) (core.Result, error) {
	if req.Empty() {
		return nil, core.ErrEmptyPrompt
	}
	if !s.orch.Submit(ctx, sessionID, req) {
		return nil, ErrInFlight
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		snap, err := s.orch.State(sessionID)
		if err != nil {
			return nil, err
		}
		if snap.RequestID == req.ID && snap.Phase.Terminal() {
			if snap.Phase == core.PhaseFailed {
				return nil, snap.Err
			}
			return snap.Result, nil
		}
		select {
		case <-ctx.Done():
			s.orch.Cancel(sessionID)
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Cancel abandons the session's in-flight request, if any.
func (s *Studio) Cancel(sessionID string) { s.orch.Cancel(sessionID) }

// State returns the session's current orchestration snapshot.
func (s *Studio) State(sessionID string) (core.Snapshot, error) {
	return s.orch.State(sessionID)
}

// Events returns the session's transition history.
func (s *Studio) Events(sessionID string) ([]core.Event, error) {
	return s.orch.Events(sessionID)
}

// Artifact returns a packaged download artifact saved for the session.
func (s *Studio) Artifact(sessionID, name string) ([]byte, error) {
	return s.artifacts.Get(sessionID, name)
}

// Artifacts lists the download artifacts saved for the session.
func (s *Studio) Artifacts(sessionID string) ([]string, error) {
	return s.artifacts.List(sessionID)
}
