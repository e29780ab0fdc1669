package orchestrator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soffai/studio/artifact"
	"github.com/soffai/studio/core"
	"github.com/soffai/studio/credential"
	"github.com/soffai/studio/dispatch"
	"github.com/soffai/studio/poller"
	"github.com/soffai/studio/provider"
	"github.com/soffai/studio/session"
)

type fakeScheduler struct {
	mu      sync.Mutex
	pending []*fakeTimer
}

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (s *fakeScheduler) Schedule(d time.Duration, fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{delay: d, fn: fn}
	s.pending = append(s.pending, t)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		t.stopped = true
	}
}

func (s *fakeScheduler) next() *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.pending {
		if !t.fired && !t.stopped {
			return t
		}
	}
	return nil
}

func (s *fakeScheduler) fire(t *testing.T) {
	t.Helper()
	timer := s.next()
	require.NotNil(t, timer, "no live timer to fire")
	timer.fired = true
	timer.fn()
}

type fixture struct {
	orch      *Orchestrator
	mock      *provider.MockProvider
	host      *credential.StaticHost
	sched     *fakeScheduler
	sessions  *session.InMemoryStore
	artifacts *artifact.InMemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mock := provider.NewMockProvider()
	host := credential.NewStaticHost("test-key")
	factory := func(ctx context.Context, cred string) (provider.Provider, error) {
		return mock, nil
	}
	sched := &fakeScheduler{}
	sessions := session.NewInMemoryStore()
	artifacts := artifact.NewInMemoryStore()

	d := dispatch.New(mock, host, factory)
	p := poller.New(factory, host, func(o *poller.Options) {
		o.Scheduler = sched
	})
	orch := New(d, p, func(o *Options) {
		o.SessionStore = sessions
		o.ArtifactStore = artifacts
	})
	return &fixture{orch: orch, mock: mock, host: host, sched: sched, sessions: sessions, artifacts: artifacts}
}

func (f *fixture) state(t *testing.T, sessionID string) core.Snapshot {
	t.Helper()
	snap, err := f.orch.State(sessionID)
	require.NoError(t, err)
	return snap
}

func TestSubmitTextCompletesSynchronously(t *testing.T) {
	f := newFixture(t)
	f.mock.TextFn = func(ctx context.Context, req provider.TextRequest) (*provider.TextResponse, error) {
		return &provider.TextResponse{Content: "generated article"}, nil
	}

	req := core.NewRequest(core.CategoryArticle, "write about tides", nil, nil)
	require.True(t, f.orch.Submit(context.Background(), "s1", req))

	snap := f.state(t, "s1")
	assert.Equal(t, core.PhaseDone, snap.Phase)
	assert.Equal(t, req.ID, snap.RequestID)
	text, ok := snap.Result.(core.TextResult)
	require.True(t, ok)
	assert.Equal(t, "generated article", text.Content)

	events, err := f.orch.Events("s1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, core.PhaseSubmitting, events[0].Phase)
	assert.Equal(t, MsgThinking, events[0].Message)
	assert.Equal(t, core.PhaseDone, events[1].Phase)

	data, err := f.artifacts.Get("s1", "soffai-article.md")
	require.NoError(t, err)
	assert.Equal(t, []byte("generated article"), data)
}

func TestSubmitEmptyRequestIsNoOp(t *testing.T) {
	f := newFixture(t)

	req := core.NewRequest(core.CategoryArticle, "   ", nil, nil)
	assert.False(t, f.orch.Submit(context.Background(), "s1", req))
	assert.Equal(t, 0, f.mock.Calls("GenerateText"))
	assert.Equal(t, core.PhaseIdle, f.state(t, "s1").Phase)
}

func TestSubmitWhileInFlightIsNoOp(t *testing.T) {
	f := newFixture(t)

	// Video keeps the session in flight after Submit returns.
	first := core.NewRequest(core.CategoryVideo, "a rocket launch", nil, nil)
	require.True(t, f.orch.Submit(context.Background(), "s1", first))
	assert.Equal(t, core.PhasePolling, f.state(t, "s1").Phase)

	second := core.NewRequest(core.CategoryVideo, "another rocket", nil, nil)
	assert.False(t, f.orch.Submit(context.Background(), "s1", second))
	assert.Equal(t, 1, f.mock.Calls("StartVideo"), "the duplicate submit never reaches the dispatcher")

	snap := f.state(t, "s1")
	assert.Equal(t, first.ID, snap.RequestID, "the in-flight request keeps ownership")
}

func TestSubmitVideoWithoutCredential(t *testing.T) {
	f := newFixture(t)
	f.host.Clear()

	req := core.NewRequest(core.CategoryVideo, "a rocket launch", nil, nil)
	require.True(t, f.orch.Submit(context.Background(), "s1", req))

	snap := f.state(t, "s1")
	assert.Equal(t, core.PhaseFailed, snap.Phase)
	require.ErrorIs(t, snap.Err, core.ErrCredentialRequired)
	assert.Equal(t, core.UserMessage(core.ErrCredentialRequired), snap.Message)
	assert.Nil(t, f.sched.next(), "no poll loop starts")
	assert.Equal(t, 1, f.host.Prompted())
}

func TestSubmitVideoHappyPath(t *testing.T) {
	f := newFixture(t)
	checks := 0
	f.mock.CheckVideoFn = func(ctx context.Context, op *core.Operation) (*core.Operation, error) {
		checks++
		if checks == 1 {
			return &core.Operation{Provider: "mock", Token: op.Token}, nil
		}
		return &core.Operation{Provider: "mock", Token: op.Token, Done: true, ResultURI: "https://cdn.example/v.mp4"}, nil
	}
	f.mock.FetchAssetFn = func(ctx context.Context, uri string) ([]byte, error) {
		return []byte("mp4-bytes"), nil
	}

	req := core.NewRequest(core.CategoryVideo, "a rocket launch", nil, nil)
	require.True(t, f.orch.Submit(context.Background(), "s1", req))

	snap := f.state(t, "s1")
	assert.Equal(t, core.PhasePolling, snap.Phase)
	assert.Equal(t, MsgVideoRunning, snap.Message)

	f.sched.fire(t) // first check, not done
	assert.Equal(t, core.PhasePolling, f.state(t, "s1").Phase)

	f.sched.fire(t) // second check, done + fetch
	snap = f.state(t, "s1")
	assert.Equal(t, core.PhaseDone, snap.Phase)
	video, ok := snap.Result.(core.VideoResult)
	require.True(t, ok)
	assert.Equal(t, []byte("mp4-bytes"), video.Data)
	assert.Equal(t, 1, f.mock.Calls("FetchAsset"))

	events, err := f.orch.Events("s1")
	require.NoError(t, err)
	var phases []core.Phase
	for _, ev := range events {
		phases = append(phases, ev.Phase)
	}
	assert.Equal(t, []core.Phase{core.PhaseSubmitting, core.PhasePolling, core.PhaseFetching, core.PhaseDone}, phases)

	data, err := f.artifacts.Get("s1", "soffai-video.mp4")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp4-bytes"), data)
}

func TestSubmitVideoOperationFailure(t *testing.T) {
	f := newFixture(t)
	f.mock.CheckVideoFn = func(ctx context.Context, op *core.Operation) (*core.Operation, error) {
		return &core.Operation{Provider: "mock", Token: op.Token, Done: true}, nil
	}

	req := core.NewRequest(core.CategoryVideo, "a rocket launch", nil, nil)
	require.True(t, f.orch.Submit(context.Background(), "s1", req))
	f.sched.fire(t)

	snap := f.state(t, "s1")
	assert.Equal(t, core.PhaseFailed, snap.Phase)
	require.ErrorIs(t, snap.Err, core.ErrMissingAsset)
	assert.Equal(t, core.UserMessage(core.ErrMissingAsset), snap.Message)
}

func TestCancelAbandonsInFlightRequest(t *testing.T) {
	f := newFixture(t)

	req := core.NewRequest(core.CategoryVideo, "a rocket launch", nil, nil)
	require.True(t, f.orch.Submit(context.Background(), "s1", req))
	require.NotNil(t, f.sched.next())

	f.orch.Cancel("s1")
	assert.Equal(t, core.PhaseIdle, f.state(t, "s1").Phase)
	assert.Nil(t, f.sched.next(), "the pending check is stopped")
	assert.Equal(t, 0, f.mock.Calls("CheckVideo"))

	// Canceling again is a no-op.
	f.orch.Cancel("s1")
}

func TestSupersessionSuppressesStaleCallbacks(t *testing.T) {
	f := newFixture(t)
	f.mock.CheckVideoFn = func(ctx context.Context, op *core.Operation) (*core.Operation, error) {
		return &core.Operation{Provider: "mock", Token: op.Token}, nil
	}

	first := core.NewRequest(core.CategoryVideo, "first", nil, nil)
	require.True(t, f.orch.Submit(context.Background(), "s1", first))
	f.sched.fire(t) // not done, reschedules

	f.orch.Cancel("s1")

	// Switch to a synchronous category; the session resolves immediately.
	second := core.NewRequest(core.CategoryArticle, "second", nil, nil)
	require.True(t, f.orch.Submit(context.Background(), "s1", second))

	snap := f.state(t, "s1")
	assert.Equal(t, core.PhaseDone, snap.Phase)
	assert.Equal(t, second.ID, snap.RequestID)

	// The stale loop's timer never fires again.
	assert.Nil(t, f.sched.next())
	assert.Equal(t, 1, f.mock.Calls("CheckVideo"))
}

func TestResubmitAfterTerminalPhase(t *testing.T) {
	f := newFixture(t)
	f.host.Clear()

	req := core.NewRequest(core.CategoryVideo, "a rocket launch", nil, nil)
	require.True(t, f.orch.Submit(context.Background(), "s1", req))
	assert.Equal(t, core.PhaseFailed, f.state(t, "s1").Phase)

	// The user selects a key and resubmits; the machine starts over.
	f.host.Select("fresh-key")
	retry := core.NewRequest(core.CategoryVideo, "a rocket launch", nil, nil)
	require.True(t, f.orch.Submit(context.Background(), "s1", retry))

	snap := f.state(t, "s1")
	assert.Equal(t, core.PhasePolling, snap.Phase)
	assert.Equal(t, retry.ID, snap.RequestID)
}

func TestSessionsAreIndependent(t *testing.T) {
	f := newFixture(t)

	video := core.NewRequest(core.CategoryVideo, "clip", nil, nil)
	require.True(t, f.orch.Submit(context.Background(), "s1", video))

	text := core.NewRequest(core.CategoryArticle, "essay", nil, nil)
	require.True(t, f.orch.Submit(context.Background(), "s2", text))

	assert.Equal(t, core.PhasePolling, f.state(t, "s1").Phase)
	assert.Equal(t, core.PhaseDone, f.state(t, "s2").Phase)
}
