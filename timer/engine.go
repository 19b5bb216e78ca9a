// Package timer runs the stop-the-clock game: the engine state machine that
// times attempts, and the terminal UI that drives it
package timer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ayoisaiah/timestop/internal/haptics"
	"github.com/ayoisaiah/timestop/internal/session"
)

const (
	DefaultTarget       = 10
	DefaultTickInterval = 10 * time.Millisecond
	DefaultGraceWindow  = 3 * time.Second
	DefaultHoldDuration = 1500 * time.Millisecond
	DefaultHoldSteps    = 30

	eventBuffer   = 64
	requestBuffer = 16
)

// Options configures an Engine. Zero values are replaced with defaults.
type Options struct {
	Clock        clockwork.Clock
	Target       int
	TickInterval time.Duration
	GraceWindow  time.Duration
	HoldDuration time.Duration
	HoldSteps    int
}

func (o *Options) setDefaults() {
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}

	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}

	if o.GraceWindow <= 0 {
		o.GraceWindow = DefaultGraceWindow
	}

	if o.HoldDuration <= 0 {
		o.HoldDuration = DefaultHoldDuration
	}

	if o.HoldSteps <= 0 {
		o.HoldSteps = DefaultHoldSteps
	}
}

type request struct {
	intent Intent
	reply  chan RunState
}

// Engine owns a single run and applies intents to it. All state changes
// happen on the goroutine executing Run; other goroutines communicate with
// it through Send, Dispatch and Events.
type Engine struct {
	clock    clockwork.Clock
	requests chan request
	events   chan Event
	done     chan struct{}

	snapshot RunState
	mu       sync.RWMutex

	opts    Options
	started atomic.Bool

	// Fields below are only touched by the Run goroutine.
	state         RunState
	startedAt     time.Time
	holdStartedAt time.Time
	ticker        clockwork.Ticker
	hold          clockwork.Ticker
}

// NewEngine creates an engine in the Ready phase for opts.Target.
func NewEngine(opts Options) (*Engine, error) {
	if !ValidTarget(opts.Target) {
		return nil, errInvalidTarget.Fmt(opts.Target, MinTarget, MaxTarget)
	}

	opts.setDefaults()

	e := &Engine{
		clock:    opts.Clock,
		opts:     opts,
		requests: make(chan request, requestBuffer),
		events:   make(chan Event, eventBuffer),
		done:     make(chan struct{}),
		state:    newRunState(opts.Target),
	}

	e.snapshot = e.state.Clone()

	return e, nil
}

// Events returns the channel on which engine events are delivered. It is
// closed when Run returns.
func (e *Engine) Events() <-chan Event {
	return e.events
}

// State returns a copy of the state as of the last processed intent or
// tick.
func (e *Engine) State() RunState {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.snapshot.Clone()
}

// Send queues an intent without waiting for it to be applied. Intents sent
// after Run has returned are dropped.
func (e *Engine) Send(i Intent) {
	select {
	case e.requests <- request{intent: i}:
	case <-e.done:
	}
}

// Dispatch applies an intent and returns the resulting state.
func (e *Engine) Dispatch(ctx context.Context, i Intent) (RunState, error) {
	reply := make(chan RunState, 1)

	select {
	case e.requests <- request{intent: i, reply: reply}:
	case <-e.done:
		return e.State(), errEngineStopped
	case <-ctx.Done():
		return e.State(), ctx.Err()
	}

	select {
	case st := <-reply:
		return st, nil
	case <-e.done:
		return e.State(), errEngineStopped
	case <-ctx.Done():
		return e.State(), ctx.Err()
	}
}

// Run processes intents and timer ticks until ctx is cancelled. It may only
// be called once.
func (e *Engine) Run(ctx context.Context) error {
	if !e.started.CompareAndSwap(false, true) {
		return errEngineStarted
	}

	defer func() {
		e.stopTicker()
		e.stopHold()
		close(e.done)
		close(e.events)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case req := <-e.requests:
			e.handle(ctx, req.intent)
			e.publish()

			if req.reply != nil {
				req.reply <- e.state.Clone()
			}

		case <-tickerChan(e.ticker):
			e.tick(ctx)
			e.publish()

		case <-tickerChan(e.hold):
			e.advanceHold(ctx)
			e.publish()
		}
	}
}

func tickerChan(t clockwork.Ticker) <-chan time.Time {
	if t == nil {
		return nil
	}

	return t.Chan()
}

func (e *Engine) publish() {
	e.mu.Lock()
	e.snapshot = e.state.Clone()
	e.mu.Unlock()
}

func (e *Engine) emit(ctx context.Context, ev Event) {
	if lossy(ev) {
		select {
		case e.events <- ev:
		default:
		}

		return
	}

	select {
	case e.events <- ev:
	case <-ctx.Done():
	}
}

func (e *Engine) ignore(i Intent) {
	slog.Debug(
		"ignoring intent",
		slog.String("intent", fmt.Sprintf("%T", i)),
		slog.String("phase", e.state.Phase.String()),
	)
}

func (e *Engine) handle(ctx context.Context, i Intent) {
	switch in := i.(type) {
	case SelectTarget:
		e.selectTarget(ctx, in)
	case Start:
		e.start(ctx, in)
	case Stop:
		e.stop(ctx, in, false)
	case Continue:
		e.continueRun(ctx, in)
	case BeginFinishHold:
		e.beginHold(ctx, in)
	case CancelFinishHold:
		e.cancelHold(ctx, in)
	case Reset:
		e.reset(ctx)
	case Finalize:
		e.finalize(ctx, false)
	default:
		e.ignore(i)
	}
}

func (e *Engine) setPhase(ctx context.Context, p Phase) {
	e.state.Phase = p
	e.emit(ctx, PhaseChanged{Phase: p})
}

func (e *Engine) selectTarget(ctx context.Context, in SelectTarget) {
	if !ValidTarget(in.Seconds) || e.state.Phase == Running {
		e.ignore(in)
		return
	}

	e.clearHold(ctx)

	e.state = newRunState(in.Seconds)
	e.setPhase(ctx, Ready)
}

func (e *Engine) start(ctx context.Context, in Start) {
	if e.state.Phase != Ready {
		e.ignore(in)
		return
	}

	e.stopTicker()

	e.startedAt = e.clock.Now()
	e.state.ElapsedSeconds = 0
	e.ticker = e.clock.NewTicker(e.opts.TickInterval)

	e.setPhase(ctx, Running)
	e.emit(ctx, HapticRequested{Feedback: haptics.FeedbackMedium})
}

// tick recomputes the elapsed time. The value stored here is exactly the
// value recorded by stop.
func (e *Engine) tick(ctx context.Context) {
	if e.state.Phase != Running {
		return
	}

	elapsed := e.clock.Since(e.startedAt).Seconds()
	if elapsed < e.state.ElapsedSeconds {
		elapsed = e.state.ElapsedSeconds
	}

	e.state.ElapsedSeconds = elapsed
	e.emit(ctx, RunningTimeUpdated{ElapsedSeconds: elapsed})

	limit := float64(e.state.TargetSeconds) + e.opts.GraceWindow.Seconds()
	if elapsed > limit {
		slog.Debug(
			"grace window exceeded",
			slog.Int("target", e.state.TargetSeconds),
			slog.Float64("elapsed", elapsed),
		)

		e.stop(ctx, Stop{}, true)
	}
}

func (e *Engine) stop(ctx context.Context, in Stop, auto bool) {
	if e.state.Phase != Running {
		e.ignore(in)
		return
	}

	e.stopTicker()

	attempt := session.NewAttempt(e.state.TargetSeconds, e.state.ElapsedSeconds)
	e.state.Attempts = append(e.state.Attempts, attempt)

	e.setPhase(ctx, Stopped)

	e.emit(ctx, AttemptRecorded{
		Attempt:       attempt,
		Attempts:      e.state.Clone().Attempts,
		TargetSeconds: e.state.TargetSeconds,
		AutoStopped:   auto,
	})
	e.emit(ctx, HapticRequested{Feedback: haptics.FeedbackMedium})
}

func (e *Engine) continueRun(ctx context.Context, in Continue) {
	if e.state.Phase != Stopped {
		e.ignore(in)
		return
	}

	e.clearHold(ctx)

	e.state.ElapsedSeconds = 0
	e.setPhase(ctx, Ready)
}

func (e *Engine) beginHold(ctx context.Context, in BeginFinishHold) {
	if e.state.Phase != Stopped {
		e.ignore(in)
		return
	}

	e.stopHold()

	e.holdStartedAt = e.clock.Now()
	e.hold = e.clock.NewTicker(e.stepInterval())
	e.state.FinishHoldProgress = 0

	e.emit(ctx, FinishProgressUpdated{Progress: 0})
	e.emit(ctx, HapticRequested{Feedback: haptics.FeedbackLight})
}

func (e *Engine) cancelHold(ctx context.Context, in CancelFinishHold) {
	if e.hold == nil {
		e.ignore(in)
		return
	}

	e.clearHold(ctx)
}

func (e *Engine) stepInterval() time.Duration {
	return e.opts.HoldDuration / time.Duration(e.opts.HoldSteps)
}

// advanceHold moves the ramp to the step reached by the time held so far.
func (e *Engine) advanceHold(ctx context.Context) {
	if e.hold == nil || e.state.Phase != Stopped {
		return
	}

	steps := e.opts.HoldSteps

	step := int(e.clock.Since(e.holdStartedAt) / e.stepInterval())
	if step > steps {
		step = steps
	}

	progress := float64(step) / float64(steps)
	if progress == e.state.FinishHoldProgress {
		return
	}

	e.state.FinishHoldProgress = progress
	e.emit(ctx, FinishProgressUpdated{Progress: progress})

	if step == steps {
		e.finalize(ctx, true)
	}
}

// clearHold stops an active ramp and resets its progress.
func (e *Engine) clearHold(ctx context.Context) {
	if e.hold == nil {
		return
	}

	e.stopHold()

	e.state.FinishHoldProgress = 0
	e.emit(ctx, FinishProgressUpdated{Progress: 0})
}

func (e *Engine) reset(ctx context.Context) {
	e.stopTicker()
	e.clearHold(ctx)

	e.state = newRunState(e.state.TargetSeconds)
	e.setPhase(ctx, Ready)
}

// finalize hands the run's attempts over as a completed session and starts
// a fresh run for the same target.
func (e *Engine) finalize(ctx context.Context, viaHold bool) {
	held := e.hold != nil

	e.stopTicker()
	e.stopHold()

	target := e.state.TargetSeconds
	attempts := e.state.Attempts

	e.state = newRunState(target)

	if len(attempts) == 0 {
		if held {
			e.emit(ctx, FinishProgressUpdated{Progress: 0})
		}

		e.setPhase(ctx, Ready)

		return
	}

	sess := session.New(target, attempts, e.clock.Now())

	slog.Info(
		"session finalized",
		slog.String("id", sess.ID.String()),
		slog.Int("target", target),
		slog.Int("attempts", len(attempts)),
		slog.Bool("hold", viaHold),
	)

	e.emit(ctx, SessionFinalized{Session: sess})

	if viaHold {
		e.emit(ctx, HapticRequested{Feedback: haptics.FeedbackSuccess})
	}

	if held {
		e.emit(ctx, FinishProgressUpdated{Progress: 0})
	}

	e.setPhase(ctx, Ready)
}

func (e *Engine) stopTicker() {
	if e.ticker != nil {
		e.ticker.Stop()
		e.ticker = nil
	}
}

func (e *Engine) stopHold() {
	if e.hold != nil {
		e.hold.Stop()
		e.hold = nil
	}
}
