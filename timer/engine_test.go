package timer

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/timestop/internal/haptics"
)

const eventTimeout = 2 * time.Second

type engineHarness struct {
	*Engine
	clock *clockwork.FakeClock
	ctx   context.Context
}

func newHarness(t *testing.T, target int) *engineHarness {
	t.Helper()

	clock := clockwork.NewFakeClock()

	e, err := NewEngine(Options{
		Clock:  clock,
		Target: target,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)

		_ = e.Run(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		<-done
	})

	return &engineHarness{Engine: e, clock: clock, ctx: ctx}
}

func (h *engineHarness) dispatch(t *testing.T, i Intent) RunState {
	t.Helper()

	st, err := h.Dispatch(h.ctx, i)
	require.NoError(t, err)

	return st
}

// runAttempt starts an attempt, lets d pass and stops it.
func (h *engineHarness) runAttempt(t *testing.T, d time.Duration) AttemptRecorded {
	t.Helper()

	h.dispatch(t, Start{})
	h.clock.Advance(d)
	waitMatch(t, h.Engine, func(ev Event) bool {
		u, ok := ev.(RunningTimeUpdated)
		return ok && u.ElapsedSeconds == d.Seconds()
	})
	h.dispatch(t, Stop{})

	return waitFor[AttemptRecorded](t, h.Engine)
}

func waitFor[T Event](t *testing.T, e *Engine) T {
	t.Helper()

	ev := waitMatch(t, e, func(ev Event) bool {
		_, ok := ev.(T)
		return ok
	})

	v, _ := ev.(T)

	return v
}

func waitMatch(t *testing.T, e *Engine, match func(Event) bool) Event {
	t.Helper()

	timeout := time.After(eventTimeout)

	for {
		select {
		case ev, ok := <-e.Events():
			if !ok {
				t.Fatal("event stream closed")
				return nil
			}

			if match(ev) {
				return ev
			}
		case <-timeout:
			t.Fatal("timed out waiting for event")
			return nil
		}
	}
}

// drain returns the events already queued without waiting for more.
func drain(e *Engine) []Event {
	var events []Event

	for {
		select {
		case ev, ok := <-e.Events():
			if !ok {
				return events
			}

			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestNewEngineRejectsInvalidTarget(t *testing.T) {
	for _, target := range []int{0, -5, 61} {
		_, err := NewEngine(Options{Target: target})
		assert.ErrorIs(t, err, errInvalidTarget, "target %d", target)
	}
}

func TestRunOnlyOnce(t *testing.T) {
	h := newHarness(t, 10)

	err := h.Run(context.Background())
	assert.ErrorIs(t, err, errEngineStarted)
}

func TestStopRecordsDisplayedTime(t *testing.T) {
	h := newHarness(t, 10)

	st := h.dispatch(t, Start{})
	assert.Equal(t, Running, st.Phase)

	h.clock.Advance(10345 * time.Millisecond)
	shown := waitFor[RunningTimeUpdated](t, h.Engine)

	st = h.dispatch(t, Stop{})
	rec := waitFor[AttemptRecorded](t, h.Engine)

	assert.Equal(t, shown.ElapsedSeconds, rec.Attempt.ActualSeconds)
	assert.InDelta(t, 10.345, rec.Attempt.ActualSeconds, 1e-9)
	assert.InDelta(t, 0.345, rec.Attempt.Difference(), 1e-9)
	assert.False(t, rec.AutoStopped)
	assert.Equal(t, 10, rec.TargetSeconds)

	assert.Equal(t, Stopped, st.Phase)
	require.Len(t, st.Attempts, 1)
	assert.Equal(t, rec.Attempt, st.Attempts[0])
	assert.Equal(t, st.Attempts, rec.Attempts)
}

func TestElapsedIsMonotonic(t *testing.T) {
	h := newHarness(t, 30)

	h.dispatch(t, Start{})

	var last float64

	for range 5 {
		h.clock.Advance(250 * time.Millisecond)

		ev := waitFor[RunningTimeUpdated](t, h.Engine)
		assert.GreaterOrEqual(t, ev.ElapsedSeconds, last)

		last = ev.ElapsedSeconds
	}

	assert.InDelta(t, 1.25, h.State().ElapsedSeconds, 1e-9)
}

func TestAutoStopAfterGraceWindow(t *testing.T) {
	h := newHarness(t, 1)

	h.dispatch(t, Start{})

	h.clock.Advance(4 * time.Second)
	ev := waitFor[RunningTimeUpdated](t, h.Engine)
	assert.InDelta(t, 4.0, ev.ElapsedSeconds, 1e-9)

	st := h.dispatch(t, CancelFinishHold{})
	assert.Equal(t, Running, st.Phase, "exactly target + grace does not stop")

	h.clock.Advance(20 * time.Millisecond)
	rec := waitFor[AttemptRecorded](t, h.Engine)

	assert.True(t, rec.AutoStopped)
	assert.InDelta(t, 4.02, rec.Attempt.ActualSeconds, 1e-9)

	h.clock.Advance(10 * time.Second)

	st = h.dispatch(t, CancelFinishHold{})
	assert.Equal(t, Stopped, st.Phase)
	assert.Len(t, st.Attempts, 1)

	for _, ev := range drain(h.Engine) {
		_, ok := ev.(AttemptRecorded)
		assert.False(t, ok, "auto stop fired more than once")
	}
}

func TestInvalidIntentsAreIgnored(t *testing.T) {
	h := newHarness(t, 10)

	st := h.dispatch(t, Stop{})
	assert.Equal(t, Ready, st.Phase)
	assert.Empty(t, st.Attempts)

	st = h.dispatch(t, Continue{})
	assert.Equal(t, Ready, st.Phase)

	st = h.dispatch(t, BeginFinishHold{})
	assert.Zero(t, st.FinishHoldProgress)

	h.dispatch(t, Start{})

	st = h.dispatch(t, Start{})
	assert.Equal(t, Running, st.Phase)

	st = h.dispatch(t, BeginFinishHold{})
	assert.Equal(t, Running, st.Phase)
	assert.Zero(t, st.FinishHoldProgress)
}

func TestContinueKeepsAttempts(t *testing.T) {
	h := newHarness(t, 5)

	first := h.runAttempt(t, 4800*time.Millisecond)

	st := h.dispatch(t, Continue{})
	assert.Equal(t, Ready, st.Phase)
	assert.Zero(t, st.ElapsedSeconds)
	assert.Len(t, st.Attempts, 1)

	second := h.runAttempt(t, 5200*time.Millisecond)

	st = h.State()
	require.Len(t, st.Attempts, 2)
	assert.Equal(t, first.Attempt, st.Attempts[0])
	assert.Equal(t, second.Attempt, st.Attempts[1])
	assert.Len(t, second.Attempts, 2)
}

func TestHoldToFinish(t *testing.T) {
	h := newHarness(t, 10)

	rec := h.runAttempt(t, 9900*time.Millisecond)

	h.dispatch(t, BeginFinishHold{})

	h.clock.Advance(DefaultHoldDuration)

	fin := waitFor[SessionFinalized](t, h.Engine)
	assert.Equal(t, 10, fin.Session.TargetSeconds)
	assert.Equal(t, rec.Attempts, fin.Session.Attempts)
	assert.Equal(t, h.clock.Now(), fin.Session.CompletedAt)

	fb := waitFor[HapticRequested](t, h.Engine)
	assert.Equal(t, haptics.FeedbackSuccess, fb.Feedback)

	h.clock.Advance(2 * DefaultHoldDuration)

	st := h.dispatch(t, CancelFinishHold{})
	assert.Equal(t, Ready, st.Phase)
	assert.Equal(t, 10, st.TargetSeconds)
	assert.Empty(t, st.Attempts)
	assert.Zero(t, st.FinishHoldProgress)

	for _, ev := range drain(h.Engine) {
		_, ok := ev.(SessionFinalized)
		assert.False(t, ok, "hold finalized the session twice")
	}
}

func TestFinalizeDuringHoldResetsProgress(t *testing.T) {
	h := newHarness(t, 10)

	h.runAttempt(t, 9*time.Second)
	h.dispatch(t, BeginFinishHold{})

	h.clock.Advance(DefaultHoldDuration / 2)
	waitMatch(t, h.Engine, func(ev Event) bool {
		p, ok := ev.(FinishProgressUpdated)
		return ok && p.Progress > 0
	})

	st := h.dispatch(t, Finalize{})
	assert.Equal(t, Ready, st.Phase)
	assert.Zero(t, st.FinishHoldProgress)

	waitFor[SessionFinalized](t, h.Engine)

	waitMatch(t, h.Engine, func(ev Event) bool {
		p, ok := ev.(FinishProgressUpdated)
		return ok && p.Progress == 0
	})

	for _, ev := range drain(h.Engine) {
		fb, ok := ev.(HapticRequested)
		assert.False(t, ok && fb.Feedback == haptics.FeedbackSuccess,
			"finalize without a completed hold played success")
	}
}

func TestHoldRampSteps(t *testing.T) {
	h := newHarness(t, 10)

	h.runAttempt(t, 9*time.Second)
	h.dispatch(t, BeginFinishHold{})

	step := DefaultHoldDuration / DefaultHoldSteps

	h.clock.Advance(10 * step)

	ev := waitMatch(t, h.Engine, func(ev Event) bool {
		p, ok := ev.(FinishProgressUpdated)
		return ok && p.Progress > 0
	})
	assert.InDelta(t, 1.0/3, ev.(FinishProgressUpdated).Progress, 1e-9)
}

func TestCancelledHoldDoesNotFinalize(t *testing.T) {
	h := newHarness(t, 10)

	h.runAttempt(t, 9*time.Second)
	h.dispatch(t, BeginFinishHold{})

	h.clock.Advance(DefaultHoldDuration / 2)
	waitMatch(t, h.Engine, func(ev Event) bool {
		p, ok := ev.(FinishProgressUpdated)
		return ok && p.Progress > 0
	})

	st := h.dispatch(t, CancelFinishHold{})
	assert.Zero(t, st.FinishHoldProgress)
	assert.Equal(t, Stopped, st.Phase)

	h.clock.Advance(2 * DefaultHoldDuration)

	st = h.dispatch(t, CancelFinishHold{})
	assert.Equal(t, Stopped, st.Phase)
	assert.Len(t, st.Attempts, 1)

	for _, ev := range drain(h.Engine) {
		_, ok := ev.(SessionFinalized)
		assert.False(t, ok, "cancelled hold finalized the session")
	}
}

func TestContinueCancelsHold(t *testing.T) {
	h := newHarness(t, 10)

	h.runAttempt(t, 9*time.Second)
	h.dispatch(t, BeginFinishHold{})

	st := h.dispatch(t, Continue{})
	assert.Equal(t, Ready, st.Phase)
	assert.Zero(t, st.FinishHoldProgress)

	h.clock.Advance(2 * DefaultHoldDuration)

	st = h.dispatch(t, CancelFinishHold{})
	assert.Equal(t, Ready, st.Phase)
	assert.Len(t, st.Attempts, 1)
}

func TestSelectTarget(t *testing.T) {
	h := newHarness(t, 10)

	st := h.dispatch(t, SelectTarget{Seconds: 0})
	assert.Equal(t, 10, st.TargetSeconds)

	st = h.dispatch(t, SelectTarget{Seconds: 61})
	assert.Equal(t, 10, st.TargetSeconds)

	st = h.dispatch(t, SelectTarget{Seconds: 60})
	assert.Equal(t, 60, st.TargetSeconds)

	h.dispatch(t, Start{})

	st = h.dispatch(t, SelectTarget{Seconds: 5})
	assert.Equal(t, 60, st.TargetSeconds, "target changed while running")

	h.dispatch(t, Stop{})

	st = h.dispatch(t, SelectTarget{Seconds: 5})
	assert.Equal(t, 5, st.TargetSeconds)
	assert.Equal(t, Ready, st.Phase)
	assert.Empty(t, st.Attempts)
}

func TestReset(t *testing.T) {
	h := newHarness(t, 20)

	h.runAttempt(t, 19*time.Second)

	st := h.dispatch(t, Reset{})
	assert.Equal(t, Ready, st.Phase)
	assert.Equal(t, 20, st.TargetSeconds)
	assert.Empty(t, st.Attempts)
	assert.Zero(t, st.ElapsedSeconds)
}

func TestFinalize(t *testing.T) {
	t.Run("without attempts", func(t *testing.T) {
		h := newHarness(t, 10)

		st := h.dispatch(t, Finalize{})
		assert.Equal(t, Ready, st.Phase)

		for _, ev := range drain(h.Engine) {
			_, ok := ev.(SessionFinalized)
			assert.False(t, ok, "empty run was finalized")
		}
	})

	t.Run("discards running attempt", func(t *testing.T) {
		h := newHarness(t, 10)

		rec := h.runAttempt(t, 10*time.Second)

		h.dispatch(t, Continue{})
		h.dispatch(t, Start{})

		st := h.dispatch(t, Finalize{})
		assert.Equal(t, Ready, st.Phase)
		assert.Empty(t, st.Attempts)

		fin := waitFor[SessionFinalized](t, h.Engine)
		assert.Equal(t, rec.Attempts, fin.Session.Attempts)
	})
}

func TestDispatchAfterRunReturns(t *testing.T) {
	e, err := NewEngine(Options{
		Clock:  clockwork.NewFakeClock(),
		Target: 10,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, e.Run(ctx))

	_, err = e.Dispatch(context.Background(), Start{})
	assert.ErrorIs(t, err, errEngineStopped)

	e.Send(Start{})

	_, ok := <-e.Events()
	assert.False(t, ok, "event stream still open")
}
