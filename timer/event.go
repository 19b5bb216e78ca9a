package timer

import (
	"github.com/ayoisaiah/timestop/internal/haptics"
	"github.com/ayoisaiah/timestop/internal/session"
)

// Event is emitted by the engine for the UI and its collaborators.
type Event interface {
	event()
}

// RunningTimeUpdated carries the elapsed time computed on a tick.
type RunningTimeUpdated struct {
	ElapsedSeconds float64
}

// AttemptRecorded is emitted when an attempt is stopped, either by the
// user or by the grace window. Attempts holds every attempt of the run so
// far, including this one.
type AttemptRecorded struct {
	Attempts      []session.Attempt
	Attempt       session.Attempt
	TargetSeconds int
	AutoStopped   bool
}

// FinishProgressUpdated reports the hold-to-finish ramp progress in [0,1].
type FinishProgressUpdated struct {
	Progress float64
}

// SessionFinalized carries a completed run.
type SessionFinalized struct {
	Session session.Session
}

// HapticRequested asks the host to give feedback.
type HapticRequested struct {
	Feedback haptics.Feedback
}

// PhaseChanged is emitted after every phase transition.
type PhaseChanged struct {
	Phase Phase
}

func (RunningTimeUpdated) event()    {}
func (AttemptRecorded) event()       {}
func (FinishProgressUpdated) event() {}
func (SessionFinalized) event()      {}
func (HapticRequested) event()       {}
func (PhaseChanged) event()          {}

// lossy events are superseded by the next one of the same kind and may be
// dropped when the consumer falls behind. The ends of the hold ramp are
// always delivered.
func lossy(ev Event) bool {
	switch e := ev.(type) {
	case RunningTimeUpdated:
		return true
	case FinishProgressUpdated:
		return e.Progress > 0 && e.Progress < 1
	default:
		return false
	}
}
