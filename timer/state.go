package timer

import (
	"slices"

	"github.com/ayoisaiah/timestop/internal/session"
)

// Phase is the position of a run in the timer state machine.
type Phase int

const (
	Ready Phase = iota
	Running
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

const (
	MinTarget = 1
	MaxTarget = 60
)

// ValidTarget reports whether seconds can be used as a target time.
func ValidTarget(seconds int) bool {
	return seconds >= MinTarget && seconds <= MaxTarget
}

// RunState is the live state of one multi-attempt run.
type RunState struct {
	Attempts           []session.Attempt
	TargetSeconds      int
	ElapsedSeconds     float64
	FinishHoldProgress float64
	Phase              Phase
}

func newRunState(target int) RunState {
	return RunState{
		TargetSeconds: target,
		Phase:         Ready,
	}
}

// Clone returns a deep copy of the state.
func (s RunState) Clone() RunState {
	s.Attempts = slices.Clone(s.Attempts)
	return s
}

// LastAttempt returns the most recently recorded attempt.
func (s RunState) LastAttempt() (session.Attempt, bool) {
	if len(s.Attempts) == 0 {
		return session.Attempt{}, false
	}

	return s.Attempts[len(s.Attempts)-1], true
}
