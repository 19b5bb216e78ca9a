// Package session defines timing attempts and completed sessions
package session

import (
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Accuracy grades how close an attempt came to its target.
type Accuracy string

const (
	Good Accuracy = "good"
	Fair Accuracy = "fair"
	Poor Accuracy = "poor"
)

const (
	goodThreshold = 0.5
	fairThreshold = 1.0
)

// Grade returns the accuracy for a signed difference in seconds.
func Grade(difference float64) Accuracy {
	d := math.Abs(difference)

	switch {
	case d < goodThreshold:
		return Good
	case d < fairThreshold:
		return Fair
	default:
		return Poor
	}
}

// Attempt is a single timed stop against a target.
type Attempt struct {
	ID            uuid.UUID `json:"id"`
	TargetSeconds int       `json:"target_seconds"`
	ActualSeconds float64   `json:"actual_seconds"`
}

// NewAttempt records an attempt with a fresh identifier.
func NewAttempt(targetSeconds int, actualSeconds float64) Attempt {
	return Attempt{
		ID:            uuid.New(),
		TargetSeconds: targetSeconds,
		ActualSeconds: actualSeconds,
	}
}

// Difference is the signed deviation from the target in seconds.
func (a Attempt) Difference() float64 {
	return a.ActualSeconds - float64(a.TargetSeconds)
}

func (a Attempt) Accuracy() Accuracy {
	return Grade(a.Difference())
}

// Session is a finalized group of attempts against one target. A Session
// must not be modified after it is created.
type Session struct {
	CompletedAt   time.Time `json:"completed_at"`
	Attempts      []Attempt `json:"attempts"`
	TargetSeconds int       `json:"target_seconds"`
	ID            uuid.UUID `json:"id"`
}

// New creates a session from a copy of the attempts.
func New(targetSeconds int, attempts []Attempt, completedAt time.Time) Session {
	return Session{
		ID:            uuid.New(),
		TargetSeconds: targetSeconds,
		Attempts:      slices.Clone(attempts),
		CompletedAt:   completedAt,
	}
}

// BestAttempt returns the attempt closest to the target. Ties go to the
// earliest attempt.
func (s Session) BestAttempt() (Attempt, bool) {
	if len(s.Attempts) == 0 {
		return Attempt{}, false
	}

	best := s.Attempts[0]

	for _, a := range s.Attempts[1:] {
		if math.Abs(a.Difference()) < math.Abs(best.Difference()) {
			best = a
		}
	}

	return best, true
}

// AverageAbsoluteDifference is the mean absolute deviation across all
// attempts, or 0 when there are none.
func (s Session) AverageAbsoluteDifference() float64 {
	if len(s.Attempts) == 0 {
		return 0
	}

	var total float64
	for _, a := range s.Attempts {
		total += math.Abs(a.Difference())
	}

	return total / float64(len(s.Attempts))
}
