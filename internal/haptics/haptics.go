// Package haptics provides feedback for timer actions on the host platform
package haptics

import (
	"log/slog"
)

// Intensity is the strength of an impact.
type Intensity int

const (
	Light Intensity = iota
	Medium
	Heavy
)

// Outcome is the kind of notification feedback.
type Outcome int

const (
	Success Outcome = iota
	Warning
	Error
)

// Provider is implemented by each platform that can give feedback.
type Provider interface {
	Impact(intensity Intensity)
	Notify(outcome Outcome)
}

// Feedback names a single feedback request.
type Feedback string

const (
	FeedbackLight   Feedback = "light"
	FeedbackMedium  Feedback = "medium"
	FeedbackHeavy   Feedback = "heavy"
	FeedbackSuccess Feedback = "success"
	FeedbackWarning Feedback = "warning"
	FeedbackError   Feedback = "error"
)

// Play routes a feedback request to the matching provider method.
func Play(p Provider, f Feedback) {
	switch f {
	case FeedbackLight:
		p.Impact(Light)
	case FeedbackMedium:
		p.Impact(Medium)
	case FeedbackHeavy:
		p.Impact(Heavy)
	case FeedbackSuccess:
		p.Notify(Success)
	case FeedbackWarning:
		p.Notify(Warning)
	case FeedbackError:
		p.Notify(Error)
	default:
		slog.Debug("unknown feedback", slog.String("feedback", string(f)))
	}
}

// Nop discards all feedback.
type Nop struct{}

func (Nop) Impact(Intensity) {}

func (Nop) Notify(Outcome) {}

const (
	ProviderDesktop = "desktop"
	ProviderTone    = "tone"
	ProviderOff     = "off"
)

// Names lists the provider names accepted by New.
var Names = []string{ProviderDesktop, ProviderTone, ProviderOff}

// New returns the provider registered under name. Unknown names fall back
// to Nop.
func New(name string) Provider {
	switch name {
	case ProviderDesktop:
		return &Desktop{}
	case ProviderTone:
		return &Tone{}
	default:
		return Nop{}
	}
}
