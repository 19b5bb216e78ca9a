package timer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/timestop/internal/session"
)

// Style holds the styles used to render the timer.
type Style struct {
	Base      lipgloss.Style
	Title     lipgloss.Style
	Main      lipgloss.Style
	Secondary lipgloss.Style
	Hint      lipgloss.Style
	Good      lipgloss.Style
	Fair      lipgloss.Style
	Poor      lipgloss.Style
}

// NewStyle returns the timer styles for a light or dark terminal.
func NewStyle(dark bool) Style {
	fg, hint := lipgloss.Color("#1f2335"), lipgloss.Color("#6b7089")
	good, fair, poor := lipgloss.Color("#2e7d32"), lipgloss.Color("#b26a00"), lipgloss.Color("#c62828")

	if dark {
		fg, hint = lipgloss.Color("#e5e9f0"), lipgloss.Color("#8a8fa8")
		good, fair, poor = lipgloss.Color("#9ece6a"), lipgloss.Color("#e0af68"), lipgloss.Color("#f7768e")
	}

	return Style{
		Base:      lipgloss.NewStyle().Padding(1, padding),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(fg),
		Main:      lipgloss.NewStyle().Bold(true).Foreground(fg),
		Secondary: lipgloss.NewStyle().Foreground(fg),
		Hint:      lipgloss.NewStyle().Foreground(hint),
		Good:      lipgloss.NewStyle().Foreground(good),
		Fair:      lipgloss.NewStyle().Foreground(fair),
		Poor:      lipgloss.NewStyle().Foreground(poor),
	}
}

// Accuracy returns the style for an accuracy grade.
func (s Style) Accuracy(a session.Accuracy) lipgloss.Style {
	switch a {
	case session.Good:
		return s.Good
	case session.Fair:
		return s.Fair
	default:
		return s.Poor
	}
}
