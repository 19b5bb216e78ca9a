package ui

import (
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/timestop/internal/session"
)

var DarkTheme bool

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Yellow(a any) string {
	if DarkTheme {
		return pterm.LightYellow(a)
	}

	return pterm.Yellow(a)
}

func Red(a any) string {
	if DarkTheme {
		return pterm.LightRed(a)
	}

	return pterm.Red(a)
}

func Highlight(a any) string {
	if DarkTheme {
		return pterm.LightWhite(a)
	}

	return pterm.Black(a)
}

// Accuracy colours a value by how close an attempt came to its target.
func Accuracy(a any, acc session.Accuracy) string {
	switch acc {
	case session.Good:
		return Green(a)
	case session.Fair:
		return Yellow(a)
	default:
		return Red(a)
	}
}
