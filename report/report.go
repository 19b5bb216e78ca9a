// Package report prints errors for the user
package report

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/timestop/internal/osutil"
)

func Error(err error) {
	pterm.Error.Println(err)
}

// Fatal prints err and quits the terminal UI.
func Fatal(err error) tea.Cmd {
	pterm.Error.Println(err)
	return tea.Quit
}

func Quit(err error) {
	pterm.Error.Println(err)
	os.Exit(osutil.ExitError.Int())
}
