package timer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/ayoisaiah/timestop/internal/timeutil"
)

func (m *Model) headerView() string {
	var s strings.Builder

	s.WriteString(m.style.Title.Render("TimeStop"))
	s.WriteString(m.style.Hint.Render(
		fmt.Sprintf("  target %ds [%s]", m.state.TargetSeconds, m.state.Phase),
	))

	return s.String()
}

func (m *Model) elapsedView() string {
	var s strings.Builder

	s.WriteString(m.style.Main.Render(timeutil.FormatSeconds(m.state.ElapsedSeconds)))

	last, ok := m.state.LastAttempt()
	if m.state.Phase != Stopped || !ok {
		return s.String()
	}

	diff := last.Difference()

	s.WriteString("  ")
	s.WriteString(
		m.style.Accuracy(last.Accuracy()).Render(timeutil.FormatDifference(diff)),
	)

	if m.autoStopped {
		s.WriteString(m.style.Hint.Render("  (auto-stopped)"))
	}

	return s.String()
}

func (m *Model) attemptsView() string {
	if len(m.state.Attempts) == 0 {
		return m.style.Hint.Render(
			fmt.Sprintf("Stop the timer as close to %ds as you can", m.state.TargetSeconds),
		)
	}

	var s strings.Builder

	for i, a := range m.state.Attempts {
		if i > 0 {
			s.WriteString("\n")
		}

		s.WriteString(m.style.Secondary.Render(
			fmt.Sprintf("#%-3d %8s  ", i+1, timeutil.FormatSeconds(a.ActualSeconds)),
		))
		s.WriteString(m.style.Accuracy(a.Accuracy()).Render(
			timeutil.FormatDifference(a.Difference()),
		))
	}

	return s.String()
}

func (m *Model) peerView() string {
	var lines []string

	if m.received != nil {
		from := m.peerLabel
		if from == "" {
			from = "paired device"
		}

		sess := m.received.Session

		line := fmt.Sprintf(
			"From %s: %d attempt(s) at %ds",
			from,
			len(sess.Attempts),
			sess.TargetSeconds,
		)

		if best, ok := sess.BestAttempt(); ok {
			line += ", best " + timeutil.FormatDifference(best.Difference())
		}

		lines = append(lines, m.style.Hint.Render(line))
	}

	if m.saved != nil {
		best, _ := m.saved.BestAttempt()

		lines = append(lines, m.style.Hint.Render(fmt.Sprintf(
			"Saved %d attempt(s) at %ds, best %s",
			len(m.saved.Attempts),
			m.saved.TargetSeconds,
			timeutil.FormatDifference(best.Difference()),
		)))
	}

	return strings.Join(lines, "\n")
}

func (m *Model) helpView() string {
	var bindings []key.Binding

	switch m.state.Phase {
	case Ready:
		bindings = []key.Binding{
			m.keys.toggle,
			m.keys.targetUp,
			m.keys.targetDown,
			m.keys.quit,
		}
	case Running:
		bindings = []key.Binding{
			m.keys.toggle,
			m.keys.reset,
			m.keys.quit,
		}
	case Stopped:
		bindings = []key.Binding{
			m.keys.resume,
			m.keys.hold,
			m.keys.reset,
			m.keys.quit,
		}
	}

	return m.help.ShortHelpView(bindings)
}

func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(m.headerView())
	s.WriteString("\n\n")
	s.WriteString(m.elapsedView())
	s.WriteString("\n\n")
	s.WriteString(m.attemptsView())

	if m.state.FinishHoldProgress > 0 {
		s.WriteString("\n\n")
		s.WriteString(m.progress.ViewAs(m.state.FinishHoldProgress))
	}

	if peer := m.peerView(); peer != "" {
		s.WriteString("\n\n")
		s.WriteString(peer)
	}

	s.WriteString("\n\n")
	s.WriteString(m.helpView())

	return m.style.Base.Render(s.String())
}
