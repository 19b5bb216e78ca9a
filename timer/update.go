package timer

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/timestop/report"
)

// handleEvent folds an engine event into the displayed state.
func (m *Model) handleEvent(ev Event) (tea.Model, tea.Cmd) {
	switch e := ev.(type) {
	case RunningTimeUpdated:
		if m.state.Phase == Running {
			m.state.ElapsedSeconds = e.ElapsedSeconds
		}

	case AttemptRecorded:
		m.state.Attempts = e.Attempts
		m.state.ElapsedSeconds = e.Attempt.ActualSeconds
		m.state.Phase = Stopped
		m.autoStopped = e.AutoStopped

	case FinishProgressUpdated:
		m.state.FinishHoldProgress = e.Progress

	case SessionFinalized:
		sess := e.Session
		m.saved = &sess
		m.state = newRunState(m.state.TargetSeconds)
		m.holding = false

	case PhaseChanged:
		m.state.Phase = e.Phase

		if e.Phase == Running {
			m.autoStopped = false
		}
	}

	return m, nil
}

func (m *Model) handleHoldKey() (tea.Model, tea.Cmd) {
	m.lastHoldKey = time.Now()

	if m.holding || m.state.Phase != Stopped {
		return m, nil
	}

	m.holding = true

	return m, tea.Batch(m.dispatch(BeginFinishHold{}), m.checkHold())
}

// handleHoldCheck cancels the hold once the hold key stops repeating.
func (m *Model) handleHoldCheck() (tea.Model, tea.Cmd) {
	if !m.holding {
		return m, nil
	}

	if time.Since(m.lastHoldKey) < m.holdRelease {
		return m, m.checkHold()
	}

	m.holding = false

	return m, m.dispatch(CancelFinishHold{})
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	slog.Debug("key press", slog.String("msg", spew.Sdump(msg)))

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.hold):
		return m.handleHoldKey()
	}

	var cmds []tea.Cmd

	// any other key releases the hold
	if m.holding {
		m.holding = false
		cmds = append(cmds, m.dispatch(CancelFinishHold{}))
	}

	switch {
	case key.Matches(msg, m.keys.toggle):
		if m.state.Phase == Running {
			cmds = append(cmds, m.dispatch(Stop{}))
		} else {
			cmds = append(cmds, m.dispatch(Start{}))
		}

	case key.Matches(msg, m.keys.resume):
		cmds = append(cmds, m.dispatch(Continue{}))

	case key.Matches(msg, m.keys.reset):
		cmds = append(cmds, m.dispatch(Reset{}))

	case key.Matches(msg, m.keys.targetUp):
		if m.state.Phase != Running && m.state.TargetSeconds < MaxTarget {
			cmds = append(cmds, m.dispatch(SelectTarget{Seconds: m.state.TargetSeconds + 1}))
		}

	case key.Matches(msg, m.keys.targetDown):
		if m.state.Phase != Running && m.state.TargetSeconds > MinTarget {
			cmds = append(cmds, m.dispatch(SelectTarget{Seconds: m.state.TargetSeconds - 1}))
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m.handleEvent(msg.event)

	case stateMsg:
		m.state = msg.state

		if m.state.Phase != Stopped {
			m.holding = false
		}

		return m, nil

	case errMsg:
		return m, report.Fatal(msg.err)

	case ReceivedMsg:
		m.received = &msg

		return m, nil

	case holdCheckMsg:
		return m.handleHoldCheck()

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - padding*2 - 4
		if m.progress.Width > maxWidth {
			m.progress.Width = maxWidth
		}

		return m, nil
	}

	return m, nil
}
