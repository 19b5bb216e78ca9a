package timer

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/timestop/internal/session"
)

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyHold  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
)

// runCmd executes cmd and any batched commands, returning their messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()

	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg

		for _, c := range batch {
			msgs = append(msgs, runCmd(c)...)
		}

		return msgs
	}

	if msg == nil {
		return nil
	}

	return []tea.Msg{msg}
}

// press sends a key to the model and feeds back the state it produces.
// Other messages are returned to the caller.
func press(m *Model, k tea.KeyMsg) []tea.Msg {
	_, cmd := m.Update(k)

	var rest []tea.Msg

	for _, msg := range runCmd(cmd) {
		if _, ok := msg.(stateMsg); ok {
			m.Update(msg)
			continue
		}

		rest = append(rest, msg)
	}

	return rest
}

func newTestModel(t *testing.T, h *engineHarness) *Model {
	t.Helper()

	m := NewModel(h.Engine, UIOptions{
		Style:       NewStyle(false),
		HoldRelease: 10 * time.Millisecond,
		PeerLabel:   "watch",
	})
	m.ctx = h.ctx

	return m
}

func TestModelStartStop(t *testing.T) {
	h := newHarness(t, 10)
	m := newTestModel(t, h)

	assert.Contains(t, m.View(), "target 10s [ready]")

	press(m, keySpace)
	assert.Equal(t, Running, m.state.Phase)

	h.clock.Advance(10345 * time.Millisecond)
	m.Update(eventMsg{event: waitFor[RunningTimeUpdated](t, h.Engine)})

	assert.Contains(t, m.View(), "10.345")

	press(m, keySpace)
	assert.Equal(t, Stopped, m.state.Phase)
	require.Len(t, m.state.Attempts, 1)

	view := m.View()
	assert.Contains(t, view, "+0.345")
	assert.Contains(t, view, "#1")
	assert.NotContains(t, view, "auto-stopped")
}

func TestModelTargetKeys(t *testing.T) {
	h := newHarness(t, 10)
	m := newTestModel(t, h)

	press(m, keyUp)
	assert.Equal(t, 11, m.state.TargetSeconds)
	assert.Equal(t, 11, h.State().TargetSeconds)

	press(m, keySpace)

	_, cmd := m.Update(keyUp)
	assert.Nil(t, runCmd(cmd), "target changed while running")
}

func TestModelHoldReleasedWhenKeyStopsRepeating(t *testing.T) {
	h := newHarness(t, 10)
	h.runAttempt(t, 9*time.Second)

	m := newTestModel(t, h)
	m.state = h.State()

	rest := press(m, keyHold)
	assert.True(t, m.holding)
	assert.Equal(t, []tea.Msg{holdCheckMsg{}}, rest)

	ev := waitMatch(t, h.Engine, func(ev Event) bool {
		_, ok := ev.(FinishProgressUpdated)
		return ok
	})
	m.Update(eventMsg{event: ev})

	_, cmd := m.Update(holdCheckMsg{})
	for _, msg := range runCmd(cmd) {
		m.Update(msg)
	}

	assert.False(t, m.holding)

	st := h.State()
	assert.Equal(t, Stopped, st.Phase)
	assert.Zero(t, st.FinishHoldProgress)
	assert.Len(t, st.Attempts, 1)
}

func TestModelFoldsEvents(t *testing.T) {
	e, err := NewEngine(Options{Target: 10})
	require.NoError(t, err)

	m := NewModel(e, UIOptions{Style: NewStyle(true), PeerLabel: "watch"})

	m.Update(eventMsg{event: PhaseChanged{Phase: Running}})
	m.Update(eventMsg{event: RunningTimeUpdated{ElapsedSeconds: 13.02}})

	auto := session.NewAttempt(10, 13.02)
	m.Update(eventMsg{event: AttemptRecorded{
		Attempt:       auto,
		Attempts:      []session.Attempt{auto},
		TargetSeconds: 10,
		AutoStopped:   true,
	}})

	assert.Equal(t, Stopped, m.state.Phase)
	assert.Contains(t, m.View(), "(auto-stopped)")
	assert.Contains(t, m.View(), "+3.020")

	m.Update(eventMsg{event: FinishProgressUpdated{Progress: 0.5}})
	assert.InDelta(t, 0.5, m.state.FinishHoldProgress, 1e-9)

	sess := session.New(10, []session.Attempt{auto}, time.Now())
	m.Update(eventMsg{event: SessionFinalized{Session: sess}})

	assert.Equal(t, Ready, m.state.Phase)
	assert.Empty(t, m.state.Attempts)
	assert.Zero(t, m.state.FinishHoldProgress)
	assert.Contains(t, m.View(), "Saved 1 attempt(s) at 10s, best +3.020")

	peerSess := session.New(5, []session.Attempt{
		session.NewAttempt(5, 5.2),
		session.NewAttempt(5, 4.95),
	}, time.Now())

	m.Update(ReceivedMsg{Session: peerSess, Kind: "context"})
	assert.Contains(t, m.View(), "From watch: 2 attempt(s) at 5s, best -0.050")
}

func TestModelQuit(t *testing.T) {
	e, err := NewEngine(Options{Target: 10})
	require.NoError(t, err)

	m := NewModel(e, UIOptions{})

	_, cmd := m.Update(keyQuit)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
