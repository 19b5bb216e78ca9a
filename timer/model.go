package timer

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayoisaiah/timestop/internal/session"
)

const (
	padding  = 2
	maxWidth = 60

	// DefaultHoldRelease is how long after the last repeat of the hold key
	// the hold is considered released. Terminals only report key repeats,
	// never key releases.
	DefaultHoldRelease = 600 * time.Millisecond
)

// ReceivedMsg reports a session sent by the paired device.
type ReceivedMsg struct {
	At      time.Time
	Session session.Session
	Kind    string
}

type (
	eventMsg struct {
		event Event
	}

	stateMsg struct {
		state RunState
	}

	holdCheckMsg struct{}

	errMsg struct {
		err error
	}
)

// UIOptions configures the terminal UI.
type UIOptions struct {
	Style       Style
	HoldRelease time.Duration
	// PeerLabel names the paired device, if any
	PeerLabel string
}

// Model is the bubbletea model that renders a run and turns key presses
// into engine intents.
type Model struct {
	ctx         context.Context
	engine      *Engine
	lastHoldKey time.Time
	received    *ReceivedMsg
	saved       *session.Session
	style       Style
	peerLabel   string
	keys        keymap
	help        help.Model
	progress    progress.Model
	state       RunState
	holdRelease time.Duration
	holding     bool
	autoStopped bool
}

// NewModel creates the UI for an engine.
func NewModel(e *Engine, opts UIOptions) *Model {
	if opts.HoldRelease <= 0 {
		opts.HoldRelease = DefaultHoldRelease
	}

	p := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	p.Width = maxWidth

	return &Model{
		ctx:         context.Background(),
		engine:      e,
		state:       e.State(),
		style:       opts.Style,
		peerLabel:   opts.PeerLabel,
		holdRelease: opts.HoldRelease,
		keys:        defaultKeymap,
		help:        help.New(),
		progress:    p,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// dispatch applies an intent off the UI goroutine and reports the
// resulting state.
func (m *Model) dispatch(i Intent) tea.Cmd {
	ctx, e := m.ctx, m.engine

	return func() tea.Msg {
		st, err := e.Dispatch(ctx, i)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return errMsg{err: err}
		}

		return stateMsg{state: st}
	}
}

func (m *Model) checkHold() tea.Cmd {
	return tea.Tick(m.holdRelease, func(time.Time) tea.Msg {
		return holdCheckMsg{}
	})
}
