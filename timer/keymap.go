package timer

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	toggle     key.Binding
	resume     key.Binding
	hold       key.Binding
	esc        key.Binding
	reset      key.Binding
	targetUp   key.Binding
	targetDown key.Binding
	quit       key.Binding
}

var defaultKeymap = keymap{
	toggle: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "start/stop"),
	),
	resume: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "continue"),
	),
	hold: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("hold f", "finish"),
	),
	esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	targetUp: key.NewBinding(
		key.WithKeys("up", "k", "+"),
		key.WithHelp("↑/k", "target +1s"),
	),
	targetDown: key.NewBinding(
		key.WithKeys("down", "j", "-"),
		key.WithHelp("↓/j", "target -1s"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
