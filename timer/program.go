package timer

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Program runs an engine behind the terminal UI and carries out the side
// effects of its events.
type Program struct {
	engine  *Engine
	effects *Effects
	model   *Model
	program *tea.Program
}

// NewProgram prepares the UI for e. Side effects are applied by fx.
func NewProgram(
	e *Engine,
	fx *Effects,
	opts UIOptions,
	teaOpts ...tea.ProgramOption,
) *Program {
	if fx == nil {
		fx = &Effects{}
	}

	m := NewModel(e, opts)

	return &Program{
		engine:  e,
		effects: fx,
		model:   m,
		program: tea.NewProgram(m, teaOpts...),
	}
}

// Send delivers a message to the UI, for example a ReceivedMsg. It does
// nothing once the UI has exited.
func (p *Program) Send(msg tea.Msg) {
	p.program.Send(msg)
}

// Run blocks until the user quits. A run with attempts is finalized on the
// way out so that it is saved.
func (p *Program) Run(ctx context.Context) error {
	// the engine outlives ctx long enough to finalize the run
	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()

	p.model.ctx = ctx

	engineErr := make(chan error, 1)

	go func() {
		engineErr <- p.engine.Run(ctx)
	}()

	forwarded := make(chan struct{})

	go func() {
		defer close(forwarded)

		for ev := range p.engine.Events() {
			p.effects.Apply(ev)
			p.program.Send(eventMsg{event: ev})
		}
	}()

	_, err := p.program.Run()

	_, finalizeErr := p.engine.Dispatch(ctx, Finalize{})

	cancel()
	<-forwarded

	return errors.Join(err, <-engineErr, finalizeErr)
}
