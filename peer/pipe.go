package peer

import (
	"context"
	"slices"
	"sync"
)

// pipeState is shared by both ends of a pipe.
type pipeState struct {
	mu     sync.Mutex
	linked bool
}

// PipeEnd is one side of an in-process transport pair.
type PipeEnd struct {
	state    *pipeState
	other    *PipeEnd
	receiver Receiver
	// context waiting for the other end to become reachable
	pending   []byte
	activated bool
}

// NewPipe returns two linked transports. Whatever one end sends, the other
// receives.
func NewPipe() (*PipeEnd, *PipeEnd) {
	st := &pipeState{linked: true}

	a := &PipeEnd{state: st}
	b := &PipeEnd{state: st}

	a.other = b
	b.other = a

	return a, b
}

// delivery is a callback collected under the lock and run after it is
// released.
type delivery func()

func run(ds []delivery) {
	for _, d := range ds {
		d()
	}
}

func (p *PipeEnd) reachable() bool {
	return p.activated && p.state.linked && p.other.activated
}

func (p *PipeEnd) status() Status {
	return Status{
		Activated: p.activated,
		Reachable: p.reachable(),
	}
}

// statusDeliveries notifies both activated ends of their current status and
// hands over any pending context that can now be delivered.
func (p *PipeEnd) statusDeliveries() []delivery {
	var ds []delivery

	for _, end := range []*PipeEnd{p, p.other} {
		if end.receiver == nil {
			continue
		}

		r, st := end.receiver, end.status()

		ds = append(ds, func() {
			r.StatusChanged(st)
		})
	}

	for _, end := range []*PipeEnd{p, p.other} {
		ds = append(ds, end.contextDelivery()...)
	}

	return ds
}

func (p *PipeEnd) contextDelivery() []delivery {
	if p.pending == nil || !p.reachable() || p.other.receiver == nil {
		return nil
	}

	r, payload := p.other.receiver, p.pending
	p.pending = nil

	return []delivery{func() {
		r.ReceiveContext(payload)
	}}
}

func (p *PipeEnd) Activate(_ context.Context, r Receiver) error {
	p.state.mu.Lock()

	p.receiver = r
	p.activated = true

	ds := p.statusDeliveries()

	p.state.mu.Unlock()

	run(ds)

	return nil
}

func (p *PipeEnd) Status() Status {
	p.state.mu.Lock()
	defer p.state.mu.Unlock()

	return p.status()
}

func (p *PipeEnd) UpdateContext(payload []byte) error {
	p.state.mu.Lock()

	if !p.activated {
		p.state.mu.Unlock()
		return errNotActivated
	}

	p.pending = slices.Clone(payload)

	ds := p.contextDelivery()

	p.state.mu.Unlock()

	run(ds)

	return nil
}

func (p *PipeEnd) TransferUserInfo(seq uint64, payload []byte) error {
	p.state.mu.Lock()

	if !p.activated {
		p.state.mu.Unlock()
		return errNotActivated
	}

	if !p.reachable() || p.other.receiver == nil {
		p.state.mu.Unlock()
		return errNotReachable
	}

	r := p.other.receiver

	p.state.mu.Unlock()

	r.ReceiveUserInfo(seq, slices.Clone(payload))

	return nil
}

func (p *PipeEnd) Close() error {
	p.state.mu.Lock()

	p.activated = false

	ds := p.statusDeliveries()

	p.state.mu.Unlock()

	run(ds)

	return nil
}

// SetLinked connects or separates the two ends, as when the devices move
// in and out of range.
func (p *PipeEnd) SetLinked(linked bool) {
	p.state.mu.Lock()

	p.state.linked = linked

	ds := p.statusDeliveries()

	p.state.mu.Unlock()

	run(ds)
}
