package peer

import (
	"slices"
	"sync"

	"github.com/ayoisaiah/timestop/store"
)

// Outbox holds queued payloads until they are delivered.
type Outbox interface {
	Enqueue(payload []byte) (uint64, error)
	Pending(limit int) ([]store.Item, error)
	Ack(seq uint64) error
}

// MemoryOutbox is an Outbox that does not survive restarts.
type MemoryOutbox struct {
	items []store.Item
	seq   uint64
	mu    sync.Mutex
}

func (o *MemoryOutbox) Enqueue(payload []byte) (uint64, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.seq++

	o.items = append(o.items, store.Item{
		Seq:     o.seq,
		Payload: slices.Clone(payload),
	})

	return o.seq, nil
}

func (o *MemoryOutbox) Pending(limit int) ([]store.Item, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	n := min(limit, len(o.items))

	return slices.Clone(o.items[:n]), nil
}

func (o *MemoryOutbox) Ack(seq uint64) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.items = slices.DeleteFunc(o.items, func(it store.Item) bool {
		return it.Seq == seq
	})

	return nil
}

// Len reports the number of undelivered payloads.
func (o *MemoryOutbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.items)
}
