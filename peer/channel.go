package peer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ayoisaiah/timestop/internal/session"
)

const (
	DefaultRetryInterval = 5 * time.Second

	drainBatch    = 32
	updatesBuffer = 16
)

// Received is a session that arrived from the paired device.
type Received struct {
	At      time.Time
	Session session.Session
	Kind    Kind
}

// Options configures a Channel.
type Options struct {
	Clock  clockwork.Clock
	Outbox Outbox
	// OnReceive is called for every inbound snapshot that decodes
	OnReceive     func(r Received)
	RetryInterval time.Duration
}

// Channel pushes sessions to the paired device and records the sessions
// it sends back.
type Channel struct {
	transport Transport
	outbox    Outbox
	clock     clockwork.Clock
	onReceive func(Received)
	wake      chan struct{}
	updates   chan Received

	last *Received
	// outbox sequence of the last queued session received
	lastSeq uint64
	mu      sync.Mutex

	drainMu sync.Mutex
	retry   time.Duration
}

// NewChannel creates a channel over t. Queued sessions are kept in memory
// unless opts.Outbox is set.
func NewChannel(t Transport, opts Options) *Channel {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	if opts.Outbox == nil {
		opts.Outbox = &MemoryOutbox{}
	}

	if opts.RetryInterval <= 0 {
		opts.RetryInterval = DefaultRetryInterval
	}

	return &Channel{
		transport: t,
		outbox:    opts.Outbox,
		clock:     opts.Clock,
		onReceive: opts.OnReceive,
		retry:     opts.RetryInterval,
		wake:      make(chan struct{}, 1),
		updates:   make(chan Received, updatesBuffer),
	}
}

// Run activates the transport and delivers queued sessions until ctx is
// cancelled.
func (c *Channel) Run(ctx context.Context) error {
	err := c.transport.Activate(ctx, c)
	if err != nil {
		return err
	}

	defer func() {
		err := c.transport.Close()
		if err != nil {
			slog.Debug("unable to close sync transport", slog.Any("error", err))
		}
	}()

	ticker := c.clock.NewTicker(c.retry)
	defer ticker.Stop()

	for {
		c.flush()

		select {
		case <-ctx.Done():
			return nil
		case <-c.wake:
		case <-ticker.Chan():
		}
	}
}

// Status reports the state of the underlying transport.
func (c *Channel) Status() Status {
	return c.transport.Status()
}

// PushLatest sends the in-progress session, replacing any earlier one the
// peer has not seen yet. Nothing is sent while the transport is not
// activated.
func (c *Channel) PushLatest(sess session.Session) {
	if !c.transport.Status().Activated {
		slog.Info(
			"sync not activated, dropping latest session",
			slog.Int("attempts", len(sess.Attempts)),
		)

		return
	}

	payload, err := Encode(sess)
	if err != nil {
		slog.Error("unable to encode session", slog.Any("error", err))
		return
	}

	err = c.transport.UpdateContext(payload)
	if err != nil {
		slog.Warn("unable to update sync context", slog.Any("error", err))
	}
}

// PushQueued queues a finalized session for guaranteed, ordered delivery.
func (c *Channel) PushQueued(sess session.Session) {
	payload, err := Encode(sess)
	if err != nil {
		slog.Error("unable to encode session", slog.Any("error", err))
		return
	}

	seq, err := c.outbox.Enqueue(payload)
	if err != nil {
		slog.Error("unable to queue session", slog.Any("error", err))

		err = c.transport.TransferUserInfo(0, payload)
		if err != nil {
			slog.Error("queued session lost", slog.Any("error", err))
		}

		return
	}

	slog.Debug("session queued", slog.Uint64("seq", seq))

	c.signal()
}

func (c *Channel) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// flush delivers outbox items in order, stopping at the first failure.
func (c *Channel) flush() {
	c.drainMu.Lock()
	defer c.drainMu.Unlock()

	for {
		st := c.transport.Status()
		if !st.Activated || !st.Reachable {
			return
		}

		items, err := c.outbox.Pending(drainBatch)
		if err != nil {
			slog.Error("unable to read sync outbox", slog.Any("error", err))
			return
		}

		if len(items) == 0 {
			return
		}

		for _, it := range items {
			err = c.transport.TransferUserInfo(it.Seq, it.Payload)
			if err != nil {
				slog.Warn(
					"queued session not delivered",
					slog.Uint64("seq", it.Seq),
					slog.Any("error", err),
				)

				return
			}

			err = c.outbox.Ack(it.Seq)
			if err != nil {
				slog.Error(
					"unable to remove delivered session from outbox",
					slog.Uint64("seq", it.Seq),
					slog.Any("error", err),
				)

				return
			}
		}
	}
}

// StatusChanged implements Receiver.
func (c *Channel) StatusChanged(st Status) {
	slog.Info(
		"sync status changed",
		slog.Bool("activated", st.Activated),
		slog.Bool("reachable", st.Reachable),
	)

	if st.Activated && st.Reachable {
		c.signal()
	}
}

// ReceiveContext implements Receiver.
func (c *Channel) ReceiveContext(payload []byte) {
	c.receive(KindContext, payload)
}

// ReceiveUserInfo implements Receiver. The sender retries the head of its
// outbox until acknowledged, so a repeat of the last sequence seen is a
// redelivery and is ignored.
func (c *Channel) ReceiveUserInfo(seq uint64, payload []byte) {
	c.mu.Lock()

	if seq != 0 && seq == c.lastSeq {
		c.mu.Unlock()
		slog.Debug("ignoring redelivered session", slog.Uint64("seq", seq))

		return
	}

	c.lastSeq = seq
	c.mu.Unlock()

	c.receive(KindUserInfo, payload)
}

func (c *Channel) receive(kind Kind, payload []byte) {
	snap, ok := Decode(payload)
	if !ok {
		return
	}

	sess, err := snap.Session()
	if err != nil {
		slog.Warn("discarding received session", slog.Any("error", err))
		return
	}

	r := Received{
		Kind:    kind,
		Session: sess,
		At:      c.clock.Now(),
	}

	c.mu.Lock()
	c.last = &r
	c.mu.Unlock()

	slog.Info(
		"received session",
		slog.String("kind", string(kind)),
		slog.Int("attempts", len(sess.Attempts)),
	)

	select {
	case c.updates <- r:
	default:
	}

	if c.onReceive != nil {
		c.onReceive(r)
	}
}

// LastReceived returns the most recent session sent by the peer.
func (c *Channel) LastReceived() (Received, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.last == nil {
		return Received{}, false
	}

	return *c.last, true
}

// Updates delivers each received session. Updates are dropped when the
// reader falls behind; LastReceived always holds the latest.
func (c *Channel) Updates() <-chan Received {
	return c.updates
}
