package peer

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
)

// SyncPath is the route the listening side serves the link on.
const SyncPath = "/sync"

const frameAck = "ack"

// LinkConfig holds the connection settings of a websocket link.
type LinkConfig struct {
	Clock          clockwork.Clock
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration
	PingInterval   time.Duration
	AckTimeout     time.Duration
	RedialInterval time.Duration
	MaxMessageSize int64
}

// DefaultLinkConfig returns the default websocket settings.
func DefaultLinkConfig() LinkConfig {
	return LinkConfig{
		Clock:          clockwork.NewRealClock(),
		WriteTimeout:   10 * time.Second,
		ReadTimeout:    60 * time.Second,
		PingInterval:   30 * time.Second,
		AckTimeout:     5 * time.Second,
		RedialInterval: 2 * time.Second,
		MaxMessageSize: 64 * 1024,
	}
}

type frame struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
	// Seq is the sender's outbox sequence of a queued payload
	Seq uint64 `json:"seq,omitempty"`
	// ID pairs a queued payload with its ack
	ID uint64 `json:"id,omitempty"`
}

// Link is a Transport over a single websocket connection. The phone side
// listens and the wrist side dials; either may drop and reconnect.
type Link struct {
	config   LinkConfig
	upgrader websocket.Upgrader
	url      string

	conn      *websocket.Conn
	receiver  Receiver
	cancel    context.CancelFunc
	acks      map[uint64]chan struct{}
	pending   []byte
	nextID    uint64
	activated bool
	mu        sync.Mutex

	writeMu sync.Mutex
}

// NewListener creates the accepting end of a link. Mount it with
// RegisterRoutes.
func NewListener(cfg LinkConfig) *Link {
	return newLink("", cfg)
}

// NewDialer creates the connecting end of a link. It keeps redialling url
// until the link is closed.
func NewDialer(url string, cfg LinkConfig) *Link {
	return newLink(url, cfg)
}

func newLink(url string, cfg LinkConfig) *Link {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	return &Link{
		url:    url,
		config: cfg,
		acks:   make(map[uint64]chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
	}
}

// RegisterRoutes registers the link's websocket route with an HTTP mux.
func (l *Link) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc(SyncPath, l.handleConnection)
}

func (l *Link) handleConnection(w http.ResponseWriter, r *http.Request) {
	l.mu.Lock()
	activated := l.activated
	l.mu.Unlock()

	if !activated {
		http.Error(w, "sync not activated", http.StatusServiceUnavailable)
		return
	}

	conn, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade sync connection", slog.Any("error", err))
		return
	}

	slog.Info("paired device connected", slog.String("remote", r.RemoteAddr))

	l.serve(conn)
}

func (l *Link) Activate(ctx context.Context, r Receiver) error {
	ctx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	l.receiver = r
	l.activated = true
	l.cancel = cancel
	st := l.statusLocked()
	l.mu.Unlock()

	if l.url != "" {
		go l.dialLoop(ctx)
	}

	r.StatusChanged(st)

	return nil
}

func (l *Link) dialLoop(ctx context.Context) {
	dialer := websocket.Dialer{
		HandshakeTimeout: l.config.WriteTimeout,
	}

	for {
		conn, _, err := dialer.DialContext(ctx, l.url, nil)
		if err != nil {
			if ctx.Err() != nil {
				return
			}

			slog.Debug(
				"unable to reach paired device",
				slog.String("url", l.url),
				slog.Any("error", err),
			)

			select {
			case <-ctx.Done():
				return
			case <-l.config.Clock.After(l.config.RedialInterval):
			}

			continue
		}

		slog.Info("connected to paired device", slog.String("url", l.url))

		l.serve(conn)

		if ctx.Err() != nil {
			return
		}
	}
}

// serve runs the connection until it fails or is replaced.
func (l *Link) serve(conn *websocket.Conn) {
	l.attach(conn)

	done := make(chan struct{})
	go l.keepalive(conn, done)

	l.readPump(conn)

	close(done)
	l.detach(conn)
}

func (l *Link) attach(conn *websocket.Conn) {
	l.mu.Lock()
	old := l.conn
	l.conn = conn
	pending := l.pending
	r := l.receiver
	st := l.statusLocked()
	l.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}

	if pending != nil {
		err := l.writeFrame(conn, frame{Kind: string(KindContext), Payload: pending})
		if err == nil {
			l.clearPending(pending)
		}
	}

	if r != nil {
		r.StatusChanged(st)
	}
}

func (l *Link) detach(conn *websocket.Conn) {
	_ = conn.Close()

	l.mu.Lock()

	if l.conn != conn {
		l.mu.Unlock()
		return
	}

	l.conn = nil
	r := l.receiver
	st := l.statusLocked()
	l.mu.Unlock()

	slog.Info("paired device disconnected")

	if r != nil {
		r.StatusChanged(st)
	}
}

func (l *Link) keepalive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := l.config.Clock.NewTicker(l.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.Chan():
			err := conn.WriteControl(
				websocket.PingMessage,
				nil,
				time.Now().Add(l.config.WriteTimeout),
			)
			if err != nil {
				slog.Debug("failed to send ping", slog.Any("error", err))
				return
			}
		}
	}
}

func (l *Link) readPump(conn *websocket.Conn) {
	conn.SetReadLimit(l.config.MaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(l.config.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(l.config.ReadTimeout))
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseAbnormalClosure,
			) {
				slog.Warn("unexpected sync close", slog.Any("error", err))
			}

			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(l.config.ReadTimeout))

		l.handleFrame(conn, message)
	}
}

func (l *Link) handleFrame(conn *websocket.Conn, message []byte) {
	var f frame

	err := json.Unmarshal(message, &f)
	if err != nil {
		slog.Warn("discarding malformed sync frame", slog.Any("error", err))
		return
	}

	l.mu.Lock()
	r := l.receiver
	l.mu.Unlock()

	if r == nil {
		return
	}

	switch f.Kind {
	case string(KindContext):
		r.ReceiveContext(f.Payload)

	case string(KindUserInfo):
		err = l.writeFrame(conn, frame{Kind: frameAck, ID: f.ID})
		if err != nil {
			slog.Warn("unable to confirm delivery", slog.Any("error", err))
		}

		r.ReceiveUserInfo(f.Seq, f.Payload)

	case frameAck:
		l.ack(f.ID)

	default:
		slog.Debug("ignoring sync frame", slog.String("kind", f.Kind))
	}
}

func (l *Link) writeFrame(conn *websocket.Conn, f frame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}

	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(l.config.WriteTimeout))

	return conn.WriteMessage(websocket.TextMessage, b)
}

func (l *Link) ack(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.acks[id]
	if !ok {
		return
	}

	close(ch)
	delete(l.acks, id)
}

func (l *Link) clearPending(sent []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if bytes.Equal(l.pending, sent) {
		l.pending = nil
	}
}

func (l *Link) statusLocked() Status {
	return Status{
		Activated: l.activated,
		Reachable: l.activated && l.conn != nil,
	}
}

func (l *Link) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.statusLocked()
}

// UpdateContext sends payload now if connected, otherwise when the next
// connection is made. A newer payload replaces one still waiting.
func (l *Link) UpdateContext(payload []byte) error {
	l.mu.Lock()

	if !l.activated {
		l.mu.Unlock()
		return errNotActivated
	}

	l.pending = slices.Clone(payload)
	conn := l.conn
	l.mu.Unlock()

	if conn == nil {
		return nil
	}

	err := l.writeFrame(conn, frame{Kind: string(KindContext), Payload: payload})
	if err != nil {
		return errLinkClosed.Wrap(err)
	}

	l.clearPending(payload)

	return nil
}

// TransferUserInfo sends payload and waits for the peer to confirm it.
func (l *Link) TransferUserInfo(seq uint64, payload []byte) error {
	l.mu.Lock()

	if !l.activated {
		l.mu.Unlock()
		return errNotActivated
	}

	if l.conn == nil {
		l.mu.Unlock()
		return errNotReachable
	}

	l.nextID++
	id := l.nextID
	ack := make(chan struct{})
	l.acks[id] = ack
	conn := l.conn
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		delete(l.acks, id)
		l.mu.Unlock()
	}()

	err := l.writeFrame(conn, frame{
		Kind:    string(KindUserInfo),
		Seq:     seq,
		ID:      id,
		Payload: payload,
	})
	if err != nil {
		return errLinkClosed.Wrap(err)
	}

	select {
	case <-ack:
		return nil
	case <-l.config.Clock.After(l.config.AckTimeout):
		return errAckTimeout
	}
}

func (l *Link) Close() error {
	l.mu.Lock()
	l.activated = false
	conn := l.conn
	l.conn = nil
	cancel := l.cancel
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	if conn == nil {
		return nil
	}

	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(l.config.WriteTimeout),
	)

	return conn.Close()
}
