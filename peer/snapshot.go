// Package peer keeps two paired devices in step by exchanging session
// snapshots over a Transport
package peer

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ayoisaiah/timestop/internal/session"
)

// Kind identifies the delivery primitive a snapshot arrived through.
type Kind string

const (
	// KindContext snapshots replace each other; only the latest is kept.
	KindContext Kind = "context"
	// KindUserInfo snapshots are queued and delivered in order.
	KindUserInfo Kind = "userInfo"
)

// AttemptData is the wire form of an attempt.
type AttemptData struct {
	ID            string  `json:"id"`
	TargetSeconds int     `json:"targetSeconds"`
	ActualSeconds float64 `json:"actualSeconds"`
}

// Snapshot is the wire form of a session.
type Snapshot struct {
	Timestamp     time.Time     `json:"timestamp"`
	Attempts      []AttemptData `json:"attempts"`
	TargetSeconds int           `json:"targetSeconds"`
}

// envelope wraps a snapshot the way both ends expect to find it.
type envelope struct {
	Session *Snapshot `json:"session"`
}

// SnapshotOf converts a session to its wire form.
func SnapshotOf(sess session.Session) Snapshot {
	attempts := make([]AttemptData, len(sess.Attempts))

	for i, a := range sess.Attempts {
		attempts[i] = AttemptData{
			ID:            a.ID.String(),
			TargetSeconds: a.TargetSeconds,
			ActualSeconds: a.ActualSeconds,
		}
	}

	return Snapshot{
		TargetSeconds: sess.TargetSeconds,
		Attempts:      attempts,
		Timestamp:     sess.CompletedAt.UTC(),
	}
}

// Session converts the snapshot back to a session. The session id is not
// carried on the wire, so a new one is assigned.
func (s *Snapshot) Session() (session.Session, error) {
	attempts := make([]session.Attempt, len(s.Attempts))

	for i, a := range s.Attempts {
		id, err := uuid.Parse(a.ID)
		if err != nil {
			return session.Session{}, errInvalidAttemptID.Fmt(a.ID)
		}

		attempts[i] = session.Attempt{
			ID:            id,
			TargetSeconds: a.TargetSeconds,
			ActualSeconds: a.ActualSeconds,
		}
	}

	return session.Session{
		ID:            uuid.New(),
		TargetSeconds: s.TargetSeconds,
		Attempts:      attempts,
		CompletedAt:   s.Timestamp,
	}, nil
}

// Encode produces the payload sent through a transport.
func Encode(sess session.Session) ([]byte, error) {
	snap := SnapshotOf(sess)

	return json.Marshal(envelope{Session: &snap})
}

// Decode extracts a snapshot from a payload. Malformed payloads are logged
// and reported as not ok.
func Decode(payload []byte) (*Snapshot, bool) {
	var env envelope

	err := json.Unmarshal(payload, &env)
	if err != nil {
		slog.Warn("unable to decode session payload", slog.Any("error", err))
		return nil, false
	}

	if env.Session == nil {
		slog.Warn("session payload has no session data")
		return nil, false
	}

	return env.Session, true
}
