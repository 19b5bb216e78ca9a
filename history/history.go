// Package history keeps the list of completed sessions, most recent first,
// and persists the full list on every change
package history

import (
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayoisaiah/timestop/internal/session"
)

// Backend persists the serialized session list as a single record.
type Backend interface {
	LoadHistory() ([]byte, error)
	SaveHistory(data []byte) error
}

// Store is the in-memory session history. The in-memory list is
// authoritative: a failed write is logged and the change is kept.
type Store struct {
	backend  Backend
	sessions []session.Session
	mu       sync.Mutex
}

// Open loads any persisted sessions from the backend. A missing or
// unreadable record yields an empty history.
func Open(backend Backend) *Store {
	s := &Store{
		backend: backend,
	}

	data, err := backend.LoadHistory()
	if err != nil {
		slog.Error("unable to load session history", slog.Any("error", err))
		return s
	}

	if len(data) == 0 {
		return s
	}

	var sessions []session.Session

	err = json.Unmarshal(data, &sessions)
	if err != nil {
		slog.Error(
			"discarding unreadable session history",
			slog.Any("error", err),
		)

		return s
	}

	s.sessions = sessions

	slog.Debug("session history loaded", slog.Int("count", len(sessions)))

	return s
}

// Append inserts a session at the head of the list.
func (s *Store) Append(sess session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = slices.Insert(s.sessions, 0, sess)

	s.persist()
}

// Remove deletes the session with the given id. It reports whether a
// session was found.
func (s *Store) Remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.sessions)

	s.sessions = slices.DeleteFunc(s.sessions, func(v session.Session) bool {
		return v.ID == id
	})

	if len(s.sessions) == n {
		return false
	}

	s.persist()

	return true
}

// Clear removes every session.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil

	s.persist()
}

// List returns a snapshot of the history, most recent first.
func (s *Store) List() []session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.sessions)
}

// Get retrieves a single session by id.
func (s *Store) Get(id uuid.UUID) (session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.sessions, func(v session.Session) bool {
		return v.ID == id
	})
	if i < 0 {
		return session.Session{}, false
	}

	return s.sessions[i], true
}

// Since returns the sessions completed at or after t, most recent first.
func (s *Store) Since(t time.Time) []session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []session.Session

	for _, v := range s.sessions {
		if !v.CompletedAt.Before(t) {
			result = append(result, v)
		}
	}

	return result
}

// persist writes the full list. Callers must hold s.mu.
func (s *Store) persist() {
	list := s.sessions
	if list == nil {
		list = []session.Session{}
	}

	b, err := json.Marshal(list)
	if err != nil {
		slog.Error("unable to encode session history", slog.Any("error", err))
		return
	}

	err = s.backend.SaveHistory(b)
	if err != nil {
		slog.Error(
			"unable to persist session history",
			slog.Any("error", err),
			slog.Int("count", len(s.sessions)),
		)
	}
}
