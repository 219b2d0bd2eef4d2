// pkg/device/session.go
// Package device is the boundary adapter between a caller and the
// segment store: it turns internal/segstore's Begin/Read/Write/Finish
// surface into a session-oriented handle suitable for a
// character-device-style client.
package device

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"segdb/internal/segstore"
)

// ErrSessionDone is returned when Read, Write, or Finish is called on a
// session that has already reached COMMITTED or ROLLED_BACK.
var ErrSessionDone = errors.New("device: session already finished")

// Session is a single open transaction against a Store, identified by a
// time-ordered UUID for diagnostics only. Version ordering never
// consults this id; it stays a monotonic integer inside segstore.
type Session struct {
	mu   sync.Mutex
	id   uuid.UUID
	tx   *segstore.Transaction
	done bool
}

// Open begins a new session against store. Failure to generate a v7 UUID
// falls back to v4, since a diagnostic id is not worth failing the open
// over.
func Open(store *segstore.Store) *Session {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &Session{id: id, tx: store.Begin()}
}

// ID returns the session's diagnostic identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// VersionID returns the transaction's version id, the value that
// actually orders this session relative to others.
func (s *Session) VersionID() uint64 { return s.tx.ID() }

func (s *Session) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return ErrSessionDone
	}
	return nil
}

func (s *Session) markDone() {
	s.mu.Lock()
	s.done = true
	s.mu.Unlock()
}
