// pkg/device/control.go
package device

import "segdb/internal/segstore"

// Finish ends the session with the given intent (COMMIT or ROLLBACK),
// the control-path counterpart to Stream's data path. After Finish
// returns, Finish, Commit and Rollback on this Session and ReadAt and
// WriteAt on its Streams return ErrSessionDone; Close is a no-op.
func (s *Session) Finish(store *segstore.Store, intent segstore.Intent) (segstore.Outcome, error) {
	if err := s.checkOpen(); err != nil {
		return segstore.RolledBack, err
	}
	outcome, err := store.Finish(s.tx, intent)
	s.markDone()
	return outcome, err
}

// Commit is shorthand for Finish(store, segstore.Commit).
func (s *Session) Commit(store *segstore.Store) (segstore.Outcome, error) {
	return s.Finish(store, segstore.Commit)
}

// Rollback is shorthand for Finish(store, segstore.Rollback).
func (s *Session) Rollback(store *segstore.Store) (segstore.Outcome, error) {
	return s.Finish(store, segstore.Rollback)
}

// Close ends the session if it is still live, rolling back its
// transaction. Calling Close on a session that already reached
// COMMITTED or ROLLED_BACK is a no-op. This is the cleanup path for a
// caller that goes away (disconnects, hits EOF) without explicitly
// committing or rolling back.
func (s *Session) Close(store *segstore.Store) error {
	if err := s.checkOpen(); err != nil {
		return nil
	}
	_, err := s.Rollback(store)
	return err
}
