// pkg/device/stream.go
package device

import "segdb/internal/segstore"

// Stream is a byte-addressed read/write surface in the style of a
// character device: ReadAt/WriteAt over a Store bound to this session's
// transaction. Offsets that were never written read back as zero bytes
// (segstore's null floor), so a successful ReadAt always fills p.
type Stream struct {
	session *Session
	store   *segstore.Store
}

// NewStream binds a Stream to session's transaction on store.
func NewStream(store *segstore.Store, session *Session) *Stream {
	return &Stream{session: session, store: store}
}

// ReadAt reads up to len(p) bytes starting at offset into p, returning
// the number of bytes read.
func (s *Stream) ReadAt(p []byte, offset int64) (int, error) {
	if err := s.session.checkOpen(); err != nil {
		return 0, err
	}
	got, err := s.store.Read(s.session.tx, offset, len(p))
	if err != nil {
		return 0, err
	}
	return copy(p, got), nil
}

// WriteAt writes p starting at offset, returning the number of bytes
// written.
func (s *Stream) WriteAt(p []byte, offset int64) (int, error) {
	if err := s.session.checkOpen(); err != nil {
		return 0, err
	}
	return s.store.Write(s.session.tx, offset, p)
}
