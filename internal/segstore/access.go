// internal/segstore/access.go
package segstore

// readSegment resolves one segment's bytes for a transaction, acquiring
// the chain read lock for the duration of the access.
func (s *Store) readSegment(t *Transaction, segNr uint64) ([]byte, error) {
	s.chainLock.RLock()
	defer s.chainLock.RUnlock()

	if t.isClosed() {
		return nil, ErrTransactionClosed
	}

	// 1. Non-recursive lookup in trans.ver: writes made inside this same
	// transaction don't need read-set tracking, it trivially still
	// agrees with itself.
	if seg, ok := t.ver.lookup(segNr); ok {
		return seg.bytes, nil
	}

	// 2. Otherwise resolve from the parent chain (or the null segment),
	// recording what was observed into the read set.
	parent := t.ver.parent
	var found *Segment
	if parent != nil {
		found = parent.resolve(segNr, s.nullSeg)
	} else {
		found = s.nullSeg
	}

	if err := t.recordRead(s.alloc, segNr, found.versionID); err != nil {
		return nil, err
	}

	return found.bytes, nil
}

// writeSegment resolves a writable copy of one segment for a transaction.
// It acquires the chain read lock for the duration of the access: a write
// does not need the writer lock because it only ever mutates the calling
// transaction's own, not-yet-published version node.
func (s *Store) writeSegment(t *Transaction, segNr uint64) ([]byte, error) {
	s.chainLock.RLock()
	defer s.chainLock.RUnlock()

	if t.isClosed() {
		return nil, ErrTransactionClosed
	}

	// 1. Already own a writable copy.
	if seg, ok := t.ver.lookup(segNr); ok {
		return seg.bytes, nil
	}

	// 2. Copy-on-write: resolve from the parent chain, allocate a fresh
	// Segment tagged with this transaction's version id, copy the bytes
	// in, and insert it into this transaction's own node.
	var base *Segment
	if t.ver.parent != nil {
		base = t.ver.parent.resolve(segNr, s.nullSeg)
	} else {
		base = s.nullSeg
	}

	seg, err := newSegment(s.alloc, s.segmentSize, t.id)
	if err != nil {
		return nil, err
	}
	copy(seg.bytes, base.bytes)

	if err := t.ver.insert(s.alloc, segNr, seg); err != nil {
		s.alloc.release(componentSegment, int64(len(seg.bytes)))
		return nil, err
	}

	return seg.bytes, nil
}

// Read returns up to n bytes starting at offset, translated into
// segment-level reads.
func (s *Store) Read(t *Transaction, offset int64, n int) ([]byte, error) {
	if offset < 0 {
		return nil, ErrNegativeOffset
	}
	if n <= 0 {
		return nil, nil
	}

	out := make([]byte, 0, n)
	segSize := int64(s.segmentSize)
	pos := offset

	for len(out) < n {
		segNr := uint64(pos / segSize)
		within := int(pos % segSize)

		segBytes, err := s.readSegment(t, segNr)
		if err != nil {
			return nil, err
		}

		avail := len(segBytes) - within
		want := n - len(out)
		if want > avail {
			want = avail
		}
		out = append(out, segBytes[within:within+want]...)
		pos += int64(want)
	}

	return out, nil
}

// Write writes p starting at offset, translated into segment-level
// writes, and returns the count written.
func (s *Store) Write(t *Transaction, offset int64, p []byte) (int, error) {
	if offset < 0 {
		return 0, ErrNegativeOffset
	}
	if len(p) == 0 {
		return 0, nil
	}

	segSize := int64(s.segmentSize)
	pos := offset
	written := 0

	for written < len(p) {
		segNr := uint64(pos / segSize)
		within := int(pos % segSize)

		segBytes, err := s.writeSegment(t, segNr)
		if err != nil {
			return written, err
		}

		room := len(segBytes) - within
		want := len(p) - written
		if want > room {
			want = room
		}
		copy(segBytes[within:within+want], p[written:written+want])
		written += want
		pos += int64(want)
	}

	return written, nil
}
