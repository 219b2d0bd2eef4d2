// internal/segstore/commit.go
package segstore

import "context"

// Finish ends a transaction according to intent, returning the outcome
// and, on collision, ErrRolledBack (on success, a nil error). After this
// call t is invalid for further Read/Write.
func (s *Store) Finish(t *Transaction, intent Intent) (Outcome, error) {
	if intent == Rollback {
		return s.rollback(t)
	}
	return s.commit(t)
}

// rollback destroys t.ver and frees its read set under the chain read
// lock.
func (s *Store) rollback(t *Transaction) (Outcome, error) {
	s.chainLock.RLock()
	defer s.chainLock.RUnlock()

	if t.isClosed() {
		return RolledBack, ErrTransactionClosed
	}
	s.destroy(t)
	return RolledBack, nil
}

// commit holds the chain read lock, then the commit serializer, for the
// duration of observe head, rebase check, head publish, and counter
// update, in that order. Both locks are released before any compaction
// pass runs, since the writer lock the compactor needs can never be
// requested while the chain read lock commit holds is still held by the
// same goroutine.
func (s *Store) commit(t *Transaction) (Outcome, error) {
	s.chainLock.RLock()

	if t.isClosed() {
		s.chainLock.RUnlock()
		return RolledBack, ErrTransactionClosed
	}

	// Acquire cannot fail for a weight-1 semaphore with a background
	// context; the call only blocks.
	_ = s.serial.Acquire(context.Background(), 1)

	head := s.reg.Head()

	if !s.rebaseOK(t, head) {
		s.destroy(t)
		s.serial.Release(1)
		s.chainLock.RUnlock()
		return RolledBack, ErrRolledBack
	}

	t.ver.parent = head
	s.reg.publish(t.ver)

	s.reg.commitsSinceCompact++
	needsCompaction := s.reg.commitsSinceCompact > s.commitsBeforeCompaction

	s.freeReadSet(t)
	t.close()

	s.serial.Release(1)
	s.chainLock.RUnlock()

	if needsCompaction {
		s.Compact()
	}

	return Committed, nil
}

// rebaseOK checks that, for every recorded (seg_nr, v_recorded) in t's
// read set, the candidate head still shows the same version id. Absence
// in the candidate head counts as version 0, the null segment's version.
func (s *Store) rebaseOK(t *Transaction, head *VersionNode) bool {
	for _, entry := range t.readSet() {
		observed := uint64(0)
		if seg, ok := head.lookup(entry.segNr); ok {
			observed = seg.versionID
		}
		if entry.versionID != observed {
			return false
		}
	}
	return true
}

// destroy discards t's version node and releases the charges of its
// segments and its read set. Shared by rollback and the collision path
// of commit.
func (s *Store) destroy(t *Transaction) {
	t.ver.segments(func(_ uint64, seg *Segment) {
		s.alloc.release(componentSegment, int64(len(seg.bytes)))
		s.alloc.release(componentVersionNode, int64(len(seg.bytes)))
	})
	s.reg.unregister(t.ver)
	s.freeReadSet(t)
	t.close()
}

// freeReadSet releases the allocator charge for t's read-set entries.
func (s *Store) freeReadSet(t *Transaction) {
	s.alloc.release(componentReadSet, t.readSetBytes())
}
