// internal/segstore/compact.go
package segstore

// Compact runs the chain compactor under the chain write lock, exclusive
// of all readers and accessors. It is safe to call directly (tests do);
// Store.commit calls it automatically on the commit that takes the number
// of commits since the last pass above CommitsBeforeCompaction.
func (s *Store) Compact() {
	s.chainLock.Lock()
	defer s.chainLock.Unlock()

	s.recomputeChildCounts()

	current := s.reg.Head()
	for current != nil && current.parent != nil {
		parent := current.parent
		// The root (parent.parent == nil) is never merged away: it is
		// the permanent nil-parent floor of the chain, so a single-child
		// root still only advances current rather than being absorbed.
		if parent.childCount == 1 && parent.parent != nil {
			s.mergeInto(current, parent)
			current.parent = parent.parent
			s.reg.unregister(parent)
		} else {
			current = parent
		}
	}

	s.reg.commitsSinceCompact = 0
}

// recomputeChildCounts walks the registry and, for each node, increments
// its parent's counter.
func (s *Store) recomputeChildCounts() {
	s.reg.all(func(n *VersionNode) { n.childCount = 0 })
	s.reg.all(func(n *VersionNode) {
		if n.parent != nil {
			n.parent.childCount++
		}
	})
}

// mergeInto moves every segment from parent that child doesn't already
// have into child, preserving each Segment instance and its version id.
// Segments present in both (child's being newer) release the parent's
// copy instead of adopting it. Moving the existing Segment pointer
// rather than copying its bytes means this step needs no new allocation,
// so there is nothing left that can fail partway through a single
// node's merge.
func (s *Store) mergeInto(child, parent *VersionNode) {
	parent.segments(func(segNr uint64, seg *Segment) {
		if _, ok := child.lookup(segNr); ok {
			// child's segment is newer; the parent's copy is destroyed.
			s.alloc.release(componentVersionNode, int64(len(seg.bytes)))
			return
		}
		// Move the Segment instance itself: same bytes, same version
		// id, no re-allocation and no allocator double-charge.
		child.adopt(segNr, seg)
	})
}
