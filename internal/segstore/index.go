// internal/segstore/index.go
package segstore

// segmentIndex is a sparse mapping from segment number to Segment for a
// single version node. Callers are expected to hold the chain lock for
// the duration of any access: iteration only needs to be safe alongside
// concurrent readers holding the chain read lock, never alongside the
// compactor's writer lock, so the index itself carries no lock of its
// own.
type segmentIndex struct {
	segments map[uint64]*Segment
}

func newSegmentIndex() *segmentIndex {
	return &segmentIndex{segments: make(map[uint64]*Segment)}
}

// lookup returns the segment at segNr and whether it was present.
func (idx *segmentIndex) lookup(segNr uint64) (*Segment, bool) {
	s, ok := idx.segments[segNr]
	return s, ok
}

// insert installs seg at segNr, charging its backing bytes against a.
// Replacing an existing entry at segNr releases the old charge first.
func (idx *segmentIndex) insert(a *allocator, segNr uint64, seg *Segment) error {
	if err := a.charge(componentVersionNode, int64(len(seg.bytes))); err != nil {
		return err
	}
	if old, ok := idx.segments[segNr]; ok {
		a.release(componentVersionNode, int64(len(old.bytes)))
	}
	idx.segments[segNr] = seg
	return nil
}

// adopt installs seg at segNr without charging the allocator: used by
// the compactor to move an already-charged Segment instance from a
// parent's index into a child's without double-counting its bytes.
func (idx *segmentIndex) adopt(segNr uint64, seg *Segment) {
	idx.segments[segNr] = seg
}

// delete removes segNr from the index, if present.
func (idx *segmentIndex) delete(segNr uint64) {
	delete(idx.segments, segNr)
}

// all calls fn for every (segNr, Segment) pair in the index. fn must not
// mutate idx.
func (idx *segmentIndex) all(fn func(segNr uint64, seg *Segment)) {
	for segNr, seg := range idx.segments {
		fn(segNr, seg)
	}
}

// len reports how many segments this index currently holds.
func (idx *segmentIndex) len() int { return len(idx.segments) }
