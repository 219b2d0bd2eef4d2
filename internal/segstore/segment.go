// internal/segstore/segment.go
package segstore

// DefaultSegmentSize is used when Options.SegmentSize is left at zero.
// Small values (the illustrative extreme is 1) maximize conflict
// isolation between transactions; larger values amortize per-segment
// bookkeeping. 64 is a middle ground suitable for a library default.
const DefaultSegmentSize = 64

// Segment is a fixed-size byte array tagged with the version id of the
// transaction that produced it. Write only ever changes segments in the
// calling transaction's own, unpublished version node; a writer that
// wants different bytes for a segment it does not yet own allocates a
// new Segment via copy-on-write (see access.go), so a Segment in a
// published version node is never mutated again.
type Segment struct {
	bytes     []byte
	versionID uint64
}

// newSegment allocates a zero-filled segment of the given width tagged
// with versionID. Charged against the allocator so OOM injection can
// reach copy-on-write paths.
func newSegment(a *allocator, size int, versionID uint64) (*Segment, error) {
	if err := a.charge(componentSegment, int64(size)); err != nil {
		return nil, err
	}
	return &Segment{bytes: make([]byte, size), versionID: versionID}, nil
}

// Bytes returns the segment's backing array. Callers must not retain it
// beyond the chain lock window that produced it (see access.go).
func (s *Segment) Bytes() []byte { return s.bytes }

// VersionID returns the version id of the node that owns this segment.
func (s *Segment) VersionID() uint64 { return s.versionID }

// newNullSegment returns an immutable, all-zero segment with version id
// 0, the universal "never written" value beyond the root of the chain.
// It is sized per-Store since SegmentSize is configurable, so each Store
// owns its own instance rather than sharing one global.
func newNullSegment(size int) *Segment {
	return &Segment{bytes: make([]byte, size), versionID: 0}
}
