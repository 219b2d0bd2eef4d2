// internal/segstore/store.go
package segstore

import (
	"sync"

	"golang.org/x/sync/semaphore"
)

// Intent selects the outcome Finish should pursue for a transaction.
type Intent int

const (
	Commit Intent = iota
	Rollback
)

// Outcome reports what Finish actually did.
type Outcome int

const (
	Committed Outcome = iota
	RolledBack
)

func (o Outcome) String() string {
	if o == Committed {
		return "COMMITTED"
	}
	return "ROLLED_BACK"
}

// Options configures a Store. Fields left at zero take the package
// defaults.
type Options struct {
	// SegmentSize is the width, in bytes, of every segment. Small values
	// (as low as 1) maximize conflict isolation; defaults to
	// DefaultSegmentSize.
	SegmentSize int

	// CommitsBeforeCompaction is how many commits accumulate before a
	// compaction pass is triggered. Defaults to DefaultCommitsBeforeCompaction.
	CommitsBeforeCompaction int

	// MaxBytes caps the allocator's total charge across all components.
	// Zero means unlimited (the production default); a nonzero value makes
	// charges beyond it fail with ErrOutOfMemory.
	MaxBytes int64
}

const DefaultCommitsBeforeCompaction = 15

// Store is the transactional byte-addressable segment store. It wires
// the version chain, allocator, and compactor behind Begin, Read,
// Write, and Finish.
type Store struct {
	chainLock sync.RWMutex // readers: accessors, commit, rollback; writer: compactor only
	serial    *semaphore.Weighted

	segmentSize             int
	commitsBeforeCompaction int

	reg     *registry
	alloc   *allocator
	nullSeg *Segment
}

// New constructs a Store with an empty root version at head.
func New(opts Options) *Store {
	segSize := opts.SegmentSize
	if segSize <= 0 {
		segSize = DefaultSegmentSize
	}
	commitsBefore := opts.CommitsBeforeCompaction
	if commitsBefore <= 0 {
		commitsBefore = DefaultCommitsBeforeCompaction
	}

	return &Store{
		serial:                  semaphore.NewWeighted(1),
		segmentSize:             segSize,
		commitsBeforeCompaction: commitsBefore,
		reg:                     newRegistry(),
		alloc:                   newAllocator(opts.MaxBytes),
		nullSeg:                 newNullSegment(segSize),
	}
}

// SegmentSize returns the configured segment width in bytes.
func (s *Store) SegmentSize() int { return s.segmentSize }

// Begin starts a new transaction hanging off the currently observed
// head. Reading s.reg.Head() without the chain lock is safe: the
// returned node is guaranteed live because the registry never frees a
// node reachable from head.
func (s *Store) Begin() *Transaction {
	head := s.reg.Head()
	id := s.reg.allocVersionID()
	t := newTransaction(id, head)
	s.reg.register(t.ver)
	return t
}

// ChainDepthFromHead walks parent pointers from the current head and
// counts them, for tests asserting post-compaction depth.
func (s *Store) ChainDepthFromHead() int {
	s.chainLock.RLock()
	defer s.chainLock.RUnlock()

	depth := 0
	for node := s.reg.Head(); node != nil && node.parent != nil; node = node.parent {
		depth++
	}
	return depth
}

// LiveVersionCount reports how many version nodes the registry currently
// tracks, for tests asserting no version node outlives its transaction.
func (s *Store) LiveVersionCount() int {
	s.chainLock.RLock()
	defer s.chainLock.RUnlock()
	return s.reg.count()
}

// failNextAllocation arms a one-shot OOM on the next allocator charge,
// for tests.
func (s *Store) failNextAllocation() { s.alloc.failNextCharge() }
