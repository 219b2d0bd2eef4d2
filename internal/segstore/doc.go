// internal/segstore/doc.go
// Package segstore implements a multi-version, copy-on-write segment store
// with optimistic concurrency control.
//
// # OVERVIEW
//
// The store is organized as a tree of version nodes rooted at an empty
// node created at construction. The head pointer references the most
// recently committed leaf. A caller begins a transaction, which allocates
// a new, as yet unpublished version node whose parent is the head observed
// at that moment. Reads walk from the transaction's own node to its parent
// chain, recording the version id observed for each segment number that
// is resolved from the parent chain (hits in the own node are not
// recorded); writes copy-on-write the segment into the transaction's own node. Commit
// re-validates the recorded read set against the (possibly advanced) head
// and, if nothing the transaction read has changed, splices the
// transaction's node in as the new head. A periodic compaction pass
// collapses parents that have only one child into that child, bounding
// the depth a read has to walk.
//
// # LOCKING
//
//	chain lock (RWMutex)     every accessor and every commit/rollback
//	                         attempt holds the read side; the compactor
//	                         holds the write side exclusively.
//	commit serializer        a binary semaphore held only by a commit
//	                         attempt, strictly nested inside the chain
//	                         read lock, never requested while holding
//	                         the chain write lock.
//
// See Store for the entry points a caller (or the device adapter in
// pkg/device) drives: Begin, Read, Write, Finish.
package segstore
