// internal/segstore/errors.go
package segstore

import "errors"

var (
	// ErrOutOfMemory is returned when the allocation facility refuses a
	// charge.
	ErrOutOfMemory = errors.New("segstore: out of memory")

	// ErrRolledBack is returned by Finish when a commit collided with the
	// current head and the transaction was discarded.
	ErrRolledBack = errors.New("segstore: transaction rolled back")

	// ErrTransactionClosed is returned when a caller uses a transaction
	// handle after Finish has already consumed it.
	ErrTransactionClosed = errors.New("segstore: transaction already finished")

	// ErrNegativeOffset guards a programmer error: byte_offset < 0 can
	// never arise from correct use of the stream interface.
	ErrNegativeOffset = errors.New("segstore: negative offset")
)
