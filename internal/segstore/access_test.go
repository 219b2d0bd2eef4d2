// internal/segstore/access_test.go
package segstore

import (
	"bytes"
	"testing"
)

func TestRead_ColdStore_ReturnsNullFloor(t *testing.T) {
	s := New(Options{SegmentSize: 8})
	tx := s.Begin()

	got, err := s.Read(tx, 0, 8)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := make([]byte, 8)
	if !bytes.Equal(got, want) {
		t.Errorf("cold read = %v, want all zero bytes", got)
	}
}

func TestWriteThenReadSameTransaction_SeesOwnWrite(t *testing.T) {
	s := New(Options{SegmentSize: 8})
	tx := s.Begin()

	if _, err := s.Write(tx, 0, []byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read(tx, 0, 5)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, []byte("hello")) {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestReadSnapshot_IgnoresConcurrentCommit(t *testing.T) {
	s := New(Options{SegmentSize: 8})

	writer := s.Begin()
	if _, err := s.Write(writer, 0, []byte("A")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	reader := s.Begin() // opened before writer commits

	if _, err := s.Finish(writer, Commit); err != nil {
		t.Fatalf("commit: %v", err)
	}

	got, err := s.Read(reader, 0, 1)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got[0] != 0 {
		t.Errorf("reader saw %q, want the pre-commit null byte", got)
	}
}

func TestWriteThenCommitThenRead_NewTransactionSeesIt(t *testing.T) {
	s := New(Options{SegmentSize: 8})

	writer := s.Begin()
	s.Write(writer, 0, []byte("hi"))
	if _, err := s.Finish(writer, Commit); err != nil {
		t.Fatalf("commit: %v", err)
	}

	reader := s.Begin()
	got, err := s.Read(reader, 0, 2)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, []byte("hi")) {
		t.Errorf("got %q, want %q", got, "hi")
	}
}

func TestRead_AcrossSegmentBoundary(t *testing.T) {
	s := New(Options{SegmentSize: 4})
	tx := s.Begin()

	s.Write(tx, 0, []byte("abcdefgh"))
	got, err := s.Read(tx, 2, 4)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, []byte("cdef")) {
		t.Errorf("got %q, want %q", got, "cdef")
	}
}

func TestRead_NegativeOffset_ReturnsError(t *testing.T) {
	s := New(Options{})
	tx := s.Begin()

	if _, err := s.Read(tx, -1, 1); err != ErrNegativeOffset {
		t.Errorf("got %v, want ErrNegativeOffset", err)
	}
}

func TestWrite_NegativeOffset_ReturnsError(t *testing.T) {
	s := New(Options{})
	tx := s.Begin()

	if _, err := s.Write(tx, -1, []byte("x")); err != ErrNegativeOffset {
		t.Errorf("got %v, want ErrNegativeOffset", err)
	}
}

func TestReadWrite_AfterFinish_ReturnsErrTransactionClosed(t *testing.T) {
	s := New(Options{})
	tx := s.Begin()
	s.Finish(tx, Rollback)

	if _, err := s.Read(tx, 0, 1); err != ErrTransactionClosed {
		t.Errorf("Read after Finish: got %v, want ErrTransactionClosed", err)
	}
	if _, err := s.Write(tx, 0, []byte("x")); err != ErrTransactionClosed {
		t.Errorf("Write after Finish: got %v, want ErrTransactionClosed", err)
	}
}

func TestWrite_OutOfMemory_DoesNotLeakCharge(t *testing.T) {
	s := New(Options{SegmentSize: 8})
	tx := s.Begin()

	s.failNextAllocation()
	if _, err := s.Write(tx, 0, []byte("x")); err != ErrOutOfMemory {
		t.Fatalf("got %v, want ErrOutOfMemory", err)
	}
	if got := s.alloc.usageOf(componentSegment); got != 0 {
		t.Errorf("segment usage after OOM = %d, want 0", got)
	}
	if got := s.alloc.usageOf(componentVersionNode); got != 0 {
		t.Errorf("version-node usage after OOM = %d, want 0", got)
	}

	// Should succeed now that the forced failure was one-shot.
	if _, err := s.Write(tx, 0, []byte("x")); err != nil {
		t.Errorf("retry after OOM: %v", err)
	}
}
