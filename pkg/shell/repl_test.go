// pkg/shell/repl_test.go
package shell

import (
	"bytes"
	"strings"
	"testing"

	"segdb/internal/segstore"
)

func TestREPL_BeginWriteCommit(t *testing.T) {
	store := segstore.New(segstore.Options{SegmentSize: 8})
	output := &bytes.Buffer{}
	errOutput := &bytes.Buffer{}
	repl := NewREPLWithInput(store, nil, output, errOutput)

	for _, cmd := range []string{"begin", "write 0 hi", "commit"} {
		if err := repl.Dispatch(cmd); err != nil {
			t.Fatalf("Dispatch(%q): %v", cmd, err)
		}
	}

	if errOutput.Len() != 0 {
		t.Errorf("unexpected errors: %s", errOutput.String())
	}
	if !strings.Contains(output.String(), "COMMITTED") {
		t.Errorf("output should report COMMITTED, got: %s", output.String())
	}
}

func TestREPL_ReadWithoutSession_ReturnsError(t *testing.T) {
	store := segstore.New(segstore.Options{})
	output := &bytes.Buffer{}
	repl := NewREPLWithInput(store, nil, output, output)

	err := repl.Dispatch("read 0 1")

	if err == nil {
		t.Error("read without an open session should error")
	}
}

func TestREPL_DoubleBegin_ReturnsError(t *testing.T) {
	store := segstore.New(segstore.Options{})
	output := &bytes.Buffer{}
	repl := NewREPLWithInput(store, nil, output, output)

	if err := repl.Dispatch("begin"); err != nil {
		t.Fatalf("first begin: %v", err)
	}
	if err := repl.Dispatch("begin"); err == nil {
		t.Error("second begin before commit/rollback should error")
	}
}
