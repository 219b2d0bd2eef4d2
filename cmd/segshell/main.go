// cmd/segshell/main.go
// Command segshell is an interactive shell over an in-memory
// segstore.Store.
//
// Usage:
//
//	segshell [segment-size]
//
// If a segment size is given it overrides the package default. There is
// no on-disk database file to open; durable persistence is out of scope
// (segstore only ever runs in memory).
package main

import (
	"fmt"
	"os"
	"strconv"

	"segdb/internal/segstore"
	"segdb/pkg/shell"
)

func main() {
	opts := segstore.Options{}
	if len(os.Args) > 1 {
		size, err := strconv.Atoi(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid segment size %q: %v\n", os.Args[1], err)
			os.Exit(1)
		}
		opts.SegmentSize = size
	}

	store := segstore.New(opts)
	repl := shell.NewREPL(store, os.Stdout, os.Stderr)
	repl.Run()
}
