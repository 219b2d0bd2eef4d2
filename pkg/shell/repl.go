// pkg/shell/repl.go
package shell

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"segdb/internal/segstore"
	"segdb/pkg/device"
)

// REPL drives a Shell against a single segstore.Store, dispatching
// single-word commands for session lifecycle and byte-addressed
// reads/writes.
type REPL struct {
	store   *segstore.Store
	shell   *Shell
	session *device.Session
	stream  *device.Stream

	output    io.Writer
	errOutput io.Writer
	exit      bool
}

// NewREPL creates a REPL reading from stdin.
func NewREPL(store *segstore.Store, output, errOutput io.Writer) *REPL {
	return NewREPLWithInput(store, os.Stdin, output, errOutput)
}

// NewREPLWithInput creates a REPL with a custom input stream, for tests
// or scripted operation.
func NewREPLWithInput(store *segstore.Store, input io.Reader, output, errOutput io.Writer) *REPL {
	return &REPL{
		store:     store,
		shell:     New(input, output, errOutput),
		output:    output,
		errOutput: errOutput,
	}
}

// Run reads commands until EOF or "exit".
func (r *REPL) Run() {
	fmt.Fprintln(r.output, "segdb shell")
	fmt.Fprintln(r.output, "Enter \"help\" for a list of commands.")

	for !r.exit {
		line, eof := r.shell.ReadLine()
		line = strings.TrimSpace(line)

		if line != "" {
			if err := r.Dispatch(line); err != nil {
				fmt.Fprintf(r.errOutput, "error: %v\n", err)
			}
		}

		if eof {
			fmt.Fprintln(r.output)
			if r.session != nil {
				r.session.Close(r.store)
				r.session = nil
				r.stream = nil
			}
			break
		}
	}
}

// Dispatch executes a single command line. It is exported so callers can
// drive the REPL programmatically (e.g. from tests) without going
// through Run's input loop.
func (r *REPL) Dispatch(line string) error {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "exit", "quit":
		r.exit = true
		return nil
	case "help":
		r.printHelp()
		return nil
	case "begin":
		return r.cmdBegin()
	case "read":
		return r.cmdRead(args)
	case "write":
		return r.cmdWrite(args)
	case "commit":
		return r.cmdFinish(segstore.Commit)
	case "rollback":
		return r.cmdFinish(segstore.Rollback)
	case "compact":
		r.store.Compact()
		fmt.Fprintln(r.output, "compaction complete")
		return nil
	case "status":
		r.cmdStatus()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", fields[0])
	}
}

func (r *REPL) requireSession() error {
	if r.session == nil {
		return fmt.Errorf("no open session; run \"begin\" first")
	}
	return nil
}

func (r *REPL) cmdBegin() error {
	if r.session != nil {
		return fmt.Errorf("session %s already open; commit or rollback first", r.session.ID())
	}
	r.session = device.Open(r.store)
	r.stream = device.NewStream(r.store, r.session)
	fmt.Fprintf(r.output, "session %s opened (version %d)\n", r.session.ID(), r.session.VersionID())
	return nil
}

func (r *REPL) cmdRead(args []string) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: read <offset> <length>")
	}
	offset, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad offset: %w", err)
	}
	length, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad length: %w", err)
	}
	buf := make([]byte, length)
	n, err := r.stream.ReadAt(buf, offset)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.output, "%q\n", buf[:n])
	return nil
}

func (r *REPL) cmdWrite(args []string) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: write <offset> <text>")
	}
	offset, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad offset: %w", err)
	}
	payload := []byte(strings.Join(args[1:], " "))
	n, err := r.stream.WriteAt(payload, offset)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.output, "wrote %d bytes\n", n)
	return nil
}

func (r *REPL) cmdFinish(intent segstore.Intent) error {
	if err := r.requireSession(); err != nil {
		return err
	}
	outcome, err := r.session.Finish(r.store, intent)
	r.session = nil
	r.stream = nil
	fmt.Fprintln(r.output, outcome.String())
	return err
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.output, "chain depth: %d\n", r.store.ChainDepthFromHead())
	fmt.Fprintf(r.output, "live versions: %d\n", r.store.LiveVersionCount())
	if r.session != nil {
		fmt.Fprintf(r.output, "open session: %s (version %d)\n", r.session.ID(), r.session.VersionID())
	} else {
		fmt.Fprintln(r.output, "no open session")
	}
}

func (r *REPL) printHelp() {
	help := `
begin              open a new session
read OFF LEN       read LEN bytes starting at OFF in the open session
write OFF TEXT     write TEXT starting at OFF in the open session
commit             commit the open session
rollback           roll back the open session
compact            run the chain compactor
status             show chain depth, live version count, open session
exit, quit         leave the shell
`
	fmt.Fprintln(r.output, help)
}
