// pkg/shell/shell.go
// Package shell is an interactive line-oriented driver for a
// segstore.Store: it reads a line, tracks history, and hands the line
// to a REPL for dispatch. Commands are single-line device directives,
// so there is no continuation-prompt or quote-tracking logic needed.
package shell

import (
	"bufio"
	"io"
	"strings"
)

// Shell handles line input, output, and command history for the REPL.
type Shell struct {
	reader *bufio.Reader

	output    io.Writer
	errOutput io.Writer

	prompt string

	history    []string
	historyIdx int
	maxHistory int
}

// New creates a Shell reading from input and writing to output. If
// errOutput is nil, errors are written to output.
func New(input io.Reader, output, errOutput io.Writer) *Shell {
	var reader *bufio.Reader
	if input != nil {
		reader = bufio.NewReader(input)
	}
	if errOutput == nil {
		errOutput = output
	}
	return &Shell{
		reader:     reader,
		output:     output,
		errOutput:  errOutput,
		prompt:     "segdb> ",
		maxHistory: 1000,
	}
}

// SetPrompt changes the prompt string.
func (s *Shell) SetPrompt(prompt string) { s.prompt = prompt }

// ReadLine prints the prompt, reads one line, and strips trailing
// whitespace. The bool return reports EOF.
func (s *Shell) ReadLine() (string, bool) {
	if s.reader == nil {
		return "", true
	}
	if s.output != nil {
		io.WriteString(s.output, s.prompt)
	}

	line, err := s.reader.ReadString('\n')
	line = strings.TrimRight(line, " \t\r\n")
	if err != nil {
		return line, true
	}

	trimmed := strings.TrimSpace(line)
	if trimmed != "" {
		s.addHistory(trimmed)
	}
	return line, false
}

func (s *Shell) addHistory(cmd string) {
	if len(s.history) > 0 && s.history[len(s.history)-1] == cmd {
		return
	}
	s.history = append(s.history, cmd)
	if len(s.history) > s.maxHistory {
		s.history = s.history[len(s.history)-s.maxHistory:]
	}
	s.historyIdx = len(s.history)
}

// History returns a copy of the command history.
func (s *Shell) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}
