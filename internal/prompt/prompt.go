// Package prompt is the interactive channel between slurmgen and the operator.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Dvegrod/little-toolset/internal/utils"
)

// Channel asks questions and surfaces messages.
//
// Ask returns one line without its line terminator. When the input is
// exhausted before any character is read it returns ("", io.EOF).
// AskBlock returns everything up to end of input.
type Channel interface {
	Ask(question string) (string, error)
	AskBlock(question string) (string, error)
	Say(format string, a ...interface{})
	Warn(format string, a ...interface{})
}

// Terminal is a Channel over a reader and a writer, normally stdin/stdout.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a Terminal. Warnings are written to out so that they
// appear inline with the questions.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Ask prints the question inline and reads one line.
func (t *Terminal) Ask(question string) (string, error) {
	fmt.Fprintf(t.out, "%s ", utils.StyleQuestion(question))

	line, err := t.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	if errors.Is(err, io.EOF) {
		// Keep the transcript tidy when input ends without a newline
		fmt.Fprintln(t.out)
		if line == "" {
			return "", io.EOF
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// AskBlock prints the question on its own line and reads until end of input.
func (t *Terminal) AskBlock(question string) (string, error) {
	fmt.Fprintln(t.out, utils.StyleQuestion(question))

	data, err := io.ReadAll(t.in)
	if err != nil {
		return "", fmt.Errorf("failed to read input block: %w", err)
	}
	return string(data), nil
}

// Say prints an informational line.
func (t *Terminal) Say(format string, a ...interface{}) {
	fmt.Fprintf(t.out, format+"\n", a...)
}

// Warn prints a tagged warning line.
func (t *Terminal) Warn(format string, a ...interface{}) {
	utils.FprintWarning(t.out, format, a...)
}
