// Package prompt asks the operator questions over a line-oriented terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned when input ends before a path was entered.
var ErrNoInput = errors.New("no input")

// Options configures a Prompter.
type Options struct {
	// AssumeYes answers every confirmation with yes without reading input.
	AssumeYes bool
}

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in   *bufio.Reader
	out  io.Writer
	opts Options
}

// New returns a Prompter over the given streams.
func New(in io.Reader, out io.Writer, opts Options) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, opts: opts}
}

// LibraryPath asks for the location of the library labelled label and returns
// the raw line entered.
func (p *Prompter) LibraryPath(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(p.out, "Drag the %s library here and then press return/enter:\n", label)
	line, err := p.readLine()
	if err != nil {
		return "", fmt.Errorf("read %s library path: %w", strings.ToLower(label), err)
	}
	return line, nil
}

// Confirm asks a yes/no question. Only "y" and "yes" count as yes; end of
// input counts as no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if p.opts.AssumeYes {
		fmt.Fprintf(p.out, "%s (y/N) y\n", question)
		return true, nil
	}
	fmt.Fprintf(p.out, "%s (y/N) ", question)
	line, err := p.readLine()
	if errors.Is(err, ErrNoInput) {
		fmt.Fprintln(p.out)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readLine returns the next line without its terminator. A final line without
// a newline is still returned; ErrNoInput is returned only when nothing is left.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", ErrNoInput
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}
