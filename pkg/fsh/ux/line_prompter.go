package ux

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LinePrompter implements Prompter by reading answers line by line. It is used
// when stdin is not a terminal and huh cannot draw its form.
type LinePrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewScanner(in), out: out}
}

func (p *LinePrompter) Confirm(message string) (bool, error) {
	fmt.Fprintf(p.out, "%s (y/n): ", message)

	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return false, err
		}
		return false, io.ErrUnexpectedEOF
	}

	input := strings.ToLower(strings.TrimSpace(p.in.Text()))
	return input == "y" || input == "yes", nil
}

// NewPrompter returns the huh prompter on a terminal and a LinePrompter on
// stdin/stderr otherwise.
func NewPrompter() Prompter {
	if info, err := os.Stdin.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
		return NewHuhPrompter()
	}
	return NewLinePrompter(os.Stdin, os.Stderr)
}
