// Package input contains line readers used to get CPL source and session
// commands from the terminal or other input streams.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// DirectReader reads lines from any generic input stream directly. It can be
// used with any io.Reader but does not sanitize the input of control and
// escape sequences.
//
// DirectReader should not be constructed directly; create one with
// [NewDirectReader].
type DirectReader struct {
	r *bufio.Reader
}

// InteractiveReader reads lines from stdin using a Go implementation of the
// GNU Readline library. This keeps input clear of typing and editing escape
// sequences and enables line history. It should in general only be used when
// directly connected to a TTY.
//
// InteractiveReader should not be constructed directly; create one with
// [NewInteractiveReader].
type InteractiveReader struct {
	rl     *readline.Instance
	prompt string
}

// NewDirectReader creates a DirectReader with a buffered reader on the
// provided stream. The returned reader must have Close() called on it before
// disposal, for symmetry with InteractiveReader.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates an InteractiveReader and initializes readline.
// The returned reader must have Close() called on it before disposal to
// properly tear down readline resources.
func NewInteractiveReader(prompt string) (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{
		rl:     rl,
		prompt: prompt,
	}, nil
}

// Close is a no-op for DirectReader; it exists so both readers satisfy the
// same interface and callers can treat them uniformly.
func (dr *DirectReader) Close() error {
	return nil
}

// Close cleans up readline resources.
func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}

// ReadLine reads the next line from the stream with its trailing line
// terminator removed; other whitespace is kept. At end of input the returned string is empty and the error is
// io.EOF.
func (dr *DirectReader) ReadLine() (string, error) {
	line, err := dr.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// ReadLine reads the next line from the terminal with its trailing line
// terminator removed; other whitespace is kept. At end of input the returned string is empty and the error is
// io.EOF.
func (ir *InteractiveReader) ReadLine() (string, error) {
	line, err := ir.rl.Readline()
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// SetPrompt updates the prompt to the given text.
func (ir *InteractiveReader) SetPrompt(p string) {
	ir.prompt = p
	ir.rl.SetPrompt(p)
}
