// forked from https://github.com/cli/cli/tree/trunk/pkg/iostreams

package iostreams

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"
)

type IOStreams struct {
	In     io.ReadCloser
	Out    io.Writer
	ErrOut io.Writer
}

func NewStream(stdin io.ReadCloser, stdout, stderr io.Writer) *IOStreams {
	return &IOStreams{
		In:     stdin,
		Out:    stdout,
		ErrOut: stderr,
	}
}

func System() *IOStreams {
	return NewStream(os.Stdin, os.Stdout, os.Stderr)
}

// IsStdoutTTY reports whether Out is attached to a terminal.
func (s *IOStreams) IsStdoutTTY() bool {
	return isTerminal(s.Out)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

type contextKey struct{}

// NewContext derives a context that carries io from ctx.
func NewContext(ctx context.Context, io *IOStreams) context.Context {
	return context.WithValue(ctx, contextKey{}, io)
}

// FromContext returns the IOStreams ctx carries. It falls back to the
// system streams when ctx carries none.
func FromContext(ctx context.Context) *IOStreams {
	if io, ok := ctx.Value(contextKey{}).(*IOStreams); ok {
		return io
	}
	return System()
}
