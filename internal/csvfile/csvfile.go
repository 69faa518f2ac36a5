// Package csvfile appends shaped rows to a CSV file on disk.
package csvfile

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultName is the file name used when none is configured.
const DefaultName = "log.csv"

// WriteError reports a failure while appending to the CSV file.
type WriteError struct {
	Path string
	Op   string // open, write, flush or close
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Writer appends a header and rows to a single CSV file. The file is never
// truncated, so every Append adds another header.
type Writer struct {
	path   string
	header string
}

// New returns a Writer for dir/name. An empty dir means the working
// directory and an empty name means DefaultName. Failing to resolve the
// working directory is reported as a *WriteError for the bare name.
func New(dir, name, header string) (*Writer, error) {
	if name == "" {
		name = DefaultName
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, &WriteError{Path: name, Op: "open", Err: fmt.Errorf("resolve working directory: %w", err)}
		}
		dir = wd
	}
	return &Writer{path: filepath.Join(dir, name), header: header}, nil
}

// Path returns the file the Writer appends to.
func (w *Writer) Path() string { return w.path }

// Append writes the header followed by lines, each terminated by '\n'. It
// returns the number of lines written after the header. Data flushed before
// a failure stays in the file.
func (w *Writer) Append(lines []string) (n int, err error) {
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, &WriteError{Path: w.path, Op: "open", Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &WriteError{Path: w.path, Op: "close", Err: cerr}
		}
	}()

	enc := transform.NewWriter(f, unicode.UTF8.NewEncoder())
	bw := bufio.NewWriter(enc)

	if _, err := bw.WriteString(w.header + "\n"); err != nil {
		return 0, &WriteError{Path: w.path, Op: "write", Err: err}
	}
	for _, line := range lines {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return n, &WriteError{Path: w.path, Op: "write", Err: err}
		}
		n++
	}
	if err := bw.Flush(); err != nil {
		return n, &WriteError{Path: w.path, Op: "flush", Err: err}
	}
	if err := enc.Close(); err != nil {
		return n, &WriteError{Path: w.path, Op: "flush", Err: err}
	}

	slog.Debug("csv rows appended", "path", w.path, "rows", n)
	return n, nil
}
