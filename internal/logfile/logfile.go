// Package logfile loads a whole log file into memory as UTF-8 lines.
package logfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadError reports a log file that could not be opened or read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Read returns the lines of the file at path in order, without their line
// terminators. Files ending in .gz or .zst are decompressed first.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	r, closeFn, err := decompress(path, f)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer closeFn()

	lines, err := ReadLines(r)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	slog.Debug("log file loaded", "path", path, "lines", len(lines))
	return lines, nil
}

// ReadLines decodes r as UTF-8 and splits it into lines ended by "\n", "\r"
// or "\r\n". A final line without terminator is kept.
func ReadLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(transform.NewReader(r, unicode.UTF8.NewDecoder()))

	var lines []string
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			lines = append(lines, strings.Split(line, "\r")...)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func decompress(path string, r io.Reader) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return zr, func() { zr.Close() }, nil
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("open zstd stream: %w", err)
		}
		return zr, zr.Close, nil
	default:
		return r, func() {}, nil
	}
}
