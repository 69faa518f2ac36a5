// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	nanoid "github.com/matoous/go-nanoid/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rugwirobaker/logshape/internal/config"
	"github.com/rugwirobaker/logshape/internal/pointer"
)

const runIDAlphabet = "0123456789abcdef"

var Level struct {
	sync.Mutex
	slog.LevelVar
}

// Configure installs the default slog logger described by c, writing to w
// and, when c.Path is set, to a size-rotated file. The returned closer
// releases the rotated file.
func Configure(c config.Log, w io.Writer) (io.Closer, error) {
	Level.Lock()
	defer Level.Unlock()

	if c.Debug {
		Level.Set(slog.LevelDebug)
	} else {
		Level.Set(slog.LevelInfo)
	}

	handler, closer, err := NewHandler(c, w)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(handler))
	return closer, nil
}

// NewHandler builds the handler Configure installs.
func NewHandler(c config.Log, w io.Writer) (slog.Handler, io.Closer, error) {
	opts := slog.HandlerOptions{Level: &Level.LevelVar}

	if !c.Timestamp {
		opts.ReplaceAttr = removeTime
	}

	var closer io.Closer = nopCloser{}
	if path := pointer.StringValue(c.Path); path != "" {
		rotated := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    c.MaxSizeMB,
			MaxBackups: 3,
			Compress:   true,
		}
		w = io.MultiWriter(w, rotated)
		closer = rotated
	}

	var handler slog.Handler
	switch format := c.Format; format {
	case "text":
		handler = slog.NewTextHandler(w, &opts)
	case "json":
		handler = slog.NewJSONHandler(w, &opts)
	default:
		closer.Close()
		return nil, nil, fmt.Errorf("invalid log format: %q", format)
	}
	return handler, closer, nil
}

// RunID returns a short random id that tags every record of one run.
func RunID() string {
	id, err := nanoid.Generate(runIDAlphabet, 8)
	if err != nil {
		return "unknown"
	}
	return id
}

// removeTime removes the "time" field from slog.
func removeTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.Attr{}
	}
	return a
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
