// Package logging builds the structured logger shared by every command.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Options configures the logger sinks
type Options struct {
	// Level is the minimum level written by the file and console sinks
	Level slog.Level
	// File is a path logs are appended to. Empty disables the file sink.
	File string
	// Console receives human readable logs (e.g. os.Stderr). Nil disables it.
	Console io.Writer
}

// ParseLevel parses debug, info, warn or error
func ParseLevel(text string) (slog.Level, error) {
	var level slog.Level

	if strings.TrimSpace(text) == "" {
		return slog.LevelInfo, nil
	}

	if err := level.UnmarshalText([]byte(strings.TrimSpace(text))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", text, err)
	}

	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger fanning out records to every configured sink plus the
// extra handlers given. The returned closer releases the log file, if any.
func New(opts Options, extra ...slog.Handler) (*slog.Logger, io.Closer, error) {
	handlerOptions := &slog.HandlerOptions{Level: opts.Level}
	handlers := make([]slog.Handler, 0, len(extra)+2)
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}

		handlers = append(handlers, slog.NewJSONHandler(file, handlerOptions))
		closer = file
	}

	if opts.Console != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.Console, handlerOptions))
	}

	handlers = append(handlers, extra...)

	switch len(handlers) {
	case 0:
		return slog.New(slog.NewTextHandler(io.Discard, handlerOptions)), closer, nil
	case 1:
		return slog.New(handlers[0]), closer, nil
	default:
		return slog.New(slogmulti.Fanout(handlers...)), closer, nil
	}
}
