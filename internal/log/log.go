// Package log configures structured logging for topwords using log/slog.
package log

import (
	"fmt"
	"io"
	"log/slog"
)

// Level picks the minimum level from verbosity flags.
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
func Level(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelWarn
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// New builds a logger writing to w in the given format ("text" or "json").
func New(w io.Writer, format string, level slog.Level) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (must be text or json)", format)
	}
}

// Setup installs a logger built by New as the slog default and returns it.
func Setup(w io.Writer, format string, verbose, quiet bool) (*slog.Logger, error) {
	logger, err := New(w, format, Level(verbose, quiet))
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}
