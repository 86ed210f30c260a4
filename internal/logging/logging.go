// Package logging configures the process-wide slog logger. Diagnostics go to
// stderr so that report output on stdout stays machine-readable.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	envJSON  = "REGEXSCAN_JSON_LOG"
	envLevel = "REGEXSCAN_LOG_LEVEL"
)

// New builds a logger writing to w. JSON if REGEXSCAN_JSON_LOG=1/true else
// text. verbose forces debug level; otherwise REGEXSCAN_LOG_LEVEL applies and
// the default is warn.
func New(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: levelFromEnv()}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	var handler slog.Handler
	if jsonMode() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("app", "regexscan")
}

// Init installs New(os.Stderr, verbose) as the default logger.
func Init(verbose bool) *slog.Logger {
	logger := New(os.Stderr, verbose)
	slog.SetDefault(logger)
	logger.Debug("logging initialized", "json", jsonMode())
	return logger
}

func jsonMode() bool {
	mode := strings.ToLower(os.Getenv(envJSON))
	return mode == "1" || mode == "true" || mode == "json"
}

func levelFromEnv() slog.Leveler {
	switch strings.ToLower(os.Getenv(envLevel)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
