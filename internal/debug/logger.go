package debug

import (
	"io"
	"log/slog"
)

var (
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
	enabled bool
)

// SetOutput sets the debug output destination
func SetOutput(w io.Writer) {
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	enabled = w != io.Discard
}

// Log writes a debug record. args are slog key/value pairs.
func Log(msg string, args ...any) {
	if !enabled {
		return
	}
	logger.Debug(msg, args...)
}

// Enabled returns true if debug logging is enabled
func Enabled() bool {
	return enabled
}
