// Package logging configures the process-wide slog logger.
//
// The CLI prints its results on stdout, so all log output goes to stderr
// to keep table/JSON renderings pipeable.
package logging

import (
	"log/slog"
	"os"
)

// Init sets the package-level default slog logger. Verbose mode lowers the
// level to debug; the default only surfaces warnings, matching the quiet
// behavior expected of a scriptable CLI.
func Init(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
