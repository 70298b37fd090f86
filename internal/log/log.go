// Package log configures the zerolog logger shared by all rem commands.
//
// Diagnostics go to stderr, which Alfred surfaces in its debugger. When
// stderr is a terminal (running rem by hand) a human-readable console
// writer is used instead of the plain timestamped format.
package log

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New creates a logger writing to w. Debug level when verbose,
// info otherwise.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
		}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// FromContext retrieves the logger attached to ctx.
// Returns a disabled logger if none is attached.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
