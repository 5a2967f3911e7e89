// Package cli implements the griddeck command-line interface.
//
// The root command starts the dashboard TUI; the layouts subcommands manage
// persisted layouts without starting the UI. The CLI is built on cobra with
// charmbracelet/log for structured logging; loggers travel through
// context.Context so every command logs with the level --verbose selected.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with timestamp formatting writing to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// ctxKey is a distinct type for context keys in this package.
type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a context with the logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to
// log.Default so commands always have a valid logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
