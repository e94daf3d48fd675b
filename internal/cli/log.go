// Package cli implements the cryptoviz command-line interface.
//
// The CLI renders dashboard charts to files, serves the live dashboard,
// previews animations in the terminal and manages the render cache. It is
// built on cobra; every command sees the layered configuration loaded by
// the root command.
//
// # Commands
//
//   - render: Render one chart to SVG, PNG, PDF, JSON or DOT
//   - render-all: Render every chart into a directory
//   - charts: List the available charts
//   - watch: Preview an animated chart in the terminal
//   - serve: Run the dashboard HTTP and websocket server
//   - cache: Manage the render cache
//   - config: Print the effective configuration
//
// # Logging
//
// --verbose (-v) enables debug logging and --quiet (-q) keeps warnings and
// errors only. The logger travels in the command context; per-chart work
// logs through chartLogger so lines carry the chart name as prefix.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "15:04:05.00" timestamps that writes
// to w at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// chartLogger returns the context logger scoped to one chart.
func chartLogger(ctx context.Context, kind string) *log.Logger {
	return loggerFromContext(ctx).WithPrefix(kind)
}

// progress times one operation for a single goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time and any extra key-value pairs.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
