// Package cli implements the cipherwen command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log. The main
// command is cipher, which reads an articles file and runs the complete
// pipeline; encode, decode, fingerprint and render expose the individual
// stages for ad-hoc use.
//
// # Commands
//
//   - cipher: Encipher an articles file, optionally to ternary and an image
//   - encode / decode: Convert between cipher text and ternary
//   - fingerprint: Find the distinguishing segments of a few strings
//   - render: Paint a ternary string as a grid image
//   - config: Create, locate and show the config file
//   - cache: Manage the fingerprint cache
//
// Logs go to stderr; --verbose (-v) lowers the level to debug. The logger
// also travels in the command context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger logs to w at level with a short wall-clock timestamp.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly + ".00",
	})
}

// progress logs how long a step took. It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Parsed 3 articles (12ms)".
func (p *progress) done(msg string) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Infof("%s (%s)", msg, elapsed)
}

type loggerKey struct{}

// withLogger attaches l to ctx.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	l, ok := ctx.Value(loggerKey{}).(*log.Logger)
	if !ok {
		return log.Default()
	}
	return l
}
