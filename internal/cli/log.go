// Package cli implements the netinput command-line interface.
//
// The CLI reads a network description, validates it, and writes echoes,
// conversions and construction plans. It is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - check: Validate a network and report warnings
//   - convert: Convert between the legacy and JSON formats
//   - echo: Write the human-readable and JSON echoes
//   - plan: Run the full pipeline and write the construction plan
//   - graph: Draw the network topology as DOT, SVG or PNG
//   - cache: Manage the parsed-model cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports per-stage timings and cache traffic.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level, with timestamps such
// as "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// startTimer returns a function that logs msg at info level together with
// the time elapsed since startTimer was called, e.g. "Checked net.in (12ms)".
func startTimer(l *log.Logger) func(msg string) {
	start := time.Now()
	return func(msg string) {
		l.Infof("%s (%s)", msg, time.Since(start).Round(time.Millisecond))
	}
}
