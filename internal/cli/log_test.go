package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level log.Level
		emit  func(*log.Logger, any, ...any)
		shown bool
	}{
		{log.InfoLevel, (*log.Logger).Info, true},
		{log.InfoLevel, (*log.Logger).Warn, true},
		{log.InfoLevel, (*log.Logger).Debug, false},
		{log.DebugLevel, (*log.Logger).Debug, true},
		{log.WarnLevel, (*log.Logger).Info, false},
	}

	for i, tt := range tests {
		var buf bytes.Buffer
		tt.emit(newLogger(&buf, tt.level), "parsed network")
		if got := strings.Contains(buf.String(), "parsed network"); got != tt.shown {
			t.Errorf("case %d: logged = %v, want %v (%q)", i, got, tt.shown, buf.String())
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug logged at info level: %q", buf.String())
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug not logged after SetLogLevel: %q", buf.String())
	}
}

func TestStartTimer(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	done := startTimer(logger)
	done("Checked bifurcation.in")

	out := buf.String()
	if !strings.Contains(out, "Checked bifurcation.in") {
		t.Errorf("output %q missing message", out)
	}
	if !strings.Contains(out, "s)") {
		t.Errorf("output %q missing elapsed time", out)
	}
}
