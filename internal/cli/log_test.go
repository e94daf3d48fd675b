package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info", LogInfo, func(l *log.Logger) { l.Info("frame") }, true},
		{"debug at info", LogInfo, func(l *log.Logger) { l.Debug("frame") }, false},
		{"debug at debug", LogDebug, func(l *log.Logger) { l.Debug("frame") }, true},
		{"info at warn", LogWarn, func(l *log.Logger) { l.Info("frame") }, false},
		{"warn at warn", LogWarn, func(l *log.Logger) { l.Warn("frame") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.wantLog, buf.String())
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	prog.done("wrote charts", "dir", "out", "charts", 7)

	out := buf.String()
	for _, want := range []string{"wrote charts", "dir=out", "charts=7", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestChartLoggerPrefix(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, LogInfo))

	chartLogger(ctx, "orbit").Info("rendered")
	if !strings.Contains(buf.String(), "orbit") {
		t.Errorf("output %q missing chart prefix", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield log.Default()")
	}

	l := newLogger(&bytes.Buffer{}, LogDebug)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("attached logger not returned")
	}
}
