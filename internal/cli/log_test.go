package cli

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", LogInfo, func(l *log.Logger) { l.Info("fetch done") }, true},
		{"debug at info level", LogInfo, func(l *log.Logger) { l.Debug("cache miss") }, false},
		{"debug at debug level", LogDebug, func(l *log.Logger) { l.Debug("cache miss") }, true},
		{"warn at info level", LogInfo, func(l *log.Logger) { l.Warn("quote batch failed") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, LogInfo).Info("fetch done", "stocks", 40)

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("log line %q should start with an HH:MM:SS.ms timestamp", buf.String())
	}
	if !strings.Contains(buf.String(), "stocks=40") {
		t.Errorf("log line %q should carry key/value pairs", buf.String())
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output after SetLogLevel: %q", buf.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))

	time.Sleep(10 * time.Millisecond)
	prog.done("Fetched 40 stocks from dax")

	if !regexp.MustCompile(`Fetched 40 stocks from dax \(\d+ms\)`).MatchString(buf.String()) {
		t.Errorf("progress output %q should end with the elapsed time", buf.String())
	}
}
