package logging

import (
	"strings"
	"testing"
	"time"
)

func TestNewTestLoggerCapturesOutput(t *testing.T) {
	logger, buf := NewTestLogger()

	logger.Info("server starting", "transport", "stdio")

	out := buf.String()
	if !strings.Contains(out, "server starting") {
		t.Errorf("expected log output to contain message, got %q", out)
	}
	if !strings.Contains(out, "transport") {
		t.Errorf("expected log output to contain key, got %q", out)
	}
}

func TestDebugRespectsDebugFlag(t *testing.T) {
	logger, buf := NewTestLogger()

	logger.Debug("internal detail", "key", "value")
	if !strings.Contains(buf.String(), "internal detail") {
		t.Error("test logger runs in debug mode, debug messages should be recorded")
	}

	buf.Reset()
	logger.debug = false
	logger.Debug("should not appear")
	if buf.Len() != 0 {
		t.Errorf("debug disabled, expected no output, got %q", buf.String())
	}
}

func TestLogPerformance(t *testing.T) {
	logger, buf := NewTestLogger()

	logger.LogPerformance("cargo check", time.Now().Add(-10*time.Millisecond))

	out := buf.String()
	if !strings.Contains(out, "cargo check") {
		t.Errorf("expected operation name in output, got %q", out)
	}
}

func TestGetDefaultIsSingleton(t *testing.T) {
	a := GetDefault()
	b := GetDefault()
	if a != b {
		t.Error("GetDefault should return the same instance")
	}
}
