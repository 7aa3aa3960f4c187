package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/techchallenge/vehicle-api/internal/common/constants"
)

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "test", "warn")

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Errorf("error %d", 42)

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("expected debug and info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARNING] [test]") || !strings.Contains(out, "warn message") {
		t.Errorf("expected warning line, got %q", out)
	}
	if !strings.Contains(out, "error 42") {
		t.Errorf("expected formatted error line, got %q", out)
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "", "error")

	if log.ShouldLog(INFO) {
		t.Error("expected INFO to be disabled at ERROR level")
	}

	log.SetLevel("debug")
	if !log.ShouldLog(DEBUG) {
		t.Error("expected DEBUG to be enabled after SetLevel")
	}

	log.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}

func TestLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	log := NewWithWriter(&bytes.Buffer{}, "", "verbose")
	if log.ShouldLog(DEBUG) || !log.ShouldLog(INFO) {
		t.Error("expected unknown level to fall back to INFO")
	}
}

func TestEntry_FieldsAndTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "auth", "info")

	ctx := context.WithValue(context.Background(), constants.TraceIDKey, "trace-123")
	log.WithFields(ctx, Fields{
		"user_id": 7,
		"action":  "login",
	}).Info("user logged in")

	out := buf.String()
	if !strings.Contains(out, "[trace_id=trace-123 action=login user_id=7]") {
		t.Errorf("expected trace id and sorted fields, got %q", out)
	}
	if !strings.Contains(out, "user logged in") {
		t.Errorf("expected message, got %q", out)
	}
}

func TestLogger_ReportsCallerFile(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "", "info")

	log.Info("direct")
	log.WithFields(context.Background(), Fields{"k": "v"}).Info("entry")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, "logger_test.go:") {
			t.Errorf("expected caller to be logger_test.go, got %q", line)
		}
	}
}
