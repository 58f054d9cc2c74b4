package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/AlibekovAA/account-service/internal/common/constants"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "account", "warn")

	log.Infof("hidden %d", 1)
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected info line to be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARNING] [account]") || !strings.Contains(out, "shown") {
		t.Errorf("expected warning line, got %q", out)
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "", "error")

	if log.ShouldLog(INFO) {
		t.Error("expected INFO to be disabled")
	}

	log.SetLevel("debug")
	if !log.ShouldLog(DEBUG) {
		t.Error("expected DEBUG to be enabled after SetLevel")
	}

	log.WithFields(context.Background(), Fields{"action": "level_check"}).Debug("debug visible")
	if !strings.Contains(buf.String(), "[DEBUG]") || !strings.Contains(buf.String(), "debug visible") {
		t.Errorf("expected debug line after SetLevel, got %q", buf.String())
	}
}

func TestEntry_FieldsAndTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "account", "debug")

	ctx := context.WithValue(context.Background(), constants.TraceIDKey, "trace-123")
	log.WithFields(ctx, Fields{"user_id": "u1", "action": "login"}).Info("done")

	out := buf.String()
	if !strings.Contains(out, "[trace_id=trace-123 action=login user_id=u1]") {
		t.Errorf("expected sorted fields with trace id, got %q", out)
	}
	if !strings.Contains(out, "logger_test.go:") {
		t.Errorf("expected caller file in output, got %q", out)
	}
}

func TestParseLevel_Unknown(t *testing.T) {
	if parseLevel("verbose") != INFO {
		t.Error("expected unknown level to fall back to INFO")
	}
}
