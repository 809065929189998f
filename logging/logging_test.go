package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetOutput(&buf)
	logger.SetLevel(LevelInfo)

	logger.Debug("debug message")
	if buf.Len() > 0 {
		t.Error("debug message should be filtered at INFO level")
	}

	logger.Info("info message")
	output := buf.String()
	if !strings.Contains(output, "INFO") || !strings.Contains(output, "info message") {
		t.Errorf("expected info line, got: %s", output)
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := New().WithComponent("store")
	logger.SetOutput(&buf)

	logger.Info("hello", map[string]interface{}{"b": 2, "a": 1})

	output := buf.String()
	if !strings.HasPrefix(output, "INFO ") {
		t.Errorf("expected line to start with 'INFO ', got: %s", output)
	}
	if !strings.Contains(output, "[store]") {
		t.Errorf("expected component, got: %s", output)
	}
	if !strings.Contains(output, "hello a=1 b=2") {
		t.Errorf("expected sorted fields, got: %s", output)
	}
}

func TestLogger_WithTraceID(t *testing.T) {
	var buf bytes.Buffer
	base := New()
	base.SetOutput(&buf)
	logger := base.WithTraceID("sess-1")

	logger.Info("x")

	if !strings.Contains(buf.String(), "trace=sess-1") {
		t.Errorf("expected trace field, got: %s", buf.String())
	}
	if base.TraceID() != "" {
		t.Error("WithTraceID should not modify the parent")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" INFO ", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLogger_TaskEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetOutput(&buf)
	logger.SetLevel(LevelDebug)

	logger.TaskAdded(1, "high")
	logger.TaskRejected("empty text")
	logger.TaskToggled(1, true, true)
	logger.TaskToggled(9, false, false)
	logger.TaskRemoved(1, true)
	logger.TasksCleared("all", 3)
	logger.StatsComputed(2, 1, 50)

	output := buf.String()
	for _, want := range []string{
		"task_added id=1 priority=high",
		"WARN",
		"task_rejected reason=empty text",
		"task_toggled completed=true found=true id=1",
		"task_toggled found=false id=9",
		"task_removed found=true id=1",
		"tasks_cleared removed=3 scope=all",
		"stats completed=1 rate=50 total=2",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("missing %q in:\n%s", want, output)
		}
	}
}

func TestLogger_Session(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetOutput(&buf)

	logger.SessionStart(3)
	logger.SessionEnd(10*time.Millisecond, 4)

	output := buf.String()
	if !strings.Contains(output, "session_start seeded=3") {
		t.Errorf("expected session_start, got: %s", output)
	}
	if !strings.Contains(output, "duration=10ms") {
		t.Errorf("expected duration, got: %s", output)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing")
}
