// Package logging provides leveled console output for a task session.
// Lines look like: LEVEL TIMESTAMP [component] message key=value ...
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var levelPriority = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ParseLevel maps a config string such as "debug" to a Level.
func ParseLevel(s string) (Level, error) {
	level := Level(strings.ToUpper(strings.TrimSpace(s)))
	if level == "WARNING" {
		level = LevelWarn
	}
	if _, ok := levelPriority[level]; !ok {
		return "", fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// Logger writes leveled lines to an io.Writer (stderr by default).
type Logger struct {
	mu        *sync.Mutex
	output    io.Writer
	minLevel  Level
	component string
	traceID   string
}

// New creates a Logger at INFO level writing to stderr.
func New() *Logger {
	return &Logger{
		mu:       &sync.Mutex{},
		output:   os.Stderr,
		minLevel: LevelInfo,
	}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	l := New()
	l.output = io.Discard
	l.minLevel = LevelError
	return l
}

// WithComponent returns a copy of the logger tagged with component.
func (l *Logger) WithComponent(component string) *Logger {
	c := *l
	c.component = component
	return &c
}

// WithTraceID returns a copy of the logger carrying the given trace ID.
func (l *Logger) WithTraceID(traceID string) *Logger {
	c := *l
	c.traceID = traceID
	return &c
}

// TraceID returns the trace ID, if any.
func (l *Logger) TraceID() string {
	return l.traceID
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.minLevel = level
}

// SetOutput sets the output writer.
func (l *Logger) SetOutput(w io.Writer) {
	l.output = w
}

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.log(LevelDebug, msg, fields...)
}

func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.log(LevelInfo, msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.log(LevelWarn, msg, fields...)
}

func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	l.log(LevelError, msg, fields...)
}

// formatFields renders fields as sorted key=value pairs.
func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return " " + strings.Join(parts, " ")
}

func (l *Logger) log(level Level, msg string, fields ...map[string]interface{}) {
	if levelPriority[level] < levelPriority[l.minLevel] {
		return
	}

	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	merged := make(map[string]interface{})
	if len(fields) > 0 && fields[0] != nil {
		for k, v := range fields[0] {
			merged[k] = v
		}
	}
	if l.traceID != "" {
		merged["trace"] = l.traceID
	}
	fieldStr := formatFields(merged)

	var line string
	if l.component != "" {
		line = fmt.Sprintf("%-5s %s [%s] %s%s\n", level, timestamp, l.component, msg, fieldStr)
	} else {
		line = fmt.Sprintf("%-5s %s %s%s\n", level, timestamp, msg, fieldStr)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write([]byte(line))
}

// --- Task events ---

// TaskAdded logs a successful add.
func (l *Logger) TaskAdded(id int, priority string) {
	l.Info("task_added", map[string]interface{}{
		"id":       id,
		"priority": priority,
	})
}

// TaskRejected logs an add that failed validation.
func (l *Logger) TaskRejected(reason string) {
	l.Warn("task_rejected", map[string]interface{}{
		"reason": reason,
	})
}

// TaskToggled logs a completion flip. found=false means a stale id.
func (l *Logger) TaskToggled(id int, completed, found bool) {
	fields := map[string]interface{}{
		"id":    id,
		"found": found,
	}
	if found {
		fields["completed"] = completed
	}
	l.Debug("task_toggled", fields)
}

// TaskRemoved logs a removal attempt.
func (l *Logger) TaskRemoved(id int, found bool) {
	l.Debug("task_removed", map[string]interface{}{
		"id":    id,
		"found": found,
	})
}

// TasksCleared logs a bulk clear; scope is "completed" or "all".
func (l *Logger) TasksCleared(scope string, removed int) {
	l.Info("tasks_cleared", map[string]interface{}{
		"scope":   scope,
		"removed": removed,
	})
}

// StatsComputed logs the aggregate counters.
func (l *Logger) StatsComputed(total, completed, rate int) {
	l.Debug("stats", map[string]interface{}{
		"total":     total,
		"completed": completed,
		"rate":      rate,
	})
}

// SessionStart logs the start of an interactive session.
func (l *Logger) SessionStart(seeded int) {
	l.Info("session_start", map[string]interface{}{
		"seeded": seeded,
	})
}

// SessionEnd logs the end of a session.
func (l *Logger) SessionEnd(duration time.Duration, commands int) {
	l.Info("session_end", map[string]interface{}{
		"duration": duration.String(),
		"commands": commands,
	})
}
