package tasks

import (
	"strings"
	"time"

	"github.com/vinayprograms/tasklist/errors"
)

// Common errors. Match them with the standard errors.Is.
var (
	// ErrInvalidInput indicates Add rejected its input. Nothing changed.
	ErrInvalidInput = errors.FromCode(errors.ErrCodeInvalidInput)

	// ErrNotFound indicates no task has the requested id.
	ErrNotFound = errors.FromCode(errors.ErrCodeNotFound)
)

// Priority is the urgency of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists the valid priorities, most urgent first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// Valid reports whether p is one of high, medium or low.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// ParsePriority accepts "high", "medium" or "low" in any case.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", errors.InvalidInput("priority must be high, medium or low",
			errors.WithMetadata("priority", s))
	}
	return p, nil
}

// Task is one entry of the list. Only Completed changes after creation.
type Task struct {
	// ID is assigned by the store, starting at 1, never reused.
	ID int `json:"id"`

	// Text is the trimmed, non-empty description.
	Text string `json:"text"`

	Priority Priority `json:"priority"`

	Completed bool `json:"completed"`

	// CreatedAt is when the store accepted the task.
	CreatedAt time.Time `json:"created_at"`
}

// Status returns "COMPLETED" or "PENDING".
func (t Task) Status() string {
	if t.Completed {
		return "COMPLETED"
	}
	return "PENDING"
}

// Statistics are the aggregate counters over a store.
type Statistics struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`

	// CompletionRate is Completed/Total as a percentage rounded half up,
	// or 0 for an empty store.
	CompletionRate int `json:"completion_rate"`

	// PriorityCounts always has the keys high, medium and low.
	PriorityCounts map[Priority]int `json:"priority_counts"`
}

// Compute derives Statistics from a task list.
func Compute(list []Task) Statistics {
	stats := Statistics{
		Total: len(list),
		PriorityCounts: map[Priority]int{
			PriorityHigh:   0,
			PriorityMedium: 0,
			PriorityLow:    0,
		},
	}
	for _, t := range list {
		if t.Completed {
			stats.Completed++
		}
		if _, ok := stats.PriorityCounts[t.Priority]; ok {
			stats.PriorityCounts[t.Priority]++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	stats.CompletionRate = completionRate(stats.Completed, stats.Total)
	return stats
}

// completionRate is round(completed/total*100) with halves rounded up,
// done in integers so 1/8 gives 13 rather than a float artefact.
func completionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return (200*completed + total) / (2 * total)
}
