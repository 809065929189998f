package tasks

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vinayprograms/tasklist/errors"
	"github.com/vinayprograms/tasklist/logging"
)

// Store owns an ordered task list and the id counter.
type Store struct {
	mu     sync.RWMutex
	tasks  []Task
	nextID int
	now    func() time.Time
	logger *logging.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the function used to stamp CreatedAt.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger used for mutation events. Nil keeps the
// discarding default.
func WithLogger(logger *logging.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates an empty store whose first id is 1.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		nextID: 1,
		now:    time.Now,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a task and returns a copy of it.
// Empty (after trimming) text or an unknown priority returns an error
// matching ErrInvalidInput and consumes no id.
func (s *Store) Add(text string, priority Priority) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		s.logger.TaskRejected("empty text")
		return Task{}, errors.InvalidInput("task text is empty",
			errors.WithMetadata("field", "text"))
	}
	if !priority.Valid() {
		s.logger.TaskRejected("invalid priority")
		return Task{}, errors.InvalidInput("priority must be high, medium or low",
			errors.WithMetadata("field", "priority"),
			errors.WithMetadata("priority", string(priority)))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := Task{
		ID:        s.nextID,
		Text:      text,
		Priority:  priority,
		CreatedAt: s.now(),
	}
	s.nextID++
	s.tasks = append(s.tasks, task)

	s.logger.TaskAdded(task.ID, string(priority))
	return task, nil
}

// Toggle flips Completed on the task with id. It returns false, changing
// nothing, when no such task exists.
func (s *Store) Toggle(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.logger.TaskToggled(id, false, false)
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.logger.TaskToggled(id, s.tasks[i].Completed, true)
	return true
}

// Remove deletes the task with id, keeping the order of the rest.
// It returns false when no such task exists.
func (s *Store) Remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.logger.TaskRemoved(id, false)
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.logger.TaskRemoved(id, true)
	return true
}

// ClearCompleted removes every completed task and returns how many went.
func (s *Store) ClearCompleted() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if t.Completed {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	// Zero the tail so removed tasks are not retained by the backing array.
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = Task{}
	}
	s.tasks = kept

	s.logger.TasksCleared("completed", removed)
	return removed
}

// ClearAll empties the store and returns the prior length.
// The id counter keeps counting.
func (s *Store) ClearAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.tasks)
	s.tasks = nil

	s.logger.TasksCleared("all", removed)
	return removed
}

// Stats computes the aggregate counters. It never mutates the store.
func (s *Store) Stats() Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Compute(s.tasks)
	s.logger.StatsComputed(stats.Total, stats.Completed, stats.CompletionRate)
	return stats
}

// Get returns a copy of the task with id, or an error matching ErrNotFound.
func (s *Store) Get(id int) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, errors.NotFound(fmt.Sprintf("task %d not found", id), errors.WithTaskID(id))
	}
	return s.tasks[i], nil
}

// List returns a copy of all tasks in display order.
func (s *Store) List() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Pending returns the incomplete tasks in display order.
func (s *Store) Pending() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Task
	for _, t := range s.tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// NextID returns the id the next successful Add will assign.
func (s *Store) NextID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextID
}

// indexOf returns the position of id, or -1. Callers hold mu.
func (s *Store) indexOf(id int) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
