package shutdown

import (
	"context"
	"time"

	"github.com/vinayprograms/tasklist/errors"
)

// Common errors.
var (
	// ErrAlreadyShutdown indicates shutdown was already initiated.
	ErrAlreadyShutdown = errors.New(errors.ErrCodeConflict, "shutdown already initiated")

	// ErrTimeout indicates teardown did not finish before the deadline.
	ErrTimeout = errors.New(errors.ErrCodeCanceled, "shutdown timeout exceeded")

	// ErrHandlerFailed indicates one or more handlers returned an error.
	ErrHandlerFailed = errors.New(errors.ErrCodeInternal, "one or more handlers failed")
)

// Handler is implemented by anything that must be torn down when the
// session ends.
type Handler interface {
	OnShutdown(ctx context.Context) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context) error

// OnShutdown implements Handler.
func (f HandlerFunc) OnShutdown(ctx context.Context) error {
	return f(ctx)
}

// HandlerResult is the outcome of one handler.
type HandlerResult struct {
	Name     string
	Phase    int
	Duration time.Duration
	Err      error
}

// Result is the outcome of a whole shutdown.
type Result struct {
	TotalDuration time.Duration
	Results       []HandlerResult
	Err           error
}

// FailedHandlers returns the names of handlers that failed.
func (r *Result) FailedHandlers() []string {
	var failed []string
	for _, hr := range r.Results {
		if hr.Err != nil {
			failed = append(failed, hr.Name)
		}
	}
	return failed
}

// Config configures a Coordinator.
type Config struct {
	// Timeout bounds a signal-triggered shutdown. Default: 5 seconds.
	Timeout time.Duration

	// ContinueOnError runs later phases even after a failure.
	ContinueOnError bool
}

// DefaultConfig returns the defaults used by the task-list program.
func DefaultConfig() Config {
	return Config{
		Timeout:         5 * time.Second,
		ContinueOnError: true,
	}
}

type registration struct {
	name    string
	handler Handler
	phase   int
}
