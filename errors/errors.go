package errors

// Error is a task-list failure: what went wrong, how a caller should react
// to it and, when known, which task it concerns.
type Error struct {
	code     ErrorCode
	category ErrorCategory
	message  string
	cause    error
	taskID   int
	details  map[string]string
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *Error) Code() ErrorCode {
	return e.code
}

func (e *Error) Category() ErrorCategory {
	return e.category
}

// Retryable reports whether the same call may succeed later.
func (e *Error) Retryable() bool {
	return e.category.IsRetryable()
}

// TaskID returns the task the error concerns, or 0.
func (e *Error) TaskID() int {
	return e.taskID
}

// Metadata returns a copy of the detail fields. Never nil.
func (e *Error) Metadata() map[string]string {
	out := make(map[string]string, len(e.details))
	for k, v := range e.details {
		out[k] = v
	}
	return out
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same code, so sentinels such as
// tasks.ErrNotFound work with the standard errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.code == e.code
}

// LogFields flattens the error into logger fields. Detail keys are
// prefixed with "detail." so they never shadow the fixed keys.
func (e *Error) LogFields() map[string]interface{} {
	fields := map[string]interface{}{
		"code":      string(e.code),
		"category":  string(e.category),
		"retryable": e.Retryable(),
		"error":     e.Error(),
	}
	if e.taskID != 0 {
		fields["task_id"] = e.taskID
	}
	for k, v := range e.details {
		fields["detail."+k] = v
	}
	return fields
}

// Option configures an Error.
type Option func(*Error)

// WithMetadata adds a detail field, e.g. the offending input field.
func WithMetadata(key, value string) Option {
	return func(e *Error) {
		if e.details == nil {
			e.details = make(map[string]string)
		}
		e.details[key] = value
	}
}

// WithTaskID records the task the error concerns.
func WithTaskID(id int) Option {
	return func(e *Error) {
		e.taskID = id
	}
}

// WithCause sets the underlying cause.
func WithCause(cause error) Option {
	return func(e *Error) {
		e.cause = cause
	}
}

// New creates an Error whose category follows from code.
func New(code ErrorCode, message string, opts ...Option) *Error {
	e := &Error{
		code:     code,
		category: code.DefaultCategory(),
		message:  message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FromCode creates an error with the code's description as message.
// Package sentinels are built this way.
func FromCode(code ErrorCode, opts ...Option) *Error {
	return New(code, code.Description(), opts...)
}

// InvalidInput reports rejected input. Nothing was changed.
func InvalidInput(message string, opts ...Option) *Error {
	return New(ErrCodeInvalidInput, message, opts...)
}

// NotFound reports a missing task.
func NotFound(message string, opts ...Option) *Error {
	return New(ErrCodeNotFound, message, opts...)
}

// Unavailable reports a collaborator that cannot serve right now.
func Unavailable(message string, opts ...Option) *Error {
	return New(ErrCodeUnavailable, message, opts...)
}
