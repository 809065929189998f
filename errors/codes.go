package errors

// ErrorCategory classifies errors by how a caller should react to them.
type ErrorCategory string

const (
	// CategoryPermanent indicates the same call will fail again.
	// Examples: empty task text, unknown task id.
	CategoryPermanent ErrorCategory = "permanent"

	// CategoryTransient indicates the call may succeed if repeated.
	// Examples: a canceled session, a busy output device.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal indicates a bug or broken invariant.
	CategoryInternal ErrorCategory = "internal"
)

// String returns the string representation of the category.
func (c ErrorCategory) String() string {
	return string(c)
}

// IsRetryable returns true if errors in this category may succeed on retry.
func (c ErrorCategory) IsRetryable() bool {
	return c == CategoryTransient
}

// ErrorCode identifies a specific failure.
type ErrorCode string

const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT" // Rejected input, nothing changed
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"     // No task with that id
	ErrCodeConflict     ErrorCode = "CONFLICT"      // Operation conflicts with current state
	ErrCodeCanceled     ErrorCode = "CANCELED"      // Caller canceled the operation
	ErrCodeUnavailable  ErrorCode = "UNAVAILABLE"   // Output or index temporarily unusable

	ErrCodeInternal   ErrorCode = "INTERNAL"   // Unexpected internal error
	ErrCodeCorruption ErrorCode = "CORRUPTION" // Store invariant violated
	ErrCodePanic      ErrorCode = "PANIC"      // Recovered from panic
)

// String returns the string representation of the error code.
func (c ErrorCode) String() string {
	return string(c)
}

// DefaultCategory returns the default category for an error code.
func (c ErrorCode) DefaultCategory() ErrorCategory {
	switch c {
	case ErrCodeInvalidInput, ErrCodeNotFound, ErrCodeConflict:
		return CategoryPermanent
	case ErrCodeCanceled, ErrCodeUnavailable:
		return CategoryTransient
	default:
		return CategoryInternal
	}
}

var codeDescriptions = map[ErrorCode]string{
	ErrCodeInvalidInput: "invalid input provided",
	ErrCodeNotFound:     "task not found",
	ErrCodeConflict:     "conflicting operation",
	ErrCodeCanceled:     "operation canceled",
	ErrCodeUnavailable:  "temporarily unavailable",
	ErrCodeInternal:     "internal error",
	ErrCodeCorruption:   "store corruption detected",
	ErrCodePanic:        "recovered from panic",
}

// Description returns a human-readable description for the error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}
