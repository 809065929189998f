// Package errors provides the structured error type shared by the task
// store and its collaborators.
//
// Every error carries a code and a category:
//
//   - Permanent: repeating the call will not help (INVALID_INPUT, NOT_FOUND, ...)
//   - Transient: the call may succeed later (CANCELED, UNAVAILABLE)
//   - Internal: a bug or a violated invariant (INTERNAL, CORRUPTION, PANIC)
//
// # Usage
//
//	err := errors.InvalidInput("task text is empty")
//	wrapped := errors.Wrap(err, "adding task")
//	if errors.Is(wrapped, errors.ErrCodeInvalidInput) {
//	    // tell the user, nothing changed
//	}
//
// Two *Error values with the same code match under the standard library's
// errors.Is, so packages can export sentinels built with FromCode.
//
// LogFields flattens an error into logger fields (code, category,
// retryable, task_id and detail.* keys).
package errors
