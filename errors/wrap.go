package errors

import (
	"context"
	"errors"
	"fmt"
)

// Wrap adds context to err. A wrapped *Error keeps its code, task id and
// details; context errors become CANCELED and anything else INTERNAL.
// Wrap(nil, ...) is nil.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	if se := As(err); se != nil {
		return &Error{
			code:     se.code,
			category: se.category,
			message:  message,
			cause:    err,
			taskID:   se.taskID,
			details:  se.Metadata(),
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return New(ErrCodeCanceled, message, WithCause(err))
	}
	return New(ErrCodeInternal, message, WithCause(err))
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err under an explicit code. WrapWithCode(nil, ...) is nil.
func WrapWithCode(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return New(code, message, WithCause(err))
}

// As returns the first *Error in the chain, or nil.
func As(err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return nil
}

// Is reports whether an error in the chain has code.
func Is(err error, code ErrorCode) bool {
	se := As(err)
	return se != nil && se.code == code
}

// IsRetryable reports whether err is transient. Plain errors are not.
func IsRetryable(err error) bool {
	se := As(err)
	return se != nil && se.Retryable()
}

// RecoverPanic turns a recovered value into a PANIC error, or nil.
func RecoverPanic(recovered interface{}) *Error {
	if recovered == nil {
		return nil
	}
	var message string
	switch v := recovered.(type) {
	case error:
		message = v.Error()
	case string:
		message = v
	default:
		message = fmt.Sprintf("%v", v)
	}
	return New(ErrCodePanic, message, WithMetadata("panic_value", fmt.Sprintf("%T", recovered)))
}
