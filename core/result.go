package core

import "errors"

// Result wraps either a success payload or an error with a human-readable message.
// Storage and repository operations return a Result instead of failing, so callers
// always branch on the tag explicitly.
type Result[T any] struct {
	data    T
	message string
	cause   error
	ok      bool
}

// ResultError is the error form of a failed Result.
type ResultError struct {
	Message string
	Cause   error
}

func (e *ResultError) Error() string {
	return e.Message
}

func (e *ResultError) Unwrap() error {
	return e.Cause
}

// Success creates a successful Result holding data.
func Success[T any](data T) Result[T] {
	return Result[T]{data: data, ok: true}
}

// Failure creates a failed Result with the given message.
func Failure[T any](message string) Result[T] {
	return Result[T]{message: message}
}

// FailureWith creates a failed Result with a message and an underlying cause.
func FailureWith[T any](message string, cause error) Result[T] {
	return Result[T]{message: message, cause: cause}
}

// FailureFrom creates a failed Result carrying err's message.
func FailureFrom[T any](err error) Result[T] {
	if err == nil {
		err = errors.New("unknown error")
	}
	return Result[T]{message: err.Error(), cause: err}
}

// IsSuccess reports whether the Result holds a payload.
func (r Result[T]) IsSuccess() bool {
	return r.ok
}

// Data returns the payload and true on success, or the zero value and false.
func (r Result[T]) Data() (T, bool) {
	return r.data, r.ok
}

// Message returns the failure message. Empty on success.
func (r Result[T]) Message() string {
	return r.message
}

// Err returns nil on success, otherwise a *ResultError that unwraps to the cause.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	return &ResultError{Message: r.message, Cause: r.cause}
}

// Match calls exactly one of the callbacks depending on the tag.
func (r Result[T]) Match(onSuccess func(T), onError func(message string)) {
	if r.ok {
		if onSuccess != nil {
			onSuccess(r.data)
		}
		return
	}
	if onError != nil {
		onError(r.message)
	}
}

// MapResult transforms a successful payload, passing failures through unchanged.
func MapResult[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.ok {
		return Result[U]{message: r.message, cause: r.cause}
	}
	return Success(fn(r.data))
}
