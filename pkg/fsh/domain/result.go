package domain

import (
	"encoding/json"
)

// Void is the value type of operations that produce nothing.
type Void struct{}

// Result is the outcome of a helper operation: either a value or an *Error,
// never both.
type Result[T any] struct {
	value T
	err   *Error
}

func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

func Fail[T any](err *Error) Result[T] {
	if err == nil {
		err = NewError(0, "unknown failure", nil)
	}
	return Result[T]{err: err}
}

func (r Result[T]) Success() bool {
	return r.err == nil
}

// Value returns the value of a successful result and the zero value otherwise.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns nil on success and the *Error otherwise.
func (r Result[T]) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// ErrorMessage returns the failure message, or "" on success.
func (r Result[T]) ErrorMessage() string {
	if r.err == nil {
		return ""
	}
	return r.err.Message
}

// Kind returns the failure kind, or 0 on success.
func (r Result[T]) Kind() ErrorKind {
	if r.err == nil {
		return 0
	}
	return r.err.Kind
}

// Unwrap converts the result into Go's value, error pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.Err()
}

type resultJSON struct {
	Success bool    `json:"success"`
	Value   any     `json:"value,omitempty"`
	Error   *string `json:"error"`
}

// MarshalJSON renders {"success", "value", "error"}; value is omitted for
// failures and Void results, error is null on success.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	out := resultJSON{Success: r.Success()}
	if r.err != nil {
		msg := r.err.Message
		out.Error = &msg
	} else if _, void := any(r.value).(Void); !void {
		out.Value = r.value
	}
	return json.Marshal(out)
}

// Propagate carries the failure of r over to a result of another value type.
// It must only be called on failed results.
func Propagate[U, T any](r Result[T]) Result[U] {
	return Fail[U](r.err)
}
