package userpool

import "github.com/jrsteele09/go-cognito-bridge/identity"

// Outcome is what a vendor operation reports: either a value or an error payload.
type Outcome[T any] struct {
	value   T
	payload identity.ErrorPayload
	failed  bool
}

// Success builds a successful outcome.
func Success[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

// Failure builds a failed outcome. A nil payload is replaced by an empty one.
func Failure[T any](payload identity.ErrorPayload) Outcome[T] {
	if payload == nil {
		payload = identity.UserInfo{}
	}
	return Outcome[T]{payload: payload, failed: true}
}

// Value returns the success value; it is the zero value for a failure.
func (o Outcome[T]) Value() T {
	return o.value
}

// Failed returns the error payload and true when the operation failed.
func (o Outcome[T]) Failed() (identity.ErrorPayload, bool) {
	return o.payload, o.failed
}

// Completion receives the single outcome of a vendor operation, on any goroutine.
type Completion[T any] func(Outcome[T])

// Empty is the success value of operations that report nothing.
type Empty struct{}
