// Package promise provides a single-settlement result container for asynchronous
// operations whose completion is reported through callbacks.
package promise

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Promise holds the eventual outcome of one asynchronous operation.
// The first call to resolve or reject wins; every later call is ignored.
type Promise[T any] struct {
	mu        sync.Mutex
	settled   bool
	callbacks []func(T, error)
	done      chan struct{}
	value     T
	err       error
}

// New creates a promise and runs executor synchronously. resolve and reject
// report whether they settled the promise. A panic inside executor rejects it.
func New[T any](executor func(resolve func(T) bool, reject func(error) bool)) (p *Promise[T]) {
	p = &Promise[T]{done: make(chan struct{})}
	defer func() {
		if r := recover(); r != nil {
			p.Reject(errors.Errorf("[promise.New] executor panicked: %v", r))
		}
	}()
	executor(p.Resolve, p.Reject)
	return p
}

// Resolved returns a promise already settled with v.
func Resolved[T any](v T) *Promise[T] {
	p := &Promise[T]{done: make(chan struct{})}
	p.Resolve(v)
	return p
}

// Rejected returns a promise already settled with err.
func Rejected[T any](err error) *Promise[T] {
	p := &Promise[T]{done: make(chan struct{})}
	p.Reject(err)
	return p
}

// Resolve settles the promise with v. It reports whether this call settled it.
func (p *Promise[T]) Resolve(v T) bool {
	return p.settle(v, nil)
}

// Reject settles the promise with err. A nil err is replaced so that a rejected
// promise is always distinguishable from a resolved one.
func (p *Promise[T]) Reject(err error) bool {
	if err == nil {
		err = errors.New("[promise.Reject] rejected with nil error")
	}
	var zero T
	return p.settle(zero, err)
}

// settle records the outcome and runs the registered callbacks on the calling
// goroutine, in registration order.
func (p *Promise[T]) settle(v T, err error) bool {
	p.mu.Lock()
	if p.settled {
		p.mu.Unlock()
		return false
	}
	p.settled = true
	p.value = v
	p.err = err
	callbacks := p.callbacks
	p.callbacks = nil
	close(p.done)
	p.mu.Unlock()

	for _, fn := range callbacks {
		fn(v, err)
	}
	return true
}

// Done is closed once the promise has settled.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Result returns the outcome without blocking; ok is false while still pending.
func (p *Promise[T]) Result() (value T, err error, ok bool) {
	select {
	case <-p.done:
		return p.value, p.err, true
	default:
		return value, nil, false
	}
}

// Await blocks until the promise settles or ctx is done. Giving up on ctx does not
// cancel the underlying operation.
func (p *Promise[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then registers fn to receive the outcome. fn runs on the goroutine that
// settles the promise, or inline when the promise has already settled.
func (p *Promise[T]) Then(fn func(T, error)) {
	p.mu.Lock()
	if !p.settled {
		p.callbacks = append(p.callbacks, fn)
		p.mu.Unlock()
		return
	}
	v, err := p.value, p.err
	p.mu.Unlock()
	fn(v, err)
}
