// Package promise provides an explicit handle for a value produced by a
// background computation. A promise is pending until it is resolved with a
// value or rejected with an error; either outcome is terminal and is observed
// by every waiter.
package promise

import (
	"context"
	"sync"

	"github.com/quantmill/simseries/pkg/errors"
)

// Promise is a write-once container for the result of an asynchronous
// computation. The zero value is not usable; create promises with New, Go,
// Resolved, or Failed.
type Promise[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

// New creates a pending promise to be settled later with Resolve or Reject.
func New[T any]() *Promise[T] {
	return &Promise[T]{
		done: make(chan struct{}),
	}
}

// Go runs fn on its own goroutine and settles the returned promise with
// fn's result.
func Go[T any](fn func() (T, error)) *Promise[T] {
	p := New[T]()

	go func() {
		value, err := fn()
		if err != nil {
			p.Reject(err)
			return
		}
		p.Resolve(value)
	}()

	return p
}

// Resolved creates a promise already settled with the given value.
func Resolved[T any](value T) *Promise[T] {
	p := New[T]()
	p.Resolve(value)

	return p
}

// Failed creates a promise already rejected with the given error.
func Failed[T any](err error) *Promise[T] {
	p := New[T]()
	p.Reject(err)

	return p
}

// Resolve settles the promise with a value. Only the first Resolve or Reject
// takes effect; later calls are ignored.
func (p *Promise[T]) Resolve(value T) {
	p.once.Do(func() {
		p.value = value
		close(p.done)
	})
}

// Reject settles the promise with a terminal error. Only the first Resolve or
// Reject takes effect; later calls are ignored.
func (p *Promise[T]) Reject(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// Wait blocks until the promise is settled or the context is done. A context
// cancellation does not settle the promise; other waiters are unaffected.
func (p *Promise[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T

		return zero, errors.Wrap(errors.ErrCodeWaitCancelled, "wait for background computation cancelled", ctx.Err())
	}
}

// Settled reports whether the promise has been resolved or rejected.
func (p *Promise[T]) Settled() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Then returns a promise for fn applied to p's value. fn runs only after p
// settles; if p fails, the returned promise fails with the same error and fn
// is never invoked.
func Then[T, U any](p *Promise[T], fn func(T) (U, error)) *Promise[U] {
	return Go(func() (U, error) {
		value, err := p.Wait(context.Background())
		if err != nil {
			var zero U

			return zero, err
		}

		return fn(value)
	})
}
