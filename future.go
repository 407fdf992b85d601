package gointercept

import (
	"context"
	"runtime/debug"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Result is the settled outcome of a suspending call.
type Result[T any] struct {
	Value T
	Err   error
}

// Get returns the value and error. A captured panic is raised again.
func (r Result[T]) Get() (T, error) {
	repanic(r.Err)
	return r.Value, r.Err
}

func (r Result[T]) erase() (any, error) {
	return r.Value, r.Err
}

type settled interface {
	erase() (any, error)
}

// Future delivers the single result of a suspending call.
// Interface methods returning a Future are intercepted as suspending.
type Future[T any] <-chan Result[T]

// Await blocks until the result arrives or ctx is done.
// The result can be taken once; later calls return ErrFutureConsumed.
func (f Future[T]) Await(ctx context.Context) (T, error) {
	var zero T
	select {
	case r, ok := <-f:
		if !ok {
			return zero, ErrFutureConsumed
		}
		return r.Get()
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Resumer is the one-shot token a stand-in hands over with a suspending call.
type Resumer interface {
	Resume(value any, err error) error
}

// Promise is the writing side of a Future. It accepts exactly one resumption.
type Promise[T any] struct {
	used atomic.Uint32
	ch   chan Result[T]
}

func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{ch: make(chan Result[T], 1)}
}

func (p *Promise[T]) Future() Future[T] {
	return p.ch
}

// Complete settles the promise with a typed result.
func (p *Promise[T]) Complete(value T, err error) error {
	if !p.used.CompareAndSwap(0, 1) {
		return ErrAlreadyResumed
	}
	p.ch <- Result[T]{Value: value, Err: err}
	close(p.ch)
	return nil
}

// Resume settles the promise with an erased value.
// A value that is not a T settles the promise with a type error instead.
func (p *Promise[T]) Resume(value any, err error) error {
	var typed T
	if value != nil {
		v, ok := value.(T)
		if !ok && err == nil {
			err = errors.Errorf("gointercept: resumed with %T, want %T", value, typed)
		}
		typed = v
	}
	return p.Complete(typed, err)
}

// Go runs fn in a new goroutine and returns its future.
// A panic in fn is delivered to whoever awaits the future.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) Future[T] {
	p := NewPromise[T]()
	go func() {
		var zero T
		defer func() {
			if r := recover(); r != nil {
				_ = p.Complete(zero, &PanicError{Value: r, Stack: debug.Stack()})
			}
		}()
		v, err := fn(ctx)
		_ = p.Complete(v, err)
	}()
	return p.Future()
}

// Resolved returns a future that is already settled.
func Resolved[T any](value T, err error) Future[T] {
	p := NewPromise[T]()
	_ = p.Complete(value, err)
	return p.Future()
}
