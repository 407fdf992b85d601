package gointercept_test

import (
	"context"
	"time"

	"github.com/pkg/errors"

	gointercept "github.com/CherkashinEvgeny/gointercept"
)

var errSample = errors.New("simulated error for testing")

type Subject interface {
	Add(x, y int) (int, error)
	Multiply(ctx context.Context, x, y int) gointercept.Future[int]
}

type concreteSubject struct{}

func (concreteSubject) Add(x, y int) (int, error) {
	return x + y, nil
}

func (concreteSubject) Multiply(ctx context.Context, x, y int) gointercept.Future[int] {
	return gointercept.Go(ctx, func(ctx context.Context) (int, error) {
		return reallySuspend(ctx, func() (int, error) { return x * y, nil })
	})
}

type throwingSubject struct{}

func (throwingSubject) Add(int, int) (int, error) {
	return 0, errSample
}

func (throwingSubject) Multiply(ctx context.Context, _, _ int) gointercept.Future[int] {
	return gointercept.Go(ctx, func(ctx context.Context) (int, error) {
		return reallySuspend(ctx, func() (int, error) { return 0, errSample })
	})
}

type panickingSubject struct{}

func (panickingSubject) Add(int, int) (int, error) {
	panic("boom")
}

func (panickingSubject) Multiply(ctx context.Context, _, _ int) gointercept.Future[int] {
	return gointercept.Go(ctx, func(ctx context.Context) (int, error) {
		panic("boom")
	})
}

// blockingSubject holds Multiply until release is closed.
type blockingSubject struct {
	release chan struct{}
}

func (blockingSubject) Add(x, y int) (int, error) {
	return x + y, nil
}

func (s blockingSubject) Multiply(ctx context.Context, x, y int) gointercept.Future[int] {
	return gointercept.Go(ctx, func(ctx context.Context) (int, error) {
		<-s.release
		return x * y, nil
	})
}

func reallySuspend[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	select {
	case <-time.After(10 * time.Millisecond):
		return fn()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// SubjectProxy has the shape gointercept-gen emits for Subject.
type SubjectProxy struct {
	Interceptor gointercept.Interceptor
}

func NewSubjectProxy(interceptor gointercept.Interceptor) Subject {
	return SubjectProxy{Interceptor: interceptor}
}

func init() {
	gointercept.Register[Subject](NewSubjectProxy)
}

func (p SubjectProxy) Add(x int, y int) (int, error) {
	out, err := p.Interceptor.InterceptDirect("Add", x, y)
	r0, _ := out.(int)
	return r0, err
}

func (p SubjectProxy) Multiply(ctx context.Context, x int, y int) gointercept.Future[int] {
	promise := gointercept.NewPromise[int]()
	p.Interceptor.InterceptSuspending("Multiply", promise, ctx, x, y)
	return promise.Future()
}

type recorder struct {
	lines []string
}

func (r *recorder) write(line string) {
	r.lines = append(r.lines, line)
}
