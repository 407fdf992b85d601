package gointercept

import (
	"context"
	"runtime/debug"

	"github.com/tliron/commonlog"
)

func logger() commonlog.Logger {
	return commonlog.GetLogger("gointercept")
}

// Interceptor receives the raw calls made on a stand-in.
// Generated stand-ins call InterceptDirect for direct methods and
// InterceptSuspending, with the promise they return to their caller, for suspending ones.
type Interceptor interface {
	InterceptDirect(method string, args ...any) (any, error)
	InterceptSuspending(method string, resume Resumer, args ...any)
}

// Dispatcher turns raw calls into invocations of I and routes them to one handler.
// It holds no per-call state, so concurrent calls do not interfere.
type Dispatcher[I any] struct {
	handler Handler[I]
	methods map[string]Method
}

func NewDispatcher[I any](handler Handler[I]) (*Dispatcher[I], error) {
	methods, err := MethodsOf[I]()
	if err != nil {
		return nil, err
	}
	d := &Dispatcher[I]{
		handler: handler,
		methods: make(map[string]Method, len(methods)),
	}
	for _, m := range methods {
		d.methods[m.name] = m
	}
	return d, nil
}

func (d *Dispatcher[I]) InterceptDirect(method string, args ...any) (any, error) {
	m := d.resolve(method, Direct)
	inv, err := NewDirectInvocation[I](m, args...)
	if err != nil {
		panic(err)
	}
	logger().Debugf("direct call %s", m)
	return d.handler.HandleDirect(inv)
}

// InterceptSuspending starts the handler on its own goroutine and returns at once.
// resume is called exactly once with the handler's outcome, including when the
// invocation cannot be built or the handler panics.
func (d *Dispatcher[I]) InterceptSuspending(method string, resume Resumer, args ...any) {
	m := d.resolve(method, Suspending)
	inv, err := NewSuspendingInvocation[I](m, args...)
	if err != nil {
		d.resume(m, resume, nil, err)
		return
	}
	ctx := contextOf(args)
	logger().Debugf("suspending call %s", m)
	go func() {
		value, err := d.handleSuspending(ctx, inv)
		d.resume(m, resume, value, err)
	}()
}

func (d *Dispatcher[I]) handleSuspending(ctx context.Context, inv SuspendingInvocation[I]) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, err = nil, &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return d.handler.HandleSuspending(ctx, inv)
}

func (d *Dispatcher[I]) resume(m Method, resume Resumer, value any, err error) {
	if rerr := resume.Resume(value, err); rerr != nil {
		logger().Errorf("resuming %s: %s", m, rerr.Error())
	}
}

func (d *Dispatcher[I]) resolve(name string, kind Kind) Method {
	m, ok := d.methods[name]
	if !ok {
		panic(&ConfigError{Type: typeName(reflectTypeOf[I]()), Method: name, Reason: "not declared by the interface"})
	}
	if m.kind != kind {
		panic(&ConfigError{Type: m.owner.String(), Method: name, Reason: "intercepted as " + kind.String() + " but declared " + m.kind.String()})
	}
	return m
}

// contextOf returns the first context argument of a call.
func contextOf(args []any) context.Context {
	for _, arg := range args {
		if ctx, ok := arg.(context.Context); ok && ctx != nil {
			return ctx
		}
	}
	return context.Background()
}
