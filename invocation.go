package gointercept

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// Invocation is one intercepted call: a method and its arguments.
// It is either a DirectInvocation or a SuspendingInvocation.
type Invocation interface {
	Method() Method
	Arguments() []any
	Description() string
	invocation()
}

type call struct {
	method    Method
	arguments []any
}

func (c call) Method() Method {
	return c.method
}

// Arguments returns a copy of the call arguments.
func (c call) Arguments() []any {
	return append([]any(nil), c.arguments...)
}

// Description renders the call as Name(arg, arg). Context arguments are left out.
func (c call) Description() string {
	rendered := make([]string, 0, len(c.arguments))
	for _, arg := range c.arguments {
		if _, ok := arg.(context.Context); ok {
			continue
		}
		rendered = append(rendered, fmt.Sprintf("%v", arg))
	}
	return c.method.name + "(" + strings.Join(rendered, ", ") + ")"
}

func (c call) String() string {
	return c.Description()
}

func (c call) equal(other call) bool {
	return c.method == other.method && reflect.DeepEqual(c.arguments, other.arguments)
}

func (call) invocation() {}

func newCall(method Method, kind Kind, args []any) (call, error) {
	if method.IsZero() {
		return call{}, &ConfigError{Type: "<nil>", Reason: "zero method"}
	}
	if method.kind != kind {
		return call{}, &ConfigError{Type: method.owner.String(), Method: method.name, Reason: fmt.Sprintf("is %s, not %s", method.kind, kind)}
	}
	if len(args) != method.NumIn() {
		return call{}, &ConfigError{
			Type:   method.owner.String(),
			Method: method.name,
			Reason: fmt.Sprintf("got %d arguments, want %d", len(args), method.NumIn()),
		}
	}
	return call{method: method, arguments: append([]any(nil), args...)}, nil
}

// DirectInvocation is a call on I whose result is returned synchronously.
type DirectInvocation[I any] struct {
	call
}

func NewDirectInvocation[I any](method Method, args ...any) (DirectInvocation[I], error) {
	c, err := newCall(method, Direct, args)
	if err != nil {
		return DirectInvocation[I]{}, err
	}
	return DirectInvocation[I]{call: c}, nil
}

func (inv DirectInvocation[I]) Equal(other DirectInvocation[I]) bool {
	return inv.equal(other.call)
}

// Apply calls the method on target. The target's error is returned as is.
func (inv DirectInvocation[I]) Apply(target I) (any, error) {
	out, err := inv.invoke(target)
	if err != nil {
		return nil, err
	}
	return erase(inv.method.ftype, out)
}

// SuspendingInvocation is a call on I whose result arrives through a Future.
type SuspendingInvocation[I any] struct {
	call
}

func NewSuspendingInvocation[I any](method Method, args ...any) (SuspendingInvocation[I], error) {
	c, err := newCall(method, Suspending, args)
	if err != nil {
		return SuspendingInvocation[I]{}, err
	}
	return SuspendingInvocation[I]{call: c}, nil
}

func (inv SuspendingInvocation[I]) Equal(other SuspendingInvocation[I]) bool {
	return inv.equal(other.call)
}

// Apply calls the method on target and waits for the one result of its future.
func (inv SuspendingInvocation[I]) Apply(ctx context.Context, target I) (any, error) {
	out, err := inv.invoke(target)
	if err != nil {
		return nil, err
	}
	future := out[0]
	if future.IsNil() {
		return nil, &ConfigError{Type: inv.method.owner.String(), Method: inv.method.name, Reason: "target returned a nil future"}
	}
	chosen, received, ok := reflect.Select([]reflect.SelectCase{
		{Dir: reflect.SelectRecv, Chan: future},
		{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ctx.Done())},
	})
	if chosen == 1 {
		return nil, ctx.Err()
	}
	if !ok {
		return nil, ErrFutureConsumed
	}
	value, err := received.Interface().(settled).erase()
	repanic(err)
	return value, err
}

func (c call) invoke(target any) ([]reflect.Value, error) {
	receiver := reflect.ValueOf(target)
	if !receiver.IsValid() {
		return nil, &ConfigError{Type: c.method.owner.String(), Method: c.method.name, Reason: "nil target"}
	}
	// Method indexes refer to the interface, so call through an interface-typed value.
	iv := reflect.New(c.method.owner).Elem()
	iv.Set(receiver)
	fn := iv.Method(c.method.index)
	args := make([]reflect.Value, len(c.arguments))
	for i, arg := range c.arguments {
		in := c.method.ftype.In(i)
		if arg == nil {
			args[i] = reflect.Zero(in)
			continue
		}
		args[i] = reflect.ValueOf(arg)
	}
	if c.method.ftype.IsVariadic() {
		return fn.CallSlice(args), nil
	}
	return fn.Call(args), nil
}

// erase folds a method's results into a single value and a trailing error.
func erase(ftype reflect.Type, out []reflect.Value) (any, error) {
	var err error
	n := ftype.NumOut()
	if n > 0 && ftype.Out(n-1) == errorType {
		if e := out[n-1]; !e.IsNil() {
			err = e.Interface().(error)
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return nil, err
	case 1:
		return out[0].Interface(), err
	default:
		values := make([]any, len(out))
		for i, v := range out {
			values[i] = v.Interface()
		}
		return values, err
	}
}
