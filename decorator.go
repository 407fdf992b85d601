package gointercept

import "context"

// Decorator builds a new handler around an existing one.
type Decorator[I any] interface {
	Decorate(h Handler[I]) Handler[I]
}

// DecoratorFunc adapts a function to Decorator.
type DecoratorFunc[I any] func(h Handler[I]) Handler[I]

func (f DecoratorFunc[I]) Decorate(h Handler[I]) Handler[I] {
	return f(h)
}

type (
	DirectDecorator[I any]     func(original DirectFunc[I]) DirectFunc[I]
	SuspendingDecorator[I any] func(original SuspendingFunc[I]) SuspendingFunc[I]
)

// Around builds a decorator from one before/after pair that serves both calling conventions.
//
// before runs ahead of the wrapped handler and its payload is handed to after together with
// the wrapped handler's outcome. after decides what the caller sees: it may return the outcome
// unchanged with Outcome.Get, replace the value, or swallow the failure.
func Around[I, P any](before func(inv Invocation) P, after func(payload P, outcome Outcome) (any, error)) Decorator[I] {
	return Split[I](
		func(original DirectFunc[I]) DirectFunc[I] {
			return func(inv DirectInvocation[I]) (any, error) {
				payload := before(inv)
				outcome := attempt(func() (any, error) {
					return original(inv)
				})
				return after(payload, outcome)
			}
		},
		func(original SuspendingFunc[I]) SuspendingFunc[I] {
			return func(ctx context.Context, inv SuspendingInvocation[I]) (any, error) {
				payload := before(inv)
				outcome := attempt(func() (any, error) {
					return original(ctx, inv)
				})
				return after(payload, outcome)
			}
		},
	)
}

// Split builds a decorator from separate functions per calling convention.
// A nil function leaves that convention undecorated.
func Split[I any](direct DirectDecorator[I], suspending SuspendingDecorator[I]) Decorator[I] {
	return DecoratorFunc[I](func(h Handler[I]) Handler[I] {
		funcs := HandlerFuncs[I]{
			Direct:     h.HandleDirect,
			Suspending: h.HandleSuspending,
		}
		if direct != nil {
			funcs.Direct = direct(funcs.Direct)
		}
		if suspending != nil {
			funcs.Suspending = suspending(funcs.Suspending)
		}
		return funcs
	})
}

// Only applies d to invocations of the named methods and passes the rest through.
func Only[I any](d Decorator[I], methods ...string) Decorator[I] {
	names := make(map[string]struct{}, len(methods))
	for _, name := range methods {
		names[name] = struct{}{}
	}
	return DecoratorFunc[I](func(h Handler[I]) Handler[I] {
		decorated := d.Decorate(h)
		pick := func(inv Invocation) Handler[I] {
			if _, ok := names[inv.Method().Name()]; ok {
				return decorated
			}
			return h
		}
		return HandlerFuncs[I]{
			Direct: func(inv DirectInvocation[I]) (any, error) {
				return pick(inv).HandleDirect(inv)
			},
			Suspending: func(ctx context.Context, inv SuspendingInvocation[I]) (any, error) {
				return pick(inv).HandleSuspending(ctx, inv)
			},
		}
	})
}
