package gointercept

import "context"

// Handler decides what happens to invocations arriving at a stand-in of I.
type Handler[I any] interface {
	HandleDirect(inv DirectInvocation[I]) (any, error)
	HandleSuspending(ctx context.Context, inv SuspendingInvocation[I]) (any, error)
}

// Of returns the terminal handler applying every invocation to target.
func Of[I any](target I) Handler[I] {
	return targetHandler[I]{target: target}
}

type targetHandler[I any] struct {
	target I
}

func (h targetHandler[I]) HandleDirect(inv DirectInvocation[I]) (any, error) {
	return inv.Apply(h.target)
}

func (h targetHandler[I]) HandleSuspending(ctx context.Context, inv SuspendingInvocation[I]) (any, error) {
	return inv.Apply(ctx, h.target)
}

type (
	DirectFunc[I any]     func(inv DirectInvocation[I]) (any, error)
	SuspendingFunc[I any] func(ctx context.Context, inv SuspendingInvocation[I]) (any, error)
)

// HandlerFuncs adapts a pair of functions to Handler.
// A nil function makes that variant fail with ErrUnsupportedVariant.
type HandlerFuncs[I any] struct {
	Direct     DirectFunc[I]
	Suspending SuspendingFunc[I]
}

func (h HandlerFuncs[I]) HandleDirect(inv DirectInvocation[I]) (any, error) {
	if h.Direct == nil {
		return nil, ErrUnsupportedVariant
	}
	return h.Direct(inv)
}

func (h HandlerFuncs[I]) HandleSuspending(ctx context.Context, inv SuspendingInvocation[I]) (any, error) {
	if h.Suspending == nil {
		return nil, ErrUnsupportedVariant
	}
	return h.Suspending(ctx, inv)
}

// DecoratedBy wraps h with decorators. The last decorator is the outermost.
func DecoratedBy[I any](h Handler[I], decorators ...Decorator[I]) Handler[I] {
	for _, d := range decorators {
		h = d.Decorate(h)
	}
	return h
}
