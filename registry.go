package gointercept

import (
	"reflect"
	"sync"
)

// Factory builds a stand-in of I that forwards every call to interceptor.
type Factory[I any] func(interceptor Interceptor) I

var factories sync.Map // reflect.Type -> any(Factory[I])

// Register makes factory the stand-in factory for I. Generated stand-ins register themselves from init.
func Register[I any](factory Factory[I]) {
	factories.Store(reflectTypeOf[I](), factory)
}

// New returns a stand-in of I whose calls are routed to handler.
func New[I any](handler Handler[I]) (I, error) {
	f, ok := factories.Load(reflectTypeOf[I]())
	if !ok {
		var zero I
		return zero, &ConfigError{Type: typeName(reflectTypeOf[I]()), Reason: "no stand-in factory registered"}
	}
	return NewWith(f.(Factory[I]), handler)
}

// NewWith is New with an explicit factory.
func NewWith[I any](factory Factory[I], handler Handler[I]) (I, error) {
	d, err := NewDispatcher(handler)
	if err != nil {
		var zero I
		return zero, err
	}
	return factory(d), nil
}

// Proxy returns a stand-in of I that calls target through decorators.
// The last decorator is the outermost.
func Proxy[I any](target I, decorators ...Decorator[I]) (I, error) {
	return New(DecoratedBy(Of(target), decorators...))
}

func reflectTypeOf[I any]() reflect.Type {
	return reflect.TypeOf((*I)(nil)).Elem()
}
