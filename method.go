package gointercept

import (
	"reflect"
	"strings"
	"sync"
)

// Kind tells how a method delivers its result.
type Kind int

const (
	// Direct methods return their result to the caller.
	Direct Kind = iota
	// Suspending methods return a Future that is settled later.
	Suspending
)

func (k Kind) String() string {
	switch k {
	case Direct:
		return "direct"
	case Suspending:
		return "suspending"
	default:
		return "unknown"
	}
}

// Method identifies one declared method of an interface.
// Values are comparable and safe to use as map keys.
type Method struct {
	owner reflect.Type
	index int
	name  string
	kind  Kind
	ftype reflect.Type
}

func (m Method) Name() string {
	return m.name
}

func (m Method) Kind() Kind {
	return m.kind
}

// Type returns the method signature without the receiver.
func (m Method) Type() reflect.Type {
	return m.ftype
}

// Owner returns the interface type declaring the method.
func (m Method) Owner() reflect.Type {
	return m.owner
}

func (m Method) String() string {
	if m.owner == nil {
		return m.name
	}
	return m.owner.String() + "." + m.name
}

// NumIn returns the number of arguments an invocation of m carries.
func (m Method) NumIn() int {
	return m.ftype.NumIn()
}

// IsZero reports whether m is the zero Method.
func (m Method) IsZero() bool {
	return m.ftype == nil
}

var (
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
	methodsCache sync.Map // reflect.Type -> []Method
	pkgPath      = reflect.TypeOf(Method{}).PkgPath()
)

// Methods introspects the interface type t.
func Methods(t reflect.Type) ([]Method, error) {
	if t == nil || t.Kind() != reflect.Interface {
		return nil, &ConfigError{Type: typeName(t), Reason: "not an interface"}
	}
	if cached, ok := methodsCache.Load(t); ok {
		return cached.([]Method), nil
	}
	methods := make([]Method, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		rm := t.Method(i)
		if !rm.IsExported() {
			return nil, &ConfigError{Type: t.String(), Method: rm.Name, Reason: "unexported method cannot be intercepted"}
		}
		methods = append(methods, Method{
			owner: t,
			index: i,
			name:  rm.Name,
			kind:  classify(rm.Type),
			ftype: rm.Type,
		})
	}
	methodsCache.Store(t, methods)
	return methods, nil
}

// MethodsOf introspects the interface I.
func MethodsOf[I any]() ([]Method, error) {
	return Methods(reflectTypeOf[I]())
}

// MethodByName returns the method of I called name.
func MethodByName[I any](name string) (Method, error) {
	methods, err := MethodsOf[I]()
	if err != nil {
		return Method{}, err
	}
	for _, m := range methods {
		if m.name == name {
			return m, nil
		}
	}
	return Method{}, &ConfigError{Type: typeName(reflectTypeOf[I]()), Method: name, Reason: "no such method"}
}

func classify(ftype reflect.Type) Kind {
	if ftype.NumOut() != 1 {
		return Direct
	}
	if isFuture(ftype.Out(0)) {
		return Suspending
	}
	return Direct
}

// isFuture accepts Future[T] and unnamed <-chan Result[T], the same shapes gen forwards as suspending.
func isFuture(t reflect.Type) bool {
	if t.Kind() != reflect.Chan || t.ChanDir() != reflect.RecvDir {
		return false
	}
	if t.Name() != "" {
		return isInstance(t, "Future")
	}
	return isInstance(t.Elem(), "Result")
}

func isInstance(t reflect.Type, generic string) bool {
	return t.PkgPath() == pkgPath && strings.HasPrefix(t.Name(), generic+"[")
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
