package gointercept

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedVariant is returned by a handler asked to serve a calling convention it does not implement.
	ErrUnsupportedVariant = errors.New("gointercept: unsupported invocation variant")
	// ErrAlreadyResumed is returned by a resumer that has already delivered its outcome.
	ErrAlreadyResumed = errors.New("gointercept: already resumed")
	// ErrFutureConsumed is returned when a future is awaited after its result was taken.
	ErrFutureConsumed = errors.New("gointercept: future already consumed")
)

// ConfigError reports a stand-in or interface that cannot be mapped onto the invocation model.
// It signals a programming mistake and is never retried.
type ConfigError struct {
	Type   string
	Method string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("gointercept: %s: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("gointercept: %s.%s: %s", e.Type, e.Method, e.Reason)
}

// PanicError carries a panic recovered while a call was in flight.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("gointercept: panic: %v", e.Value)
}

// repanic rethrows the original panic value carried by err, if any.
func repanic(err error) {
	if p, ok := err.(*PanicError); ok {
		panic(p.Value)
	}
}
