package gointercept

import "runtime/debug"

// Outcome is what a wrapped handler produced: a value or a failure.
type Outcome struct {
	Value any
	Err   error
}

func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Get returns the value or the failure unchanged. A recovered panic is raised again with its original value.
func (o Outcome) Get() (any, error) {
	repanic(o.Err)
	return o.Value, o.Err
}

// attempt runs fn and captures whatever it produces, panics included.
func attempt(fn func() (any, error)) (o Outcome) {
	defer func() {
		if r := recover(); r != nil {
			o = Outcome{Err: &PanicError{Value: r, Stack: debug.Stack()}}
		}
	}()
	v, err := fn()
	return Outcome{Value: v, Err: err}
}
