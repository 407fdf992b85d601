package gointercept

import "fmt"

// Writer consumes one log line.
type Writer func(line string)

// Stdout writes lines to standard output.
func Stdout(line string) {
	fmt.Println(line)
}

// Logging writes "Starting: <call>" before and "Finished: <call>" after every call,
// whether it succeeded or failed. The outcome is passed through untouched.
// A nil write uses Stdout and a nil describe uses Invocation.Description.
func Logging[I any](write Writer, describe func(inv Invocation) string) Decorator[I] {
	if write == nil {
		write = Stdout
	}
	if describe == nil {
		describe = Invocation.Description
	}
	return Around[I](
		func(inv Invocation) string {
			desc := describe(inv)
			write("Starting: " + desc)
			return desc
		},
		func(desc string, outcome Outcome) (any, error) {
			write("Finished: " + desc)
			return outcome.Get()
		},
	)
}
