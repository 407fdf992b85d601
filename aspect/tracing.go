package aspect

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	gointercept "github.com/CherkashinEvgeny/gointercept"
)

type span struct {
	id    string
	desc  string
	start time.Time
}

// Tracing opens a span with a fresh id around every call and reports its duration and status.
func Tracing[I any](write gointercept.Writer) gointercept.Decorator[I] {
	if write == nil {
		write = gointercept.Stdout
	}
	return gointercept.Around[I](
		func(inv gointercept.Invocation) span {
			s := span{id: uuid.NewString(), desc: inv.Description(), start: time.Now()}
			write(fmt.Sprintf("span %s start %s", s.id, s.desc))
			return s
		},
		func(s span, outcome gointercept.Outcome) (any, error) {
			status := "ok"
			if outcome.Failed() {
				status = "error: " + outcome.Err.Error()
			}
			write(fmt.Sprintf("span %s end %s (%s, %s)", s.id, s.desc, time.Since(s.start), status))
			return outcome.Get()
		},
	)
}
