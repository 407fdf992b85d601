package aspect

import (
	"time"

	"github.com/uber-go/tally/v4"

	gointercept "github.com/CherkashinEvgeny/gointercept"
)

const (
	CallsCounter    = "calls"
	FailuresCounter = "failures"
	LatencyTimer    = "latency"

	MethodTag = "method"
	KindTag   = "kind"
)

type measurement struct {
	scope tally.Scope
	start time.Time
}

// Metrics counts calls and failures and times every call, tagged by method and kind.
func Metrics[I any](scope tally.Scope) gointercept.Decorator[I] {
	return gointercept.Around[I](
		func(inv gointercept.Invocation) measurement {
			m := inv.Method()
			tagged := scope.Tagged(map[string]string{
				MethodTag: m.Name(),
				KindTag:   m.Kind().String(),
			})
			tagged.Counter(CallsCounter).Inc(1)
			return measurement{scope: tagged, start: time.Now()}
		},
		func(m measurement, outcome gointercept.Outcome) (any, error) {
			m.scope.Timer(LatencyTimer).Record(time.Since(m.start))
			if outcome.Failed() {
				m.scope.Counter(FailuresCounter).Inc(1)
			}
			return outcome.Get()
		},
	)
}
