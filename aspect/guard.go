package aspect

import (
	"context"

	gointercept "github.com/CherkashinEvgeny/gointercept"
)

// Guard runs check before every call and fails the call with its error without reaching the wrapped handler.
func Guard[I any](check func(inv gointercept.Invocation) error) gointercept.Decorator[I] {
	return gointercept.Split[I](
		func(original gointercept.DirectFunc[I]) gointercept.DirectFunc[I] {
			return func(inv gointercept.DirectInvocation[I]) (any, error) {
				if err := check(inv); err != nil {
					return nil, err
				}
				return original(inv)
			}
		},
		func(original gointercept.SuspendingFunc[I]) gointercept.SuspendingFunc[I] {
			return func(ctx context.Context, inv gointercept.SuspendingInvocation[I]) (any, error) {
				if err := check(inv); err != nil {
					return nil, err
				}
				return original(ctx, inv)
			}
		},
	)
}
