package aspect

import (
	"context"
	"time"

	gointercept "github.com/CherkashinEvgeny/gointercept"
)

// RetryPolicy controls Retry.
type RetryPolicy struct {
	// Attempts is the total number of tries, the first one included. Values below 1 mean 1.
	Attempts int
	// Backoff is the pause before the next try.
	Backoff time.Duration
	// Retryable reports whether a failure is worth another try. Nil retries every failure.
	Retryable func(err error) bool
}

func (p RetryPolicy) attempts() int {
	if p.Attempts < 1 {
		return 1
	}
	return p.Attempts
}

func (p RetryPolicy) retryable(err error) bool {
	if err == nil {
		return false
	}
	if _, ok := err.(*gointercept.PanicError); ok {
		return false
	}
	return p.Retryable == nil || p.Retryable(err)
}

// Retry calls the wrapped handler again while it fails with a retryable error.
// The last failure is returned unchanged. Suspending calls stop retrying once ctx is done.
func Retry[I any](policy RetryPolicy) gointercept.Decorator[I] {
	return gointercept.Split[I](
		func(original gointercept.DirectFunc[I]) gointercept.DirectFunc[I] {
			return func(inv gointercept.DirectInvocation[I]) (value any, err error) {
				for i := 0; i < policy.attempts(); i++ {
					if i > 0 && policy.Backoff > 0 {
						time.Sleep(policy.Backoff)
					}
					value, err = original(inv)
					if !policy.retryable(err) {
						return value, err
					}
				}
				return value, err
			}
		},
		func(original gointercept.SuspendingFunc[I]) gointercept.SuspendingFunc[I] {
			return func(ctx context.Context, inv gointercept.SuspendingInvocation[I]) (value any, err error) {
				for i := 0; i < policy.attempts(); i++ {
					if i > 0 {
						if werr := wait(ctx, policy.Backoff); werr != nil {
							return value, err
						}
					}
					value, err = original(ctx, inv)
					if !policy.retryable(err) {
						return value, err
					}
				}
				return value, err
			}
		},
	)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
