// Package calc is a small service used to demonstrate generated stand-ins.
package calc

//go:generate go run github.com/CherkashinEvgeny/gointercept/gen -file calc_proxy.go . Calculator

import (
	"context"
	"time"

	"github.com/pkg/errors"

	gointercept "github.com/CherkashinEvgeny/gointercept"
)

var ErrDivisionByZero = errors.New("division by zero")

type Calculator interface {
	Add(x, y int) (int, error)
	Divide(x, y int) (quotient, remainder int, err error)
	Sum(xs ...int) int
	Multiply(ctx context.Context, x, y int) gointercept.Future[int]
	Reset()
}

// Local is the in-process Calculator.
type Local struct {
	// Delay is how long Multiply takes.
	Delay time.Duration
}

func (l *Local) Add(x, y int) (int, error) {
	return x + y, nil
}

func (l *Local) Divide(x, y int) (int, int, error) {
	if y == 0 {
		return 0, 0, ErrDivisionByZero
	}
	return x / y, x % y, nil
}

func (l *Local) Sum(xs ...int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func (l *Local) Multiply(ctx context.Context, x, y int) gointercept.Future[int] {
	return gointercept.Go(ctx, func(ctx context.Context) (int, error) {
		select {
		case <-time.After(l.Delay):
			return x * y, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
}

func (l *Local) Reset() {}
