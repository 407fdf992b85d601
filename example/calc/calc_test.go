package calc_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	gointercept "github.com/CherkashinEvgeny/gointercept"
	"github.com/CherkashinEvgeny/gointercept/example/calc"
)

func TestCalculatorProxy_MatchesLocal(t *testing.T) {
	t.Parallel()

	local := &calc.Local{}
	proxy, err := gointercept.Proxy[calc.Calculator](local)
	require.NoError(t, err)

	sum, err := proxy.Add(3, 4)
	require.NoError(t, err)
	want, _ := local.Add(3, 4)
	require.Equal(t, want, sum)

	q, r, err := proxy.Divide(17, 5)
	require.NoError(t, err)
	wantQ, wantR, _ := local.Divide(17, 5)
	require.Equal(t, []int{wantQ, wantR}, []int{q, r})

	q, r, err = proxy.Divide(1, 0)
	require.True(t, err == calc.ErrDivisionByZero, "got %v", err)
	require.Equal(t, []int{0, 0}, []int{q, r})

	require.Equal(t, local.Sum(1, 2, 3), proxy.Sum(1, 2, 3))
	require.Equal(t, local.Sum(), proxy.Sum())

	ctx := context.Background()
	product, err := proxy.Multiply(ctx, 3, 4).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, 12, product)

	require.NotPanics(t, proxy.Reset)
}

func TestCalculatorProxy_PanicsWhenNoResultMethodFails(t *testing.T) {
	t.Parallel()

	failure := errors.New("unavailable")
	proxy, err := gointercept.New[calc.Calculator](gointercept.HandlerFuncs[calc.Calculator]{
		Direct: func(gointercept.DirectInvocation[calc.Calculator]) (any, error) {
			return nil, failure
		},
	})
	require.NoError(t, err)

	require.PanicsWithValue(t, failure, proxy.Reset)
	require.PanicsWithValue(t, failure, func() { proxy.Sum(1, 2) })
}
