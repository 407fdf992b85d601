package gointercept_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	gointercept "github.com/CherkashinEvgeny/gointercept"
)

func tagging(name string, log *recorder) gointercept.Decorator[Subject] {
	return gointercept.Around[Subject](
		func(gointercept.Invocation) string {
			log.write(name + ".before")
			return name
		},
		func(name string, outcome gointercept.Outcome) (any, error) {
			log.write(name + ".after")
			return outcome.Get()
		},
	)
}

func callingTarget(log *recorder) gointercept.Handler[Subject] {
	target := concreteSubject{}
	return gointercept.HandlerFuncs[Subject]{
		Direct: func(inv gointercept.DirectInvocation[Subject]) (any, error) {
			log.write("call")
			return inv.Apply(target)
		},
		Suspending: func(ctx context.Context, inv gointercept.SuspendingInvocation[Subject]) (any, error) {
			log.write("call")
			return inv.Apply(ctx, target)
		},
	}
}

func TestLogging_DirectAndSuspending(t *testing.T) {
	t.Parallel()

	log := &recorder{}
	subject, err := gointercept.Proxy[Subject](concreteSubject{}, gointercept.Logging[Subject](log.write, nil))
	require.NoError(t, err)

	sum, err := subject.Add(3, 4)
	require.NoError(t, err)
	require.Equal(t, 7, sum)
	ctx := context.Background()
	product, err := subject.Multiply(ctx, 3, 4).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, 12, product)

	require.Equal(t, []string{
		"Starting: Add(3, 4)",
		"Finished: Add(3, 4)",
		"Starting: Multiply(3, 4)",
		"Finished: Multiply(3, 4)",
	}, log.lines)
}

func TestLogging_ReportsFailures(t *testing.T) {
	t.Parallel()

	log := &recorder{}
	describe := func(inv gointercept.Invocation) string {
		return fmt.Sprintf("%s/%d", inv.Method().Name(), len(inv.Arguments()))
	}
	subject, err := gointercept.Proxy[Subject](throwingSubject{}, gointercept.Logging[Subject](log.write, describe))
	require.NoError(t, err)

	_, err = subject.Add(3, 4)
	require.True(t, err == errSample)
	require.Equal(t, []string{"Starting: Add/2", "Finished: Add/2"}, log.lines)
}

func TestDecorator_Ordering(t *testing.T) {
	t.Parallel()

	want := []string{"d2.before", "d1.before", "call", "d1.after", "d2.after"}

	log := &recorder{}
	h := gointercept.DecoratedBy(callingTarget(log), tagging("d1", log), tagging("d2", log))
	subject, err := gointercept.New[Subject](h)
	require.NoError(t, err)

	_, err = subject.Add(3, 4)
	require.NoError(t, err)
	require.Equal(t, want, log.lines)

	log.lines = nil
	ctx := context.Background()
	_, err = subject.Multiply(ctx, 3, 4).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, want, log.lines)
}

func TestDecorator_NestingMatchesDecoratedBy(t *testing.T) {
	t.Parallel()

	nestedLog, chainLog := &recorder{}, &recorder{}
	nested := tagging("d2", nestedLog).Decorate(tagging("d1", nestedLog).Decorate(callingTarget(nestedLog)))
	chained := gointercept.DecoratedBy(callingTarget(chainLog), tagging("d1", chainLog), tagging("d2", chainLog))

	add := mustMethod[Subject](t, "Add")
	inv, err := gointercept.NewDirectInvocation[Subject](add, 1, 2)
	require.NoError(t, err)
	_, err = nested.HandleDirect(inv)
	require.NoError(t, err)
	_, err = chained.HandleDirect(inv)
	require.NoError(t, err)
	require.Equal(t, nestedLog.lines, chainLog.lines)
}

func TestDecorator_AfterCanReplaceFailure(t *testing.T) {
	t.Parallel()

	fallback := gointercept.Around[Subject](
		func(gointercept.Invocation) struct{} { return struct{}{} },
		func(_ struct{}, outcome gointercept.Outcome) (any, error) {
			if outcome.Failed() {
				return -1, nil
			}
			return outcome.Get()
		},
	)
	subject, err := gointercept.Proxy[Subject](throwingSubject{}, fallback)
	require.NoError(t, err)

	sum, err := subject.Add(3, 4)
	require.NoError(t, err)
	require.Equal(t, -1, sum)
	ctx := context.Background()
	product, err := subject.Multiply(ctx, 3, 4).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, -1, product)
}

func TestSplit_DecoratesEachVariantSeparately(t *testing.T) {
	t.Parallel()

	double := gointercept.Split[Subject](
		func(original gointercept.DirectFunc[Subject]) gointercept.DirectFunc[Subject] {
			return func(inv gointercept.DirectInvocation[Subject]) (any, error) {
				v, err := original(inv)
				if err != nil {
					return nil, err
				}
				return v.(int) * 2, nil
			}
		},
		nil,
	)
	subject, err := gointercept.Proxy[Subject](concreteSubject{}, double)
	require.NoError(t, err)

	sum, err := subject.Add(3, 4)
	require.NoError(t, err)
	require.Equal(t, 14, sum)
	ctx := context.Background()
	product, err := subject.Multiply(ctx, 3, 4).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, 12, product)
}

func TestContainer_RegistrationOrder(t *testing.T) {
	t.Parallel()

	log := &recorder{}
	var c gointercept.Container[Subject]
	c.Register(tagging("first", log))
	c.Register(tagging("second", log))
	c.RegisterFor(tagging("mul", log), "Multiply")
	require.Equal(t, 3, c.Len())

	subject, err := gointercept.New[Subject](gointercept.DecoratedBy(callingTarget(log), gointercept.Decorator[Subject](&c)))
	require.NoError(t, err)

	_, err = subject.Add(3, 4)
	require.NoError(t, err)
	require.Equal(t, []string{"first.before", "second.before", "call", "second.after", "first.after"}, log.lines)

	log.lines = nil
	ctx := context.Background()
	_, err = subject.Multiply(ctx, 3, 4).Await(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{
		"first.before", "second.before", "mul.before", "call", "mul.after", "second.after", "first.after",
	}, log.lines)
}
