package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/uber-go/tally/v4"

	gointercept "github.com/CherkashinEvgeny/gointercept"
	"github.com/CherkashinEvgeny/gointercept/aspect"
	"github.com/CherkashinEvgeny/gointercept/example/calc"
)

func main() {
	commonlog.Configure(1, nil)

	scope := tally.NewTestScope("calc", nil)
	container := gointercept.Container[calc.Calculator]{}
	container.Register(gointercept.Logging[calc.Calculator](nil, nil))
	container.Register(aspect.Metrics[calc.Calculator](scope))
	container.RegisterFor(aspect.Tracing[calc.Calculator](aspect.CommonLog(commonlog.GetLogger("calc.trace"))), "Multiply")

	c, err := gointercept.Proxy[calc.Calculator](&calc.Local{Delay: 50 * time.Millisecond}, &container)
	if err != nil {
		fmt.Println("proxy:", err)
		return
	}

	sum, err := c.Add(3, 4)
	if err != nil {
		fmt.Println("Add:", err)
		return
	}
	fmt.Println("Add:", sum)

	_, _, err = c.Divide(1, 0)
	fmt.Println("Divide:", err)

	ctx := context.Background()
	product, err := c.Multiply(ctx, 3, 4).Await(ctx)
	if err != nil {
		fmt.Println("Multiply:", err)
		return
	}
	fmt.Println("Multiply:", product)

	for _, counter := range scope.Snapshot().Counters() {
		fmt.Println(counter.Name(), counter.Tags(), counter.Value())
	}
}
