package metrics

import (
	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"

	"github.com/trustchain/trustchain/packages/metrics"
)

func init() {
	Component = &app.Component{
		Name:    "Metrics",
		Provide: provide,
	}
}

var Component *app.Component

func provide(c *dig.Container) error {
	if err := c.Provide(metrics.NewProvider); err != nil {
		Component.LogPanic(err.Error())
	}

	return nil
}
