package database

import (
	"context"

	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"

	"github.com/trustchain/trustchain/packages/daemon"
	"github.com/trustchain/trustchain/packages/database"
	"github.com/trustchain/trustchain/packages/registry"
)

func init() {
	Component = &app.Component{
		Name:     "Database",
		DepsFunc: func(cDeps dependencies) { deps = cDeps },
		Params:   params,
		Provide:  provide,
		Run:      run,
	}
}

var (
	Component *app.Component
	deps      dependencies
)

type dependencies struct {
	dig.In

	DatabaseManager *database.Manager
}

func provide(c *dig.Container) error {
	type databaseResult struct {
		dig.Out

		DatabaseManager *database.Manager
		Registry        *registry.Registry
	}

	if err := c.Provide(func() databaseResult {
		manager, err := database.NewManager(Component.NewChildLogger("Manager"), database.Engine(ParamsDatabase.Engine), ParamsDatabase.Path)
		if err != nil {
			Component.LogPanicf("failed to open database: %s", err)
		}

		reg, err := registry.New(manager)
		if err != nil {
			Component.LogPanicf("failed to create registry: %s", err)
		}

		return databaseResult{
			DatabaseManager: manager,
			Registry:        reg,
		}
	}); err != nil {
		Component.LogPanic(err.Error())
	}

	return nil
}

func run() error {
	if err := Component.Daemon().BackgroundWorker("Close database", func(ctx context.Context) {
		<-ctx.Done()

		Component.LogInfo("Syncing databases to disk ...")
		if err := deps.DatabaseManager.Close(); err != nil {
			Component.LogErrorf("failed to close database: %s", err)
			return
		}
		Component.LogInfo("Syncing databases to disk ... done")
	}, daemon.PriorityCloseDatabase); err != nil {
		Component.LogPanicf("failed to start worker: %s", err)
	}

	return nil
}
