package app

import (
	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/hive.go/app/components/shutdown"

	"github.com/trustchain/trustchain/components/database"
	"github.com/trustchain/trustchain/components/ledger"
	"github.com/trustchain/trustchain/components/metrics"
	"github.com/trustchain/trustchain/components/prometheus"
	"github.com/trustchain/trustchain/components/users"
	"github.com/trustchain/trustchain/components/verification"
	"github.com/trustchain/trustchain/components/webapi"
)

var (
	// Name of the app.
	Name = "TrustChain"

	// Version of the app.
	Version = "0.1.0"
)

func App() *app.App {
	return app.New(Name, Version,
		app.WithInitComponent(InitComponent),
		app.WithComponents(
			shutdown.Component,
			metrics.Component,
			database.Component,
			users.Component,
			ledger.Component,
			verification.Component,
			webapi.Component,
			prometheus.Component,
		),
	)
}

var InitComponent *app.InitComponent

func init() {
	InitComponent = &app.InitComponent{
		Component: &app.Component{
			Name: "App",
		},
		NonHiddenFlags: []string{
			"config",
			"help",
			"version",
		},
	}
}
