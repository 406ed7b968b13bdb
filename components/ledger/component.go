package ledger

import (
	"context"
	"time"

	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/hive.go/ierrors"

	"github.com/trustchain/trustchain/packages/daemon"
	"github.com/trustchain/trustchain/packages/ledger"
	"github.com/trustchain/trustchain/packages/metrics"
	"github.com/trustchain/trustchain/packages/util"
)

func init() {
	Component = &app.Component{
		Name:     "Ledger",
		DepsFunc: func(cDeps dependencies) { deps = cDeps },
		Params:   params,
		Provide:  provide,
		Run:      run,
	}
}

var (
	Component *app.Component
	deps      dependencies

	closeConnection func()
)

type dependencies struct {
	dig.In

	Ledger ledger.Ledger
}

func provide(c *dig.Container) error {
	type ledgerDeps struct {
		dig.In

		MetricsProvider *metrics.Provider
	}

	type ledgerResult struct {
		dig.Out

		Ledger ledger.Ledger
	}

	if err := c.Provide(func(deps ledgerDeps) ledgerResult {
		if !ParamsLedger.Enabled {
			Component.LogWarn("Ledger is disabled, products are only stored locally")
			return ledgerResult{Ledger: ledger.NewUnavailable("ledger is disabled")}
		}

		l, err := connect(deps.MetricsProvider)
		if err != nil {
			Component.LogErrorf("Failed to connect to the ledger, products are only stored locally: %s", err)
			return ledgerResult{Ledger: ledger.NewUnavailable(err.Error())}
		}

		return ledgerResult{Ledger: l}
	}); err != nil {
		Component.LogPanic(err.Error())
	}

	return nil
}

func connect(observer ledger.Observer) (*ledger.EthLedger, error) {
	if err := ledger.ValidateConfig(ParamsLedger.ContractAddress, ParamsLedger.PrivateKey); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), ParamsLedger.ConnectTimeout)
	defer cancel()

	var l *ledger.EthLedger
	err := util.WaitUntil(ctx, func() (util.WaitAction, error) {
		var err error
		l, closeConnection, err = ledger.Dial(
			ctx,
			ParamsLedger.RPCURL,
			ParamsLedger.ContractAddress,
			ParamsLedger.PrivateKey,
			ParamsLedger.ChainID,
			Component.NewChildLogger("Client"),
			ledger.WithCallTimeout(ParamsLedger.CallTimeout),
			ledger.WithReceiptTimeout(ParamsLedger.ReceiptTimeout),
			ledger.WithObserver(observer),
		)
		if ierrors.Is(err, ledger.ErrInvalidConfig) {
			return util.WaitActionDone, err
		}
		if err != nil {
			Component.LogWarnf("Connecting to %s failed, retrying: %s", ParamsLedger.RPCURL, err)
			return util.WaitActionKeepWaiting, err
		}

		return util.WaitActionDone, nil
	}, util.WaitOpts{
		RetryInterval: 3 * time.Second,
		TimeoutMsg:    "connecting to the ledger timed out",
	})

	return l, err
}

func run() error {
	if err := Component.Daemon().BackgroundWorker(Component.Name, func(ctx context.Context) {
		if ledger.IsAvailable(deps.Ledger) {
			Component.LogInfo("Ledger connected")
		}

		<-ctx.Done()

		if closeConnection != nil {
			Component.LogInfo("Closing ledger connection ...")
			closeConnection()
		}
	}, daemon.PriorityLedger); err != nil {
		Component.LogPanicf("failed to start worker: %s", err)
	}

	return nil
}
