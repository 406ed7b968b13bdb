package webapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/pangpanglabs/echoswagger/v2"
	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"

	"github.com/trustchain/trustchain/packages/authentication"
	"github.com/trustchain/trustchain/packages/daemon"
	"github.com/trustchain/trustchain/packages/ledger"
	"github.com/trustchain/trustchain/packages/metrics"
	"github.com/trustchain/trustchain/packages/nfc"
	"github.com/trustchain/trustchain/packages/registry"
	"github.com/trustchain/trustchain/packages/seal"
	"github.com/trustchain/trustchain/packages/users"
	"github.com/trustchain/trustchain/packages/webapi"
)

func init() {
	Component = &app.Component{
		Name:      "WebAPI",
		DepsFunc:  func(cDeps dependencies) { deps = cDeps },
		Params:    params,
		IsEnabled: func(_ *dig.Container) bool { return ParamsWebAPI.Enabled },
		Provide:   provide,
		Run:       run,
	}
}

var (
	Component *app.Component
	deps      dependencies
)

type dependencies struct {
	dig.In

	EchoSwagger echoswagger.ApiRoot `name:"webapiServer"`
}

func provide(c *dig.Container) error {
	type webapiServerDeps struct {
		dig.In

		AppInfo         *app.Info
		UserManager     *users.UserManager
		Ledger          ledger.Ledger
		Registry        *registry.Registry
		Verifier        *seal.Verifier
		Challenges      *nfc.ChallengeStore
		ChallengeTTL    time.Duration `name:"challengeTTL"`
		Emulator        *nfc.Emulator
		EmulatorEnabled bool `name:"nfcEmulatorEnabled"`
		MetricsProvider *metrics.Provider
	}

	type webapiServerResult struct {
		dig.Out

		EchoSwagger echoswagger.ApiRoot `name:"webapiServer"`
	}

	if err := c.Provide(func(deps webapiServerDeps) webapiServerResult {
		if ParamsWebAPI.Auth.Scheme != authentication.AuthJWT {
			Component.LogPanicf("unsupported auth scheme %q", ParamsWebAPI.Auth.Scheme)
		}
		if ParamsWebAPI.Auth.JWTConfig.Secret == "" {
			Component.LogWarn("No JWT secret configured, issued tokens are invalidated by a restart")
		}

		jwtAuth, err := authentication.NewJWTAuth(ParamsWebAPI.Auth.JWTConfig.Secret, ParamsWebAPI.Auth.JWTConfig.Duration)
		if err != nil {
			Component.LogPanicf("invalid jwt configuration: %s", err)
		}

		logger := Component.NewChildLogger("API")

		echoSwagger := webapi.NewEcho(
			ParamsWebAPI.DebugRequestLoggerEnabled,
			&ParamsWebAPI.Limits,
			deps.MetricsProvider,
			deps.AppInfo.Version,
			Component,
		)

		if deps.EmulatorEnabled {
			Component.LogWarn("The NFC chip emulator endpoint is enabled, do not use this in production")
		}

		webapi.Init(
			logger,
			echoSwagger,
			deps.UserManager,
			jwtAuth,
			deps.Ledger,
			deps.Registry,
			deps.Verifier,
			deps.Challenges,
			deps.ChallengeTTL,
			deps.Emulator,
			deps.EmulatorEnabled,
			deps.MetricsProvider,
			&ParamsWebAPI.Limits,
		)

		return webapiServerResult{
			EchoSwagger: echoSwagger,
		}
	}); err != nil {
		Component.LogPanic(err.Error())
	}

	return nil
}

func run() error {
	Component.LogInfof("Starting %s server ...", Component.Name)
	if err := Component.Daemon().BackgroundWorker(Component.Name, func(ctx context.Context) {
		Component.LogInfof("Starting %s server ... done", Component.Name)

		go func() {
			deps.EchoSwagger.Echo().Server.BaseContext = func(_ net.Listener) context.Context {
				// set BaseContext to be the same as the plugin, so that requests being processed don't hang the shutdown procedure
				return ctx
			}

			Component.LogInfof("You can now access the WebAPI using: http://%s", ParamsWebAPI.BindAddress)
			if err := deps.EchoSwagger.Echo().Start(ParamsWebAPI.BindAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
				Component.LogWarnf("Stopped %s server due to an error (%s)", Component.Name, err)
			}
		}()

		<-ctx.Done()

		Component.LogInfof("Stopping %s server ...", Component.Name)

		shutdownCtx, shutdownCtxCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCtxCancel()

		//nolint:contextcheck // false positive
		if err := deps.EchoSwagger.Echo().Shutdown(shutdownCtx); err != nil {
			Component.LogWarn(err.Error())
		}

		Component.LogInfof("Stopping %s server ... done", Component.Name)
	}, daemon.PriorityWebAPI); err != nil {
		Component.LogPanicf("failed to start worker: %s", err)
	}

	return nil
}
