package prometheus

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"

	"github.com/trustchain/trustchain/packages/daemon"
	"github.com/trustchain/trustchain/packages/metrics"
)

func init() {
	Component = &app.Component{
		Name:      "Prometheus",
		DepsFunc:  func(cDeps dependencies) { deps = cDeps },
		Params:    params,
		IsEnabled: func(_ *dig.Container) bool { return ParamsPrometheus.Enabled },
		Configure: configure,
		Run:       run,
	}
}

var (
	Component *app.Component
	deps      dependencies

	server   *http.Server
	registry *prometheus.Registry
)

type dependencies struct {
	dig.In

	MetricsProvider *metrics.Provider
}

func configure() error {
	registry = prometheus.NewRegistry()

	if err := deps.MetricsProvider.Register(registry); err != nil {
		return err
	}
	if ParamsPrometheus.GoMetrics {
		registry.MustRegister(collectors.NewGoCollector())
	}
	if ParamsPrometheus.ProcessMetrics {
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	return nil
}

func run() error {
	Component.LogInfo("Starting Prometheus exporter ...")

	e := echo.New()
	e.HideBanner = true

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	if ParamsPrometheus.PromhttpMetrics {
		handler = promhttp.InstrumentMetricHandler(registry, handler)
	}
	e.GET("/metrics", echo.WrapHandler(handler))

	server = &http.Server{
		Addr:              ParamsPrometheus.BindAddress,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if err := Component.Daemon().BackgroundWorker("Prometheus exporter", func(ctx context.Context) {
		Component.LogInfo("Starting Prometheus exporter ... done")

		go func() {
			Component.LogInfof("You can now access the Prometheus exporter using: http://%s/metrics", ParamsPrometheus.BindAddress)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				Component.LogWarnf("Stopped Prometheus exporter due to an error (%s)", err)
			}
		}()

		<-ctx.Done()
		Component.LogInfo("Stopping Prometheus exporter ...")

		shutdownCtx, shutdownCtxCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCtxCancel()

		//nolint:contextcheck // false positive
		if err := server.Shutdown(shutdownCtx); err != nil {
			Component.LogWarn(err.Error())
		}

		Component.LogInfo("Stopping Prometheus exporter ... done")
	}, daemon.PriorityPrometheus); err != nil {
		Component.LogPanicf("failed to start worker: %s", err)
	}

	return nil
}
