package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contrib.go.opencensus.io/exporter/prometheus"
	"github.com/senutpal/paxossim/internal/biz"
	"github.com/senutpal/paxossim/internal/config"
	"github.com/senutpal/paxossim/internal/handler"
	"github.com/senutpal/paxossim/internal/klogging"
	"github.com/senutpal/paxossim/internal/kmetrics"
	"go.opencensus.io/metric/metricproducer"
)

var Version string = "dev" // set with -ldflags

func main() {
	ctx := context.Background()
	cfg := config.FromEnv()

	logrusLogger := klogging.NewLogrusLogger().WithMetricsReporter(kmetrics.NewLogEventReporter())
	if err := logrusLogger.SetConfig(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "bad log config: %v\n", err)
		os.Exit(2)
	}
	klogging.SetDefaultLogger(logrusLogger)
	klogging.Info(ctx).With("logLevel", cfg.LogLevel).With("logFormat", cfg.LogFormat).Log("LogLevelSet", "")
	klogging.Info(ctx).With("version", Version).Log("ServerStarting", "Starting paxossim")

	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: "paxossim",
	})
	if err != nil {
		klogging.Fatal(ctx).WithError(err).Log("PrometheusExporterError", "Failed to create Prometheus exporter")
	}
	metricproducer.GlobalManager().AddProducer(kmetrics.GetKmetricsRegistry())

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", pe)

	app := biz.NewApp(ctx, cfg.MaxNodes, cfg.DefaultNodes, cfg.RandSeed)
	h := handler.NewHandler(app)
	mainMux := http.NewServeMux()
	h.RegisterRoutes(mainMux)

	mainServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ApiPort),
		Handler: mainMux,
	}
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler: metricsMux,
	}
	klogging.Info(ctx).
		With("api_port", cfg.ApiPort).
		With("metrics_port", cfg.MetricsPort).
		With("max_nodes", cfg.MaxNodes).
		Log("ServerConfig", "Server ports configuration")

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		klogging.Info(ctx).Log("ServerShutdown", "Shutting down servers...")
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := mainServer.Shutdown(ctx); err != nil {
			klogging.Error(ctx).WithError(err).Log("MainServerShutdownError", "Main server shutdown error")
		}
		if err := metricsServer.Shutdown(ctx); err != nil {
			klogging.Error(ctx).WithError(err).Log("MetricsServerShutdownError", "Metrics server shutdown error")
		}
	}()

	go func() {
		klogging.Info(ctx).With("addr", metricsServer.Addr).Log("MetricsServerStarting", "Metrics server starting")
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			klogging.Error(ctx).WithError(err).Log("MetricsServerError", "Metrics server error")
		}
	}()

	klogging.Info(ctx).With("addr", mainServer.Addr).Log("MainServerStarting", "Main server starting")
	if err := mainServer.ListenAndServe(); err != http.ErrServerClosed {
		klogging.Error(ctx).WithError(err).Log("MainServerError", "Main server error")
	}
	klogging.Info(ctx).Log("ServerShutdown", "Servers stopped")
}
