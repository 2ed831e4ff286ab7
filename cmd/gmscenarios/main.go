// SPDX-License-Identifier: MIT

// Command gmscenarios evaluates every open/closed configuration of a set of
// candidate service locations against a travel-cost matrix and writes one
// row of accessibility statistics per configuration.
//
// Usage:
//
//	gmscenarios run    -matrix costs.csv -activity activity.csv -out results.csv [flags]
//	gmscenarios matrix -edges roads.csv -origins points.csv -destinations sites.csv -out costs.csv [flags]
//
// Exit codes: 0 success, 1 other failure or interrupted run, 2 invalid
// configuration, 3 invalid input data, 4 run exceeds resource limits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/KerryPearn/routino-gm-scenarios/errkind"
	"github.com/KerryPearn/routino-gm-scenarios/internal/logging"
	"github.com/KerryPearn/routino-gm-scenarios/internal/observability"
)

// Exit codes.
const (
	exitOK            = 0
	exitFailure       = 1
	exitConfiguration = 2
	exitData          = 3
	exitResourceLimit = 4
)

const usage = `usage: gmscenarios <command> [flags]

commands:
  run     evaluate all location scenarios of a travel-cost matrix
  matrix  build a travel-cost matrix from an osm2ch road network

run "gmscenarios <command> -h" for the flags of a command.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := realMain(ctx, os.Args[1:], os.Stderr, logging.NewFromEnv())
	stop()
	os.Exit(code)
}

// realMain dispatches a command and maps its error to an exit code.
func realMain(ctx context.Context, args []string, stderr io.Writer, log logging.Logger) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitConfiguration
	}

	var err error
	switch args[0] {
	case "run":
		var cfg RunConfig
		if cfg, err = parseRunFlags(args[1:], stderr); err == nil {
			err = withApp(ctx, log, cfg.MetricsAddr, func(a *app) error { return runScenarios(ctx, a, cfg) })
		}
	case "matrix":
		var cfg MatrixConfig
		if cfg, err = parseMatrixFlags(args[1:], stderr); err == nil {
			err = withApp(ctx, log, cfg.MetricsAddr, func(a *app) error { return buildMatrix(ctx, a, cfg) })
		}
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stderr, usage)
		return exitOK
	default:
		fmt.Fprint(stderr, usage)
		err = fmt.Errorf("unknown command %q: %w", args[0], ErrInvalidConfig)
	}

	code := exitCode(err)
	if code != exitOK {
		log.Error(ctx, "gmscenarios failed", logging.Err(err), logging.Int("exit_code", code))
	}

	return code
}

// exitCode maps an error to the process exit code by its kind.
func exitCode(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	switch errkind.Of(err) {
	case errkind.ErrConfiguration:
		return exitConfiguration
	case errkind.ErrData:
		return exitData
	case errkind.ErrResourceLimit:
		return exitResourceLimit
	default:
		return exitFailure
	}
}

// app carries the ambient services shared by commands.
type app struct {
	log       logging.Logger
	tracer    trace.Tracer
	collector *observability.RunCollector
}

// withApp sets up tracing, metrics and the optional /metrics endpoint,
// runs fn and tears everything down.
func withApp(ctx context.Context, log logging.Logger, metricsAddr string, fn func(*app) error) error {
	tracer, shutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdown, log)

	collector, err := observability.NewRunCollector(nil)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	if metricsAddr != "" {
		srv := serveMetrics(metricsAddr, collector, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	return fn(&app{log: log, tracer: tracer, collector: collector})
}

func serveMetrics(addr string, collector *observability.RunCollector, log logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.Err(err))
		}
	}()
	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))

	return srv
}
