package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/dynamic-assetledger-go/contract"
	"github.com/AntonStoeckl/dynamic-assetledger-go/contract/observable"
	"github.com/AntonStoeckl/dynamic-assetledger-go/contract/read"
	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger"
	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger/oteladapters"
	"github.com/AntonStoeckl/dynamic-assetledger-go/ledger/postgresengine"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errWritingResult = errors.New("failed to write result")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}

// run wires config, logging, observability and the asset store, then invokes the read contract once.
func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, getenv, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}

		_, _ = fmt.Fprintln(stderr, err)

		return exitUsage
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	var storeOptions []postgresengine.Option
	wrapperOptions := []observable.Option{observable.WithLogging(logger)}

	if cfg.OTel {
		providers, otelErr := setupOTel(ctx, cfg)
		if otelErr != nil {
			logger.Error("failed to set up opentelemetry", "error", otelErr.Error())
			return exitError
		}

		defer func() {
			if shutdownErr := providers.shutdown(); shutdownErr != nil {
				logger.Warn("failed to shut down opentelemetry", "error", shutdownErr.Error())
			}
		}()

		tracingCollector := oteladapters.NewTracingCollector(otel.Tracer(serviceName))
		metricsCollector := oteladapters.NewMetricsCollector(otel.Meter(serviceName))
		contextualLogger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)

		storeOptions = append(storeOptions,
			postgresengine.WithTracing(tracingCollector),
			postgresengine.WithMetrics(metricsCollector),
			postgresengine.WithContextualLogger(contextualLogger),
		)

		wrapperOptions = append(wrapperOptions,
			observable.WithTracing(tracingCollector),
			observable.WithMetrics(metricsCollector),
			observable.WithContextualLogging(contextualLogger),
		)
	} else {
		storeOptions = append(storeOptions, postgresengine.WithLogger(logger))
	}

	store, closeStore, err := openAssetStore(ctx, cfg, storeOptions...)
	if err != nil {
		logger.Error("failed to open asset store", "adapter", cfg.Adapter, "error", err.Error())
		return exitError
	}
	defer closeStore()

	readContract, err := observable.NewWrapper(read.Name, read.New(), wrapperOptions...)
	if err != nil {
		logger.Error("failed to build contract", "error", err.Error())
		return exitError
	}

	if cfg.Eventual {
		ctx = ledger.WithEventualConsistency(ctx)
	}

	if invokeErr := invoke(ctx, readContract, store, cfg.Key, stdout); invokeErr != nil {
		logInvokeError(logger, invokeErr)
		return exitError
	}

	return exitOK
}

// invoke runs the contract for key and writes the result JSON followed by a newline.
// Failures after the contract returned are joined with errWritingResult.
func invoke(ctx context.Context, c contract.Contract, accessor ledger.Accessor, key int64, out io.Writer) error {
	result, err := c.Invoke(ctx, accessor, read.BuildArgument(key), json.RawMessage(nil))
	if err != nil {
		return err
	}

	encoded, err := result.MarshalJSON()
	if err != nil {
		return errors.Join(errWritingResult, err)
	}

	if _, err = fmt.Fprintln(out, string(encoded)); err != nil {
		return errors.Join(errWritingResult, err)
	}

	return nil
}

// logInvokeError logs failures the contract wrapper has not logged already.
func logInvokeError(logger *slog.Logger, err error) {
	if errors.Is(err, errWritingResult) {
		logger.Error(errWritingResult.Error(), "error", err.Error())
	}
}
