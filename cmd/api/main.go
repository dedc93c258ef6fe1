package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scorefeed/scorefeed/internal/app"
	"github.com/scorefeed/scorefeed/internal/config"
	"github.com/scorefeed/scorefeed/internal/observability"
	"github.com/scorefeed/scorefeed/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof server", "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := application.Run(ctx)

	if err := application.Close(); err != nil {
		logger.Error("close app", "error", err)
	}
	if pprofSrv != nil {
		if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
			logger.Error("stop pprof server", "error", err)
		}
	}
	if stopPyroscope != nil {
		if err := stopPyroscope(); err != nil {
			logger.Error("stop pyroscope", "error", err)
		}
	}
	if shutdownUptrace != nil {
		flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := shutdownUptrace(flushCtx); err != nil {
			logger.Error("flush telemetry", "error", err)
		}
		cancel()
	}

	if runErr != nil {
		logger.Error("server exited", "error", runErr)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
