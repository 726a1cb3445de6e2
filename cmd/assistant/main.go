package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ib-assistant/internal/logger"
	"ib-assistant/internal/session"
	"ib-assistant/internal/trace"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	must(initializeSystem())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(ctx)
	must(err)

	compressOldLogs(ctx)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		logger.Info(ctx, "Shutting down...")
		cancel()
	}()

	brk := initializeBroker(ctx, cfg)
	reg := buildRegistry(ctx, cfg, brk)

	completer, err := initializeCompleter(ctx, cfg)
	must(err)

	err = session.Run(ctx, session.Params{
		In:        os.Stdin,
		Out:       os.Stdout,
		Completer: completer,
		Registry:  reg,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.ErrorWithErr(ctx, "Session ended with error", err)
	}

	// Leave no dangling TWS session behind
	if brk.IsConnected() {
		brk.Disconnect(context.Background())
	}

	if err := trace.Shutdown(context.Background()); err != nil {
		logger.Warn(ctx, "Tracer shutdown failed", "error", err)
	}
}
