// Command langsyncd serves translation bundles to clients and resolves the
// language of every request the way a rendering environment does, persisting
// explicit language switches to the i18next cookie and, optionally, Redis.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/langsync/pkg/logger"
)

func main() {
	if err := start(); err != nil {
		slog.Error("langsyncd stopped", logger.Error(err))
		os.Exit(1)
	}
}

func start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return run(ctx, cfg)
}
