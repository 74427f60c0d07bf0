package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/imkonsowa/menu-concierge/config"
	"github.com/imkonsowa/menu-concierge/events"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigFile, "path to the yaml config file")
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sub, err := events.NewSubscriber(&cfg.Nats)
	if err != nil {
		log.Fatal(err)
	}
	defer sub.Close()

	tally := events.NewTally()
	pool := events.NewWorkerPool(ctx, cfg.Watcher.Workers, cfg.Watcher.QueueSize, tally.Handle)

	slog.Info("Starting cart watcher",
		"subject", cfg.Nats.CartSubject,
		"workers", cfg.Watcher.Workers,
		"queueSize", cfg.Watcher.QueueSize,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer pool.Close()
		return sub.Run(gctx, pool)
	})

	err = g.Wait()
	pool.Wait()

	for op, n := range tally.Operations() {
		slog.Info("cart events handled", "operation", op, "count", n)
	}

	if err != nil {
		slog.Error("Shutting down due to error", "error", err)
		os.Exit(1)
	}
	slog.Info("Shutting down")
}
