package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Xausdorf/loyalty-points/internal/delivery/cli"
	"github.com/Xausdorf/loyalty-points/internal/domain/repository"
	"github.com/Xausdorf/loyalty-points/internal/infrastructure/config"
	"github.com/Xausdorf/loyalty-points/internal/infrastructure/filestore"
	"github.com/Xausdorf/loyalty-points/internal/infrastructure/logging"
	"github.com/Xausdorf/loyalty-points/internal/infrastructure/memory"
	"github.com/Xausdorf/loyalty-points/internal/infrastructure/postgres"
	"github.com/Xausdorf/loyalty-points/internal/infrastructure/sqlite"
	"github.com/Xausdorf/loyalty-points/internal/usecase/points"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitFailure
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)

	repo, closeRepo, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("store init failed", "store", string(cfg.Store), "error", err)
		fmt.Fprintf(os.Stderr, "Error: An unexpected error occurred: %v\n", err)
		return cli.ExitFailure
	}
	defer closeRepo()

	uc := points.NewUseCase(repo, logger)
	handler := cli.NewHandler(uc, os.Stdout, os.Stderr, logger)

	return handler.Run(ctx, os.Args[1:])
}

func openStore(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (repository.CustomerRepository, func(), error) {
	noop := func() {}

	switch cfg.Store {
	case config.StoreSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.StorePostgres:
		s, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case config.StoreMemory:
		return memory.NewStore(), noop, nil
	default:
		s := filestore.Open(cfg.DataFile, logger)
		logger.Debug("file store opened", "path", s.Path())
		return s, noop, nil
	}
}
