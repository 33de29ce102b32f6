package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/internal/repository"
	"github.com/noah-isme/classroom-portal/pkg/config"
	"github.com/noah-isme/classroom-portal/pkg/logger"
)

// portal-migrate copies every collection between store drivers, for example
// from the JSON files of a single-host install into Postgres.
func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("portal-migrate", flag.ContinueOnError)
	from := fs.String("from", config.StoreDriverFile, "source store driver (file, postgres, redis)")
	to := fs.String("to", config.StoreDriverPostgres, "destination store driver (file, postgres, redis)")
	dataDir := fs.String("data-dir", "", "override DATA_DIR for the file driver")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *from == *to {
		log.Printf("source and destination are both %q", *from)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}
	if *dataDir != "" {
		cfg.Storage.DataDir = *dataDir
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Printf("failed to init logger: %v", err)
		return 1
	}
	defer logr.Sync() //nolint:errcheck

	ctx := context.Background()
	src, closeSrc, err := open(ctx, cfg, *from, logr)
	if err != nil {
		logr.Error("failed to open source store", zap.String("driver", *from), zap.Error(err))
		return 1
	}
	defer closeStore(logr, *from, closeSrc)

	dst, closeDst, err := open(ctx, cfg, *to, logr)
	if err != nil {
		logr.Error("failed to open destination store", zap.String("driver", *to), zap.Error(err))
		return 1
	}
	defer closeStore(logr, *to, closeDst)

	if err := migrate(ctx, src, dst, stdout); err != nil {
		logr.Error("copy aborted", zap.String("from", *from), zap.String("to", *to), zap.Error(err))
		return 1
	}
	return 0
}

// migrate copies every portal collection and prints one line per collection,
// including those copied before a failure.
func migrate(ctx context.Context, src, dst repository.CollectionStore, out io.Writer) error {
	results, err := repository.CopyCollections(ctx, src, dst, repository.AllCollections)
	for _, r := range results {
		if r.Skipped {
			fmt.Fprintf(out, "%-12s skipped (%s)\n", r.Name, r.Reason)
			continue
		}
		fmt.Fprintf(out, "%-12s %d records\n", r.Name, r.Records)
	}
	return err
}

func open(ctx context.Context, cfg *config.Config, driver string, logr *zap.Logger) (repository.CollectionStore, func() error, error) {
	if driver == "" {
		return nil, nil, errors.New("store driver is required")
	}
	scoped := *cfg
	scoped.Storage.Driver = driver
	return repository.OpenStore(ctx, &scoped, logr)
}

func closeStore(logr *zap.Logger, driver string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logr.Warn("failed to close store", zap.String("driver", driver), zap.Error(err))
	}
}
