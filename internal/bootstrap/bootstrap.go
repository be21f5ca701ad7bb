// Package bootstrap builds the backing services shared by cmd/api and
// cmd/worker from the application config.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"printshop/internal/config"
	"printshop/internal/database"
	"printshop/internal/database/migration"
	"printshop/internal/events"
	"printshop/internal/repository"
	"printshop/internal/repository/cached"
	"printshop/internal/repository/memory"
	"printshop/internal/repository/postgres"
	"printshop/internal/resilience"
	"printshop/internal/storage"
)

// CloseFunc releases whatever an opener acquired.
type CloseFunc func()

func noopClose() {}

// OpenStore returns the repositories selected by cfg.StoreDriver. The
// printer catalogue is cached for cfg.PrinterCacheTTL when the TTL is
// positive.
func OpenStore(ctx context.Context, cfg *config.AppConfig, log *slog.Logger) (*repository.Store, CloseFunc, error) {
	var (
		store *repository.Store
		done  CloseFunc = noopClose
	)

	switch cfg.StoreDriver {
	case "memory", "":
		store = memory.NewStore()
	case "postgres":
		db, err := database.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
		store = postgres.NewStore(db)
		done = func() { _ = db.Close() }
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if cfg.PrinterCacheTTL > 0 {
		store.Printers = cached.NewPrinterRepository(store.Printers, cfg.PrinterCacheTTL)
	}
	log.Info("store_ready", "driver", cfg.StoreDriver, "printer_cache_ttl", cfg.PrinterCacheTTL.String())
	return store, done, nil
}

// OpenStorage returns the object storage selected by cfg.Storage.Driver,
// wrapped with retries and a circuit breaker.
func OpenStorage(ctx context.Context, cfg *config.AppConfig, exec *resilience.Executor) (storage.Storage, error) {
	var (
		objects storage.Storage
		err     error
	)
	switch cfg.Storage.Driver {
	case "local", "":
		objects, err = storage.NewLocal(cfg.Storage.LocalPath)
	case "minio":
		objects, err = storage.NewMinIO(ctx, cfg.Storage.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("initialize object storage: %w", err)
	}
	return storage.NewResilient(objects, exec), nil
}

// ConnectBus dials NATS when cfg.NATS.URL is set. Without a URL it returns
// a nil bus.
func ConnectBus(cfg *config.AppConfig, name string, exec *resilience.Executor, log *slog.Logger) (*events.Bus, error) {
	if cfg.NATS.URL == "" {
		return nil, nil
	}
	return events.Connect(cfg.NATS.URL, events.Options{
		Name:          name,
		StatusSubject: cfg.NATS.StatusSubject,
		EventsSubject: cfg.NATS.EventsSubject,
		QueueGroup:    cfg.NATS.QueueGroup,
		Executor:      exec,
		Logger:        log,
	})
}
