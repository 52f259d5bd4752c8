package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/applybureau/bureau/internal/bureau/store"
	"github.com/applybureau/bureau/internal/bureau/store/drivers/postgres"
	"github.com/applybureau/bureau/internal/bureau/store/drivers/sqlite"
)

// OpenStore connects to the configured database and applies migrations.
func OpenStore(ctx context.Context, cfg Config, logger *slog.Logger) (store.Store, error) {
	var (
		db  store.Store
		err error
	)

	switch cfg.DatabaseDriver {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required for the postgres driver")
		}
		db, err = postgres.NewStore(ctx, cfg.DatabaseURL, postgres.PoolConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		})
	case "sqlite", "":
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	default:
		return nil, fmt.Errorf("unknown DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied successfully", "driver", cfg.DatabaseDriver)
	return db, nil
}
