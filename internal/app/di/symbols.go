package di

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tickertalk/internal/feature/symbols/adapters"
	"tickertalk/internal/feature/symbols/usecase"
	"tickertalk/internal/platform/config"
	"tickertalk/internal/platform/db"
)

// NewSymbolRepository creates the symbol directory source.
//
// "static" reads the list embedded in the binary. "db" opens the configured database,
// migrates the table and seeds it from the embedded list when it is empty.
// The returned close function releases the database connection and is never nil.
func NewSymbolRepository(ctx context.Context, cfg config.SymbolsConfig) (usecase.SymbolRepository, func() error, error) {
	noop := func() error { return nil }

	static, err := adapters.NewStaticSymbolRepository()
	if err != nil {
		return nil, noop, fmt.Errorf("load embedded symbols: %w", err)
	}
	if cfg.Source != "db" {
		return static, noop, nil
	}

	retry := time.Duration(0)
	if cfg.Driver == "postgres" {
		retry = 30 * time.Second
	}
	gdb, err := db.Open(ctx, db.Config{Driver: cfg.Driver, DSN: cfg.DSN, RetryFor: retry})
	if err != nil {
		return nil, noop, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, noop, err
	}

	repo := adapters.NewGormSymbolRepository(gdb)
	if err := repo.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, noop, fmt.Errorf("migrate symbols: %w", err)
	}
	seed, err := static.ListActive(ctx)
	if err != nil {
		_ = sqlDB.Close()
		return nil, noop, err
	}
	n, err := repo.SeedIfEmpty(ctx, seed)
	if err != nil {
		_ = sqlDB.Close()
		return nil, noop, fmt.Errorf("seed symbols: %w", err)
	}
	log.Info().Str("driver", cfg.Driver).Int("seeded", n).Msg("symbol directory opened")
	return repo, sqlDB.Close, nil
}
