// Command seed は銘柄ディレクトリのDBを作成し、YAMLの銘柄一覧を投入します。
//
//	go run ./cmd/seed -driver sqlite -dsn ./symbols.db
//	go run ./cmd/seed -driver postgres -dsn "$SYMBOLS_DB_DSN" -file symbols.yaml
//
// テーブルが既に空でない場合は何も投入しません。
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"tickertalk/internal/feature/symbols/adapters"
	"tickertalk/internal/platform/db"
	"tickertalk/internal/platform/logger"
)

func main() {
	driver := flag.String("driver", "sqlite", "database driver (sqlite or postgres)")
	dsn := flag.String("dsn", "symbols.db", "database DSN")
	file := flag.String("file", "", "YAML symbol list (default: the embedded list)")
	flag.Parse()

	if _, err := logger.New(logger.Config{Level: "info", Format: "console"}, os.Stderr); err != nil {
		log.Fatal().Err(err).Msg("logger init failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	source, err := adapters.NewStaticSymbolRepository()
	if *file != "" {
		data, readErr := os.ReadFile(*file)
		if readErr != nil {
			log.Fatal().Err(readErr).Str("file", *file).Msg("failed to read symbol list")
		}
		source, err = adapters.NewStaticSymbolRepositoryFromYAML(data)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse symbol list")
	}
	symbols, err := source.ListActive(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load symbols")
	}

	gdb, err := db.Open(ctx, db.Config{Driver: *driver, DSN: *dsn, RetryFor: time.Minute})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	repo := adapters.NewGormSymbolRepository(gdb)
	if err := repo.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}
	n, err := repo.SeedIfEmpty(ctx, symbols)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed")
	}
	log.Info().Int("inserted", n).Int("available", len(symbols)).Msg("seed finished")
}
