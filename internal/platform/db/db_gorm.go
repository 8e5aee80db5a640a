// Package db は銘柄ディレクトリ用のgorm接続を開きます。
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config は接続先の設定です。
type Config struct {
	Driver string // sqlite or postgres
	DSN    string
	// RetryFor は接続失敗時にリトライを続ける期間です。0 の場合は1回だけ試行します。
	RetryFor time.Duration
}

const retryInterval = 3 * time.Second

// Dialector はドライバ名に対応するgormのDialectorを返します。
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

// Open は接続を開きます。postgres のように起動直後は接続できない場合に備え、
// RetryFor の間は retryInterval ごとに再試行します。
func Open(ctx context.Context, cfg Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	deadline := time.Now().Add(cfg.RetryFor)
	for {
		db, err := gorm.Open(dialector, gcfg)
		if err == nil {
			return db, nil
		}
		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
		}
		log.Warn().Err(err).Str("driver", cfg.Driver).Msg("db connect failed, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}
