// Package logger はzerologベースの構造化ロガーを構築します。
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config はロガーの設定です。
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json or console
}

// New は設定からロガーを生成し、パッケージグローバルの log.Logger にも設定します。
// コンテキストにロガーが無い場合の zerolog.Ctx もこのロガーを返します。
func New(cfg Config, out io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}
	if out == nil {
		out = os.Stdout
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	l := zerolog.New(out).Level(level).With().Timestamp().Str("service", "tickertalk").Logger()
	log.Logger = l
	zerolog.DefaultContextLogger = &log.Logger
	return l, nil
}
