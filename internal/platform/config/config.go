// Package config はアプリケーション全体の設定を読み込みます。
//
// 読み込み順序:
//  1. 構造体タグのデフォルト値（creasty/defaults）
//  2. YAMLファイル（存在する場合のみ）
//  3. .env ファイル（シークレットストア。存在しない場合はスキップ）
//  4. 環境変数による上書き
//
// 返される Config は起動時に一度だけ構築され、以降は読み取り専用として各コンポーネントに渡されます。
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	RapidAPI   RapidAPIConfig   `yaml:"rapidapi"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Symbols    SymbolsConfig    `yaml:"symbols"`
	Redis      RedisConfig      `yaml:"redis"`
}

// ServerConfig はHTTPサーバーの設定です。
type ServerConfig struct {
	Addr         string        `yaml:"addr" default:":8080" validate:"required"`
	ReadTimeout  time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"60s"`
	// AskPerMinute は /v1/ask と フォーム送信の1分あたり上限です。0 で無制限。
	AskPerMinute int `yaml:"ask_per_minute" default:"30" validate:"gte=0"`
}

// LogConfig はロガーの設定です。
type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" default:"json" validate:"oneof=json console"`
}

// RapidAPIConfig は2つのYahoo Finance RapidAPIプロバイダの設定です。
// QuoteKey は quote/news/profile 用、ChartKey は chart/analyst 用のキーです。
type RapidAPIConfig struct {
	QuoteKey     string        `yaml:"quote_key" validate:"required"`
	QuoteBaseURL string        `yaml:"quote_base_url" default:"https://yahoo-finance15.p.rapidapi.com" validate:"url"`
	QuoteHost    string        `yaml:"quote_host" default:"yahoo-finance15.p.rapidapi.com" validate:"required"`
	ChartKey     string        `yaml:"chart_key" validate:"required"`
	ChartBaseURL string        `yaml:"chart_base_url" default:"https://yahoo-finance166.p.rapidapi.com" validate:"url"`
	ChartHost    string        `yaml:"chart_host" default:"yahoo-finance166.p.rapidapi.com" validate:"required"`
	Timeout      time.Duration `yaml:"timeout" default:"10s"`
}

// ClassifierConfig は意図分類に使うホスト型モデルの設定です。
type ClassifierConfig struct {
	Provider     string        `yaml:"provider" default:"openai" validate:"oneof=openai gemini"`
	Model        string        `yaml:"model"`
	OpenAIAPIKey string        `yaml:"openai_api_key" validate:"required_if=Provider openai"`
	GeminiAPIKey string        `yaml:"gemini_api_key"`
	BaseURL      string        `yaml:"base_url" validate:"omitempty,url"`
	Timeout      time.Duration `yaml:"timeout" default:"30s"`
}

// SymbolsConfig は銘柄ディレクトリの読み込み元です。
type SymbolsConfig struct {
	Source string `yaml:"source" default:"static" validate:"oneof=static db"`
	Driver string `yaml:"driver" default:"sqlite" validate:"oneof=sqlite postgres"`
	DSN    string `yaml:"dsn" validate:"required_if=Source db"`
}

// RedisConfig はオプションのレスポンスキャッシュ設定です。CacheTTL が 0 の場合キャッシュは無効です。
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// CacheEnabled はRedisキャッシュを使うかどうかを返します。
func (r RedisConfig) CacheEnabled() bool {
	return r.Addr != "" && r.CacheTTL > 0
}

var validate = validator.New()

// Load は path のYAML（任意）、envFile の .env（任意）、環境変数の順に設定を読み込み、検証します。
func Load(path, envFile string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if envFile != "" {
		// godotenv.Load は既存の環境変数を上書きしない
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.Classifier.Model == "" {
		cfg.Classifier.Model = defaultModel(cfg.Classifier.Provider)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate は設定値を検証します。
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Classifier.Provider == "gemini" && c.Classifier.GeminiAPIKey == "" && os.Getenv("GOOGLE_GENAI_USE_VERTEXAI") == "" {
		return errors.New("classifier.gemini_api_key is required when provider is gemini")
	}
	return nil
}

func defaultModel(provider string) string {
	if provider == "gemini" {
		return "gemini-2.5-flash"
	}
	return "gpt-3.5-turbo"
}

// applyEnv は環境変数で設定を上書きします。
func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Addr, "SERVER_ADDR")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")

	setString(&cfg.RapidAPI.QuoteKey, "RAPIDAPI_KEY")
	setString(&cfg.RapidAPI.ChartKey, "NEWRAPIDAPI_KEY")
	setString(&cfg.RapidAPI.QuoteBaseURL, "RAPIDAPI_QUOTE_BASE_URL")
	setString(&cfg.RapidAPI.ChartBaseURL, "RAPIDAPI_CHART_BASE_URL")

	setString(&cfg.Classifier.Provider, "CLASSIFIER_PROVIDER")
	setString(&cfg.Classifier.Model, "CLASSIFIER_MODEL")
	setString(&cfg.Classifier.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&cfg.Classifier.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&cfg.Classifier.BaseURL, "CLASSIFIER_BASE_URL")

	setString(&cfg.Symbols.Source, "SYMBOLS_SOURCE")
	setString(&cfg.Symbols.Driver, "SYMBOLS_DB_DRIVER")
	setString(&cfg.Symbols.DSN, "SYMBOLS_DB_DSN")

	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Addr = host + ":" + envOr("REDIS_PORT", "6379")
	}
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")

	if v := os.Getenv("ASK_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse ASK_PER_MINUTE %q: %w", v, err)
		}
		cfg.Server.AskPerMinute = n
	}
	if v := os.Getenv("REDIS_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse REDIS_CACHE_TTL %q: %w", v, err)
		}
		cfg.Redis.CacheTTL = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
