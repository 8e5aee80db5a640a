// Package rapidapi は RapidAPI 上の Yahoo Finance プロバイダ2種のクライアントを提供します。
package rapidapi

import (
	"time"

	"tickertalk/internal/platform/config"
)

// Provider は1つの RapidAPI プロバイダへの接続情報です。
type Provider struct {
	APIKey  string // x-rapidapi-key ヘッダに設定するキー
	BaseURL string // 例: "https://yahoo-finance15.p.rapidapi.com"
	Host    string // x-rapidapi-host ヘッダに設定するホスト名
}

// Config は quote/news/profile 用と chart/analyst 用の2つのプロバイダ設定を保持します。
type Config struct {
	Quote   Provider
	Chart   Provider
	Timeout time.Duration
}

// LoadConfig はアプリケーション設定から RapidAPI の設定を組み立てます。
func LoadConfig(c config.RapidAPIConfig) Config {
	return Config{
		Quote: Provider{
			APIKey:  c.QuoteKey,
			BaseURL: c.QuoteBaseURL,
			Host:    c.QuoteHost,
		},
		Chart: Provider{
			APIKey:  c.ChartKey,
			BaseURL: c.ChartBaseURL,
			Host:    c.ChartHost,
		},
		Timeout: c.Timeout,
	}
}
