// Package usecase は株価データ取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"encoding/json"

	"tickertalk/internal/feature/marketdata/domain/entity"
)

// ProfileModule はプロフィール取得で指定するモジュールです。
const ProfileModule = "asset-profile"

// Gateway は外部の株価データAPIへの読み取りレイヤーを抽象化します。
// 失敗はすべて *entity.FetchError として返されます。
type Gateway interface {
	// Quote は銘柄の相場データをレスポンスの body のまま返します。
	Quote(ctx context.Context, ticker string) (json.RawMessage, error)
	// News は銘柄のニュースを3フィールドに射影して返します。
	News(ctx context.Context, ticker string) ([]entity.NewsItem, error)
	// Profile は指定モジュールのプロフィールを body のまま返します。
	Profile(ctx context.Context, ticker, module string) (json.RawMessage, error)
	// Chart はチャートのタイムスタンプと終値を返します。
	Chart(ctx context.Context, q entity.ChartQuery) (entity.ChartData, error)
	// Analyst はアナリストレポートを6フィールドに射影して返します。
	Analyst(ctx context.Context, symbol, region string) ([]entity.AnalystReport, error)
}
