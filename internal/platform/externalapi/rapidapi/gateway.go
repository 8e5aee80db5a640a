package rapidapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"tickertalk/internal/feature/marketdata/domain/entity"
	"tickertalk/internal/feature/marketdata/usecase"
	"tickertalk/internal/platform/externalapi/rapidapi/dto"
)

// 操作ごとの no_data メッセージ
const (
	msgNoQuote   = "No data found for the provided ticker."
	msgNoNews    = "No news data found for the provided ticker."
	msgNoProfile = "No profile data found for the provided ticker."
	msgNoChart   = "Chart data is not available."
	msgNoAnalyst = "No analyst reports found for the provided symbol."
)

const maxBodyBytes = 8 << 20

// Recorder はゲートウェイ呼び出しの結果を記録します。
type Recorder interface {
	RecordGateway(operation, outcome string, elapsed time.Duration)
}

// Gateway は RapidAPI の Yahoo Finance エンドポイントから株価データを取得する usecase.Gateway 実装です。
// 各操作は1回の GET のみを行い、リトライはしません。
type Gateway struct {
	cfg      Config
	client   *http.Client
	recorder Recorder
}

// GatewayがGatewayインターフェースを実装していることをコンパイル時に検証します。
var _ usecase.Gateway = (*Gateway)(nil)

// NewGateway は指定された設定とHTTPクライアントで Gateway を生成します。recorder は nil でも構いません。
func NewGateway(cfg Config, client *http.Client, recorder Recorder) *Gateway {
	return &Gateway{cfg: cfg, client: client, recorder: recorder}
}

// Quote は /api/v1/markets/quote から相場データを取得し、body をそのまま返します。
func (g *Gateway) Quote(ctx context.Context, ticker string) (_ json.RawMessage, err error) {
	defer g.observe("quote", time.Now(), &err)

	q := url.Values{}
	q.Set("ticker", ticker)
	q.Set("type", "STOCKS")

	env, err := g.getEnvelope(ctx, "quote", g.cfg.Quote, "/api/v1/markets/quote", q)
	if err != nil {
		return nil, err
	}
	body, ok := env["body"]
	if !ok {
		return nil, entity.NewNoDataError(msgNoQuote)
	}
	return body, nil
}

// News は /api/v1/markets/news からニュースを取得し、各項目を description/title/pubDate に射影します。
func (g *Gateway) News(ctx context.Context, ticker string) (_ []entity.NewsItem, err error) {
	defer g.observe("news", time.Now(), &err)

	q := url.Values{}
	q.Set("ticker", ticker)
	q.Set("type", "ALL")

	env, err := g.getEnvelope(ctx, "news", g.cfg.Quote, "/api/v1/markets/news", q)
	if err != nil {
		return nil, err
	}
	var raw []map[string]any
	body, ok := env["body"]
	if !ok || json.Unmarshal(body, &raw) != nil || raw == nil {
		return nil, entity.NewNoDataError(msgNoNews)
	}
	return projectNews(raw), nil
}

// Profile は /api/v1/markets/stock/modules から指定モジュールを取得します。
// body が存在しない、null、または空オブジェクトの場合は no_data です。
func (g *Gateway) Profile(ctx context.Context, ticker, module string) (_ json.RawMessage, err error) {
	defer g.observe("profile", time.Now(), &err)

	q := url.Values{}
	q.Set("ticker", ticker)
	q.Set("module", module)

	env, err := g.getEnvelope(ctx, "profile", g.cfg.Quote, "/api/v1/markets/stock/modules", q)
	if err != nil {
		return nil, err
	}
	body, ok := env["body"]
	if !ok || isEmptyJSON(body) {
		return nil, entity.NewNoDataError(msgNoProfile)
	}
	return body, nil
}

// Chart は /api/stock/get-chart から先頭結果のタイムスタンプと終値を取得します。
func (g *Gateway) Chart(ctx context.Context, cq entity.ChartQuery) (_ entity.ChartData, err error) {
	defer g.observe("chart", time.Now(), &err)

	q := url.Values{}
	q.Set("region", cq.Region)
	q.Set("range", cq.Range)
	q.Set("symbol", cq.Symbol)
	q.Set("interval", cq.Interval)

	raw, err := g.get(ctx, "chart", g.cfg.Chart, "/api/stock/get-chart", q)
	if err != nil {
		return entity.ChartData{}, err
	}
	var res dto.ChartResponse
	if err := json.Unmarshal(raw, &res); err != nil || res.Chart == nil || len(res.Chart.Result) == 0 {
		return entity.ChartData{}, entity.NewNoDataError(msgNoChart)
	}

	first := res.Chart.Result[0]
	data := entity.ChartData{Timestamps: first.Timestamp}
	if len(first.Indicators.Quote) > 0 {
		data.Closes = first.Indicators.Quote[0].Close
	}
	return data, nil
}

// Analyst は /api/stock/get-what-analysts-are-saying からアナリストレポートを取得し、6フィールドに射影します。
func (g *Gateway) Analyst(ctx context.Context, symbol, region string) (_ []entity.AnalystReport, err error) {
	defer g.observe("analyst", time.Now(), &err)

	q := url.Values{}
	q.Set("region", region)
	q.Set("symbol", symbol)

	raw, err := g.get(ctx, "analyst", g.cfg.Chart, "/api/stock/get-what-analysts-are-saying", q)
	if err != nil {
		return nil, err
	}
	var res dto.AnalystResponse
	if err := json.Unmarshal(raw, &res); err != nil || len(res.Result) == 0 || res.Result[0].Hits == nil {
		return nil, entity.NewNoDataError(msgNoAnalyst)
	}
	return projectAnalyst(res.Result[0].Hits), nil
}

// getEnvelope はレスポンスをトップレベルのキーごとに分解します。
// JSONとして正しいがオブジェクトでない場合は空のエンベロープになります。
func (g *Gateway) getEnvelope(ctx context.Context, op string, p Provider, path string, q url.Values) (map[string]json.RawMessage, error) {
	raw, err := g.get(ctx, op, p, path, q)
	if err != nil {
		return nil, err
	}
	env := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &env); err != nil {
		return map[string]json.RawMessage{}, nil
	}
	return env, nil
}

// get は1回の GET を行い、JSONとして正しいレスポンスボディを返します。
// ネットワークエラー、2xx以外のステータス、JSONでないボディは transport 失敗になります。
func (g *Gateway) get(ctx context.Context, op string, p Provider, path string, q url.Values) (json.RawMessage, error) {
	start := time.Now()

	// URLを生成
	u := fmt.Sprintf("%s%s?%s", p.BaseURL, path, q.Encode())

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, g.transportFailure(op, start, err)
	}
	req.Header.Set("x-rapidapi-key", p.APIKey)
	req.Header.Set("x-rapidapi-host", p.Host)
	req.Header.Set("Accept", "application/json")

	// リクエストを実行
	res, err := g.client.Do(req)
	if err != nil {
		return nil, g.transportFailure(op, start, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close response body")
		}
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxBodyBytes))
		return nil, g.transportFailure(op, start, fmt.Errorf("%s http %d: %s", p.Host, res.StatusCode, http.StatusText(res.StatusCode)))
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, g.transportFailure(op, start, err)
	}
	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return nil, g.transportFailure(op, start, errors.New("invalid JSON in response body"))
	}

	log.Debug().Str("operation", op).Str("host", p.Host).Dur("elapsed", time.Since(start)).Msg("rapidapi request completed")
	return raw, nil
}

func (g *Gateway) transportFailure(op string, start time.Time, err error) error {
	log.Warn().Err(err).Str("operation", op).Dur("elapsed", time.Since(start)).Msg("rapidapi request failed")
	return entity.NewTransportError(err)
}

// observe は操作の結果（ok / transport / no_data）と所要時間を記録します。
func (g *Gateway) observe(op string, start time.Time, err *error) {
	if g.recorder == nil {
		return
	}
	outcome := "ok"
	if fe, ok := entity.AsFetchError(*err); ok {
		outcome = string(fe.Kind)
	}
	g.recorder.RecordGateway(op, outcome, time.Since(start))
}

// isEmptyJSON は値が偽とみなせるかどうかを返します。
// null, "", false, 0, [], {} のいずれかなら true です。
func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return true
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}
