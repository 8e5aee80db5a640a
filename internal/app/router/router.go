// Package router はginのルーティングを定義します。
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	assistanthandler "tickertalk/internal/feature/assistant/transport/handler"
	marketdatahandler "tickertalk/internal/feature/marketdata/transport/handler"
	symbolshandler "tickertalk/internal/feature/symbols/transport/handler"
	platformhandler "tickertalk/internal/platform/http/handler"
	"tickertalk/internal/platform/http/middleware"
)

// Handlers はルーターに登録するハンドラー一式です。
type Handlers struct {
	Page   *assistanthandler.PageHandler
	Ask    *assistanthandler.AskHandler
	Symbol *symbolshandler.SymbolHandler
	Chart  *marketdatahandler.ChartHandler
	Health *platformhandler.HealthHandler
}

// Options はミドルウェアとメトリクスの設定です。
type Options struct {
	// AskLimiter は質問送信（POST /, POST /v1/ask）の頻度制限です。nil で無制限。
	AskLimiter middleware.Limiter
	Recorder   middleware.HTTPRecorder
	// Gatherer は /metrics で公開するレジストリです。nil の場合 /metrics は登録しません。
	Gatherer prometheus.Gatherer
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(opts.Recorder))

	ask := middleware.RateLimit(opts.AskLimiter)

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	// ブラウザ向けページ
	r.GET("/", h.Page.Show)
	r.POST("/", ask, h.Page.Submit)

	v1 := r.Group("/v1")
	{
		v1.POST("/ask", ask, h.Ask.Ask)
		v1.GET("/symbols", h.Symbol.List)
		v1.GET("/symbols/resolve", h.Symbol.Resolve)
		v1.GET("/stocks/:symbol/chart", h.Chart.GetChart)
	}

	return r
}
