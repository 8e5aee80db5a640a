package handler

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/rs/zerolog"

	"tickertalk/internal/feature/assistant/domain/entity"
	mdentity "tickertalk/internal/feature/marketdata/domain/entity"
	mdusecase "tickertalk/internal/feature/marketdata/usecase"
	symentity "tickertalk/internal/feature/symbols/domain/entity"
	"tickertalk/internal/shared/figure"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// フォームの送信種別
const (
	formAsk   = "ask"
	formChart = "chart"
)

// SymbolDirectory はセレクタに表示する銘柄ディレクトリです。
type SymbolDirectory interface {
	ListActiveSymbols(ctx context.Context) ([]symentity.Symbol, error)
	Resolve(name string) (symentity.Symbol, error)
}

// ChartFetcher はセレクタから直接チャートを取得します。
type ChartFetcher interface {
	GetChart(ctx context.Context, q mdentity.ChartQuery) (mdentity.ChartQuery, []mdentity.ChartPoint, error)
}

// PageHandler はブラウザ向けのフォームページを処理します。
type PageHandler struct {
	assistant AssistantUsecase
	symbols   SymbolDirectory
	charts    ChartFetcher
}

// NewPageHandler はPageHandlerの新しいインスタンスを生成します。
func NewPageHandler(assistant AssistantUsecase, symbols SymbolDirectory, charts ChartFetcher) *PageHandler {
	return &PageHandler{assistant: assistant, symbols: symbols, charts: charts}
}

// pageView はテンプレートに渡す表示データです。
type pageView struct {
	Symbols   []symentity.Symbol
	Selected  symentity.Symbol
	Question  string
	Regions   []string
	Ranges    []string
	Intervals []string
	Chart     mdentity.ChartQuery

	Title     string
	Message   string
	Failure   string
	DataJSON  string
	ChartJSON template.JS
}

// Show はページを表示します（GET /）。
func (h *PageHandler) Show(c *gin.Context) {
	view, err := h.baseView(c.Request.Context(), "")
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to load symbol directory")
		c.String(http.StatusInternalServerError, "failed to load symbol directory")
		return
	}
	h.render(c, http.StatusOK, view)
}

// Submit はフォーム送信を処理し、結果を含めてページを再表示します（POST /）。
//
// form=ask は質問を分類して結果を表示します。空の質問では何もしません。
// form=chart は銘柄セレクタとチャートセレクタの値で直接チャートを取得します。
func (h *PageHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()
	view, err := h.baseView(ctx, c.PostForm("symbol"))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to load symbol directory")
		c.String(http.StatusInternalServerError, "failed to load symbol directory")
		return
	}

	var status int
	switch c.PostForm("form") {
	case formChart:
		status = h.submitChart(c, &view)
	default:
		status = h.submitAsk(c, &view)
	}
	h.render(c, status, view)
}

func (h *PageHandler) submitAsk(c *gin.Context, view *pageView) int {
	view.Question = c.PostForm("question")

	reply, err := h.assistant.Ask(c.Request.Context(), view.Question)
	if err != nil {
		status, body := askErrorResponse(c.Request.Context(), err)
		if status == http.StatusNoContent {
			return http.StatusOK
		}
		view.Failure = body.Error
		return status
	}
	applyReply(view, reply)
	return http.StatusOK
}

func (h *PageHandler) submitChart(c *gin.Context, view *pageView) int {
	q := mdentity.ChartQuery{
		Symbol:   view.Selected.Code,
		Region:   c.PostForm("region"),
		Range:    c.PostForm("range"),
		Interval: c.PostForm("interval"),
	}
	q, points, err := h.charts.GetChart(c.Request.Context(), q)
	view.Chart = q
	view.Title = "Stock Chart for " + q.Symbol
	if err != nil {
		view.Failure = err.Error()
		if errors.Is(err, mdusecase.ErrInvalidChartQuery) {
			return http.StatusBadRequest
		}
		return http.StatusOK
	}
	setChart(view, figure.CloseChart(q.Symbol, points))
	return http.StatusOK
}

// baseView は銘柄一覧と選択中の銘柄を設定した表示データを作ります。
// 未知の表示名が送られた場合は先頭の銘柄を選択します。
func (h *PageHandler) baseView(ctx context.Context, selected string) (pageView, error) {
	symbols, err := h.symbols.ListActiveSymbols(ctx)
	if err != nil {
		return pageView{}, err
	}
	view := pageView{
		Symbols:   symbols,
		Regions:   mdentity.Regions,
		Ranges:    mdentity.Ranges,
		Intervals: mdentity.Intervals,
		Chart:     mdentity.ChartQuery{}.WithDefaults(),
	}
	if s, err := h.symbols.Resolve(selected); err == nil {
		view.Selected = s
	} else if len(symbols) > 0 {
		view.Selected = symbols[0]
	}
	view.Chart.Symbol = view.Selected.Code
	return view, nil
}

func applyReply(view *pageView, reply entity.Reply) {
	view.Title = reply.Title
	view.Message = reply.Message
	view.Failure = reply.Error
	if reply.Chart != nil {
		setChart(view, *reply.Chart)
	}
	if reply.Data != nil {
		b, err := json.MarshalIndent(reply.Data, "", "  ")
		if err != nil {
			view.Failure = err.Error()
			return
		}
		view.DataJSON = string(b)
	}
}

// setChart は図をJSONとして埋め込みます。json.Marshal は <, >, & をエスケープするため script 内に安全に置けます。
func setChart(view *pageView, fig figure.Figure) {
	b, err := json.Marshal(fig)
	if err != nil {
		view.Failure = err.Error()
		return
	}
	view.ChartJSON = template.JS(b)
}

func (h *PageHandler) render(c *gin.Context, status int, view pageView) {
	c.Render(status, render.HTML{Template: pageTemplate, Name: "page.html", Data: view})
}

// IsSelected はチャートセレクタの初期選択に使います。
func (v pageView) IsSelected(field, value string) bool {
	switch strings.ToLower(field) {
	case "region":
		return v.Chart.Region == value
	case "range":
		return v.Chart.Range == value
	case "interval":
		return v.Chart.Interval == value
	}
	return false
}
