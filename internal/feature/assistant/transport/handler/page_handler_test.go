package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickertalk/internal/feature/assistant/domain/entity"
	"tickertalk/internal/feature/assistant/usecase"
	mdentity "tickertalk/internal/feature/marketdata/domain/entity"
	mdusecase "tickertalk/internal/feature/marketdata/usecase"
	symentity "tickertalk/internal/feature/symbols/domain/entity"
	symusecase "tickertalk/internal/feature/symbols/usecase"
	"tickertalk/internal/shared/figure"
)

// mockSymbolDirectory はSymbolDirectoryインターフェースのモック実装です。
type mockSymbolDirectory struct {
	symbols []symentity.Symbol
	err     error
}

func (m *mockSymbolDirectory) ListActiveSymbols(ctx context.Context) ([]symentity.Symbol, error) {
	return m.symbols, m.err
}

func (m *mockSymbolDirectory) Resolve(name string) (symentity.Symbol, error) {
	for _, s := range m.symbols {
		if s.Name == name {
			return s, nil
		}
	}
	return symentity.Symbol{}, symusecase.ErrSymbolNotFound
}

// mockChartFetcher はChartFetcherインターフェースのモック実装です。
type mockChartFetcher struct {
	GetChartFunc func(ctx context.Context, q mdentity.ChartQuery) (mdentity.ChartQuery, []mdentity.ChartPoint, error)
	LastQuery    mdentity.ChartQuery
}

func (m *mockChartFetcher) GetChart(ctx context.Context, q mdentity.ChartQuery) (mdentity.ChartQuery, []mdentity.ChartPoint, error) {
	m.LastQuery = q
	if m.GetChartFunc != nil {
		return m.GetChartFunc(ctx, q)
	}
	return q.WithDefaults(), nil, nil
}

var testSymbols = []symentity.Symbol{
	{Name: "Microsoft", Code: "MSFT"},
	{Name: "Apple", Code: "AAPL"},
	{Name: "Johnson & Johnson", Code: "JNJ"},
}

func newPageRouter(a AssistantUsecase, s SymbolDirectory, c ChartFetcher) *gin.Engine {
	h := NewPageHandler(a, s, c)
	r := gin.New()
	r.GET("/", h.Show)
	r.POST("/", h.Submit)
	return r
}

func postForm(r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestPageHandler_Show は初期表示でサイドバー、セレクタ、警告が描画されることを検証します。
func TestPageHandler_Show(t *testing.T) {
	t.Parallel()

	r := newPageRouter(&mockAssistantUsecase{}, &mockSymbolDirectory{symbols: testSymbols}, &mockChartFetcher{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	assert.Contains(t, body, "TickerTalk: Real-Time Stock Insights")
	assert.Contains(t, body, "How to Ask Questions:")
	assert.Contains(t, body, "US, IN, JP, APAC, EU")
	assert.Contains(t, body, "1m, 5m, 15m, 30m, 1h, 1d, 1wk, 1mo")
	assert.Contains(t, body, "Note: Do not forget to include a stock symbol (e.g., AAPL) in your question.")
	// 先頭の銘柄がデフォルトで選択される
	assert.Contains(t, body, "The selected stock symbol for Microsoft is <strong>MSFT</strong>")
	// 表示名はHTMLエスケープされる
	assert.Contains(t, body, `<option value="Johnson &amp; Johnson">Johnson &amp; Johnson</option>`)
	assert.NotContains(t, body, `id="chart"`)
}

// TestPageHandler_Show_DirectoryError は銘柄ディレクトリの読み込み失敗で500を返すことを検証します。
func TestPageHandler_Show_DirectoryError(t *testing.T) {
	t.Parallel()

	r := newPageRouter(&mockAssistantUsecase{}, &mockSymbolDirectory{err: errors.New("db down")}, &mockChartFetcher{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// TestPageHandler_SubmitAsk は質問フォーム送信の各種シナリオを検証します。
func TestPageHandler_SubmitAsk(t *testing.T) {
	t.Parallel()

	chart := figure.CloseChart("AAPL", []mdentity.ChartPoint{{Time: time.Unix(1700000000, 0), Close: nil}})

	tests := []struct {
		name           string
		question       string
		askFunc        func(ctx context.Context, question string) (entity.Reply, error)
		expectedStatus int
		contains       []string
		notContains    []string
	}{
		{
			name:     "structure dump",
			question: "Give me latest stock price for AAPL",
			askFunc: func(ctx context.Context, question string) (entity.Reply, error) {
				return entity.Reply{Action: entity.ActionQuote, Title: "Stock Data", Data: map[string]any{"symbol": "AAPL", "price": 189.5}}, nil
			},
			expectedStatus: http.StatusOK,
			contains:       []string{"<h2>Stock Data</h2>", "<pre>{\n  &#34;price&#34;: 189.5,\n  &#34;symbol&#34;: &#34;AAPL&#34;\n}</pre>"},
		},
		{
			name:     "chart reply embeds the figure",
			question: "Show me the chart for AAPL",
			askFunc: func(ctx context.Context, question string) (entity.Reply, error) {
				return entity.Reply{Action: entity.ActionChart, Title: "Stock chart for AAPL", Chart: &chart}, nil
			},
			expectedStatus: http.StatusOK,
			contains:       []string{`id="chart"`, `"Stock Chart for AAPL"`, "Plotly.newPlot"},
		},
		{
			name:     "gateway failure banner",
			question: "profile of AAPL",
			askFunc: func(ctx context.Context, question string) (entity.Reply, error) {
				return entity.Reply{Action: entity.ActionProfile, Title: "Stock Profile", Error: "connection refused"}, nil
			},
			expectedStatus: http.StatusOK,
			contains:       []string{`<div class="failure">connection refused</div>`},
		},
		{
			name:           "prompt message",
			question:       "hello",
			expectedStatus: http.StatusOK,
			contains:       []string{"<p>Please ask a question to proceed.</p>"},
		},
		{
			name:           "blank question renders nothing",
			question:       "  ",
			expectedStatus: http.StatusOK,
			notContains:    []string{`class="failure"`, "Please ask a question to proceed.", "<pre>"},
		},
		{
			name:     "classifier failure banner",
			question: "price of AAPL",
			askFunc: func(ctx context.Context, question string) (entity.Reply, error) {
				return entity.Reply{}, &usecase.ClassifierError{Err: errors.New("timeout")}
			},
			expectedStatus: http.StatusBadGateway,
			contains:       []string{"the language model could not be reached, please try again"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assistant := &mockAssistantUsecase{AskFunc: tt.askFunc}
			r := newPageRouter(assistant, &mockSymbolDirectory{symbols: testSymbols}, &mockChartFetcher{})

			w := postForm(r, url.Values{"form": {"ask"}, "symbol": {"Apple"}, "question": {tt.question}})

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.question, assistant.LastQuestion)
			body := w.Body.String()
			assert.Contains(t, body, "The selected stock symbol for Apple is <strong>AAPL</strong>")
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, body, s)
			}
		})
	}
}

// TestPageHandler_SubmitChart はチャートセレクタのフォーム送信を検証します。
func TestPageHandler_SubmitChart(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		charts := &mockChartFetcher{
			GetChartFunc: func(ctx context.Context, q mdentity.ChartQuery) (mdentity.ChartQuery, []mdentity.ChartPoint, error) {
				return q, []mdentity.ChartPoint{{Time: time.Unix(1700000000, 0), Close: nil}}, nil
			},
		}
		assistant := &mockAssistantUsecase{}
		r := newPageRouter(assistant, &mockSymbolDirectory{symbols: testSymbols}, charts)

		w := postForm(r, url.Values{"form": {"chart"}, "symbol": {"Apple"}, "region": {"JP"}, "range": {"5d"}, "interval": {"1h"}})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, mdentity.ChartQuery{Symbol: "AAPL", Region: "JP", Range: "5d", Interval: "1h"}, charts.LastQuery)
		assert.Zero(t, assistant.Calls, "chart form never calls the classifier")

		body := w.Body.String()
		assert.Contains(t, body, "<h2>Stock Chart for AAPL</h2>")
		assert.Contains(t, body, `id="chart"`)
		assert.Contains(t, body, "<option selected>JP</option>")
		assert.Contains(t, body, "<option selected>5d</option>")
		assert.Contains(t, body, "<option selected>1h</option>")
	})

	t.Run("invalid selector", func(t *testing.T) {
		t.Parallel()

		charts := &mockChartFetcher{
			GetChartFunc: func(ctx context.Context, q mdentity.ChartQuery) (mdentity.ChartQuery, []mdentity.ChartPoint, error) {
				return q, nil, mdusecase.ErrInvalidChartQuery
			},
		}
		r := newPageRouter(&mockAssistantUsecase{}, &mockSymbolDirectory{symbols: testSymbols}, charts)

		w := postForm(r, url.Values{"form": {"chart"}, "symbol": {"Apple"}, "region": {"MARS"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `<div class="failure">invalid chart query</div>`)
	})

	t.Run("no data", func(t *testing.T) {
		t.Parallel()

		charts := &mockChartFetcher{
			GetChartFunc: func(ctx context.Context, q mdentity.ChartQuery) (mdentity.ChartQuery, []mdentity.ChartPoint, error) {
				return q.WithDefaults(), nil, mdentity.NewNoDataError("Chart data is not available.")
			},
		}
		r := newPageRouter(&mockAssistantUsecase{}, &mockSymbolDirectory{symbols: testSymbols}, charts)

		w := postForm(r, url.Values{"form": {"chart"}, "symbol": {"Unknown Corp"}})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "MSFT", charts.LastQuery.Symbol, "unknown display names fall back to the first symbol")
		assert.Contains(t, w.Body.String(), "Chart data is not available.")
		assert.NotContains(t, w.Body.String(), `id="chart"`)
	})
}
