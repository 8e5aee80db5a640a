package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"tickertalk/internal/feature/assistant/catalog"
	"tickertalk/internal/feature/assistant/domain/entity"
	"tickertalk/internal/feature/assistant/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockAssistantUsecase はAssistantUsecaseインターフェースのモック実装です。
type mockAssistantUsecase struct {
	AskFunc      func(ctx context.Context, question string) (entity.Reply, error)
	LastQuestion string
	Calls        int
}

func (m *mockAssistantUsecase) Ask(ctx context.Context, question string) (entity.Reply, error) {
	m.Calls++
	m.LastQuestion = question
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question)
	}
	if strings.TrimSpace(question) == "" {
		return entity.Reply{}, usecase.ErrBlankQuestion
	}
	return entity.Reply{Message: usecase.PromptMessage}, nil
}

// TestNewAskHandler はNewAskHandlerコンストラクタが正しくインスタンスを生成することを検証します。
func TestNewAskHandler(t *testing.T) {
	t.Parallel()

	h := NewAskHandler(&mockAssistantUsecase{})
	assert.NotNil(t, h)
	assert.NotNil(t, h.uc)
}

// TestAskHandler_Ask はAskハンドラーの各種シナリオをテーブル駆動テストで検証します。
func TestAskHandler_Ask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		body             string
		askFunc          func(ctx context.Context, question string) (entity.Reply, error)
		expectedStatus   int
		expectedBody     string
		expectedQuestion string
	}{
		{
			name: "success: news reply",
			body: `{"question":"Give me latest news for AAPL"}`,
			askFunc: func(ctx context.Context, question string) (entity.Reply, error) {
				return entity.Reply{
					Action: entity.ActionNews,
					Title:  "Latest News",
					Data:   []map[string]string{{"title": "Apple ships"}},
				}, nil
			},
			expectedStatus:   http.StatusOK,
			expectedBody:     `{"action":"get_stock_news","title":"Latest News","data":[{"title":"Apple ships"}]}`,
			expectedQuestion: "Give me latest news for AAPL",
		},
		{
			name: "success: gateway failure is part of the reply",
			body: `{"question":"price of ZZZZ"}`,
			askFunc: func(ctx context.Context, question string) (entity.Reply, error) {
				return entity.Reply{Action: entity.ActionQuote, Title: "Stock Data", Error: "No data found for the provided ticker."}, nil
			},
			expectedStatus:   http.StatusOK,
			expectedBody:     `{"action":"get_stock_data","title":"Stock Data","error":"No data found for the provided ticker."}`,
			expectedQuestion: "price of ZZZZ",
		},
		{
			name:             "success: unknown action prompts again",
			body:             `{"question":"hello"}`,
			expectedStatus:   http.StatusOK,
			expectedBody:     `{"message":"Please ask a question to proceed."}`,
			expectedQuestion: "hello",
		},
		{
			name:             "blank question is ignored",
			body:             `{"question":"   "}`,
			expectedStatus:   http.StatusNoContent,
			expectedQuestion: "   ",
		},
		{
			name: "classifier failure",
			body: `{"question":"price of AAPL"}`,
			askFunc: func(ctx context.Context, question string) (entity.Reply, error) {
				return entity.Reply{}, &usecase.ClassifierError{Err: errors.New("401 Unauthorized")}
			},
			expectedStatus:   http.StatusBadGateway,
			expectedBody:     `{"error":"the language model could not be reached, please try again"}`,
			expectedQuestion: "price of AAPL",
		},
		{
			name: "malformed arguments",
			body: `{"question":"chart for AAPL"}`,
			askFunc: func(ctx context.Context, question string) (entity.Reply, error) {
				return entity.Reply{}, &catalog.ArgumentError{Action: entity.ActionChart, Reason: "region is required"}
			},
			expectedStatus:   http.StatusBadGateway,
			expectedBody:     `{"error":"invalid arguments for get_stock_chart: region is required","action":"get_stock_chart"}`,
			expectedQuestion: "chart for AAPL",
		},
		{
			name: "unexpected error",
			body: `{"question":"price of AAPL"}`,
			askFunc: func(ctx context.Context, question string) (entity.Reply, error) {
				return entity.Reply{}, errors.New("catalog unavailable")
			},
			expectedStatus:   http.StatusInternalServerError,
			expectedBody:     `{"error":"internal server error"}`,
			expectedQuestion: "price of AAPL",
		},
		{
			name:           "invalid JSON body",
			body:           `{"question":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := &mockAssistantUsecase{AskFunc: tt.askFunc}
			r := gin.New()
			r.POST("/v1/ask", NewAskHandler(uc).Ask)

			req := httptest.NewRequest(http.MethodPost, "/v1/ask", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			} else {
				assert.Empty(t, w.Body.String())
			}
			assert.Equal(t, tt.expectedQuestion, uc.LastQuestion)
		})
	}
}
