package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/openai/openai-go/v2/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickertalk/internal/feature/assistant/domain/entity"
)

type m = map[string]any

var testActions = []entity.ActionSpec{
	{
		Name:        entity.ActionNews,
		Description: "Fetch the latest news about a stock.",
		Parameters: m{
			"type":                 "object",
			"properties":           m{"stock_name": m{"type": "string"}},
			"required":             []any{"stock_name"},
			"additionalProperties": false,
		},
	},
	{
		Name:        entity.ActionChart,
		Description: "Display a stock chart.",
		Parameters:  m{"type": "object", "properties": m{"stock_name": m{"type": "string"}}},
	},
}

// newFakeClassifier は固定レスポンスを返すミドルウェアを差し込み、送信されたリクエストボディを captured に保存します。
func newFakeClassifier(t *testing.T, status int, resp any, captured *m) *OpenAIClassifier {
	t.Helper()

	body, err := json.Marshal(resp)
	require.NoError(t, err)

	return NewOpenAIClassifier(
		Config{APIKey: "sk-test", BaseURL: "https://fake/"},
		option.WithMaxRetries(0),
		option.WithMiddleware(func(req *http.Request, _ option.MiddlewareNext) (*http.Response, error) {
			if captured != nil && req.Body != nil {
				raw, err := io.ReadAll(req.Body)
				require.NoError(t, err)
				require.NoError(t, json.Unmarshal(raw, captured))
			}
			return &http.Response{
				StatusCode:    status,
				Body:          io.NopCloser(bytes.NewReader(body)),
				ContentLength: int64(len(body)),
				Header:        http.Header{"Content-Type": []string{"application/json"}},
				Request:       req,
			}, nil
		}),
	)
}

func completion(message m) m {
	return m{
		"id":      "chatcmpl-1",
		"created": 0,
		"model":   DefaultModel,
		"object":  "chat.completion",
		"choices": []m{{
			"index":         0,
			"finish_reason": "tool_calls",
			"message":       message,
		}},
	}
}

func TestNewOpenAIClassifier_DefaultModel(t *testing.T) {
	t.Parallel()

	c := NewOpenAIClassifier(Config{APIKey: "k"})
	assert.Equal(t, DefaultModel, c.model)

	c = NewOpenAIClassifier(Config{APIKey: "k", Model: "gpt-4o-mini"})
	assert.Equal(t, "gpt-4o-mini", c.model)
}

func TestOpenAIClassifier_Classify_ToolCall(t *testing.T) {
	t.Parallel()

	var sent m
	c := newFakeClassifier(t, http.StatusOK, completion(m{
		"role":    "assistant",
		"content": nil,
		"tool_calls": []m{{
			"id":   "call_1",
			"type": "function",
			"function": m{
				"name":      "get_stock_news",
				"arguments": `{"stock_name":"TSLA"}`,
			},
		}},
	}), &sent)

	d, err := c.Classify(context.Background(), "Tell me latest news for TSLA", testActions)
	require.NoError(t, err)

	assert.Equal(t, entity.ActionNews, d.Action)
	assert.JSONEq(t, `{"stock_name":"TSLA"}`, string(d.Arguments))

	assert.Equal(t, DefaultModel, sent["model"])
	assert.Equal(t, "auto", sent["tool_choice"])
	assert.Equal(t, false, sent["parallel_tool_calls"])

	msgs := sent["messages"].([]any)
	require.Len(t, msgs, 1)
	assert.Equal(t, "user", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "Tell me latest news for TSLA", msgs[0].(map[string]any)["content"])

	tools := sent["tools"].([]any)
	require.Len(t, tools, 2)
	fn := tools[0].(map[string]any)["function"].(map[string]any)
	assert.Equal(t, "get_stock_news", fn["name"])
	assert.Equal(t, "Fetch the latest news about a stock.", fn["description"])
}

func TestOpenAIClassifier_Classify_PlainText(t *testing.T) {
	t.Parallel()

	c := newFakeClassifier(t, http.StatusOK, completion(m{
		"role":    "assistant",
		"content": "Hello! How can I help?",
	}), nil)

	d, err := c.Classify(context.Background(), "hello", testActions)
	require.NoError(t, err)
	assert.Equal(t, entity.Decision{}, d)
}

func TestOpenAIClassifier_Classify_NoChoices(t *testing.T) {
	t.Parallel()

	c := newFakeClassifier(t, http.StatusOK, m{
		"id":      "chatcmpl-1",
		"created": 0,
		"model":   DefaultModel,
		"object":  "chat.completion",
		"choices": []m{},
	}, nil)

	d, err := c.Classify(context.Background(), "hello", testActions)
	require.NoError(t, err)
	assert.Empty(t, d.Action)
}

func TestOpenAIClassifier_Classify_APIError(t *testing.T) {
	t.Parallel()

	c := newFakeClassifier(t, http.StatusUnauthorized, m{
		"error": m{"message": "Incorrect API key provided", "type": "invalid_request_error"},
	}, nil)

	_, err := c.Classify(context.Background(), "price of AAPL", testActions)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai chat completion failed")
}
