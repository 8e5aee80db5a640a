// Package openai はOpenAI Chat Completions APIのtool callingを使った意図分類クライアントを提供します。
package openai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"tickertalk/internal/feature/assistant/domain/entity"
	"tickertalk/internal/feature/assistant/usecase"
)

// DefaultModel はOpenAIのデフォルトモデルです。
const DefaultModel = "gpt-3.5-turbo"

// Config はOpenAIClassifierの設定です。
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	// HTTPClient が nil の場合はSDKのデフォルトクライアントを使用します。
	HTTPClient *http.Client
}

// OpenAIClassifier は質問を1回のチャット補完で分類します。ツール選択はモデルに任せます。
type OpenAIClassifier struct {
	client openai.Client
	model  string
}

var _ usecase.Classifier = (*OpenAIClassifier)(nil)

// NewOpenAIClassifier は設定からクライアントを構築します。opts はテストでのミドルウェア差し込み用です。
func NewOpenAIClassifier(cfg Config, opts ...option.RequestOption) *OpenAIClassifier {
	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(cfg.HTTPClient))
	}
	reqOpts = append(reqOpts, opts...)

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIClassifier{client: openai.NewClient(reqOpts...), model: model}
}

// Classify は質問をユーザーメッセージとして送り、最初のtool callを Decision として返します。
func (c *OpenAIClassifier) Classify(ctx context.Context, question string, actions []entity.ActionSpec) (entity.Decision, error) {
	tools := make([]openai.ChatCompletionToolUnionParam, 0, len(actions))
	for _, a := range actions {
		tools = append(tools, openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        string(a.Name),
			Description: openai.String(a.Description),
			Parameters:  openai.FunctionParameters(a.Parameters),
		}))
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:             openai.ChatModel(c.model),
		Messages:          []openai.ChatCompletionMessageParamUnion{openai.UserMessage(question)},
		Tools:             tools,
		ToolChoice:        openai.ChatCompletionToolChoiceOptionUnionParam{OfAuto: openai.String("auto")},
		ParallelToolCalls: openai.Bool(false),
	})
	if err != nil {
		return entity.Decision{}, fmt.Errorf("openai chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return entity.Decision{}, nil
	}
	call := resp.Choices[0].Message.ToolCalls[0]
	return entity.Decision{
		Action:    entity.ActionName(call.Function.Name),
		Arguments: []byte(call.Function.Arguments),
	}, nil
}
