// Package gemini はGoogle Gemini APIの関数呼び出しを使った意図分類クライアントを提供します。
package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"tickertalk/internal/feature/assistant/domain/entity"
	"tickertalk/internal/feature/assistant/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// Config はGeminiClassifierの設定です。
type Config struct {
	APIKey string
	Model  string
	// BaseURL はテストやプロキシ用にエンドポイントを差し替える場合に指定します。
	BaseURL string
}

// GeminiClassifier はGemini APIに質問とアクション一覧を渡し、選ばれた関数呼び出しを返します。
type GeminiClassifier struct {
	client *genai.Client
	model  string
}

// GeminiClassifierがClassifierを実装していることをコンパイル時に検証します。
var _ usecase.Classifier = (*GeminiClassifier)(nil)

// NewGeminiClassifier はGeminiClassifierの新しいインスタンスを生成します。
// APIKey が空の場合は GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION によるADCを使用します。
func NewGeminiClassifier(ctx context.Context, cfg Config) (*GeminiClassifier, error) {
	cc := &genai.ClientConfig{}
	if cfg.APIKey != "" {
		cc.APIKey = cfg.APIKey
		cc.Backend = genai.BackendGeminiAPI
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &GeminiClassifier{client: client, model: model}, nil
}

// Classify は質問を送信し、最初の関数呼び出しを Decision として返します。
// 関数呼び出しが無い応答は空の Decision になります。
func (g *GeminiClassifier) Classify(ctx context.Context, question string, actions []entity.ActionSpec) (entity.Decision, error) {
	decls := make([]*genai.FunctionDeclaration, 0, len(actions))
	for _, a := range actions {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:                 string(a.Name),
			Description:          a.Description,
			ParametersJsonSchema: a.Parameters,
		})
	}

	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{FunctionDeclarations: decls}},
		ToolConfig: &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: genai.FunctionCallingConfigModeAuto},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(question), cfg)
	if err != nil {
		return entity.Decision{}, fmt.Errorf("gemini API request failed: %w", err)
	}

	calls := resp.FunctionCalls()
	if len(calls) == 0 {
		return entity.Decision{}, nil
	}
	args, err := json.Marshal(calls[0].Args)
	if err != nil {
		return entity.Decision{}, fmt.Errorf("encode gemini function args: %w", err)
	}
	return entity.Decision{Action: entity.ActionName(calls[0].Name), Arguments: args}, nil
}
