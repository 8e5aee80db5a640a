package di

import (
	"context"
	"fmt"

	"tickertalk/internal/feature/assistant/adapters/gemini"
	"tickertalk/internal/feature/assistant/adapters/openai"
	"tickertalk/internal/feature/assistant/usecase"
	"tickertalk/internal/platform/config"
	infrahttp "tickertalk/internal/platform/http"
)

// NewClassifier creates the intent classifier for the configured provider.
func NewClassifier(ctx context.Context, cfg config.ClassifierConfig) (usecase.Classifier, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewOpenAIClassifier(openai.Config{
			APIKey:     cfg.OpenAIAPIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			HTTPClient: infrahttp.NewHTTPClient(cfg.Timeout),
		}), nil
	case "gemini":
		return gemini.NewGeminiClassifier(ctx, gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		})
	default:
		return nil, fmt.Errorf("unsupported classifier provider %q", cfg.Provider)
	}
}
