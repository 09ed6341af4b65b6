package ai_fx

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"wanderwise/internal/config"
	"wanderwise/pkg/llm"
)

var Module = fx.Provide(
	ProvideModel)

// ProvideModel builds the one model client shared by every request.
func ProvideModel(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (llm.Model, error) {
	ai := cfg.AI
	logger.Info("initializing AI model", zap.String("provider", ai.Provider))

	var (
		model llm.Model
		err   error
	)
	switch strings.ToLower(ai.Provider) {
	case llm.ProviderGemini:
		model, err = llm.NewGeminiModel(context.Background(), ai.GeminiAPIKey, ai.GeminiModel, ai.Temperature, logger)
	case llm.ProviderOpenAI:
		model, err = llm.NewOpenAIModel(ai.OpenAIAPIKey, ai.OpenAIURL, ai.OpenAIModel, ai.Temperature, logger)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s. Use 'openai' or 'gemini'", ai.Provider)
	}
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return model.Close()
		},
	})
	return model, nil
}
