package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type GeminiModel struct {
	client      *genai.Client
	model       string
	temperature float32
	logger      *zap.Logger
}

func NewGeminiModel(ctx context.Context, apiKey, model string, temperature float32, logger *zap.Logger) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiModel{
		client:      client,
		model:       model,
		temperature: temperature,
		logger:      logger.Named("gemini"),
	}, nil
}

func (g *GeminiModel) GenerateJSON(ctx context.Context, prompt string, name string, schema jsonschema.Definition) ([]byte, error) {
	m := g.client.GenerativeModel(g.model)
	m.ResponseMIMEType = "application/json"
	m.ResponseSchema = toGenaiSchema(schema)
	m.SetTemperature(g.temperature)

	g.logger.Debug("generating content", zap.String("schema", name), zap.String("model", g.model))

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		upstream := &UpstreamCallError{Provider: ProviderGemini, Message: err.Error(), Err: err}
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			upstream.HTTPStatus = apiErr.Code
			if apiErr.Message != "" {
				upstream.Message = apiErr.Message
			}
		}
		return nil, upstream
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		msg := "Gemini returned no content"
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			msg = fmt.Sprintf("Gemini blocked the prompt: %s", resp.PromptFeedback.BlockReason)
		}
		return nil, &UpstreamCallError{Provider: ProviderGemini, Message: msg}
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	return []byte(b.String()), nil
}

func (g *GeminiModel) Close() error {
	return g.client.Close()
}
