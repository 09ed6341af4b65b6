package llm

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap"
)

type OpenAIModel struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      *zap.Logger
}

func NewOpenAIModel(apiKey, baseURL, model string, temperature float32, logger *zap.Logger) (*OpenAIModel, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	if model == "" {
		model = openai.GPT4oMini
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIModel{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
		logger:      logger.Named("openai"),
	}, nil
}

func (o *OpenAIModel) GenerateJSON(ctx context.Context, prompt string, name string, schema jsonschema.Definition) ([]byte, error) {
	o.logger.Debug("creating chat completion", zap.String("schema", name), zap.String("model", o.model))

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: o.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   name,
				Schema: &schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		upstream := &UpstreamCallError{Provider: ProviderOpenAI, Message: err.Error(), Err: err}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			upstream.HTTPStatus = apiErr.HTTPStatusCode
			upstream.Message = apiErr.Message
		}
		return nil, upstream
	}

	if len(resp.Choices) == 0 {
		return nil, &UpstreamCallError{Provider: ProviderOpenAI, Message: "OpenAI returned no choices"}
	}
	if refusal := resp.Choices[0].Message.Refusal; refusal != "" {
		return nil, &UpstreamCallError{Provider: ProviderOpenAI, Message: refusal}
	}

	return []byte(resp.Choices[0].Message.Content), nil
}

func (o *OpenAIModel) Close() error {
	return nil
}
