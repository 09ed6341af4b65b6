// Package llm wraps the hosted language models behind one primitive: send a
// prompt together with an output JSON schema and get back raw JSON.
package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai/jsonschema"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Model is the generative-model invocation primitive. Implementations must
// constrain the model output to schema where the provider supports it; the
// caller still verifies the returned bytes.
type Model interface {
	GenerateJSON(ctx context.Context, prompt string, name string, schema jsonschema.Definition) ([]byte, error)
	Close() error
}

// UpstreamCallError is a network or provider failure. Error returns the
// provider's own message so it can be shown to the user as is.
type UpstreamCallError struct {
	Provider   string
	HTTPStatus int
	Message    string
	Err        error
}

func (e *UpstreamCallError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s call failed", e.Provider)
}

func (e *UpstreamCallError) Unwrap() error {
	return e.Err
}

func (e *UpstreamCallError) StatusCode() int {
	if e.HTTPStatus == http.StatusTooManyRequests {
		return http.StatusTooManyRequests
	}
	return http.StatusBadGateway
}
