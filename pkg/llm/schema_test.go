package llm

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

func TestToGenaiSchemaNested(t *testing.T) {
	def := jsonschema.Definition{
		Type:     jsonschema.Object,
		Required: []string{"days"},
		Properties: map[string]jsonschema.Definition{
			"days": {
				Type: jsonschema.Array,
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"day":  {Type: jsonschema.Integer, Description: "day number"},
						"mood": {Type: jsonschema.String, Enum: []string{"calm", "busy"}},
					},
				},
			},
		},
	}

	got := toGenaiSchema(def)
	if got.Type != genai.TypeObject {
		t.Fatalf("root type = %v", got.Type)
	}
	if len(got.Required) != 1 || got.Required[0] != "days" {
		t.Errorf("required = %v", got.Required)
	}
	days := got.Properties["days"]
	if days == nil || days.Type != genai.TypeArray || days.Items == nil {
		t.Fatalf("days = %+v", days)
	}
	day := days.Items.Properties["day"]
	if day.Type != genai.TypeInteger || day.Description != "day number" {
		t.Errorf("day = %+v", day)
	}
	if mood := days.Items.Properties["mood"]; len(mood.Enum) != 2 {
		t.Errorf("mood enum = %v", mood.Enum)
	}
}

func TestUpstreamCallErrorMessage(t *testing.T) {
	inner := errors.New("connection reset")

	tests := []struct {
		name       string
		err        *UpstreamCallError
		wantMsg    string
		wantStatus int
	}{
		{"provider message wins", &UpstreamCallError{Provider: ProviderOpenAI, Message: "rate limited", HTTPStatus: 429, Err: inner}, "rate limited", http.StatusTooManyRequests},
		{"falls back to wrapped error", &UpstreamCallError{Provider: ProviderGemini, Err: inner}, "connection reset", http.StatusBadGateway},
		{"falls back to provider", &UpstreamCallError{Provider: ProviderGemini}, "gemini call failed", http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.StatusCode(); got != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", got, tt.wantStatus)
			}
		})
	}

	if !errors.Is(&UpstreamCallError{Err: inner}, inner) {
		t.Error("Unwrap does not expose the wrapped error")
	}
}
