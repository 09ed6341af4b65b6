package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap/zaptest"
	"wanderwise/internal/models/trip_models"
	"wanderwise/pkg/llm"
)

type fakeModel struct {
	raw     string
	err     error
	calls   int
	prompts []string
	names   []string
}

func (m *fakeModel) GenerateJSON(_ context.Context, prompt string, name string, _ jsonschema.Definition) ([]byte, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	m.names = append(m.names, name)
	if m.err != nil {
		return nil, m.err
	}
	return []byte(m.raw), nil
}

func (m *fakeModel) Close() error { return nil }

func validPrefs() trip_models.UserPreferences {
	return trip_models.UserPreferences{
		Interests:    []string{"food"},
		Budget:       trip_models.BudgetMidRange,
		TripDuration: "3 days",
		TravelStyle:  trip_models.StyleCultural,
	}
}

const lisbonItinerary = `{
  "itinerary": [
    {"day": 1, "activities": [{"time": "9:00 AM", "description": "Pastel de nata tasting", "alternatives": ["Time Out Market"]}]},
    {"day": 2, "activities": [{"time": "10:00 AM", "description": "Alfama walk", "alternatives": []}]}
  ],
  "costBreakdown": {"accommodation": "$100 - $200", "food": "$50", "transportation": "$20 - $40", "activities": "varies"}
}`

func TestSuggestCityRejectsInvalidInputBeforeCallingModel(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *trip_models.UserPreferences)
		field  string
	}{
		{"no interests", func(p *trip_models.UserPreferences) { p.Interests = nil }, "interests"},
		{"empty interests", func(p *trip_models.UserPreferences) { p.Interests = []string{} }, "interests"},
		{"blank interest", func(p *trip_models.UserPreferences) { p.Interests = []string{""} }, "interests"},
		{"whitespace interest", func(p *trip_models.UserPreferences) { p.Interests = []string{"food", "   "} }, "interests"},
		{"whitespace custom interest", func(p *trip_models.UserPreferences) { p.CustomInterests = []string{" \t"} }, "customInterests"},
		{"unknown budget", func(p *trip_models.UserPreferences) { p.Budget = "cheap" }, "budget"},
		{"unknown style", func(p *trip_models.UserPreferences) { p.TravelStyle = "lazy" }, "travelStyle"},
		{"unknown duration", func(p *trip_models.UserPreferences) { p.TripDuration = "custom" }, "tripDuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &fakeModel{raw: `{"suggestedCity":"Porto","justification":"x"}`}
			svc := NewCitySuggestionService(model, zaptest.NewLogger(t))

			prefs := validPrefs()
			tt.mutate(&prefs)

			_, err := svc.SuggestCity(context.Background(), prefs)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if verr.Violations[0].Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Violations[0].Field, tt.field)
			}
			if model.calls != 0 {
				t.Errorf("model called %d times", model.calls)
			}
		})
	}
}

func TestSuggestCityPromptIncludesCustomInterests(t *testing.T) {
	model := &fakeModel{raw: `{"suggestedCity":"Porto","justification":"Great food."}`}
	svc := NewCitySuggestionService(model, zaptest.NewLogger(t))

	prefs := validPrefs()
	prefs.Interests = []string{"food", "history"}
	prefs.CustomInterests = []string{"port wine", "azulejos"}

	got, err := svc.SuggestCity(context.Background(), prefs)
	if err != nil {
		t.Fatalf("SuggestCity: %v", err)
	}
	if got.SuggestedCity != "Porto" || got.Justification != "Great food." {
		t.Errorf("got %+v", got)
	}
	if !strings.Contains(model.prompts[0], "food, history, and custom interests: port wine, azulejos") {
		t.Errorf("prompt missing interests:\n%s", model.prompts[0])
	}
	if model.names[0] != "city_suggestion" {
		t.Errorf("schema name = %q", model.names[0])
	}
}

func TestSuggestCityReturnsEmptyCityAsIs(t *testing.T) {
	model := &fakeModel{raw: `{"suggestedCity":"","justification":"nothing fits"}`}
	got, err := NewCitySuggestionService(model, zaptest.NewLogger(t)).SuggestCity(context.Background(), validPrefs())
	if err != nil {
		t.Fatalf("SuggestCity: %v", err)
	}
	if got.SuggestedCity != "" {
		t.Errorf("SuggestedCity = %q", got.SuggestedCity)
	}
}

func TestModelOutputSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		run  func(m llm.Model) error
	}{
		{
			name: "suggestion missing city",
			raw:  `{"justification":"x"}`,
			run: func(m llm.Model) error {
				_, err := NewCitySuggestionService(m, zaptest.NewLogger(t)).SuggestCity(context.Background(), validPrefs())
				return err
			},
		},
		{
			name: "suggestion not json",
			raw:  `Porto is lovely`,
			run: func(m llm.Model) error {
				_, err := NewCitySuggestionService(m, zaptest.NewLogger(t)).SuggestCity(context.Background(), validPrefs())
				return err
			},
		},
		{
			name: "day as string",
			raw:  `{"itinerary":[{"day":"1","activities":[]}],"costBreakdown":{"accommodation":"","food":"","transportation":"","activities":""}}`,
			run: func(m llm.Model) error {
				_, err := NewItineraryService(m, zaptest.NewLogger(t)).GenerateItinerary(context.Background(), validPrefs(), "Lisbon")
				return err
			},
		},
		{
			name: "missing cost breakdown",
			raw:  `{"itinerary":[]}`,
			run: func(m llm.Model) error {
				_, err := NewItineraryService(m, zaptest.NewLogger(t)).GenerateItinerary(context.Background(), validPrefs(), "Lisbon")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(&fakeModel{raw: tt.raw})
			var serr *SchemaViolationError
			if !errors.As(err, &serr) {
				t.Fatalf("err = %v, want *SchemaViolationError", err)
			}
		})
	}
}

func TestGenerateItinerary(t *testing.T) {
	model := &fakeModel{raw: "```json\n" + lisbonItinerary + "\n```"}
	svc := NewItineraryService(model, zaptest.NewLogger(t))

	got, err := svc.GenerateItinerary(context.Background(), validPrefs(), "Lisbon")
	if err != nil {
		t.Fatalf("GenerateItinerary: %v", err)
	}
	if len(got.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(got.Days))
	}
	if got.Days[0].Activities[0].Alternatives[0] != "Time Out Market" {
		t.Errorf("unexpected first activity %+v", got.Days[0].Activities[0])
	}
	if got.CostBreakdown.Food != "$50" {
		t.Errorf("food = %q", got.CostBreakdown.Food)
	}
	if !strings.Contains(model.prompts[0], "Destination City: Lisbon") {
		t.Errorf("prompt missing destination:\n%s", model.prompts[0])
	}
}

func TestGenerateItineraryRequiresDestination(t *testing.T) {
	model := &fakeModel{raw: lisbonItinerary}
	_, err := NewItineraryService(model, zaptest.NewLogger(t)).GenerateItinerary(context.Background(), validPrefs(), "   ")

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if verr.Error() != "Destination city is required." {
		t.Errorf("message = %q", verr.Error())
	}
	if model.calls != 0 {
		t.Error("model called without a destination")
	}
}

func TestUpstreamErrorIsReturnedUnchanged(t *testing.T) {
	upstream := &llm.UpstreamCallError{Provider: llm.ProviderGemini, HTTPStatus: 429, Message: "rate limited"}
	_, err := NewItineraryService(&fakeModel{err: upstream}, zaptest.NewLogger(t)).
		GenerateItinerary(context.Background(), validPrefs(), "Cairo")

	if err == nil || err.Error() != "rate limited" {
		t.Fatalf("err = %v, want rate limited", err)
	}
	var uerr *llm.UpstreamCallError
	if !errors.As(err, &uerr) || uerr.StatusCode() != 429 {
		t.Errorf("lost upstream error type: %v", err)
	}
}
