package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"wanderwise/internal/models/trip_models"
	"wanderwise/pkg/llm"
)

type CitySuggestionServiceInterface interface {
	SuggestCity(ctx context.Context, prefs trip_models.UserPreferences) (trip_models.CitySuggestion, error)
}

type CitySuggestionService struct {
	model  llm.Model
	logger *zap.Logger
}

func NewCitySuggestionService(model llm.Model, logger *zap.Logger) CitySuggestionServiceInterface {
	return &CitySuggestionService{
		model:  model,
		logger: logger.Named("city_suggestion"),
	}
}

// SuggestCity asks the model for one city matching prefs. A well-formed
// answer with an empty city is returned as is; deciding that it is a failure
// is up to the caller.
func (s *CitySuggestionService) SuggestCity(ctx context.Context, prefs trip_models.UserPreferences) (trip_models.CitySuggestion, error) {
	req := NewSuggestCityRequest(prefs)
	if err := validateRequest(req); err != nil {
		return trip_models.CitySuggestion{}, err
	}

	raw, err := s.model.GenerateJSON(ctx, buildSuggestCityPrompt(req), "city_suggestion", suggestCitySchema)
	if err != nil {
		s.logger.Warn("city suggestion call failed", zap.Error(err))
		return trip_models.CitySuggestion{}, err
	}

	suggestion, err := decodeModelOutput[trip_models.CitySuggestion](raw, "city suggestion", suggestCitySchema)
	if err != nil {
		s.logger.Warn("city suggestion response rejected", zap.Error(err), zap.ByteString("raw", raw))
		return trip_models.CitySuggestion{}, err
	}

	s.logger.Info("city suggested", zap.String("city", suggestion.SuggestedCity))
	return suggestion, nil
}

func buildSuggestCityPrompt(req SuggestCityRequest) string {
	interests := strings.Join(req.Interests, ", ")
	if len(req.CustomInterests) > 0 {
		interests += ", and custom interests: " + strings.Join(req.CustomInterests, ", ")
	}

	return fmt.Sprintf(`Based on the user's preferences, suggest a city for them to visit and justify your suggestion with data.

User Preferences:
Interests: %s
Budget: %s
Trip Duration: %s
Travel Style: %s

Suggestion:`, interests, req.Budget, req.TripDuration, req.TravelStyle)
}
