package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"wanderwise/internal/models/trip_models"
	"wanderwise/pkg/llm"
)

type ItineraryServiceInterface interface {
	GenerateItinerary(ctx context.Context, prefs trip_models.UserPreferences, destinationCity string) (trip_models.Itinerary, error)
}

type ItineraryService struct {
	model  llm.Model
	logger *zap.Logger
}

func NewItineraryService(model llm.Model, logger *zap.Logger) ItineraryServiceInterface {
	return &ItineraryService{
		model:  model,
		logger: logger.Named("itinerary"),
	}
}

// GenerateItinerary returns a day-by-day plan for destinationCity. The number
// of days and activities is whatever the model produced; it is not checked
// against the requested duration label.
func (s *ItineraryService) GenerateItinerary(ctx context.Context, prefs trip_models.UserPreferences, destinationCity string) (trip_models.Itinerary, error) {
	req := NewGenerateItineraryRequest(prefs, destinationCity)
	if err := validateRequest(req); err != nil {
		return trip_models.Itinerary{}, err
	}

	raw, err := s.model.GenerateJSON(ctx, buildItineraryPrompt(req), "itinerary", itinerarySchema)
	if err != nil {
		s.logger.Warn("itinerary call failed", zap.String("city", req.DestinationCity), zap.Error(err))
		return trip_models.Itinerary{}, err
	}

	itinerary, err := decodeModelOutput[trip_models.Itinerary](raw, "itinerary", itinerarySchema)
	if err != nil {
		s.logger.Warn("itinerary response rejected", zap.String("city", req.DestinationCity), zap.Error(err))
		return trip_models.Itinerary{}, err
	}

	s.logger.Info("itinerary generated",
		zap.String("city", req.DestinationCity),
		zap.String("duration", req.TripDuration),
		zap.Int("days", len(itinerary.Days)))
	return itinerary, nil
}

const itineraryExample = `{
  "itinerary": [
    {
      "day": 1,
      "activities": [
        {
          "time": "9:00 AM",
          "description": "Visit the Eiffel Tower.",
          "alternatives": ["Take a Seine River cruise.", "Explore the Louvre Museum."]
        }
      ]
    }
  ],
  "costBreakdown": {
    "accommodation": "$100 - $200",
    "food": "$50 - $100",
    "transportation": "$20 - $40",
    "activities": "$30 - $60"
  }
}`

func buildItineraryPrompt(req GenerateItineraryRequest) string {
	return fmt.Sprintf(`You are an expert travel assistant. Generate a personalized, day-by-day itinerary based on the user's preferences.

Destination City: %s
Interests: %s
Budget: %s
Trip Duration: %s
Travel Style: %s

Output the itinerary in JSON format with the following structure:
%s
`, req.DestinationCity, strings.Join(req.Interests, ", "), req.Budget, req.TripDuration, req.TravelStyle, itineraryExample)
}
