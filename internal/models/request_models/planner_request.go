package request_models

import (
	"strings"

	"wanderwise/internal/models/trip_models"
)

// PlanRequest is the planner form. customInterests is the raw comma-separated
// text box value; enum checks happen in the AI request layer.
type PlanRequest struct {
	Interests       []string `json:"interests"`
	CustomInterests string   `json:"customInterests"`
	Budget          string   `json:"budget"`
	TripDuration    string   `json:"tripDuration"`
	TravelStyle     string   `json:"travelStyle"`
	DestinationCity string   `json:"destinationCity"`
	ImageFileName   string   `json:"imageFileName"`
}

func (r PlanRequest) ToPreferences() trip_models.UserPreferences {
	return trip_models.UserPreferences{
		Interests:       r.Interests,
		CustomInterests: trip_models.SplitCustomInterests(r.CustomInterests),
		Budget:          trip_models.Budget(strings.TrimSpace(r.Budget)),
		TripDuration:    strings.TrimSpace(r.TripDuration),
		TravelStyle:     trip_models.TravelStyle(strings.TrimSpace(r.TravelStyle)),
		DestinationCity: strings.TrimSpace(r.DestinationCity),
		ImageFileName:   strings.TrimSpace(r.ImageFileName),
	}
}
