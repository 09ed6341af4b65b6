package trip_models

type CitySuggestion struct {
	SuggestedCity string `json:"suggestedCity"`
	Justification string `json:"justification"`
}

type Activity struct {
	Time         string   `json:"time"`
	Description  string   `json:"description"`
	Alternatives []string `json:"alternatives"`
}

type DayPlan struct {
	Day        int        `json:"day"`
	Activities []Activity `json:"activities"`
}

// CostBreakdown holds human readable ranges such as "$100 - $200".
type CostBreakdown struct {
	Accommodation  string `json:"accommodation"`
	Food           string `json:"food"`
	Transportation string `json:"transportation"`
	Activities     string `json:"activities"`
}

type Itinerary struct {
	Days          []DayPlan     `json:"itinerary"`
	CostBreakdown CostBreakdown `json:"costBreakdown"`
}

// TripPlanResult is the tuple handed to display, export, share and save.
type TripPlanResult struct {
	SuggestedCity                 *CitySuggestion `json:"suggestedCity,omitempty"`
	ItineraryData                 *Itinerary      `json:"itineraryData,omitempty"`
	FinalDestinationCityToDisplay string          `json:"finalDestinationCityToDisplay,omitempty"`
	UploadedImageFileName         string          `json:"uploadedImageFileName,omitempty"`
}

// IsEmpty is true when there is neither a suggestion nor an itinerary.
func (r TripPlanResult) IsEmpty() bool {
	return r.SuggestedCity == nil && r.ItineraryData == nil
}

// Destination prefers the suggested city over the display city.
func (r TripPlanResult) Destination() string {
	if r.SuggestedCity != nil && r.SuggestedCity.SuggestedCity != "" {
		return r.SuggestedCity.SuggestedCity
	}
	return r.FinalDestinationCityToDisplay
}

// DayCount is the number of day entries exactly as produced by the model.
func (r TripPlanResult) DayCount() int {
	if r.ItineraryData == nil {
		return 0
	}
	return len(r.ItineraryData.Days)
}

// SavedPlan is a TripPlanResult stored for one user. Timestamp is unix millis.
type SavedPlan struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Timestamp int64  `json:"timestamp"`
	TripPlanResult
}
