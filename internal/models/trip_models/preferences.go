package trip_models

import (
	"strings"

	"github.com/samber/lo"
)

type Budget string

const (
	BudgetFriendly Budget = "budget-friendly"
	BudgetMidRange Budget = "mid-range"
	BudgetLuxury   Budget = "luxury"
)

type TravelStyle string

const (
	StyleRelaxed     TravelStyle = "relaxed"
	StyleAdventurous TravelStyle = "adventurous"
	StyleCultural    TravelStyle = "cultural"
)

// TripDurations is the fixed set of duration labels a user can pick. They
// are passed to the model as labels, never converted to numbers.
var TripDurations = []string{"1 day", "2 days", "3 days", "1 week", "10 days", "2 weeks", "1 month"}

// UserPreferences is what a user submits for one planning request.
type UserPreferences struct {
	Interests       []string
	CustomInterests []string
	Budget          Budget
	TripDuration    string
	TravelStyle     TravelStyle
	DestinationCity string
	ImageFileName   string
}

// HasDestination reports whether the user named a city, so the suggestion
// stage can be skipped.
func (p UserPreferences) HasDestination() bool {
	return strings.TrimSpace(p.DestinationCity) != ""
}

// SplitCustomInterests turns "street art, , jazz " into ["street art", "jazz"].
func SplitCustomInterests(raw string) []string {
	parts := lo.Map(strings.Split(raw, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Compact(parts)
}
