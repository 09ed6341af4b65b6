package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap/zaptest"
	"wanderwise/internal/models/trip_models"
)

type fakeSuggester struct {
	suggestion trip_models.CitySuggestion
	err        error
	calls      int
}

func (f *fakeSuggester) SuggestCity(context.Context, trip_models.UserPreferences) (trip_models.CitySuggestion, error) {
	f.calls++
	return f.suggestion, f.err
}

type fakeItinerary struct {
	itinerary trip_models.Itinerary
	err       error
	cities    []string
}

func (f *fakeItinerary) GenerateItinerary(_ context.Context, _ trip_models.UserPreferences, city string) (trip_models.Itinerary, error) {
	f.cities = append(f.cities, city)
	return f.itinerary, f.err
}

type blankError struct{}

func (blankError) Error() string { return "" }

func threeDays() trip_models.Itinerary {
	return trip_models.Itinerary{
		Days: []trip_models.DayPlan{
			{Day: 1, Activities: []trip_models.Activity{{Time: "9:00", Description: "Belem"}}},
			{Day: 2, Activities: []trip_models.Activity{{Time: "9:00", Description: "Sintra"}}},
			{Day: 3, Activities: []trip_models.Activity{{Time: "9:00", Description: "Cascais"}}},
		},
		CostBreakdown: trip_models.CostBreakdown{Food: "$50 - $80"},
	}
}

func newTestPlanner(t *testing.T, s *fakeSuggester, i *fakeItinerary) (*TripPlanner, *[]PlanState) {
	var seen []PlanState
	p := NewTripPlanner(s, i, zaptest.NewLogger(t), func(_, to PlanState) {
		seen = append(seen, to)
	})
	return p, &seen
}

func TestPlannerDirectCitySkipsSuggestion(t *testing.T) {
	s := &fakeSuggester{}
	i := &fakeItinerary{itinerary: threeDays()}
	p, seen := newTestPlanner(t, s, i)

	prefs := validPrefs()
	prefs.DestinationCity = "Lisbon"
	snap := p.Submit(context.Background(), prefs)

	if snap.State != StateComplete {
		t.Fatalf("state = %s, error %q", snap.State, snap.Error)
	}
	if s.calls != 0 {
		t.Errorf("suggester called %d times", s.calls)
	}
	if !reflect.DeepEqual(i.cities, []string{"Lisbon"}) {
		t.Errorf("itinerary cities = %v, want [Lisbon]", i.cities)
	}
	if snap.Result.SuggestedCity != nil {
		t.Error("unexpected suggestion in result")
	}
	if snap.Result.FinalDestinationCityToDisplay != "Lisbon" {
		t.Errorf("display city = %q", snap.Result.FinalDestinationCityToDisplay)
	}
	want := []PlanState{StateGeneratingItinerary, StateComplete}
	if !reflect.DeepEqual(*seen, want) {
		t.Errorf("transitions = %v, want %v", *seen, want)
	}
}

func TestPlannerSuggestionPath(t *testing.T) {
	s := &fakeSuggester{suggestion: trip_models.CitySuggestion{SuggestedCity: "Porto", Justification: "Wine."}}
	i := &fakeItinerary{itinerary: threeDays()}
	p, seen := newTestPlanner(t, s, i)

	prefs := validPrefs()
	prefs.ImageFileName = "porto.jpg"
	snap := p.Submit(context.Background(), prefs)

	if snap.State != StateComplete {
		t.Fatalf("state = %s, error %q", snap.State, snap.Error)
	}
	if s.calls != 1 {
		t.Errorf("suggester calls = %d", s.calls)
	}
	if !reflect.DeepEqual(i.cities, []string{"Porto"}) {
		t.Errorf("itinerary cities = %v, want [Porto]", i.cities)
	}
	if snap.Result.FinalDestinationCityToDisplay != "Porto" || snap.Result.Destination() != "Porto" {
		t.Errorf("display city = %q", snap.Result.FinalDestinationCityToDisplay)
	}
	if snap.Result.UploadedImageFileName != "porto.jpg" {
		t.Errorf("image = %q", snap.Result.UploadedImageFileName)
	}
	if snap.Result.DayCount() != 3 {
		t.Errorf("DayCount = %d, want 3", snap.Result.DayCount())
	}
	want := []PlanState{StateSuggesting, StateGeneratingItinerary, StateComplete}
	if !reflect.DeepEqual(*seen, want) {
		t.Errorf("transitions = %v, want %v", *seen, want)
	}
}

func TestPlannerSuggestionFailures(t *testing.T) {
	tests := []struct {
		name string
		s    *fakeSuggester
	}{
		{"empty city", &fakeSuggester{suggestion: trip_models.CitySuggestion{Justification: "..."}}},
		{"empty everything", &fakeSuggester{}},
		{"blank city", &fakeSuggester{suggestion: trip_models.CitySuggestion{SuggestedCity: "  "}}},
		{"service error", &fakeSuggester{err: errors.New("quota exceeded")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := &fakeItinerary{itinerary: threeDays()}
			p, _ := newTestPlanner(t, tt.s, i)

			snap := p.Submit(context.Background(), validPrefs())
			if snap.State != StateFailed {
				t.Fatalf("state = %s", snap.State)
			}
			if snap.Error != MsgSuggestionFailed {
				t.Errorf("error = %q", snap.Error)
			}
			if len(i.cities) != 0 {
				t.Errorf("itinerary invoked with %v", i.cities)
			}
			if !snap.Result.IsEmpty() {
				t.Errorf("result not empty: %+v", snap.Result)
			}
		})
	}
}

func TestPlannerItineraryFailureKeepsSuggestion(t *testing.T) {
	s := &fakeSuggester{suggestion: trip_models.CitySuggestion{SuggestedCity: "Cairo", Justification: "Pyramids."}}
	i := &fakeItinerary{err: errors.New("rate limited")}
	p, _ := newTestPlanner(t, s, i)

	snap := p.Submit(context.Background(), validPrefs())
	if snap.State != StateFailed {
		t.Fatalf("state = %s", snap.State)
	}
	if snap.Error != "rate limited" {
		t.Errorf("error = %q, want rate limited", snap.Error)
	}
	if snap.Result.SuggestedCity == nil || snap.Result.SuggestedCity.SuggestedCity != "Cairo" {
		t.Errorf("suggestion lost: %+v", snap.Result.SuggestedCity)
	}
	if snap.Result.ItineraryData != nil {
		t.Error("itinerary present after failure")
	}
}

func TestPlannerItineraryErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"verbatim", errors.New("model overloaded"), "model overloaded"},
		{"blank message", blankError{}, MsgUnexpectedError},
		{"schema", &SchemaViolationError{Schema: "itinerary", Err: errors.New("bad")}, "AI response did not match the expected itinerary format: bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPlanner(t, &fakeSuggester{}, &fakeItinerary{err: tt.err})
			prefs := validPrefs()
			prefs.DestinationCity = "Lisbon"

			snap := p.Submit(context.Background(), prefs)
			if snap.State != StateFailed || snap.Error != tt.want {
				t.Errorf("snapshot = %s %q, want failed %q", snap.State, snap.Error, tt.want)
			}
		})
	}
}

func TestPlannerResubmitClearsPreviousRun(t *testing.T) {
	s := &fakeSuggester{suggestion: trip_models.CitySuggestion{SuggestedCity: "Cairo"}}
	i := &fakeItinerary{err: errors.New("rate limited")}
	p, _ := newTestPlanner(t, s, i)

	if snap := p.Submit(context.Background(), validPrefs()); snap.State != StateFailed {
		t.Fatalf("first run state = %s", snap.State)
	}

	i.err = nil
	i.itinerary = threeDays()
	prefs := validPrefs()
	prefs.DestinationCity = "Lisbon"

	snap := p.Submit(context.Background(), prefs)
	if snap.State != StateComplete || snap.Error != "" {
		t.Fatalf("second run = %s %q", snap.State, snap.Error)
	}
	if snap.Result.SuggestedCity != nil {
		t.Error("suggestion from the previous run leaked")
	}
	if snap.Result.Destination() != "Lisbon" {
		t.Errorf("destination = %q", snap.Result.Destination())
	}
}

func TestPlannerPassesDayCountThrough(t *testing.T) {
	for _, n := range []int{0, 1, 7, 30} {
		days := make([]trip_models.DayPlan, n)
		for d := range days {
			days[d] = trip_models.DayPlan{Day: d + 1}
		}

		p, _ := newTestPlanner(t, &fakeSuggester{}, &fakeItinerary{itinerary: trip_models.Itinerary{Days: days}})
		prefs := validPrefs()
		prefs.DestinationCity = "Lisbon"

		snap := p.Submit(context.Background(), prefs)
		if snap.Result.DayCount() != n {
			t.Errorf("DayCount = %d, want %d", snap.Result.DayCount(), n)
		}
	}
}

func TestPlannerWithRealServices(t *testing.T) {
	model := &fakeModel{raw: lisbonItinerary}
	factory := NewTripPlannerFactory(
		NewCitySuggestionService(model, zaptest.NewLogger(t)),
		NewItineraryService(model, zaptest.NewLogger(t)),
		zaptest.NewLogger(t),
	)

	prefs := validPrefs()
	prefs.DestinationCity = "Lisbon"
	snap := factory.New("trace-1").Submit(context.Background(), prefs)

	if snap.State != StateComplete {
		t.Fatalf("state = %s, error %q", snap.State, snap.Error)
	}
	if model.calls != 1 || model.names[0] != "itinerary" {
		t.Errorf("model calls = %d %v", model.calls, model.names)
	}
}
