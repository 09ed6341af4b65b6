package services

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"wanderwise/internal/models/trip_models"
)

type PlanState string

const (
	StateIdle                PlanState = "idle"
	StateSuggesting          PlanState = "suggesting"
	StateGeneratingItinerary PlanState = "generating_itinerary"
	StateComplete            PlanState = "complete"
	StateFailed              PlanState = "failed"
)

const (
	MsgSuggestionFailed    = "AI could not suggest a city. Please try specifying one or adjusting your preferences."
	MsgDestinationRequired = "Destination city is required to generate an itinerary."
	MsgUnexpectedError     = "An unexpected error occurred. Please try again."
)

// PlanSnapshot is what a caller sees of a planning run at any point.
type PlanSnapshot struct {
	State  PlanState                  `json:"state"`
	Error  string                     `json:"error,omitempty"`
	Result trip_models.TripPlanResult `json:"result"`
}

type TransitionObserver func(from, to PlanState)

// TripPlanner sequences city suggestion and itinerary generation for one
// request. It is not safe for concurrent use; create one per request.
type TripPlanner struct {
	suggester CitySuggestionServiceInterface
	itinerary ItineraryServiceInterface
	logger    *zap.Logger
	observer  TransitionObserver

	state  PlanState
	errMsg string
	result trip_models.TripPlanResult
	city   string
}

func NewTripPlanner(
	suggester CitySuggestionServiceInterface,
	itinerary ItineraryServiceInterface,
	logger *zap.Logger,
	observer TransitionObserver,
) *TripPlanner {
	return &TripPlanner{
		suggester: suggester,
		itinerary: itinerary,
		logger:    logger,
		observer:  observer,
		state:     StateIdle,
	}
}

// Submit runs the whole pipeline and returns the final snapshot. Results of
// any previous run are discarded first.
func (p *TripPlanner) Submit(ctx context.Context, prefs trip_models.UserPreferences) PlanSnapshot {
	p.reset(prefs)

	if prefs.HasDestination() {
		p.city = prefs.DestinationCity
		p.result.FinalDestinationCityToDisplay = prefs.DestinationCity
		p.transition(StateGeneratingItinerary)
	} else {
		p.transition(StateSuggesting)
	}

	for !p.done() {
		p.step(ctx, prefs)
	}

	return p.Snapshot()
}

func (p *TripPlanner) step(ctx context.Context, prefs trip_models.UserPreferences) {
	switch p.state {
	case StateSuggesting:
		p.runSuggestion(ctx, prefs)
	case StateGeneratingItinerary:
		p.runItinerary(ctx, prefs)
	default:
		p.fail(MsgUnexpectedError)
	}
}

func (p *TripPlanner) runSuggestion(ctx context.Context, prefs trip_models.UserPreferences) {
	suggestion, err := p.suggester.SuggestCity(ctx, prefs)
	if err != nil {
		p.logger.Warn("city suggestion failed", zap.Error(err))
		p.fail(MsgSuggestionFailed)
		return
	}
	if strings.TrimSpace(suggestion.SuggestedCity) == "" {
		p.logger.Warn("city suggestion came back empty")
		p.fail(MsgSuggestionFailed)
		return
	}

	p.result.SuggestedCity = &suggestion
	p.result.FinalDestinationCityToDisplay = suggestion.SuggestedCity
	p.city = suggestion.SuggestedCity
	p.transition(StateGeneratingItinerary)
}

func (p *TripPlanner) runItinerary(ctx context.Context, prefs trip_models.UserPreferences) {
	if strings.TrimSpace(p.city) == "" {
		p.fail(MsgDestinationRequired)
		return
	}

	itinerary, err := p.itinerary.GenerateItinerary(ctx, prefs, p.city)
	if err != nil {
		p.logger.Warn("itinerary generation failed", zap.String("city", p.city), zap.Error(err))
		p.fail(errorMessage(err))
		return
	}

	p.result.ItineraryData = &itinerary
	p.transition(StateComplete)
}

func (p *TripPlanner) reset(prefs trip_models.UserPreferences) {
	p.errMsg = ""
	p.city = ""
	p.result = trip_models.TripPlanResult{UploadedImageFileName: prefs.ImageFileName}
	p.state = StateIdle
}

func (p *TripPlanner) fail(msg string) {
	p.errMsg = msg
	p.transition(StateFailed)
}

func (p *TripPlanner) transition(to PlanState) {
	from := p.state
	p.state = to
	if p.observer != nil {
		p.observer(from, to)
	}
}

func (p *TripPlanner) done() bool {
	return p.state == StateComplete || p.state == StateFailed
}

func (p *TripPlanner) Snapshot() PlanSnapshot {
	return PlanSnapshot{State: p.state, Error: p.errMsg, Result: p.result}
}

func errorMessage(err error) string {
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return MsgUnexpectedError
}

// TripPlannerFactory hands out a fresh planner per request.
type TripPlannerFactory struct {
	suggester CitySuggestionServiceInterface
	itinerary ItineraryServiceInterface
	logger    *zap.Logger
}

func NewTripPlannerFactory(
	suggester CitySuggestionServiceInterface,
	itinerary ItineraryServiceInterface,
	logger *zap.Logger,
) *TripPlannerFactory {
	return &TripPlannerFactory{suggester: suggester, itinerary: itinerary, logger: logger.Named("planner")}
}

func (f *TripPlannerFactory) New(traceID string) *TripPlanner {
	logger := f.logger.With(zap.String("trace_id", traceID))
	return NewTripPlanner(f.suggester, f.itinerary, logger, func(from, to PlanState) {
		logger.Debug("plan state changed", zap.String("from", string(from)), zap.String("to", string(to)))
	})
}

// SuggestCity and GenerateItinerary expose the single stages directly.
func (f *TripPlannerFactory) SuggestCity(ctx context.Context, prefs trip_models.UserPreferences) (trip_models.CitySuggestion, error) {
	return f.suggester.SuggestCity(ctx, prefs)
}

func (f *TripPlannerFactory) GenerateItinerary(ctx context.Context, prefs trip_models.UserPreferences, city string) (trip_models.Itinerary, error) {
	return f.itinerary.GenerateItinerary(ctx, prefs, city)
}
