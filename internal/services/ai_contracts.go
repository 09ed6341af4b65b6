package services

import (
	"bytes"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/sashabaranov/go-openai/jsonschema"
	"wanderwise/internal/models/trip_models"
)

// SuggestCityRequest is the input of the city suggestion call.
type SuggestCityRequest struct {
	Interests       []string `json:"interests" validate:"required,min=1,dive,notblank"`
	Budget          string   `json:"budget" validate:"required,oneof=budget-friendly mid-range luxury"`
	TripDuration    string   `json:"tripDuration" validate:"required,trip_duration"`
	TravelStyle     string   `json:"travelStyle" validate:"required,oneof=relaxed adventurous cultural"`
	CustomInterests []string `json:"customInterests,omitempty" validate:"omitempty,dive,notblank"`
}

// GenerateItineraryRequest is the input of the itinerary generation call.
type GenerateItineraryRequest struct {
	DestinationCity string   `json:"destinationCity" validate:"required,notblank"`
	Interests       []string `json:"interests" validate:"required,min=1,dive,notblank"`
	Budget          string   `json:"budget" validate:"required,oneof=budget-friendly mid-range luxury"`
	TripDuration    string   `json:"tripDuration" validate:"required,trip_duration"`
	TravelStyle     string   `json:"travelStyle" validate:"required,oneof=relaxed adventurous cultural"`
}

func NewSuggestCityRequest(prefs trip_models.UserPreferences) SuggestCityRequest {
	return SuggestCityRequest{
		Interests:       prefs.Interests,
		Budget:          string(prefs.Budget),
		TripDuration:    prefs.TripDuration,
		TravelStyle:     string(prefs.TravelStyle),
		CustomInterests: prefs.CustomInterests,
	}
}

func NewGenerateItineraryRequest(prefs trip_models.UserPreferences, city string) GenerateItineraryRequest {
	return GenerateItineraryRequest{
		DestinationCity: strings.TrimSpace(city),
		Interests:       prefs.Interests,
		Budget:          string(prefs.Budget),
		TripDuration:    prefs.TripDuration,
		TravelStyle:     string(prefs.TravelStyle),
	}
}

var suggestCitySchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"suggestedCity": {Type: jsonschema.String, Description: "The suggested city based on user preferences."},
		"justification": {Type: jsonschema.String, Description: "A data-driven explanation of why the city is a good fit."},
	},
	Required:             []string{"suggestedCity", "justification"},
	AdditionalProperties: false,
}

var activitySchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"time":        {Type: jsonschema.String, Description: "The estimated time for the activity."},
		"description": {Type: jsonschema.String, Description: "The description of the activity."},
		"alternatives": {
			Type:        jsonschema.Array,
			Description: "Alternative activity options.",
			Items:       &jsonschema.Definition{Type: jsonschema.String},
		},
	},
	Required:             []string{"time", "description", "alternatives"},
	AdditionalProperties: false,
}

var itinerarySchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"itinerary": {
			Type:        jsonschema.Array,
			Description: "A detailed, day-by-day itinerary.",
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"day": {Type: jsonschema.Integer, Description: "The day number in the itinerary."},
					"activities": {
						Type:        jsonschema.Array,
						Description: "A list of activities for the day.",
						Items:       &activitySchema,
					},
				},
				Required:             []string{"day", "activities"},
				AdditionalProperties: false,
			},
		},
		"costBreakdown": {
			Type:        jsonschema.Object,
			Description: "A detailed cost breakdown for the trip.",
			Properties: map[string]jsonschema.Definition{
				"accommodation":  {Type: jsonschema.String, Description: "Estimated cost for accommodation."},
				"food":           {Type: jsonschema.String, Description: "Estimated cost for food."},
				"transportation": {Type: jsonschema.String, Description: "Estimated cost for transportation."},
				"activities":     {Type: jsonschema.String, Description: "Estimated cost for activities."},
			},
			Required:             []string{"accommodation", "food", "transportation", "activities"},
			AdditionalProperties: false,
		},
	},
	Required:             []string{"itinerary", "costBreakdown"},
	AdditionalProperties: false,
}

// ValidationError is returned before any model call when the caller input is
// malformed.
type ValidationError struct {
	Violations []FieldViolation
}

type FieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func (e *ValidationError) Error() string {
	msgs := lo.Map(e.Violations, func(v FieldViolation, _ int) string {
		return violationMessage(v)
	})
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) StatusCode() int {
	return http.StatusBadRequest
}

func violationMessage(v FieldViolation) string {
	switch {
	case v.Field == "interests" && (v.Rule == "required" || v.Rule == "min"):
		return "Select at least one interest."
	case v.Field == "destinationCity":
		return "Destination city is required."
	case v.Rule == "oneof", v.Rule == "trip_duration":
		return fmt.Sprintf("%s has an unsupported value", v.Field)
	default:
		return fmt.Sprintf("%s is invalid (%s)", v.Field, v.Rule)
	}
}

// SchemaViolationError means the model answered, but not in the declared shape.
type SchemaViolationError struct {
	Schema string
	Err    error
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("AI response did not match the expected %s format: %v", e.Schema, e.Err)
}

func (e *SchemaViolationError) Unwrap() error {
	return e.Err
}

func (e *SchemaViolationError) StatusCode() int {
	return http.StatusBadGateway
}

var validate = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("trip_duration", func(fl validator.FieldLevel) bool {
		return lo.Contains(trip_models.TripDurations, fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	violations := make([]FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Field()
		// interests[0] -> interests
		if i := strings.IndexByte(field, '['); i > 0 {
			field = field[:i]
		}
		violations = append(violations, FieldViolation{Field: field, Rule: fe.Tag()})
	}

	return &ValidationError{Violations: lo.UniqBy(violations, func(v FieldViolation) string {
		return v.Field + "/" + v.Rule
	})}
}

// decodeModelOutput checks raw model output against schema and decodes it.
func decodeModelOutput[T any](raw []byte, name string, schema jsonschema.Definition) (T, error) {
	var out T
	if err := jsonschema.VerifySchemaAndUnmarshal(schema, trimCodeFence(raw), &out); err != nil {
		return out, &SchemaViolationError{Schema: name, Err: err}
	}
	return out, nil
}

// trimCodeFence drops a ```json ... ``` wrapper some models add.
func trimCodeFence(raw []byte) []byte {
	s := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(s, []byte("```")) {
		return s
	}
	s = bytes.TrimPrefix(s, []byte("```json"))
	s = bytes.TrimPrefix(s, []byte("```"))
	s = bytes.TrimSuffix(bytes.TrimSpace(s), []byte("```"))
	return bytes.TrimSpace(s)
}

// ValidatePreferences checks prefs against the request of the first AI call a
// planning run would make, so callers can reject bad input up front.
func ValidatePreferences(prefs trip_models.UserPreferences) error {
	if prefs.HasDestination() {
		return validateRequest(NewGenerateItineraryRequest(prefs, prefs.DestinationCity))
	}
	return validateRequest(NewSuggestCityRequest(prefs))
}
