package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SavedPlan is one stored TripPlanResult. Suggestion and itinerary are kept
// as jsonb exactly as the model produced them.
type SavedPlan struct {
	BaseModel
	AccountID                     uuid.UUID      `gorm:"type:uuid;not null;index"`
	SavedAt                       int64          `gorm:"not null;index"`
	SuggestedCity                 datatypes.JSON `gorm:"type:jsonb"`
	ItineraryData                 datatypes.JSON `gorm:"type:jsonb"`
	FinalDestinationCityToDisplay string
	UploadedImageFileName         string
}
