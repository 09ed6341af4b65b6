package request_models

import "wanderwise/internal/models/trip_models"

type ShareRequest struct {
	Result   trip_models.TripPlanResult `json:"result"`
	Platform string                     `json:"platform" binding:"required,oneof=whatsapp telegram"`
	PageURL  string                     `json:"pageUrl" binding:"omitempty,url"`
}
