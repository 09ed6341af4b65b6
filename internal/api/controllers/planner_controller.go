package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"wanderwise/internal/models/request_models"
	"wanderwise/internal/services"
	"wanderwise/pkg/utils"
)

type PlannerController struct {
	planners *services.TripPlannerFactory
}

func NewPlannerController(planners *services.TripPlannerFactory) *PlannerController {
	return &PlannerController{planners: planners}
}

// Plan godoc
// @Summary Plan a trip
// @Description Suggests a city when none is given, then generates the itinerary.
// @Description On failure the snapshot, including any city already suggested, is returned in data.
// @Tags Planner
// @Accept json
// @Produce json
// @Param request body request_models.PlanRequest true "Trip preferences"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /planner/plan [post]
func (p *PlannerController) Plan(c *gin.Context) {
	var req request_models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	prefs := req.ToPreferences()
	if err := services.ValidatePreferences(prefs); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	snapshot := p.planners.New(c.GetString("trace_id")).Submit(c.Request.Context(), prefs)
	if snapshot.State == services.StateFailed {
		utils.RespondErrorWithData(c, http.StatusBadGateway, snapshot.Error, snapshot)
		return
	}

	utils.RespondSuccess(c, snapshot, "Trip planned successfully")
}

// SuggestCity godoc
// @Summary Suggest a destination city
// @Tags Planner
// @Accept json
// @Produce json
// @Param request body request_models.PlanRequest true "Trip preferences"
// @Success 200 {object} utils.APIResponse
// @Router /planner/suggest-city [post]
func (p *PlannerController) SuggestCity(c *gin.Context) {
	var req request_models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	suggestion, err := p.planners.SuggestCity(c.Request.Context(), req.ToPreferences())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if strings.TrimSpace(suggestion.SuggestedCity) == "" {
		utils.RespondError(c, http.StatusBadGateway, services.MsgSuggestionFailed)
		return
	}

	utils.RespondSuccess(c, suggestion, "City suggested successfully")
}

// GenerateItinerary godoc
// @Summary Generate an itinerary for a city
// @Tags Planner
// @Accept json
// @Produce json
// @Param request body request_models.PlanRequest true "Trip preferences with destinationCity"
// @Success 200 {object} utils.APIResponse
// @Router /planner/itinerary [post]
func (p *PlannerController) GenerateItinerary(c *gin.Context) {
	var req request_models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	prefs := req.ToPreferences()
	itinerary, err := p.planners.GenerateItinerary(c.Request.Context(), prefs, prefs.DestinationCity)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary generated successfully")
}
