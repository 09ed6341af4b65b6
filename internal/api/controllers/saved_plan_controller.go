package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"wanderwise/internal/models/trip_models"
	"wanderwise/internal/services"
	"wanderwise/pkg/utils"
)

type SavedPlanController struct {
	savedPlanService services.SavedPlanServiceInterface
	exportService    services.ExportServiceInterface
}

func NewSavedPlanController(savedPlanService services.SavedPlanServiceInterface, exportService services.ExportServiceInterface) *SavedPlanController {
	return &SavedPlanController{savedPlanService: savedPlanService, exportService: exportService}
}

// Save godoc
// @Summary Save a plan for the current user
// @Tags SavedPlans
// @Accept json
// @Produce json
// @Param request body trip_models.TripPlanResult true "Plan"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /saved-plans [post]
func (s *SavedPlanController) Save(c *gin.Context) {
	var result trip_models.TripPlanResult
	if err := c.ShouldBindJSON(&result); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := s.savedPlanService.Save(c.Request.Context(), c.GetString("user_id"), result)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, plan, "Trip saved")
}

// List godoc
// @Summary List saved plans, newest first
// @Tags SavedPlans
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /saved-plans [get]
func (s *SavedPlanController) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		utils.HandleServiceError(c, utils.ErrInvalidPage)
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil {
		utils.HandleServiceError(c, utils.ErrInvalidPageSize)
		return
	}

	plans, err := s.savedPlanService.List(c.Request.Context(), c.GetString("user_id"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Saved plans fetched successfully")
}

func (s *SavedPlanController) Get(c *gin.Context) {
	plan, err := s.savedPlanService.Get(c.Request.Context(), c.GetString("user_id"), c.Param("planId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Saved plan fetched successfully")
}

func (s *SavedPlanController) Delete(c *gin.Context) {
	if err := s.savedPlanService.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("planId")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Saved plan deleted")
}

func (s *SavedPlanController) PDF(c *gin.Context) {
	plan, err := s.savedPlanService.Get(c.Request.Context(), c.GetString("user_id"), c.Param("planId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	writePDF(c, s.exportService, plan.TripPlanResult)
}
