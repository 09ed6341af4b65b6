package controllers

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"wanderwise/internal/models/request_models"
	"wanderwise/internal/models/response_models"
	"wanderwise/internal/models/trip_models"
	"wanderwise/internal/services"
	"wanderwise/pkg/utils"
)

type ExportController struct {
	exportService services.ExportServiceInterface
}

func NewExportController(exportService services.ExportServiceInterface) *ExportController {
	return &ExportController{exportService: exportService}
}

// Text godoc
// @Summary Plain text version of a plan
// @Tags Exports
// @Accept json
// @Produce json
// @Param concise query bool false "Short share text"
// @Param request body trip_models.TripPlanResult true "Plan"
// @Success 200 {object} utils.APIResponse
// @Router /exports/text [post]
func (e *ExportController) Text(c *gin.Context) {
	var result trip_models.TripPlanResult
	if err := c.ShouldBindJSON(&result); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	concise, _ := strconv.ParseBool(c.DefaultQuery("concise", "false"))
	text, err := e.exportService.FormatText(result, concise)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.TextExportResponse{Text: text}, "Plan exported successfully")
}

// PDF godoc
// @Summary Download a plan as PDF
// @Tags Exports
// @Accept json
// @Produce application/pdf
// @Param request body trip_models.TripPlanResult true "Plan"
// @Router /exports/pdf [post]
func (e *ExportController) PDF(c *gin.Context) {
	var result trip_models.TripPlanResult
	if err := c.ShouldBindJSON(&result); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	writePDF(c, e.exportService, result)
}

func writePDF(c *gin.Context, exportService services.ExportServiceInterface, result trip_models.TripPlanResult) {
	pdf, err := exportService.RenderPDF(result)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportService.PDFFileName(result)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Share godoc
// @Summary Build a WhatsApp or Telegram share link
// @Tags Exports
// @Accept json
// @Produce json
// @Param qr query bool false "Also return a QR code PNG as base64"
// @Param request body request_models.ShareRequest true "Share payload"
// @Success 200 {object} utils.APIResponse
// @Router /exports/share [post]
func (e *ExportController) Share(c *gin.Context) {
	var req request_models.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	link, err := e.exportService.ShareLink(req.Result, req.Platform, req.PageURL)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	resp := response_models.ShareResponse{Platform: req.Platform, URL: link}
	if withQR, _ := strconv.ParseBool(c.DefaultQuery("qr", "false")); withQR {
		png, err := e.exportService.ShareQRCode(link)
		if err != nil {
			utils.HandleServiceError(c, err)
			return
		}
		resp.QRCode = base64.StdEncoding.EncodeToString(png)
	}

	utils.RespondSuccess(c, resp, "Share link created")
}

// CostSummary godoc
// @Summary Parse cost ranges and total them
// @Tags Exports
// @Accept json
// @Produce json
// @Param request body trip_models.CostBreakdown true "Cost breakdown"
// @Success 200 {object} utils.APIResponse
// @Router /exports/cost-summary [post]
func (e *ExportController) CostSummary(c *gin.Context) {
	var breakdown trip_models.CostBreakdown
	if err := c.ShouldBindJSON(&breakdown); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	utils.RespondSuccess(c, e.exportService.CostSummary(breakdown), "Cost summary computed")
}
