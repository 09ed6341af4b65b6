package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"wanderwise/pkg/utils"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthController struct {
	checks []HealthCheck
}

func NewHealthController(checks []HealthCheck) *HealthController {
	return &HealthController{checks: checks}
}

func (h *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{}
	healthy := true
	for _, hc := range h.checks {
		if err := hc.Check(ctx); err != nil {
			status[hc.Name] = err.Error()
			healthy = false
			continue
		}
		status[hc.Name] = "ok"
	}

	if !healthy {
		utils.RespondErrorWithData(c, http.StatusServiceUnavailable, "Unhealthy", status)
		return
	}
	utils.RespondSuccess(c, status, "ok")
}
