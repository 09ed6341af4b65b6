package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"wanderwise/internal/api/controllers"
	"wanderwise/internal/config"
	"wanderwise/internal/models/db_models"
	"wanderwise/pkg/middleware"
	"wanderwise/pkg/utils"
)

type RouterParams struct {
	fx.In

	Config     *config.Config
	Logger     *zap.Logger
	JWT        *utils.JWTManager
	Health     *controllers.HealthController
	Planner    *controllers.PlannerController
	Export     *controllers.ExportController
	Account    *controllers.AccountController
	SavedPlans *controllers.SavedPlanController
	Contact    *controllers.ContactController
}

func ProvideRouter(p RouterParams) *gin.Engine {
	gin.SetMode(p.Config.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Logger))
	r.Use(middleware.CORSMiddleware(p.Config.Server.AllowedOrigins))

	limiter := middleware.NewRateLimiter(p.Config.Server.RatePerMinute, p.Config.Server.RateBurst, 10*time.Minute)
	RegisterRoutes(r, p, limiter)

	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams, limiter *middleware.RateLimiter) {
	auth := middleware.JWTAuthMiddleware(p.JWT)

	r.GET("/healthz", p.Health.Health)

	plannerGroup := r.Group("/planner", limiter.Limit())
	plannerGroup.POST("/plan", p.Planner.Plan)
	plannerGroup.POST("/suggest-city", p.Planner.SuggestCity)
	plannerGroup.POST("/itinerary", p.Planner.GenerateItinerary)

	exportGroup := r.Group("/exports")
	exportGroup.POST("/text", p.Export.Text)
	exportGroup.POST("/pdf", p.Export.PDF)
	exportGroup.POST("/share", p.Export.Share)
	exportGroup.POST("/cost-summary", p.Export.CostSummary)

	accountGroup := r.Group("/accounts")
	accountGroup.POST("/register", p.Account.Register)
	accountGroup.POST("/login", limiter.Limit(), p.Account.Login)
	accountGroup.POST("/forgot-password", limiter.Limit(), p.Account.ForgotPassword)
	accountGroup.POST("/reset-password", p.Account.ResetPassword)
	accountGroup.GET("/me", auth, p.Account.GetMe)
	accountGroup.PUT("/me", auth, p.Account.UpdateMe)

	savedGroup := r.Group("/saved-plans", auth)
	savedGroup.POST("", p.SavedPlans.Save)
	savedGroup.GET("", p.SavedPlans.List)
	savedGroup.GET("/:planId", p.SavedPlans.Get)
	savedGroup.DELETE("/:planId", p.SavedPlans.Delete)
	savedGroup.GET("/:planId/pdf", p.SavedPlans.PDF)

	contactGroup := r.Group("/contact")
	contactGroup.POST("", limiter.Limit(), p.Contact.Submit)
	contactGroup.GET("", auth, middleware.RoleMiddleware(db_models.RoleAdmin), p.Contact.List)
}
