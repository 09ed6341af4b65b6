package controllers_fx

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"wanderwise/internal/api/controllers"
	"wanderwise/internal/infra"
)

var Module = fx.Options(
	fx.Provide(provideHealthController))

type healthDeps struct {
	fx.In

	DB    *gorm.DB
	Mongo *mongo.Client `optional:"true"`
}

func provideHealthController(deps healthDeps) *controllers.HealthController {
	checks := []controllers.HealthCheck{{Name: "postgres", Check: infra.PingPostgresql(deps.DB)}}
	if deps.Mongo != nil {
		checks = append(checks, controllers.HealthCheck{Name: "mongo", Check: infra.PingMongo(deps.Mongo)})
	}
	return controllers.NewHealthController(checks)
}
