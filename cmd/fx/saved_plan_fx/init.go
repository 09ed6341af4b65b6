package saved_plan_fx

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"wanderwise/internal/api/controllers"
	"wanderwise/internal/config"
	"wanderwise/internal/infra"
	"wanderwise/internal/repositories"
	"wanderwise/internal/services"
)

// Module wires the saved plan repository for the configured storage driver.
func Module(driver string) fx.Option {
	common := fx.Provide(
		services.NewSavedPlanService,
		controllers.NewSavedPlanController,
	)

	if driver == "mongo" {
		return fx.Options(
			common,
			fx.Provide(provideMongoClient, provideMongoRepo),
		)
	}
	return fx.Options(
		common,
		fx.Provide(providePostgresRepo),
	)
}

func providePostgresRepo(db *gorm.DB) repositories.SavedPlanRepositoryInterface {
	return repositories.NewSavedPlanRepository(db)
}

func provideMongoClient(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*mongo.Client, error) {
	client, err := infra.InitMongo(context.Background(), cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})
	return client, nil
}

func provideMongoRepo(lc fx.Lifecycle, client *mongo.Client, cfg *config.Config) repositories.SavedPlanRepositoryInterface {
	repo := repositories.NewMongoSavedPlanRepository(client.Database(cfg.Storage.MongoDatabase))

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.(*repositories.MongoSavedPlanRepository).EnsureIndexes(ctx)
		},
	})
	return repo
}
