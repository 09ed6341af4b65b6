package contact_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"wanderwise/internal/api/controllers"
	"wanderwise/internal/config"
	"wanderwise/internal/repositories"
	"wanderwise/internal/services"
)

var Module = fx.Provide(
	repositories.NewContactRepository, provideContactService, controllers.NewContactController,
)

func provideContactService(
	contactRepo repositories.ContactRepositoryInterface,
	mail services.IMailService,
	cfg *config.Config,
	logger *zap.Logger,
) services.ContactServiceInterface {
	return services.NewContactService(contactRepo, mail, cfg.App.ContactInbox, logger)
}
