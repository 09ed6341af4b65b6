package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"wanderwise/internal/api/controllers"
	"wanderwise/internal/config"
	"wanderwise/internal/repositories"
	"wanderwise/internal/services"
	mem "wanderwise/pkg/memcache"
	"wanderwise/pkg/utils"
)

var Module = fx.Provide(
	repositories.NewAccountRepository,
	provideJWTManager,
	provideAccountService,
	controllers.NewAccountController,
)

func provideJWTManager(cfg *config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	jwt *utils.JWTManager,
	resetTokens mem.ResetTokenStore,
	mailService services.IMailService,
	cfg *config.Config,
	logger *zap.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, jwt, resetTokens, cfg.Auth.ResetTokenTTL, mailService, cfg.Auth.AdminEmails, logger)
}
