package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"wanderwise/internal/config"
	"wanderwise/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *config.Config, logger *zap.Logger) services.IMailService {
	smtp := cfg.SMTP
	if smtp.Host == "" {
		logger.Warn("SMTP host not configured, outgoing mail will only be logged")
	}

	return services.NewSMTPMailService(services.SMTPConfig{
		Host:       smtp.Host,
		Port:       smtp.Port,
		Username:   smtp.Username,
		Password:   smtp.Password,
		From:       smtp.From,
		FromName:   smtp.FromName,
		UseSSL:     smtp.UseSSL,
		RequireTLS: smtp.RequireTLS,
		AppName:    cfg.App.Name,
		AppBaseURL: cfg.App.BaseURL,
	}, logger)
}
