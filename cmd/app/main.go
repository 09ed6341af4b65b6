package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"wanderwise/cmd/fx/account_fx"
	"wanderwise/cmd/fx/ai_fx"
	"wanderwise/cmd/fx/contact_fx"
	"wanderwise/cmd/fx/controllers_fx"
	"wanderwise/cmd/fx/db_fx"
	"wanderwise/cmd/fx/export_fx"
	"wanderwise/cmd/fx/mail_fx"
	"wanderwise/cmd/fx/memcache_fx"
	"wanderwise/cmd/fx/planner_fx"
	"wanderwise/cmd/fx/saved_plan_fx"
	"wanderwise/internal/config"
	"wanderwise/internal/infra"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := infra.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint: errcheck

	app := fx.New(appOptions(cfg, logger)...)
	app.Run()
}

func appOptions(cfg *config.Config, logger *zap.Logger) []fx.Option {
	return []fx.Option{
		fx.Supply(cfg, logger),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),

		db_fx.Module,
		ai_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		planner_fx.Module,
		export_fx.Module,
		saved_plan_fx.Module(cfg.Storage.Driver),
		contact_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	}
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			ctx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
}
