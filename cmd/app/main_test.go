package main

import (
	"testing"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap/zaptest"
	"wanderwise/internal/config"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "WanderWise", BaseURL: "http://localhost:3000"},
		Server:  config.ServerConfig{Port: 8080, Mode: "test", RatePerMinute: 10, RateBurst: 2, ShutdownTimeout: time.Second},
		Log:     config.LogConfig{Level: "debug", Format: "text"},
		Storage: config.StorageConfig{Driver: driver, PostgresURL: "postgres://localhost/test", MongoURI: "mongodb://localhost:27017", MongoDatabase: "test"},
		AI:      config.AIConfig{Provider: "gemini", GeminiAPIKey: "key", GeminiModel: "gemini-1.5-flash"},
		Auth:    config.AuthConfig{JWTSecret: "0123456789abcdef", TokenTTL: time.Hour, ResetTokenTTL: time.Hour},
	}
}

func TestDependencyGraph(t *testing.T) {
	for _, driver := range []string{"postgres", "mongo"} {
		t.Run(driver, func(t *testing.T) {
			if err := fx.ValidateApp(appOptions(testConfig(driver), zaptest.NewLogger(t))...); err != nil {
				t.Fatalf("invalid dependency graph: %v", err)
			}
		})
	}
}
