package config

import "time"

const (
	DefaultAppName = "WanderWise"
	DefaultBaseURL = "http://localhost:3000"

	DefaultPort            = 8080
	DefaultMode            = "release"
	DefaultRatePerMinute   = 20
	DefaultRateBurst       = 5
	DefaultShutdownTimeout = 10 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultStorageDriver = "postgres"
	DefaultMongoDatabase = "wanderwise"

	DefaultAIProvider  = "gemini"
	DefaultGeminiModel = "gemini-1.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultTemperature = 0.7

	DefaultTokenTTL      = 24 * time.Hour
	DefaultResetTokenTTL = time.Hour

	DefaultSMTPPort = 587
)

var DefaultAllowedOrigins = []string{"http://localhost:3000"}
