// Package config loads the service configuration from defaults, an optional
// config.yaml, a .env file and WANDERWISE_* environment variables.
package config

import "time"

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	AI      AIConfig      `mapstructure:"ai"`
	Auth    AuthConfig    `mapstructure:"auth"`
	SMTP    SMTPConfig    `mapstructure:"smtp"`
}

type AppConfig struct {
	Name         string `mapstructure:"name" validate:"required"`
	BaseURL      string `mapstructure:"base_url" validate:"required,url"`
	ContactInbox string `mapstructure:"contact_inbox" validate:"omitempty,email"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	Mode            string        `mapstructure:"mode" validate:"oneof=debug release test"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	RatePerMinute   int           `mapstructure:"rate_per_minute" validate:"min=1"`
	RateBurst       int           `mapstructure:"rate_burst" validate:"min=1"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=0"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

type StorageConfig struct {
	Driver        string `mapstructure:"driver" validate:"oneof=postgres mongo"`
	PostgresURL   string `mapstructure:"postgres_url" validate:"required"`
	MongoURI      string `mapstructure:"mongo_uri" validate:"required_if=Driver mongo"`
	MongoDatabase string `mapstructure:"mongo_database" validate:"required_if=Driver mongo"`
	AutoMigrate   bool   `mapstructure:"auto_migrate"`
}

type AIConfig struct {
	Provider     string  `mapstructure:"provider" validate:"oneof=gemini openai"`
	GeminiAPIKey string  `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`
	GeminiModel  string  `mapstructure:"gemini_model"`
	OpenAIAPIKey string  `mapstructure:"openai_api_key" validate:"required_if=Provider openai"`
	OpenAIModel  string  `mapstructure:"openai_model"`
	OpenAIURL    string  `mapstructure:"openai_base_url" validate:"omitempty,url"`
	Temperature  float32 `mapstructure:"temperature" validate:"min=0,max=2"`
}

type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret" validate:"required,min=16"`
	TokenTTL      time.Duration `mapstructure:"token_ttl" validate:"min=1m"`
	ResetTokenTTL time.Duration `mapstructure:"reset_token_ttl" validate:"min=1m"`
	AdminEmails   []string      `mapstructure:"admin_emails" validate:"dive,email"`
}

// SMTPConfig with an empty Host disables outgoing mail; messages are logged.
type SMTPConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port" validate:"required_with=Host"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	From       string `mapstructure:"from" validate:"omitempty,email"`
	FromName   string `mapstructure:"from_name"`
	UseSSL     bool   `mapstructure:"use_ssl"`
	RequireTLS bool   `mapstructure:"require_tls"`
}
