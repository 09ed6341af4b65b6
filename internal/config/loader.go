package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "WANDERWISE"

var ErrConfiguration = errors.New("configuration error")

// Load reads configuration in this order, later sources winning:
// defaults, config.yaml in the working directory, environment (a .env file is
// loaded into the environment first when present).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: failed to read .env: %v", ErrConfiguration, err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: failed to read config file: %v", ErrConfiguration, err)
		}
	}

	return LoadFrom(v)
}

// LoadFrom applies defaults and environment bindings to v and decodes it.
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}

// setDefaults registers every key, which also lets AutomaticEnv see keys that
// are not in config.yaml.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", DefaultAppName)
	v.SetDefault("app.base_url", DefaultBaseURL)
	v.SetDefault("app.contact_inbox", "")

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.mode", DefaultMode)
	v.SetDefault("server.allowed_origins", DefaultAllowedOrigins)
	v.SetDefault("server.rate_per_minute", DefaultRatePerMinute)
	v.SetDefault("server.rate_burst", DefaultRateBurst)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	v.SetDefault("storage.driver", DefaultStorageDriver)
	v.SetDefault("storage.postgres_url", "")
	v.SetDefault("storage.mongo_uri", "")
	v.SetDefault("storage.mongo_database", DefaultMongoDatabase)
	v.SetDefault("storage.auto_migrate", true)

	v.SetDefault("ai.provider", DefaultAIProvider)
	v.SetDefault("ai.gemini_api_key", "")
	v.SetDefault("ai.gemini_model", DefaultGeminiModel)
	v.SetDefault("ai.openai_api_key", "")
	v.SetDefault("ai.openai_model", DefaultOpenAIModel)
	v.SetDefault("ai.openai_base_url", "")
	v.SetDefault("ai.temperature", DefaultTemperature)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", DefaultTokenTTL)
	v.SetDefault("auth.reset_token_ttl", DefaultResetTokenTTL)
	v.SetDefault("auth.admin_emails", []string{})

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", DefaultSMTPPort)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")
	v.SetDefault("smtp.from_name", DefaultAppName)
	v.SetDefault("smtp.use_ssl", false)
	v.SetDefault("smtp.require_tls", true)
}
