// Package config loads server configuration from an optional config.yaml,
// FITTRACK_* environment variables and a local .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the API server.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Events    EventsConfig    `mapstructure:"events"`
	Nutrition NutritionConfig `mapstructure:"nutrition"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// AuthConfig holds the parameters used to verify bearer tokens. Tokens are
// issued elsewhere; this service only checks them.
type AuthConfig struct {
	JWTSecret      string `mapstructure:"jwt_secret"`
	JWTIssuer      string `mapstructure:"jwt_issuer"`
	JWTAudience    string `mapstructure:"jwt_audience"`
	RequirePremium bool   `mapstructure:"require_premium"`
}

type RateLimitConfig struct {
	PerSecond float64 `mapstructure:"per_second"`
	Burst     int     `mapstructure:"burst"`
}

// EventsConfig controls profile-updated publishing. No brokers means
// publishing is disabled.
type EventsConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type NutritionConfig struct {
	AdjustmentPolicy string `mapstructure:"adjustment_policy"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// Load reads configuration. Environment variables win over config.yaml, which
// wins over defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// server.port <- FITTRACK_SERVER_PORT
	v.SetEnvPrefix("FITTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadEnvFile loads variables from path into the process environment without
// overriding ones that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// setDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal, including the ones with no sensible default.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "15s")

	v.SetDefault("database.url", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_issuer", "")
	v.SetDefault("auth.jwt_audience", "")
	v.SetDefault("auth.require_premium", true)

	v.SetDefault("ratelimit.per_second", 10)
	v.SetDefault("ratelimit.burst", 20)

	v.SetDefault("events.brokers", []string{})
	v.SetDefault("events.topic", "fittrack.profile-updated")

	v.SetDefault("nutrition.adjustment_policy", "scaled")

	v.SetDefault("log.level", "info")
}

func validate(config *Config) error {
	if config.Database.URL == "" {
		return fmt.Errorf("database URL is required (set FITTRACK_DATABASE_URL)")
	}
	if config.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required (set FITTRACK_AUTH_JWT_SECRET)")
	}

	switch strings.ToLower(config.Nutrition.AdjustmentPolicy) {
	case "scaled", "flat":
	default:
		return fmt.Errorf("nutrition adjustment policy must be 'scaled' or 'flat', got: %s", config.Nutrition.AdjustmentPolicy)
	}

	if config.RateLimit.PerSecond <= 0 || config.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit per_second and burst must be positive")
	}

	if len(config.Events.Brokers) > 0 && config.Events.Topic == "" {
		return fmt.Errorf("events topic is required when brokers are configured")
	}

	return nil
}
