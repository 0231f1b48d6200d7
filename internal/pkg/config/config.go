package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3001"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// LogFormat is "console" or "json". Empty picks console in development.
	LogFormat string `env:"LOG_FORMAT"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=15s"`
	// AllowedOrigins lists browser origins allowed by CORS.
	AllowedOrigins []string `env:"CORS_ORIGINS"`

	Auth   AuthConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Notify NotifyConfig
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET, required"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,  default=24h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
	// LegacyIDTokens lets the employee gate accept tokens carrying a bare
	// "id" claim instead of an employee payload.
	LegacyIDTokens bool `env:"AUTH_LEGACY_ID_TOKENS, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hackathon"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type NotifyConfig struct {
	// KafkaBrokers enables Kafka delivery. Empty logs notifications instead.
	KafkaBrokers []string `env:"KAFKA_BROKERS"`
	KafkaTopic   string   `env:"KAFKA_TOPIC,    default=hrfeedback.notifications"`
	Workers      int      `env:"NOTIFY_WORKERS, default=8"`
}

// Pretty reports whether logs should use the console writer.
func (c *Config) Pretty() bool {
	switch c.LogFormat {
	case "console":
		return true
	case "json":
		return false
	}
	return c.Env == "development"
}

// Load reads an optional .env file, then configuration from environment
// variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("config: read .env: %w", err)
		}
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
