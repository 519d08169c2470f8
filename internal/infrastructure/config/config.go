package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	UserTokenTTL     time.Duration `env:"USER_TOKEN_TTL,     default=72h"`
	OperatorTokenTTL time.Duration `env:"OPERATOR_TOKEN_TTL, default=24h"`

	Mongo    MongoConfig
	Redis    RedisConfig
	AMQP     AMQPConfig
	Activity ActivityConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=explorer"`
}

type RedisConfig struct {
	Addr       string        `env:"REDIS_ADDR,        default=localhost:6379"`
	DB         int           `env:"REDIS_DB,          default=0"`
	Password   string        `env:"REDIS_PASSWORD"`
	HeatmapTTL time.Duration `env:"HEATMAP_CACHE_TTL, default=1m"`
}

// AMQPConfig is optional: an empty URL disables the broker and activity
// events are only logged.
type AMQPConfig struct {
	URL      string `env:"AMQP_URL"`
	Exchange string `env:"AMQP_EXCHANGE, default=explorer.activity"`
}

type ActivityConfig struct {
	Workers int `env:"EVENT_WORKERS, default=4"`
}

// IsProduction reports whether the service runs with production defaults
// (JSON logs).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
