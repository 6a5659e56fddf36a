package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	BaseURL  string `env:"BASE_URL, default=http://localhost:8080"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionSecret verifies identity-provider assertions and must match the
	// provider gateway's signing secret.
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL, default=168h"`

	// MinPower is the minimum upstream privilege level accepted by the
	// credential validation flow.
	MinPower int `env:"MIN_POWER, default=5"`

	Upstream UpstreamConfig
	Redis    RedisConfig
	Mongo    MongoConfig
}

type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL, default=https://grust.co/api"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT,  default=30s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=grust_panel"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
