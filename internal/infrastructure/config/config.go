package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth          AuthConfig
	Mongo         MongoConfig
	Redis         RedisConfig
	Notifications NotificationConfig

	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`
}

// AuthConfig holds the secrets and knobs of the auth core. Both secrets are
// required; the process does not start without them.
type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET, required"`
	EncKey     string        `env:"ENC_KEY,    required"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=pawsreunite"`
}

type RedisConfig struct {
	Addr         string        `env:"REDIS_ADDR,     default=localhost:6379"`
	DB           int           `env:"REDIS_DB,       default=0"`
	RoleCacheTTL time.Duration `env:"ROLE_CACHE_TTL, default=10m"`
}

type NotificationConfig struct {
	Workers   int `env:"NOTIFY_WORKERS,    default=4"`
	QueueSize int `env:"NOTIFY_QUEUE_SIZE, default=256"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from the process environment using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load that panics on a missing or malformed variable.
func MustLoad(ctx context.Context) *Config {
	cfg, err := Load(ctx)
	if err != nil {
		panic(err)
	}
	return cfg
}
