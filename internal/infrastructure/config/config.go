package config

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StorageFile  = "file"
	StorageRedis = "redis"
	StorageMongo = "mongo"
)

// Config is shared by the portal CLI and the sandbox backend; each binary
// reads the fields it needs.
type Config struct {
	BaseURL             string        `env:"PORTAL_BASE_URL,       default=http://localhost:8080"`
	Storage             string        `env:"PORTAL_STORAGE,        default=file"`
	StateDir            string        `env:"PORTAL_STATE_DIR"`
	LogLevel            string        `env:"LOG_LEVEL,             default=info"`
	LogPretty           bool          `env:"LOG_PRETTY,            default=false"`
	LogoutNotifyTimeout time.Duration `env:"LOGOUT_NOTIFY_TIMEOUT, default=10s"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Sandbox SandboxConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=order_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Prefix   string `env:"REDIS_PREFIX,   default=portal:"`
}

type SandboxConfig struct {
	Port            string        `env:"SANDBOX_PORT,      default=8080"`
	JWTSecret       string        `env:"JWT_SECRET,        default=sandbox-dev-secret"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`
	// TokenStore selects where issued refresh tokens live: memory or redis.
	TokenStore string `env:"SANDBOX_TOKEN_STORE, default=memory"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageFile, StorageRedis, StorageMongo:
	default:
		return fmt.Errorf("config: PORTAL_STORAGE must be file, redis or mongo, got %q", c.Storage)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: PORTAL_BASE_URL %q is not an absolute URL", c.BaseURL)
	}
	switch c.Sandbox.TokenStore {
	case "memory", StorageRedis:
	default:
		return fmt.Errorf("config: SANDBOX_TOKEN_STORE must be memory or redis, got %q", c.Sandbox.TokenStore)
	}
	if c.Sandbox.AccessTokenTTL <= 0 || c.Sandbox.RefreshTokenTTL <= 0 {
		return fmt.Errorf("config: token TTLs must be positive")
	}
	return nil
}
