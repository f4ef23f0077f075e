package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Admin    AdminConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port        string   `env:"SERVER_PORT" envDefault:"8080"`
	Env         string   `env:"SERVER_ENV" envDefault:"development"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver      string `env:"DB_DRIVER" envDefault:"postgres"`
	Host        string `env:"DB_HOST" envDefault:"localhost"`
	Port        int    `env:"DB_PORT" envDefault:"5432"`
	User        string `env:"DB_USER" envDefault:"postgres"`
	Password    string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName      string `env:"DB_NAME" envDefault:"localtrade"`
	SSLMode     string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath  string `env:"DB_SQLITE_PATH" envDefault:"localtrade.db"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration. An empty URL disables Redis.
type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	PASSWORD string `env:"REDIS_PASSWORD"`
}

// AuthConfig holds wallet authentication settings
type AuthConfig struct {
	// AllowAnonymous maps requests without a wallet header to the placeholder wallet.
	AllowAnonymous bool `env:"AUTH_ALLOW_ANONYMOUS" envDefault:"false"`
}

// AdminConfig holds admin dashboard settings
type AdminConfig struct {
	StatsCacheTTL time.Duration `env:"STATS_CACHE_TTL" envDefault:"30s"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Database.Driver != "postgres" && cfg.Database.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	return cfg, nil
}
