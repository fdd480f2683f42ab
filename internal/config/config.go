package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yigit/gpacalc/internal/app/models"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"SERVER_PORT"`
		Mode           string   `yaml:"mode" env:"SERVER_MODE"`
		AllowedOrigins []string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`
	} `yaml:"server"`

	Session struct {
		Store           string `yaml:"store" env:"SESSION_STORE"`
		TTL             string `yaml:"ttl" env:"SESSION_TTL"`
		CleanupInterval string `yaml:"cleanup_interval" env:"SESSION_CLEANUP_INTERVAL"`
		SeedFile        string `yaml:"seed_file" env:"SESSION_SEED_FILE"`
	} `yaml:"session"`

	Token struct {
		Secret string `yaml:"secret" env:"TOKEN_SECRET"`
		Issuer string `yaml:"issuer" env:"TOKEN_ISSUER"`
	} `yaml:"token"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
		SQLitePath      string `yaml:"sqlite_path" env:"DB_SQLITE_PATH"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The file is optional; environment variables alone are enough
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

	config.Session.Store = string(models.SessionStoreMemory)
	config.Session.TTL = "24h"
	config.Session.CleanupInterval = "5m"

	config.Token.Issuer = "gpacalc.app"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "gpacalc"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"
	config.Database.SQLitePath = "gpacalc.db"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return applyEnvOverrides(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch models.SessionStore(strings.ToLower(config.Session.Store)) {
	case models.SessionStoreMemory, models.SessionStorePostgres, models.SessionStoreSQLite:
	default:
		return fmt.Errorf("unsupported session store %q", config.Session.Store)
	}

	if config.Token.Secret == "" {
		return fmt.Errorf("token secret is required")
	}

	ttl, err := time.ParseDuration(config.Session.TTL)
	if err != nil {
		return fmt.Errorf("invalid session ttl format: %w", err)
	}
	if ttl <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}

	if _, err := time.ParseDuration(config.Session.CleanupInterval); err != nil {
		return fmt.Errorf("invalid session cleanup interval format: %w", err)
	}

	if config.StoreKind() == models.SessionStorePostgres && config.Database.Host == "" {
		return fmt.Errorf("database host is required for the postgres session store")
	}

	return nil
}

// StoreKind returns the configured session backend
func (c *Config) StoreKind() models.SessionStore {
	return models.SessionStore(strings.ToLower(c.Session.Store))
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
