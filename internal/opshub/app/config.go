package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	DBDriver     string `env:"OPSHUB_DB_DRIVER" envDefault:"sqlite"`       // sqlite or postgres
	DatabaseFile string `env:"OPSHUB_DATABASE_FILE" envDefault:"opshub.db"` // sqlite only
	DatabaseURL  string `env:"OPSHUB_DATABASE_URL"`                         // Required for postgres

	AcceptURLBase   string        `env:"OPSHUB_ACCEPT_URL_BASE" envDefault:"http://localhost:3000/accept-invite"`
	InviteTTL       time.Duration `env:"OPSHUB_INVITE_TTL" envDefault:"24h"`
	InviteSupersede bool          `env:"OPSHUB_INVITE_SUPERSEDE" envDefault:"false"` // Retire earlier live invites on reissue
	DefaultRoleCode string        `env:"OPSHUB_DEFAULT_ROLE" envDefault:"VIEWER"`

	Seed       bool   `env:"OPSHUB_SEED" envDefault:"true"`
	AdminEmail string `env:"OPSHUB_ADMIN_EMAIL" envDefault:"admin@opshub.io"`

	Env                  string        `env:"ENV" envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                 int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
	AuditRetention       time.Duration `env:"OPSHUB_AUDIT_RETENTION" envDefault:"2160h"` // 90 days, 0 keeps everything
}

// LoadConfig reads an optional .env file, then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return ParseConfig(env.Options{})
}

// ParseConfig parses and validates the configuration. Tests pass
// Environment to avoid touching the process environment.
func ParseConfig(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.DefaultRoleCode = strings.ToUpper(strings.TrimSpace(cfg.DefaultRoleCode))

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			return errors.New("OPSHUB_DATABASE_FILE is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("OPSHUB_DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("OPSHUB_DB_DRIVER must be sqlite or postgres, got %q", c.DBDriver)
	}

	if c.InviteTTL <= 0 {
		return errors.New("OPSHUB_INVITE_TTL must be positive")
	}
	if c.DefaultRoleCode == "" {
		return errors.New("OPSHUB_DEFAULT_ROLE must not be empty")
	}
	if c.AuditRetention < 0 {
		return errors.New("OPSHUB_AUDIT_RETENTION must not be negative")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}
