package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff"
)

// Config holds process settings. Every flag may also be set through the
// environment variable of the same name, upper-cased with dashes as underscores.
type Config struct {
	Port            string
	DBDriver        string
	DBPath          string
	DatabaseURL     string
	SeedPath        string
	Timezone        string
	FinishTolerance float64
	Debug           bool

	// DotEnvLoaded reports whether a .env file was found.
	DotEnvLoaded bool
}

// Load reads .env (when present), then flags from args with environment fallback.
func Load(name string, args []string) (Config, error) {
	var cfg Config
	cfg.DotEnvLoaded = godotenv.Load() == nil

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.Port, "port", "8080", "HTTP listen port")
	fs.StringVar(&cfg.DBDriver, "db-driver", "sqlite", "storage driver: sqlite or postgres")
	fs.StringVar(&cfg.DBPath, "db-path", "data/brevets.db", "SQLite database file")
	fs.StringVar(&cfg.DatabaseURL, "database-url", "", "Postgres connection URL")
	fs.StringVar(&cfg.SeedPath, "seed-path", "", "optional JSON control sheet loaded at startup")
	fs.StringVar(&cfg.Timezone, "timezone", "UTC", "zone for start times given without an offset")
	fs.Float64Var(&cfg.FinishTolerance, "finish-tolerance", 0.20, "fraction of the brevet distance a final control may exceed it")
	fs.BoolVar(&cfg.Debug, "debug", false, "development logging")

	if err := ff.Parse(fs, args, ff.WithEnvVarNoPrefix()); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.DBDriver {
	case "sqlite":
		if c.DBPath == "" {
			return errors.New("db-path is required for the sqlite driver")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("database-url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported db-driver %q", c.DBDriver)
	}

	if c.FinishTolerance < 0 {
		return fmt.Errorf("finish-tolerance must not be negative, got %v", c.FinishTolerance)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
