package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port             int
	DatabaseURL      string
	DatabaseType     string
	SessionTokenSalt string
	SeedDemo         bool
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("pollcast", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.BoolVar(&cfg.SeedDemo, "seed-demo", false, "Insert demo polls at startup if the database is empty")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionTokenSalt, "session-salt", "", "Session token salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if !cfg.SeedDemo {
		cfg.SeedDemo = os.Getenv("SEED_DEMO") == "true"
	}

	// Secrets - MUST be provided
	if cfg.SessionTokenSalt == "" {
		cfg.SessionTokenSalt = os.Getenv("SESSION_TOKEN_SALT")
	}
	if cfg.SessionTokenSalt == "" {
		return Config{}, errors.New("SESSION_TOKEN_SALT required")
	}

	return cfg, nil
}

// DriverName maps the configured database type to its database/sql
// driver name.
func (c Config) DriverName() string {
	if c.DatabaseType == "postgres" {
		return "postgres"
	}
	return "sqlite"
}

// DSN returns the connection string to pass to sql.Open. On sqlite the
// driver leaves foreign key enforcement off unless the DSN asks for it,
// and without it ON DELETE CASCADE on votes is a no-op; the pragma is
// appended here so every open path gets it.
func (c Config) DSN() string {
	if c.DatabaseType == "postgres" {
		return c.DatabaseURL
	}
	sep := "?"
	if strings.Contains(c.DatabaseURL, "?") {
		sep = "&"
	}
	return c.DatabaseURL + sep + "_pragma=foreign_keys(1)"
}
