package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/hlop3z/migrala/internal/dialect"
	"github.com/hlop3z/migrala/internal/merr"
)

// Config represents the migrala.yaml configuration file.
type Config struct {
	DatabaseURL string `yaml:"database_url"`
	Dialect     string `yaml:"dialect"`
	Strict      bool   `yaml:"strict"`
}

// bindConfigFlags registers the global flags on a flag set.
func bindConfigFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&databaseURL, "database-url", "d", "", "Database connection URL")
	fs.StringVar(&dialectName, "dialect", "", "Target dialect (sqlserver, mysql, postgres, sqlite)")
	fs.StringVarP(&configFile, "config", "c", "migrala.yaml", "Path to config file")
	fs.BoolVar(&plainOutput, "plain", false, "Disable colored output")
}

// loadConfig loads configuration from file, env vars, and CLI flags.
// Precedence: CLI flags > env vars > config file > defaults
func loadConfig() (*Config, error) {
	cfg := &Config{}

	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		// Handle env var interpolation in database_url
		cfg.DatabaseURL = os.Expand(cfg.DatabaseURL, os.Getenv)
	}

	if envURL := os.Getenv("DATABASE_URL"); envURL != "" {
		cfg.DatabaseURL = envURL
	}
	if envDialect := os.Getenv("MIGRALA_DIALECT"); envDialect != "" {
		cfg.Dialect = envDialect
	}

	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	if dialectName != "" {
		cfg.Dialect = dialectName
	}

	return cfg, nil
}

// openDatabase resolves the dialect and opens the database handle.
func openDatabase(cfg *Config) (*sql.DB, dialect.Dialect, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, merr.New(merr.ErrConfigMissing,
			"no database URL (use --database-url, DATABASE_URL, or migrala.yaml)")
	}
	name := cfg.Dialect
	if name == "" {
		name = detectDialect(cfg.DatabaseURL)
	}
	d := dialect.Get(name)
	if d == nil {
		return nil, nil, merr.New(merr.ErrUnknownDialect, "unsupported dialect").
			With("dialect", name)
	}

	var driver, dsn string
	switch d.Name() {
	case "postgres":
		driver, dsn = "postgres", cfg.DatabaseURL
	case "mysql":
		driver, dsn = "mysql", strings.TrimPrefix(cfg.DatabaseURL, "mysql://")
	case "sqlite":
		driver, dsn = "sqlite", strings.TrimPrefix(cfg.DatabaseURL, "sqlite://")
	default:
		return nil, nil, merr.New(merr.ErrSQLConnection, "no driver available for dialect").
			With("dialect", d.Name())
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, merr.Wrap(merr.ErrSQLConnection, err, "failed to open database").
			With("dialect", d.Name())
	}
	return db, d, nil
}

// detectDialect guesses the dialect from the connection URL.
func detectDialect(url string) string {
	lower := strings.ToLower(url)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return "postgres"
	case strings.HasPrefix(lower, "mysql://"), strings.Contains(lower, "@tcp("):
		return "mysql"
	case strings.HasPrefix(lower, "sqlserver://"), strings.HasPrefix(lower, "mssql://"):
		return "sqlserver"
	default:
		return "sqlite"
	}
}
