// Package migrala is the public entry point of the Migrala schema
// migration library. A Client owns a migration registry and a database
// connection; migration authors register versioned units built with the
// fluent schema API and ask the client to move the database between
// versions.
//
// Example:
//
//	client, err := migrala.New(
//	    migrala.WithDatabaseURL("postgres://localhost/mydb"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.Register(migrala.Migration{
//	    Version: 1,
//	    Name:    "create_users",
//	    Up: func(s *migrala.Schema) {
//	        s.CreateTable("users").
//	            Column("id", migrala.Int).AutoIncrement().
//	            Column("name", migrala.VarChar).Size(50).
//	            PrimaryKey("id")
//	    },
//	})
//
//	if _, err := client.Latest(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
package migrala

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/hlop3z/migrala/internal/ast"
	"github.com/hlop3z/migrala/internal/builder"
	"github.com/hlop3z/migrala/internal/dialect"
	"github.com/hlop3z/migrala/internal/engine"
	"github.com/hlop3z/migrala/internal/engine/runner"
	"github.com/hlop3z/migrala/internal/merr"
	"github.com/hlop3z/migrala/internal/sqlgen"
)

// Schema is the fluent builder handed to migration Up/Down functions.
type Schema = builder.Builder

// Migration is one versioned migration unit.
type Migration struct {
	Version int64
	Name    string
	Up      func(*Schema)
	Down    func(*Schema)
}

// Re-exported semantic column types for use in migration definitions.
const (
	Guid        = ast.Guid
	TinyInt     = ast.TinyInt
	SmallInt    = ast.SmallInt
	Int         = ast.Int
	BigInt      = ast.BigInt
	Single      = ast.Single
	Double      = ast.Double
	Decimal     = ast.Decimal
	Currency    = ast.Currency
	Boolean     = ast.Boolean
	Char        = ast.Char
	VarChar     = ast.VarChar
	VarCharMax  = ast.VarCharMax
	NChar       = ast.NChar
	NVarChar    = ast.NVarChar
	NVarCharMax = ast.NVarCharMax
	Text        = ast.Text
	NText       = ast.NText
	Xml         = ast.Xml
	Date        = ast.Date
	Time        = ast.Time
	DateTime    = ast.DateTime
	TimeStamp   = ast.TimeStamp
	TimeSpan    = ast.TimeSpan
)

// Client is the main entry point. Create one with New and close it
// with Close when done.
type Client struct {
	db       *sql.DB
	dialect  dialect.Dialect
	config   *Config
	registry *engine.Registry
	runner   *runner.Runner
	ledger   engine.Ledger
	ownsDB   bool
}

// New creates a client. Either WithDB or WithDatabaseURL must be
// provided; the dialect is auto-detected from the URL when not set
// explicitly.
func New(opts ...Option) (*Client, error) {
	cfg := &Config{
		Timeout: 30 * time.Second,
		Logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Dialect == "" {
		cfg.Dialect = detectDialect(cfg.DatabaseURL)
	}
	d := dialect.Get(cfg.Dialect)
	if d == nil {
		return nil, merr.New(merr.ErrUnknownDialect, "unsupported dialect").
			With("dialect", cfg.Dialect)
	}

	db := cfg.DB
	ownsDB := false
	if db == nil {
		if cfg.DatabaseURL == "" {
			return nil, merr.New(merr.ErrConfigMissing, "a database URL or open handle is required")
		}
		opened, err := openDatabase(cfg.DatabaseURL, d.Name())
		if err != nil {
			return nil, err
		}
		db = opened
		ownsDB = true

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, merr.Wrap(merr.ErrSQLConnection, err, "failed to connect").
				With("dialect", d.Name())
		}
	}

	ledger := cfg.Ledger
	if ledger == nil {
		ledger = engine.NewLedger(db, d)
	}

	runOpts := []runner.Option{
		runner.WithLedger(ledger),
		runner.WithLogger(cfg.Logger),
	}
	if cfg.Strict {
		runOpts = append(runOpts, runner.WithStrict())
	}
	if cfg.Before != nil {
		runOpts = append(runOpts, runner.WithBeforeHook(cfg.Before))
	}
	if cfg.After != nil {
		runOpts = append(runOpts, runner.WithAfterHook(cfg.After))
	}

	return &Client{
		db:       db,
		dialect:  d,
		config:   cfg,
		registry: engine.NewRegistry(),
		runner:   runner.New(db, d, runOpts...),
		ledger:   ledger,
		ownsDB:   ownsDB,
	}, nil
}

// Close releases the database connection when the client opened it.
func (c *Client) Close() error {
	if c.ownsDB && c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Dialect returns the name of the active dialect.
func (c *Client) Dialect() string {
	return c.dialect.Name()
}

// Register adds a migration unit. Versions must be positive and unique.
func (c *Client) Register(m Migration) error {
	em := engine.Migration{Version: m.Version, Name: m.Name}
	if m.Up != nil {
		up := m.Up
		em.Up = func(cs *ast.Changeset) { up(builder.For(cs)) }
	}
	if m.Down != nil {
		down := m.Down
		em.Down = func(cs *ast.Changeset) { down(builder.For(cs)) }
	}
	return c.registry.Add(em)
}

// MustRegister is Register, panicking on error. For package-level
// migration registration in init functions.
func (c *Client) MustRegister(m Migration) {
	if err := c.Register(m); err != nil {
		panic(err)
	}
}

// CurrentVersion returns the database's current migration version.
func (c *Client) CurrentVersion(ctx context.Context) (int64, error) {
	if err := c.ledger.EnsureTable(ctx); err != nil {
		return 0, err
	}
	return c.ledger.CurrentVersion(ctx)
}

// MigrateTo moves the database to the target version, upgrading or
// rolling back as needed.
func (c *Client) MigrateTo(ctx context.Context, target int64) (*runner.Result, error) {
	current, err := c.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	plan, err := c.registry.Plan(current, target)
	if err != nil {
		return nil, err
	}
	return c.runner.Run(ctx, plan)
}

// Latest migrates to the highest registered version.
func (c *Client) Latest(ctx context.Context) (*runner.Result, error) {
	return c.MigrateTo(ctx, c.registry.Latest())
}

// Rollback reverts to the target version (0 reverts everything).
func (c *Client) Rollback(ctx context.Context, target int64) (*runner.Result, error) {
	current, err := c.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	if target > current {
		return nil, merr.New(merr.ErrVersionConflict, "rollback target is above the current version").
			WithVersion(target).
			With("current", current)
	}
	plan, err := c.registry.Plan(current, target)
	if err != nil {
		return nil, err
	}
	return c.runner.Run(ctx, plan)
}

// MarkApplied records a version in the ledger without executing it.
// For adopting databases migrated by other means.
func (c *Client) MarkApplied(ctx context.Context, version int64) error {
	if _, ok := c.registry.Get(version); !ok {
		return merr.New(merr.ErrMigrationNotFound, "version is not registered").
			WithVersion(version)
	}
	if err := c.ledger.EnsureTable(ctx); err != nil {
		return err
	}
	return c.ledger.MarkApplied(ctx, version)
}

// MarkUnapplied removes a version from the ledger without executing
// its down migration.
func (c *Client) MarkUnapplied(ctx context.Context, version int64) error {
	if err := c.ledger.EnsureTable(ctx); err != nil {
		return err
	}
	return c.ledger.MarkUnapplied(ctx, version)
}

// Status summarizes the registry against the ledger.
type Status struct {
	Current    int64
	Latest     int64
	Applied    []int64
	Pending    []int64 // Registered versions above the current version
	Registered int
}

// Status reports where the database stands relative to the registry.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	current, err := c.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	applied, err := c.ledger.AppliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	s := &Status{
		Current:    current,
		Latest:     c.registry.Latest(),
		Applied:    applied,
		Registered: c.registry.Len(),
	}
	for _, v := range c.registry.Versions() {
		if v > current {
			s.Pending = append(s.Pending, v)
		}
	}
	return s, nil
}

// Script compiles the plan from one version to another into a SQL
// script without touching the database. Useful for review or for
// targets executed by external tooling.
func (c *Client) Script(from, to int64) (string, error) {
	plan, err := c.registry.Plan(from, to)
	if err != nil {
		return "", err
	}

	var compileOpts []sqlgen.Option
	if c.config.Strict {
		compileOpts = append(compileOpts, sqlgen.WithStrict())
	}
	compiler := sqlgen.New(c.dialect, compileOpts...)

	var b strings.Builder
	for _, m := range plan.Migrations {
		cs := ast.NewChangeset()
		switch plan.Direction {
		case engine.Up:
			m.Up(cs)
		case engine.Down:
			m.Down(cs)
		}
		script, err := compiler.Script(cs)
		if err != nil {
			return "", merr.Wrap(merr.ErrMigrationFailed, err, "script generation failed").
				WithVersion(m.Version)
		}
		b.WriteString("-- ")
		b.WriteString(plan.Direction.String())
		b.WriteString(" ")
		b.WriteString(m.Name)
		b.WriteString("\n")
		b.WriteString(script)
	}
	return b.String(), nil
}

// -----------------------------------------------------------------------------
// Connection helpers
// -----------------------------------------------------------------------------

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
	case strings.HasPrefix(lower, "sqlite://"), strings.HasPrefix(lower, "file:"),
		strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"),
		strings.HasSuffix(lower, ".sqlite3"), lower == ":memory:":
		return "sqlite"
	default:
		return ""
	}
}

// openDatabase maps a dialect to its registered driver and opens the
// handle. Drivers are registered by blank imports in the caller's main
// package.
func openDatabase(url, dialectName string) (*sql.DB, error) {
	var driver, dsn string
	switch dialectName {
	case "postgres":
		driver, dsn = "postgres", url
	case "mysql":
		driver, dsn = "mysql", strings.TrimPrefix(url, "mysql://")
	case "sqlite":
		driver, dsn = "sqlite", strings.TrimPrefix(url, "sqlite://")
	case "sqlserver":
		// No SQL Server driver ships with the library; generate a
		// script and apply it with external tooling instead.
		return nil, merr.New(merr.ErrSQLConnection, "direct sqlserver connections are not supported, use Script").
			With("dialect", dialectName)
	default:
		return nil, merr.New(merr.ErrUnknownDialect, "unsupported dialect").
			With("dialect", dialectName)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, merr.Wrap(merr.ErrSQLConnection, err, "failed to open database").
			With("dialect", dialectName)
	}
	return db, nil
}
