package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hlop3z/migrala/internal/dialect"
	"github.com/hlop3z/migrala/internal/merr"
)

// LedgerTable is the name of the version-tracking table.
const LedgerTable = "migrala_versions"

// Ledger records which migration versions have been applied. One row
// per applied version; the current version is the highest row.
type Ledger interface {
	// EnsureTable creates the tracking table when it does not exist.
	EnsureTable(ctx context.Context) error

	// CurrentVersion returns the highest applied version, 0 when none.
	CurrentVersion(ctx context.Context) (int64, error)

	// AppliedVersions returns all applied versions in ascending order.
	AppliedVersions(ctx context.Context) ([]int64, error)

	// MarkApplied records a version as applied.
	MarkApplied(ctx context.Context, version int64) error

	// MarkUnapplied removes a version's record.
	MarkUnapplied(ctx context.Context, version int64) error
}

// SQLLedger is the database-backed Ledger.
type SQLLedger struct {
	db      *sql.DB
	dialect dialect.Dialect
}

// NewLedger creates a ledger over the given database handle.
func NewLedger(db *sql.DB, d dialect.Dialect) *SQLLedger {
	return &SQLLedger{db: db, dialect: d}
}

func (l *SQLLedger) table() string {
	return l.dialect.QuoteTable(LedgerTable)
}

func (l *SQLLedger) EnsureTable(ctx context.Context) error {
	var ddl string
	if l.dialect.Name() == "sqlserver" {
		// No CREATE TABLE IF NOT EXISTS on SQL Server.
		ddl = fmt.Sprintf(
			"IF OBJECT_ID('%s', 'U') IS NULL CREATE TABLE %s (version BIGINT NOT NULL PRIMARY KEY, applied_at DATETIME NOT NULL)",
			LedgerTable, l.table())
	} else {
		ddl = fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS %s (version BIGINT NOT NULL PRIMARY KEY, applied_at TIMESTAMP NOT NULL)",
			l.table())
	}
	if _, err := l.db.ExecContext(ctx, ddl); err != nil {
		return merr.Wrap(merr.ErrLedger, err, "failed to create version table").
			WithSQL(ddl)
	}
	return nil
}

func (l *SQLLedger) CurrentVersion(ctx context.Context) (int64, error) {
	query := fmt.Sprintf("SELECT MAX(version) FROM %s", l.table())
	var current sql.NullInt64
	if err := l.db.QueryRowContext(ctx, query).Scan(&current); err != nil {
		return 0, merr.Wrap(merr.ErrLedger, err, "failed to read current version")
	}
	if !current.Valid {
		return 0, nil
	}
	return current.Int64, nil
}

func (l *SQLLedger) AppliedVersions(ctx context.Context) ([]int64, error) {
	query := fmt.Sprintf("SELECT version FROM %s ORDER BY version", l.table())
	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, merr.Wrap(merr.ErrLedger, err, "failed to list applied versions")
	}
	defer rows.Close()

	var versions []int64
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, merr.Wrap(merr.ErrLedger, err, "failed to scan version row")
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, merr.Wrap(merr.ErrLedger, err, "failed to read version rows")
	}
	return versions, nil
}

func (l *SQLLedger) MarkApplied(ctx context.Context, version int64) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (version, applied_at) VALUES (%s, CURRENT_TIMESTAMP)",
		l.table(), l.dialect.Placeholder(1))
	if _, err := l.db.ExecContext(ctx, query, version); err != nil {
		return merr.Wrap(merr.ErrLedger, err, "failed to record applied version").
			WithVersion(version)
	}
	return nil
}

func (l *SQLLedger) MarkUnapplied(ctx context.Context, version int64) error {
	query := fmt.Sprintf(
		"DELETE FROM %s WHERE version = %s",
		l.table(), l.dialect.Placeholder(1))
	if _, err := l.db.ExecContext(ctx, query, version); err != nil {
		return merr.Wrap(merr.ErrLedger, err, "failed to remove applied version").
			WithVersion(version)
	}
	return nil
}
