package engine

import (
	"context"
	"database/sql"

	"github.com/hlop3z/migrala/internal/merr"
)

// Executor runs one SQL statement.
type Executor interface {
	Execute(ctx context.Context, sql string) error
}

// Conn is the database surface the runner needs: statement execution
// plus transaction scoping.
type Conn interface {
	Executor

	// Begin opens a transaction. Callers must Commit or Rollback.
	Begin(ctx context.Context) (Tx, error)
}

// Tx is an open transaction.
type Tx interface {
	Executor

	Commit() error
	Rollback() error
}

// -----------------------------------------------------------------------------
// database/sql adapter
// -----------------------------------------------------------------------------

// SQLConn adapts a *sql.DB to the Conn interface.
type SQLConn struct {
	db *sql.DB
}

// NewConn wraps a database handle.
func NewConn(db *sql.DB) *SQLConn {
	return &SQLConn{db: db}
}

func (c *SQLConn) Execute(ctx context.Context, query string) error {
	if _, err := c.db.ExecContext(ctx, query); err != nil {
		return merr.Wrap(merr.ErrSQLExecution, err, "statement failed").
			WithSQL(query)
	}
	return nil
}

func (c *SQLConn) Begin(ctx context.Context) (Tx, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, merr.Wrap(merr.ErrSQLTransaction, err, "failed to begin transaction")
	}
	return &sqlTx{tx: tx}, nil
}

type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) Execute(ctx context.Context, query string) error {
	if _, err := t.tx.ExecContext(ctx, query); err != nil {
		return merr.Wrap(merr.ErrSQLExecution, err, "statement failed").
			WithSQL(query)
	}
	return nil
}

func (t *sqlTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return merr.Wrap(merr.ErrSQLTransaction, err, "failed to commit transaction")
	}
	return nil
}

func (t *sqlTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil {
		return merr.Wrap(merr.ErrSQLTransaction, err, "failed to roll back transaction")
	}
	return nil
}
