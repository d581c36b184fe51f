// Package dialect provides database-specific SQL syntax rules.
// Each dialect implements semantic type mapping, identifier escaping,
// auto-increment syntax, and the clause fragments the compiler composes
// into ALTER TABLE statements.
package dialect

import (
	"github.com/hlop3z/migrala/internal/ast"
)

// Dialect defines the capability interface a target database product
// must supply. The compiler owns cross-dialect statement structure;
// dialects only contribute syntax fragments.
type Dialect interface {
	// Name returns the dialect name (sqlserver, mysql, postgres, sqlite).
	Name() string

	// RenderType maps a column's semantic type (with size/scale) to the
	// dialect's SQL type name. An unmapped type is a compile-time error.
	RenderType(col *ast.ColumnDef) (string, error)

	// AutoIncrement returns the column fragment enabling auto-increment,
	// or an empty string when the dialect provides it implicitly.
	AutoIncrement() string

	// -------------------------------------------------------------------------
	// Identifier escaping. Every emitted table/column/constraint name
	// passes through exactly one of these, exactly once.
	// -------------------------------------------------------------------------

	QuoteTable(name string) string
	QuoteColumn(name string) string
	QuoteConstraint(name string) string

	// Unquote reverses the dialect's identifier escaping. Names that are
	// not quoted are returned unchanged.
	Unquote(name string) string

	// -------------------------------------------------------------------------
	// Literals and placeholders
	// -------------------------------------------------------------------------

	// BooleanLiteral returns the dialect's literal for a boolean value.
	BooleanLiteral(v bool) string

	// Placeholder returns a parameter placeholder for the given index (1-based).
	Placeholder(index int) string

	// -------------------------------------------------------------------------
	// Script and transaction behavior
	// -------------------------------------------------------------------------

	// ScriptSeparator is the inter-statement separator used in script
	// output (e.g. a line containing GO), or empty when none is needed.
	ScriptSeparator() string

	// SupportsTransactionalDDL reports whether DDL can run inside a
	// transaction and be rolled back.
	SupportsTransactionalDDL() bool

	// -------------------------------------------------------------------------
	// Column-change clauses, composed into "ALTER TABLE <table> <clause>".
	// -------------------------------------------------------------------------

	// AddColumnClause wraps a rendered column fragment for ADD.
	AddColumnClause(columnFragment string) string

	// DropColumnClause drops a column by its quoted name.
	DropColumnClause(quotedColumn string) string

	// RenameColumnClause renames a column without changing its type.
	RenameColumnClause(quotedOld, quotedNew string) string

	// ChangeColumnClause renames and retypes a column in one clause
	// (MySQL CHANGE). ok=false when the dialect has no single-clause form.
	ChangeColumnClause(quotedOld, columnFragment string) (string, bool)

	// ModifyColumnClause changes a column's type in place. ok=false when
	// the dialect cannot alter column types.
	ModifyColumnClause(quotedColumn, typeSQL, columnFragment string) (string, bool)

	// DropConstraintClause drops a named constraint of the given kind.
	// ok=false when the dialect cannot drop that constraint kind.
	DropConstraintClause(kind ast.Kind, quotedName string) (string, bool)

	// DropIndexSQL returns the complete DROP INDEX statement; index drop
	// syntax varies too much across products to be a clause.
	DropIndexSQL(quotedTable, quotedName string) string
}

// ColumnRenamer is an optional capability for dialects where renaming a
// column is not an ALTER TABLE clause (e.g. SQL Server's sp_rename).
// When implemented, the compiler uses it instead of RenameColumnClause.
type ColumnRenamer interface {
	// RenameColumnSQL returns the complete rename statement.
	// Names are raw (unquoted); the dialect escapes as needed.
	RenameColumnSQL(table, oldName, newName string) string
}

// Get returns the dialect implementation for the given name.
// Valid names: "sqlserver", "mssql", "mysql", "postgres", "postgresql",
// "sqlite", "sqlite3". Returns nil if the dialect is not supported.
func Get(name string) Dialect {
	switch name {
	case "sqlserver", "mssql":
		return SQLServer()
	case "mysql", "mariadb":
		return MySQL()
	case "postgres", "postgresql":
		return Postgres()
	case "sqlite", "sqlite3":
		return SQLite()
	default:
		return nil
	}
}

// Names returns the list of supported dialect names.
func Names() []string {
	return []string{"sqlserver", "mysql", "postgres", "sqlite"}
}
