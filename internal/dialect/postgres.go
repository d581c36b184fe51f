package dialect

import (
	"fmt"

	"github.com/hlop3z/migrala/internal/ast"
	"github.com/hlop3z/migrala/internal/strutil"
)

// postgres implements the Dialect interface for PostgreSQL.
type postgres struct{}

// Postgres returns the PostgreSQL dialect implementation.
func Postgres() Dialect {
	return &postgres{}
}

func (d *postgres) Name() string {
	return "postgres"
}

// -----------------------------------------------------------------------------
// Type mapping
// -----------------------------------------------------------------------------

func (d *postgres) RenderType(col *ast.ColumnDef) (string, error) {
	switch col.Type {
	case ast.Guid:
		return "UUID", nil
	case ast.TinyInt, ast.SmallInt:
		return "SMALLINT", nil
	case ast.Int:
		return "INTEGER", nil
	case ast.BigInt:
		return "BIGINT", nil
	case ast.Single:
		return "REAL", nil
	case ast.Double:
		return "DOUBLE PRECISION", nil
	case ast.Decimal:
		return decimal("NUMERIC", col.Size, col.Scale), nil
	case ast.Currency:
		return "NUMERIC(19, 4)", nil
	case ast.Boolean:
		return "BOOLEAN", nil
	case ast.Char, ast.NChar:
		return sized("CHAR", col.Size, 1), nil
	case ast.VarChar, ast.NVarChar:
		return sized("VARCHAR", col.Size, defaultStringLength), nil
	case ast.VarCharMax, ast.NVarCharMax, ast.Text, ast.NText:
		return "TEXT", nil
	case ast.Xml:
		return "XML", nil
	case ast.Date:
		return "DATE", nil
	case ast.Time:
		return "TIME", nil
	case ast.DateTime, ast.TimeStamp:
		return "TIMESTAMP", nil
	case ast.TimeSpan:
		return "INTERVAL", nil
	default:
		return "", unmappedType(d.Name(), col)
	}
}

func (d *postgres) AutoIncrement() string {
	return "GENERATED BY DEFAULT AS IDENTITY"
}

// -----------------------------------------------------------------------------
// Identifiers
// -----------------------------------------------------------------------------

func (d *postgres) QuoteTable(name string) string {
	return strutil.QuoteWith(name, '"', '"')
}

func (d *postgres) QuoteColumn(name string) string {
	return strutil.QuoteWith(name, '"', '"')
}

func (d *postgres) QuoteConstraint(name string) string {
	return strutil.QuoteWith(name, '"', '"')
}

func (d *postgres) Unquote(name string) string {
	return strutil.UnquoteWith(name, '"', '"')
}

func (d *postgres) BooleanLiteral(v bool) string {
	return booleanWord(v)
}

func (d *postgres) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index)
}

func (d *postgres) ScriptSeparator() string {
	return ""
}

func (d *postgres) SupportsTransactionalDDL() bool {
	return true
}

// -----------------------------------------------------------------------------
// Column-change clauses
// -----------------------------------------------------------------------------

func (d *postgres) AddColumnClause(columnFragment string) string {
	return "ADD COLUMN " + columnFragment
}

func (d *postgres) DropColumnClause(quotedColumn string) string {
	return "DROP COLUMN " + quotedColumn
}

func (d *postgres) RenameColumnClause(quotedOld, quotedNew string) string {
	return "RENAME COLUMN " + quotedOld + " TO " + quotedNew
}

func (d *postgres) ChangeColumnClause(quotedOld, columnFragment string) (string, bool) {
	// No single-clause rename+retype; the compiler falls back to a
	// rename statement followed by ALTER COLUMN TYPE.
	return "", false
}

func (d *postgres) ModifyColumnClause(quotedColumn, typeSQL, columnFragment string) (string, bool) {
	return "ALTER COLUMN " + quotedColumn + " TYPE " + typeSQL, true
}

func (d *postgres) DropConstraintClause(kind ast.Kind, quotedName string) (string, bool) {
	return "DROP CONSTRAINT " + quotedName, true
}

func (d *postgres) DropIndexSQL(quotedTable, quotedName string) string {
	// Indexes live in the schema namespace; the table is not part of
	// the statement.
	return "DROP INDEX " + quotedName
}
