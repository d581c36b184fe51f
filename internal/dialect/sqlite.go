package dialect

import (
	"github.com/hlop3z/migrala/internal/ast"
	"github.com/hlop3z/migrala/internal/strutil"
)

// sqlite implements the Dialect interface for SQLite. Several ALTER
// TABLE capabilities are absent by design; the compiler reports those
// operations as skipped rather than emitting invalid SQL.
type sqlite struct{}

// SQLite returns the SQLite dialect implementation.
func SQLite() Dialect {
	return &sqlite{}
}

func (d *sqlite) Name() string {
	return "sqlite"
}

// -----------------------------------------------------------------------------
// Type mapping
// -----------------------------------------------------------------------------

func (d *sqlite) RenderType(col *ast.ColumnDef) (string, error) {
	switch col.Type {
	case ast.Guid:
		return "TEXT", nil
	case ast.TinyInt, ast.SmallInt, ast.Int, ast.BigInt:
		return "INTEGER", nil
	case ast.Single, ast.Double:
		return "REAL", nil
	case ast.Decimal, ast.Currency:
		return "NUMERIC", nil
	case ast.Boolean:
		return "INTEGER", nil
	case ast.Char, ast.VarChar, ast.VarCharMax,
		ast.NChar, ast.NVarChar, ast.NVarCharMax,
		ast.Text, ast.NText, ast.Xml:
		return "TEXT", nil
	case ast.Date:
		return "DATE", nil
	case ast.Time:
		return "TIME", nil
	case ast.DateTime, ast.TimeStamp:
		return "DATETIME", nil
	case ast.TimeSpan:
		return "INTEGER", nil
	default:
		return "", unmappedType(d.Name(), col)
	}
}

func (d *sqlite) AutoIncrement() string {
	// An INTEGER PRIMARY KEY column is a rowid alias and auto-assigns;
	// no extra keyword is emitted.
	return ""
}

// -----------------------------------------------------------------------------
// Identifiers
// -----------------------------------------------------------------------------

func (d *sqlite) QuoteTable(name string) string {
	return strutil.QuoteWith(name, '"', '"')
}

func (d *sqlite) QuoteColumn(name string) string {
	return strutil.QuoteWith(name, '"', '"')
}

func (d *sqlite) QuoteConstraint(name string) string {
	return strutil.QuoteWith(name, '"', '"')
}

func (d *sqlite) Unquote(name string) string {
	return strutil.UnquoteWith(name, '"', '"')
}

func (d *sqlite) BooleanLiteral(v bool) string {
	return boolean01(v)
}

func (d *sqlite) Placeholder(index int) string {
	return "?"
}

func (d *sqlite) ScriptSeparator() string {
	return ""
}

func (d *sqlite) SupportsTransactionalDDL() bool {
	return true
}

// -----------------------------------------------------------------------------
// Column-change clauses
// -----------------------------------------------------------------------------

func (d *sqlite) AddColumnClause(columnFragment string) string {
	return "ADD COLUMN " + columnFragment
}

func (d *sqlite) DropColumnClause(quotedColumn string) string {
	return "DROP COLUMN " + quotedColumn
}

func (d *sqlite) RenameColumnClause(quotedOld, quotedNew string) string {
	return "RENAME COLUMN " + quotedOld + " TO " + quotedNew
}

func (d *sqlite) ChangeColumnClause(quotedOld, columnFragment string) (string, bool) {
	return "", false
}

func (d *sqlite) ModifyColumnClause(quotedColumn, typeSQL, columnFragment string) (string, bool) {
	// Changing a column type requires a table rebuild.
	return "", false
}

func (d *sqlite) DropConstraintClause(kind ast.Kind, quotedName string) (string, bool) {
	// Constraints cannot be dropped without a table rebuild.
	return "", false
}

func (d *sqlite) DropIndexSQL(quotedTable, quotedName string) string {
	return "DROP INDEX " + quotedName
}
