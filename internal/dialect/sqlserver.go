package dialect

import (
	"fmt"

	"github.com/hlop3z/migrala/internal/ast"
	"github.com/hlop3z/migrala/internal/strutil"
)

// sqlserver implements the Dialect interface for Microsoft SQL Server.
// It is the reference dialect: it carries the complete semantic type
// table and the bracket identifier escaping used in the documentation
// examples.
type sqlserver struct{}

// SQLServer returns the SQL Server dialect implementation.
func SQLServer() Dialect {
	return &sqlserver{}
}

func (d *sqlserver) Name() string {
	return "sqlserver"
}

// -----------------------------------------------------------------------------
// Type mapping
// -----------------------------------------------------------------------------

func (d *sqlserver) RenderType(col *ast.ColumnDef) (string, error) {
	switch col.Type {
	case ast.Guid:
		return "UNIQUEIDENTIFIER", nil
	case ast.TinyInt:
		return "TINYINT", nil
	case ast.SmallInt:
		return "SMALLINT", nil
	case ast.Int:
		return "INT", nil
	case ast.BigInt:
		return "BIGINT", nil
	case ast.Single:
		return "REAL", nil
	case ast.Double:
		return "FLOAT", nil
	case ast.Decimal:
		return decimal("DECIMAL", col.Size, col.Scale), nil
	case ast.Currency:
		return "MONEY", nil
	case ast.Boolean:
		return "BIT", nil
	case ast.Char:
		return sized("CHAR", col.Size, 1), nil
	case ast.VarChar:
		return sized("VARCHAR", col.Size, defaultStringLength), nil
	case ast.VarCharMax:
		return "VARCHAR(MAX)", nil
	case ast.NChar:
		return sized("NCHAR", col.Size, 1), nil
	case ast.NVarChar:
		return sized("NVARCHAR", col.Size, defaultStringLength), nil
	case ast.NVarCharMax:
		return "NVARCHAR(MAX)", nil
	case ast.Text:
		return "TEXT", nil
	case ast.NText:
		return "NTEXT", nil
	case ast.Xml:
		return "XML", nil
	case ast.Date:
		return "DATE", nil
	case ast.Time, ast.TimeSpan:
		return "TIME", nil
	case ast.DateTime:
		return "DATETIME", nil
	case ast.TimeStamp:
		return "TIMESTAMP", nil
	default:
		return "", unmappedType(d.Name(), col)
	}
}

func (d *sqlserver) AutoIncrement() string {
	return "IDENTITY(1,1)"
}

// -----------------------------------------------------------------------------
// Identifiers
// -----------------------------------------------------------------------------

func (d *sqlserver) QuoteTable(name string) string {
	return strutil.QuoteWith(name, '[', ']')
}

func (d *sqlserver) QuoteColumn(name string) string {
	return strutil.QuoteWith(name, '[', ']')
}

func (d *sqlserver) QuoteConstraint(name string) string {
	return strutil.QuoteWith(name, '[', ']')
}

func (d *sqlserver) Unquote(name string) string {
	return strutil.UnquoteWith(name, '[', ']')
}

func (d *sqlserver) BooleanLiteral(v bool) string {
	return boolean01(v)
}

func (d *sqlserver) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index)
}

func (d *sqlserver) ScriptSeparator() string {
	return "GO"
}

func (d *sqlserver) SupportsTransactionalDDL() bool {
	return true
}

// -----------------------------------------------------------------------------
// Column-change clauses
// -----------------------------------------------------------------------------

func (d *sqlserver) AddColumnClause(columnFragment string) string {
	return "ADD " + columnFragment
}

func (d *sqlserver) DropColumnClause(quotedColumn string) string {
	return "DROP COLUMN " + quotedColumn
}

func (d *sqlserver) RenameColumnClause(quotedOld, quotedNew string) string {
	// Unused; SQL Server renames via sp_rename (see RenameColumnSQL).
	return ""
}

// RenameColumnSQL renames a column via sp_rename. SQL Server has no
// ALTER TABLE clause for renaming.
func (d *sqlserver) RenameColumnSQL(table, oldName, newName string) string {
	return fmt.Sprintf("EXEC sp_rename '%s.%s', '%s', 'COLUMN'", table, oldName, newName)
}

func (d *sqlserver) ChangeColumnClause(quotedOld, columnFragment string) (string, bool) {
	// No single-clause rename+retype; the compiler falls back to a
	// rename statement followed by ALTER COLUMN.
	return "", false
}

func (d *sqlserver) ModifyColumnClause(quotedColumn, typeSQL, columnFragment string) (string, bool) {
	return "ALTER COLUMN " + columnFragment, true
}

func (d *sqlserver) DropConstraintClause(kind ast.Kind, quotedName string) (string, bool) {
	return "DROP CONSTRAINT " + quotedName, true
}

func (d *sqlserver) DropIndexSQL(quotedTable, quotedName string) string {
	return fmt.Sprintf("DROP INDEX %s ON %s", quotedName, quotedTable)
}
