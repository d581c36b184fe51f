package dialect

import (
	"fmt"

	"github.com/hlop3z/migrala/internal/ast"
	"github.com/hlop3z/migrala/internal/strutil"
)

// mysql implements the Dialect interface for MySQL and MariaDB.
type mysql struct{}

// MySQL returns the MySQL dialect implementation.
func MySQL() Dialect {
	return &mysql{}
}

func (d *mysql) Name() string {
	return "mysql"
}

// -----------------------------------------------------------------------------
// Type mapping
// -----------------------------------------------------------------------------

func (d *mysql) RenderType(col *ast.ColumnDef) (string, error) {
	switch col.Type {
	case ast.Guid:
		return "CHAR(36)", nil
	case ast.TinyInt:
		return "TINYINT", nil
	case ast.SmallInt:
		return "SMALLINT", nil
	case ast.Int:
		return "INT", nil
	case ast.BigInt:
		return "BIGINT", nil
	case ast.Single:
		return "FLOAT", nil
	case ast.Double:
		return "DOUBLE", nil
	case ast.Decimal:
		return decimal("DECIMAL", col.Size, col.Scale), nil
	case ast.Currency:
		return "DECIMAL(19, 4)", nil
	case ast.Boolean:
		return "TINYINT(1)", nil
	case ast.Char, ast.NChar:
		return sized("CHAR", col.Size, 1), nil
	case ast.VarChar, ast.NVarChar:
		return sized("VARCHAR", col.Size, defaultStringLength), nil
	case ast.VarCharMax, ast.NVarCharMax, ast.NText:
		return "LONGTEXT", nil
	case ast.Text, ast.Xml:
		return "TEXT", nil
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

func (d *mysql) AutoIncrement() string {
	return "AUTO_INCREMENT"
}

// -----------------------------------------------------------------------------
// Identifiers
// -----------------------------------------------------------------------------

func (d *mysql) QuoteTable(name string) string {
	return strutil.QuoteWith(name, '`', '`')
}

func (d *mysql) QuoteColumn(name string) string {
	return strutil.QuoteWith(name, '`', '`')
}

func (d *mysql) QuoteConstraint(name string) string {
	return strutil.QuoteWith(name, '`', '`')
}

func (d *mysql) Unquote(name string) string {
	return strutil.UnquoteWith(name, '`', '`')
}

func (d *mysql) BooleanLiteral(v bool) string {
	return boolean01(v)
}

func (d *mysql) Placeholder(index int) string {
	return "?"
}

func (d *mysql) ScriptSeparator() string {
	return ""
}

func (d *mysql) SupportsTransactionalDDL() bool {
	// DDL causes an implicit commit; statements cannot be rolled back.
	return false
}

// -----------------------------------------------------------------------------
// Column-change clauses
// -----------------------------------------------------------------------------

func (d *mysql) AddColumnClause(columnFragment string) string {
	return "ADD " + columnFragment
}

func (d *mysql) DropColumnClause(quotedColumn string) string {
	return "DROP COLUMN " + quotedColumn
}

func (d *mysql) RenameColumnClause(quotedOld, quotedNew string) string {
	return "RENAME COLUMN " + quotedOld + " TO " + quotedNew
}

func (d *mysql) ChangeColumnClause(quotedOld, columnFragment string) (string, bool) {
	return "CHANGE " + quotedOld + " " + columnFragment, true
}

func (d *mysql) ModifyColumnClause(quotedColumn, typeSQL, columnFragment string) (string, bool) {
	return "MODIFY " + columnFragment, true
}

func (d *mysql) DropConstraintClause(kind ast.Kind, quotedName string) (string, bool) {
	switch kind {
	case ast.KindPrimaryKey:
		return "DROP PRIMARY KEY", true
	case ast.KindForeignKey:
		return "DROP FOREIGN KEY " + quotedName, true
	case ast.KindUnique:
		return "DROP INDEX " + quotedName, true
	default:
		return "DROP CONSTRAINT " + quotedName, true
	}
}

func (d *mysql) DropIndexSQL(quotedTable, quotedName string) string {
	return fmt.Sprintf("DROP INDEX %s ON %s", quotedName, quotedTable)
}
