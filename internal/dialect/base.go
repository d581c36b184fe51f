// Shared helper functions used by all dialect implementations.
package dialect

import (
	"fmt"

	"github.com/hlop3z/migrala/internal/ast"
	"github.com/hlop3z/migrala/internal/merr"
)

// defaultStringLength is used when a sized string type carries no length.
const defaultStringLength = 255

// sized renders "NAME(n)", falling back to def when the column has no size.
func sized(name string, size, def int) string {
	if size <= 0 {
		size = def
	}
	return fmt.Sprintf("%s(%d)", name, size)
}

// decimal renders "NAME(p, s)" or bare NAME when no precision is given.
func decimal(name string, precision, scale int) string {
	if precision <= 0 {
		return name
	}
	return fmt.Sprintf("%s(%d, %d)", name, precision, scale)
}

// unmappedType builds the compile-time error for a semantic type the
// dialect has no rendering for.
func unmappedType(dialectName string, col *ast.ColumnDef) error {
	return merr.New(merr.ErrUnmappedType, "no type mapping for semantic type").
		With("dialect", dialectName).
		With("type", col.Type.String()).
		WithColumn(col.Name)
}

// boolean01 renders booleans as 1/0 (MySQL, SQLite, SQL Server BIT).
func boolean01(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// booleanWord renders booleans as TRUE/FALSE (PostgreSQL).
func booleanWord(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}
