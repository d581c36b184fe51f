package ast

import (
	"github.com/hlop3z/migrala/internal/merr"
)

// Operation represents a single atomic change to the database schema.
// The set of implementations is closed: TableOp, ColumnOp, IndexOp,
// PrimaryKeyOp, UniqueOp, ForeignKeyOp, InsertOp, RawSQLOp. The compiler
// dispatches on (Kind, Modifier) exhaustively.
type Operation interface {
	// Kind returns the operation variant.
	Kind() Kind

	// Modifier returns the intended effect (Add, Alter, Drop).
	Modifier() Modifier

	// Validate checks that the operation is well-formed.
	Validate() error
}

// -----------------------------------------------------------------------------
// ColumnDef - column definition shared by TableOp and ColumnOp
// -----------------------------------------------------------------------------

// ColumnDef describes a column: name, semantic type with optional
// size/scale, nullability, auto-increment, and an optional default value.
type ColumnDef struct {
	Name          string
	Type          DataType // TypeUnset when no type was given
	Size          int      // Length for Char/VarChar/NChar/NVarChar, precision for Decimal
	Scale         int      // Scale for Decimal
	Nullable      bool
	AutoIncrement bool
	Default       any  // Untyped default value
	DefaultSet    bool // True if Default was explicitly set (nil is a valid default)
}

// Validate checks that the column definition is well-formed.
func (c *ColumnDef) Validate() error {
	if c.Name == "" {
		return merr.New(merr.ErrOpInvalid, "column name is required")
	}
	if c.Type == TypeUnset {
		return merr.New(merr.ErrOpInvalid, "column type is required").
			WithColumn(c.Name)
	}
	return nil
}

// -----------------------------------------------------------------------------
// TableOp - create or drop a table
// -----------------------------------------------------------------------------

// TableOp creates or drops a table. With Modifier Add, all columns are
// synthesized into a single CREATE TABLE statement together with any
// co-enqueued constraints for the same table (dependency fusion).
type TableOp struct {
	Name    string
	Columns []*ColumnDef
	Mod     Modifier
}

func (op *TableOp) Kind() Kind         { return KindTable }
func (op *TableOp) Modifier() Modifier { return op.Mod }

func (op *TableOp) Validate() error {
	if op.Name == "" {
		return merr.New(merr.ErrOpInvalid, "table name is required")
	}
	if op.Mod == Add {
		if len(op.Columns) == 0 {
			return merr.New(merr.ErrOpInvalid, "table must have at least one column").
				WithTable(op.Name)
		}
		for _, col := range op.Columns {
			if err := col.Validate(); err != nil {
				return merr.Wrap(merr.ErrOpInvalid, err, "invalid column").
					WithTable(op.Name)
			}
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// ColumnOp - add, alter, or drop a column on an existing table
// -----------------------------------------------------------------------------

// ColumnOp changes a single column of an existing table. For Alter, the
// combination of NewName and Column.Type distinguishes rename-only
// (NewName set, type unset), type-change-only (type set, NewName empty),
// and rename-plus-type-change (both set).
type ColumnOp struct {
	Table   string
	Column  *ColumnDef
	NewName string // Rename target; empty when not renaming
	Mod     Modifier
}

func (op *ColumnOp) Kind() Kind         { return KindColumn }
func (op *ColumnOp) Modifier() Modifier { return op.Mod }

// IsRename reports whether the alteration renames the column.
func (op *ColumnOp) IsRename() bool { return op.NewName != "" }

// IsRetype reports whether the alteration changes the column's type.
func (op *ColumnOp) IsRetype() bool { return op.Column != nil && op.Column.Type != TypeUnset }

func (op *ColumnOp) Validate() error {
	if op.Table == "" {
		return merr.New(merr.ErrOpInvalid, "table name is required for column operation")
	}
	if op.Column == nil || op.Column.Name == "" {
		return merr.New(merr.ErrOpInvalid, "column name is required").
			WithTable(op.Table)
	}
	switch op.Mod {
	case Add:
		if err := op.Column.Validate(); err != nil {
			return merr.Wrap(merr.ErrOpInvalid, err, "invalid column").
				WithTable(op.Table)
		}
	case Alter:
		if !op.IsRename() && !op.IsRetype() {
			return merr.New(merr.ErrOpInvalid, "column alteration must rename or change the type").
				WithTable(op.Table).
				WithColumn(op.Column.Name)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// IndexOp - create or drop an index
// -----------------------------------------------------------------------------

// IndexOp creates or drops an index. Name is auto-generated from the
// table and columns when empty.
type IndexOp struct {
	Name    string
	Table   string
	Columns []string
	Mod     Modifier
}

func (op *IndexOp) Kind() Kind         { return KindIndex }
func (op *IndexOp) Modifier() Modifier { return op.Mod }

func (op *IndexOp) Validate() error {
	if op.Table == "" {
		return merr.New(merr.ErrOpInvalid, "table name is required for index operation")
	}
	if op.Name == "" && len(op.Columns) == 0 {
		return merr.New(merr.ErrOpInvalid, "index needs a name or at least one column").
			WithTable(op.Table)
	}
	return nil
}

// -----------------------------------------------------------------------------
// PrimaryKeyOp / UniqueOp - key constraints
// -----------------------------------------------------------------------------

// PrimaryKeyOp adds or drops a primary key constraint. When enqueued
// together with the owning table's Add, it is fused into the CREATE TABLE
// statement and never emitted standalone.
type PrimaryKeyOp struct {
	Name    string // Optional; conventional name is generated when empty
	Table   string
	Columns []string
	Mod     Modifier
}

func (op *PrimaryKeyOp) Kind() Kind         { return KindPrimaryKey }
func (op *PrimaryKeyOp) Modifier() Modifier { return op.Mod }

func (op *PrimaryKeyOp) Validate() error {
	if op.Table == "" {
		return merr.New(merr.ErrOpInvalid, "table name is required for primary key operation")
	}
	if op.Mod == Add && len(op.Columns) == 0 {
		return merr.New(merr.ErrOpInvalid, "primary key must have at least one column").
			WithTable(op.Table)
	}
	return nil
}

// UniqueOp adds or drops a unique constraint. Fused into CREATE TABLE
// like PrimaryKeyOp when co-enqueued with the owning table's Add.
type UniqueOp struct {
	Name    string
	Table   string
	Columns []string
	Mod     Modifier
}

func (op *UniqueOp) Kind() Kind         { return KindUnique }
func (op *UniqueOp) Modifier() Modifier { return op.Mod }

func (op *UniqueOp) Validate() error {
	if op.Table == "" {
		return merr.New(merr.ErrOpInvalid, "table name is required for unique constraint operation")
	}
	if op.Mod == Add && len(op.Columns) == 0 {
		return merr.New(merr.ErrOpInvalid, "unique constraint must have at least one column").
			WithTable(op.Table)
	}
	return nil
}

// -----------------------------------------------------------------------------
// ForeignKeyOp - foreign key constraint
// -----------------------------------------------------------------------------

// ForeignKeyOp adds or drops a foreign key constraint.
type ForeignKeyOp struct {
	Name       string
	Table      string
	Columns    []string
	RefTable   string
	RefColumns []string
	Mod        Modifier
}

func (op *ForeignKeyOp) Kind() Kind         { return KindForeignKey }
func (op *ForeignKeyOp) Modifier() Modifier { return op.Mod }

func (op *ForeignKeyOp) Validate() error {
	if op.Table == "" {
		return merr.New(merr.ErrOpInvalid, "table name is required for foreign key operation")
	}
	if op.Mod != Add {
		return nil
	}
	if len(op.Columns) == 0 {
		return merr.New(merr.ErrOpInvalid, "foreign key must have at least one column").
			WithTable(op.Table)
	}
	if op.RefTable == "" {
		return merr.New(merr.ErrOpInvalid, "foreign key must reference a table").
			WithTable(op.Table)
	}
	if len(op.RefColumns) == 0 {
		return merr.New(merr.ErrOpInvalid, "foreign key must reference at least one column").
			WithTable(op.Table)
	}
	if len(op.Columns) != len(op.RefColumns) {
		return merr.New(merr.ErrOpInvalid, "foreign key column count must match referenced column count").
			WithTable(op.Table).
			With("columns", len(op.Columns)).
			With("ref_columns", len(op.RefColumns))
	}
	return nil
}

// -----------------------------------------------------------------------------
// InsertOp - seed row
// -----------------------------------------------------------------------------

// ColumnValue is one column/value pair of a seed row. Pairs keep their
// insertion order, which becomes the column order of the generated
// INSERT statement.
type ColumnValue struct {
	Column string
	Value  any
}

// InsertOp inserts one seed row into a table.
type InsertOp struct {
	Table string
	Row   []ColumnValue
}

func (op *InsertOp) Kind() Kind         { return KindInsert }
func (op *InsertOp) Modifier() Modifier { return Add }

func (op *InsertOp) Validate() error {
	if op.Table == "" {
		return merr.New(merr.ErrOpInvalid, "table name is required for insert")
	}
	if len(op.Row) == 0 {
		return merr.New(merr.ErrOpInvalid, "insert must have at least one column/value pair").
			WithTable(op.Table)
	}
	for _, cv := range op.Row {
		if cv.Column == "" {
			return merr.New(merr.ErrOpInvalid, "insert column name is required").
				WithTable(op.Table)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// RawSQLOp - raw SQL passthrough
// -----------------------------------------------------------------------------

// RawSQLOp passes a dialect-supplied SQL string through verbatim.
// The compiler only appends a statement terminator when one is missing.
type RawSQLOp struct {
	SQL string
}

func (op *RawSQLOp) Kind() Kind         { return KindRawSQL }
func (op *RawSQLOp) Modifier() Modifier { return Add }

func (op *RawSQLOp) Validate() error {
	if op.SQL == "" {
		return merr.New(merr.ErrOpInvalid, "raw SQL statement is required")
	}
	return nil
}
