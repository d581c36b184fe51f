// Package builder is the fluent API migration authors use to populate
// a changeset. It only records operations; validation happens when the
// compiler dequeues them.
package builder

import (
	"github.com/hlop3z/migrala/internal/ast"
)

// Builder records schema operations into a changeset.
type Builder struct {
	cs *ast.Changeset
}

// For wraps an existing changeset.
func For(cs *ast.Changeset) *Builder {
	return &Builder{cs: cs}
}

// CreateTable starts a new table definition. Constraints declared on
// the returned builder are enqueued right after the table so the
// compiler fuses them into the CREATE TABLE statement.
func (b *Builder) CreateTable(name string) *TableBuilder {
	op := &ast.TableOp{Name: name, Mod: ast.Add}
	b.cs.Enqueue(op)
	return &TableBuilder{cs: b.cs, op: op}
}

// AlterTable starts a change set against an existing table.
func (b *Builder) AlterTable(name string) *AlterBuilder {
	return &AlterBuilder{cs: b.cs, table: name}
}

// DropTable drops a table.
func (b *Builder) DropTable(name string) {
	b.cs.Enqueue(&ast.TableOp{Name: name, Mod: ast.Drop})
}

// Insert records a seed row. Column order is preserved.
func (b *Builder) Insert(table string) *InsertBuilder {
	op := &ast.InsertOp{Table: table}
	b.cs.Enqueue(op)
	return &InsertBuilder{op: op}
}

// Raw enqueues a raw SQL statement for verbatim passthrough.
func (b *Builder) Raw(sql string) {
	b.cs.Enqueue(&ast.RawSQLOp{SQL: sql})
}

// -----------------------------------------------------------------------------
// TableBuilder - new tables
// -----------------------------------------------------------------------------

// TableBuilder defines a new table's columns and inline constraints.
type TableBuilder struct {
	cs *ast.Changeset
	op *ast.TableOp
}

// Column adds a column and returns a builder for its attributes.
func (t *TableBuilder) Column(name string, typ ast.DataType) *ColumnBuilder {
	col := &ast.ColumnDef{Name: name, Type: typ}
	t.op.Columns = append(t.op.Columns, col)
	return &ColumnBuilder{table: t, col: col}
}

// PrimaryKey declares the table's primary key.
func (t *TableBuilder) PrimaryKey(cols ...string) *TableBuilder {
	t.cs.Enqueue(&ast.PrimaryKeyOp{Table: t.op.Name, Columns: cols, Mod: ast.Add})
	return t
}

// Unique declares a unique constraint.
func (t *TableBuilder) Unique(cols ...string) *TableBuilder {
	t.cs.Enqueue(&ast.UniqueOp{Table: t.op.Name, Columns: cols, Mod: ast.Add})
	return t
}

// ForeignKey declares a foreign key to refTable.
func (t *TableBuilder) ForeignKey(cols []string, refTable string, refCols ...string) *TableBuilder {
	t.cs.Enqueue(&ast.ForeignKeyOp{
		Table:      t.op.Name,
		Columns:    cols,
		RefTable:   refTable,
		RefColumns: refCols,
		Mod:        ast.Add,
	})
	return t
}

// -----------------------------------------------------------------------------
// ColumnBuilder - column attributes
// -----------------------------------------------------------------------------

// ColumnBuilder sets attributes of one column. It delegates table-level
// calls back to the owning TableBuilder so chains read naturally.
type ColumnBuilder struct {
	table *TableBuilder
	col   *ast.ColumnDef
}

// Size sets the length (string types) or precision (Decimal).
func (c *ColumnBuilder) Size(n int) *ColumnBuilder {
	c.col.Size = n
	return c
}

// Scale sets the Decimal scale.
func (c *ColumnBuilder) Scale(n int) *ColumnBuilder {
	c.col.Scale = n
	return c
}

// Null marks the column nullable. Columns are NOT NULL by default.
func (c *ColumnBuilder) Null() *ColumnBuilder {
	c.col.Nullable = true
	return c
}

// AutoIncrement marks the column auto-incrementing.
func (c *ColumnBuilder) AutoIncrement() *ColumnBuilder {
	c.col.AutoIncrement = true
	return c
}

// Default sets an explicit default value. nil is a valid default.
func (c *ColumnBuilder) Default(v any) *ColumnBuilder {
	c.col.Default = v
	c.col.DefaultSet = true
	return c
}

// Column starts the next column on the owning table.
func (c *ColumnBuilder) Column(name string, typ ast.DataType) *ColumnBuilder {
	return c.table.Column(name, typ)
}

// PrimaryKey delegates to the owning table.
func (c *ColumnBuilder) PrimaryKey(cols ...string) *TableBuilder {
	return c.table.PrimaryKey(cols...)
}

// Unique delegates to the owning table.
func (c *ColumnBuilder) Unique(cols ...string) *TableBuilder {
	return c.table.Unique(cols...)
}

// ForeignKey delegates to the owning table.
func (c *ColumnBuilder) ForeignKey(cols []string, refTable string, refCols ...string) *TableBuilder {
	return c.table.ForeignKey(cols, refTable, refCols...)
}

// -----------------------------------------------------------------------------
// AlterBuilder - existing tables
// -----------------------------------------------------------------------------

// AlterBuilder records changes against an existing table. Each call
// enqueues its own operation, matching the one-statement-per-change
// compilation model.
type AlterBuilder struct {
	cs    *ast.Changeset
	table string
}

// AddColumn adds a column to the table.
func (a *AlterBuilder) AddColumn(name string, typ ast.DataType) *AlterColumnBuilder {
	op := &ast.ColumnOp{
		Table:  a.table,
		Column: &ast.ColumnDef{Name: name, Type: typ},
		Mod:    ast.Add,
	}
	a.cs.Enqueue(op)
	return &AlterColumnBuilder{alter: a, op: op}
}

// DropColumn drops a column.
func (a *AlterBuilder) DropColumn(name string) *AlterBuilder {
	a.cs.Enqueue(&ast.ColumnOp{
		Table:  a.table,
		Column: &ast.ColumnDef{Name: name},
		Mod:    ast.Drop,
	})
	return a
}

// RenameColumn renames a column without changing its type.
func (a *AlterBuilder) RenameColumn(oldName, newName string) *AlterBuilder {
	a.cs.Enqueue(&ast.ColumnOp{
		Table:   a.table,
		Column:  &ast.ColumnDef{Name: oldName},
		NewName: newName,
		Mod:     ast.Alter,
	})
	return a
}

// ChangeColumn changes a column's type; chain RenameTo to rename in
// the same operation.
func (a *AlterBuilder) ChangeColumn(name string, typ ast.DataType) *AlterColumnBuilder {
	op := &ast.ColumnOp{
		Table:  a.table,
		Column: &ast.ColumnDef{Name: name, Type: typ},
		Mod:    ast.Alter,
	}
	a.cs.Enqueue(op)
	return &AlterColumnBuilder{alter: a, op: op}
}

// AddPrimaryKey adds a primary key constraint.
func (a *AlterBuilder) AddPrimaryKey(cols ...string) *AlterBuilder {
	a.cs.Enqueue(&ast.PrimaryKeyOp{Table: a.table, Columns: cols, Mod: ast.Add})
	return a
}

// DropPrimaryKey drops the table's primary key.
func (a *AlterBuilder) DropPrimaryKey() *AlterBuilder {
	a.cs.Enqueue(&ast.PrimaryKeyOp{Table: a.table, Mod: ast.Drop})
	return a
}

// AddUnique adds a unique constraint.
func (a *AlterBuilder) AddUnique(cols ...string) *AlterBuilder {
	a.cs.Enqueue(&ast.UniqueOp{Table: a.table, Columns: cols, Mod: ast.Add})
	return a
}

// DropUnique drops a named unique constraint.
func (a *AlterBuilder) DropUnique(name string) *AlterBuilder {
	a.cs.Enqueue(&ast.UniqueOp{Name: name, Table: a.table, Mod: ast.Drop})
	return a
}

// AddForeignKey adds a foreign key constraint.
func (a *AlterBuilder) AddForeignKey(cols []string, refTable string, refCols ...string) *AlterBuilder {
	a.cs.Enqueue(&ast.ForeignKeyOp{
		Table:      a.table,
		Columns:    cols,
		RefTable:   refTable,
		RefColumns: refCols,
		Mod:        ast.Add,
	})
	return a
}

// DropForeignKey drops a named foreign key constraint.
func (a *AlterBuilder) DropForeignKey(name string) *AlterBuilder {
	a.cs.Enqueue(&ast.ForeignKeyOp{Name: name, Table: a.table, Mod: ast.Drop})
	return a
}

// CreateIndex creates an index on the table.
func (a *AlterBuilder) CreateIndex(cols ...string) *AlterBuilder {
	a.cs.Enqueue(&ast.IndexOp{Table: a.table, Columns: cols, Mod: ast.Add})
	return a
}

// DropIndex drops a named index.
func (a *AlterBuilder) DropIndex(name string) *AlterBuilder {
	a.cs.Enqueue(&ast.IndexOp{Name: name, Table: a.table, Mod: ast.Drop})
	return a
}

// AlterColumnBuilder refines a column-level operation.
type AlterColumnBuilder struct {
	alter *AlterBuilder
	op    *ast.ColumnOp
}

// Size sets the length or precision.
func (c *AlterColumnBuilder) Size(n int) *AlterColumnBuilder {
	c.op.Column.Size = n
	return c
}

// Scale sets the Decimal scale.
func (c *AlterColumnBuilder) Scale(n int) *AlterColumnBuilder {
	c.op.Column.Scale = n
	return c
}

// Null marks the column nullable.
func (c *AlterColumnBuilder) Null() *AlterColumnBuilder {
	c.op.Column.Nullable = true
	return c
}

// Default sets an explicit default value.
func (c *AlterColumnBuilder) Default(v any) *AlterColumnBuilder {
	c.op.Column.Default = v
	c.op.Column.DefaultSet = true
	return c
}

// RenameTo renames the column as part of the same operation.
func (c *AlterColumnBuilder) RenameTo(newName string) *AlterColumnBuilder {
	c.op.NewName = newName
	return c
}

// Table returns to the table-level builder.
func (c *AlterColumnBuilder) Table() *AlterBuilder {
	return c.alter
}

// -----------------------------------------------------------------------------
// InsertBuilder - seed rows
// -----------------------------------------------------------------------------

// InsertBuilder accumulates one seed row's column/value pairs.
type InsertBuilder struct {
	op *ast.InsertOp
}

// Set appends a column/value pair. Pairs keep call order.
func (i *InsertBuilder) Set(column string, value any) *InsertBuilder {
	i.op.Row = append(i.op.Row, ast.ColumnValue{Column: column, Value: value})
	return i
}
