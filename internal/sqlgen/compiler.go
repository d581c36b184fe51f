// Package sqlgen compiles an operation queue into an ordered sequence
// of SQL commands for a target dialect. Compilation is lazy and
// destructive: each call to Stream.Next drains the queue by one or more
// operations, and a drained changeset cannot be compiled again.
package sqlgen

import (
	"strings"

	"github.com/hlop3z/migrala/internal/ast"
	"github.com/hlop3z/migrala/internal/dialect"
	"github.com/hlop3z/migrala/internal/merr"
	"github.com/hlop3z/migrala/internal/strutil"
)

// Outcome classifies a compiled command.
type Outcome int

const (
	// OutcomeSQL is a normal command carrying executable SQL.
	OutcomeSQL Outcome = iota

	// OutcomeSkipped marks an operation the dialect cannot express.
	// The command carries no SQL; Reason says why.
	OutcomeSkipped
)

// Command is one element of the compiled sequence. Skipped commands are
// surfaced explicitly so callers can log, reject, or ignore them.
type Command struct {
	SQL     string
	Op      ast.Operation
	Outcome Outcome
	Reason  string // Set when Outcome is OutcomeSkipped
}

// Compiler translates operations into SQL for one dialect.
type Compiler struct {
	dialect dialect.Dialect
	strict  bool
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithStrict makes unsupported operations a hard compile error instead
// of a skipped command.
func WithStrict() Option {
	return func(c *Compiler) { c.strict = true }
}

// New creates a compiler for the given dialect.
func New(d dialect.Dialect, opts ...Option) *Compiler {
	c := &Compiler{dialect: d}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile returns a lazy stream of commands over the changeset. The
// stream destructively drains the changeset's queue as it advances.
func (c *Compiler) Compile(cs *ast.Changeset) *Stream {
	return &Stream{compiler: c, changeset: cs}
}

// Stream produces compiled commands one at a time.
type Stream struct {
	compiler  *Compiler
	changeset *ast.Changeset

	// buffered holds extra commands when one operation compiles to
	// more than one statement (e.g. rename followed by retype).
	buffered []*Command
}

// Next returns the next compiled command, or (nil, nil) when the queue
// is drained. In strict mode an unsupported operation returns an error
// instead of a skipped command.
func (s *Stream) Next() (*Command, error) {
	if len(s.buffered) > 0 {
		cmd := s.buffered[0]
		s.buffered = s.buffered[1:]
		return cmd, nil
	}

	op, ok := s.changeset.Queue().DequeueNext()
	if !ok {
		return nil, nil
	}
	if err := op.Validate(); err != nil {
		return nil, err
	}

	cmds, err := s.compiler.compileOp(s.changeset, op)
	if err != nil {
		return nil, err
	}
	if len(cmds) == 0 {
		// Defensive; every handler emits at least one command.
		return s.Next()
	}
	for _, cmd := range cmds {
		if cmd.Outcome == OutcomeSkipped && s.compiler.strict {
			return nil, merr.New(merr.ErrUnsupportedOp, cmd.Reason).
				With("dialect", s.compiler.dialect.Name()).
				With("kind", op.Kind().String()).
				With("modifier", op.Modifier().String())
		}
	}
	s.buffered = cmds[1:]
	return cmds[0], nil
}

// Drain consumes the rest of the stream and returns all commands.
func (s *Stream) Drain() ([]*Command, error) {
	var all []*Command
	for {
		cmd, err := s.Next()
		if err != nil {
			return all, err
		}
		if cmd == nil {
			return all, nil
		}
		all = append(all, cmd)
	}
}

// -----------------------------------------------------------------------------
// Dispatch
// -----------------------------------------------------------------------------

func (c *Compiler) compileOp(cs *ast.Changeset, op ast.Operation) ([]*Command, error) {
	switch o := op.(type) {
	case *ast.TableOp:
		return c.compileTable(cs, o)
	case *ast.ColumnOp:
		return c.compileColumn(o)
	case *ast.IndexOp:
		return c.compileIndex(o)
	case *ast.PrimaryKeyOp:
		// A table created in this changeset had its primary key fused
		// into CREATE TABLE; a second one reaching this point is a
		// duplicate.
		if o.Mod == ast.Add && cs.NewTable(o.Table) != nil {
			return nil, merr.New(merr.ErrOpDuplicate, "table already has a primary key").
				WithTable(o.Table)
		}
		return c.compileConstraint(op, o.Mod, o.Table, o.Name, func(name string) string {
			return c.primaryKeyFragment(name, o.Columns)
		}, strutil.PKName(o.Table))
	case *ast.UniqueOp:
		return c.compileConstraint(op, o.Mod, o.Table, o.Name, func(name string) string {
			return c.uniqueFragment(name, o.Columns)
		}, strutil.UQName(o.Table, o.Columns...))
	case *ast.ForeignKeyOp:
		return c.compileConstraint(op, o.Mod, o.Table, o.Name, func(name string) string {
			return c.foreignKeyFragment(name, o)
		}, strutil.FKName(o.Table, o.RefTable))
	case *ast.InsertOp:
		return c.compileInsert(o)
	case *ast.RawSQLOp:
		return []*Command{{SQL: strutil.EnsureTerminator(o.SQL), Op: o}}, nil
	default:
		return nil, merr.New(merr.ErrUnsupportedOp, "unknown operation kind").
			With("kind", op.Kind().String())
	}
}

func (c *Compiler) skip(op ast.Operation, reason string) []*Command {
	return []*Command{{Op: op, Outcome: OutcomeSkipped, Reason: reason}}
}

// -----------------------------------------------------------------------------
// Tables
// -----------------------------------------------------------------------------

func (c *Compiler) compileTable(cs *ast.Changeset, op *ast.TableOp) ([]*Command, error) {
	d := c.dialect
	switch op.Mod {
	case ast.Add:
		sql, err := c.createTable(cs, op)
		if err != nil {
			return nil, err
		}
		return []*Command{{SQL: sql, Op: op}}, nil
	case ast.Drop:
		return []*Command{{SQL: "DROP TABLE " + d.QuoteTable(op.Name) + ";", Op: op}}, nil
	default:
		return c.skip(op, "tables cannot be altered as a whole"), nil
	}
}

// createTable synthesizes the CREATE TABLE statement. Constraints that
// are still pending against the same table are rendered inline, in the
// fixed order primary key, foreign keys, unique constraints, and then
// tombstoned so they are never emitted standalone.
func (c *Compiler) createTable(cs *ast.Changeset, op *ast.TableOp) (string, error) {
	d := c.dialect

	var pk *ast.PrimaryKeyOp
	var fks []*ast.ForeignKeyOp
	var uqs []*ast.UniqueOp
	for _, pending := range cs.Queue().Pending() {
		switch p := pending.(type) {
		case *ast.PrimaryKeyOp:
			if p.Table == op.Name && p.Mod == ast.Add && pk == nil {
				pk = p
			}
		case *ast.ForeignKeyOp:
			if p.Table == op.Name && p.Mod == ast.Add {
				fks = append(fks, p)
			}
		case *ast.UniqueOp:
			if p.Table == op.Name && p.Mod == ast.Add {
				uqs = append(uqs, p)
			}
		}
	}

	var elems []string
	for _, col := range op.Columns {
		frag, err := c.columnFragment(col)
		if err != nil {
			return "", err
		}
		elems = append(elems, frag)
	}
	if pk != nil {
		elems = append(elems, c.primaryKeyFragment(pk.Name, pk.Columns))
		cs.Queue().Remove(pk)
	}
	for _, fk := range fks {
		elems = append(elems, c.foreignKeyFragment(fk.Name, fk))
		cs.Queue().Remove(fk)
	}
	for _, uq := range uqs {
		elems = append(elems, c.uniqueFragment(uq.Name, uq.Columns))
		cs.Queue().Remove(uq)
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(d.QuoteTable(op.Name))
	b.WriteString(" (\n")
	for i, elem := range elems {
		b.WriteString("\t")
		b.WriteString(elem)
		if i < len(elems)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(");")
	return b.String(), nil
}

// columnFragment renders one column definition:
// <escaped-name> <type> <NULL|NOT NULL> [auto-increment] [DEFAULT <v>]
func (c *Compiler) columnFragment(col *ast.ColumnDef) (string, error) {
	d := c.dialect
	typeSQL, err := d.RenderType(col)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(d.QuoteColumn(col.Name))
	b.WriteString(" ")
	b.WriteString(typeSQL)
	if col.Nullable {
		b.WriteString(" NULL")
	} else {
		b.WriteString(" NOT NULL")
	}
	if col.AutoIncrement {
		if frag := d.AutoIncrement(); frag != "" {
			b.WriteString(" ")
			b.WriteString(frag)
		}
	}
	if col.DefaultSet {
		b.WriteString(" DEFAULT ")
		b.WriteString(formatValue(d, col.Default))
	}
	return b.String(), nil
}

// -----------------------------------------------------------------------------
// Columns
// -----------------------------------------------------------------------------

func (c *Compiler) compileColumn(op *ast.ColumnOp) ([]*Command, error) {
	d := c.dialect
	alter := "ALTER TABLE " + d.QuoteTable(op.Table) + " "

	switch op.Mod {
	case ast.Add:
		frag, err := c.columnFragment(op.Column)
		if err != nil {
			return nil, err
		}
		return []*Command{{SQL: alter + d.AddColumnClause(frag) + ";", Op: op}}, nil

	case ast.Drop:
		return []*Command{{SQL: alter + d.DropColumnClause(d.QuoteColumn(op.Column.Name)) + ";", Op: op}}, nil

	case ast.Alter:
		return c.compileColumnAlter(op, alter)

	default:
		return c.skip(op, "unsupported column modifier"), nil
	}
}

func (c *Compiler) compileColumnAlter(op *ast.ColumnOp, alter string) ([]*Command, error) {
	d := c.dialect
	oldQ := d.QuoteColumn(op.Column.Name)

	switch {
	case op.IsRename() && op.IsRetype():
		// Prefer a single-clause rename+retype when the dialect has one.
		renamed := *op.Column
		renamed.Name = op.NewName
		frag, err := c.columnFragment(&renamed)
		if err != nil {
			return nil, err
		}
		if clause, ok := d.ChangeColumnClause(oldQ, frag); ok {
			return []*Command{{SQL: alter + clause + ";", Op: op}}, nil
		}
		renameCmds, err := c.renameColumn(op, alter, oldQ)
		if err != nil {
			return nil, err
		}
		if renameCmds[0].Outcome == OutcomeSkipped {
			return c.skip(op, "dialect cannot rename and retype a column"), nil
		}
		typeSQL, err := d.RenderType(&renamed)
		if err != nil {
			return nil, err
		}
		clause, ok := d.ModifyColumnClause(d.QuoteColumn(op.NewName), typeSQL, frag)
		if !ok {
			return c.skip(op, "dialect cannot change a column's type"), nil
		}
		return append(renameCmds, &Command{SQL: alter + clause + ";", Op: op}), nil

	case op.IsRename():
		return c.renameColumn(op, alter, oldQ)

	default: // retype only
		frag, err := c.columnFragment(op.Column)
		if err != nil {
			return nil, err
		}
		typeSQL, err := d.RenderType(op.Column)
		if err != nil {
			return nil, err
		}
		clause, ok := d.ModifyColumnClause(oldQ, typeSQL, frag)
		if !ok {
			return c.skip(op, "dialect cannot change a column's type"), nil
		}
		return []*Command{{SQL: alter + clause + ";", Op: op}}, nil
	}
}

func (c *Compiler) renameColumn(op *ast.ColumnOp, alter, oldQ string) ([]*Command, error) {
	d := c.dialect
	if r, ok := d.(dialect.ColumnRenamer); ok {
		sql := strutil.EnsureTerminator(r.RenameColumnSQL(op.Table, op.Column.Name, op.NewName))
		return []*Command{{SQL: sql, Op: op}}, nil
	}
	clause := d.RenameColumnClause(oldQ, d.QuoteColumn(op.NewName))
	if clause == "" {
		return c.skip(op, "dialect cannot rename a column"), nil
	}
	return []*Command{{SQL: alter + clause + ";", Op: op}}, nil
}

// -----------------------------------------------------------------------------
// Indexes
// -----------------------------------------------------------------------------

func (c *Compiler) compileIndex(op *ast.IndexOp) ([]*Command, error) {
	d := c.dialect
	name := op.Name
	if name == "" {
		name = strutil.IXName(op.Table, op.Columns...)
	}
	switch op.Mod {
	case ast.Add:
		sql := "CREATE INDEX " + d.QuoteConstraint(name) +
			" ON " + d.QuoteTable(op.Table) +
			" (" + c.columnList(op.Columns) + ");"
		return []*Command{{SQL: sql, Op: op}}, nil
	case ast.Drop:
		sql := d.DropIndexSQL(d.QuoteTable(op.Table), d.QuoteConstraint(name))
		return []*Command{{SQL: strutil.EnsureTerminator(sql), Op: op}}, nil
	default:
		return c.skip(op, "indexes cannot be altered"), nil
	}
}

// -----------------------------------------------------------------------------
// Constraints (standalone, against pre-existing tables)
// -----------------------------------------------------------------------------

func (c *Compiler) compileConstraint(op ast.Operation, mod ast.Modifier, table, name string, fragment func(name string) string, conventionalName string) ([]*Command, error) {
	d := c.dialect
	if name == "" {
		name = conventionalName
	}
	alter := "ALTER TABLE " + d.QuoteTable(table) + " "

	switch mod {
	case ast.Add:
		if _, ok := d.DropConstraintClause(op.Kind(), ""); !ok {
			return c.skip(op, "dialect cannot add constraints to an existing table"), nil
		}
		sql := alter + "ADD CONSTRAINT " + d.QuoteConstraint(name) + " " + fragment("") + ";"
		return []*Command{{SQL: sql, Op: op}}, nil
	case ast.Drop:
		clause, ok := d.DropConstraintClause(op.Kind(), d.QuoteConstraint(name))
		if !ok {
			return c.skip(op, "dialect cannot drop constraints"), nil
		}
		return []*Command{{SQL: alter + clause + ";", Op: op}}, nil
	default:
		return c.skip(op, "constraints cannot be altered"), nil
	}
}

// primaryKeyFragment renders "[CONSTRAINT <name>] PRIMARY KEY (cols)".
// The CONSTRAINT prefix appears only when a name was given explicitly.
func (c *Compiler) primaryKeyFragment(name string, cols []string) string {
	return c.namedFragment(name, "PRIMARY KEY ("+c.columnList(cols)+")")
}

func (c *Compiler) uniqueFragment(name string, cols []string) string {
	return c.namedFragment(name, "UNIQUE ("+c.columnList(cols)+")")
}

func (c *Compiler) foreignKeyFragment(name string, fk *ast.ForeignKeyOp) string {
	d := c.dialect
	body := "FOREIGN KEY (" + c.columnList(fk.Columns) + ") REFERENCES " +
		d.QuoteTable(fk.RefTable) + " (" + c.columnList(fk.RefColumns) + ")"
	return c.namedFragment(name, body)
}

func (c *Compiler) namedFragment(name, body string) string {
	if name == "" {
		return body
	}
	return "CONSTRAINT " + c.dialect.QuoteConstraint(name) + " " + body
}

func (c *Compiler) columnList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = c.dialect.QuoteColumn(col)
	}
	return strings.Join(quoted, ", ")
}

// -----------------------------------------------------------------------------
// Inserts
// -----------------------------------------------------------------------------

func (c *Compiler) compileInsert(op *ast.InsertOp) ([]*Command, error) {
	d := c.dialect
	cols := make([]string, len(op.Row))
	vals := make([]string, len(op.Row))
	for i, cv := range op.Row {
		cols[i] = d.QuoteColumn(cv.Column)
		vals[i] = formatValue(d, cv.Value)
	}
	sql := "INSERT INTO " + d.QuoteTable(op.Table) +
		" (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(vals, ", ") + ");"
	return []*Command{{SQL: sql, Op: op}}, nil
}
