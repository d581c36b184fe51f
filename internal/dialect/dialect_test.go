package dialect

import (
	"testing"

	"github.com/hlop3z/migrala/internal/ast"
	"github.com/hlop3z/migrala/internal/merr"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"sqlserver", "sqlserver"},
		{"mssql", "sqlserver"},
		{"mysql", "mysql"},
		{"mariadb", "mysql"},
		{"postgres", "postgres"},
		{"postgresql", "postgres"},
		{"sqlite", "sqlite"},
		{"sqlite3", "sqlite"},
	}
	for _, tt := range tests {
		d := Get(tt.name)
		if d == nil {
			t.Errorf("Get(%q) = nil", tt.name)
			continue
		}
		if d.Name() != tt.want {
			t.Errorf("Get(%q).Name() = %q, want %q", tt.name, d.Name(), tt.want)
		}
	}
	if Get("oracle") != nil {
		t.Error("Get should return nil for an unsupported dialect")
	}
	if len(Names()) != 4 {
		t.Errorf("Names() = %v, want 4 entries", Names())
	}
}

func TestSQLServerTypes(t *testing.T) {
	d := SQLServer()
	tests := []struct {
		col  ast.ColumnDef
		want string
	}{
		{ast.ColumnDef{Type: ast.Guid}, "UNIQUEIDENTIFIER"},
		{ast.ColumnDef{Type: ast.TinyInt}, "TINYINT"},
		{ast.ColumnDef{Type: ast.Int}, "INT"},
		{ast.ColumnDef{Type: ast.BigInt}, "BIGINT"},
		{ast.ColumnDef{Type: ast.Single}, "REAL"},
		{ast.ColumnDef{Type: ast.Double}, "FLOAT"},
		{ast.ColumnDef{Type: ast.Decimal, Size: 10, Scale: 2}, "DECIMAL(10, 2)"},
		{ast.ColumnDef{Type: ast.Decimal}, "DECIMAL"},
		{ast.ColumnDef{Type: ast.Currency}, "MONEY"},
		{ast.ColumnDef{Type: ast.Boolean}, "BIT"},
		{ast.ColumnDef{Type: ast.Char, Size: 10}, "CHAR(10)"},
		{ast.ColumnDef{Type: ast.Char}, "CHAR(1)"},
		{ast.ColumnDef{Type: ast.VarChar, Size: 50}, "VARCHAR(50)"},
		{ast.ColumnDef{Type: ast.VarChar}, "VARCHAR(255)"},
		{ast.ColumnDef{Type: ast.VarCharMax}, "VARCHAR(MAX)"},
		{ast.ColumnDef{Type: ast.NVarChar, Size: 100}, "NVARCHAR(100)"},
		{ast.ColumnDef{Type: ast.NVarCharMax}, "NVARCHAR(MAX)"},
		{ast.ColumnDef{Type: ast.Text}, "TEXT"},
		{ast.ColumnDef{Type: ast.NText}, "NTEXT"},
		{ast.ColumnDef{Type: ast.Xml}, "XML"},
		{ast.ColumnDef{Type: ast.Date}, "DATE"},
		{ast.ColumnDef{Type: ast.Time}, "TIME"},
		{ast.ColumnDef{Type: ast.TimeSpan}, "TIME"},
		{ast.ColumnDef{Type: ast.DateTime}, "DATETIME"},
		{ast.ColumnDef{Type: ast.TimeStamp}, "TIMESTAMP"},
	}
	for _, tt := range tests {
		got, err := d.RenderType(&tt.col)
		if err != nil {
			t.Errorf("RenderType(%v): %v", tt.col.Type, err)
			continue
		}
		if got != tt.want {
			t.Errorf("RenderType(%v) = %q, want %q", tt.col.Type, got, tt.want)
		}
	}
}

func TestMySQLTypes(t *testing.T) {
	d := MySQL()
	tests := []struct {
		col  ast.ColumnDef
		want string
	}{
		{ast.ColumnDef{Type: ast.Guid}, "CHAR(36)"},
		{ast.ColumnDef{Type: ast.Int}, "INT"},
		{ast.ColumnDef{Type: ast.Single}, "FLOAT"},
		{ast.ColumnDef{Type: ast.Double}, "DOUBLE"},
		{ast.ColumnDef{Type: ast.Decimal, Size: 8, Scale: 3}, "DECIMAL(8, 3)"},
		{ast.ColumnDef{Type: ast.Currency}, "DECIMAL(19, 4)"},
		{ast.ColumnDef{Type: ast.Boolean}, "TINYINT(1)"},
		{ast.ColumnDef{Type: ast.VarChar, Size: 50}, "VARCHAR(50)"},
		{ast.ColumnDef{Type: ast.NVarChar, Size: 50}, "VARCHAR(50)"},
		{ast.ColumnDef{Type: ast.VarCharMax}, "LONGTEXT"},
		{ast.ColumnDef{Type: ast.NText}, "LONGTEXT"},
		{ast.ColumnDef{Type: ast.Xml}, "TEXT"},
		{ast.ColumnDef{Type: ast.DateTime}, "DATETIME"},
		{ast.ColumnDef{Type: ast.TimeStamp}, "TIMESTAMP"},
	}
	for _, tt := range tests {
		got, err := d.RenderType(&tt.col)
		if err != nil {
			t.Errorf("RenderType(%v): %v", tt.col.Type, err)
			continue
		}
		if got != tt.want {
			t.Errorf("RenderType(%v) = %q, want %q", tt.col.Type, got, tt.want)
		}
	}
}

func TestPostgresTypes(t *testing.T) {
	d := Postgres()
	tests := []struct {
		col  ast.ColumnDef
		want string
	}{
		{ast.ColumnDef{Type: ast.Guid}, "UUID"},
		{ast.ColumnDef{Type: ast.TinyInt}, "SMALLINT"},
		{ast.ColumnDef{Type: ast.Int}, "INTEGER"},
		{ast.ColumnDef{Type: ast.Double}, "DOUBLE PRECISION"},
		{ast.ColumnDef{Type: ast.Decimal, Size: 12, Scale: 4}, "NUMERIC(12, 4)"},
		{ast.ColumnDef{Type: ast.Currency}, "NUMERIC(19, 4)"},
		{ast.ColumnDef{Type: ast.Boolean}, "BOOLEAN"},
		{ast.ColumnDef{Type: ast.NVarCharMax}, "TEXT"},
		{ast.ColumnDef{Type: ast.Xml}, "XML"},
		{ast.ColumnDef{Type: ast.DateTime}, "TIMESTAMP"},
		{ast.ColumnDef{Type: ast.TimeSpan}, "INTERVAL"},
	}
	for _, tt := range tests {
		got, err := d.RenderType(&tt.col)
		if err != nil {
			t.Errorf("RenderType(%v): %v", tt.col.Type, err)
			continue
		}
		if got != tt.want {
			t.Errorf("RenderType(%v) = %q, want %q", tt.col.Type, got, tt.want)
		}
	}
}

func TestSQLiteTypes(t *testing.T) {
	d := SQLite()
	tests := []struct {
		col  ast.ColumnDef
		want string
	}{
		{ast.ColumnDef{Type: ast.Guid}, "TEXT"},
		{ast.ColumnDef{Type: ast.BigInt}, "INTEGER"},
		{ast.ColumnDef{Type: ast.Double}, "REAL"},
		{ast.ColumnDef{Type: ast.Decimal, Size: 10, Scale: 2}, "NUMERIC"},
		{ast.ColumnDef{Type: ast.Boolean}, "INTEGER"},
		{ast.ColumnDef{Type: ast.VarChar, Size: 50}, "TEXT"},
		{ast.ColumnDef{Type: ast.DateTime}, "DATETIME"},
		{ast.ColumnDef{Type: ast.TimeSpan}, "INTEGER"},
	}
	for _, tt := range tests {
		got, err := d.RenderType(&tt.col)
		if err != nil {
			t.Errorf("RenderType(%v): %v", tt.col.Type, err)
			continue
		}
		if got != tt.want {
			t.Errorf("RenderType(%v) = %q, want %q", tt.col.Type, got, tt.want)
		}
	}
}

func TestUnmappedTypeIsError(t *testing.T) {
	for _, d := range []Dialect{SQLServer(), MySQL(), Postgres(), SQLite()} {
		_, err := d.RenderType(&ast.ColumnDef{Name: "c", Type: ast.TypeUnset})
		if err == nil {
			t.Errorf("%s: unset type should be a compile error", d.Name())
			continue
		}
		if !merr.Is(err, merr.ErrUnmappedType) {
			t.Errorf("%s: expected ErrUnmappedType, got %v", d.Name(), err)
		}
	}
}

func TestQuoting(t *testing.T) {
	tests := []struct {
		dialect Dialect
		in      string
		want    string
	}{
		{SQLServer(), "Users", "[Users]"},
		{SQLServer(), "Weird]Name", "[Weird]]Name]"},
		{MySQL(), "users", "`users`"},
		{MySQL(), "weird`name", "`weird``name`"},
		{Postgres(), "users", `"users"`},
		{Postgres(), `weird"name`, `"weird""name"`},
		{SQLite(), "users", `"users"`},
	}
	for _, tt := range tests {
		got := tt.dialect.QuoteTable(tt.in)
		if got != tt.want {
			t.Errorf("%s QuoteTable(%q) = %q, want %q", tt.dialect.Name(), tt.in, got, tt.want)
		}
		if back := tt.dialect.Unquote(got); back != tt.in {
			t.Errorf("%s Unquote(%q) = %q, want %q", tt.dialect.Name(), got, back, tt.in)
		}
	}
}

func TestPlaceholders(t *testing.T) {
	if got := SQLServer().Placeholder(2); got != "@p2" {
		t.Errorf("sqlserver Placeholder(2) = %q", got)
	}
	if got := Postgres().Placeholder(3); got != "$3" {
		t.Errorf("postgres Placeholder(3) = %q", got)
	}
	if got := MySQL().Placeholder(1); got != "?" {
		t.Errorf("mysql Placeholder(1) = %q", got)
	}
	if got := SQLite().Placeholder(1); got != "?" {
		t.Errorf("sqlite Placeholder(1) = %q", got)
	}
}

func TestColumnChangeClauses(t *testing.T) {
	my := MySQL()
	if got, ok := my.ChangeColumnClause("`old`", "`new` INT NOT NULL"); !ok || got != "CHANGE `old` `new` INT NOT NULL" {
		t.Errorf("mysql ChangeColumnClause = %q, %v", got, ok)
	}
	if got, ok := my.ModifyColumnClause("`c`", "INT", "`c` INT NOT NULL"); !ok || got != "MODIFY `c` INT NOT NULL" {
		t.Errorf("mysql ModifyColumnClause = %q, %v", got, ok)
	}

	pg := Postgres()
	if _, ok := pg.ChangeColumnClause(`"old"`, `"new" INTEGER`); ok {
		t.Error("postgres should have no single-clause rename+retype")
	}
	if got, ok := pg.ModifyColumnClause(`"c"`, "INTEGER", `"c" INTEGER NOT NULL`); !ok || got != `ALTER COLUMN "c" TYPE INTEGER` {
		t.Errorf("postgres ModifyColumnClause = %q, %v", got, ok)
	}

	lite := SQLite()
	if _, ok := lite.ModifyColumnClause(`"c"`, "INTEGER", `"c" INTEGER`); ok {
		t.Error("sqlite cannot alter column types in place")
	}
	if _, ok := lite.DropConstraintClause(ast.KindPrimaryKey, `"PK_t"`); ok {
		t.Error("sqlite cannot drop constraints")
	}

	ms := SQLServer()
	r, isRenamer := any(ms).(ColumnRenamer)
	if !isRenamer {
		t.Fatal("sqlserver should implement ColumnRenamer")
	}
	want := "EXEC sp_rename 'Users.Name', 'FullName', 'COLUMN'"
	if got := r.RenameColumnSQL("Users", "Name", "FullName"); got != want {
		t.Errorf("RenameColumnSQL = %q, want %q", got, want)
	}
}

func TestDropConstraintClauses(t *testing.T) {
	my := MySQL()
	if got, _ := my.DropConstraintClause(ast.KindPrimaryKey, "`PK_t`"); got != "DROP PRIMARY KEY" {
		t.Errorf("mysql drop PK = %q", got)
	}
	if got, _ := my.DropConstraintClause(ast.KindForeignKey, "`FK_a_b`"); got != "DROP FOREIGN KEY `FK_a_b`" {
		t.Errorf("mysql drop FK = %q", got)
	}
	if got, _ := my.DropConstraintClause(ast.KindUnique, "`UQ_t_c`"); got != "DROP INDEX `UQ_t_c`" {
		t.Errorf("mysql drop UQ = %q", got)
	}
	if got, _ := SQLServer().DropConstraintClause(ast.KindUnique, "[UQ_t_c]"); got != "DROP CONSTRAINT [UQ_t_c]" {
		t.Errorf("sqlserver drop UQ = %q", got)
	}
}

func TestDropIndexSQL(t *testing.T) {
	if got := SQLServer().DropIndexSQL("[Users]", "[IX_Users_Name]"); got != "DROP INDEX [IX_Users_Name] ON [Users]" {
		t.Errorf("sqlserver DropIndexSQL = %q", got)
	}
	if got := Postgres().DropIndexSQL(`"users"`, `"IX_users_name"`); got != `DROP INDEX "IX_users_name"` {
		t.Errorf("postgres DropIndexSQL = %q", got)
	}
}
