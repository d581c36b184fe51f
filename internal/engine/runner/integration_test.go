package runner

import (
	"context"
	"database/sql"
	"testing"

	"github.com/hlop3z/migrala/internal/ast"
	"github.com/hlop3z/migrala/internal/dialect"
	"github.com/hlop3z/migrala/internal/engine"
	"github.com/hlop3z/migrala/internal/testutil"
)

func openTestDB(t *testing.T) *sql.DB {
	return testutil.SetupSQLite(t)
}

func testDialect() dialect.Dialect {
	return dialect.SQLite()
}

func testRegistry(t *testing.T) *engine.Registry {
	t.Helper()
	reg := engine.NewRegistry()

	err := reg.Add(engine.Migration{
		Version: 1,
		Name:    "create_users",
		Up: func(cs *ast.Changeset) {
			cs.Enqueue(&ast.TableOp{
				Name: "users",
				Mod:  ast.Add,
				Columns: []*ast.ColumnDef{
					{Name: "id", Type: ast.Int},
					{Name: "name", Type: ast.VarChar, Size: 50, Nullable: true},
				},
			})
			cs.Enqueue(&ast.PrimaryKeyOp{Table: "users", Columns: []string{"id"}, Mod: ast.Add})
		},
		Down: func(cs *ast.Changeset) {
			cs.Enqueue(&ast.TableOp{Name: "users", Mod: ast.Drop})
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	err = reg.Add(engine.Migration{
		Version: 2,
		Name:    "create_orders",
		Up: func(cs *ast.Changeset) {
			cs.Enqueue(&ast.TableOp{
				Name: "orders",
				Mod:  ast.Add,
				Columns: []*ast.ColumnDef{
					{Name: "id", Type: ast.Int},
					{Name: "user_id", Type: ast.Int},
				},
			})
			cs.Enqueue(&ast.PrimaryKeyOp{Table: "orders", Columns: []string{"id"}, Mod: ast.Add})
			cs.Enqueue(&ast.InsertOp{Table: "orders", Row: []ast.ColumnValue{
				{Column: "id", Value: 1},
				{Column: "user_id", Value: 1},
			}})
		},
		Down: func(cs *ast.Changeset) {
			cs.Enqueue(&ast.TableOp{Name: "orders", Mod: ast.Drop})
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestMigrateUpAgainstSQLite(t *testing.T) {
	db := openTestDB(t)
	r := New(db, testDialect())
	reg := testRegistry(t)

	plan, err := reg.Plan(0, 2)
	if err != nil {
		t.Fatal(err)
	}
	result, err := r.Run(context.Background(), plan)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != Completed {
		t.Fatalf("status = %v", result.Status)
	}

	if !testutil.TableExists(t, db, "users") || !testutil.TableExists(t, db, "orders") {
		t.Error("migrated tables missing")
	}
	if got := testutil.RowCount(t, db, "orders"); got != 1 {
		t.Errorf("seed row count = %d, want 1", got)
	}

	ledger := engine.NewLedger(db, testDialect())
	current, err := ledger.CurrentVersion(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if current != 2 {
		t.Errorf("ledger at %d, want 2", current)
	}
	applied, _ := ledger.AppliedVersions(context.Background())
	if len(applied) != 2 || applied[0] != 1 || applied[1] != 2 {
		t.Errorf("applied = %v, want [1 2]", applied)
	}
}

func TestFailedUnitRollsBackTransaction(t *testing.T) {
	db := openTestDB(t)
	r := New(db, testDialect())

	reg := testRegistry(t)
	err := reg.Add(engine.Migration{
		Version: 3,
		Name:    "broken",
		Up: func(cs *ast.Changeset) {
			cs.Enqueue(&ast.TableOp{
				Name:    "payments",
				Mod:     ast.Add,
				Columns: []*ast.ColumnDef{{Name: "id", Type: ast.Int}},
			})
			cs.Enqueue(&ast.RawSQLOp{SQL: "THIS IS NOT VALID SQL"})
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	plan, _ := reg.Plan(0, 3)
	_, err = r.Run(context.Background(), plan)
	if err == nil {
		t.Fatal("run should fail in unit 3")
	}

	// Units 1 and 2 committed; unit 3 rolled back entirely.
	ledger := engine.NewLedger(db, testDialect())
	current, _ := ledger.CurrentVersion(context.Background())
	if current != 2 {
		t.Errorf("ledger at %d, want 2", current)
	}
	if testutil.TableExists(t, db, "payments") {
		t.Error("failed unit's table should have been rolled back")
	}
}

func TestRollbackToVersionZero(t *testing.T) {
	db := openTestDB(t)
	r := New(db, testDialect())
	reg := testRegistry(t)

	plan, _ := reg.Plan(0, 2)
	if _, err := r.Run(context.Background(), plan); err != nil {
		t.Fatal(err)
	}

	down, err := reg.Plan(2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Run(context.Background(), down); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	if testutil.TableExists(t, db, "users") || testutil.TableExists(t, db, "orders") {
		t.Error("rolled-back tables still exist")
	}
	ledger := engine.NewLedger(db, testDialect())
	current, _ := ledger.CurrentVersion(context.Background())
	if current != 0 {
		t.Errorf("ledger at %d, want 0", current)
	}
}

func TestCancelledHookLeavesLedgerConsistent(t *testing.T) {
	db := openTestDB(t)
	reg := testRegistry(t)

	r := New(db, testDialect(), WithBeforeHook(func(m engine.Migration, dir engine.Direction) bool {
		return m.Version < 2
	}))

	plan, _ := reg.Plan(0, 2)
	result, err := r.Run(context.Background(), plan)
	if err != nil {
		t.Fatalf("cancellation is not an error: %v", err)
	}
	if result.Status != Aborted {
		t.Errorf("status = %v, want Aborted", result.Status)
	}

	ledger := engine.NewLedger(db, testDialect())
	current, _ := ledger.CurrentVersion(context.Background())
	if current != 1 {
		t.Errorf("ledger at %d, want 1", current)
	}
	if testutil.TableExists(t, db, "orders") {
		t.Error("cancelled unit must not have executed")
	}
}

func TestLedgerEnsureTableIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ledger := engine.NewLedger(db, testDialect())
	ctx := context.Background()

	if err := ledger.EnsureTable(ctx); err != nil {
		t.Fatal(err)
	}
	if err := ledger.EnsureTable(ctx); err != nil {
		t.Fatalf("second EnsureTable: %v", err)
	}

	if err := ledger.MarkApplied(ctx, 5); err != nil {
		t.Fatal(err)
	}
	if err := ledger.MarkApplied(ctx, 7); err != nil {
		t.Fatal(err)
	}
	current, err := ledger.CurrentVersion(ctx)
	if err != nil || current != 7 {
		t.Errorf("current = %d, %v; want 7", current, err)
	}
	if err := ledger.MarkUnapplied(ctx, 7); err != nil {
		t.Fatal(err)
	}
	current, _ = ledger.CurrentVersion(ctx)
	if current != 5 {
		t.Errorf("current after unapply = %d, want 5", current)
	}
}
