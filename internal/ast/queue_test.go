package ast

import "testing"

func TestQueueFIFO(t *testing.T) {
	var q Queue
	a := &RawSQLOp{SQL: "a"}
	b := &RawSQLOp{SQL: "b"}
	c := &RawSQLOp{SQL: "c"}
	q.Enqueue(a)
	q.Enqueue(b)
	q.Enqueue(c)

	if q.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", q.Len())
	}

	for i, want := range []*RawSQLOp{a, b, c} {
		got, ok := q.DequeueNext()
		if !ok {
			t.Fatalf("DequeueNext %d: queue drained early", i)
		}
		if got != Operation(want) {
			t.Errorf("DequeueNext %d = %v, want %v", i, got, want)
		}
	}

	if _, ok := q.DequeueNext(); ok {
		t.Error("drained queue should report ok=false")
	}
}

func TestQueueRemoveSkipsPending(t *testing.T) {
	var q Queue
	a := &RawSQLOp{SQL: "a"}
	b := &RawSQLOp{SQL: "b"}
	c := &RawSQLOp{SQL: "c"}
	q.Enqueue(a)
	q.Enqueue(b)
	q.Enqueue(c)

	if !q.Remove(b) {
		t.Fatal("Remove of pending operation should succeed")
	}

	got1, _ := q.DequeueNext()
	got2, _ := q.DequeueNext()
	if got1 != Operation(a) || got2 != Operation(c) {
		t.Errorf("dequeue order after removal = %v, %v; want a, c", got1, got2)
	}
	if _, ok := q.DequeueNext(); ok {
		t.Error("removed operation must never be dequeued")
	}
}

func TestQueueRemoveConsumedIsNoop(t *testing.T) {
	var q Queue
	a := &RawSQLOp{SQL: "a"}
	q.Enqueue(a)

	if _, ok := q.DequeueNext(); !ok {
		t.Fatal("expected one operation")
	}
	if q.Remove(a) {
		t.Error("Remove of an already-consumed operation should be a no-op")
	}
}

func TestQueueRemoveUnknownIsNoop(t *testing.T) {
	var q Queue
	q.Enqueue(&RawSQLOp{SQL: "a"})
	if q.Remove(&RawSQLOp{SQL: "x"}) {
		t.Error("Remove of a never-enqueued operation should be a no-op")
	}
}

func TestQueuePendingSnapshot(t *testing.T) {
	var q Queue
	a := &RawSQLOp{SQL: "a"}
	b := &RawSQLOp{SQL: "b"}
	q.Enqueue(a)
	q.Enqueue(b)

	q.DequeueNext() // consume a
	pending := q.Pending()
	if len(pending) != 1 || pending[0] != Operation(b) {
		t.Fatalf("Pending() = %v, want [b]", pending)
	}

	// Consuming after the snapshot does not change the snapshot
	q.DequeueNext()
	if len(pending) != 1 {
		t.Error("Pending snapshot must not track later consumption")
	}
}

func TestChangesetTracksNewTables(t *testing.T) {
	cs := NewChangeset()
	users := &TableOp{Name: "Users", Mod: Add, Columns: []*ColumnDef{{Name: "Id", Type: Int}}}
	cs.Enqueue(users)
	cs.Enqueue(&TableOp{Name: "Old", Mod: Drop})

	if got := cs.NewTable("Users"); got != users {
		t.Errorf("NewTable(Users) = %v, want the enqueued TableOp", got)
	}
	if cs.NewTable("Old") != nil {
		t.Error("dropped tables are not new tables")
	}
	if cs.NewTable("Missing") != nil {
		t.Error("unknown tables are not new tables")
	}
}

func TestChangesetHasPrimaryKey(t *testing.T) {
	cs := NewChangeset()
	cs.Enqueue(&TableOp{Name: "Users", Mod: Add, Columns: []*ColumnDef{{Name: "Id", Type: Int}}})

	if cs.HasPrimaryKey("Users") {
		t.Error("no primary key enqueued yet")
	}

	cs.Enqueue(&PrimaryKeyOp{Table: "Users", Columns: []string{"Id"}, Mod: Add})
	if !cs.HasPrimaryKey("Users") {
		t.Error("pending PrimaryKeyOp should be visible")
	}
	if cs.HasPrimaryKey("Orders") {
		t.Error("primary key lookup must be per-table")
	}
}
