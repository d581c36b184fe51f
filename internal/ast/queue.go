package ast

// Queue is an ordered collection of operations with strict FIFO
// consumption. Instead of mutating the backing list while the compiler
// iterates, removed operations are tombstoned in place: the arena keeps
// every enqueued operation and a liveness flag per slot, which makes the
// dependency-fusion rule auditable after the fact.
//
// A Queue is drained destructively and must not be shared across
// goroutines.
type Queue struct {
	ops  []Operation
	dead []bool
	next int // index of the next candidate for DequeueNext
}

// Enqueue appends an operation to the tail of the queue.
func (q *Queue) Enqueue(op Operation) {
	q.ops = append(q.ops, op)
	q.dead = append(q.dead, false)
}

// DequeueNext removes and returns the oldest live operation.
// It returns ok=false when the queue is drained.
func (q *Queue) DequeueNext() (Operation, bool) {
	for q.next < len(q.ops) {
		i := q.next
		q.next++
		if !q.dead[i] {
			q.dead[i] = true
			return q.ops[i], true
		}
	}
	return nil, false
}

// Remove tombstones a specific still-pending operation so it is never
// returned by DequeueNext. Operations are matched by identity. It is a
// no-op (returning false) if the operation was already consumed, already
// removed, or never enqueued. Used by the compiler to fuse a new table's
// inline constraints into its CREATE statement.
func (q *Queue) Remove(op Operation) bool {
	for i := q.next; i < len(q.ops); i++ {
		if q.ops[i] == op && !q.dead[i] {
			q.dead[i] = true
			return true
		}
	}
	return false
}

// Pending returns the live, not-yet-consumed operations in queue order.
// The returned slice is a snapshot; consuming or removing operations
// afterwards does not affect it.
func (q *Queue) Pending() []Operation {
	var pending []Operation
	for i := q.next; i < len(q.ops); i++ {
		if !q.dead[i] {
			pending = append(pending, q.ops[i])
		}
	}
	return pending
}

// Len returns the number of live, not-yet-consumed operations.
func (q *Queue) Len() int {
	n := 0
	for i := q.next; i < len(q.ops); i++ {
		if !q.dead[i] {
			n++
		}
	}
	return n
}

// -----------------------------------------------------------------------------
// Changeset - the schema-change unit
// -----------------------------------------------------------------------------

// Changeset is the scope of one compiled migration: it owns the operation
// queue and remembers the tables it has seen, so that later operations
// can ask questions like "is X a table created in this changeset" or
// "does X already have a primary key". A Changeset lives for a single
// compile pass and is discarded once the queue is drained.
type Changeset struct {
	queue  Queue
	tables map[string]*TableOp
}

// NewChangeset creates an empty changeset.
func NewChangeset() *Changeset {
	return &Changeset{
		tables: make(map[string]*TableOp),
	}
}

// Enqueue appends an operation to the changeset's queue and records
// table creations for later lookups.
func (c *Changeset) Enqueue(op Operation) {
	if t, ok := op.(*TableOp); ok && t.Mod == Add {
		c.tables[t.Name] = t
	}
	c.queue.Enqueue(op)
}

// Queue returns the changeset's operation queue.
func (c *Changeset) Queue() *Queue {
	return &c.queue
}

// NewTable returns the TableOp that creates the named table in this
// changeset, or nil if the table is pre-existing (not created here).
func (c *Changeset) NewTable(name string) *TableOp {
	return c.tables[name]
}

// HasPrimaryKey reports whether a primary key for the named table is
// already present in this changeset, either as a pending PrimaryKeyOp
// or as an already-recorded one.
func (c *Changeset) HasPrimaryKey(table string) bool {
	for _, op := range c.queue.Pending() {
		if pk, ok := op.(*PrimaryKeyOp); ok && pk.Table == table && pk.Mod == Add {
			return true
		}
	}
	return false
}
