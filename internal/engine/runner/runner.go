// Package runner executes migration plans against a live database.
// Each migration unit compiles to SQL and runs in its own transaction
// when the dialect supports transactional DDL; a failure rolls the unit
// back, leaves the ledger at the previous version, and aborts the run.
package runner

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hlop3z/migrala/internal/ast"
	"github.com/hlop3z/migrala/internal/dialect"
	"github.com/hlop3z/migrala/internal/engine"
	"github.com/hlop3z/migrala/internal/merr"
	"github.com/hlop3z/migrala/internal/sqlgen"
)

// BeforeHook runs before each migration unit. Returning false cancels
// the run: the unit is not executed and the run stops cleanly.
type BeforeHook func(m engine.Migration, dir engine.Direction) bool

// AfterHook runs after each successfully applied unit.
type AfterHook func(m engine.Migration, dir engine.Direction)

// Status of a finished run.
type Status int

const (
	// Completed: every unit in the plan was applied.
	Completed Status = iota

	// Aborted: a before-migration hook cancelled the run. Not an error;
	// the ledger is consistent with the units that did run.
	Aborted
)

// Result describes a finished run.
type Result struct {
	Status  Status
	Applied []int64 // Versions applied (or reverted), in execution order
	Skipped int     // Operations the dialect could not express
}

// Runner executes plans.
type Runner struct {
	conn    engine.Conn
	ledger  engine.Ledger
	dialect dialect.Dialect
	logger  *slog.Logger
	strict  bool
	before  BeforeHook
	after   AfterHook
}

// Option configures a Runner.
type Option func(*Runner)

// WithLedger replaces the default SQL ledger.
func WithLedger(l engine.Ledger) Option {
	return func(r *Runner) { r.ledger = l }
}

// WithConn replaces the default database/sql connection adapter.
func WithConn(c engine.Conn) Option {
	return func(r *Runner) { r.conn = c }
}

// WithBeforeHook installs the cancellable before-migration hook.
func WithBeforeHook(h BeforeHook) Option {
	return func(r *Runner) { r.before = h }
}

// WithAfterHook installs the after-migration hook.
func WithAfterHook(h AfterHook) Option {
	return func(r *Runner) { r.after = h }
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithStrict makes operations the dialect cannot express a hard error
// instead of a logged skip.
func WithStrict() Option {
	return func(r *Runner) { r.strict = true }
}

// New creates a runner. Returns nil if db or dialect is nil.
func New(db *sql.DB, d dialect.Dialect, opts ...Option) *Runner {
	if db == nil || d == nil {
		return nil
	}
	r := &Runner{
		conn:    engine.NewConn(db),
		ledger:  engine.NewLedger(db, d),
		dialect: d,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every unit in the plan, fail-fast. On failure the
// current unit's transaction is rolled back (when the dialect supports
// it) and the error carries the version and unit name.
func (r *Runner) Run(ctx context.Context, plan *engine.Plan) (*Result, error) {
	result := &Result{Status: Completed}
	if plan.IsEmpty() {
		return result, nil
	}

	if err := r.ledger.EnsureTable(ctx); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := r.logger.With("run_id", runID, "dialect", r.dialect.Name(), "direction", plan.Direction.String())
	log.Info("starting migration run", "units", len(plan.Migrations))

	for _, m := range plan.Migrations {
		if r.before != nil && !r.before(m, plan.Direction) {
			log.Info("run cancelled by hook", "version", m.Version, "name", m.Name)
			result.Status = Aborted
			return result, nil
		}

		start := time.Now()
		skipped, err := r.runOne(ctx, m, plan.Direction)
		if err != nil {
			return nil, merr.Wrap(merr.ErrMigrationFailed, err, "migration failed").
				WithVersion(m.Version).
				With("name", m.Name).
				With("direction", plan.Direction.String())
		}
		result.Skipped += skipped
		result.Applied = append(result.Applied, m.Version)

		log.Info("applied migration",
			"version", m.Version,
			"name", m.Name,
			"skipped_ops", skipped,
			"elapsed", time.Since(start))

		if r.after != nil {
			r.after(m, plan.Direction)
		}
	}

	return result, nil
}

// runOne compiles and executes a single unit, then records it in the
// ledger. The ledger write happens only after the unit's statements
// have committed.
func (r *Runner) runOne(ctx context.Context, m engine.Migration, dir engine.Direction) (int, error) {
	cs := ast.NewChangeset()
	switch dir {
	case engine.Up:
		m.Up(cs)
	case engine.Down:
		m.Down(cs)
	default:
		return 0, nil
	}

	var opts []sqlgen.Option
	if r.strict {
		opts = append(opts, sqlgen.WithStrict())
	}
	cmds, err := sqlgen.New(r.dialect, opts...).Compile(cs).Drain()
	if err != nil {
		return 0, err
	}

	skipped := 0
	var exec engine.Executor = r.conn
	var tx engine.Tx
	if r.dialect.SupportsTransactionalDDL() {
		tx, err = r.conn.Begin(ctx)
		if err != nil {
			return 0, err
		}
		exec = tx
	}

	for _, cmd := range cmds {
		if cmd.Outcome == sqlgen.OutcomeSkipped {
			skipped++
			r.logger.Warn("skipped unsupported operation",
				"version", m.Version,
				"kind", cmd.Op.Kind().String(),
				"reason", cmd.Reason)
			continue
		}
		if err := exec.Execute(ctx, cmd.SQL); err != nil {
			if tx != nil {
				if rbErr := tx.Rollback(); rbErr != nil {
					r.logger.Error("rollback failed", "version", m.Version, "error", rbErr)
				}
			}
			return 0, err
		}
	}

	if tx != nil {
		if err := tx.Commit(); err != nil {
			return 0, err
		}
	}

	switch dir {
	case engine.Up:
		err = r.ledger.MarkApplied(ctx, m.Version)
	case engine.Down:
		err = r.ledger.MarkUnapplied(ctx, m.Version)
	}
	if err != nil {
		return 0, err
	}
	return skipped, nil
}
