// Package engine orders registered migration units into executable
// plans and tracks which versions have been applied. The runner
// subpackage executes plans against a live database.
package engine

import (
	"sort"

	"github.com/hlop3z/migrala/internal/ast"
	"github.com/hlop3z/migrala/internal/merr"
)

// Migration is one migration unit. Up populates a changeset with the
// operations that move the schema forward; Down, when provided, with
// the operations that revert them.
type Migration struct {
	Version int64
	Name    string
	Up      func(*ast.Changeset)
	Down    func(*ast.Changeset)
}

// Direction of a migration run.
type Direction int

const (
	None Direction = iota
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "none"
	}
}

// -----------------------------------------------------------------------------
// Registry
// -----------------------------------------------------------------------------

// Registry holds the known migration units, unique by version.
type Registry struct {
	migrations []Migration
	byVersion  map[int64]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byVersion: make(map[int64]int)}
}

// Add registers a migration unit. Versions must be positive and unique;
// an Up function is required.
func (r *Registry) Add(m Migration) error {
	if m.Version <= 0 {
		return merr.New(merr.ErrVersionConflict, "migration version must be positive").
			WithVersion(m.Version)
	}
	if _, exists := r.byVersion[m.Version]; exists {
		return merr.New(merr.ErrVersionConflict, "migration version already registered").
			WithVersion(m.Version)
	}
	if m.Up == nil {
		return merr.New(merr.ErrOpInvalid, "migration must define an up function").
			WithVersion(m.Version)
	}
	r.byVersion[m.Version] = len(r.migrations)
	r.migrations = append(r.migrations, m)
	return nil
}

// Get returns the migration with the given version.
func (r *Registry) Get(version int64) (Migration, bool) {
	i, ok := r.byVersion[version]
	if !ok {
		return Migration{}, false
	}
	return r.migrations[i], true
}

// Latest returns the highest registered version, or 0 when empty.
func (r *Registry) Latest() int64 {
	var latest int64
	for v := range r.byVersion {
		if v > latest {
			latest = v
		}
	}
	return latest
}

// Versions returns all registered versions in ascending order.
func (r *Registry) Versions() []int64 {
	versions := make([]int64, 0, len(r.byVersion))
	for v := range r.byVersion {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })
	return versions
}

// Len returns the number of registered migrations.
func (r *Registry) Len() int {
	return len(r.migrations)
}

// -----------------------------------------------------------------------------
// Plan
// -----------------------------------------------------------------------------

// Plan is the ordered list of units a run will execute. Up plans are
// ascending, down plans descending; an empty plan means the database is
// already at the target version.
type Plan struct {
	Direction  Direction
	Migrations []Migration
}

// IsEmpty reports whether the plan has nothing to execute.
func (p *Plan) IsEmpty() bool {
	return p == nil || len(p.Migrations) == 0
}

// Plan computes the units needed to move from the current version to
// the target. Target 0 means "revert everything". A target that is
// neither 0 nor a registered version is an error.
func (r *Registry) Plan(current, target int64) (*Plan, error) {
	if target != 0 {
		if _, ok := r.byVersion[target]; !ok {
			return nil, merr.New(merr.ErrMigrationNotFound, "target version is not registered").
				WithVersion(target)
		}
	}

	switch {
	case target > current:
		var units []Migration
		for _, v := range r.Versions() {
			if v > current && v <= target {
				m, _ := r.Get(v)
				units = append(units, m)
			}
		}
		return &Plan{Direction: Up, Migrations: units}, nil

	case target < current:
		versions := r.Versions()
		var units []Migration
		for i := len(versions) - 1; i >= 0; i-- {
			v := versions[i]
			if v <= current && v > target {
				m, _ := r.Get(v)
				if m.Down == nil {
					return nil, merr.New(merr.ErrMigrationFailed, "migration has no down function").
						WithVersion(v)
				}
				units = append(units, m)
			}
		}
		return &Plan{Direction: Down, Migrations: units}, nil

	default:
		return &Plan{Direction: None}, nil
	}
}
