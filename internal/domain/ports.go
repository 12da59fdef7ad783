package domain

import "context"

// Known engine names.
const (
	EngineSQLite = "sqlite"
	EngineDuckDB = "duckdb"
)

// Engines lists the supported engine names.
func Engines() []string {
	return []string{EngineSQLite, EngineDuckDB}
}

// IndexInfo describes one index in the engine's catalog.
type IndexInfo struct {
	Name    string
	Columns []string
}

// Executor is a live connection to one disposable sandbox database.
// Statements are sent verbatim; engine errors are surfaced with their
// original message, classified into domain error types where the driver
// allows it (constraint violations, connection loss).
type Executor interface {
	// Engine returns the engine name ("sqlite", "duckdb").
	Engine() string

	// Exec runs one or more statements that produce no result set.
	Exec(ctx context.Context, sql string) error

	// Query runs a single statement and captures its full result set.
	Query(ctx context.Context, sql string) (*RowSet, error)

	// TableIndexes lists the indexes currently defined on a table,
	// with columns in index order.
	TableIndexes(ctx context.Context, table string) ([]IndexInfo, error)

	// Close tears down the sandbox, removing any on-disk state.
	Close() error
}

// SandboxFactory provisions fresh, disposable sandbox databases. Each Open
// yields an isolated database with the seed schema already applied.
type SandboxFactory interface {
	Engine() string

	// SupportsTriggers reports whether the engine implements triggers.
	// Checked before a sandbox is provisioned so unsupported exercises
	// skip without opening one.
	SupportsTriggers() bool

	Open(ctx context.Context) (Executor, error)
}

// Catalog is a read-only registry of exercises.
type Catalog interface {
	// Get returns the named exercise or a NotFoundError.
	Get(name string) (*Exercise, error)

	// All returns every exercise in declaration order.
	All() []*Exercise
}
