package engine

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver

	"sqlcoach/internal/domain"
)

// DuckDBFactory provisions in-memory DuckDB sandboxes. DuckDB has no
// trigger support, so trigger exercises are skipped on this engine.
type DuckDBFactory struct{}

var _ domain.SandboxFactory = (*DuckDBFactory)(nil)

// NewDuckDBFactory creates a factory for in-memory DuckDB sandboxes.
func NewDuckDBFactory() *DuckDBFactory {
	return &DuckDBFactory{}
}

// Engine returns "duckdb".
func (f *DuckDBFactory) Engine() string { return domain.EngineDuckDB }

// SupportsTriggers reports false; DuckDB has no trigger support.
func (f *DuckDBFactory) SupportsTriggers() bool { return false }

// Open creates a fresh in-memory database with the seed schema applied.
func (f *DuckDBFactory) Open(ctx context.Context) (domain.Executor, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, domain.ErrConnection(err, "open duckdb sandbox: %v", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, domain.ErrConnection(err, "ping duckdb sandbox: %v", err)
	}

	if err := seedScript(ctx, db); err != nil {
		_ = db.Close()
		return nil, domain.ErrConnection(err, "seed duckdb sandbox: %v", err)
	}

	return &duckdbExecutor{db: db}, nil
}

type duckdbExecutor struct {
	db *sql.DB
}

var _ domain.Executor = (*duckdbExecutor)(nil)

func (e *duckdbExecutor) Engine() string { return domain.EngineDuckDB }

func (e *duckdbExecutor) Exec(ctx context.Context, sqlText string) error {
	_, err := e.db.ExecContext(ctx, sqlText)
	return classifyDuckDB(err)
}

func (e *duckdbExecutor) Query(ctx context.Context, sqlText string) (*domain.RowSet, error) {
	rows, err := e.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, classifyDuckDB(err)
	}
	return captureRows(rows)
}

// TableIndexes lists indexes from duckdb_indexes(). The catalog function
// exposes the CREATE INDEX text, not a column list, so columns are parsed
// out of the statement.
func (e *duckdbExecutor) TableIndexes(ctx context.Context, table string) ([]domain.IndexInfo, error) {
	rows, err := e.db.QueryContext(ctx,
		`SELECT index_name, sql FROM duckdb_indexes() WHERE table_name = ? ORDER BY index_name`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var indexes []domain.IndexInfo
	for rows.Next() {
		var name, createSQL sql.NullString
		if err := rows.Scan(&name, &createSQL); err != nil {
			return nil, err
		}
		indexes = append(indexes, domain.IndexInfo{
			Name:    name.String,
			Columns: parseIndexColumns(createSQL.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return indexes, nil
}

func (e *duckdbExecutor) Close() error {
	return e.db.Close()
}

// parseIndexColumns extracts the column list from a CREATE INDEX statement,
// e.g. `CREATE INDEX idx ON t (a, b)` -> [a b].
func parseIndexColumns(createSQL string) []string {
	start := strings.Index(createSQL, "(")
	end := strings.LastIndex(createSQL, ")")
	if start < 0 || end <= start {
		return nil
	}
	parts := strings.Split(createSQL[start+1:end], ",")
	cols := make([]string, 0, len(parts))
	for _, part := range parts {
		col := strings.TrimSpace(part)
		col = strings.Trim(col, `"`)
		if col != "" {
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 {
		return nil
	}
	return cols
}

// classifyDuckDB maps driver errors to domain error types. The DuckDB
// driver exposes no error codes over database/sql, so classification keys
// off the message prefix the engine uses for all constraint violations.
func classifyDuckDB(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "Constraint Error") || strings.Contains(msg, "constraint failed") {
		return domain.ErrConstraint(msg)
	}
	return err
}
