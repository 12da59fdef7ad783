package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"sqlcoach/internal/domain"
)

// SQLite DSN parameters. WAL is pointless for a single-use sandbox file but
// busy_timeout and foreign_keys matter for correct constraint behavior.
const (
	defaultBusyTimeout = "5000" // 5 seconds
	defaultSynchronous = "OFF"  // sandbox files are disposable
)

// SQLiteFactory provisions file-backed SQLite sandboxes under workDir.
// Each sandbox is a uuid-named database file removed on Close.
type SQLiteFactory struct {
	workDir string
}

var _ domain.SandboxFactory = (*SQLiteFactory)(nil)

// NewSQLiteFactory creates a factory writing sandbox files to workDir.
func NewSQLiteFactory(workDir string) *SQLiteFactory {
	return &SQLiteFactory{workDir: workDir}
}

// Engine returns "sqlite".
func (f *SQLiteFactory) Engine() string { return domain.EngineSQLite }

// SupportsTriggers reports true; SQLite implements triggers.
func (f *SQLiteFactory) SupportsTriggers() bool { return true }

// Open creates a fresh sandbox database with the seed schema applied.
// Failures here mean the engine is unusable and are fatal to the run.
func (f *SQLiteFactory) Open(ctx context.Context) (domain.Executor, error) {
	path := filepath.Join(f.workDir, "sqlcoach-"+uuid.NewString()+".db")

	db, err := sql.Open("sqlite3", buildDSN(path))
	if err != nil {
		return nil, domain.ErrConnection(err, "open sqlite sandbox: %v", err)
	}

	// One exclusively-owned connection for the whole sandbox lifetime.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, domain.ErrConnection(err, "ping sqlite sandbox: %v", err)
	}

	if err := seedSQLite(db); err != nil {
		_ = db.Close()
		_ = os.Remove(path)
		return nil, domain.ErrConnection(err, "seed sqlite sandbox: %v", err)
	}

	return &sqliteExecutor{db: db, path: path}, nil
}

// buildDSN constructs the sandbox DSN.
func buildDSN(path string) string {
	params := url.Values{}
	params.Set("_busy_timeout", defaultBusyTimeout)
	params.Set("_synchronous", defaultSynchronous)
	params.Set("_foreign_keys", "on")
	return path + "?" + params.Encode()
}

type sqliteExecutor struct {
	db   *sql.DB
	path string
}

var _ domain.Executor = (*sqliteExecutor)(nil)

func (e *sqliteExecutor) Engine() string { return domain.EngineSQLite }

// Exec runs statements verbatim. Constraint rejections (including trigger
// RAISE(ABORT)) come back as *domain.ConstraintError with the engine's
// message untouched.
func (e *sqliteExecutor) Exec(ctx context.Context, sqlText string) error {
	_, err := e.db.ExecContext(ctx, sqlText)
	return classifySQLite(err)
}

func (e *sqliteExecutor) Query(ctx context.Context, sqlText string) (*domain.RowSet, error) {
	rows, err := e.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, classifySQLite(err)
	}
	return captureRows(rows)
}

// TableIndexes lists user-created indexes on the table from sqlite_master,
// resolving column order through PRAGMA index_info. Auto-indexes backing
// UNIQUE and PRIMARY KEY constraints are excluded.
func (e *sqliteExecutor) TableIndexes(ctx context.Context, table string) ([]domain.IndexInfo, error) {
	rows, err := e.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master
		 WHERE type = 'index' AND tbl_name = ? AND sql IS NOT NULL
		 ORDER BY name`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	indexes := make([]domain.IndexInfo, 0, len(names))
	for _, name := range names {
		cols, err := e.indexColumns(ctx, name)
		if err != nil {
			return nil, err
		}
		indexes = append(indexes, domain.IndexInfo{Name: name, Columns: cols})
	}
	return indexes, nil
}

func (e *sqliteExecutor) indexColumns(ctx context.Context, index string) ([]string, error) {
	rows, err := e.db.QueryContext(ctx, fmt.Sprintf("PRAGMA index_info(%q)", index))
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	type entry struct {
		seq  int
		name string
	}
	var entries []entry
	for rows.Next() {
		var (
			seq, cid int
			name     sql.NullString
		)
		if err := rows.Scan(&seq, &cid, &name); err != nil {
			return nil, err
		}
		entries = append(entries, entry{seq: seq, name: name.String})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cols := make([]string, len(entries))
	for _, en := range entries {
		if en.seq >= 0 && en.seq < len(cols) {
			cols[en.seq] = en.name
		}
	}
	return cols, nil
}

// Close tears down the sandbox and removes the database file.
func (e *sqliteExecutor) Close() error {
	err := e.db.Close()
	for _, suffix := range []string{"", "-wal", "-shm"} {
		_ = os.Remove(e.path + suffix)
	}
	return err
}

// classifySQLite maps driver errors to domain error types. Only constraint
// violations are reinterpreted; everything else is surfaced as-is.
func classifySQLite(err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrConstraint {
		return domain.ErrConstraint(err.Error())
	}
	return err
}
