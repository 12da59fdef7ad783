package engine

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/pressly/goose/v3"
)

// EmbedSeed contains the seed schema applied to every fresh sandbox.
//
//go:embed seed/*.sql
var EmbedSeed embed.FS

// seedSQLite applies the seed schema to a SQLite sandbox via goose.
func seedSQLite(db *sql.DB) error {
	goose.SetBaseFS(EmbedSeed)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.Up(db, "seed"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// seedScript applies the seed schema by executing the Up sections of the
// embedded migration files directly. Used for engines goose has no dialect
// for (DuckDB).
func seedScript(ctx context.Context, db *sql.DB) error {
	entries, err := fs.ReadDir(EmbedSeed, "seed")
	if err != nil {
		return fmt.Errorf("read seed dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := fs.ReadFile(EmbedSeed, "seed/"+name)
		if err != nil {
			return fmt.Errorf("read seed %s: %w", name, err)
		}
		up := upSection(string(data))
		if strings.TrimSpace(up) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, up); err != nil {
			return fmt.Errorf("apply seed %s: %w", name, err)
		}
	}
	return nil
}

// upSection extracts the statements between the goose Up and Down markers.
// A file without markers is returned whole.
func upSection(script string) string {
	lines := strings.Split(script, "\n")
	var out []string
	in := false
	sawMarker := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "-- +goose Up"):
			in = true
			sawMarker = true
		case strings.HasPrefix(trimmed, "-- +goose Down"):
			in = false
		default:
			if in {
				out = append(out, line)
			}
		}
	}
	if !sawMarker {
		return script
	}
	return strings.Join(out, "\n")
}
