package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlcoach/internal/domain"
)

func openDuckDB(t *testing.T) domain.Executor {
	t.Helper()
	exec, err := NewDuckDBFactory().Open(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = exec.Close() })
	return exec
}

func TestParseIndexColumns(t *testing.T) {
	cases := map[string][]string{
		`CREATE INDEX idx_first_name ON names (first_name)`:        {"first_name"},
		`CREATE INDEX idx_name_score ON names (first_name, score)`: {"first_name", "score"},
		`CREATE INDEX q ON t ("quoted col", plain)`:                {"quoted col", "plain"},
		`CREATE INDEX empty ON t ()`:                               nil,
		`no parens at all`:                                         nil,
	}
	for input, want := range cases {
		assert.Equal(t, want, parseIndexColumns(input), "input %q", input)
	}
}

func TestUpSection(t *testing.T) {
	t.Run("between_markers", func(t *testing.T) {
		script := "-- +goose Up\nCREATE TABLE a (x INTEGER);\n-- +goose Down\nDROP TABLE a;\n"
		up := upSection(script)
		assert.Contains(t, up, "CREATE TABLE a")
		assert.NotContains(t, up, "DROP TABLE")
	})

	t.Run("no_markers_returns_whole_script", func(t *testing.T) {
		script := "CREATE TABLE b (y INTEGER);"
		assert.Equal(t, script, upSection(script))
	})

	t.Run("seed_files_have_up_sections", func(t *testing.T) {
		data, err := EmbedSeed.ReadFile("seed/0001_seed_tables.sql")
		require.NoError(t, err)
		up := upSection(string(data))
		assert.Contains(t, up, "CREATE TABLE students")
		assert.NotContains(t, up, "DROP TABLE")
	})
}

func TestClassifyDuckDB(t *testing.T) {
	assert.Nil(t, classifyDuckDB(nil))

	err := classifyDuckDB(assertError("Constraint Error: Duplicate key violates unique constraint"))
	var ce *domain.ConstraintError
	require.ErrorAs(t, err, &ce)

	plain := assertError("Parser Error: syntax error at or near")
	assert.Equal(t, error(plain), classifyDuckDB(plain))
}

// assertError is a trivial error type for classification tests.
type assertError string

func (e assertError) Error() string { return string(e) }

func TestDuckDBFactory_Engine(t *testing.T) {
	factory := NewDuckDBFactory()
	assert.Equal(t, domain.EngineDuckDB, factory.Engine())
	assert.False(t, factory.SupportsTriggers())
}

func TestDuckDBFactory_SeedApplied(t *testing.T) {
	exec := openDuckDB(t)
	ctx := context.Background()

	set, err := exec.Query(ctx, "SELECT count(*) FROM metal_bands")
	require.NoError(t, err)
	require.Len(t, set.Rows, 1)
	assert.EqualValues(t, 3, set.Rows[0][0])

	// students is created empty; exercises bring their own rows.
	set, err = exec.Query(ctx, "SELECT count(*) FROM students")
	require.NoError(t, err)
	assert.EqualValues(t, 0, set.Rows[0][0])

	set, err = exec.Query(ctx, "SELECT count(*) FROM names")
	require.NoError(t, err)
	assert.EqualValues(t, 5, set.Rows[0][0])
}

func TestDuckDBExecutor_ConstraintClassification(t *testing.T) {
	exec := openDuckDB(t)
	ctx := context.Background()

	require.NoError(t, exec.Exec(ctx, "CREATE TABLE u (email TEXT NOT NULL UNIQUE)"))
	require.NoError(t, exec.Exec(ctx, "INSERT INTO u (email) VALUES ('a@b.c')"))

	t.Run("unique_violation", func(t *testing.T) {
		err := exec.Exec(ctx, "INSERT INTO u (email) VALUES ('a@b.c')")
		require.Error(t, err)
		var ce *domain.ConstraintError
		require.True(t, errors.As(err, &ce))
	})

	t.Run("not_null_violation", func(t *testing.T) {
		err := exec.Exec(ctx, "INSERT INTO u (email) VALUES (NULL)")
		var ce *domain.ConstraintError
		require.True(t, errors.As(err, &ce))
	})

	t.Run("syntax_error_untouched", func(t *testing.T) {
		err := exec.Exec(ctx, "INSERT INTOO u VALUES (1)")
		require.Error(t, err)
		var ce *domain.ConstraintError
		assert.False(t, errors.As(err, &ce))
	})
}

func TestDuckDBExecutor_TableIndexes(t *testing.T) {
	exec := openDuckDB(t)
	ctx := context.Background()

	require.NoError(t, exec.Exec(ctx, "CREATE INDEX idx_name_score ON names (first_name, score)"))

	indexes, err := exec.TableIndexes(ctx, "names")
	require.NoError(t, err)
	require.Len(t, indexes, 1)
	assert.Equal(t, "idx_name_score", indexes[0].Name)
	assert.Equal(t, []string{"first_name", "score"}, indexes[0].Columns)

	t.Run("unindexed_table", func(t *testing.T) {
		indexes, err := exec.TableIndexes(ctx, "students")
		require.NoError(t, err)
		assert.Empty(t, indexes)
	})
}

func TestDuckDBFactory_SandboxesAreIsolated(t *testing.T) {
	ctx := context.Background()
	factory := NewDuckDBFactory()

	first, err := factory.Open(ctx)
	require.NoError(t, err)
	require.NoError(t, first.Exec(ctx, "INSERT INTO students (id, name) VALUES (1, 'Bob')"))
	require.NoError(t, first.Close())

	second, err := factory.Open(ctx)
	require.NoError(t, err)
	defer second.Close() //nolint:errcheck

	set, err := second.Query(ctx, "SELECT count(*) FROM students")
	require.NoError(t, err)
	assert.EqualValues(t, 0, set.Rows[0][0])
}
