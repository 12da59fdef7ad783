package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlcoach/internal/domain"
)

func TestLoadEmbedded(t *testing.T) {
	svc, err := LoadEmbedded()
	require.NoError(t, err)

	exercises := svc.All()
	require.Len(t, exercises, 14)

	t.Run("declaration_order", func(t *testing.T) {
		assert.Equal(t, "not-null-default", exercises[0].Name)
		assert.Equal(t, "unique-email", exercises[1].Name)
		assert.Equal(t, "compute-average", exercises[len(exercises)-1].Name)
	})

	t.Run("unique_names", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, ex := range exercises {
			assert.False(t, seen[ex.Name], "duplicate name %s", ex.Name)
			seen[ex.Name] = true
		}
	})

	t.Run("category_spread", func(t *testing.T) {
		counts := make(map[domain.Category]int)
		for _, ex := range exercises {
			counts[ex.Category]++
		}
		assert.Equal(t, 3, counts[domain.CategoryConstraint])
		assert.Equal(t, 2, counts[domain.CategoryIndex])
		assert.Equal(t, 2, counts[domain.CategoryView])
		assert.Equal(t, 3, counts[domain.CategoryTrigger])
		assert.Equal(t, 2, counts[domain.CategoryFunction])
		assert.Equal(t, 2, counts[domain.CategoryProcedure])
	})

	t.Run("dialect_overrides_resolve", func(t *testing.T) {
		ex, err := svc.Get("need-meeting-view")
		require.NoError(t, err)
		resolved := ex.ForEngine(domain.EngineDuckDB)
		assert.Contains(t, resolved.SQL, "INTERVAL 1 MONTH")
		assert.NotContains(t, ex.ForEngine(domain.EngineSQLite).SQL, "INTERVAL")
	})
}

func TestService_Get(t *testing.T) {
	svc, err := LoadEmbedded()
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		ex, err := svc.Get("unique-email")
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryConstraint, ex.Category)
		assert.NotEmpty(t, ex.Verify.FailSQL)
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := svc.Get("no-such-exercise")
		require.Error(t, err)
		var nf *domain.NotFoundError
		assert.ErrorAs(t, err, &nf)
	})
}

func writeExercise(t *testing.T, dir, file, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o600))
}

func TestLoadDirectory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		dir := t.TempDir()
		writeExercise(t, dir, "01_demo.yaml", `
name: demo
category: procedure
sql: "CREATE TABLE t (a INTEGER);"
verify:
  query: "SELECT count(*) FROM t;"
  want:
    - [0]
`)
		svc, err := LoadDirectory(dir)
		require.NoError(t, err)
		require.Len(t, svc.All(), 1)
		assert.Equal(t, "demo", svc.All()[0].Name)
	})

	t.Run("missing_directory", func(t *testing.T) {
		_, err := LoadDirectory(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
	})

	t.Run("empty_directory", func(t *testing.T) {
		_, err := LoadDirectory(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no exercise files")
	})

	t.Run("unknown_field_rejected", func(t *testing.T) {
		dir := t.TempDir()
		writeExercise(t, dir, "bad.yaml", `
name: bad
category: procedure
bogus_field: true
sql: "SELECT 1;"
verify:
  query: "SELECT 1;"
  want:
    - [1]
`)
		_, err := LoadDirectory(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bogus_field")
	})

	t.Run("duplicate_name_rejected", func(t *testing.T) {
		dir := t.TempDir()
		doc := `
name: twin
category: procedure
sql: "SELECT 1;"
verify:
  query: "SELECT 1;"
  want:
    - [1]
`
		writeExercise(t, dir, "01_a.yaml", doc)
		writeExercise(t, dir, "02_b.yaml", doc)
		_, err := LoadDirectory(dir)
		require.Error(t, err)
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("unknown_category_rejected", func(t *testing.T) {
		dir := t.TempDir()
		writeExercise(t, dir, "bad.yaml", `
name: bad
category: partition
sql: "SELECT 1;"
`)
		_, err := LoadDirectory(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown category")
	})

	t.Run("unknown_engine_rejected", func(t *testing.T) {
		dir := t.TempDir()
		writeExercise(t, dir, "bad.yaml", `
name: bad
category: procedure
engines: [oracle]
sql: "SELECT 1;"
verify:
  query: "SELECT 1;"
  want:
    - [1]
`)
		_, err := LoadDirectory(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown engine")
	})
}

func TestValidateVerify(t *testing.T) {
	t.Run("constraint_requires_fail_sql", func(t *testing.T) {
		err := validateVerify(&domain.Exercise{
			Name:     "c",
			Category: domain.CategoryConstraint,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fail_sql")
	})

	t.Run("index_requires_spec", func(t *testing.T) {
		err := validateVerify(&domain.Exercise{
			Name:     "i",
			Category: domain.CategoryIndex,
			Verify:   domain.Verify{Index: &domain.IndexSpec{Table: "t"}},
		})
		require.Error(t, err)
	})

	t.Run("view_requires_query", func(t *testing.T) {
		err := validateVerify(&domain.Exercise{
			Name:     "v",
			Category: domain.CategoryView,
		})
		require.Error(t, err)
	})

	t.Run("trigger_accepts_fail_sql_only", func(t *testing.T) {
		err := validateVerify(&domain.Exercise{
			Name:     "t",
			Category: domain.CategoryTrigger,
			Verify:   domain.Verify{FailSQL: "UPDATE x SET y = -1;"},
		})
		assert.NoError(t, err)
	})

	t.Run("want_without_query_rejected", func(t *testing.T) {
		err := validateVerify(&domain.Exercise{
			Name:     "p",
			Category: domain.CategoryProcedure,
			Verify:   domain.Verify{Query: "SELECT 1;", Want: [][]any{{1}}},
		})
		assert.NoError(t, err)

		err = validateVerify(&domain.Exercise{
			Name:     "c2",
			Category: domain.CategoryConstraint,
			Verify:   domain.Verify{FailSQL: "x", Want: [][]any{{1}}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "without verify.query")
	})
}
