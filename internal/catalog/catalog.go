// Package catalog loads and validates the exercise registry.
//
// Exercises are YAML documents, one per file, loaded either from the
// embedded built-in set or from a user-supplied directory. Parsing is
// strict: unknown fields are load errors. The catalog is immutable after
// load.
package catalog

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"sqlcoach/internal/domain"
)

// Service is the in-memory exercise registry. It implements domain.Catalog.
type Service struct {
	exercises []*domain.Exercise
	byName    map[string]*domain.Exercise
}

var _ domain.Catalog = (*Service)(nil)

// indexDoc mirrors domain.IndexSpec in YAML form.
type indexDoc struct {
	Table   string   `yaml:"table"`
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
}

// verifyDoc mirrors domain.Verify in YAML form.
type verifyDoc struct {
	OKSQL   string    `yaml:"ok_sql"`
	FailSQL string    `yaml:"fail_sql"`
	DML     string    `yaml:"dml"`
	Query   string    `yaml:"query"`
	Want    [][]any   `yaml:"want"`
	Index   *indexDoc `yaml:"index"`
}

// overrideDoc mirrors domain.Override in YAML form.
type overrideDoc struct {
	Setup   string `yaml:"setup"`
	SQL     string `yaml:"sql"`
	OKSQL   string `yaml:"ok_sql"`
	FailSQL string `yaml:"fail_sql"`
	DML     string `yaml:"dml"`
	Query   string `yaml:"query"`
}

// exerciseDoc is the on-disk shape of one exercise file.
type exerciseDoc struct {
	Name        string                 `yaml:"name"`
	Category    string                 `yaml:"category"`
	Description string                 `yaml:"description"`
	Setup       string                 `yaml:"setup"`
	SQL         string                 `yaml:"sql"`
	Engines     []string               `yaml:"engines"`
	Verify      verifyDoc              `yaml:"verify"`
	Overrides   map[string]overrideDoc `yaml:"overrides"`
}

// LoadEmbedded loads the built-in exercise set shipped in the binary.
func LoadEmbedded() (*Service, error) {
	return load(EmbedExercises, "exercises")
}

// LoadDirectory loads exercises from *.yaml files in dir, for authoring new
// exercises without rebuilding the binary.
func LoadDirectory(dir string) (*Service, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog directory: %s is not a directory", dir)
	}
	return load(os.DirFS(dir), ".")
}

// load reads every *.yaml file under root in file-name order. Declaration
// order is the sorted file order, so All() is stable across runs.
func load(fsys fs.FS, root string) (*Service, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(root, name))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("catalog: no exercise files found under %s", root)
	}

	svc := &Service{byName: make(map[string]*domain.Exercise, len(paths))}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		var doc exerciseDoc
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

		ex, err := doc.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if _, dup := svc.byName[ex.Name]; dup {
			return nil, domain.ErrValidation("%s: duplicate exercise name %q", path, ex.Name)
		}
		svc.byName[ex.Name] = ex
		svc.exercises = append(svc.exercises, ex)
	}

	return svc, nil
}

// Get returns the named exercise or a NotFoundError.
func (s *Service) Get(name string) (*domain.Exercise, error) {
	ex, ok := s.byName[name]
	if !ok {
		return nil, domain.ErrNotFound("exercise %q not found in catalog", name)
	}
	return ex, nil
}

// All returns every exercise in declaration order.
func (s *Service) All() []*domain.Exercise {
	out := make([]*domain.Exercise, len(s.exercises))
	copy(out, s.exercises)
	return out
}

// toDomain converts the YAML document into a validated domain exercise.
func (d *exerciseDoc) toDomain() (*domain.Exercise, error) {
	if d.Name == "" {
		return nil, domain.ErrValidation("exercise name is required")
	}
	cat := domain.Category(d.Category)
	if !cat.Valid() {
		return nil, domain.ErrValidation("exercise %q: unknown category %q", d.Name, d.Category)
	}
	for _, engine := range d.Engines {
		if !knownEngine(engine) {
			return nil, domain.ErrValidation("exercise %q: unknown engine %q", d.Name, engine)
		}
	}
	for engine := range d.Overrides {
		if !knownEngine(engine) {
			return nil, domain.ErrValidation("exercise %q: override for unknown engine %q", d.Name, engine)
		}
	}

	ex := &domain.Exercise{
		Name:        d.Name,
		Category:    cat,
		Description: d.Description,
		Setup:       d.Setup,
		SQL:         d.SQL,
		Engines:     d.Engines,
		Verify: domain.Verify{
			OKSQL:   d.Verify.OKSQL,
			FailSQL: d.Verify.FailSQL,
			DML:     d.Verify.DML,
			Query:   d.Verify.Query,
			Want:    d.Verify.Want,
		},
	}
	if d.Verify.Index != nil {
		ex.Verify.Index = &domain.IndexSpec{
			Table:   d.Verify.Index.Table,
			Name:    d.Verify.Index.Name,
			Columns: d.Verify.Index.Columns,
		}
	}
	if len(d.Overrides) > 0 {
		ex.Overrides = make(map[string]domain.Override, len(d.Overrides))
		for engine, ov := range d.Overrides {
			ex.Overrides[engine] = domain.Override{
				Setup:   ov.Setup,
				SQL:     ov.SQL,
				OKSQL:   ov.OKSQL,
				FailSQL: ov.FailSQL,
				DML:     ov.DML,
				Query:   ov.Query,
			}
		}
	}

	if err := validateVerify(ex); err != nil {
		return nil, err
	}
	return ex, nil
}

// validateVerify enforces the per-category verify shape so a malformed
// exercise fails at load time, not mid-run.
func validateVerify(ex *domain.Exercise) error {
	v := ex.Verify
	hasQueryCheck := v.Query != "" && len(v.Want) > 0
	switch ex.Category {
	case domain.CategoryConstraint:
		if v.FailSQL == "" {
			return domain.ErrValidation("exercise %q: constraint exercises require verify.fail_sql", ex.Name)
		}
	case domain.CategoryIndex:
		if v.Index == nil || v.Index.Table == "" || len(v.Index.Columns) == 0 {
			return domain.ErrValidation("exercise %q: index exercises require verify.index with table and columns", ex.Name)
		}
	case domain.CategoryView:
		if !hasQueryCheck {
			return domain.ErrValidation("exercise %q: view exercises require verify.query and verify.want", ex.Name)
		}
	case domain.CategoryTrigger:
		if !hasQueryCheck && v.FailSQL == "" {
			return domain.ErrValidation("exercise %q: trigger exercises require verify.query/verify.want or verify.fail_sql", ex.Name)
		}
	case domain.CategoryFunction, domain.CategoryProcedure:
		if !hasQueryCheck {
			return domain.ErrValidation("exercise %q: %s exercises require verify.query and verify.want", ex.Name, ex.Category)
		}
	}
	if v.Query == "" && len(v.Want) > 0 {
		return domain.ErrValidation("exercise %q: verify.want set without verify.query", ex.Name)
	}
	return nil
}

func knownEngine(name string) bool {
	for _, engine := range domain.Engines() {
		if name == engine {
			return true
		}
	}
	return false
}
