package domain

// Category classifies an exercise by the SQL feature it teaches.
type Category string

// Known exercise categories.
const (
	CategoryConstraint Category = "constraint"
	CategoryIndex      Category = "index"
	CategoryView       Category = "view"
	CategoryTrigger    Category = "trigger"
	CategoryFunction   Category = "function"
	CategoryProcedure  Category = "procedure"
)

// Categories lists all known categories in a stable order.
func Categories() []Category {
	return []Category{
		CategoryConstraint,
		CategoryIndex,
		CategoryView,
		CategoryTrigger,
		CategoryFunction,
		CategoryProcedure,
	}
}

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// IndexSpec describes the index an index exercise is expected to create.
type IndexSpec struct {
	Table string
	// Name is optional; when empty any index on Table with the exact
	// column list satisfies the check.
	Name    string
	Columns []string
}

// Verify holds the post-condition checks for an exercise. Which fields are
// required depends on the category; the catalog validates that at load time.
type Verify struct {
	// OKSQL must succeed against the engine (valid data accepted).
	OKSQL string
	// FailSQL must be rejected with a constraint violation.
	FailSQL string
	// DML is the triggering statement for trigger exercises, executed
	// before Query.
	DML string
	// Query is the verification query whose result set is compared to Want.
	Query string
	// Want is the expected result set. Scalars compare exactly, row sets
	// compare as multisets (order ignored).
	Want [][]any
	// Index is the expected index shape for index exercises.
	Index *IndexSpec
}

// Override carries engine-specific replacements for SQL text that is not
// portable across dialects. Empty fields keep the base value.
type Override struct {
	Setup   string
	SQL     string
	OKSQL   string
	FailSQL string
	DML     string
	Query   string
}

// Exercise is a single named SQL lesson: the statement(s) a student would
// write plus the checks that prove the intended effect. Immutable once
// loaded from the catalog.
type Exercise struct {
	Name        string
	Category    Category
	Description string
	// Setup runs before SQL in the same sandbox (base tables, seed rows).
	Setup string
	// SQL is the exercise body. May contain multiple statements.
	SQL string
	// Engines restricts which engines may run the exercise. Empty means all.
	Engines []string
	Verify  Verify
	// Overrides maps an engine name to dialect-specific SQL replacements.
	Overrides map[string]Override
}

// SupportsEngine reports whether the exercise may run on the named engine.
func (e *Exercise) SupportsEngine(engine string) bool {
	if len(e.Engines) == 0 {
		return true
	}
	for _, name := range e.Engines {
		if name == engine {
			return true
		}
	}
	return false
}

// ForEngine returns a copy of the exercise with any dialect overrides for
// the named engine applied. The receiver is never mutated.
func (e *Exercise) ForEngine(engine string) *Exercise {
	resolved := *e
	ov, ok := e.Overrides[engine]
	if !ok {
		return &resolved
	}
	if ov.Setup != "" {
		resolved.Setup = ov.Setup
	}
	if ov.SQL != "" {
		resolved.SQL = ov.SQL
	}
	if ov.OKSQL != "" {
		resolved.Verify.OKSQL = ov.OKSQL
	}
	if ov.FailSQL != "" {
		resolved.Verify.FailSQL = ov.FailSQL
	}
	if ov.DML != "" {
		resolved.Verify.DML = ov.DML
	}
	if ov.Query != "" {
		resolved.Verify.Query = ov.Query
	}
	return &resolved
}
