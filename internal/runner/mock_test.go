package runner

import (
	"context"

	"sqlcoach/internal/domain"
)

// === Catalog mock ===

type mockCatalog struct {
	exercises []*domain.Exercise
}

func (m *mockCatalog) Get(name string) (*domain.Exercise, error) {
	for _, ex := range m.exercises {
		if ex.Name == name {
			return ex, nil
		}
	}
	return nil, domain.ErrNotFound("exercise %q not found in catalog", name)
}

func (m *mockCatalog) All() []*domain.Exercise {
	return m.exercises
}

// === Sandbox factory / executor mocks ===

type mockFactory struct {
	engine   string
	triggers bool
	openFn   func(ctx context.Context) (domain.Executor, error)
}

func (m *mockFactory) Engine() string { return m.engine }

func (m *mockFactory) SupportsTriggers() bool { return m.triggers }

func (m *mockFactory) Open(ctx context.Context) (domain.Executor, error) {
	if m.openFn != nil {
		return m.openFn(ctx)
	}
	panic("unexpected call to mockFactory.Open")
}

type mockExecutor struct {
	engine  string
	execFn  func(ctx context.Context, sql string) error
	queryFn func(ctx context.Context, sql string) (*domain.RowSet, error)
	indexFn func(ctx context.Context, table string) ([]domain.IndexInfo, error)
	closed  int
}

func (m *mockExecutor) Engine() string { return m.engine }

func (m *mockExecutor) Exec(ctx context.Context, sql string) error {
	if m.execFn != nil {
		return m.execFn(ctx, sql)
	}
	return nil
}

func (m *mockExecutor) Query(ctx context.Context, sql string) (*domain.RowSet, error) {
	if m.queryFn != nil {
		return m.queryFn(ctx, sql)
	}
	panic("unexpected call to mockExecutor.Query")
}

func (m *mockExecutor) TableIndexes(ctx context.Context, table string) ([]domain.IndexInfo, error) {
	if m.indexFn != nil {
		return m.indexFn(ctx, table)
	}
	panic("unexpected call to mockExecutor.TableIndexes")
}

func (m *mockExecutor) Close() error {
	m.closed++
	return nil
}
