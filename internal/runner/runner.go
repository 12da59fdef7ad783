// Package runner drives a catalog run: one fresh sandbox per exercise,
// strictly sequential, one report per run.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"sqlcoach/internal/checker"
	"sqlcoach/internal/domain"
)

// Options selects which exercises a run covers.
type Options struct {
	// Names limits the run to the named exercises, in the given order.
	// Empty means the whole catalog in declaration order.
	Names []string
	// Category keeps only exercises of one category. Empty means all.
	Category domain.Category
}

// Runner executes exercises against sandboxes from a single factory.
type Runner struct {
	catalog domain.Catalog
	factory domain.SandboxFactory
	log     *slog.Logger
}

// New creates a Runner. A nil logger falls back to slog.Default().
func New(catalog domain.Catalog, factory domain.SandboxFactory, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{catalog: catalog, factory: factory, log: log}
}

// Run executes the selected exercises sequentially and returns the report.
// Unknown exercise names fail before anything executes. A ConnectionError
// aborts the run; every other error is recorded per exercise and the run
// continues.
func (r *Runner) Run(ctx context.Context, opts Options) (*domain.Report, error) {
	exercises, err := r.resolve(opts)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{Engine: r.factory.Engine()}
	for _, ex := range exercises {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := r.runOne(ctx, ex)
		if err != nil {
			return nil, err
		}
		report.Add(res)
		r.log.Debug("exercise finished",
			"exercise", res.Exercise,
			"status", string(res.Status),
			"duration", res.Duration,
		)
	}
	return report, nil
}

func (r *Runner) resolve(opts Options) ([]*domain.Exercise, error) {
	if opts.Category != "" && !opts.Category.Valid() {
		return nil, domain.ErrValidation("unknown category %q", opts.Category)
	}

	var selected []*domain.Exercise
	if len(opts.Names) == 0 {
		selected = r.catalog.All()
	} else {
		for _, name := range opts.Names {
			ex, err := r.catalog.Get(name)
			if err != nil {
				return nil, err
			}
			selected = append(selected, ex)
		}
	}

	if opts.Category == "" {
		return selected, nil
	}
	var filtered []*domain.Exercise
	for _, ex := range selected {
		if ex.Category == opts.Category {
			filtered = append(filtered, ex)
		}
	}
	return filtered, nil
}

// runOne provisions a sandbox, evaluates one exercise, and tears the
// sandbox down. The returned error is non-nil only for fatal conditions.
func (r *Runner) runOne(ctx context.Context, ex *domain.Exercise) (domain.RunResult, error) {
	res := domain.RunResult{Exercise: ex.Name, Category: ex.Category}
	engine := r.factory.Engine()

	if !ex.SupportsEngine(engine) {
		res.Status = domain.StatusSkip
		res.Message = fmt.Sprintf("exercise is restricted to engines %v", ex.Engines)
		return res, nil
	}
	if ex.Category == domain.CategoryTrigger && !r.factory.SupportsTriggers() {
		res.Status = domain.StatusSkip
		res.Message = fmt.Sprintf("engine %s does not support triggers", engine)
		return res, nil
	}

	start := time.Now()
	exec, err := r.factory.Open(ctx)
	if err != nil {
		// Factory failures are connection errors: the engine is unusable.
		return res, err
	}
	defer func() {
		if cerr := exec.Close(); cerr != nil {
			r.log.Warn("sandbox close failed", "exercise", ex.Name, "error", cerr)
		}
	}()

	checkErr := checker.Check(ctx, ex.ForEngine(engine), exec)
	res.Duration = time.Since(start)

	var (
		assertErr *domain.AssertionError
		connErr   *domain.ConnectionError
	)
	switch {
	case checkErr == nil:
		res.Status = domain.StatusPass
	case errors.As(checkErr, &assertErr):
		res.Status = domain.StatusFail
		res.Message = assertErr.Message
	case errors.As(checkErr, &connErr):
		return res, checkErr
	default:
		res.Status = domain.StatusError
		res.Message = checkErr.Error()
	}
	return res, nil
}
