// Package checker evaluates exercise post-conditions against a sandbox.
//
// A check distinguishes three outcomes: nil (every post-condition held), a
// *domain.AssertionError (the exercise ran but the observed state did not
// match the expected effect), and any other error (the exercise could not
// be evaluated at all, e.g. its setup SQL is broken).
package checker

import (
	"context"
	"errors"
	"fmt"

	"sqlcoach/internal/domain"
)

// Check runs the exercise's SQL in the sandbox and verifies its expected
// effect. The exercise must already be resolved for the executor's engine
// (dialect overrides applied).
func Check(ctx context.Context, ex *domain.Exercise, exec domain.Executor) error {
	if ex.Setup != "" {
		if err := exec.Exec(ctx, ex.Setup); err != nil {
			return fmt.Errorf("setup: %w", err)
		}
	}
	if ex.SQL != "" {
		if err := exec.Exec(ctx, ex.SQL); err != nil {
			return fmt.Errorf("exercise sql: %w", err)
		}
	}

	v := ex.Verify

	// Valid data must be accepted. Run before fail_sql so uniqueness
	// violations have a row to collide with.
	if v.OKSQL != "" {
		if err := exec.Exec(ctx, v.OKSQL); err != nil {
			var ce *domain.ConstraintError
			if errors.As(err, &ce) {
				return domain.ErrAssertion("valid statement was rejected: %s", ce.Message)
			}
			return fmt.Errorf("ok statement: %w", err)
		}
	}

	// Violating data must be rejected with a constraint violation; the
	// expected rejection counts as a pass, anything else is a failure.
	if v.FailSQL != "" {
		err := exec.Exec(ctx, v.FailSQL)
		var ce *domain.ConstraintError
		switch {
		case err == nil:
			return domain.ErrAssertion("violating statement succeeded, want constraint violation")
		case errors.As(err, &ce):
			// expected
		default:
			return domain.ErrAssertion("violating statement failed with %q, want constraint violation", err)
		}
	}

	// Triggering DML for trigger exercises.
	if v.DML != "" {
		if err := exec.Exec(ctx, v.DML); err != nil {
			return fmt.Errorf("triggering dml: %w", err)
		}
	}

	if v.Index != nil {
		if err := checkIndex(ctx, exec, v.Index); err != nil {
			return err
		}
	}

	if v.Query != "" {
		got, err := exec.Query(ctx, v.Query)
		if err != nil {
			return fmt.Errorf("verification query: %w", err)
		}
		if ok, diff := compareRowSets(got, v.Want); !ok {
			return domain.ErrAssertion("verification query mismatch: %s", diff)
		}
	}

	return nil
}

// checkIndex verifies the engine's index catalog lists an index on exactly
// the specified columns.
func checkIndex(ctx context.Context, exec domain.Executor, spec *domain.IndexSpec) error {
	indexes, err := exec.TableIndexes(ctx, spec.Table)
	if err != nil {
		return fmt.Errorf("inspect indexes on %s: %w", spec.Table, err)
	}

	names := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		names = append(names, idx.Name)
		if spec.Name != "" && idx.Name != spec.Name {
			continue
		}
		if columnsEqual(idx.Columns, spec.Columns) {
			return nil
		}
		if spec.Name != "" {
			return domain.ErrAssertion("index %s on %s covers columns %v, want %v",
				idx.Name, spec.Table, idx.Columns, spec.Columns)
		}
	}

	if spec.Name != "" {
		return domain.ErrAssertion("no index named %s on %s (found %v)", spec.Name, spec.Table, names)
	}
	return domain.ErrAssertion("no index on %s with columns %v (found %v)", spec.Table, spec.Columns, names)
}
