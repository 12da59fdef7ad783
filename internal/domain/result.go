package domain

import "time"

// Status is the outcome of one exercise run.
type Status string

// Exercise outcomes.
const (
	// StatusPass means every post-condition held.
	StatusPass Status = "pass"
	// StatusFail means the observed state did not match the expected effect.
	StatusFail Status = "fail"
	// StatusError means the exercise could not be evaluated (e.g. the setup
	// or exercise SQL itself errored).
	StatusError Status = "error"
	// StatusSkip means the engine cannot run the exercise (capability or
	// explicit engine restriction).
	StatusSkip Status = "skip"
)

// RowSet is a captured query result: column names plus scanned rows.
type RowSet struct {
	Columns []string
	Rows    [][]any
}

// RunResult records the outcome of a single exercise. Created per run and
// discarded after reporting.
type RunResult struct {
	Exercise string
	Category Category
	Status   Status
	// Message explains failures, errors, and skips. Empty on pass.
	Message  string
	Duration time.Duration
}

// Report aggregates the results of one catalog run against one engine.
type Report struct {
	Engine  string
	Results []RunResult
}

// Add appends a result, preserving execution order.
func (r *Report) Add(res RunResult) {
	r.Results = append(r.Results, res)
}

// Summary holds per-status counts for a report.
type Summary struct {
	Pass  int
	Fail  int
	Error int
	Skip  int
	Total int
}

// Summarize tallies results by status.
func (r *Report) Summarize() Summary {
	var s Summary
	for _, res := range r.Results {
		switch res.Status {
		case StatusPass:
			s.Pass++
		case StatusFail:
			s.Fail++
		case StatusError:
			s.Error++
		case StatusSkip:
			s.Skip++
		}
	}
	s.Total = len(r.Results)
	return s
}

// ExitCode is 0 when no exercise failed or errored. Skips do not fail a run.
func (r *Report) ExitCode() int {
	s := r.Summarize()
	if s.Fail > 0 || s.Error > 0 {
		return 1
	}
	return 0
}
