package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReport_Summarize(t *testing.T) {
	rep := &Report{Engine: EngineSQLite}
	rep.Add(RunResult{Exercise: "a", Status: StatusPass})
	rep.Add(RunResult{Exercise: "b", Status: StatusPass})
	rep.Add(RunResult{Exercise: "c", Status: StatusFail, Message: "mismatch"})
	rep.Add(RunResult{Exercise: "d", Status: StatusError, Message: "broken sql"})
	rep.Add(RunResult{Exercise: "e", Status: StatusSkip})

	s := rep.Summarize()
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.Pass)
	assert.Equal(t, 1, s.Fail)
	assert.Equal(t, 1, s.Error)
	assert.Equal(t, 1, s.Skip)
}

func TestReport_ExitCode(t *testing.T) {
	t.Run("all_pass", func(t *testing.T) {
		rep := &Report{}
		rep.Add(RunResult{Status: StatusPass})
		assert.Equal(t, 0, rep.ExitCode())
	})

	t.Run("skips_do_not_fail", func(t *testing.T) {
		rep := &Report{}
		rep.Add(RunResult{Status: StatusPass})
		rep.Add(RunResult{Status: StatusSkip})
		assert.Equal(t, 0, rep.ExitCode())
	})

	t.Run("fail", func(t *testing.T) {
		rep := &Report{}
		rep.Add(RunResult{Status: StatusFail})
		assert.Equal(t, 1, rep.ExitCode())
	})

	t.Run("error", func(t *testing.T) {
		rep := &Report{}
		rep.Add(RunResult{Status: StatusError})
		assert.Equal(t, 1, rep.ExitCode())
	})
}
