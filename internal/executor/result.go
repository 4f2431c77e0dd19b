package executor

import "github.com/vk/buildgrid/internal/runner"

// MatrixResult is the terminal artifact of one matrix run.
type MatrixResult struct {
	// RunID identifies this run in logs and reports.
	RunID string
	// Jobs holds one result per declared job, in declaration order
	// regardless of actual execution order.
	Jobs []*runner.JobResult
}

// OK reports overall success: every job succeeded.
func (m *MatrixResult) OK() bool {
	for _, job := range m.Jobs {
		if job.Failed() {
			return false
		}
	}
	return true
}
