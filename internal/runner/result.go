package runner

import "time"

// Status is the terminal state of a step or a job.
type Status int

const (
	// StatusSuccess means every command exited zero.
	StatusSuccess Status = iota
	// StatusFailed means a command exited non-zero or could not start.
	StatusFailed
	// StatusSkipped marks steps never attempted because an earlier step
	// in the same job failed. Skipped is not a failure.
	StatusSkipped
	// StatusTimeout means a step exceeded its allotted time and was
	// forcibly terminated. Aggregates as a failure, reported distinctly.
	StatusTimeout
	// StatusCancelled means the run was cancelled externally. Never
	// conflated with failure.
	StatusCancelled
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	case StatusTimeout:
		return "timeout"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Phase distinguishes setup commands from payload commands in reports.
type Phase string

const (
	// PhaseBefore marks a before_script command.
	PhaseBefore Phase = "before_script"
	// PhaseScript marks a script command.
	PhaseScript Phase = "script"
)

// StepResult captures one executed (or skipped) step. Immutable once
// produced.
type StepResult struct {
	Command  string
	Phase    Phase
	Status   Status
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	// Err holds the process-level error for steps that failed to start or
	// were terminated; nil for clean non-zero exits is not guaranteed.
	Err error
}

// JobResult is the ordered sequence of step results for one job plus the
// derived overall status. Terminal once all steps have run or one failed.
type JobResult struct {
	Job      string
	Status   Status
	Steps    []StepResult
	Duration time.Duration
	// ResolveErr is set when the job's environment could not be resolved;
	// no steps ran in that case.
	ResolveErr error
}

// Failed reports whether the job counts against the overall matrix result.
// Timeout aggregates as failure; Cancelled does too for exit-code purposes
// but keeps its distinct status for reporting.
func (r *JobResult) Failed() bool {
	return r.Status != StatusSuccess
}
