package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/vk/buildgrid/internal/config"
	"github.com/vk/buildgrid/internal/ctxlog"
	"github.com/vk/buildgrid/internal/resolve"
)

// waitDelay bounds how long a terminated step may linger before its pipes
// are forcibly closed.
const waitDelay = 5 * time.Second

// StepRunner executes the steps of one job inside its resolved environment.
type StepRunner struct{}

// NewStepRunner creates a new step runner.
func NewStepRunner() *StepRunner {
	return &StepRunner{}
}

// step pairs a command with the phase it was declared in.
type step struct {
	command string
	phase   Phase
}

// RunJob executes the job's before_script then script commands in order,
// fail-fast: the first non-zero exit aborts the job and marks the remaining
// steps skipped. The scratch working directory is torn down on every exit
// path. No retries happen at this layer; a failed command is authoritative.
func (r *StepRunner) RunJob(ctx context.Context, job *config.Job, env *resolve.Environment) *JobResult {
	logger := ctxlog.FromContext(ctx).With("job", job.Name)
	started := time.Now()

	result := &JobResult{Job: job.Name, Status: StatusSuccess}

	if env.Scratch {
		if err := os.MkdirAll(env.Workdir, 0o755); err != nil {
			result.Status = StatusFailed
			result.ResolveErr = fmt.Errorf("cannot create working directory: %w", err)
			result.Duration = time.Since(started)
			return result
		}
		defer os.RemoveAll(env.Workdir)
	}

	steps := make([]step, 0, len(job.BeforeScript)+len(job.Script))
	for _, c := range job.BeforeScript {
		steps = append(steps, step{command: c, phase: PhaseBefore})
	}
	for _, c := range job.Script {
		steps = append(steps, step{command: c, phase: PhaseScript})
	}

	for _, s := range steps {
		if result.Status != StatusSuccess {
			result.Steps = append(result.Steps, StepResult{
				Command: s.command,
				Phase:   s.phase,
				Status:  StatusSkipped,
			})
			continue
		}

		logger.Info("▶️ Running step", "phase", string(s.phase), "command", s.command)
		stepResult := r.runStep(ctx, s, job.StepTimeout, env)
		result.Steps = append(result.Steps, stepResult)

		if stepResult.Status != StatusSuccess {
			logger.Warn("Step did not succeed.", "command", s.command, "status", stepResult.Status.String())
			result.Status = stepResult.Status
			continue
		}
		logger.Debug("Step succeeded.", "command", s.command, "duration", stepResult.Duration)
	}

	result.Duration = time.Since(started)
	return result
}

// runStep executes a single command as a scoped child process and captures
// its outcome. The process runs in its own group so timeout or cancellation
// tears down the whole tree, leaving no orphans.
func (r *StepRunner) runStep(ctx context.Context, s step, timeout time.Duration, env *resolve.Environment) StepResult {
	stepCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		stepCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	args := append(append([]string(nil), env.Shell[1:]...), s.command)
	cmd := exec.CommandContext(stepCtx, env.Shell[0], args...)
	cmd.Dir = env.Workdir
	cmd.Env = env.Environ()
	cmd.WaitDelay = waitDelay
	setProcGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	err := cmd.Run()
	duration := time.Since(started)

	result := StepResult{
		Command:  s.command,
		Phase:    s.phase,
		Status:   StatusSuccess,
		ExitCode: exitCode(cmd),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: duration,
	}
	if err == nil {
		return result
	}

	result.Err = err
	switch {
	case ctx.Err() != nil:
		// The run itself was cancelled; the step did not fail on its own.
		result.Status = StatusCancelled
	case errors.Is(stepCtx.Err(), context.DeadlineExceeded):
		result.Status = StatusTimeout
	default:
		result.Status = StatusFailed
	}
	return result
}

// exitCode extracts the process exit status, or -1 when the process never
// ran or was killed by a signal.
func exitCode(cmd *exec.Cmd) int {
	if cmd.ProcessState == nil {
		return -1
	}
	return cmd.ProcessState.ExitCode()
}
