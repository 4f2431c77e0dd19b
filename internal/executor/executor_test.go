package executor

import (
	"context"
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/buildgrid/internal/config"
	"github.com/vk/buildgrid/internal/resolve"
	"github.com/vk/buildgrid/internal/runner"
)

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("matrix tests drive /bin/sh")
	}
}

func newExecutor(workers int) *Executor {
	return New(resolve.New(os.Environ()), runner.NewStepRunner(), workers)
}

func shJob(name string, script ...string) *config.Job {
	return &config.Job{
		Name:     name,
		Language: "sh",
		OS:       "linux",
		Script:   script,
	}
}

func TestRun_MixedOutcomes(t *testing.T) {
	requireUnix(t)
	matrix := &config.Matrix{Jobs: []*config.Job{
		shJob("a", "true"),
		shJob("b", "false"),
	}}

	result := newExecutor(0).Run(context.Background(), matrix, "run-1")

	require.Len(t, result.Jobs, 2)
	assert.Equal(t, "run-1", result.RunID)
	assert.Equal(t, runner.StatusSuccess, result.Jobs[0].Status)
	assert.Equal(t, runner.StatusFailed, result.Jobs[1].Status)
	assert.False(t, result.OK())
}

func TestRun_AllSuccess(t *testing.T) {
	requireUnix(t)
	matrix := &config.Matrix{Jobs: []*config.Job{
		shJob("a", "true"),
		shJob("b", "true"),
	}}

	result := newExecutor(0).Run(context.Background(), matrix, "run-2")
	assert.True(t, result.OK())
}

func TestRun_ReportsDeclarationOrderDespiteParallelism(t *testing.T) {
	requireUnix(t)
	// The first declared job is the slowest, so completion order is the
	// reverse of declaration order.
	matrix := &config.Matrix{Jobs: []*config.Job{
		shJob("slowest", "sleep 0.3"),
		shJob("slower", "sleep 0.15"),
		shJob("fast", "true"),
	}}

	result := newExecutor(3).Run(context.Background(), matrix, "run-3")

	require.Len(t, result.Jobs, 3)
	assert.Equal(t, "slowest", result.Jobs[0].Job)
	assert.Equal(t, "slower", result.Jobs[1].Job)
	assert.Equal(t, "fast", result.Jobs[2].Job)
	assert.True(t, result.OK())
}

func TestRun_JobFailureDoesNotAffectSiblings(t *testing.T) {
	requireUnix(t)
	matrix := &config.Matrix{Jobs: []*config.Job{
		shJob("doomed", "exit 7"),
		shJob("fine", "echo still running"),
		shJob("also-fine", "true"),
	}}

	result := newExecutor(1).Run(context.Background(), matrix, "run-4")

	require.Len(t, result.Jobs, 3)
	assert.Equal(t, runner.StatusFailed, result.Jobs[0].Status)
	assert.Equal(t, 7, result.Jobs[0].Steps[0].ExitCode)
	assert.Equal(t, runner.StatusSuccess, result.Jobs[1].Status)
	assert.Equal(t, runner.StatusSuccess, result.Jobs[2].Status)
}

func TestRun_ResolutionFailureIsIsolated(t *testing.T) {
	requireUnix(t)
	broken := shJob("broken", "true")
	broken.Env = []config.Assignment{{Name: "X", Value: "${NO_SUCH_VAR}"}}

	matrix := &config.Matrix{Jobs: []*config.Job{
		broken,
		shJob("healthy", "true"),
	}}

	result := newExecutor(0).Run(context.Background(), matrix, "run-5")

	require.Len(t, result.Jobs, 2)
	assert.Equal(t, runner.StatusFailed, result.Jobs[0].Status)
	var unresolved *resolve.UnresolvedVariableError
	require.ErrorAs(t, result.Jobs[0].ResolveErr, &unresolved)
	assert.Empty(t, result.Jobs[0].Steps, "a job that fails to resolve runs no steps")
	assert.Equal(t, runner.StatusSuccess, result.Jobs[1].Status)
}

func TestRun_CancellationMarksUnfinishedJobsCancelled(t *testing.T) {
	requireUnix(t)
	matrix := &config.Matrix{Jobs: []*config.Job{
		shJob("in-flight", "sleep 10"),
		shJob("queued", "true"),
	}}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(150 * time.Millisecond)
		cancel()
	}()

	// A single worker guarantees the second job is still queued when the
	// cancellation lands.
	result := newExecutor(1).Run(ctx, matrix, "run-6")

	require.Len(t, result.Jobs, 2)
	assert.Equal(t, runner.StatusCancelled, result.Jobs[0].Status)
	assert.Equal(t, runner.StatusCancelled, result.Jobs[1].Status)
	assert.False(t, result.OK())
}

func TestRun_ResultCountMatchesJobCount(t *testing.T) {
	requireUnix(t)
	jobs := make([]*config.Job, 6)
	names := []string{"a", "b", "c", "d", "e", "f"}
	for i, name := range names {
		jobs[i] = shJob(name, "true")
	}

	result := newExecutor(2).Run(context.Background(), &config.Matrix{Jobs: jobs}, "run-7")

	require.Len(t, result.Jobs, len(jobs))
	for i, name := range names {
		require.NotNil(t, result.Jobs[i])
		assert.Equal(t, name, result.Jobs[i].Job)
	}
}
