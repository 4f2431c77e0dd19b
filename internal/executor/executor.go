package executor

import (
	"context"
	"sync"

	"github.com/vk/buildgrid/internal/config"
	"github.com/vk/buildgrid/internal/ctxlog"
	"github.com/vk/buildgrid/internal/resolve"
	"github.com/vk/buildgrid/internal/runner"
)

// Executor resolves and runs every job of a matrix through a bounded pool
// of workers.
type Executor struct {
	resolver *resolve.Resolver
	runner   *runner.StepRunner
	workers  int
}

// New creates an executor. workers bounds concurrency; zero or negative
// means one worker per job.
func New(resolver *resolve.Resolver, stepRunner *runner.StepRunner, workers int) *Executor {
	return &Executor{
		resolver: resolver,
		runner:   stepRunner,
		workers:  workers,
	}
}

// Run executes all jobs and assembles the MatrixResult. Per-job errors are
// recorded in the owning job's slot, never propagated: the only failure
// signal to the caller is the aggregated result itself. Cancelling ctx
// terminates running steps and marks every unfinished job Cancelled.
func (e *Executor) Run(ctx context.Context, matrix *config.Matrix, runID string) *MatrixResult {
	logger := ctxlog.FromContext(ctx)

	jobs := matrix.Jobs
	workers := e.workers
	if workers <= 0 || workers > len(jobs) {
		workers = len(jobs)
	}
	logger.Info("🚀 Starting matrix execution", "jobs", len(jobs), "workers", workers)

	// One slot per declared job; a worker only ever writes its own index,
	// so the slice needs no lock.
	results := make([]*runner.JobResult, len(jobs))

	indexes := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(workerID int) {
			defer wg.Done()
			e.worker(ctx, workerID, jobs, indexes, results)
		}(w)
	}

	for i := range jobs {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	logger.Info("🏁 Matrix execution finished")
	return &MatrixResult{RunID: runID, Jobs: results}
}

// worker is the processing loop for a single concurrent worker. Each job it
// picks up is resolved and run in isolation from its siblings.
func (e *Executor) worker(ctx context.Context, workerID int, jobs []*config.Job, indexes <-chan int, results []*runner.JobResult) {
	logger := ctxlog.FromContext(ctx).With("workerID", workerID)
	logger.Debug("Worker started.")

	for i := range indexes {
		job := jobs[i]

		if ctx.Err() != nil {
			logger.Debug("Run cancelled, job not started.", "job", job.Name)
			results[i] = &runner.JobResult{Job: job.Name, Status: runner.StatusCancelled}
			continue
		}

		logger.Debug("Worker picked up job.", "job", job.Name)
		env, err := e.resolver.Resolve(job)
		if err != nil {
			logger.Error("Job environment resolution failed.", "job", job.Name, "error", err)
			results[i] = &runner.JobResult{Job: job.Name, Status: runner.StatusFailed, ResolveErr: err}
			continue
		}

		results[i] = e.runner.RunJob(ctx, job, env)
		logger.Debug("Job finished.", "job", job.Name, "status", results[i].Status.String())
	}

	logger.Debug("Worker finished.")
}
