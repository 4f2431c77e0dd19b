package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/buildgrid/internal/ctxlog"
	"github.com/vk/buildgrid/internal/executor"
	"github.com/vk/buildgrid/internal/report"
	"github.com/vk/buildgrid/internal/runner"
)

// Run executes the full matrix lifecycle: load, resolve, run, report. The
// returned error covers configuration problems only; job failures are
// expressed through the MatrixResult so the caller maps them to an exit
// code without losing the report.
func (a *App) Run(ctx context.Context) (*executor.MatrixResult, error) {
	runID := uuid.NewString()
	logger := a.logger.With("run_id", runID)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		go a.startHealthcheckServer(a.config.HealthcheckPort)
	}

	matrix, err := a.loader.Load(ctx, a.config.MatrixPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load matrix: %w", err)
	}
	logger.Info("Matrix loaded.", "path", a.config.MatrixPath, "jobs", len(matrix.Jobs))

	exec := executor.New(a.resolver, runner.NewStepRunner(), a.config.Workers)
	result := exec.Run(ctx, matrix, runID)

	report.Write(a.outW, result)
	logger.Debug("App.Run method finished.", "ok", result.OK())
	return result, nil
}
