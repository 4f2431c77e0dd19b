// Package testutil provides the integration-test harness: it writes matrix
// files to a temp directory, runs the whole app against them, and hands the
// captured output and result back to the test.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/buildgrid/internal/app"
	"github.com/vk/buildgrid/internal/executor"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output string
	Result *executor.MatrixResult
	Err    error
}

// RunMatrixTest runs the whole application against the given matrix files
// using a default background context. files maps relative paths to
// contents; a single file is passed to the app directly, several files
// become a directory-scan scenario.
func RunMatrixTest(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()
	return RunMatrixTestWithContext(context.Background(), t, files)
}

// RunMatrixTestWithContext is RunMatrixTest with a caller-provided context,
// for cancellation tests.
func RunMatrixTestWithContext(ctx context.Context, t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()
	require.NotEmpty(t, files, "harness needs at least one matrix file")

	tmpDir := t.TempDir()

	var matrixPath string
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
		if matrixPath == "" {
			matrixPath = filePath
		}
	}
	if len(files) > 1 {
		// Multiple files mean a directory-scan scenario.
		matrixPath = tmpDir
	}

	appConfig, err := app.NewConfig(app.Config{
		MatrixPath: matrixPath,
		LogLevel:   "debug",
		LogFormat:  "text",
	})
	require.NoError(t, err)

	output := &SafeBuffer{}
	testApp := app.NewApp(output, appConfig, app.LoaderFor(matrixPath))

	result, runErr := testApp.Run(ctx)

	if os.Getenv("BUILDGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full output for %s ---\n%s", t.Name(), output.String())
	}

	return &HarnessResult{
		Output: output.String(),
		Result: result,
		Err:    runErr,
	}
}
