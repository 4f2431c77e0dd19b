// Package report renders a finished matrix run for humans: one line per
// job in declaration order, captured output for whatever went wrong, and an
// aggregate verdict.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vk/buildgrid/internal/executor"
	"github.com/vk/buildgrid/internal/runner"
)

// timeUnit is the rounding granularity for reported durations.
const timeUnit = 10 * time.Millisecond

// Write renders the matrix result to w.
func Write(w io.Writer, result *executor.MatrixResult) {
	fmt.Fprintf(w, "\nMatrix run %s (%d jobs)\n", result.RunID, len(result.Jobs))

	succeeded := 0
	for _, job := range result.Jobs {
		fmt.Fprintf(w, "  %s %-20s %-10s %s\n", glyph(job.Status), job.Job, job.Status.String(), job.Duration.Round(timeUnit))
		if job.Status == runner.StatusSuccess {
			succeeded++
			continue
		}
		if job.ResolveErr != nil {
			fmt.Fprintf(w, "      %v\n", job.ResolveErr)
		}
		writeSteps(w, job)
	}

	verdict := "PASSED"
	if !result.OK() {
		verdict = "FAILED"
	}
	fmt.Fprintf(w, "Summary: %d of %d jobs succeeded — %s\n", succeeded, len(result.Jobs), verdict)
}

// writeSteps prints the step trail of an unsuccessful job, including the
// captured output of the step that broke it.
func writeSteps(w io.Writer, job *runner.JobResult) {
	for _, s := range job.Steps {
		fmt.Fprintf(w, "      %s [%s] %s\n", glyph(s.Status), s.Phase, s.Command)
		if s.Status == runner.StatusSuccess || s.Status == runner.StatusSkipped {
			continue
		}
		if s.Status == runner.StatusFailed {
			fmt.Fprintf(w, "        exit code %d\n", s.ExitCode)
		}
		writeCapture(w, "stdout", s.Stdout)
		writeCapture(w, "stderr", s.Stderr)
	}
}

// writeCapture prints a captured stream indented under its step.
func writeCapture(w io.Writer, name, content string) {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return
	}
	fmt.Fprintf(w, "        %s:\n", name)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(w, "          %s\n", line)
	}
}

func glyph(s runner.Status) string {
	switch s {
	case runner.StatusSuccess:
		return "✔"
	case runner.StatusFailed:
		return "✖"
	case runner.StatusSkipped:
		return "∅"
	case runner.StatusTimeout:
		return "⏱"
	case runner.StatusCancelled:
		return "⛔"
	default:
		return "?"
	}
}
