// Package runner executes the steps of a single job, sequentially and
// fail-fast, as child processes of the host shell with the job's resolved
// environment applied. It owns the job's scratch directory lifecycle and
// produces the write-once step and job results the executor aggregates.
package runner
