package config

import "time"

// Matrix is the unified, format-agnostic representation of one build-matrix
// declaration. Jobs preserves declaration order; results are reported in
// this order regardless of how the executor schedules them.
type Matrix struct {
	Jobs []*Job
}

// Assignment is a single ordered NAME=VALUE environment entry. Order matters:
// later assignments in the same job may reference earlier ones.
type Assignment struct {
	Name  string
	Value string
}

// Job is the format-agnostic representation of one matrix entry. It is
// created once at load time and never mutated afterwards.
type Job struct {
	// Name identifies the job in logs and reports. Loaders synthesize one
	// when the source format has no explicit label.
	Name string

	// Language is the runtime/toolchain selector. Required.
	Language string

	// OS is the operating-system selector. Defaults to "linux".
	OS string

	// Env holds the job's ordered environment overrides.
	Env []Assignment

	// BeforeScript commands always run before Script commands.
	BeforeScript []string

	// Script commands are the job's payload. Required non-empty.
	Script []string

	// Workdir, when set, overrides the platform default working directory.
	Workdir string

	// Shell, when set, overrides the platform default command interpreter.
	// The step command line is appended as the final argument.
	Shell []string

	// StepTimeout bounds each individual step. Zero means no timeout.
	StepTimeout time.Duration

	// Metadata carries toolchain-specific settings the core never
	// interprets (image names, IDE scheme names, SDK versions). It is
	// exposed to steps verbatim and otherwise passed through.
	Metadata map[string]string
}
