package resolve

import "github.com/vk/buildgrid/internal/config"

// Environment is the fully resolved execution environment for one job.
// Immutable once produced; the runner only reads it.
type Environment struct {
	// Vars holds every effective variable in a stable order: the base
	// environment first, then the job's expanded overrides, then metadata
	// passthrough entries. A later entry with the same name wins.
	Vars []config.Assignment

	// Workdir is where every step of the job runs.
	Workdir string

	// Scratch reports that Workdir was chosen by the resolver rather than
	// declared by the job. A scratch directory is created and torn down by
	// the runner; a declared one is left alone.
	Scratch bool

	// Shell is the command interpreter; the step command line is appended
	// as the final argument.
	Shell []string
}

// Lookup returns the effective value of a variable, honoring override order.
func (e *Environment) Lookup(name string) (string, bool) {
	for i := len(e.Vars) - 1; i >= 0; i-- {
		if e.Vars[i].Name == name {
			return e.Vars[i].Value, true
		}
	}
	return "", false
}

// Environ renders the environment as a NAME=VALUE slice suitable for
// exec.Cmd.Env, with overridden duplicates removed.
func (e *Environment) Environ() []string {
	seen := make(map[string]int, len(e.Vars))
	out := make([]string, 0, len(e.Vars))
	for _, v := range e.Vars {
		entry := v.Name + "=" + v.Value
		if i, dup := seen[v.Name]; dup {
			out[i] = entry
			continue
		}
		seen[v.Name] = len(out)
		out = append(out, entry)
	}
	return out
}
