package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/buildgrid/internal/config"
)

// UnresolvedVariableError reports a job referencing a variable that has no
// binding and no declared fallback. It is fatal to that job only; sibling
// jobs are unaffected.
type UnresolvedVariableError struct {
	Job      string
	Variable string
}

// Error implements the error interface.
func (e *UnresolvedVariableError) Error() string {
	return fmt.Sprintf("job %q: unresolved variable %q", e.Job, e.Variable)
}

// metaVarPrefix prefixes metadata passthrough variables so opaque toolchain
// settings reach external collaborators without colliding with user env.
const metaVarPrefix = "BUILDGRID_META_"

// Resolver derives concrete execution environments from job definitions.
// The base environment is fixed at construction, which keeps Resolve pure:
// the same resolver and the same job always yield the same Environment.
type Resolver struct {
	base []config.Assignment
}

// New creates a Resolver over the given base environment, a NAME=VALUE
// slice as produced by os.Environ. Malformed base entries are skipped.
func New(base []string) *Resolver {
	r := &Resolver{base: make([]config.Assignment, 0, len(base))}
	for _, entry := range base {
		assignment, err := config.ParseAssignment(entry)
		if err != nil {
			continue
		}
		r.base = append(r.base, assignment)
	}
	return r
}

// Resolve expands a job's environment overrides left-to-right, so a later
// assignment may reference an earlier one, and selects the job's working
// directory and command interpreter.
func (r *Resolver) Resolve(job *config.Job) (*Environment, error) {
	env := &Environment{
		Vars: make([]config.Assignment, 0, len(r.base)+len(job.Env)+len(job.Metadata)),
	}
	env.Vars = append(env.Vars, r.base...)

	lookup := func(name string) (string, bool) {
		return env.Lookup(name)
	}

	for _, assignment := range job.Env {
		expanded, err := expand(assignment.Value, lookup)
		if err != nil {
			return nil, wrapExpandErr(job.Name, err)
		}
		env.Vars = append(env.Vars, config.Assignment{Name: assignment.Name, Value: expanded})
	}

	// Metadata is passed through verbatim under a reserved prefix; it is
	// never subject to expansion.
	for _, name := range sortedKeys(job.Metadata) {
		env.Vars = append(env.Vars, config.Assignment{
			Name:  metaVarPrefix + strings.ToUpper(name),
			Value: job.Metadata[name],
		})
	}

	if job.Workdir != "" {
		expanded, err := expand(job.Workdir, lookup)
		if err != nil {
			return nil, wrapExpandErr(job.Name, err)
		}
		env.Workdir = expanded
	} else {
		env.Workdir = defaultWorkdir(job.Name)
		env.Scratch = true
	}

	if len(job.Shell) > 0 {
		env.Shell = append([]string(nil), job.Shell...)
	} else {
		env.Shell = defaultShell(job.OS)
	}

	return env, nil
}

// defaultWorkdir places a job's scratch directory under the platform temp
// root, keyed by job name.
func defaultWorkdir(jobName string) string {
	return filepath.Join(os.TempDir(), "buildgrid", sanitizeName(jobName))
}

// defaultShell picks the command interpreter for a job's OS selector.
func defaultShell(osName string) []string {
	if osName == "windows" {
		return []string{"cmd", "/C"}
	}
	return []string{"/bin/sh", "-c"}
}

// sanitizeName makes a job name safe to use as a directory component.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.':
			return r
		default:
			return '-'
		}
	}, name)
}

func wrapExpandErr(jobName string, err error) error {
	var unbound *unboundError
	if errors.As(err, &unbound) {
		return &UnresolvedVariableError{Job: jobName, Variable: unbound.Name}
	}
	return fmt.Errorf("job %q: %w", jobName, err)
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
