package config

import "fmt"

// MalformedConfigError reports a configuration that violates the required
// matrix shape. It is fatal to the whole run and is surfaced before any job
// starts.
type MalformedConfigError struct {
	// Path is the source file the matrix was loaded from, when known.
	Path string
	// Job names the offending entry. Empty for document-level problems.
	Job string
	// Reason describes the violation.
	Reason string
}

// Error implements the error interface.
func (e *MalformedConfigError) Error() string {
	switch {
	case e.Job != "" && e.Path != "":
		return fmt.Sprintf("malformed config %s: job %q: %s", e.Path, e.Job, e.Reason)
	case e.Job != "":
		return fmt.Sprintf("malformed config: job %q: %s", e.Job, e.Reason)
	case e.Path != "":
		return fmt.Sprintf("malformed config %s: %s", e.Path, e.Reason)
	default:
		return fmt.Sprintf("malformed config: %s", e.Reason)
	}
}
