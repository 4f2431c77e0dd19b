package config

// Validate checks a loaded matrix against the rules every runnable matrix
// must satisfy. It returns a *MalformedConfigError naming the first
// offending entry, or nil. Validation runs before any job starts, so a bad
// entry is never partially executed.
func Validate(m *Matrix, path string) error {
	if m == nil || len(m.Jobs) == 0 {
		return &MalformedConfigError{Path: path, Reason: "matrix declares no jobs"}
	}

	seen := make(map[string]struct{}, len(m.Jobs))
	for _, job := range m.Jobs {
		if job.Name == "" {
			return &MalformedConfigError{Path: path, Reason: "job has no name"}
		}
		if _, dup := seen[job.Name]; dup {
			return &MalformedConfigError{Path: path, Job: job.Name, Reason: "duplicate job name"}
		}
		seen[job.Name] = struct{}{}

		if job.Language == "" {
			return &MalformedConfigError{Path: path, Job: job.Name, Reason: "missing required 'language' selector"}
		}
		if len(job.Script) == 0 {
			return &MalformedConfigError{Path: path, Job: job.Name, Reason: "'script' must contain at least one command"}
		}
		for _, a := range job.Env {
			if a.Name == "" {
				return &MalformedConfigError{Path: path, Job: job.Name, Reason: "environment assignment with empty name"}
			}
		}
	}
	return nil
}
