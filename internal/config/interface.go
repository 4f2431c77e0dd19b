package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads a matrix declaration from the given path and translates
	// it into the format-agnostic model. The returned matrix has not been
	// validated; callers run Validate before executing anything.
	Load(ctx context.Context, path string) (*Matrix, error)
}
