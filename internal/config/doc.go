// Package config defines the unified, format-agnostic model of a build
// matrix, the Loader interface implemented by each configuration format,
// and the validation rules every loaded matrix must satisfy before any
// job is allowed to run.
package config
