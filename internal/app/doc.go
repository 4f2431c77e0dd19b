// Package app wires the application together: it owns the logger, selects
// a configuration loader for the matrix file, drives the executor and
// renders the report. Process-level concerns (flags, exit codes) live in
// the cli package; domain logic lives below this one.
package app
