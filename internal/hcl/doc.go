// Package hcl implements the config.Loader interface for HCL matrix files.
// It decodes `job` blocks into the HCL-specific schema and translates them
// into the format-agnostic config model, leaving the `metadata` block as an
// opaque string map the core never interprets.
package hcl
