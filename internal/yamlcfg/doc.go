// Package yamlcfg implements the config.Loader interface for Travis-style
// YAML matrix files. A document declares top-level defaults (language, os,
// env, before_script, script) and an optional matrix.include list whose
// entries inherit those defaults. Scalar fields the core does not know
// (osx_image, dist, xcode, ...) are carried as opaque job metadata.
package yamlcfg
