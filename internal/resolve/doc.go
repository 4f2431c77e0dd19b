// Package resolve turns a declarative job definition into a concrete
// execution environment: expanded variables, a working directory and a
// command interpreter. Resolution is a pure transformation — the same job
// and the same base environment always produce the same result, and
// nothing is executed or touched on disk here.
package resolve
