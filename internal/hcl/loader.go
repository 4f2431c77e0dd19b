package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/buildgrid/internal/config"
	"github.com/vk/buildgrid/internal/ctxlog"
	"github.com/vk/buildgrid/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL matrix loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the HCL loading process. The path may be a single .hcl
// file or a directory, which is searched recursively; jobs are merged in
// lexical file order with declaration order preserved within each file.
func (l *Loader) Load(ctx context.Context, path string) (*config.Matrix, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	files, err := l.findMatrixFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &config.MalformedConfigError{Path: path, Reason: "no .hcl matrix files found"}
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	matrix := &config.Matrix{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Jobs {
			job, err := l.translateJob(ctx, block)
			if err != nil {
				return nil, &config.MalformedConfigError{Path: file, Job: block.Name, Reason: err.Error()}
			}
			matrix.Jobs = append(matrix.Jobs, job)
		}
	}

	if err := config.Validate(matrix, path); err != nil {
		return nil, err
	}

	logger.Debug("HCL matrix loaded.", "jobs", len(matrix.Jobs))
	return matrix, nil
}

// findMatrixFiles resolves a path argument into the list of HCL files to parse.
func (l *Loader) findMatrixFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access matrix path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return fsutil.FindFilesByExtension(path, ".hcl")
}
