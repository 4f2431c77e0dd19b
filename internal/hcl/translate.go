package hcl

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/buildgrid/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// translateJob converts the HCL-specific job schema into the agnostic model.
func (l *Loader) translateJob(ctx context.Context, block *jobBlock) (*config.Job, error) {
	job := &config.Job{
		Name:         block.Name,
		Language:     block.Language,
		OS:           block.OS,
		BeforeScript: block.BeforeScript,
		Script:       block.Script,
		Workdir:      block.Workdir,
		Shell:        block.Shell,
	}
	if job.OS == "" {
		job.OS = "linux"
	}

	for _, entry := range block.Env {
		assignment, err := config.ParseAssignment(entry)
		if err != nil {
			return nil, err
		}
		job.Env = append(job.Env, assignment)
	}

	if block.Timeout != "" {
		timeout, err := time.ParseDuration(block.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", block.Timeout, err)
		}
		if timeout <= 0 {
			return nil, fmt.Errorf("timeout %q must be positive", block.Timeout)
		}
		job.StepTimeout = timeout
	}

	metadata, err := l.extractMetadata(block.Metadata)
	if err != nil {
		return nil, err
	}
	job.Metadata = metadata

	return job, nil
}

// extractMetadata flattens a metadata block into an opaque string map. Every
// attribute must evaluate to a string-convertible constant; expressions that
// reference variables have no meaning here.
func (l *Loader) extractMetadata(block *metadataBlock) (map[string]string, error) {
	if block == nil || block.Body == nil {
		return nil, nil
	}

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid metadata block: %w", diags)
	}
	if len(attrs) == 0 {
		return nil, nil
	}

	metadata := make(map[string]string, len(attrs))
	for name, attr := range attrs {
		val, valDiags := attr.Expr.Value(nil)
		if valDiags.HasErrors() {
			return nil, fmt.Errorf("metadata attribute %q: %w", name, valDiags)
		}
		strVal, err := convert.Convert(val, cty.String)
		if err != nil {
			return nil, fmt.Errorf("metadata attribute %q is not a string: %w", name, err)
		}
		metadata[name] = strVal.AsString()
	}
	return metadata, nil
}
