package yamlcfg

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/vk/buildgrid/internal/config"
	"github.com/vk/buildgrid/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new Travis-style YAML matrix loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads one YAML matrix file. When the document has a matrix.include
// list, each entry becomes a job inheriting the document's defaults;
// otherwise the document itself describes a single job.
func (l *Loader) Load(ctx context.Context, path string) (*config.Matrix, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read matrix file %s: %w", path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &config.MalformedConfigError{Path: path, Reason: err.Error()}
	}

	matrix := &config.Matrix{}
	if len(doc.Matrix.Include) == 0 {
		job, err := translateEntry(doc.asEntry(), &doc, 1)
		if err != nil {
			return nil, &config.MalformedConfigError{Path: path, Job: job.Name, Reason: err.Error()}
		}
		matrix.Jobs = append(matrix.Jobs, job)
	} else {
		for i, entry := range doc.Matrix.Include {
			job, err := translateEntry(entry, &doc, i+1)
			if err != nil {
				return nil, &config.MalformedConfigError{Path: path, Job: entry.Name, Reason: err.Error()}
			}
			matrix.Jobs = append(matrix.Jobs, job)
		}
	}

	if err := config.Validate(matrix, path); err != nil {
		return nil, err
	}

	logger.Debug("YAML matrix loaded.", "jobs", len(matrix.Jobs))
	return matrix, nil
}

// asEntry projects the document's own fields into a jobEntry so a document
// without matrix.include runs as a single job.
func (d *document) asEntry() jobEntry {
	return jobEntry{
		Name:         d.Name,
		Language:     d.Language,
		OS:           d.OS,
		BeforeScript: d.BeforeScript,
		Script:       d.Script,
		Workdir:      d.Workdir,
		Timeout:      d.Timeout,
		Extra:        d.Extra,
	}
}

// translateEntry merges one include entry with the document defaults and
// produces a model job. ordinal is the 1-based declaration position, used
// to synthesize a name when the entry has none.
func translateEntry(entry jobEntry, doc *document, ordinal int) (*config.Job, error) {
	job := &config.Job{
		Name:         entry.Name,
		Language:     firstNonEmpty(entry.Language, doc.Language),
		OS:           firstNonEmpty(entry.OS, doc.OS, "linux"),
		BeforeScript: entry.BeforeScript,
		Script:       entry.Script,
		Workdir:      firstNonEmpty(entry.Workdir, doc.Workdir),
	}
	if len(job.BeforeScript) == 0 {
		job.BeforeScript = doc.BeforeScript
	}
	if len(job.Script) == 0 {
		job.Script = doc.Script
	}
	if job.Name == "" {
		job.Name = fmt.Sprintf("%s-%d", firstNonEmpty(job.Language, "job"), ordinal)
	}

	// Global env first, entry env after, so entry assignments win and may
	// reference the globals.
	for _, raw := range append(append(stringList{}, doc.Env...), entry.Env...) {
		assignment, err := config.ParseAssignment(raw)
		if err != nil {
			return job, err
		}
		job.Env = append(job.Env, assignment)
	}

	if raw := firstNonEmpty(entry.Timeout, doc.Timeout); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return job, fmt.Errorf("invalid timeout %q: %w", raw, err)
		}
		if timeout <= 0 {
			return job, fmt.Errorf("timeout %q must be positive", raw)
		}
		job.StepTimeout = timeout
	}

	job.Metadata = mergeMetadata(doc.Extra, entry.Extra)
	return job, nil
}

// mergeMetadata flattens the scalar leftovers of the document and the entry
// into one opaque map, entry values winning. Non-scalar leftovers are
// dropped; the core would never interpret them anyway.
func mergeMetadata(layers ...map[string]yaml.Node) map[string]string {
	var metadata map[string]string
	for _, layer := range layers {
		for key, node := range layer {
			if node.Kind != yaml.ScalarNode {
				continue
			}
			if metadata == nil {
				metadata = make(map[string]string)
			}
			metadata[key] = node.Value
		}
	}
	return metadata
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
