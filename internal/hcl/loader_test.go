package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/buildgrid/internal/config"
)

func writeMatrix(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_ParsesFullJob(t *testing.T) {
	path := writeMatrix(t, "matrix.hcl", `
		job "native" {
			language      = "rust"
			os            = "osx"
			env           = ["RUST_BACKTRACE=1"]
			before_script = ["cargo fetch"]
			script        = ["cargo build", "cargo test"]
			workdir       = "/tmp/native"
			timeout       = "10m"

			metadata {
				osx_image    = "xcode10"
				xcode_scheme = "TokenCore"
			}
		}
	`)

	matrix, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, matrix.Jobs, 1)

	job := matrix.Jobs[0]
	assert.Equal(t, "native", job.Name)
	assert.Equal(t, "rust", job.Language)
	assert.Equal(t, "osx", job.OS)
	assert.Equal(t, []config.Assignment{{Name: "RUST_BACKTRACE", Value: "1"}}, job.Env)
	assert.Equal(t, []string{"cargo fetch"}, job.BeforeScript)
	assert.Equal(t, []string{"cargo build", "cargo test"}, job.Script)
	assert.Equal(t, "/tmp/native", job.Workdir)
	assert.Equal(t, 10*time.Minute, job.StepTimeout)
	assert.Equal(t, map[string]string{
		"osx_image":    "xcode10",
		"xcode_scheme": "TokenCore",
	}, job.Metadata)
}

func TestLoader_AppliesDefaults(t *testing.T) {
	path := writeMatrix(t, "matrix.hcl", `
		job "minimal" {
			language = "go"
			script   = ["go test ./..."]
		}
	`)

	matrix, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, matrix.Jobs, 1)

	job := matrix.Jobs[0]
	assert.Equal(t, "linux", job.OS)
	assert.Empty(t, job.Workdir)
	assert.Zero(t, job.StepTimeout)
	assert.Nil(t, job.Metadata)
}

func TestLoader_PreservesDeclarationOrder(t *testing.T) {
	path := writeMatrix(t, "ordered.hcl", `
		job "charlie" {
			language = "go"
			script   = ["true"]
		}
		job "alpha" {
			language = "go"
			script   = ["true"]
		}
		job "bravo" {
			language = "go"
			script   = ["true"]
		}
	`)

	matrix, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, matrix.Jobs, 3)
	assert.Equal(t, "charlie", matrix.Jobs[0].Name)
	assert.Equal(t, "alpha", matrix.Jobs[1].Name)
	assert.Equal(t, "bravo", matrix.Jobs[2].Name)
}

func TestLoader_RejectsEmptyScript(t *testing.T) {
	path := writeMatrix(t, "matrix.hcl", `
		job "noop" {
			language = "go"
		}
	`)

	_, err := NewLoader().Load(context.Background(), path)
	var malformed *config.MalformedConfigError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "noop", malformed.Job)
}

func TestLoader_RejectsMissingLanguage(t *testing.T) {
	path := writeMatrix(t, "matrix.hcl", `
		job "anon" {
			script = ["true"]
		}
	`)

	// 'language' is a required attribute, so decoding itself fails.
	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
}

func TestLoader_RejectsBadEnvEntry(t *testing.T) {
	path := writeMatrix(t, "matrix.hcl", `
		job "bad" {
			language = "go"
			env      = ["NOT_AN_ASSIGNMENT"]
			script   = ["true"]
		}
	`)

	_, err := NewLoader().Load(context.Background(), path)
	var malformed *config.MalformedConfigError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "bad", malformed.Job)
}

func TestLoader_RejectsBadTimeout(t *testing.T) {
	path := writeMatrix(t, "matrix.hcl", `
		job "bad" {
			language = "go"
			script   = ["true"]
			timeout  = "soon"
		}
	`)

	_, err := NewLoader().Load(context.Background(), path)
	var malformed *config.MalformedConfigError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Reason, "timeout")
}

func TestLoader_ScansDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(`
		job "first" {
			language = "go"
			script   = ["true"]
		}
	`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(`
		job "second" {
			language = "go"
			script   = ["true"]
		}
	`), 0o644))

	matrix, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, matrix.Jobs, 2)
	assert.Equal(t, "first", matrix.Jobs[0].Name)
	assert.Equal(t, "second", matrix.Jobs[1].Name)
}

func TestLoader_ErrorsOnMissingPath(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
}
