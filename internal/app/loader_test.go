package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/buildgrid/internal/hcl"
	"github.com/vk/buildgrid/internal/yamlcfg"
)

func TestLoaderFor(t *testing.T) {
	assert.IsType(t, &yamlcfg.Loader{}, LoaderFor("ci.yml"))
	assert.IsType(t, &yamlcfg.Loader{}, LoaderFor("ci.YAML"))
	assert.IsType(t, &hcl.Loader{}, LoaderFor("matrix.hcl"))
	assert.IsType(t, &hcl.Loader{}, LoaderFor("some/dir"))
}

func TestNewConfig(t *testing.T) {
	t.Run("requires a matrix path", func(t *testing.T) {
		_, err := NewConfig(Config{})
		assert.Error(t, err)
	})

	t.Run("rejects negative workers", func(t *testing.T) {
		_, err := NewConfig(Config{MatrixPath: "m.hcl", Workers: -1})
		assert.Error(t, err)
	})

	t.Run("accepts a minimal config", func(t *testing.T) {
		cfg, err := NewConfig(Config{MatrixPath: "m.hcl"})
		assert.NoError(t, err)
		assert.NotNil(t, cfg)
	})
}
