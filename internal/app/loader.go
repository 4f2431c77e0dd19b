package app

import (
	"path/filepath"
	"strings"

	"github.com/vk/buildgrid/internal/config"
	"github.com/vk/buildgrid/internal/hcl"
	"github.com/vk/buildgrid/internal/yamlcfg"
)

// LoaderFor picks the configuration loader matching a matrix path. YAML
// files get the Travis-compatible loader; everything else, including
// directories, is treated as HCL.
func LoaderFor(path string) config.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yamlcfg.NewLoader()
	default:
		return hcl.NewLoader()
	}
}
