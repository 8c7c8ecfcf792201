package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// fileLayout is the on-disk layout schema, shared between TOML and YAML.
type fileLayout struct {
	Rows   int        `toml:"rows" yaml:"rows"`
	Cols   int        `toml:"cols" yaml:"cols"`
	Matrix [][]string `toml:"matrix" yaml:"matrix"`
}

// Load parses a layout file. The format is selected by file extension:
// .toml for TOML, .yaml or .yml for YAML.
func Load(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout file: %w", err)
	}

	var fl fileLayout
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &fl); err != nil {
			return Layout{}, fmt.Errorf("parse layout file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fl); err != nil {
			return Layout{}, fmt.Errorf("parse layout file %s: %w", path, err)
		}
	default:
		return Layout{}, fmt.Errorf("unsupported layout file extension %q", ext)
	}

	l, err := FromNames(fl.Rows, fl.Cols, fl.Matrix)
	if err != nil {
		return Layout{}, fmt.Errorf("layout file %s: %w", path, err)
	}
	return l, nil
}
