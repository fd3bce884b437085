// Package config provides configuration loading for cwv-tx. It handles
// loading configuration from YAML files and provides default values.
package config

import (
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config represents the tool configuration loaded from YAML.
type Config struct {
	// Window parameters
	Window struct {
		// Size is the spatial window size n; the retrieval considers
		// N = n x n adjacent pixels. Odd sizes are the physically
		// meaningful case.
		Size int `yaml:"size"`

		// Geometry selects the offset generation: "legacy" (default,
		// reproduces the published expressions) or "centered".
		Geometry string `yaml:"geometry"`
	} `yaml:"window"`

	// Band parameters
	Bands struct {
		// Ti is the band i brightness temperature map name.
		Ti string `yaml:"ti"`

		// Tj is the band j brightness temperature map name.
		Tj string `yaml:"tj"`

		// MetadataPath optionally points at a scene metadata JSON file
		// from which the thermal band names are resolved.
		MetadataPath string `yaml:"metadataPath"`
	} `yaml:"bands"`

	// Output parameters
	Output struct {
		// Mode selects the assembled form: "inlined" (default, the
		// complete eval-bound expression) or "symbolic".
		Mode string `yaml:"mode"`

		// Path is the file the expression is written to; empty means
		// stdout.
		Path string `yaml:"path"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values: the
// canonical 3x3 window over the Landsat 8 TIRS bands.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Window.Size = 3
	cfg.Window.Geometry = "legacy"

	cfg.Bands.Ti = "B10"
	cfg.Bands.Tj = "B11"

	cfg.Output.Mode = "inlined"

	return cfg
}

// LoadConfig loads configuration from a YAML file. If the file doesn't
// exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := ioutil.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "error parsing config file")
	}

	return cfg, nil
}
