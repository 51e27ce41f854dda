package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML layout of a config file. Pointers distinguish an
// absent key from a zero value.
type fileConfig struct {
	MaxErrors  *int   `yaml:"max_errors"`
	OutputDir  string `yaml:"output_dir"`
	OutputFile string `yaml:"output_file"`
	Filter     string `yaml:"filter"`
	Progress   *bool  `yaml:"progress"`
	NoColor    *bool  `yaml:"no_color"`
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.MaxErrors != nil {
		c.MaxErrors = *fc.MaxErrors
	}
	if fc.OutputDir != "" {
		c.OutputJSONDir = fc.OutputDir
	}
	if fc.OutputFile != "" {
		c.OutputJSONFile = fc.OutputFile
	}
	if fc.Filter != "" {
		c.Filter = fc.Filter
	}
	if fc.Progress != nil {
		c.Progress = *fc.Progress
	}
	if fc.NoColor != nil {
		c.NoColor = *fc.NoColor
	}
	return nil
}
