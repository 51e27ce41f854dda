package config

import (
	"fmt"
	"path/filepath"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	MaxErrors int
	Filter    string
	Progress  bool
	Verbose   bool
	NoColor   bool

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	MaxErrors    int
	Filter       string
	ConfigFile   string
	EnvFile      string
	Progress     bool
	Verbose      bool
	NoColor      bool
	Scenarios    bool
	OpenFailures bool
}

// NewFlags returns flags with nothing overridden.
func NewFlags() Flags {
	return Flags{MaxErrors: unsetMaxErrors}
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:    DefaultProjectPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		MaxErrors:      DefaultMaxErrors,
		Flags:          NewFlags(),
	}
}

// Load builds a config from defaults, the environment (and env file), an
// optional YAML file and finally the flags.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if err := cfg.Apply(flags); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply layers the environment, the config file named in flags and the flags
// themselves on top of c.
func (c *Config) Apply(flags Flags) error {
	c.Flags = flags

	if err := c.applyEnv(flags.EnvFile); err != nil {
		return err
	}
	if flags.ConfigFile != "" {
		if err := c.applyFile(flags.ConfigFile); err != nil {
			return err
		}
	}

	// Apply flag overrides
	if flags.MaxErrors >= 0 {
		c.MaxErrors = flags.MaxErrors
	}
	if flags.Filter != "" {
		c.Filter = flags.Filter
	}
	c.Progress = c.Progress || flags.Progress
	c.Verbose = c.Verbose || flags.Verbose
	c.NoColor = c.NoColor || flags.NoColor

	return c.Validate()
}

// Validate checks the values that cannot be corrected silently.
func (c *Config) Validate() error {
	if c.MaxErrors < 0 {
		return fmt.Errorf("max errors must not be negative, got %d", c.MaxErrors)
	}
	if c.OutputJSONFile == "" {
		return fmt.Errorf("output file name is empty")
	}
	return nil
}

// GetOutputPath returns the full path to the output JSON file, so that run
// and failures always use the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := c.OutputJSONFile
	switch {
	case filepath.IsAbs(p):
	case filepath.IsAbs(c.OutputJSONDir):
		p = filepath.Join(c.OutputJSONDir, p)
	default:
		p = filepath.Join(c.ProjectPath, c.OutputJSONDir, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
