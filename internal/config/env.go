package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// applyEnv loads the env file into the process environment (existing
// variables win) and reads the TDD_* variables.
func (c *Config) applyEnv(envFile string) error {
	explicit := envFile != ""
	if !explicit {
		envFile = filepath.Join(c.ProjectPath, DefaultEnvFile)
	}
	if err := godotenv.Load(envFile); err != nil {
		// The default env file might not exist, that's okay
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	if v := os.Getenv(EnvMaxErrors); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxErrors, v, err)
		}
		c.MaxErrors = n
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputJSONDir = v
	}
	if v := os.Getenv(EnvOutputFile); v != "" {
		c.OutputJSONFile = v
	}
	if v := os.Getenv(EnvFilter); v != "" {
		c.Filter = v
	}
	return nil
}
