package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".tdd"
	// DefaultMaxErrors is the default failure budget (0 = unlimited)
	DefaultMaxErrors = 0
	// DefaultEnvFile is the env file read when no other is given
	DefaultEnvFile = ".env"
)

// Environment variables read from the process environment or the env file
const (
	EnvMaxErrors  = "TDD_MAX_ERRORS"
	EnvOutputDir  = "TDD_OUTPUT_DIR"
	EnvOutputFile = "TDD_OUTPUT_FILE"
	EnvFilter     = "TDD_FILTER"
)

// unsetMaxErrors marks the max-errors flag as not given
const unsetMaxErrors = -1
