// Package cli holds the command-line surface shared by the commands.
package cli

import "tdd/internal/config"

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

// NewFlags returns flags that override nothing.
func NewFlags() *Flags {
	f := config.NewFlags()
	return &Flags{MaxErrors: f.MaxErrors}
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		MaxErrors:    f.MaxErrors,
		Filter:       f.Filter,
		ConfigFile:   f.ConfigFile,
		EnvFile:      f.EnvFile,
		Progress:     f.Progress,
		Verbose:      f.Verbose,
		NoColor:      f.NoColor,
		Scenarios:    f.Scenarios,
		OpenFailures: f.OpenFailures,
	}
}
