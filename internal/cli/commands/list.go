package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tdd/internal/config"
	"tdd/internal/discovery"
	"tdd/internal/registry"
	"tdd/internal/storage"
	"tdd/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	registry  *registry.Registry
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	reg *registry.Registry,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		registry:  reg,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	lc.registry.Seal()

	tests := lc.filter.FilterByName(lc.registry.Tests(), lc.config.Filter)
	if len(tests) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	lc.formatter.PrintTestList(tests, lc.config.Flags.Scenarios, lc.failedTests())
	return nil
}

// failedTests returns the names of the tests that failed in the last stored
// run, if there is one.
func (lc *ListCommand) failedTests() map[string]struct{} {
	failed := make(map[string]struct{})
	output, err := lc.storage.Load()
	if err != nil {
		return failed
	}
	for _, f := range output.Details {
		if !f.Resolved {
			failed[f.TestName] = struct{}{}
		}
	}
	return failed
}
