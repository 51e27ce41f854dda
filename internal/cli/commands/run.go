package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tdd/internal/config"
	"tdd/internal/discovery"
	"tdd/internal/domain"
	"tdd/internal/execution"
	"tdd/internal/registry"
	"tdd/internal/storage"
	"tdd/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	registry  *registry.Registry
	filter    *discovery.Filter
	runner    *execution.Runner
	scheduler execution.Scheduler
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
	logger    *slog.Logger
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	reg *registry.Registry,
	filter *discovery.Filter,
	runner *execution.Runner,
	scheduler execution.Scheduler,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
	logger *slog.Logger,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		registry:  reg,
		filter:    filter,
		runner:    runner,
		scheduler: scheduler,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
		logger:    logger,
	}
}

// Execute runs the command. It returns domain.ErrTestsFailed (wrapped) when
// any expectation failed, so the process exits non-zero.
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// No registration after this point
	rc.registry.Seal()

	tests := rc.filter.FilterByName(rc.registry.Tests(), rc.config.Filter)
	if len(tests) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	executor := execution.NewSequentialExecutor(rc.config, rc.runner, rc.scheduler, rc.logger, cmd.ErrOrStderr())
	if rc.config.Progress && ui.IsTerminal(os.Stderr) {
		executor.SetProgress(ui.NewProgressBar(execution.Evaluations(tests)))
	}

	result, runErr := executor.Execute(cmd.Context(), tests)
	if errors.Is(runErr, domain.ErrUsage) {
		return runErr
	}

	rc.formatter.PrintSummary(result)

	// Save results
	if err := rc.storage.Save(result); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}

	if runErr != nil && !errors.Is(runErr, domain.ErrBuildFailed) && !errors.Is(runErr, domain.ErrBudgetExceeded) {
		return runErr
	}
	if result.Passed() {
		return nil
	}

	if rc.config.Flags.OpenFailures && ui.IsTerminal(os.Stdout) {
		output, err := rc.storage.Load()
		if err != nil {
			return err
		}
		if err := rc.viewer.View(output); err != nil {
			return err
		}
	}

	if runErr != nil {
		return fmt.Errorf("%w: %w", domain.ErrTestsFailed, runErr)
	}
	return domain.ErrTestsFailed
}
