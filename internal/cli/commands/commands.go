package commands

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tdd/internal/cli"
	"tdd/internal/config"
	"tdd/internal/discovery"
	"tdd/internal/execution"
	"tdd/internal/registry"
	"tdd/internal/storage"
	"tdd/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand

	level *slog.LevelVar
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, reg *registry.Registry) *Commands {
	// Debug output is switched on in PreRunE once --verbose is known
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Initialize dependencies
	filter := discovery.NewFilter()
	runner := execution.NewRunner(logger)
	scheduler := execution.NewPhaseScheduler()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, nil)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, reg, filter, runner, scheduler, jsonStorage, formatter, errorViewer, logger),
		List:     NewListCommand(cfg, reg, filter, formatter, jsonStorage),
		Failures: NewFailuresCommand(cfg, jsonStorage, errorViewer, ui.NewStatsViewer(formatter)),
		level:    level,
	}
}

// NewRootCommand builds the tdd command tree over reg. Running the root
// command without a subcommand behaves like "run".
func NewRootCommand(reg *registry.Registry, version string) *cobra.Command {
	cfg := config.New()
	flags := cli.NewFlags()

	rootCmd := &cobra.Command{
		Use:           "tdd",
		Short:         "Run the registered unit tests",
		Long:          `Expands every registered test over its scenarios, evaluates the verification phase and then the runtime phase, and reports failed expectations.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmds := NewCommands(cfg, reg)
	cmds.Register(rootCmd, flags, cfg)
	return rootCmd
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Update config with flags after parsing
	preRun := func(cmd *cobra.Command, args []string) error {
		if err := cfg.Apply(flags.ToConfigFlags()); err != nil {
			return err
		}
		if cfg.NoColor {
			color.NoColor = true
		}
		if cfg.Verbose {
			c.level.Set(slog.LevelDebug)
		}
		return nil
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.ConfigFile, "config", "", "YAML configuration file (e.g. tdd.yaml)")
	pf.StringVar(&flags.EnvFile, "env-file", "", "Env file with TDD_* variables (default: .env when present)")
	pf.BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&flags.Verbose, "verbose", false, "Log every evaluation to stderr")
	pf.StringVarP(&flags.Filter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g. 'widget_*' or '*member*')")

	runFlags := func(cmd *cobra.Command) {
		cmd.Flags().IntVarP(&flags.MaxErrors, "max-errors", "e", flags.MaxErrors, "Stop after this many failed expectations (0 = unlimited, default from config)")
		cmd.Flags().BoolVarP(&flags.Progress, "progress", "p", false, "Show a progress bar when stderr is a terminal")
		cmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	}

	rootCmd.PreRunE = preRun
	rootCmd.RunE = c.Run.Execute
	runFlags(rootCmd)

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run the registered tests",
		Long:    "Seal the registry, evaluate every scenario instance and report failed expectations",
		RunE:    c.Run.Execute,
		PreRunE: preRun,
	}
	runFlags(runCmd)
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List registered tests",
		Long:    "List the registered tests with their category and scenario count without executing them",
		RunE:    c.List.Execute,
		PreRunE: preRun,
	}
	listCmd.Flags().BoolVarP(&flags.Scenarios, "scenarios", "s", false, "List the expanded scenarios of every test")
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "View failures of the last run",
		Long:    "Display the failures stored by the last run, interactively when stdout is a terminal",
		RunE:    c.Failures.Execute,
		PreRunE: preRun,
	}
	rootCmd.AddCommand(failuresCmd)
}
