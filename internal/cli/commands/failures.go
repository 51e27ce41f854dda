package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tdd/internal/config"
	"tdd/internal/storage"
	"tdd/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	config      *config.Config
	storage     storage.Storage
	interactive ui.Viewer
	plain       ui.Viewer
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(cfg *config.Config, st storage.Storage, interactive, plain ui.Viewer) *FailuresCommand {
	return &FailuresCommand{
		config:      cfg,
		storage:     st,
		interactive: interactive,
		plain:       plain,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	results, err := fc.storage.Load()
	if err != nil {
		return err
	}

	if ui.IsTerminal(os.Stdout) {
		return fc.interactive.View(results)
	}
	return fc.plain.View(results)
}
