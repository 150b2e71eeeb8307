package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wordbubble/pkg/wordbubble"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize wordbubble storage",
		Long:  "Create configuration and data directories, then initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return exitError(exitSysError, "resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return exitError(exitSysError, "%w", err)
	}
	cfg, err := storeConfig(v)
	if err != nil {
		return exitError(exitUserError, "%w", err)
	}

	// Attach then Detach creates the data directory and backend files.
	store, err := wordbubble.Open(cfg, logger)
	if err != nil {
		return exitError(exitSysError, "initialize storage: %w", err)
	}
	if err := store.Detach(); err != nil {
		return exitError(exitSysError, "finalize storage: %w", err)
	}

	if flags.jsonMode {
		return printJSON(cmd, map[string]string{
			"config_dir": configDir,
			"data_dir":   cfg.DataDir,
			"backend":    cfg.Backend,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), "WordBubbles initialized successfully")
	fmt.Fprintf(cmd.OutOrStdout(), "config: %s\ndata:   %s (%s)\n", configDir, cfg.DataDir, cfg.Backend)
	return nil
}
