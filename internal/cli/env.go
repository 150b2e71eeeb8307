package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/wordbubble/internal/app"
	"github.com/mesh-intelligence/wordbubble/internal/bubble"
	"github.com/mesh-intelligence/wordbubble/internal/session"
	"github.com/mesh-intelligence/wordbubble/pkg/wordbubble"
)

// openGate loads config and restores the persisted session.
func openGate() (*session.Gate, *viper.Viper, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return nil, nil, exitError(exitSysError, "resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return nil, nil, exitError(exitSysError, "%w", err)
	}
	gate := session.NewGate(configDir, logger)
	if err := gate.Load(); err != nil {
		return nil, nil, exitError(exitSysError, "%w", err)
	}
	return gate, v, nil
}

// openApp attaches the configured store and builds the App around it.
// The caller must Close the returned App.
func openApp() (*app.App, *session.Gate, *viper.Viper, error) {
	gate, v, err := openGate()
	if err != nil {
		return nil, nil, nil, err
	}
	cfg, err := storeConfig(v)
	if err != nil {
		return nil, nil, nil, exitError(exitUserError, "%w", err)
	}
	store, err := wordbubble.Open(cfg, logger)
	if err != nil {
		return nil, nil, nil, exitError(exitSysError, "open store: %w", err)
	}
	a := app.New(store, gate, bubble.NewProcessor(store, logger), logger)
	return a, gate, v, nil
}

// printJSON writes v as indented JSON to the command's output.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return exitError(exitSysError, "marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
