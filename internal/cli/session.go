package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wordbubble/internal/render"
	"github.com/mesh-intelligence/wordbubble/pkg/types"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in with a new anonymous identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gate, _, err := openGate()
			if err != nil {
				return err
			}
			id, err := gate.Login(cmd.Context())
			if err != nil {
				return exitError(exitSysError, "%w", err)
			}
			if flags.jsonMode {
				return printJSON(cmd, id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", id.ID)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gate, _, err := openGate()
			if err != nil {
				return err
			}
			if err := gate.Logout(); err != nil {
				return exitError(exitSysError, "%w", err)
			}
			if !flags.jsonMode {
				fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			}
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gate, _, err := openGate()
			if err != nil {
				return err
			}
			id, ok := gate.CurrentIdentity()
			if !ok {
				if !flags.jsonMode {
					fmt.Fprintln(cmd.OutOrStdout(), render.New(0).LoggedOut())
				}
				return exitError(exitUserError, "%w", types.ErrNotLoggedIn)
			}
			if flags.jsonMode {
				return printJSON(cmd, id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (since %s)\n", id.ID, id.CreatedAt.Local().Format(time.RFC3339))
			return nil
		},
	}
}
