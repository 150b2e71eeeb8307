package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wordbubble/pkg/wordbubble"
)

const modulePath = "github.com/mesh-intelligence/wordbubble"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the wordbubble version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "wordbubble v%s\nmodule: %s\n", wordbubble.Version, modulePath)
			return nil
		},
	}
}
