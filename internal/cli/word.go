package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wordbubble/internal/render"
	"github.com/mesh-intelligence/wordbubble/pkg/types"
)

// wordOutput is the JSON shape of the word command.
type wordOutput struct {
	*types.WordRecord
	SuccessorCount int `json:"successorCount"`
}

func newWordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "word <word>",
		Short: "Show a stored word and its successor count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, _, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			rec, err := a.Word(cmd.Context(), args[0])
			switch {
			case errors.Is(err, types.ErrNotFound):
				return exitError(exitUserError, "word %q: %w", args[0], err)
			case errors.Is(err, types.ErrNotLoggedIn), errors.Is(err, types.ErrInvalidWord):
				return exitError(exitUserError, "%w", err)
			case err != nil:
				return exitError(exitSysError, "%w", err)
			}

			if flags.jsonMode {
				return printJSON(cmd, wordOutput{WordRecord: rec, SuccessorCount: rec.SuccessorCount()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.New(gutterWidth).Word(rec))
			return nil
		},
	}
}
