package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wordbubble/internal/render"
	"github.com/mesh-intelligence/wordbubble/pkg/types"
)

// gutterWidth is the width of the empty first column of each bubble row.
const gutterWidth = 2

func newSubmitCmd() *cobra.Command {
	var phrase string
	cmd := &cobra.Command{
		Use:   "submit [words...]",
		Short: "Submit a phrase and show its bubbles",
		Long: "Submit records the phrase in the word graph and prints one bubble per\n" +
			"word. Words are taken from the arguments, joined by spaces, or from --phrase.",
		Example: "  wordbubble submit the quick fox\n  wordbubble submit --phrase \"the quick fox\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			if phrase == "" {
				phrase = strings.Join(args, " ")
			} else if len(args) > 0 {
				return exitError(exitUserError, "pass words as arguments or --phrase, not both")
			}
			return runSubmit(cmd, phrase)
		},
	}
	cmd.Flags().StringVar(&phrase, "phrase", "", "phrase to submit")
	return cmd
}

func runSubmit(cmd *cobra.Command, phrase string) error {
	a, _, _, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	r := render.New(gutterWidth)
	if !flags.jsonMode {
		fmt.Fprintln(cmd.ErrOrStderr(), render.LoadingText)
	}

	bubbles, err := a.Submit(cmd.Context(), phrase)
	switch {
	case errors.Is(err, types.ErrNotLoggedIn):
		if !flags.jsonMode {
			fmt.Fprintln(cmd.OutOrStdout(), r.LoggedOut())
		}
		return exitError(exitUserError, "%w", err)
	case err != nil:
		return exitError(exitSysError, "submit: %w", err)
	}

	if flags.jsonMode {
		if bubbles == nil {
			bubbles = []types.Bubble{}
		}
		return printJSON(cmd, bubbles)
	}
	fmt.Fprintln(cmd.OutOrStdout(), r.Bubbles(bubbles))
	return nil
}
