package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "coach" command. Without arguments it
// opens the chat when attached to a terminal.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "coach",
		Short:         "Algorithm study assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runChat(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().String("config", "", "config file (default ~/.coach/config.yaml or $COACH_CONFIG)")

	root.AddCommand(
		newChatCmd(app),
		newAskCmd(app),
		newVariantCmd(app),
		newTopicsCmd(app),
		newStatsCmd(app),
		newServeCmd(app),
	)
	return root
}
