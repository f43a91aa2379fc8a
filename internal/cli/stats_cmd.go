package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/coach/internal/cli/formatter"
	"github.com/alexanderramin/coach/internal/dashboard"
)

func newStatsCmd(app *App) *cobra.Command {
	var recent bool

	cmd := &cobra.Command{
		Use:   "stats [username]",
		Short: "Show solving statistics for a LeetCode user",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, _, err := app.instantSession(ctx)
			if err != nil {
				return err
			}
			dash := dashboard.New(app.Stats, app.Store, app.logger(), dashboard.WithPreferred(sess.Variant()))

			if recent {
				names, err := dash.RecentSearches(ctx)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecentSearches(names))
				return nil
			}
			if len(args) == 0 {
				return errors.New("username is required (or use --recent)")
			}
			if app.Stats == nil {
				return errors.New("stats endpoint is not configured")
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Fetching statistics...")
			}
			view, err := dash.Load(ctx, args[0])
			stop()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(view))
			return nil
		},
	}

	cmd.Flags().BoolVar(&recent, "recent", false, "list recently searched usernames")
	return cmd
}
