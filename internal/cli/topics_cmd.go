package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderramin/coach/internal/cli/formatter"
	"github.com/alexanderramin/coach/internal/domain"
	"github.com/alexanderramin/coach/internal/render"
)

func newTopicsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List the topics the assistant can explain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := app.instantSession(cmd.Context())
			if err != nil {
				return err
			}
			recent, err := sess.RecentTopics(cmd.Context())
			if err != nil {
				app.logger().Warn("loading recent topics", zap.Error(err))
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatTopicList(formatter.TopicRows(app.Knowledge), recent))
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.Header("Quick questions"))
			fmt.Fprint(out, formatter.FormatQuickList(quickItems()))
			return nil
		},
	}
	cmd.AddCommand(newTopicsShowCmd(app))
	return cmd
}

func newTopicsShowCmd(app *App) *cobra.Command {
	var (
		variant string
		raw     bool
	)

	cmd := &cobra.Command{
		Use:   "show <topic>",
		Short: "Print the full explanation for a topic",
		Example: `  coach topics show binary-search
  coach topics show "two pointers" --variant cpp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic, err := domain.ParseTopic(args[0])
			if err != nil {
				return err
			}
			entry, ok := app.Knowledge.Lookup(topic)
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrUnknownTopic, topic)
			}

			var v domain.Variant
			if variant != "" {
				if v, err = domain.ParseVariant(variant); err != nil {
					return err
				}
			} else {
				sess, _, err := app.instantSession(cmd.Context())
				if err != nil {
					return err
				}
				v = sess.Variant()
			}

			text := render.Compose(entry, v)
			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			out, err := renderMarkdown(text, app.interactive())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "code variant (defaults to the saved preference)")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the reply markup without rendering")
	return cmd
}

func renderMarkdown(text string, color bool) (string, error) {
	style := "notty"
	if color {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(text)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
