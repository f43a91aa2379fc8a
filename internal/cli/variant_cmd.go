package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/coach/internal/assistant"
	"github.com/alexanderramin/coach/internal/cli/formatter"
	"github.com/alexanderramin/coach/internal/domain"
)

func newVariantCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "variant [python|javascript|java|cpp]",
		Short:     "Show or change the preferred code variant",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: variantNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := app.instantSession(cmd.Context())
			if err != nil {
				return err
			}

			var choice string
			switch {
			case len(args) == 1:
				choice = args[0]
			case app.interactive():
				choice, err = pickVariant(sess.Variant())
				if err != nil {
					return err
				}
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "Current variant: %s\n", formatter.VariantBadge(sess.Variant()))
				return nil
			}

			v, err := domain.ParseVariant(choice)
			if err != nil {
				return err
			}
			if err := sess.SetVariant(cmd.Context(), v); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderMessage(assistant.AckMessage(v)))
			return nil
		},
	}
}

func pickVariant(current domain.Variant) (string, error) {
	choice := string(current)
	opts := make([]huh.Option[string], 0, len(domain.Variants))
	for _, v := range domain.Variants {
		opts = append(opts, huh.NewOption(v.DisplayName(), string(v)))
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Preferred code variant").
				Options(opts...).
				Value(&choice),
		),
	).WithTheme(coachHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("variant picker: %w", err)
	}
	return choice, nil
}

func variantNames() []string {
	names := make([]string, len(domain.Variants))
	for i, v := range domain.Variants {
		names[i] = string(v)
	}
	return names
}
