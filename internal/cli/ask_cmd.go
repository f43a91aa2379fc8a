package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/coach/internal/assistant"
	"github.com/alexanderramin/coach/internal/cli/formatter"
	"github.com/alexanderramin/coach/internal/domain"
	"github.com/alexanderramin/coach/internal/scheduler"
)

func newAskCmd(app *App) *cobra.Command {
	var (
		quick   int
		noDelay bool
		raw     bool
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and print the reply",
		Example: `  coach ask "explain binary search in java"
  coach ask --quick 2
  coach ask --no-delay --raw "what is dynamic programming"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			if quick == 0 && !assistant.CanSubmit(question) {
				return errors.New("a question or --quick is required")
			}
			submit := func(sess *assistant.Session) error {
				if quick != 0 {
					return askQuick(sess, quick)
				}
				return sess.Submit(question)
			}

			var (
				reply domain.Message
				err   error
			)
			if noDelay {
				reply, err = askInstant(cmd.Context(), app, submit)
			} else {
				reply, err = askRealtime(cmd.Context(), app, submit, func() func() {
					if !app.interactive() {
						return func() {}
					}
					return formatter.StartSpinner(cmd.ErrOrStderr(), "Coach is typing...")
				})
			}
			if err != nil {
				return err
			}

			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), reply.Content)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderMessage(reply.Content))
			return nil
		},
	}

	cmd.Flags().IntVarP(&quick, "quick", "q", 0, "ask quick question number n (see 'coach topics')")
	cmd.Flags().BoolVar(&noDelay, "no-delay", false, "reply immediately instead of simulating typing")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the reply markup without styling")
	return cmd
}

func askInstant(ctx context.Context, app *App, submit func(*assistant.Session) error) (domain.Message, error) {
	sess, clock, err := app.instantSession(ctx)
	if err != nil {
		return domain.Message{}, err
	}
	if err := submit(sess); err != nil {
		return domain.Message{}, err
	}
	clock.RunAll()
	return lastReply(sess)
}

// askRealtime waits on the wall clock for the reply. spin starts the typing
// indicator and returns its stop function.
func askRealtime(ctx context.Context, app *App, submit func(*assistant.Session) error, spin func() func()) (domain.Message, error) {
	var mu sync.Mutex
	rt := scheduler.NewRealtime(&mu)
	defer rt.Close()

	sess, err := app.Factory.New(ctx, rt)
	if err != nil {
		return domain.Message{}, fmt.Errorf("starting session: %w", err)
	}

	mu.Lock()
	err = submit(sess)
	mu.Unlock()
	if err != nil {
		return domain.Message{}, err
	}

	stop := spin()
	rt.Wait()
	stop()

	mu.Lock()
	defer mu.Unlock()
	return lastReply(sess)
}

func lastReply(sess *assistant.Session) (domain.Message, error) {
	history := sess.History()
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].FromUser() {
			return history[i], nil
		}
	}
	return domain.Message{}, errors.New("no reply was delivered")
}
