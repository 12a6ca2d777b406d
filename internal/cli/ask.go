package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Ayash-Bera/highlights/internal/chat"
	"github.com/spf13/cobra"
)

func newAskCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask one question and print the answer",
		Example: `  highlights ask "What happened after the person got out of the car?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := chat.NewController(opts.client())
			ctrl.SetQuery(strings.Join(args, " "))

			err := ctrl.Submit(cmd.Context())
			if errors.Is(err, chat.ErrEmptyQuery) {
				return fmt.Errorf("question cannot be empty")
			}
			if renderErr := chat.Render(cmd.OutOrStdout(), ctrl.View()); renderErr != nil {
				return renderErr
			}
			if err != nil {
				return fmt.Errorf("question failed")
			}
			return nil
		},
	}
}

func newChatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Ask questions interactively, one per line",
		Long: `Reads questions from standard input, one per line, and prints each
answer as it settles. End the session with Ctrl-D.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := chat.NewController(opts.client())
			return runChat(cmd.Context(), ctrl, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runChat(ctx context.Context, ctrl *chat.Controller, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	prompt := func() { fmt.Fprint(out, "> ") }

	prompt()
	for scanner.Scan() {
		ctrl.SetQuery(scanner.Text())

		err := ctrl.Submit(ctx)
		switch {
		case errors.Is(err, chat.ErrEmptyQuery):
			fmt.Fprintln(out, "Type a question first.")
		case errors.Is(err, context.Canceled):
			return err
		default:
			if renderErr := chat.Render(out, ctrl.View()); renderErr != nil {
				return renderErr
			}
		}
		prompt()
	}
	fmt.Fprintln(out)

	return scanner.Err()
}
