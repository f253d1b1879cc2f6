package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/focuspro/internal/backend"
	"github.com/alexanderramin/focuspro/internal/cli/formatter"
	"github.com/alexanderramin/focuspro/internal/tracker"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newFeedbackCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "feedback [message...]",
		Short: "Send feedback to the FocusPro team",
		Long: "Send feedback to the FocusPro team.\n\n" +
			"Without a message argument an editor opens in interactive terminals.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := app.requireUser(ctx)
			if err != nil {
				return err
			}

			message := strings.TrimSpace(strings.Join(args, " "))
			if message == "" && app.interactive() {
				if err := feedbackForm(&message).Run(); err != nil {
					return err
				}
				message = strings.TrimSpace(message)
			}
			if message == "" {
				return errors.New("a feedback message is required")
			}

			stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Sending feedback...", app.interactive())
			err = app.API.SubmitFeedback(ctx, backend.FeedbackRequest{
				Email:    u.Email,
				Username: u.FullName(),
				Message:  message,
			})
			stop()
			if err != nil {
				return fmt.Errorf("sending feedback: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Toast(tracker.NoticeSuccess, "Feedback sent successfully!"))
			return nil
		},
	}
}

func feedbackForm(message *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Feedback").
				Placeholder("What should we improve?").
				CharLimit(2000).
				Value(message),
		),
	).WithTheme(focusHuhTheme()).WithShowHelp(false)
}
