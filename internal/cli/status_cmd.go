package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/focuspro/internal/cli/formatter"
	"github.com/alexanderramin/focuspro/internal/service"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the logged-in user, language and backend reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			view := formatter.StatusView{Endpoint: app.Config.APIEndpoint}

			u, err := app.Identity.Current(ctx)
			switch {
			case err == nil:
				view.User = u
			case !errors.Is(err, service.ErrNotLoggedIn):
				return err
			}

			if view.Language, err = app.Identity.Language(ctx); err != nil {
				return err
			}

			stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Contacting backend...", app.interactive())
			view.ScreenshotInterval, view.ReachErr = app.API.ScreenshotInterval(ctx)
			stop()

			unsynced, err := app.Journal.Unsynced(ctx, 0)
			if err != nil {
				return err
			}
			view.Unsynced = len(unsynced)

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(view))
			return nil
		},
	}
}
