package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/focuspro/internal/backend"
	"github.com/alexanderramin/focuspro/internal/clock"
	"github.com/alexanderramin/focuspro/internal/config"
	"github.com/alexanderramin/focuspro/internal/domain"
	"github.com/alexanderramin/focuspro/internal/service"
	"github.com/spf13/cobra"
)

// App holds everything the CLI commands use.
type App struct {
	Config   config.Config
	Identity service.IdentityService
	Journal  service.JournalService
	API      backend.API
	Logger   *slog.Logger
	Clock    clock.Clock

	// IsInteractive reports whether stdin/stdout are a terminal. Forms and
	// the track view need one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "focuspro" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "focuspro",
		Short:         "Staff time tracking client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newLangCmd(app),
		newProjectsCmd(app),
		newTasksCmd(app),
		newTrackCmd(app),
		newHistoryCmd(app),
		newStatusCmd(app),
		newFeedbackCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *App) clockOrReal() clock.Clock {
	if a.Clock == nil {
		return clock.Real()
	}
	return a.Clock
}

// requireUser loads the logged-in identity, turning the not-logged-in case
// into a hint for the user.
func (a *App) requireUser(ctx context.Context) (*domain.UserIdentity, error) {
	u, err := a.Identity.Current(ctx)
	if errors.Is(err, service.ErrNotLoggedIn) {
		return nil, fmt.Errorf("%w: run `focuspro login` first", err)
	}
	return u, err
}

// projectsRequest builds the project filter request the backend expects:
// the username is "first last" with the trailing space kept when there is
// no last name.
func projectsRequest(u *domain.UserIdentity) backend.ProjectsRequest {
	return backend.ProjectsRequest{
		Email:    u.Email,
		Username: u.FirstName + " " + u.LastName,
	}
}
