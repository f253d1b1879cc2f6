package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/focuspro/internal/backend"
	"github.com/alexanderramin/focuspro/internal/cli/formatter"
	"github.com/alexanderramin/focuspro/internal/domain"
	"github.com/spf13/cobra"
)

// loadProjects fetches the projects assigned to u and hands them to the
// backend's per-user cache. A failed cache write is only logged.
func loadProjects(ctx context.Context, api backend.API, u *domain.UserIdentity, logger *slog.Logger) ([]backend.Project, error) {
	projects, err := api.FilteredProjects(ctx, projectsRequest(u))
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	if len(projects) > 0 {
		err := api.CacheUserProjects(ctx, backend.CacheProjectsRequest{
			Email:    u.Email,
			Username: u.FirstName,
			Projects: projects,
		})
		if err != nil {
			logger.Warn("caching user projects failed", "error", err)
		}
	}
	return projects, nil
}

func newProjectsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List the projects assigned to the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := app.requireUser(ctx)
			if err != nil {
				return err
			}

			stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Loading projects...", app.interactive())
			projects, err := loadProjects(ctx, app.API, u, app.logger())
			stop()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjects(projects))
			return nil
		},
	}
}

func newTasksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks <project-id>",
		Short: "List the open tasks of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.requireUser(ctx); err != nil {
				return err
			}

			stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Loading tasks...", app.interactive())
			tasks, err := app.API.Tasks(ctx, args[0])
			stop()
			if err != nil {
				return fmt.Errorf("loading tasks of project %s: %w", args[0], err)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTasks(tasks))
			return nil
		},
	}
}
