package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/focuspro/internal/backend"
	"github.com/alexanderramin/focuspro/internal/domain"
	"github.com/alexanderramin/focuspro/internal/tracker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newTrackCmd(app *App) *cobra.Command {
	var meeting bool
	var projectID, taskID string

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Open the session timer",
		Long: "Open the session timer.\n\n" +
			"In work mode the session needs a project and task, given with\n" +
			"--project/--task or picked in the timer view (p). Quitting saves\n" +
			"an open session.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !app.interactive() {
				return errors.New("track needs an interactive terminal")
			}
			if (projectID == "") != (taskID == "") {
				return errors.New("--project and --task must be given together")
			}

			u, err := app.requireUser(ctx)
			if err != nil {
				return err
			}
			lang, err := app.Identity.Language(ctx)
			if err != nil {
				return err
			}

			var sel domain.TaskSelection
			if !meeting && projectID != "" {
				sel, err = app.lookupSelection(ctx, u, projectID, taskID)
				if err != nil {
					return err
				}
			}

			ctrl, bridge, model := app.newTrackSession(u, sel, lang, meeting)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			bridge.attach(p.Send)

			_, runErr := p.Run()
			// Saves the session when the program ended without going
			// through quit, e.g. on a signal. A no-op after a normal quit.
			ctrl.Shutdown(context.Background())
			if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
				return runErr
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&meeting, "meeting", false, "Start in meeting mode")
	cmd.Flags().StringVar(&projectID, "project", "", "Project id (skips the picker)")
	cmd.Flags().StringVar(&taskID, "task", "", "Task id (skips the picker)")

	return cmd
}

// newTrackSession wires a controller to a track view through a presenter
// bridge. The bridge is attached to the program by the caller.
func (a *App) newTrackSession(u *domain.UserIdentity, sel domain.TaskSelection, lang string, meeting bool) (*tracker.Controller, *presenterBridge, *trackModel) {
	bridge := newPresenterBridge()
	langs := newLanguage(lang)
	clk := a.clockOrReal()

	ctrl := tracker.New(tracker.Options{
		API:       a.API,
		Clock:     clk,
		Presenter: bridge,
		Journal:   a.Journal,
		Logger:    a.logger(),
		Settings:  tracker.SettingsFromConfig(a.Config),
		Identity:  u,
		Language:  langs.Get,
	})
	if meeting {
		_ = ctrl.SetMode(domain.ModeMeeting)
	}

	model := newTrackModel(ctrl, trackDeps{
		identity:       a.Identity,
		api:            a.API,
		user:           u,
		selection:      sel,
		lang:           langs,
		logger:         a.logger(),
		now:            clk.Now,
		countdownEvery: time.Second,
		pickOnStart:    !meeting && sel.Empty(),
	})
	return ctrl, bridge, model
}

// lookupSelection resolves --project/--task against the backend lists so
// the session carries the names the backend knows.
func (a *App) lookupSelection(ctx context.Context, u *domain.UserIdentity, projectID, taskID string) (domain.TaskSelection, error) {
	projects, err := loadProjects(ctx, a.API, u, a.logger())
	if err != nil {
		return domain.TaskSelection{}, err
	}
	project, ok := findProject(projects, projectID)
	if !ok {
		return domain.TaskSelection{}, fmt.Errorf("project %s is not assigned to %s", projectID, u.Email)
	}

	tasks, err := a.API.Tasks(ctx, projectID)
	if err != nil {
		return domain.TaskSelection{}, fmt.Errorf("loading tasks of project %s: %w", projectID, err)
	}
	for _, t := range tasks {
		if t.ID == taskID {
			return selectionOf(project, t), nil
		}
	}
	return domain.TaskSelection{}, fmt.Errorf("task %s not found in project %s", taskID, project.Name)
}

func pickerForm(title string, options []huh.Option[string], result *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Height(min(len(options)+2, 12)).
				Value(result),
		),
	).WithTheme(focusHuhTheme()).WithShowHelp(false)
}

func findProject(projects []backend.Project, id string) (backend.Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return backend.Project{}, false
}

func selectionOf(p backend.Project, t backend.Task) domain.TaskSelection {
	return domain.TaskSelection{
		ProjectID:   p.ID,
		ProjectName: p.Name,
		TaskID:      t.ID,
		TaskName:    t.Name,
	}
}
