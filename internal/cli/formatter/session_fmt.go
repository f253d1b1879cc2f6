package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focuspro/internal/backend"
	"github.com/alexanderramin/focuspro/internal/domain"
)

// FormatHistory renders journal entries, newest first, relative to now.
// Entries with a failed backend write name the endpoints that failed.
func FormatHistory(entries []*domain.JournalEntry, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No sessions recorded yet.") + "\n"
	}

	rows := make([][]string, 0, len(entries))
	unsynced := 0
	for _, e := range entries {
		task := e.TaskName
		if e.ProjectName != "" && e.Mode == domain.ModeWork {
			task = e.ProjectName + " / " + e.TaskName
		}
		rows = append(rows, []string{
			HumanSince(e.StartedAt, now),
			modeLabel(e.Mode),
			Truncate(task, 40),
			ShortDuration(e.ElapsedSeconds),
			outcomeLabel(e.Outcome),
			syncLabel(e),
		})
		if !e.Synced() {
			unsynced++
		}
	}

	var b strings.Builder
	b.WriteString(Header("Session history"))
	b.WriteString("\n")
	b.WriteString(RenderTableAligned(
		[]string{"STARTED", "MODE", "TASK", "DURATION", "OUTCOME", "BACKEND"},
		rows, 3,
	))
	if unsynced > 0 {
		b.WriteString("\n")
		b.WriteString(StyleRed.Render(fmt.Sprintf("%d session(s) were not fully saved to the backend.", unsynced)))
		b.WriteString("\n")
	}
	return b.String()
}

func modeLabel(m domain.Mode) string {
	if m == domain.ModeMeeting {
		return StylePurple.Render("meeting")
	}
	return StyleGreen.Render("work")
}

func outcomeLabel(o domain.SessionOutcome) string {
	switch o {
	case domain.OutcomeIdleSaved:
		return StyleYellow.Render("idle auto-save")
	case domain.OutcomeExitSaved:
		return StyleYellow.Render("saved on exit")
	default:
		return StyleFg.Render("finished")
	}
}

func syncLabel(e *domain.JournalEntry) string {
	var failed []string
	for _, c := range e.Calls {
		if !c.Success {
			failed = append(failed, strings.TrimPrefix(c.Endpoint, "/"))
		}
	}
	if len(failed) == 0 {
		return StyleGreen.Render("✔ saved")
	}
	return StyleRed.Render("✖ " + strings.Join(failed, ", "))
}

// FormatProjects renders the project list returned by the backend.
func FormatProjects(projects []backend.Project) string {
	if len(projects) == 0 {
		return Dim("No projects assigned.") + "\n"
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{StyleDim.Render(p.ID), p.Name})
	}
	return RenderTableAligned([]string{"ID", "PROJECT"}, rows, 0)
}

// FormatTasks renders the open tasks of a project.
func FormatTasks(tasks []backend.Task) string {
	if len(tasks) == 0 {
		return Dim("No open tasks for this project.") + "\n"
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{StyleDim.Render(t.ID), t.Name, t.Status})
	}
	return RenderTableAligned([]string{"ID", "TASK", "STATUS"}, rows, 0, 2)
}

// StatusView is the data shown by the status command.
type StatusView struct {
	User               *domain.UserIdentity
	Language           string
	Endpoint           string
	ReachErr           error
	ScreenshotInterval int
	Unsynced           int
}

// FormatStatus renders the client status box.
func FormatStatus(v StatusView) string {
	var lines []string

	if v.User != nil {
		lines = append(lines, fmt.Sprintf("%s  %s %s", Bold("User"), v.User.FullName(), Dim("<"+v.User.Email+">")))
		lines = append(lines, fmt.Sprintf("%s  %s", Bold("Staff"), string(v.User.StaffID)))
	} else {
		lines = append(lines, fmt.Sprintf("%s  %s", Bold("User"), StyleYellow.Render("not logged in")))
	}
	lines = append(lines, fmt.Sprintf("%s  %s", Bold("Lang"), strings.ToUpper(v.Language)))

	backendLine := fmt.Sprintf("%s  %s ", Bold("API "), v.Endpoint)
	if v.ReachErr != nil {
		backendLine += StyleRed.Render("✖ " + v.ReachErr.Error())
	} else {
		backendLine += StyleGreen.Render("✔ reachable")
	}
	lines = append(lines, backendLine)

	if v.ScreenshotInterval > 0 {
		lines = append(lines, fmt.Sprintf("%s  every %s", Bold("Shots"), ShortDuration(v.ScreenshotInterval)))
	}
	if v.Unsynced > 0 {
		lines = append(lines, StyleRed.Render(fmt.Sprintf("%d session(s) not fully saved; see `focuspro history --unsynced`", v.Unsynced)))
	}
	return RenderBox("FocusPro", strings.Join(lines, "\n")) + "\n"
}
