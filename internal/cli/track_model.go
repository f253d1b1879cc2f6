package cli

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/focuspro/internal/backend"
	"github.com/alexanderramin/focuspro/internal/cli/formatter"
	"github.com/alexanderramin/focuspro/internal/domain"
	"github.com/alexanderramin/focuspro/internal/i18n"
	"github.com/alexanderramin/focuspro/internal/service"
	"github.com/alexanderramin/focuspro/internal/tracker"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const maxToasts = 3

type (
	opDoneMsg struct {
		err         error
		closePrompt bool
	}
	langMsg struct {
		snap tracker.Snapshot
		err  error
	}
	intervalMsg struct {
		seconds int
		err     error
	}
	projectsMsg struct {
		projects []backend.Project
		err      error
	}
	tasksMsg struct {
		project backend.Project
		tasks   []backend.Task
		err     error
	}
	countdownMsg    time.Time
	shutdownDoneMsg struct{}
)

type pickerStep int

const (
	pickProject pickerStep = iota
	pickTask
)

// taskPicker walks through project then task selection, one huh form per
// step. form is nil while a step's options are loading.
type taskPicker struct {
	step     pickerStep
	form     *huh.Form
	choice   string
	projects []backend.Project
	project  backend.Project
	tasks    []backend.Task
	// start begins a session as soon as the task is picked.
	start bool
}

type trackKeyMap struct {
	Work     key.Binding
	Meeting  key.Binding
	Start    key.Binding
	Finish   key.Binding
	Continue key.Binding
	Break    key.Binding
	Resume   key.Binding
	Pick     key.Binding
	Lang     key.Binding
	Quit     key.Binding

	Submit  key.Binding
	Cancel  key.Binding
	Dismiss key.Binding
	Select  key.Binding
}

func defaultTrackKeys() trackKeyMap {
	return trackKeyMap{
		Work:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "work")),
		Meeting:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "meeting")),
		Start:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Finish:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finish")),
		Continue: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "continue")),
		Break:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "break")),
		Resume:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "resume")),
		Pick:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pick task")),
		Lang:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "EN/TR")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "save & quit")),
		Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Dismiss:  key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "dismiss")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	}
}

// trackDeps is what the track view needs besides the controller.
type trackDeps struct {
	identity  service.IdentityService
	api       backend.API
	user      *domain.UserIdentity
	selection domain.TaskSelection
	lang      *language
	logger    *slog.Logger
	now       func() time.Time
	// countdownEvery is the redraw period of the idle countdown; zero
	// disables the redraw tick.
	countdownEvery time.Duration
	// pickOnStart opens the project/task picker as soon as the view starts.
	pickOnStart bool
}

// trackModel is the bubbletea presentation layer of a tracking session.
// All controller calls run inside commands so presenter callbacks can be
// delivered while Update is free.
type trackModel struct {
	ctrl *tracker.Controller
	deps trackDeps
	keys trackKeyMap

	snap     tracker.Snapshot
	interval int
	toasts   []tracker.Notice
	alert    *tracker.Notice
	prompt   *tracker.FinishPrompt
	picker   *taskPicker
	note     textarea.Model
	spin     spinner.Model
	help     help.Model
	busy     int
	width    int
	counting bool
	closing  bool
}

func newTrackModel(ctrl *tracker.Controller, deps trackDeps) *trackModel {
	if deps.now == nil {
		deps.now = time.Now
	}
	if deps.logger == nil {
		deps.logger = slog.New(slog.DiscardHandler)
	}

	note := textarea.New()
	note.ShowLineNumbers = false
	note.CharLimit = 2000
	note.SetHeight(4)
	note.Cursor.SetMode(cursor.CursorStatic)

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = formatter.StylePurple

	return &trackModel{
		ctrl: ctrl,
		deps: deps,
		keys: defaultTrackKeys(),
		snap: ctrl.Snapshot(),
		note: note,
		spin: spin,
		help: help.New(),
	}
}

func (m *trackModel) Init() tea.Cmd {
	api := m.deps.api
	interval := func() tea.Msg {
		seconds, err := api.ScreenshotInterval(context.Background())
		return intervalMsg{seconds: seconds, err: err}
	}
	if m.deps.pickOnStart && m.snap.Mode == domain.ModeWork {
		return tea.Batch(interval, m.openPicker(false))
	}
	return interval
}

func (m *trackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.note.SetWidth(min(max(msg.Width-8, 20), 72))
		return m, nil

	case snapshotMsg:
		return m, m.applySnapshot(tracker.Snapshot(msg))

	case noticeMsg:
		n := tracker.Notice(msg)
		if n.Blocking {
			m.alert = &n
			return m, nil
		}
		m.toasts = append(m.toasts, n)
		if len(m.toasts) > maxToasts {
			m.toasts = m.toasts[len(m.toasts)-maxToasts:]
		}
		return m, nil

	case promptMsg:
		p := tracker.FinishPrompt(msg)
		m.prompt = &p
		m.note.Reset()
		m.note.Placeholder = p.Placeholder
		return m, m.note.Focus()

	case opDoneMsg:
		m.busy = max(m.busy-1, 0)
		if msg.err == nil && msg.closePrompt {
			m.closePrompt()
		}
		if msg.err != nil {
			m.deps.logger.Debug("track operation rejected", "error", msg.err)
		}
		return m, nil

	case langMsg:
		m.busy = max(m.busy-1, 0)
		if msg.err != nil {
			m.deps.logger.Warn("persisting language failed", "error", msg.err)
		}
		return m, m.applySnapshot(msg.snap)

	case projectsMsg:
		m.busy = max(m.busy-1, 0)
		return m, m.showProjects(msg)

	case tasksMsg:
		m.busy = max(m.busy-1, 0)
		return m, m.showTasks(msg)

	case intervalMsg:
		if msg.err != nil {
			m.deps.logger.Warn("screenshot interval unavailable", "error", msg.err)
			return m, nil
		}
		m.interval = msg.seconds
		return m, nil

	case countdownMsg:
		if m.snap.State != domain.StatePaused {
			m.counting = false
			return m, nil
		}
		return m, m.countdownCmd()

	case shutdownDoneMsg:
		return m, tea.Quit

	case spinner.TickMsg:
		if m.busy == 0 && !m.closing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	// Anything else belongs to the picker form (field and group steps).
	if m.picker != nil && m.picker.form != nil {
		return m, m.updatePicker(msg)
	}
	return m, nil
}

func (m *trackModel) applySnapshot(s tracker.Snapshot) tea.Cmd {
	m.snap = s
	if s.State == domain.StatePaused && !m.counting && m.deps.countdownEvery > 0 {
		m.counting = true
		return m.countdownCmd()
	}
	return nil
}

func (m *trackModel) countdownCmd() tea.Cmd {
	return tea.Tick(m.deps.countdownEvery, func(t time.Time) tea.Msg { return countdownMsg(t) })
}

func (m *trackModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.closing {
		return nil
	}
	if msg.String() == "ctrl+c" {
		return m.shutdown()
	}

	if m.alert != nil {
		m.alert = nil
		if key.Matches(msg, m.keys.Dismiss) {
			return nil
		}
	}

	if m.picker != nil {
		if key.Matches(msg, m.keys.Cancel) {
			m.picker = nil
			return nil
		}
		if m.picker.form == nil {
			return nil
		}
		return m.updatePicker(msg)
	}

	if m.prompt != nil {
		switch {
		case key.Matches(msg, m.keys.Submit):
			note := m.note.Value()
			return m.run(func() error { return m.ctrl.Finish(note) }, true)
		case key.Matches(msg, m.keys.Cancel):
			m.closePrompt()
			return nil
		}
		var cmd tea.Cmd
		m.note, cmd = m.note.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Work):
		return m.run(func() error { return m.ctrl.SetMode(domain.ModeWork) }, false)
	case key.Matches(msg, m.keys.Meeting):
		return m.run(func() error { return m.ctrl.SetMode(domain.ModeMeeting) }, false)
	case key.Matches(msg, m.keys.Start):
		if m.snap.State == domain.StateBreak {
			return m.run(m.ctrl.Resume, false)
		}
		if m.canPick() && m.deps.selection.Empty() {
			return m.openPicker(true)
		}
		sel := m.deps.selection
		return m.run(func() error { return m.ctrl.Start(sel) }, false)
	case key.Matches(msg, m.keys.Pick):
		if m.canPick() {
			return m.openPicker(false)
		}
		return nil
	case key.Matches(msg, m.keys.Break):
		return m.run(m.ctrl.Break, false)
	case key.Matches(msg, m.keys.Finish):
		return m.run(m.ctrl.RequestFinish, false)
	case key.Matches(msg, m.keys.Continue):
		return m.run(m.ctrl.CancelIdle, false)
	case key.Matches(msg, m.keys.Lang):
		return m.toggleLanguage()
	case key.Matches(msg, m.keys.Quit):
		return m.shutdown()
	}
	return nil
}

// run executes op off the event loop and reports its result.
func (m *trackModel) run(op func() error, closePrompt bool) tea.Cmd {
	return m.background(func() tea.Msg { return opDoneMsg{err: op(), closePrompt: closePrompt} })
}

// background counts cmd as in flight and starts the spinner for the first
// one. The handler of cmd's message decrements busy.
func (m *trackModel) background(cmd tea.Cmd) tea.Cmd {
	m.busy++
	if m.busy > 1 {
		return cmd
	}
	return tea.Batch(cmd, m.spin.Tick)
}

// canPick reports whether the task can be (re)picked: work mode, no session.
func (m *trackModel) canPick() bool {
	return m.snap.Mode == domain.ModeWork && m.snap.State == domain.StateIdle
}

// openPicker loads the project list; the project form opens when it arrives.
func (m *trackModel) openPicker(start bool) tea.Cmd {
	m.picker = &taskPicker{step: pickProject, start: start}
	api, u, logger := m.deps.api, m.deps.user, m.deps.logger
	return m.background(func() tea.Msg {
		projects, err := loadProjects(context.Background(), api, u, logger)
		return projectsMsg{projects: projects, err: err}
	})
}

func (m *trackModel) showProjects(msg projectsMsg) tea.Cmd {
	if m.picker == nil {
		return nil
	}
	lang := m.deps.lang.Get()
	switch {
	case msg.err != nil:
		m.deps.logger.Warn("loading projects failed", "error", msg.err)
		m.pickerFailed(tracker.NoticeError, msg.err.Error())
		return nil
	case len(msg.projects) == 0:
		m.pickerFailed(tracker.NoticeWarning, i18n.T(lang, i18n.NoProjects))
		return nil
	}

	p := m.picker
	p.projects = msg.projects
	options := make([]huh.Option[string], 0, len(msg.projects))
	for _, project := range msg.projects {
		options = append(options, huh.NewOption(project.Name, project.ID))
	}
	return m.showForm(pickerForm(i18n.T(lang, i18n.SelectProject), options, &p.choice))
}

func (m *trackModel) showTasks(msg tasksMsg) tea.Cmd {
	if m.picker == nil {
		return nil
	}
	lang := m.deps.lang.Get()
	switch {
	case msg.err != nil:
		m.deps.logger.Warn("loading tasks failed", "project_id", msg.project.ID, "error", msg.err)
		m.pickerFailed(tracker.NoticeError, msg.err.Error())
		return nil
	case len(msg.tasks) == 0:
		m.pickerFailed(tracker.NoticeWarning, i18n.T(lang, i18n.NoTasks))
		return nil
	}

	p := m.picker
	p.step = pickTask
	p.project = msg.project
	p.tasks = msg.tasks
	p.choice = ""
	options := make([]huh.Option[string], 0, len(msg.tasks))
	for _, t := range msg.tasks {
		options = append(options, huh.NewOption(formatter.Truncate(t.Name, 60), t.ID))
	}
	return m.showForm(pickerForm(i18n.T(lang, i18n.SelectTask), options, &p.choice))
}

func (m *trackModel) showForm(form *huh.Form) tea.Cmd {
	if m.width > 0 {
		form = form.WithWidth(min(m.width-4, 72))
	}
	m.picker.form = form
	return form.Init()
}

func (m *trackModel) pickerFailed(level tracker.NoticeLevel, msg string) {
	m.picker = nil
	m.alert = &tracker.Notice{Level: level, Message: msg, Blocking: true}
}

func (m *trackModel) updatePicker(msg tea.Msg) tea.Cmd {
	p := m.picker
	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	switch p.form.State {
	case huh.StateAborted:
		m.picker = nil
		return cmd
	case huh.StateCompleted:
		return tea.Batch(cmd, m.advancePicker())
	}
	return cmd
}

// advancePicker moves on from a completed form: a picked project loads its
// tasks, a picked task becomes the selection.
func (m *trackModel) advancePicker() tea.Cmd {
	p := m.picker
	p.form = nil

	if p.step == pickProject {
		project, ok := findProject(p.projects, p.choice)
		if !ok {
			m.picker = nil
			return nil
		}
		api := m.deps.api
		return m.background(func() tea.Msg {
			tasks, err := api.Tasks(context.Background(), project.ID)
			return tasksMsg{project: project, tasks: tasks, err: err}
		})
	}

	m.picker = nil
	for _, t := range p.tasks {
		if t.ID != p.choice {
			continue
		}
		sel := selectionOf(p.project, t)
		m.deps.selection = sel
		if p.start {
			return m.run(func() error { return m.ctrl.Start(sel) }, false)
		}
		return nil
	}
	return nil
}

func (m *trackModel) toggleLanguage() tea.Cmd {
	next := domain.LangTurkish
	if m.deps.lang.Get() == domain.LangTurkish {
		next = domain.LangEnglish
	}
	m.deps.lang.Set(next)
	m.busy++

	ctrl, identity := m.ctrl, m.deps.identity
	return func() tea.Msg {
		err := identity.SetLanguage(context.Background(), next)
		return langMsg{snap: ctrl.Snapshot(), err: err}
	}
}

// shutdown saves any active session the way an app exit does, then quits.
func (m *trackModel) shutdown() tea.Cmd {
	m.closing = true
	ctrl := m.ctrl
	return tea.Batch(func() tea.Msg {
		ctrl.Shutdown(context.Background())
		return shutdownDoneMsg{}
	}, m.spin.Tick)
}

func (m *trackModel) closePrompt() {
	m.prompt = nil
	m.note.Blur()
	m.note.Reset()
}

// ── view ─────────────────────────────────────────────────────────────────────

func (m *trackModel) View() string {
	lang := m.deps.lang.Get()
	var b strings.Builder

	b.WriteString(m.renderHeader(lang))
	b.WriteString("\n\n")

	b.WriteString("  " + formatter.StatePill(m.snap.State, m.snap.Mode, m.snap.StateLabel))
	b.WriteString("   " + formatter.Dim("Logging: ") + m.snap.Logging + "\n\n")
	b.WriteString("  " + formatter.StyleTimer.Render(m.snap.Clock) + "\n")
	b.WriteString("  " + formatter.Dim(i18n.T(lang, i18n.Total)+": ") + m.snap.Summary + "\n")

	if m.snap.ShowPickers {
		project, task := m.deps.selection.ProjectName, m.deps.selection.TaskName
		if m.snap.TaskID != "" {
			project, task = m.snap.ProjectName, m.snap.TaskName
		}
		if task == "" {
			task = formatter.Dim(i18n.T(lang, i18n.SelectTask))
		}
		b.WriteString("\n")
		b.WriteString("  " + formatter.Bold(i18n.T(lang, i18n.Project)+": ") + project + "\n")
		b.WriteString("  " + formatter.Bold(i18n.T(lang, i18n.Task)+": ") + task + "\n")
	}

	if m.picker != nil && m.picker.form != nil {
		b.WriteString("\n" + indent(m.picker.form.View()) + "\n")
	}

	if m.snap.State == domain.StateBreak {
		b.WriteString("\n  " + formatter.StyleBlue.Render(i18n.T(lang, i18n.BreakStarted)) + "\n")
	}

	if m.snap.State == domain.StatePaused {
		body := i18n.T(lang, i18n.IdleDesc) + "\n" +
			formatter.StyleYellow.Render(i18n.Tf(lang, i18n.IdleCountdown, m.idleRemaining()))
		b.WriteString("\n" + indent(formatter.RenderAlert(i18n.T(lang, i18n.IdleTitle), body)) + "\n")
	}

	if m.prompt != nil {
		body := m.prompt.Description + "\n\n" + m.note.View()
		b.WriteString("\n" + indent(formatter.RenderBox(m.prompt.Title, body)) + "\n")
	}

	if m.alert != nil {
		b.WriteString("\n" + indent(formatter.RenderAlert("", formatter.Toast(m.alert.Level, m.alert.Message))) + "\n")
	}

	if len(m.toasts) > 0 {
		b.WriteString("\n")
		for _, t := range m.toasts {
			b.WriteString("  " + formatter.Toast(t.Level, t.Message) + "\n")
		}
	}

	if m.busy > 0 || m.closing {
		b.WriteString("\n  " + m.spin.View() + " " + formatter.Dim("working..."))
	}

	b.WriteString("\n\n" + m.help.ShortHelpView(m.shortHelp()))
	return b.String()
}

func (m *trackModel) renderHeader(lang string) string {
	parts := []string{lipgloss.NewStyle().Foreground(formatter.ColorBrand).Bold(true).Render("FocusPro")}
	if m.deps.user != nil {
		parts = append(parts, m.deps.user.FullName())
	}
	parts = append(parts, strings.ToUpper(lang))
	if m.interval > 0 {
		parts = append(parts, fmt.Sprintf("screenshots every %s", formatter.ShortDuration(m.interval)))
	}
	header := strings.Join(parts, formatter.Dim(" · "))
	return header + "\n" + formatter.Dim(strings.Repeat("─", max(m.width, 40)))
}

func (m *trackModel) shortHelp() []key.Binding {
	if m.picker != nil {
		return []key.Binding{m.keys.Select, m.keys.Cancel}
	}
	if m.prompt != nil {
		return []key.Binding{m.keys.Submit, m.keys.Cancel}
	}
	switch m.snap.State {
	case domain.StateRunning:
		return []key.Binding{m.keys.Finish, m.keys.Break, m.keys.Lang, m.keys.Quit}
	case domain.StateBreak:
		return []key.Binding{m.keys.Resume, m.keys.Finish, m.keys.Quit}
	case domain.StatePaused:
		return []key.Binding{m.keys.Continue, m.keys.Quit}
	}
	if m.snap.Mode == domain.ModeWork {
		return []key.Binding{m.keys.Start, m.keys.Pick, m.keys.Meeting, m.keys.Lang, m.keys.Quit}
	}
	return []key.Binding{m.keys.Start, m.keys.Work, m.keys.Lang, m.keys.Quit}
}

// idleRemaining is the whole seconds left before the idle auto-save.
func (m *trackModel) idleRemaining() int {
	if m.snap.IdleDeadline.IsZero() {
		return 0
	}
	left := m.snap.IdleDeadline.Sub(m.deps.now()).Seconds()
	return max(int(math.Ceil(left)), 0)
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
