// Package tracker owns the session timer: the work/meeting mode, the
// running/paused lifecycle, idle detection with its auto-save protocol and
// the periodic activity log.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/focuspro/internal/backend"
	"github.com/alexanderramin/focuspro/internal/clock"
	"github.com/alexanderramin/focuspro/internal/domain"
	"github.com/alexanderramin/focuspro/internal/i18n"
)

// ExitNote is the note attached to a session saved because the client exited.
const ExitNote = "Auto-saved due to app exit"

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Journal records sessions that reached a terminal transition.
type Journal interface {
	Record(ctx context.Context, e *domain.JournalEntry) error
}

// Options wires a Controller. API and Identity are required for sessions to
// start; everything else has a usable default.
type Options struct {
	API       backend.API
	Clock     clock.Clock
	Presenter Presenter
	Journal   Journal
	Logger    *slog.Logger
	Settings  Settings
	Identity  *domain.UserIdentity
	// Language is consulted on every translation lookup.
	Language func() string
}

// Controller is the single owner of session state. All fields below mu are
// only touched with mu held; backend calls and presenter callbacks happen
// after it is released.
type Controller struct {
	api       backend.API
	clock     clock.Clock
	presenter Presenter
	journal   Journal
	logger    *slog.Logger
	settings  Settings
	identity  *domain.UserIdentity
	language  func() string

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	closed     bool
	mode       domain.Mode
	state      domain.State
	session    domain.Session
	idle       *domain.IdleEvent
	generation uint64

	tick        clock.Timer
	idlePoll    clock.Timer
	idleGrace   clock.Timer
	activityLog clock.Timer
}

// New creates a controller in work mode with no session and starts the idle
// poll, which lives until Close.
func New(opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Presenter == nil {
		opts.Presenter = NopPresenter{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Language == nil {
		opts.Language = func() string { return domain.LangEnglish }
	}
	if opts.Settings == (Settings{}) {
		opts.Settings = DefaultSettings()
	}
	var identity *domain.UserIdentity
	if opts.Identity != nil {
		id := *opts.Identity
		identity = &id
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		api:       opts.API,
		clock:     opts.Clock,
		presenter: opts.Presenter,
		journal:   opts.Journal,
		logger:    opts.Logger,
		settings:  opts.Settings,
		identity:  identity,
		language:  opts.Language,
		ctx:       ctx,
		cancel:    cancel,
		mode:      domain.ModeWork,
		state:     domain.StateIdle,
		session:   domain.Session{Mode: domain.ModeWork},
	}
	c.idlePoll = c.clock.Every(c.settings.IdlePollInterval, c.pollIdle)
	return c
}

// Identity returns the user sessions are attributed to, or nil.
func (c *Controller) Identity() *domain.UserIdentity {
	if c.identity == nil {
		return nil
	}
	id := *c.identity
	return &id
}

// Snapshot returns the current presentation state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Session returns a copy of the current session fields.
func (c *Controller) Session() domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// State returns the lifecycle state of the timer.
func (c *Controller) State() domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mode returns the selected work or meeting mode.
func (c *Controller) Mode() domain.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode switches between work and meeting mode. It is rejected while a
// session is running or paused.
func (c *Controller) SetMode(mode domain.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	c.mu.Lock()
	if c.state != domain.StateIdle {
		c.mu.Unlock()
		c.reject(ErrModeLocked)
		return ErrModeLocked
	}
	c.mode = mode
	c.session.Mode = mode
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.presenter.Render(snap)
	return nil
}

// Start begins a session in the current mode. Work mode needs an enabled
// task selection; meeting mode ignores sel. Backend failures while
// registering the start are reported but do not stop the local timer.
func (c *Controller) Start(sel domain.TaskSelection) error {
	c.mu.Lock()
	if err := c.checkStartLocked(sel); err != nil {
		c.mu.Unlock()
		c.reject(err)
		return err
	}
	if c.mode == domain.ModeMeeting {
		sel = domain.MeetingSelection()
	}

	now := c.clock.Now()
	c.generation++
	gen := c.generation
	c.session = domain.Session{
		Mode:          c.mode,
		TaskID:        sel.TaskID,
		ProjectName:   sel.ProjectName,
		TaskName:      sel.TaskName,
		StartTimeUnix: now.Unix(),
		Running:       true,
	}
	c.state = domain.StateRunning
	c.tick = c.clock.Every(c.settings.TickInterval, func() { c.onTick(gen) })
	c.activityLog = c.clock.Every(c.settings.ActivityLogInterval, func() { c.captureActivity(gen) })
	sess := c.session
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.presenter.Render(snap)
	c.logger.Info("session_started",
		"mode", sess.Mode, "task_id", sess.TaskID, "start_time", sess.StartTimeUnix)

	c.registerStart(sess)
	if err := c.api.StartScreenRecording(c.ctx, backend.ScreenRecordingRequest{
		Email:   c.identity.Email,
		Project: sess.ProjectName,
		Task:    sess.TaskName,
	}); err != nil {
		c.logger.Warn("start_screen_recording_failed", "error", err)
	}
	c.captureActivity(gen)
	return nil
}

func (c *Controller) checkStartLocked(sel domain.TaskSelection) error {
	switch {
	case c.closed:
		return ErrClosed
	case c.state != domain.StateIdle:
		return ErrSessionActive
	case c.identity == nil || !c.identity.Valid():
		return ErrNoIdentity
	case c.api == nil:
		return fmt.Errorf("%w: no backend configured", ErrClosed)
	case c.mode == domain.ModeWork && (sel.Empty() || sel.Disabled):
		return ErrNoTaskSelected
	}
	return nil
}

// RequestFinish asks the presenter for the session note, unless the
// session is shorter than the minimum work duration.
func (c *Controller) RequestFinish() error {
	c.mu.Lock()
	if !c.openLocked() {
		c.mu.Unlock()
		return ErrNotRunning
	}
	if c.session.ElapsedSeconds < c.settings.MinimumWorkSeconds {
		c.mu.Unlock()
		c.reject(ErrMinimumWork)
		return ErrMinimumWork
	}
	mode := c.session.Mode
	c.mu.Unlock()

	lang := c.lang()
	prompt := FinishPrompt{
		Mode:        mode,
		Title:       i18n.T(lang, i18n.ModalTitle),
		Description: i18n.T(lang, i18n.ModalDesc),
		Placeholder: i18n.T(lang, i18n.ModalPlaceholder),
	}
	if mode == domain.ModeMeeting {
		prompt.Title = i18n.T(lang, i18n.MeetingModalTitle)
		prompt.Description = i18n.T(lang, i18n.MeetingModalDesc)
		prompt.Placeholder = i18n.T(lang, i18n.MeetingModalPlaceholder)
	}
	c.presenter.PromptFinish(prompt)
	return nil
}

// Finish closes the running or on-break session with note. Local state is cleared
// before any backend call; backend failures are reported as notices and
// journalled, never returned.
func (c *Controller) Finish(note string) error {
	note = strings.TrimSpace(note)
	if note == "" {
		c.reject(ErrEmptyNote)
		return ErrEmptyNote
	}

	c.mu.Lock()
	if !c.openLocked() {
		c.mu.Unlock()
		return ErrNotRunning
	}
	end := c.clock.Now()
	sess := c.session
	c.resetLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.presenter.Render(snap)
	lang := c.lang()
	c.notify(NoticeInfo, i18n.T(lang, i18n.SavingDetails))

	ctx := c.ctx
	entry := c.newEntry(sess, end, note, domain.OutcomeFinished)
	entry.ElapsedSeconds = sess.ElapsedSeconds

	if sess.Mode == domain.ModeWork {
		err := c.api.EndTaskSession(ctx, backend.EndSessionRequest{
			Email:   c.identity.Email,
			StaffID: string(c.identity.StaffID),
			TaskID:  sess.TaskID,
			EndTime: end.Unix(),
			Note:    note,
		})
		addCall(entry, backend.PathEndTaskSession, err)
		if err != nil {
			c.logger.Error("end_task_session_failed", "task_id", sess.TaskID, "error", err)
			c.notify(NoticeError, i18n.T(lang, i18n.DetailsFailed))
		} else {
			c.notify(NoticeSuccess, i18n.T(lang, i18n.DetailsSaved))
		}
	}

	sheet := c.timesheetEntry(sess, end, note)
	err := c.api.InsertUserTimesheet(ctx, []backend.TimesheetEntry{sheet})
	addCall(entry, backend.PathInsertUserTimesheet, err)
	if err != nil {
		c.logger.Error("insert_user_timesheet_failed", "task_id", sess.TaskID, "error", err)
		c.notify(NoticeError, i18n.T(lang, i18n.TimesheetFailed))
	} else {
		c.notify(NoticeSuccess, i18n.T(lang, i18n.TimesheetSent))
		if sess.Mode == domain.ModeWork {
			err := c.api.SendTimesheetEmail(ctx, backend.TimesheetEmailRequest{
				Email:     c.identity.Email,
				Timesheet: sheet,
			})
			addCall(entry, backend.PathSendTimesheetEmail, err)
			if err != nil {
				c.logger.Error("send_timesheet_email_failed", "error", err)
				c.notify(NoticeError, i18n.T(lang, i18n.TimesheetFailed))
			}
		}
	}

	c.stopRecording(ctx)
	c.record(ctx, entry)
	c.logger.Info("session_finished",
		"mode", sess.Mode, "task_id", sess.TaskID, "elapsed_seconds", sess.ElapsedSeconds, "synced", entry.Synced())
	return nil
}

// CancelIdle aborts a pending idle auto-save and resumes the session with a
// fresh start time.
func (c *Controller) CancelIdle() error {
	c.mu.Lock()
	if c.state != domain.StatePaused {
		c.mu.Unlock()
		return ErrNotPaused
	}
	stopTimer(&c.idleGrace)
	c.idle = nil

	gen := c.generation
	c.session.StartTimeUnix = c.clock.Now().Unix()
	c.session.ElapsedSeconds = 0
	c.session.Running = true
	c.state = domain.StateRunning
	c.tick = c.clock.Every(c.settings.TickInterval, func() { c.onTick(gen) })
	sess := c.session
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.presenter.Render(snap)
	c.notify(NoticeSuccess, i18n.T(c.lang(), i18n.IdleCancelled))
	c.logger.Info("idle_cancelled", "task_id", sess.TaskID, "start_time", sess.StartTimeUnix)
	c.registerStart(sess)
	return nil
}

// Break pauses a running session. The elapsed time is kept, the idle poll
// skips the session and activity records report it as idle until Resume.
func (c *Controller) Break() error {
	c.mu.Lock()
	if c.state != domain.StateRunning {
		c.mu.Unlock()
		return ErrNotRunning
	}
	stopTimer(&c.tick)
	c.session.Running = false
	c.state = domain.StateBreak
	sess := c.session
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.presenter.Render(snap)
	c.notify(NoticeInfo, i18n.T(c.lang(), i18n.BreakStarted))
	c.logger.Info("break_started", "task_id", sess.TaskID, "elapsed_seconds", sess.ElapsedSeconds)
	return nil
}

// Resume ends a break. The session keeps its start time; no backend call
// is made since the backend never learned of the break.
func (c *Controller) Resume() error {
	c.mu.Lock()
	if c.state != domain.StateBreak {
		c.mu.Unlock()
		return ErrNotOnBreak
	}
	gen := c.generation
	c.session.Running = true
	c.state = domain.StateRunning
	c.tick = c.clock.Every(c.settings.TickInterval, func() { c.onTick(gen) })
	sess := c.session
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.presenter.Render(snap)
	c.notify(NoticeInfo, i18n.T(c.lang(), i18n.BreakEnded))
	c.logger.Info("break_ended", "task_id", sess.TaskID, "elapsed_seconds", sess.ElapsedSeconds)
	return nil
}

// Shutdown flushes the active session before the client exits and releases
// every timer. A running or on-break session is saved with ExitNote; a paused one is
// auto-saved immediately instead of waiting out the grace delay. Failures
// are only logged.
func (c *Controller) Shutdown(ctx context.Context) {
	c.mu.Lock()
	state, gen := c.state, c.generation
	c.mu.Unlock()

	switch state {
	case domain.StateRunning, domain.StateBreak:
		c.exitSave(ctx)
	case domain.StatePaused:
		c.autoIdleSubmit(ctx, gen)
	}
	c.Close()
}

// Close stops every timer, including the idle poll, and cancels in-flight
// timer-driven calls. It does not save the session; see Shutdown.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopAllLocked()
	stopTimer(&c.idlePoll)
	c.cancel()
}

func (c *Controller) exitSave(ctx context.Context) {
	c.mu.Lock()
	if !c.openLocked() {
		c.mu.Unlock()
		return
	}
	end := c.clock.Now()
	sess := c.session
	c.resetLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.presenter.Render(snap)
	entry := c.newEntry(sess, end, ExitNote, domain.OutcomeExitSaved)
	entry.ElapsedSeconds = sess.ElapsedSeconds

	var err error
	if sess.Mode == domain.ModeWork {
		err = c.api.EndTaskSession(ctx, backend.EndSessionRequest{
			Email:   c.identity.Email,
			StaffID: string(c.identity.StaffID),
			TaskID:  sess.TaskID,
			EndTime: end.Unix(),
			Note:    ExitNote,
		})
		addCall(entry, backend.PathEndTaskSession, err)
	} else {
		err = c.api.StoreLogoutTime(ctx, backend.LogoutTimeRequest{
			Email:         c.identity.Email,
			StaffID:       string(c.identity.StaffID),
			TotalDuration: formatDuration(sess.ElapsedSeconds),
			TotalSeconds:  sess.ElapsedSeconds,
			Meetings:      []backend.MeetingRecord{{DurationSeconds: sess.ElapsedSeconds, Notes: ExitNote}},
		})
		addCall(entry, backend.PathStoreLogoutTime, err)
	}
	if err != nil {
		c.logger.Error("exit_save_failed", "mode", sess.Mode, "task_id", sess.TaskID, "error", err)
	}

	c.stopRecording(ctx)
	c.record(ctx, entry)
	c.logger.Info("session_exit_saved", "mode", sess.Mode, "elapsed_seconds", sess.ElapsedSeconds)
}

func (c *Controller) onTick(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.state != domain.StateRunning {
		c.mu.Unlock()
		return
	}
	c.session.ElapsedSeconds++
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.presenter.Render(snap)
}

// pollIdle runs for the controller lifetime. Meeting sessions are never
// checked for idleness.
func (c *Controller) pollIdle() {
	c.mu.Lock()
	if c.closed || c.state != domain.StateRunning || c.session.Mode != domain.ModeWork {
		c.mu.Unlock()
		return
	}
	gen := c.generation
	c.mu.Unlock()

	idle, err := c.api.CheckIdleState(c.ctx)
	if err != nil {
		c.logger.Debug("check_idle_state_failed", "error", err)
		return
	}
	if idle {
		c.enterIdle(gen)
	}
}

func (c *Controller) enterIdle(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.state != domain.StateRunning {
		c.mu.Unlock()
		return
	}
	now := c.clock.Now()
	stopTimer(&c.tick)
	c.session.Running = false
	c.session.ElapsedSeconds = 0
	c.idle = &domain.IdleEvent{TriggeredAt: now}
	c.state = domain.StatePaused
	ctx := c.ctx
	c.idleGrace = c.clock.AfterFunc(c.settings.IdleGraceDelay, func() { c.autoIdleSubmit(ctx, gen) })
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.presenter.Render(snap)
	lang := c.lang()
	c.presenter.Notify(Notice{
		Level:    NoticeWarning,
		Message:  i18n.T(lang, i18n.IdleTitle) + " " + i18n.T(lang, i18n.IdleDesc),
		Blocking: true,
	})
	c.logger.Info("idle_detected", "triggered_at_ms", now.UnixMilli())
}

// autoIdleSubmit saves a paused session with an end time backdated by the
// idle grace. Recording and activity capture stop whatever the backend
// answers.
func (c *Controller) autoIdleSubmit(ctx context.Context, gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.state != domain.StatePaused || c.idle == nil {
		c.mu.Unlock()
		return
	}
	sess := c.session
	trigger := c.idle.TriggeredAt
	sub := ComputeIdleSubmission(trigger.UnixMilli(), sess.StartTimeUnix, c.settings.IdleGraceSeconds)
	c.resetLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.presenter.Render(snap)
	lang := c.lang()
	note := i18n.IdleNote(lang, sub.MinutesWorked, sub.IdleGraceSeconds)

	c.stopRecording(ctx)
	err := c.api.EndTaskSession(ctx, backend.EndSessionRequest{
		Email:   c.identity.Email,
		StaffID: string(c.identity.StaffID),
		TaskID:  sess.TaskID,
		EndTime: sub.EndTime,
		Note:    note,
	})

	entry := c.newEntry(sess, time.Unix(sub.EndTime, 0), note, domain.OutcomeIdleSaved)
	if sub.DurationWorked > 0 {
		entry.ElapsedSeconds = int(sub.DurationWorked)
	}
	addCall(entry, backend.PathEndTaskSession, err)
	c.record(ctx, entry)

	if err != nil {
		c.logger.Error("idle_auto_save_failed", "task_id", sess.TaskID, "end_time", sub.EndTime, "error", err)
		c.notify(NoticeError, i18n.T(lang, i18n.IdleAutoSaveFailed))
		return
	}
	c.logger.Info("idle_auto_saved",
		"task_id", sess.TaskID, "end_time", sub.EndTime, "minutes_worked", sub.MinutesWorked)
	c.notify(NoticeSuccess, i18n.T(lang, i18n.IdleAutoSaved))
}

func (c *Controller) captureActivity(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.generation || c.state == domain.StateIdle || c.session.TaskID == "" {
		c.mu.Unlock()
		return
	}
	sess := c.session
	req := backend.ActivityLogRequest{
		Email:        c.identity.Email,
		StaffID:      string(c.identity.StaffID),
		TaskID:       sess.TaskID,
		ProjectName:  sess.ProjectName,
		TaskName:     sess.TaskName,
		Timestamp:    c.clock.Now().UTC().Format(isoMillis),
		ActivityType: activityType(sess),
		TimerSeconds: sess.ElapsedSeconds,
	}
	ctx := c.ctx
	c.mu.Unlock()

	if err := c.api.CaptureActivityLog(ctx, req); err != nil {
		c.logger.Warn("capture_activity_log_failed", "task_id", req.TaskID, "error", err)
	}
}

func (c *Controller) registerStart(sess domain.Session) {
	if sess.Mode != domain.ModeWork {
		return
	}
	err := c.api.StartTaskSession(c.ctx, backend.StartSessionRequest{
		Email:     c.identity.Email,
		StaffID:   string(c.identity.StaffID),
		TaskID:    sess.TaskID,
		StartTime: sess.StartTimeUnix,
	})
	if err != nil {
		c.logger.Warn("start_task_session_failed", "task_id", sess.TaskID, "error", err)
		c.notify(NoticeWarning, i18n.T(c.lang(), i18n.StartFailed))
	}
}

func (c *Controller) stopRecording(ctx context.Context) {
	if err := c.api.StopScreenRecording(ctx); err != nil {
		c.logger.Warn("stop_screen_recording_failed", "error", err)
	}
}

func (c *Controller) record(ctx context.Context, e *domain.JournalEntry) {
	if c.journal == nil {
		return
	}
	if err := c.journal.Record(ctx, e); err != nil {
		c.logger.Error("journal_record_failed", "outcome", e.Outcome, "error", err)
	}
}

func (c *Controller) newEntry(sess domain.Session, end time.Time, note string, outcome domain.SessionOutcome) *domain.JournalEntry {
	return &domain.JournalEntry{
		Mode:        sess.Mode,
		TaskID:      sess.TaskID,
		ProjectName: sess.ProjectName,
		TaskName:    sess.TaskName,
		StartedAt:   time.Unix(sess.StartTimeUnix, 0).UTC(),
		EndedAt:     end.UTC(),
		Note:        note,
		Outcome:     outcome,
	}
}

func (c *Controller) timesheetEntry(sess domain.Session, end time.Time, note string) backend.TimesheetEntry {
	entry := backend.TimesheetEntry{
		TaskID:     sess.TaskID,
		StartTime:  time.Unix(sess.StartTimeUnix, 0).In(end.Location()).Format(time.TimeOnly),
		EndTime:    end.Format(time.TimeOnly),
		StaffID:    string(c.identity.StaffID),
		HourlyRate: c.settings.HourlyRate,
		Note:       note,
		Email:      c.identity.Email,
	}
	if sess.Mode == domain.ModeMeeting {
		entry.Meetings = []backend.MeetingRecord{{DurationSeconds: sess.ElapsedSeconds, Notes: note}}
	}
	return entry
}

// openLocked reports whether a session can be finished or exit-saved.
func (c *Controller) openLocked() bool {
	return c.state == domain.StateRunning || c.state == domain.StateBreak
}

// resetLocked ends the session locally: every session timer is released,
// the elapsed count is zeroed and stale callbacks are invalidated.
func (c *Controller) resetLocked() {
	c.stopAllLocked()
	c.state = domain.StateIdle
	c.session = domain.Session{Mode: c.mode}
	c.idle = nil
	c.generation++
}

func (c *Controller) stopAllLocked() {
	stopTimer(&c.tick)
	stopTimer(&c.idleGrace)
	stopTimer(&c.activityLog)
}

func (c *Controller) snapshotLocked() Snapshot {
	lang := c.lang()
	s := Snapshot{
		State:          c.state,
		Mode:           c.mode,
		TaskID:         c.session.TaskID,
		ProjectName:    c.session.ProjectName,
		TaskName:       c.session.TaskName,
		StartTimeUnix:  c.session.StartTimeUnix,
		ElapsedSeconds: c.session.ElapsedSeconds,
		Running:        c.session.Running,
		Clock:          i18n.Clock(c.session.ElapsedSeconds),
		Summary:        i18n.Summary(lang, c.session.ElapsedSeconds),
		Logging:        i18n.T(lang, i18n.LoggingNo),
		ShowPickers:    c.mode == domain.ModeWork,
		Language:       lang,
	}
	if c.session.Running {
		s.Logging = i18n.T(lang, i18n.LoggingYes)
	}
	switch {
	case c.state == domain.StatePaused:
		s.StateLabel = i18n.T(lang, i18n.Idle)
	case c.state == domain.StateBreak:
		s.StateLabel = i18n.T(lang, i18n.Break)
	case c.mode == domain.ModeMeeting:
		s.StateLabel = i18n.T(lang, i18n.Meeting)
	default:
		s.StateLabel = i18n.T(lang, i18n.Work)
	}
	if c.idle != nil {
		s.IdleDeadline = c.idle.TriggeredAt.Add(c.settings.IdleGraceDelay)
	}
	return s
}

func (c *Controller) lang() string {
	if l := c.language(); i18n.Supported(l) {
		return l
	}
	return domain.LangEnglish
}

func (c *Controller) notify(level NoticeLevel, msg string) {
	c.presenter.Notify(Notice{Level: level, Message: msg})
}

// reject reports a validation failure as a blocking notice.
func (c *Controller) reject(err error) {
	lang := c.lang()
	msg := err.Error()
	switch err {
	case ErrNoTaskSelected:
		msg = i18n.T(lang, i18n.SelectTaskFirst)
	case ErrModeLocked:
		msg = i18n.T(lang, i18n.ModeLocked)
	case ErrMinimumWork:
		msg = i18n.T(lang, i18n.MinWorkWarning)
	case ErrEmptyNote:
		msg = i18n.T(lang, i18n.EnterDetails)
	}
	c.presenter.Notify(Notice{Level: NoticeError, Message: msg, Blocking: true})
}

func activityType(sess domain.Session) domain.ActivityType {
	switch {
	case !sess.Running:
		return domain.ActivityIdle
	case sess.Mode == domain.ModeMeeting:
		return domain.ActivityMeeting
	default:
		return domain.ActivityWorking
	}
}

func addCall(e *domain.JournalEntry, endpoint string, err error) {
	call := domain.CallOutcome{Endpoint: endpoint, Success: err == nil}
	if err != nil {
		call.Error = err.Error()
	}
	e.Calls = append(e.Calls, call)
}

func stopTimer(t *clock.Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}

func formatDuration(seconds int) string {
	return fmt.Sprintf("%dh %dm %ds", seconds/3600, (seconds%3600)/60, seconds%60)
}
