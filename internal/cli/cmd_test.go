package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/focuspro/internal/backend"
	"github.com/alexanderramin/focuspro/internal/clock"
	"github.com/alexanderramin/focuspro/internal/config"
	"github.com/alexanderramin/focuspro/internal/domain"
	"github.com/alexanderramin/focuspro/internal/repository"
	"github.com/alexanderramin/focuspro/internal/service"
	"github.com/alexanderramin/focuspro/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB and a fake backend.
func testApp(t *testing.T) (*App, *testutil.FakeAPI) {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	api := testutil.NewFakeAPI()

	cfg := config.DefaultConfig()
	cfg.APIEndpoint = "http://backend.test"

	return &App{
		Config:        cfg,
		Identity:      service.NewIdentityService(repository.NewSQLiteClientStateRepo(database), uow),
		Journal:       service.NewJournalService(repository.NewSQLiteJournalRepo(database), uow),
		API:           api,
		Clock:         clock.NewManual(time.Now()),
		IsInteractive: func() bool { return false },
	}, api
}

func loginAda(t *testing.T, app *App) *domain.UserIdentity {
	t.Helper()
	u := &domain.UserIdentity{Email: "ada@example.com", StaffID: "42", FirstName: "Ada", LastName: "Lovelace"}
	require.NoError(t, app.Identity.Login(context.Background(), u, "en"))
	return u
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- login / logout / lang ---

func TestLoginCmd_WithFlags(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "login",
		"--email", "ada@example.com", "--staff-id", "42",
		"--first-name", "Ada", "--last-name", "Lovelace", "--lang", "tr")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Ada Lovelace <ada@example.com>")

	u, err := app.Identity.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StaffID("42"), u.StaffID)

	lang, err := app.Identity.Language(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tr", lang)
}

func TestLoginCmd_MissingFlagsWithoutTerminal(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "login", "--email", "ada@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--staff-id")

	_, err = app.Identity.Current(context.Background())
	assert.ErrorIs(t, err, service.ErrNotLoggedIn)
}

func TestLoginCmd_UnsupportedLanguage(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "login", "--email", "ada@example.com", "--staff-id", "42", "--lang", "de")
	assert.ErrorIs(t, err, service.ErrUnsupportedLanguage)
}

func TestLogoutCmd_ClearsState(t *testing.T) {
	app, _ := testApp(t)
	loginAda(t, app)

	out, err := executeCmd(t, app, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")

	_, err = app.Identity.Current(context.Background())
	assert.ErrorIs(t, err, service.ErrNotLoggedIn)
}

func TestLangCmd(t *testing.T) {
	app, _ := testApp(t)
	loginAda(t, app)

	out, err := executeCmd(t, app, "lang")
	require.NoError(t, err)
	assert.Equal(t, "EN\n", out)

	out, err = executeCmd(t, app, "lang", "TR")
	require.NoError(t, err)
	assert.Equal(t, "TR\n", out)

	_, err = executeCmd(t, app, "lang", "fr")
	assert.ErrorIs(t, err, service.ErrUnsupportedLanguage)

	_, err = executeCmd(t, app, "lang", "en", "tr")
	assert.Error(t, err)
}

// --- projects / tasks ---

func TestProjectsCmd_RequiresLogin(t *testing.T) {
	app, api := testApp(t)

	_, err := executeCmd(t, app, "projects")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrNotLoggedIn)
	assert.Contains(t, err.Error(), "focuspro login")
	assert.Empty(t, api.Calls(""))
}

func TestProjectsCmd_ListsFilteredProjects(t *testing.T) {
	app, api := testApp(t)
	loginAda(t, app)
	api.Projects = []backend.Project{{ID: "7", Name: "Intranet"}, {ID: "9", Name: "Website"}}

	out, err := executeCmd(t, app, "projects")
	require.NoError(t, err)
	assert.Contains(t, out, "Intranet")
	assert.Contains(t, out, "Website")

	calls := api.Calls(backend.PathFilteredProjects)
	require.Len(t, calls, 1)
	assert.Equal(t, backend.ProjectsRequest{Email: "ada@example.com", Username: "Ada Lovelace"}, calls[0].Request)
}

func TestProjectsCmd_CachesProjectList(t *testing.T) {
	app, api := testApp(t)
	loginAda(t, app)
	projects := []backend.Project{{ID: "7", Name: "Intranet"}}
	api.Projects = projects

	_, err := executeCmd(t, app, "projects")
	require.NoError(t, err)

	calls := api.Calls(backend.PathCacheUserProjects)
	require.Len(t, calls, 1)
	assert.Equal(t, backend.CacheProjectsRequest{Email: "ada@example.com", Username: "Ada", Projects: projects}, calls[0].Request)
}

func TestProjectsCmd_CacheFailureIsNotFatal(t *testing.T) {
	app, api := testApp(t)
	loginAda(t, app)
	api.Projects = []backend.Project{{ID: "7", Name: "Intranet"}}
	api.Fail(backend.PathCacheUserProjects, backend.ErrUnavailable)

	out, err := executeCmd(t, app, "projects")
	require.NoError(t, err)
	assert.Contains(t, out, "Intranet")
}

func TestProjectsCmd_EmptyListIsNotCached(t *testing.T) {
	app, api := testApp(t)
	loginAda(t, app)

	_, err := executeCmd(t, app, "projects")
	require.NoError(t, err)
	assert.Len(t, api.Calls(backend.PathFilteredProjects), 1)
	assert.Empty(t, api.Calls(backend.PathCacheUserProjects))
}

func TestProjectsCmd_UsernameKeepsTrailingSpace(t *testing.T) {
	u := &domain.UserIdentity{Email: "x@example.com", StaffID: "1", FirstName: "Ada"}
	assert.Equal(t, "Ada ", projectsRequest(u).Username)
}

func TestProjectsCmd_BackendFailure(t *testing.T) {
	app, api := testApp(t)
	loginAda(t, app)
	api.Fail(backend.PathFilteredProjects, backend.ErrUnavailable)

	_, err := executeCmd(t, app, "projects")
	assert.ErrorIs(t, err, backend.ErrUnavailable)
}

func TestTasksCmd(t *testing.T) {
	app, api := testApp(t)
	loginAda(t, app)
	api.TaskList["7"] = []backend.Task{{ID: "12", Name: "Fix login", Status: "4"}}

	out, err := executeCmd(t, app, "tasks", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Fix login")

	_, err = executeCmd(t, app, "tasks")
	assert.Error(t, err)
}

// --- status ---

func TestStatusCmd_LoggedIn(t *testing.T) {
	app, _ := testApp(t)
	loginAda(t, app)
	require.NoError(t, app.Journal.Record(context.Background(),
		testutil.NewTestJournalEntry("12", testutil.WithCall(backend.PathEndTaskSession, errors.New("status 500")))))

	out, err := executeCmd(t, app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "http://backend.test")
	assert.Contains(t, out, "reachable")
	assert.Contains(t, out, "every 5m 00s")
	assert.Contains(t, out, "1 session(s) not fully saved")
}

func TestStatusCmd_LoggedOutAndUnreachable(t *testing.T) {
	app, api := testApp(t)
	api.Fail(backend.PathScreenshotInterval, backend.ErrUnavailable)

	out, err := executeCmd(t, app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "not logged in")
	assert.Contains(t, out, backend.ErrUnavailable.Error())
}

// --- history ---

func TestHistoryCmd(t *testing.T) {
	app, _ := testApp(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, app.Journal.Record(ctx, testutil.NewTestJournalEntry("12",
		testutil.WithStartedAt(now.Add(-2*time.Hour)))))
	require.NoError(t, app.Journal.Record(ctx, testutil.NewTestJournalEntry("13",
		testutil.WithStartedAt(now.Add(-time.Hour)),
		testutil.WithOutcome(domain.OutcomeIdleSaved),
		testutil.WithCall(backend.PathEndTaskSession, errors.New("status 500")))))

	out, err := executeCmd(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Task 12")
	assert.Contains(t, out, "Task 13")
	assert.Contains(t, out, "idle auto-save")
	assert.Contains(t, out, "end_task_session")

	out, err = executeCmd(t, app, "history", "--unsynced")
	require.NoError(t, err)
	assert.Contains(t, out, "Task 13")
	assert.NotContains(t, out, "Task 12")
}

func TestHistoryCmd_OutcomeFilter(t *testing.T) {
	app, _ := testApp(t)
	ctx := context.Background()

	require.NoError(t, app.Journal.Record(ctx, testutil.NewTestJournalEntry("12")))
	require.NoError(t, app.Journal.Record(ctx, testutil.NewTestJournalEntry("13",
		testutil.WithOutcome(domain.OutcomeExitSaved))))

	out, err := executeCmd(t, app, "history", "--outcome", "exit_saved")
	require.NoError(t, err)
	assert.Contains(t, out, "Task 13")
	assert.NotContains(t, out, "Task 12")

	_, err = executeCmd(t, app, "history", "--outcome", "lost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")
}

func TestHistoryCmd_Prune(t *testing.T) {
	app, _ := testApp(t)
	ctx := context.Background()

	require.NoError(t, app.Journal.Record(ctx, testutil.NewTestJournalEntry("old",
		testutil.WithStartedAt(time.Now().Add(-60*24*time.Hour)))))
	require.NoError(t, app.Journal.Record(ctx, testutil.NewTestJournalEntry("new",
		testutil.WithStartedAt(time.Now().Add(-time.Hour)))))

	out, err := executeCmd(t, app, "history", "--prune", "720h")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 journal entries")

	entries, err := app.Journal.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new", entries[0].TaskID)
}

func TestHistoryCmd_Empty(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded yet.")
}

// --- track ---

func TestTrackCmd_NeedsTerminal(t *testing.T) {
	app, _ := testApp(t)
	loginAda(t, app)

	_, err := executeCmd(t, app, "track", "--meeting")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestTrackCmd_ProjectAndTaskGoTogether(t *testing.T) {
	app, _ := testApp(t)
	app.IsInteractive = func() bool { return true }
	loginAda(t, app)

	_, err := executeCmd(t, app, "track", "--project", "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "together")
}

func TestTrackCmd_RequiresLogin(t *testing.T) {
	app, _ := testApp(t)
	app.IsInteractive = func() bool { return true }

	_, err := executeCmd(t, app, "track", "--meeting")
	assert.ErrorIs(t, err, service.ErrNotLoggedIn)
}

func TestLookupSelection(t *testing.T) {
	app, api := testApp(t)
	u := loginAda(t, app)
	api.Projects = []backend.Project{{ID: "7", Name: "Intranet"}}
	api.TaskList["7"] = []backend.Task{{ID: "12", Name: "Fix login", Status: "4"}}
	ctx := context.Background()

	sel, err := app.lookupSelection(ctx, u, "7", "12")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskSelection{ProjectID: "7", ProjectName: "Intranet", TaskID: "12", TaskName: "Fix login"}, sel)

	_, err = app.lookupSelection(ctx, u, "8", "12")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not assigned")

	_, err = app.lookupSelection(ctx, u, "7", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task 99 not found")
}

// --- feedback ---

func TestFeedbackCmd_SendsMessage(t *testing.T) {
	app, api := testApp(t)
	loginAda(t, app)

	out, err := executeCmd(t, app, "feedback", "the", "timer", "is", "great")
	require.NoError(t, err)
	assert.Contains(t, out, "Feedback sent successfully!")

	calls := api.Calls(backend.PathSubmitFeedback)
	require.Len(t, calls, 1)
	assert.Equal(t, backend.FeedbackRequest{
		Email:    "ada@example.com",
		Username: "Ada Lovelace",
		Message:  "the timer is great",
	}, calls[0].Request)
}

func TestFeedbackCmd_RequiresMessage(t *testing.T) {
	app, api := testApp(t)
	loginAda(t, app)

	_, err := executeCmd(t, app, "feedback", "  ")
	require.EqualError(t, err, "a feedback message is required")
	assert.Empty(t, api.Calls(backend.PathSubmitFeedback))
}

func TestFeedbackCmd_Rejected(t *testing.T) {
	app, api := testApp(t)
	loginAda(t, app)
	api.Fail(backend.PathSubmitFeedback, backend.ErrRejected)

	out, err := executeCmd(t, app, "feedback", "hello")
	assert.ErrorIs(t, err, backend.ErrRejected)
	assert.NotContains(t, out, "Feedback sent")
}
