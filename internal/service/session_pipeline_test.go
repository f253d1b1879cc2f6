package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/focuspro/internal/backend"
	"github.com/alexanderramin/focuspro/internal/backend/devserver"
	"github.com/alexanderramin/focuspro/internal/clock"
	"github.com/alexanderramin/focuspro/internal/domain"
	"github.com/alexanderramin/focuspro/internal/repository"
	"github.com/alexanderramin/focuspro/internal/testutil"
	"github.com/alexanderramin/focuspro/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipeline struct {
	server   *devserver.Server
	journal  JournalService
	identity IdentityService
	clock    *clock.Manual
	ctl      *tracker.Controller
}

// newPipeline wires a controller to the HTTP client against the in-process
// backend, with identity and journal on an in-memory database.
func newPipeline(t *testing.T) *pipeline {
	t.Helper()
	srv := devserver.New()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	identity := NewIdentityService(repository.NewSQLiteClientStateRepo(database), uow)
	journal := NewJournalService(repository.NewSQLiteJournalRepo(database), uow)

	ctx := context.Background()
	require.NoError(t, identity.Login(ctx, testutil.NewTestIdentity(testutil.WithStaffID("42")), "en"))
	user, err := identity.Current(ctx)
	require.NoError(t, err)

	clk := clock.NewManual(time.Unix(1_700_000_000, 0))
	ctl := tracker.New(tracker.Options{
		API:      backend.NewClient(ts.URL, 2*time.Second, nil),
		Clock:    clk,
		Journal:  journal,
		Settings: tracker.DefaultSettings(),
		Identity: user,
		Language: func() string {
			lang, _ := identity.Language(context.Background())
			return lang
		},
	})
	t.Cleanup(ctl.Close)

	return &pipeline{server: srv, journal: journal, identity: identity, clock: clk, ctl: ctl}
}

func TestSessionPipeline_FinishJournalsSyncedEntry(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()

	require.NoError(t, p.ctl.Start(testutil.NewTestSelection("55")))
	assert.True(t, p.server.Recording())
	p.clock.Advance(2 * time.Minute)
	require.NoError(t, p.ctl.Finish("reviewed invoices"))
	assert.False(t, p.server.Recording())

	var end backend.EndSessionRequest
	reqs := p.server.Requests(backend.PathEndTaskSession)
	require.Len(t, reqs, 1)
	require.NoError(t, reqs[0].Decode(&end))
	assert.Equal(t, "42", end.StaffID)
	assert.Equal(t, int64(1_700_000_120), end.EndTime)

	entries, err := p.journal.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.OutcomeFinished, entries[0].Outcome)
	assert.Equal(t, 120, entries[0].ElapsedSeconds)
	assert.True(t, entries[0].Synced())
	assert.Len(t, entries[0].Calls, 3)
}

func TestSessionPipeline_IdleSaveFailureIsVisible(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()
	require.NoError(t, p.identity.SetLanguage(ctx, "tr"))
	p.server.FailPath(backend.PathEndTaskSession, http.StatusInternalServerError)

	require.NoError(t, p.ctl.Start(testutil.NewTestSelection("55")))
	p.clock.Advance(5 * time.Minute)
	p.server.SetIdle(true)
	p.clock.Advance(15 * time.Second)

	assert.Equal(t, domain.StateIdle, p.ctl.State())
	assert.False(t, p.server.Recording(), "recording stops even when the save fails")

	unsynced, err := p.journal.Unsynced(ctx, 10)
	require.NoError(t, err)
	require.Len(t, unsynced, 1)
	assert.Equal(t, domain.OutcomeIdleSaved, unsynced[0].Outcome)
	assert.Contains(t, unsynced[0].Note, "dakika")
	assert.Contains(t, unsynced[0].Calls[0].Error, "500")
}
