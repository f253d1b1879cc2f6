package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/focuspro/internal/domain"
	"github.com/alexanderramin/focuspro/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteJournalRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	e := testutil.NewTestJournalEntry("55",
		testutil.WithCall("/end_task_session", nil),
		testutil.WithCall("/insert_user_timesheet", errors.New("timeout")),
	)
	e.CreatedAt = e.EndedAt
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.TaskID, got.TaskID)
	assert.Equal(t, domain.ModeWork, got.Mode)
	assert.Equal(t, domain.OutcomeFinished, got.Outcome)
	assert.Equal(t, 600, got.ElapsedSeconds)
	assert.True(t, e.StartedAt.Equal(got.StartedAt))
	assert.True(t, e.EndedAt.Equal(got.EndedAt))
	assert.Equal(t, e.Calls, got.Calls)
	assert.False(t, got.Synced())
}

func TestJournalRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteJournalRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJournalRepo_ListRecentNewestFirst(t *testing.T) {
	repo := NewSQLiteJournalRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	old := testutil.NewTestJournalEntry("1", testutil.WithStartedAt(now.Add(-3*time.Hour)))
	mid := testutil.NewTestJournalEntry("2", testutil.WithStartedAt(now.Add(-2*time.Hour)),
		testutil.WithCall("/end_task_session", nil))
	newest := testutil.NewTestJournalEntry("3", testutil.WithStartedAt(now.Add(-1*time.Hour)),
		testutil.WithEntryMode(domain.ModeMeeting))
	for _, e := range []*domain.JournalEntry{old, mid, newest} {
		require.NoError(t, repo.Create(ctx, e))
	}

	list, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newest.ID, list[0].ID)
	assert.Equal(t, domain.ModeMeeting, list[0].Mode)
	assert.Equal(t, mid.ID, list[1].ID)
	assert.Len(t, list[1].Calls, 1)

	all, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3, "non-positive limit lists everything")
}

func TestJournalRepo_ListUnsynced(t *testing.T) {
	repo := NewSQLiteJournalRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	ok := testutil.NewTestJournalEntry("1", testutil.WithCall("/end_task_session", nil))
	failed := testutil.NewTestJournalEntry("2",
		testutil.WithOutcome(domain.OutcomeIdleSaved),
		testutil.WithCall("/end_task_session", errors.New("backend unavailable")))
	require.NoError(t, repo.Create(ctx, ok))
	require.NoError(t, repo.Create(ctx, failed))

	list, err := repo.ListUnsynced(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, failed.ID, list[0].ID)
	assert.Equal(t, "backend unavailable", list[0].Calls[0].Error)
}

func TestJournalRepo_DeleteBefore(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteJournalRepo(database)
	ctx := context.Background()
	now := time.Now().UTC()

	stale := testutil.NewTestJournalEntry("1", testutil.WithStartedAt(now.AddDate(0, 0, -40)),
		testutil.WithCall("/end_task_session", nil))
	fresh := testutil.NewTestJournalEntry("2", testutil.WithStartedAt(now.Add(-time.Hour)))
	require.NoError(t, repo.Create(ctx, stale))
	require.NoError(t, repo.Create(ctx, fresh))

	n, err := repo.DeleteBefore(ctx, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.GetByID(ctx, stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var calls int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM journal_calls`).Scan(&calls))
	assert.Equal(t, 0, calls, "calls cascade with their entry")
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}
