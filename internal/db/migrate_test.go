package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"client_state", "session_journal", "journal_calls"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_journal_started", "idx_journal_calls_entry"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_JournalConstraints(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO session_journal (id, mode, task_id, started_at, ended_at, outcome, created_at)
		VALUES ('j1', 'lunch', 't', '2026-01-01T00:00:00Z', '2026-01-01T00:01:00Z', 'finished', '2026-01-01T00:01:00Z')`)
	assert.Error(t, err, "unknown mode rejected")

	_, err = db.Exec(`INSERT INTO session_journal (id, mode, task_id, started_at, ended_at, outcome, created_at)
		VALUES ('j1', 'work', 't', '2026-01-01T00:00:00Z', '2026-01-01T00:01:00Z', 'lost', '2026-01-01T00:01:00Z')`)
	assert.Error(t, err, "unknown outcome rejected")

	_, err = db.Exec(`INSERT INTO journal_calls (entry_id, seq, endpoint, success) VALUES ('missing', 1, '/x', 1)`)
	assert.Error(t, err, "calls need a journal entry")
}

func TestMigrate_CallsCascadeWithEntry(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO session_journal (id, mode, task_id, started_at, ended_at, outcome, created_at)
		VALUES ('j1', 'work', 't', '2026-01-01T00:00:00Z', '2026-01-01T00:01:00Z', 'finished', '2026-01-01T00:01:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO journal_calls (entry_id, seq, endpoint, success) VALUES ('j1', 1, '/end_task_session', 1)`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM session_journal WHERE id = 'j1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM journal_calls`).Scan(&n))
	assert.Equal(t, 0, n)
}
