package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_FirstReleaseSchema upgrades a database created
// before elapsed_seconds and call ordering existed. Existing rows survive,
// new columns get their defaults and legacy calls are numbered in insertion
// order.
func TestMigrate_UpgradePath_FirstReleaseSchema(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	legacy := []string{
		`CREATE TABLE client_state (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE session_journal (
			id           TEXT PRIMARY KEY,
			mode         TEXT NOT NULL CHECK(mode IN ('work','meeting')),
			task_id      TEXT NOT NULL,
			project_name TEXT NOT NULL DEFAULT '',
			task_name    TEXT NOT NULL DEFAULT '',
			started_at   TEXT NOT NULL,
			ended_at     TEXT NOT NULL,
			note         TEXT NOT NULL DEFAULT '',
			outcome      TEXT NOT NULL
			             CHECK(outcome IN ('finished','idle_saved','exit_saved')),
			created_at   TEXT NOT NULL
		)`,
		`CREATE TABLE journal_calls (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			entry_id TEXT NOT NULL REFERENCES session_journal(id) ON DELETE CASCADE,
			endpoint TEXT NOT NULL,
			success  INTEGER NOT NULL CHECK(success IN (0,1)),
			error    TEXT NOT NULL DEFAULT ''
		)`,
		`INSERT INTO client_state (key, value, updated_at) VALUES ('selectedLanguage', 'tr', '2025-12-01T09:00:00Z')`,
		`INSERT INTO session_journal (id, mode, task_id, started_at, ended_at, note, outcome, created_at)
			VALUES ('j1', 'work', '55', '2025-12-01T09:00:00Z', '2025-12-01T10:00:00Z', 'old', 'finished', '2025-12-01T10:00:00Z')`,
		`INSERT INTO journal_calls (entry_id, endpoint, success) VALUES ('j1', '/end_task_session', 1)`,
		`INSERT INTO journal_calls (entry_id, endpoint, success, error) VALUES ('j1', '/insert_user_timesheet', 0, 'timeout')`,
	}
	for _, stmt := range legacy {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	var lang string
	require.NoError(t, db.QueryRow(`SELECT value FROM client_state WHERE key = 'selectedLanguage'`).Scan(&lang))
	assert.Equal(t, "tr", lang)

	var elapsed int
	require.NoError(t, db.QueryRow(`SELECT elapsed_seconds FROM session_journal WHERE id = 'j1'`).Scan(&elapsed))
	assert.Equal(t, 0, elapsed)

	rows, err := db.Query(`SELECT endpoint, seq FROM journal_calls WHERE entry_id = 'j1' ORDER BY seq`)
	require.NoError(t, err)
	defer rows.Close()
	var got []string
	var seqs []int
	for rows.Next() {
		var endpoint string
		var seq int
		require.NoError(t, rows.Scan(&endpoint, &seq))
		got = append(got, endpoint)
		seqs = append(seqs, seq)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"/end_task_session", "/insert_user_timesheet"}, got)
	assert.Equal(t, []int{1, 2}, seqs)

	// A second run is a no-op.
	require.NoError(t, Migrate(db))
}
