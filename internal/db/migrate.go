package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillCallSeq(db); err != nil {
		return fmt.Errorf("backfilling journal call order: %w", err)
	}
	return nil
}

// migrateBackfillCallSeq numbers journal calls written before calls carried
// an explicit order. Rows keep their insertion order within an entry.
func migrateBackfillCallSeq(db *sql.DB) error {
	var pending int
	if err := db.QueryRow(`SELECT COUNT(*) FROM journal_calls WHERE seq = 0`).Scan(&pending); err != nil {
		return err
	}
	if pending == 0 {
		return nil
	}
	_, err := db.Exec(`UPDATE journal_calls SET seq = (
		SELECT COUNT(*) FROM journal_calls AS earlier
		WHERE earlier.entry_id = journal_calls.entry_id AND earlier.id <= journal_calls.id
	) WHERE seq = 0`)
	return err
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS client_state (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS session_journal (
		id              TEXT PRIMARY KEY,
		mode            TEXT NOT NULL CHECK(mode IN ('work','meeting')),
		task_id         TEXT NOT NULL,
		project_name    TEXT NOT NULL DEFAULT '',
		task_name       TEXT NOT NULL DEFAULT '',
		started_at      TEXT NOT NULL,
		ended_at        TEXT NOT NULL,
		elapsed_seconds INTEGER NOT NULL DEFAULT 0,
		note            TEXT NOT NULL DEFAULT '',
		outcome         TEXT NOT NULL
		                CHECK(outcome IN ('finished','idle_saved','exit_saved')),
		created_at      TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS journal_calls (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		entry_id TEXT NOT NULL REFERENCES session_journal(id) ON DELETE CASCADE,
		seq      INTEGER NOT NULL DEFAULT 0,
		endpoint TEXT NOT NULL,
		success  INTEGER NOT NULL CHECK(success IN (0,1)),
		error    TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_started ON session_journal(started_at)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_calls_entry ON journal_calls(entry_id)`,

	// Columns added after the first release.
	`ALTER TABLE session_journal ADD COLUMN elapsed_seconds INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE journal_calls ADD COLUMN seq INTEGER NOT NULL DEFAULT 0`,
}
