package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/focuspro/internal/db"
	"github.com/alexanderramin/focuspro/internal/domain"
)

// SQLiteJournalRepo implements JournalRepo using a SQLite database.
type SQLiteJournalRepo struct {
	db db.DBTX
}

// NewSQLiteJournalRepo creates a new SQLiteJournalRepo.
func NewSQLiteJournalRepo(conn db.DBTX) *SQLiteJournalRepo {
	return &SQLiteJournalRepo{db: conn}
}

const journalColumns = `id, mode, task_id, project_name, task_name, started_at, ended_at,
	elapsed_seconds, note, outcome, created_at`

func (r *SQLiteJournalRepo) Create(ctx context.Context, e *domain.JournalEntry) error {
	query := `INSERT INTO session_journal (` + journalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		string(e.Mode),
		e.TaskID,
		e.ProjectName,
		e.TaskName,
		e.StartedAt.UTC().Format(time.RFC3339),
		e.EndedAt.UTC().Format(time.RFC3339),
		e.ElapsedSeconds,
		e.Note,
		string(e.Outcome),
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}

	for i, c := range e.Calls {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO journal_calls (entry_id, seq, endpoint, success, error) VALUES (?, ?, ?, ?, ?)`,
			e.ID, i+1, c.Endpoint, boolToInt(c.Success), c.Error,
		)
		if err != nil {
			return fmt.Errorf("inserting journal call %s: %w", c.Endpoint, err)
		}
	}
	return nil
}

func (r *SQLiteJournalRepo) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+journalColumns+` FROM session_journal WHERE id = ?`, id)
	e, err := scanJournalEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("journal entry: %w", ErrNotFound)
		}
		return nil, err
	}
	if err := r.attachCalls(ctx, []*domain.JournalEntry{e}); err != nil {
		return nil, err
	}
	return e, nil
}

// ListRecent returns the newest entries first.
func (r *SQLiteJournalRepo) ListRecent(ctx context.Context, limit int) ([]*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM session_journal
		ORDER BY started_at DESC, created_at DESC LIMIT ?`
	return r.list(ctx, query, limit)
}

// ListUnsynced returns entries with at least one failed backend call.
func (r *SQLiteJournalRepo) ListUnsynced(ctx context.Context, limit int) ([]*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM session_journal j
		WHERE EXISTS (SELECT 1 FROM journal_calls c WHERE c.entry_id = j.id AND c.success = 0)
		ORDER BY started_at DESC LIMIT ?`
	return r.list(ctx, query, limit)
}

func (r *SQLiteJournalRepo) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM session_journal WHERE started_at < ?`,
		before.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("pruning journal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning journal: %w", err)
	}
	return n, nil
}

func (r *SQLiteJournalRepo) list(ctx context.Context, query string, limit int) ([]*domain.JournalEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing journal: %w", err)
	}
	entries, err := scanJournalEntries(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachCalls(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// attachCalls loads call outcomes for entries in one query.
func (r *SQLiteJournalRepo) attachCalls(ctx context.Context, entries []*domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	byID := make(map[string]*domain.JournalEntry, len(entries))
	args := make([]any, 0, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
		args = append(args, e.ID)
	}

	query := `SELECT entry_id, endpoint, success, error FROM journal_calls
		WHERE entry_id IN (` + placeholders(len(args)) + `) ORDER BY entry_id, seq`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("loading journal calls: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entryID string
		var c domain.CallOutcome
		var success int
		if err := rows.Scan(&entryID, &c.Endpoint, &success, &c.Error); err != nil {
			return fmt.Errorf("scanning journal call: %w", err)
		}
		c.Success = success == 1
		if e := byID[entryID]; e != nil {
			e.Calls = append(e.Calls, c)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating journal calls: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJournalEntry(row rowScanner) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	var mode, outcome, startedAt, endedAt, createdAt string
	err := row.Scan(
		&e.ID, &mode, &e.TaskID, &e.ProjectName, &e.TaskName,
		&startedAt, &endedAt, &e.ElapsedSeconds, &e.Note, &outcome, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning journal entry: %w", err)
	}
	e.Mode = domain.Mode(mode)
	e.Outcome = domain.SessionOutcome(outcome)

	if e.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if e.EndedAt, err = time.Parse(time.RFC3339, endedAt); err != nil {
		return nil, fmt.Errorf("parsing ended_at: %w", err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &e, nil
}

// scanJournalEntries drains and closes rows.
func scanJournalEntries(rows *sql.Rows) ([]*domain.JournalEntry, error) {
	defer rows.Close()
	var entries []*domain.JournalEntry
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal: %w", err)
	}
	return entries, nil
}

var (
	_ ClientStateRepo = (*SQLiteClientStateRepo)(nil)
	_ JournalRepo     = (*SQLiteJournalRepo)(nil)
)
