package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/focuspro/internal/db"
)

// SQLiteClientStateRepo implements ClientStateRepo using a SQLite database.
type SQLiteClientStateRepo struct {
	db db.DBTX
}

// NewSQLiteClientStateRepo creates a new SQLiteClientStateRepo.
func NewSQLiteClientStateRepo(conn db.DBTX) *SQLiteClientStateRepo {
	return &SQLiteClientStateRepo{db: conn}
}

func (r *SQLiteClientStateRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM client_state WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("client state %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("reading client state %q: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteClientStateRepo) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO client_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("writing client state %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteClientStateRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM client_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting client state %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteClientStateRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM client_state`); err != nil {
		return fmt.Errorf("clearing client state: %w", err)
	}
	return nil
}
