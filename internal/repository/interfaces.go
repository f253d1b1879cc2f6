package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/focuspro/internal/domain"
)

// Client state keys.
const (
	KeyUser             = "user"
	KeySelectedLanguage = "selectedLanguage"
)

// ClientStateRepo is the local key/value store for per-client state.
type ClientStateRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

type JournalRepo interface {
	// Create inserts the entry and its call outcomes. Callers wrap it in a
	// UnitOfWork so the two tables stay consistent.
	Create(ctx context.Context, e *domain.JournalEntry) error
	GetByID(ctx context.Context, id string) (*domain.JournalEntry, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.JournalEntry, error)
	ListUnsynced(ctx context.Context, limit int) ([]*domain.JournalEntry, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}
