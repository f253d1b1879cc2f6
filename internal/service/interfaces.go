package service

import (
	"context"
	"time"

	"github.com/alexanderramin/focuspro/internal/domain"
)

// IdentityService manages the persisted client state: the logged-in user and
// the selected language.
type IdentityService interface {
	Login(ctx context.Context, u *domain.UserIdentity, lang string) error
	Current(ctx context.Context) (*domain.UserIdentity, error)
	Language(ctx context.Context) (string, error)
	SetLanguage(ctx context.Context, lang string) error
	// Logout clears every client state key.
	Logout(ctx context.Context) error
}

type JournalService interface {
	Record(ctx context.Context, e *domain.JournalEntry) error
	Recent(ctx context.Context, limit int) ([]*domain.JournalEntry, error)
	Unsynced(ctx context.Context, limit int) ([]*domain.JournalEntry, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}
