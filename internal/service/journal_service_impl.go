package service

import (
	"context"
	"time"

	"github.com/alexanderramin/focuspro/internal/db"
	"github.com/alexanderramin/focuspro/internal/domain"
	"github.com/alexanderramin/focuspro/internal/repository"
	"github.com/google/uuid"
)

type journalService struct {
	journal  repository.JournalRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewJournalService(journal repository.JournalRepo, uow db.UnitOfWork, observers ...UseCaseObserver) JournalService {
	return &journalService{journal: journal, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Record stores the entry and its call outcomes in one transaction.
func (s *journalService) Record(ctx context.Context, e *domain.JournalEntry) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "journal-record",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields: map[string]any{
				"outcome": string(e.Outcome),
				"task_id": e.TaskID,
				"synced":  e.Synced(),
			},
		})
	}()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = startedAt
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteJournalRepo(tx).Create(ctx, e)
	})
}

func (s *journalService) Recent(ctx context.Context, limit int) ([]*domain.JournalEntry, error) {
	return s.journal.ListRecent(ctx, limit)
}

func (s *journalService) Unsynced(ctx context.Context, limit int) ([]*domain.JournalEntry, error) {
	return s.journal.ListUnsynced(ctx, limit)
}

// Prune deletes entries that started more than olderThan ago.
func (s *journalService) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	return s.journal.DeleteBefore(ctx, time.Now().UTC().Add(-olderThan))
}
