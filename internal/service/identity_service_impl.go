package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focuspro/internal/db"
	"github.com/alexanderramin/focuspro/internal/domain"
	"github.com/alexanderramin/focuspro/internal/i18n"
	"github.com/alexanderramin/focuspro/internal/repository"
)

type identityService struct {
	state    repository.ClientStateRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewIdentityService(state repository.ClientStateRepo, uow db.UnitOfWork, observers ...UseCaseObserver) IdentityService {
	return &identityService{state: state, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *identityService) Login(ctx context.Context, u *domain.UserIdentity, lang string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"language": lang}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "login",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if u == nil || !u.Valid() {
		return ErrInvalidIdentity
	}
	if lang == "" {
		lang = domain.LangEnglish
	}
	if !i18n.Supported(lang) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	fields["staff_id"] = string(u.StaffID)

	payload, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding identity: %w", err)
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		state := repository.NewSQLiteClientStateRepo(tx)
		if err := state.Set(ctx, repository.KeyUser, string(payload)); err != nil {
			return err
		}
		return state.Set(ctx, repository.KeySelectedLanguage, lang)
	})
}

func (s *identityService) Current(ctx context.Context) (*domain.UserIdentity, error) {
	raw, err := s.state.Get(ctx, repository.KeyUser)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	var u domain.UserIdentity
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("decoding stored identity: %w", err)
	}
	if !u.Valid() {
		return nil, ErrNotLoggedIn
	}
	return &u, nil
}

// Language returns the selected language, English when none is stored.
func (s *identityService) Language(ctx context.Context) (string, error) {
	lang, err := s.state.Get(ctx, repository.KeySelectedLanguage)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.LangEnglish, nil
		}
		return "", err
	}
	if !i18n.Supported(lang) {
		return domain.LangEnglish, nil
	}
	return lang, nil
}

func (s *identityService) SetLanguage(ctx context.Context, lang string) error {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if !i18n.Supported(lang) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	return s.state.Set(ctx, repository.KeySelectedLanguage, lang)
}

func (s *identityService) Logout(ctx context.Context) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "logout",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
		})
	}()
	return s.state.Clear(ctx)
}
