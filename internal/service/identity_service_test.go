package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/focuspro/internal/domain"
	"github.com/alexanderramin/focuspro/internal/repository"
	"github.com/alexanderramin/focuspro/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityService(t *testing.T) (IdentityService, *repository.SQLiteClientStateRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	state := repository.NewSQLiteClientStateRepo(database)
	return NewIdentityService(state, testutil.NewTestUoW(database)), state
}

func TestIdentityService_LoginAndCurrent(t *testing.T) {
	svc, state := newIdentityService(t)
	ctx := context.Background()

	u := testutil.NewTestIdentity(testutil.WithEmail("ada@example.com"), testutil.WithStaffID("42"),
		testutil.WithName("Ada", "Lovelace"))
	require.NoError(t, svc.Login(ctx, u, "tr"))

	got, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, *u, *got)
	assert.Equal(t, "Ada Lovelace", got.FullName())

	lang, err := svc.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tr", lang)

	raw, err := state.Get(ctx, repository.KeyUser)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"ada@example.com","staffid":"42","firstName":"Ada","lastName":"Lovelace"}`, raw)
}

func TestIdentityService_LoginValidation(t *testing.T) {
	svc, _ := newIdentityService(t)
	ctx := context.Background()

	err := svc.Login(ctx, &domain.UserIdentity{Email: "a@b.c"}, "en")
	assert.ErrorIs(t, err, ErrInvalidIdentity)

	err = svc.Login(ctx, testutil.NewTestIdentity(), "de")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)

	_, err = svc.Current(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestIdentityService_LoginDefaultsToEnglish(t *testing.T) {
	svc, _ := newIdentityService(t)
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, testutil.NewTestIdentity(), ""))
	lang, err := svc.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LangEnglish, lang)
}

func TestIdentityService_NumericStaffIDFromBackend(t *testing.T) {
	svc, state := newIdentityService(t)
	ctx := context.Background()

	require.NoError(t, state.Set(ctx, repository.KeyUser, `{"email":"ada@example.com","staffid":42}`))

	got, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StaffID("42"), got.StaffID)
}

func TestIdentityService_CorruptStoredIdentity(t *testing.T) {
	svc, state := newIdentityService(t)
	ctx := context.Background()

	require.NoError(t, state.Set(ctx, repository.KeyUser, `{not json`))
	_, err := svc.Current(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotLoggedIn)
}

func TestIdentityService_SetLanguage(t *testing.T) {
	svc, state := newIdentityService(t)
	ctx := context.Background()

	lang, err := svc.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LangEnglish, lang, "english until a language is chosen")

	require.NoError(t, svc.SetLanguage(ctx, " TR "))
	lang, err = svc.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tr", lang)

	assert.ErrorIs(t, svc.SetLanguage(ctx, "xx"), ErrUnsupportedLanguage)

	require.NoError(t, state.Set(ctx, repository.KeySelectedLanguage, "xx"))
	lang, err = svc.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LangEnglish, lang, "unknown stored values fall back")
}

func TestIdentityService_LogoutClearsEverything(t *testing.T) {
	svc, state := newIdentityService(t)
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, testutil.NewTestIdentity(), "tr"))
	require.NoError(t, svc.Logout(ctx))

	_, err := svc.Current(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = state.Get(ctx, repository.KeySelectedLanguage)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
