package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/focuspro/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientStateRepo_GetNotFound(t *testing.T) {
	repo := NewSQLiteClientStateRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), KeyUser)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientStateRepo_SetOverwrites(t *testing.T) {
	repo := NewSQLiteClientStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeySelectedLanguage, "en"))
	require.NoError(t, repo.Set(ctx, KeySelectedLanguage, "tr"))

	got, err := repo.Get(ctx, KeySelectedLanguage)
	require.NoError(t, err)
	assert.Equal(t, "tr", got)
}

func TestClientStateRepo_DeleteAndClear(t *testing.T) {
	repo := NewSQLiteClientStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, KeyUser, `{"email":"a@b.c"}`))
	require.NoError(t, repo.Set(ctx, KeySelectedLanguage, "tr"))

	require.NoError(t, repo.Delete(ctx, KeyUser))
	_, err := repo.Get(ctx, KeyUser)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Clear(ctx))
	_, err = repo.Get(ctx, KeySelectedLanguage)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, repo.Delete(ctx, "missing"), "deleting an absent key is not an error")
}
