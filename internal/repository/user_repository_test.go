package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressfeed/internal/model"
	"pressfeed/internal/repository"
)

func TestUserRepository_Create_DuplicateLogin(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	first := &model.User{Login: "alice", PasswordHash: "digest-one"}
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, &model.User{Login: "alice", PasswordHash: "digest-two"})
	assert.ErrorIs(t, err, repository.ErrDuplicateLogin)

	// First row untouched by the conflicting insert.
	stored, err := repo.GetByLogin(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "digest-one", stored.PasswordHash)
}

func TestUserRepository_GetByLogin_Absent(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)

	user, err := repo.GetByLogin(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_ExistsByLogin(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	exists, err := repo.ExistsByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(ctx, &model.User{Login: "alice", PasswordHash: "digest"}))

	exists, err = repo.ExistsByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_SwapPasswordHash(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Login: "alice", PasswordHash: "old-digest"}))

	err := repo.SwapPasswordHash(ctx, "alice", func(currentHash string) (string, error) {
		assert.Equal(t, "old-digest", currentHash)
		return "new-digest", nil
	})
	require.NoError(t, err)

	stored, err := repo.GetByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "new-digest", stored.PasswordHash)
}

func TestUserRepository_SwapPasswordHash_VerifyErrorRollsBack(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Login: "alice", PasswordHash: "old-digest"}))

	wantErr := errors.New("old password mismatch")
	err := repo.SwapPasswordHash(ctx, "alice", func(string) (string, error) {
		return "", wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	stored, err := repo.GetByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "old-digest", stored.PasswordHash, "digest unchanged after rollback")
}

func TestUserRepository_SwapPasswordHash_UnknownLogin(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)

	err := repo.SwapPasswordHash(context.Background(), "nobody", func(string) (string, error) {
		t.Fatal("verify must not run for an unknown login")
		return "", nil
	})
	assert.ErrorIs(t, err, repository.ErrUnknownLogin)
}

func TestUserRepository_UpdateDescription(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Login: "alice", PasswordHash: "digest"}))

	require.NoError(t, repo.UpdateDescription(ctx, "alice", "writes about Go"))

	stored, err := repo.GetByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "writes about Go", stored.Description)

	err = repo.UpdateDescription(ctx, "nobody", "whatever")
	assert.ErrorIs(t, err, repository.ErrUnknownLogin)
}
