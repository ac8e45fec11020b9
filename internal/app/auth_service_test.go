package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressfeed/internal/app"
	"pressfeed/internal/model"
	"pressfeed/internal/repository"
)

type fakeUserStore struct {
	users     map[string]*model.User
	nextID    uint
	swapCalls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	if _, ok := f.users[user.Login]; ok {
		return repository.ErrDuplicateLogin
	}
	f.nextID++
	user.ID = f.nextID
	stored := *user
	f.users[user.Login] = &stored
	return nil
}

func (f *fakeUserStore) GetByLogin(_ context.Context, login string) (*model.User, error) {
	user, ok := f.users[login]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) ExistsByLogin(_ context.Context, login string) (bool, error) {
	_, ok := f.users[login]
	return ok, nil
}

func (f *fakeUserStore) SwapPasswordHash(_ context.Context, login string, verify func(string) (string, error)) error {
	f.swapCalls++
	user, ok := f.users[login]
	if !ok {
		return repository.ErrUnknownLogin
	}
	newHash, err := verify(user.PasswordHash)
	if err != nil {
		return err
	}
	user.PasswordHash = newHash
	return nil
}

func (f *fakeUserStore) UpdateDescription(_ context.Context, login, description string) error {
	user, ok := f.users[login]
	if !ok {
		return repository.ErrUnknownLogin
	}
	user.Description = description
	return nil
}

func newAuthService(store *fakeUserStore) *app.AuthService {
	return app.NewAuthService(store, "test-secret", time.Hour, 4)
}

func TestAuthService_SignUpAndCheckCredentials(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)
	ctx := context.Background()

	result, err := svc.SignUp(ctx, "alice", "password-one", "")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.NotEqual(t, "password-one", result.User.PasswordHash, "password must never be stored in plaintext")

	valid, err := svc.CheckCredentials(ctx, "alice", "password-one")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = svc.CheckCredentials(ctx, "alice", "password-two")
	require.NoError(t, err)
	assert.False(t, valid, "any other password must not verify")
}

func TestAuthService_SignUp_DuplicateLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "alice", "password-one", "")
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "alice", "different-pass", "")
	assert.ErrorIs(t, err, app.ErrLoginExists)

	// The first registration is unaffected by the conflicting one.
	valid, err := svc.CheckCredentials(ctx, "alice", "password-one")
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestAuthService_SignIn(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "alice", "password-one", "")
	require.NoError(t, err)

	result, err := svc.SignIn(ctx, "alice", "password-one")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	_, err = svc.SignIn(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, app.ErrInvalidCredential)

	_, err = svc.SignIn(ctx, "nobody", "password-one")
	assert.ErrorIs(t, err, app.ErrUnknownLogin)
}

func TestAuthService_ChangePassword_SamePassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)
	ctx := context.Background()

	// Rejected regardless of backend state: no user exists yet and the
	// store must not even be consulted.
	err := svc.ChangePassword(ctx, "alice", "password-one", "password-one")
	assert.ErrorIs(t, err, app.ErrSamePassword)
	assert.Zero(t, store.swapCalls)
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "alice", "password-one", "")
	require.NoError(t, err)
	storedHash := store.users["alice"].PasswordHash

	err = svc.ChangePassword(ctx, "alice", "wrong-old", "password-two")
	assert.ErrorIs(t, err, app.ErrPasswordMismatch)
	assert.Equal(t, storedHash, store.users["alice"].PasswordHash, "stored digest must be unchanged")
}

func TestAuthService_ChangePassword_UnknownLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)

	err := svc.ChangePassword(context.Background(), "nobody", "password-one", "password-two")
	assert.ErrorIs(t, err, app.ErrUnknownLogin)
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "alice", "password-one", "")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, "alice", "password-one", "password-two")
	require.NoError(t, err)

	valid, err := svc.CheckCredentials(ctx, "alice", "password-two")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = svc.CheckCredentials(ctx, "alice", "password-one")
	require.NoError(t, err)
	assert.False(t, valid, "old password must stop working")
}

func TestAuthService_CheckLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := newAuthService(store)
	ctx := context.Background()

	exists, err := svc.CheckLogin(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.SignUp(ctx, "alice", "password-one", "")
	require.NoError(t, err)

	exists, err = svc.CheckLogin(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
}
