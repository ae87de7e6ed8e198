package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilestore/storefront/internal/auth"
	"github.com/mobilestore/storefront/internal/model"
)

func TestManagerStartsLoadingUnauthenticated(t *testing.T) {
	e := newEnv(t)
	m := auth.NewManager(e.service)

	assert.True(t, m.Loading())
	assert.False(t, m.IsAuthenticated())
	_, ok := m.User()
	assert.False(t, ok)
}

func TestManagerRehydrateWithoutSession(t *testing.T) {
	e := newEnv(t)
	m := auth.NewManager(e.service)

	m.Rehydrate(context.Background())

	assert.False(t, m.Loading())
	assert.False(t, m.IsAuthenticated())
}

func TestManagerRehydrateWithValidSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, _, err := e.service.Register(ctx, registerData("rehydrate@example.com"))
	require.NoError(t, err)

	m := auth.NewManager(e.service)
	m.Rehydrate(ctx)

	assert.False(t, m.Loading())
	user, ok := m.User()
	require.True(t, ok)
	assert.Equal(t, "rehydrate@example.com", user.Email)
}

func TestManagerRehydrateWithStaleTokenClearsSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	// A token the backend never issued looks like an expired session.
	require.NoError(t, e.sessions.Save(model.Tokens{Access: "stale-garbage", Refresh: "ref"}))

	m := auth.NewManager(e.service)
	m.Rehydrate(ctx)

	assert.False(t, m.Loading())
	assert.False(t, m.IsAuthenticated())
	assert.False(t, e.sessions.IsAuthenticated(), "stale session must be cleared")
}

func TestManagerLoginAndLogout(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, _, err := e.service.Register(ctx, registerData("mgr@example.com"))
	require.NoError(t, err)
	require.NoError(t, e.service.Logout())

	m := auth.NewManager(e.service)

	err = m.Login(ctx, model.Credentials{Email: "mgr@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.False(t, m.IsAuthenticated(), "failed login must not change state")

	err = m.Login(ctx, model.Credentials{Email: "mgr@example.com", Password: "correct-horse-9"})
	require.NoError(t, err)
	require.True(t, m.IsAuthenticated())

	require.NoError(t, m.Logout())
	assert.False(t, m.IsAuthenticated())
	assert.False(t, e.sessions.IsAuthenticated())
}

func TestManagerRegisterAdoptsUser(t *testing.T) {
	e := newEnv(t)
	m := auth.NewManager(e.service)

	require.NoError(t, m.Register(context.Background(), registerData("adopt@example.com")))

	user, ok := m.User()
	require.True(t, ok)
	assert.Equal(t, "adopt@example.com", user.Email)
}

func TestManagerUpdateUserReplacesValue(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	m := auth.NewManager(e.service)

	require.NoError(t, m.Register(ctx, registerData("replace@example.com")))

	name := "Grace Hopper"
	require.NoError(t, m.UpdateUser(ctx, model.ProfileUpdate{Name: &name}))

	user, ok := m.User()
	require.True(t, ok)
	assert.Equal(t, "Grace Hopper", user.Name)
	assert.Equal(t, "replace@example.com", user.Email)
}
