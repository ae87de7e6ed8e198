package auth_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilestore/storefront/internal/api"
	"github.com/mobilestore/storefront/internal/auth"
	"github.com/mobilestore/storefront/internal/errmsg"
	"github.com/mobilestore/storefront/internal/model"
	"github.com/mobilestore/storefront/internal/session"
	"github.com/mobilestore/storefront/internal/stub"
)

type env struct {
	service  *auth.Service
	sessions *session.Store
	backend  *stub.Backend
	server   *httptest.Server
}

func newEnv(t *testing.T) *env {
	t.Helper()

	backend := stub.New("test-secret")
	server := httptest.NewServer(backend.Router)
	t.Cleanup(server.Close)

	sessions, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	client := api.NewClient(server.URL, 5*time.Second, sessions)
	return &env{
		service:  auth.NewService(client, sessions),
		sessions: sessions,
		backend:  backend,
		server:   server,
	}
}

func registerData(email string) model.RegisterData {
	return model.RegisterData{
		Name:      "Ada Lovelace",
		Email:     email,
		Phone:     "+4915112345678",
		Address:   "12 Analytical Way",
		Password:  "correct-horse-9",
		Password2: "correct-horse-9",
	}
}

func TestRegisterEstablishesSession(t *testing.T) {
	e := newEnv(t)

	user, tokens, err := e.service.Register(context.Background(), registerData("ada@example.com"))
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEmpty(t, tokens.Access)
	assert.NotEmpty(t, tokens.Refresh)
	assert.True(t, e.sessions.IsAuthenticated(), "register must log in as a side effect")

	// The established session must be good for authenticated calls.
	me, err := e.service.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)
}

func TestRegisterDuplicateEmailFieldError(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, _, err := e.service.Register(ctx, registerData("dup@example.com"))
	require.NoError(t, err)
	require.NoError(t, e.service.Logout())

	_, _, err = e.service.Register(ctx, registerData("dup@example.com"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrLoginAfterRegister)

	fields := errmsg.FieldErrors(err)
	assert.Equal(t, errmsg.MsgEmailTaken, fields["email"])
	assert.False(t, e.sessions.IsAuthenticated())
}

func TestRegisterPasswordMismatchFieldError(t *testing.T) {
	e := newEnv(t)

	data := registerData("mismatch@example.com")
	data.Password2 = "something-else-9"
	_, _, err := e.service.Register(context.Background(), data)
	require.Error(t, err)

	fields := errmsg.FieldErrors(err)
	assert.Equal(t, "Password fields didn't match.", fields["password"])
}

func TestLoginPersistsTokens(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, _, err := e.service.Register(ctx, registerData("login@example.com"))
	require.NoError(t, err)
	require.NoError(t, e.service.Logout())
	require.False(t, e.sessions.IsAuthenticated())

	tokens, err := e.service.Login(ctx, model.Credentials{Email: "login@example.com", Password: "correct-horse-9"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.Access)

	stored, ok := e.sessions.AccessToken()
	require.True(t, ok)
	assert.Equal(t, tokens.Access, stored)
}

func TestLoginWrongPasswordHidesAccountExistence(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, _, err := e.service.Register(ctx, registerData("secret@example.com"))
	require.NoError(t, err)
	require.NoError(t, e.service.Logout())

	_, err = e.service.Login(ctx, model.Credentials{Email: "secret@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, errmsg.MsgInvalidCredentials, errmsg.Summary(err))

	// Unknown email yields the exact same message.
	_, err = e.service.Login(ctx, model.Credentials{Email: "ghost@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, errmsg.MsgInvalidCredentials, errmsg.Summary(err))
}

func TestLogoutIsLocalAndClearsSession(t *testing.T) {
	e := newEnv(t)

	_, _, err := e.service.Register(context.Background(), registerData("out@example.com"))
	require.NoError(t, err)

	require.NoError(t, e.service.Logout())
	assert.False(t, e.sessions.IsAuthenticated())
	assert.False(t, e.service.IsAuthenticated())
}

func TestCurrentUserWithoutSession(t *testing.T) {
	e := newEnv(t)

	_, err := e.service.CurrentUser(context.Background())
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
}

func TestUpdateProfilePartial(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, _, err := e.service.Register(ctx, registerData("update@example.com"))
	require.NoError(t, err)

	address := "99 New Street"
	updated, err := e.service.UpdateProfile(ctx, model.ProfileUpdate{Address: &address})
	require.NoError(t, err)

	// Omitted fields stay untouched.
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "99 New Street", updated.Address)
}

func TestChangePassword(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, _, err := e.service.Register(ctx, registerData("pw@example.com"))
	require.NoError(t, err)

	err = e.service.ChangePassword(ctx, model.PasswordChange{
		OldPassword:  "correct-horse-9",
		NewPassword:  "new-horse-10",
		NewPassword2: "new-horse-10",
	})
	require.NoError(t, err)

	require.NoError(t, e.service.Logout())
	_, err = e.service.Login(ctx, model.Credentials{Email: "pw@example.com", Password: "new-horse-10"})
	require.NoError(t, err)
}
