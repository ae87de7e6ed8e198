package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/mobilestore/storefront/internal/api"
	"github.com/mobilestore/storefront/internal/model"
	"github.com/mobilestore/storefront/internal/session"
)

// ErrLoginAfterRegister marks the inconsistency window where the account
// was created but the follow-up login failed. Callers can distinguish this
// from a rejected registration with errors.Is.
var ErrLoginAfterRegister = errors.New("account created but login failed")

// Service maps authentication and profile operations to their REST calls.
// It holds no state beyond its collaborators.
type Service struct {
	client   *api.Client
	sessions *session.Store
}

// NewService creates a new auth service
func NewService(client *api.Client, sessions *session.Store) *Service {
	return &Service{client: client, sessions: sessions}
}

// Register creates an account and immediately logs in with the same
// credentials; registration alone does not establish a session. There is
// no rollback if the login step fails — see ErrLoginAfterRegister.
func (s *Service) Register(ctx context.Context, data model.RegisterData) (*model.User, model.Tokens, error) {
	var user model.User
	if err := s.client.Post(ctx, "/customers/register/", data, &user); err != nil {
		return nil, model.Tokens{}, err
	}

	tokens, err := s.Login(ctx, model.Credentials{Email: data.Email, Password: data.Password})
	if err != nil {
		return nil, model.Tokens{}, fmt.Errorf("%w: %w", ErrLoginAfterRegister, err)
	}
	return &user, tokens, nil
}

// Login posts credentials and persists the returned token pair in the
// session store before returning it.
func (s *Service) Login(ctx context.Context, creds model.Credentials) (model.Tokens, error) {
	var tokens model.Tokens
	if err := s.client.Post(ctx, "/customers/login/", creds, &tokens); err != nil {
		return model.Tokens{}, err
	}
	if err := s.sessions.Save(tokens); err != nil {
		return model.Tokens{}, fmt.Errorf("persist session: %w", err)
	}
	return tokens, nil
}

// Logout clears the local session. No backend call is made; the server
// holds no session state to invalidate.
func (s *Service) Logout() error {
	return s.sessions.Clear()
}

// CurrentUser fetches the authenticated customer's profile. It fails with
// an authorization error when no valid session exists.
func (s *Service) CurrentUser(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := s.client.Get(ctx, "/customers/profiles/me/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update; omitted fields are left
// unchanged server-side. The server's view of the profile is returned.
func (s *Service) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.User, error) {
	var user model.User
	if err := s.client.Put(ctx, "/customers/profiles/update_profile/", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword changes the current customer's password.
func (s *Service) ChangePassword(ctx context.Context, data model.PasswordChange) error {
	return s.client.Post(ctx, "/customers/profiles/change_password/", data, nil)
}

// IsAuthenticated reports whether a session is present. Presence only: an
// expired token still counts until an API call rejects it.
func (s *Service) IsAuthenticated() bool {
	return s.sessions.IsAuthenticated()
}
