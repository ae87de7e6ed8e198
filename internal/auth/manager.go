package auth

import (
	"context"
	"log"
	"sync"

	"github.com/mobilestore/storefront/internal/model"
)

// Manager is the process-wide auth state container: the current user (or
// none) plus a loading flag covering startup rehydration. It is constructed
// once and passed by reference to consumers; there are no package-level
// singletons. State is replaced wholesale, never partially mutated.
type Manager struct {
	service *Service

	mu      sync.RWMutex
	user    *model.User
	loading bool
}

// NewManager creates an auth manager in the unauthenticated, loading state.
func NewManager(service *Service) *Manager {
	return &Manager{service: service, loading: true}
}

// Rehydrate restores the authenticated state on startup. If a persisted
// session exists the current user is fetched; a failure (expired or invalid
// token) clears the session and leaves the manager unauthenticated.
func (m *Manager) Rehydrate(ctx context.Context) {
	defer m.setLoading(false)

	if !m.service.IsAuthenticated() {
		return
	}

	user, err := m.service.CurrentUser(ctx)
	if err != nil {
		log.Printf("session rehydrate failed, clearing session: %v", err)
		if err := m.service.Logout(); err != nil {
			log.Printf("failed to clear session: %v", err)
		}
		return
	}
	m.setUser(user)
}

// Login authenticates and moves to the authenticated state. On any failure
// the state is left unchanged and the error propagates for display.
func (m *Manager) Login(ctx context.Context, creds model.Credentials) error {
	if _, err := m.service.Login(ctx, creds); err != nil {
		return err
	}
	user, err := m.service.CurrentUser(ctx)
	if err != nil {
		return err
	}
	m.setUser(user)
	return nil
}

// Register runs the composite register-then-login and adopts the returned
// user on success.
func (m *Manager) Register(ctx context.Context, data model.RegisterData) error {
	user, _, err := m.service.Register(ctx, data)
	if err != nil {
		return err
	}
	m.setUser(user)
	return nil
}

// Logout clears the session and moves to unauthenticated, synchronously
// and without a backend call.
func (m *Manager) Logout() error {
	err := m.service.Logout()
	m.setUser(nil)
	return err
}

// UpdateUser applies a partial profile update and replaces only the user
// value, preserving the authenticated state.
func (m *Manager) UpdateUser(ctx context.Context, update model.ProfileUpdate) error {
	user, err := m.service.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}
	m.setUser(user)
	return nil
}

// User returns the current user, or false when unauthenticated.
func (m *Manager) User() (*model.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user, m.user != nil
}

// IsAuthenticated reports whether a validated user is present.
func (m *Manager) IsAuthenticated() bool {
	_, ok := m.User()
	return ok
}

// Loading reports whether startup rehydration is still in progress.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

func (m *Manager) setUser(user *model.User) {
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
}

func (m *Manager) setLoading(loading bool) {
	m.mu.Lock()
	m.loading = loading
	m.mu.Unlock()
}
