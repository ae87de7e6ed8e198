package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mobilestore/storefront/internal/model"
)

// Authenticator reports whether a session currently exists. Implemented by
// the auth manager.
type Authenticator interface {
	IsAuthenticated() bool
}

// Manager is the process-wide cart state container. The snapshot is either
// nil (unauthenticated or not yet fetched) or a complete server-held cart;
// partial updates are never merged in. Every mutation replaces the whole
// snapshot with the server's response, and failures leave the last
// known-good snapshot untouched.
type Manager struct {
	service *Service
	auth    Authenticator

	mu       sync.RWMutex
	snapshot *model.Cart
	loading  bool
}

// NewManager creates a cart manager with no snapshot loaded.
func NewManager(service *Service, auth Authenticator) *Manager {
	return &Manager{service: service, auth: auth}
}

// Refresh refetches the snapshot from the server. Without a session the
// snapshot resets to nil and no call is made.
func (m *Manager) Refresh(ctx context.Context) error {
	if !m.auth.IsAuthenticated() {
		m.setSnapshot(nil)
		return nil
	}

	m.setLoading(true)
	defer m.setLoading(false)

	cart, err := m.service.GetCart(ctx)
	if err != nil {
		return err
	}
	m.setSnapshot(cart)
	return nil
}

// AddItem adds a product and adopts the returned snapshot.
func (m *Manager) AddItem(ctx context.Context, productType string, productID, quantity int) error {
	m.setLoading(true)
	defer m.setLoading(false)

	cart, err := m.service.AddItem(ctx, AddItemData{
		ProductType: productType,
		ProductID:   productID,
		Quantity:    quantity,
	})
	if err != nil {
		return err
	}
	m.setSnapshot(cart)
	return nil
}

// UpdateQuantity sets one line's quantity and adopts the returned snapshot.
func (m *Manager) UpdateQuantity(ctx context.Context, cartItemID, quantity int) error {
	m.setLoading(true)
	defer m.setLoading(false)

	cart, err := m.service.UpdateItem(ctx, cartItemID, quantity)
	if err != nil {
		return err
	}
	m.setSnapshot(cart)
	return nil
}

// RemoveItem deletes one line. The remove endpoint returns no snapshot, so
// a reconciliation refetch follows to resynchronize rather than guessing at
// post-removal totals.
func (m *Manager) RemoveItem(ctx context.Context, cartItemID int) error {
	m.setLoading(true)
	defer m.setLoading(false)

	if err := m.service.RemoveItem(ctx, cartItemID); err != nil {
		return err
	}
	cart, err := m.service.GetCart(ctx)
	if err != nil {
		return err
	}
	m.setSnapshot(cart)
	return nil
}

// Clear empties the cart and drops the snapshot.
func (m *Manager) Clear(ctx context.Context) error {
	m.setLoading(true)
	defer m.setLoading(false)

	if err := m.service.Clear(ctx); err != nil {
		return err
	}
	m.setSnapshot(nil)
	return nil
}

// Reset drops the snapshot without a backend call, for logout.
func (m *Manager) Reset() {
	m.setSnapshot(nil)
}

// Snapshot returns the current cart, or false when none is loaded.
func (m *Manager) Snapshot() (*model.Cart, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot, m.snapshot != nil
}

// TotalItems is the sum of quantities across all lines, recomputed on every
// read. The server's total_items aggregate is not trusted because it is
// optional in some responses.
func (m *Manager) TotalItems() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snapshot == nil {
		return 0
	}
	total := 0
	for _, item := range m.snapshot.Items {
		total += item.Quantity
	}
	return total
}

// TotalAmount is the sum of line subtotals, recomputed on every read.
func (m *Manager) TotalAmount() decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	if m.snapshot == nil {
		return total
	}
	for _, item := range m.snapshot.Items {
		total = total.Add(item.Subtotal)
	}
	return total
}

// Loading reports whether a cart operation is in flight.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

func (m *Manager) setSnapshot(cart *model.Cart) {
	m.mu.Lock()
	m.snapshot = cart
	m.mu.Unlock()
}

func (m *Manager) setLoading(loading bool) {
	m.mu.Lock()
	m.loading = loading
	m.mu.Unlock()
}
