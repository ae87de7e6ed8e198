package order_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilestore/storefront/internal/api"
	"github.com/mobilestore/storefront/internal/auth"
	"github.com/mobilestore/storefront/internal/cart"
	"github.com/mobilestore/storefront/internal/errmsg"
	"github.com/mobilestore/storefront/internal/model"
	"github.com/mobilestore/storefront/internal/order"
	"github.com/mobilestore/storefront/internal/session"
	"github.com/mobilestore/storefront/internal/stub"
)

type env struct {
	orders  *order.Service
	cart    *cart.Service
	backend *stub.Backend
}

func newEnv(t *testing.T) *env {
	t.Helper()

	backend := stub.New("test-secret")
	server := httptest.NewServer(backend.Router)
	t.Cleanup(server.Close)

	sessions, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	client := api.NewClient(server.URL, 5*time.Second, sessions)
	accounts := auth.NewService(client, sessions)
	_, _, err = accounts.Register(context.Background(), model.RegisterData{
		Name:      "Order Tester",
		Email:     "orders@example.com",
		Phone:     "+4915100000001",
		Address:   "2 Order Lane",
		Password:  "correct-horse-9",
		Password2: "correct-horse-9",
	})
	require.NoError(t, err)

	return &env{
		orders:  order.NewService(client),
		cart:    cart.NewService(client),
		backend: backend,
	}
}

func (e *env) fillCart(t *testing.T, ctx context.Context) {
	t.Helper()
	_, err := e.cart.AddItem(ctx, cart.AddItemData{
		ProductType: model.ProductTypePhone,
		ProductID:   7,
		Quantity:    2,
	})
	require.NoError(t, err)
}

func TestCreateFromCart(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.fillCart(t, ctx)

	placed, err := e.orders.CreateFromCart(ctx, model.CreateOrderData{
		ShippingAddress: "2 Order Lane",
		Notes:           "leave at door",
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, placed.Status)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, 2, placed.Items[0].Quantity)
	assert.True(t, placed.TotalAmount.Equal(decimal.RequireFromString("498.00")))

	// The cart is consumed by order creation.
	current, err := e.cart.GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, current.Items)
}

func TestCreateFromEmptyCart(t *testing.T) {
	e := newEnv(t)

	_, err := e.orders.CreateFromCart(context.Background(), model.CreateOrderData{
		ShippingAddress: "2 Order Lane",
	})
	require.Error(t, err)
	assert.Equal(t, "Cart is empty", errmsg.Summary(err))
}

func TestMyOrdersListsPlacedOrders(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	orders, err := e.orders.MyOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	e.fillCart(t, ctx)
	placed, err := e.orders.CreateFromCart(ctx, model.CreateOrderData{ShippingAddress: "2 Order Lane"})
	require.NoError(t, err)

	orders, err = e.orders.MyOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, placed.ID, orders[0].ID)

	fetched, err := e.orders.Order(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.TotalAmount.String(), fetched.TotalAmount.String())
}

func TestCancelPendingOrderRestoresStock(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.fillCart(t, ctx)

	placed, err := e.orders.CreateFromCart(ctx, model.CreateOrderData{ShippingAddress: "2 Order Lane"})
	require.NoError(t, err)

	cancelled, err := e.orders.Cancel(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, cancelled.Status)

	// Stock freed by cancellation is purchasable again. Phone 7 started
	// with 20 units, so 20 must be available once more.
	_, err = e.cart.AddItem(ctx, cart.AddItemData{
		ProductType: model.ProductTypePhone,
		ProductID:   7,
		Quantity:    20,
	})
	require.NoError(t, err)
}

func TestCancelDeliveredOrderRefused(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.fillCart(t, ctx)

	placed, err := e.orders.CreateFromCart(ctx, model.CreateOrderData{ShippingAddress: "2 Order Lane"})
	require.NoError(t, err)

	e.backend.Store.SetOrderStatus(placed.ID, model.OrderStatusDelivered)

	_, err = e.orders.Cancel(ctx, placed.ID)
	require.Error(t, err)
	assert.Equal(t, "Cannot cancel order with status DELIVERED", errmsg.Summary(err))

	// The refusal leaves the order untouched.
	fetched, err := e.orders.Order(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, fetched.Status)
}

func TestOrderNotFound(t *testing.T) {
	e := newEnv(t)

	_, err := e.orders.Order(context.Background(), 9999)
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, "Not found.", errmsg.Summary(err))
}
