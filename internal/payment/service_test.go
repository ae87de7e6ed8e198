package payment_test

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
	"github.com/mobilestore/storefront/internal/cart"
	"github.com/mobilestore/storefront/internal/errmsg"
	"github.com/mobilestore/storefront/internal/model"
	"github.com/mobilestore/storefront/internal/order"
	"github.com/mobilestore/storefront/internal/payment"
	"github.com/mobilestore/storefront/internal/session"
	"github.com/mobilestore/storefront/internal/stub"
)

type env struct {
	payments *payment.Service
	orders   *order.Service
	cart     *cart.Service
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
		Name:      "Payment Tester",
		Email:     "payments@example.com",
		Phone:     "+4915100000002",
		Address:   "3 Payment Lane",
		Password:  "correct-horse-9",
		Password2: "correct-horse-9",
	})
	require.NoError(t, err)

	return &env{
		payments: payment.NewService(client),
		orders:   order.NewService(client),
		cart:     cart.NewService(client),
	}
}

func (e *env) placeOrder(t *testing.T, ctx context.Context) *model.Order {
	t.Helper()
	_, err := e.cart.AddItem(ctx, cart.AddItemData{
		ProductType: model.ProductTypeAccessory,
		ProductID:   1,
		Quantity:    1,
	})
	require.NoError(t, err)

	placed, err := e.orders.CreateFromCart(ctx, model.CreateOrderData{ShippingAddress: "3 Payment Lane"})
	require.NoError(t, err)
	return placed
}

func TestCreatePaymentConfirmsOrder(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	placed := e.placeOrder(t, ctx)

	paid, err := e.payments.Create(ctx, payment.NewAttemptKey(), model.CreatePaymentData{
		OrderID:       placed.ID,
		PaymentMethod: model.PaymentMethodCreditCard,
	})
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusCompleted, paid.Status)
	assert.Equal(t, placed.ID, paid.OrderID)
	assert.True(t, paid.Amount.Equal(placed.TotalAmount))

	confirmed, err := e.orders.Order(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, confirmed.Status)
}

func TestIdempotencyKeyReplayReturnsSamePayment(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	placed := e.placeOrder(t, ctx)

	key := payment.NewAttemptKey()
	data := model.CreatePaymentData{
		OrderID:       placed.ID,
		PaymentMethod: model.PaymentMethodCreditCard,
	}

	first, err := e.payments.Create(ctx, key, data)
	require.NoError(t, err)

	// Same key: the retry returns the original record, no duplicate.
	replay, err := e.payments.Create(ctx, key, data)
	require.NoError(t, err)
	assert.Equal(t, first.ID, replay.ID)

	all, err := e.payments.MyPayments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSecondPaymentWithFreshKeyRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	placed := e.placeOrder(t, ctx)

	data := model.CreatePaymentData{
		OrderID:       placed.ID,
		PaymentMethod: model.PaymentMethodCreditCard,
	}
	_, err := e.payments.Create(ctx, payment.NewAttemptKey(), data)
	require.NoError(t, err)

	_, err = e.payments.Create(ctx, payment.NewAttemptKey(), data)
	require.Error(t, err)
	assert.Equal(t, "Payment already completed for this order", errmsg.Summary(err))
}

func TestPaymentForUnknownOrder(t *testing.T) {
	e := newEnv(t)

	_, err := e.payments.Create(context.Background(), payment.NewAttemptKey(), model.CreatePaymentData{
		OrderID:       4242,
		PaymentMethod: model.PaymentMethodUPI,
	})
	require.Error(t, err)
	assert.Equal(t, "Order not found", errmsg.Summary(err))
}

func TestPaymentLookup(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	placed := e.placeOrder(t, ctx)

	paid, err := e.payments.Create(ctx, payment.NewAttemptKey(), model.CreatePaymentData{
		OrderID:       placed.ID,
		PaymentMethod: model.PaymentMethodCashOnDelivery,
	})
	require.NoError(t, err)

	fetched, err := e.payments.Payment(ctx, paid.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentMethodCashOnDelivery, fetched.Method)
}
