package order

import (
	"context"
	"fmt"

	"github.com/mobilestore/storefront/internal/api"
	"github.com/mobilestore/storefront/internal/model"
)

// Service maps order operations to their REST calls.
type Service struct {
	client *api.Client
}

// NewService creates a new order service
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// MyOrders lists the current customer's orders, newest first.
func (s *Service) MyOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := s.client.Get(ctx, "/orders/my_orders/", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Order fetches one order by ID.
func (s *Service) Order(ctx context.Context, id int) (*model.Order, error) {
	var order model.Order
	if err := s.client.Get(ctx, fmt.Sprintf("/orders/%d/", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateFromCart converts the customer's current cart into an order. The
// backend rejects an empty cart or insufficient stock; the client does not
// pre-validate beyond what it last fetched.
func (s *Service) CreateFromCart(ctx context.Context, data model.CreateOrderData) (*model.Order, error) {
	var order model.Order
	if err := s.client.Post(ctx, "/orders/create_from_cart/", data, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Cancel requests cancellation of an order. The backend refuses orders that
// have already shipped, been delivered, or been cancelled.
func (s *Service) Cancel(ctx context.Context, id int) (*model.Order, error) {
	var order model.Order
	if err := s.client.Post(ctx, fmt.Sprintf("/orders/%d/cancel/", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
