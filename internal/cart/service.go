package cart

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mobilestore/storefront/internal/api"
	"github.com/mobilestore/storefront/internal/model"
)

// AddItemData is the payload for adding a product to the cart.
type AddItemData struct {
	ProductType string `json:"product_type"`
	ProductID   int    `json:"product_id"`
	Quantity    int    `json:"quantity"`
}

// Service maps cart operations to their REST calls. Every mutation returns
// the server's authoritative snapshot, except RemoveItem and Clear which
// return nothing and require a reconciliation refetch.
type Service struct {
	client *api.Client
}

// NewService creates a new cart service
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// GetCart fetches the current cart snapshot.
func (s *Service) GetCart(ctx context.Context) (*model.Cart, error) {
	var cart model.Cart
	if err := s.client.Get(ctx, "/cart/my_cart/", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem adds a product to the cart and returns the new snapshot.
func (s *Service) AddItem(ctx context.Context, data AddItemData) (*model.Cart, error) {
	var cart model.Cart
	if err := s.client.Post(ctx, "/cart/add_item/", data, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateItem sets the quantity of one cart line and returns the new
// snapshot.
func (s *Service) UpdateItem(ctx context.Context, cartItemID, quantity int) (*model.Cart, error) {
	body := map[string]int{
		"cart_item_id": cartItemID,
		"quantity":     quantity,
	}
	var cart model.Cart
	if err := s.client.Patch(ctx, "/cart/update_item/", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveItem deletes one cart line. The endpoint returns no snapshot, so
// the caller must refetch to observe the post-removal state.
func (s *Service) RemoveItem(ctx context.Context, cartItemID int) error {
	query := url.Values{"cart_item_id": {strconv.Itoa(cartItemID)}}
	return s.client.Delete(ctx, "/cart/remove_item/", query, nil)
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) error {
	return s.client.Delete(ctx, "/cart/clear_cart/", nil, nil)
}
