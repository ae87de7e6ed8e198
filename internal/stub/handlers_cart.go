package stub

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// CartHandler serves the cart routes. All of them require a session.
type CartHandler struct {
	store *Store
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store *Store) *CartHandler {
	return &CartHandler{store: store}
}

// HandleMyCart handles GET /cart/my_cart/
func (h *CartHandler) HandleMyCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.CartView(customerID(r.Context())))
}

// HandleAddItem handles POST /cart/add_item/
func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductType string `json:"product_type"`
		ProductID   int    `json:"product_id"`
		Quantity    int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity < 1 {
		respondFieldErrors(w, http.StatusBadRequest, map[string][]string{
			"quantity": {"Quantity must be at least 1"},
		})
		return
	}

	cart, errMsg := h.store.addCartItem(customerID(r.Context()), req.ProductType, req.ProductID, req.Quantity)
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// HandleUpdateItem handles PATCH /cart/update_item/
func (h *CartHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CartItemID int `json:"cart_item_id"`
		Quantity   int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity < 1 {
		respondFieldErrors(w, http.StatusBadRequest, map[string][]string{
			"quantity": {"Quantity must be at least 1"},
		})
		return
	}

	cart, errMsg := h.store.updateCartItem(customerID(r.Context()), req.CartItemID, req.Quantity)
	if errMsg == "Cart item not found" {
		respondError(w, http.StatusNotFound, errMsg)
		return
	}
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// HandleRemoveItem handles DELETE /cart/remove_item/?cart_item_id=N
func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("cart_item_id")
	cartItemID, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "cart_item_id is required")
		return
	}

	if !h.store.removeCartItem(customerID(r.Context()), cartItemID) {
		respondError(w, http.StatusNotFound, "Cart item not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item removed from cart"})
}

// HandleClearCart handles DELETE /cart/clear_cart/
func (h *CartHandler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	h.store.clearCart(customerID(r.Context()))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}
