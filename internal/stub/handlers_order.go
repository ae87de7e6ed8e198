package stub

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mobilestore/storefront/internal/model"
)

// OrderHandler serves the order routes. All of them require a session.
type OrderHandler struct {
	store *Store
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(store *Store) *OrderHandler {
	return &OrderHandler{store: store}
}

// HandleMyOrders handles GET /orders/my_orders/
func (h *OrderHandler) HandleMyOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.store.ordersFor(customerID(r.Context()))
	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// HandleOrderDetail handles GET /orders/{id}/
func (h *OrderHandler) HandleOrderDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	order, ok := h.store.orderFor(customerID(r.Context()), id)
	if !ok {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// HandleCreateFromCart handles POST /orders/create_from_cart/
func (h *OrderHandler) HandleCreateFromCart(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrderData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ShippingAddress == "" {
		respondFieldErrors(w, http.StatusBadRequest, map[string][]string{
			"shipping_address": {"This field is required."},
		})
		return
	}

	order, errMsg := h.store.createOrderFromCart(customerID(r.Context()), req)
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// HandleCancel handles POST /orders/{id}/cancel/
func (h *OrderHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}

	order, found, refusal := h.store.cancelOrder(customerID(r.Context()), id)
	if !found {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	if refusal != "" {
		respondError(w, http.StatusBadRequest, refusal)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
