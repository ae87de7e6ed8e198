package stub

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mobilestore/storefront/internal/model"
)

// idempotencyKeyHeader matches the header the client sends on payment
// creation.
const idempotencyKeyHeader = "Idempotency-Key"

// PaymentHandler serves the payment routes. All of them require a session.
type PaymentHandler struct {
	store *Store
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(store *Store) *PaymentHandler {
	return &PaymentHandler{store: store}
}

// HandleCreatePayment handles POST /payments/create_payment/
func (h *PaymentHandler) HandleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePaymentData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PaymentMethod == "" {
		respondFieldErrors(w, http.StatusBadRequest, map[string][]string{
			"payment_method": {"This field is required."},
		})
		return
	}

	idemKey := strings.TrimSpace(r.Header.Get(idempotencyKeyHeader))
	payment, created, errMsg := h.store.createPayment(customerID(r.Context()), idemKey, req)
	if errMsg == "Order not found" {
		respondError(w, http.StatusNotFound, errMsg)
		return
	}
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}

	statusCode := http.StatusCreated
	if !created {
		// Idempotency-key replay returns the original record.
		statusCode = http.StatusOK
	}
	writeJSON(w, statusCode, payment)
}

// HandleMyPayments handles GET /payments/my_payments/
func (h *PaymentHandler) HandleMyPayments(w http.ResponseWriter, r *http.Request) {
	payments := h.store.paymentsFor(customerID(r.Context()))
	if payments == nil {
		payments = []model.Payment{}
	}
	writeJSON(w, http.StatusOK, payments)
}

// HandlePaymentDetail handles GET /payments/{id}/
func (h *PaymentHandler) HandlePaymentDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	payment, ok := h.store.paymentFor(customerID(r.Context()), id)
	if !ok {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, payment)
}
