package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mobilestore/storefront/internal/api"
	"github.com/mobilestore/storefront/internal/model"
)

// IdempotencyHeader carries the per-attempt key that lets the backend
// de-duplicate payment submissions.
const IdempotencyHeader = "Idempotency-Key"

// Service maps payment operations to their REST calls.
type Service struct {
	client *api.Client
}

// NewService creates a new payment service
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// NewAttemptKey generates the idempotency key for one checkout attempt.
// Generate it once and reuse it across retries of the same attempt so a
// double-click cannot create duplicate payment records.
func NewAttemptKey() string {
	return uuid.NewString()
}

// Create submits a payment for an order under the given attempt key.
func (s *Service) Create(ctx context.Context, attemptKey string, data model.CreatePaymentData) (*model.Payment, error) {
	headers := map[string]string{IdempotencyHeader: attemptKey}
	var payment model.Payment
	if err := s.client.PostWithHeaders(ctx, "/payments/create_payment/", headers, data, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// MyPayments lists the current customer's payments.
func (s *Service) MyPayments(ctx context.Context) ([]model.Payment, error) {
	var payments []model.Payment
	if err := s.client.Get(ctx, "/payments/my_payments/", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// Payment fetches one payment by ID.
func (s *Service) Payment(ctx context.Context, id int) (*model.Payment, error) {
	var payment model.Payment
	if err := s.client.Get(ctx, fmt.Sprintf("/payments/%d/", id), nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
