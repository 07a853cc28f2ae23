// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package orders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/velora/internal/platform/api"
	"github.com/taibuivan/velora/internal/platform/apperr"
	"github.com/taibuivan/velora/internal/platform/validate"
	"github.com/taibuivan/velora/internal/users/session"
	"github.com/taibuivan/velora/pkg/uuid"
)

// # Service Layer

// Service exposes checkout and order history against the storefront API.
type Service struct {
	apiClient *api.Client
	sessions  *session.Manager
	logger    *slog.Logger
}

// NewService constructs an orders [Service].
func NewService(apiClient *api.Client, sessions *session.Manager, logger *slog.Logger) *Service {
	return &Service{apiClient: apiClient, sessions: sessions, logger: logger}
}

// # Checkout

// CreateInput identifies where and how an order is fulfilled. The order
// contents are the server-side cart at submission time.
type CreateInput struct {
	ShippingAddressID string `json:"shipping_address_id"`
	BillingAddressID  string `json:"billing_address_id,omitempty"`
	PaymentMethod     string `json:"payment_method,omitempty"`
}

/*
Create places an order from the current server-side cart.

Description: Guarded — checkout requires an authenticated session. The
request carries a fresh Idempotency-Key, stable across the client's own
transient-failure retries, so a checkout can never be charged twice.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Order: The placed order
  - error: Guard, validation, or request failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Order, error) {
	if !service.sessions.IsAuthenticated() {
		return nil, apperr.Guard("place an order")
	}

	validator := &validate.Validator{}
	validator.Required(FieldShippingAddress, input.ShippingAddressID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// One key per logical checkout; the API client reuses it verbatim on
	// every retry of this call.
	idempotencyKey := uuid.New()

	var order Order
	err := service.apiClient.Post(context, api.Prefix+"/orders/", input, &order,
		api.WithIdempotencyKey(idempotencyKey),
	)
	if err != nil {
		return nil, err
	}

	service.logger.Info("order_placed",
		slog.String("order_id", order.ID),
		slog.String("idempotency_key", idempotencyKey),
	)
	return &order, nil
}

// # Order History

// List fetches all orders of the authenticated user, newest first.
func (service *Service) List(context context.Context) ([]Order, error) {
	if !service.sessions.IsAuthenticated() {
		return nil, apperr.Guard("view your orders")
	}

	var orders []Order
	if err := service.apiClient.Get(context, api.Prefix+"/orders/", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Get fetches one order by ID.
func (service *Service) Get(context context.Context, id string) (*Order, error) {
	if !service.sessions.IsAuthenticated() {
		return nil, apperr.Guard("view your orders")
	}

	var order Order
	path := fmt.Sprintf("%s/orders/%s", api.Prefix, id)
	if err := service.apiClient.Get(context, path, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
