// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package orders is the client for checkout and order history.

Order creation is the one mutation in Velora where a duplicate submission has
a real-world cost, so every Create call carries a client-generated
Idempotency-Key: retried or double-clicked checkouts collapse into a single
server-side order.
*/
package orders

import (
	"time"

	"github.com/taibuivan/velora/pkg/convert"
)

// # Domain Entities

// Order is a placed order as returned by the API.
type Order struct {
	ID        string           `json:"id"`
	Status    string           `json:"status"`
	Total     convert.Flexible `json:"total"`
	CreatedAt time.Time        `json:"created_at"`
	Items     []Line           `json:"items,omitempty"`
}

// Line is one purchased product within an order.
type Line struct {
	ProductID   string           `json:"product_id"`
	ProductName string           `json:"product_name"`
	Price       convert.Flexible `json:"price"`
	Quantity    int              `json:"quantity"`
}

// # Field Identifiers

const (
	FieldShippingAddress = "shipping_address_id"
	FieldPaymentMethod   = "payment_method"
)
