// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cart mirrors the server-side shopping cart.

The server owns the cart; this package owns a local snapshot of it. Every
mutation is sent to the API and followed by a full refetch — there are no
optimistic local updates, so the displayed cart is never more than one
round-trip stale relative to the server and there is never optimistic state
to reconcile or roll back.

Invariant: the cart is empty whenever the session is Anonymous. This is
enforced by construction — the synchronizer observes session transitions and
resets itself, without a network call, the moment the user becomes absent.
*/
package cart

import (
	"github.com/taibuivan/velora/pkg/convert"
)

// PlaceholderImage substitutes for line items the server returns without an
// image URL.
const PlaceholderImage = "https://placehold.co/100x100"

// # Domain Entities

// Item is one cart line. ID identifies the line itself and is distinct from
// ProductID.
type Item struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// Product is the minimal product identity needed to add a line to the cart.
type Product struct {
	ID    string
	Name  string
	Price float64
	Image string
}

// # Wire Mapping

// cartResponse is the GET /cart envelope.
type cartResponse struct {
	Items []wireItem `json:"items"`
}

// wireItem is one upstream cart line. Price uses [convert.Flexible] because
// the upstream field arrives as either a JSON number or a numeric string.
type wireItem struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"product_id"`
	ProductName string           `json:"product_name"`
	Price       convert.Flexible `json:"price"`
	Quantity    int              `json:"quantity"`
	ImageURL    string           `json:"image_url"`
}

// toItem maps an upstream line into the local [Item] shape.
func (w wireItem) toItem() Item {
	image := w.ImageURL
	if image == "" {
		image = PlaceholderImage
	}

	return Item{
		ID:        w.ID,
		ProductID: w.ProductID,
		Name:      w.ProductName,
		Price:     w.Price.Float64(),
		Quantity:  w.Quantity,
		Image:     image,
	}
}
