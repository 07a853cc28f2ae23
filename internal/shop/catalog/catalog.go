// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog is the read-only client for products, categories, and brands.

It holds no state: every call is a pass-through to the storefront API with
typed parameters and typed results. Browsing works identically for Anonymous
and Authenticated sessions.
*/
package catalog

import "github.com/taibuivan/velora/pkg/convert"

// # Domain Entities

// Product is a storefront catalog entry.
type Product struct {
	ID            string           `json:"id"`
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Price         convert.Flexible `json:"price"`
	SalePrice     convert.Flexible `json:"sale_price,omitempty"`
	StockQuantity int              `json:"stock_quantity"`
	Brand         string           `json:"brand,omitempty"`
	ImageURL      string           `json:"image_url,omitempty"`
	IsFeatured    bool             `json:"is_featured"`
	IsOnSale      bool             `json:"is_on_sale"`
}

// EffectivePrice returns the sale price when one is set, else the list price.
func (p Product) EffectivePrice() float64 {
	if p.SalePrice > 0 {
		return p.SalePrice.Float64()
	}
	return p.Price.Float64()
}

// PriceInfo is the dedicated price endpoint's response.
type PriceInfo struct {
	Price     convert.Flexible `json:"price"`
	SalePrice convert.Flexible `json:"sale_price,omitempty"`
	IsOnSale  bool             `json:"is_on_sale"`
}

// Category is a node in the category hierarchy. Children is populated only
// by the tree endpoint.
type Category struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	ParentID *int       `json:"parent_id,omitempty"`
	Children []Category `json:"children,omitempty"`
}

// Brand is a product manufacturer.
type Brand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// # List Envelope

// ListResult is the paginated product listing envelope.
type ListResult struct {
	Items    []Product `json:"items"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}
