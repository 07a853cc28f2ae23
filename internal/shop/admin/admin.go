// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package admin is the client for the storefront administration surface.

Every operation is double-guarded: locally against the session role (fast
feedback, zero wasted round-trips) and authoritatively by the server, which
re-checks the token's role claim on every call.
*/
package admin

import "github.com/taibuivan/velora/internal/users/session"

// # Inputs

// CreateProductInput is the full product definition for catalog insertion.
type CreateProductInput struct {
	SKU           string   `json:"sku"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Price         float64  `json:"price"`
	SalePrice     *float64 `json:"sale_price,omitempty"`
	StockQuantity int      `json:"stock_quantity"`
	Brand         string   `json:"brand,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	IsFeatured    bool     `json:"is_featured"`
	CategoryIDs   []int    `json:"category_ids"`
}

// UpdateProductInput is a partial product update; nil fields are untouched.
type UpdateProductInput struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	SalePrice     *float64 `json:"sale_price,omitempty"`
	StockQuantity *int     `json:"stock_quantity,omitempty"`
	Brand         *string  `json:"brand,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
	IsFeatured    *bool    `json:"is_featured,omitempty"`
}

// CreateCategoryInput defines a new category. An empty Slug is generated
// from the name.
type CreateCategoryInput struct {
	Name     string `json:"name"`
	ParentID *int   `json:"parent_id,omitempty"`
	Slug     string `json:"slug,omitempty"`
}

// # Results

// UserPage is one page of the customer listing.
type UserPage struct {
	Items    []session.User `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// # Field Identifiers

const (
	FieldSKU       = "sku"
	FieldName      = "name"
	FieldPrice     = "price"
	FieldSlug      = "slug"
	FieldNewStatus = "new_status"
)
