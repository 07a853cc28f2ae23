// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"

	"github.com/taibuivan/velora/internal/platform/api"
	"github.com/taibuivan/velora/pkg/query"
)

// # Service Layer

// Service exposes the catalog read surface of the storefront API.
type Service struct {
	apiClient *api.Client
}

// NewService constructs a catalog [Service].
func NewService(apiClient *api.Client) *Service {
	return &Service{apiClient: apiClient}
}

// # Product Listing

// ListParams filters and orders the product listing. Zero values are omitted
// from the request; the API's defaults then apply.
type ListParams struct {
	Page       int
	PageSize   int
	CategoryID int
	Search     string
	IsFeatured *bool
	IsOnSale   *bool
	SortBy     string
	SortOrder  string // "asc" or "desc"
}

/*
List fetches a filtered, paginated product listing.

Parameters:
  - context: context.Context
  - params: ListParams

Returns:
  - *ListResult: One page of products
  - error: Request failures
*/
func (service *Service) List(context context.Context, params ListParams) (*ListResult, error) {
	qp := &query.Params{}
	qp.SetInt("page", params.Page).
		SetInt("page_size", params.PageSize).
		SetInt("category_id", params.CategoryID).
		Set("search", params.Search).
		SetBool("is_featured", params.IsFeatured).
		SetBool("is_on_sale", params.IsOnSale).
		Set("sort_by", params.SortBy).
		Set("sort_order", params.SortOrder)

	var result ListResult
	if err := service.apiClient.Get(context, api.Prefix+"/products/"+qp.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Get fetches a single product by ID.
func (service *Service) Get(context context.Context, id string) (*Product, error) {
	var product Product
	path := fmt.Sprintf("%s/products/%s", api.Prefix, id)
	if err := service.apiClient.Get(context, path, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Price fetches the current pricing of a product. Pricing is served from a
// dedicated endpoint so stale listing pages never show a stale price at the
// moment of adding to cart.
func (service *Service) Price(context context.Context, id string) (*PriceInfo, error) {
	var info PriceInfo
	path := fmt.Sprintf("%s/products/%s/price", api.Prefix, id)
	if err := service.apiClient.Get(context, path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Featured fetches up to limit featured products for the home surface.
func (service *Service) Featured(context context.Context, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = 10
	}

	qp := &query.Params{}
	qp.SetInt("limit", limit)

	var products []Product
	if err := service.apiClient.Get(context, api.Prefix+"/products/featured/list"+qp.Encode(), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// # Categories & Brands

// Categories fetches the flat category list.
func (service *Service) Categories(context context.Context) ([]Category, error) {
	var categories []Category
	if err := service.apiClient.Get(context, api.Prefix+"/categories/", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CategoryTree fetches the category hierarchy with children populated.
func (service *Service) CategoryTree(context context.Context) ([]Category, error) {
	var categories []Category
	if err := service.apiClient.Get(context, api.Prefix+"/categories/tree", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Category fetches a single category by numeric ID.
func (service *Service) Category(context context.Context, id int) (*Category, error) {
	var category Category
	path := fmt.Sprintf("%s/categories/%d", api.Prefix, id)
	if err := service.apiClient.Get(context, path, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Brands fetches the brand list.
func (service *Service) Brands(context context.Context) ([]Brand, error) {
	var brands []Brand
	if err := service.apiClient.Get(context, api.Prefix+"/brands/", &brands); err != nil {
		return nil, err
	}
	return brands, nil
}
