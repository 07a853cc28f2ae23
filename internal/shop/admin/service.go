// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/velora/internal/platform/api"
	"github.com/taibuivan/velora/internal/platform/apperr"
	"github.com/taibuivan/velora/internal/platform/validate"
	"github.com/taibuivan/velora/internal/shop/catalog"
	"github.com/taibuivan/velora/internal/users/session"
	"github.com/taibuivan/velora/pkg/query"
	"github.com/taibuivan/velora/pkg/slug"
)

// # Service Layer

// Service exposes the administration surface of the storefront API.
type Service struct {
	apiClient *api.Client
	sessions  *session.Manager
	logger    *slog.Logger
}

// NewService constructs an admin [Service].
func NewService(apiClient *api.Client, sessions *session.Manager, logger *slog.Logger) *Service {
	return &Service{apiClient: apiClient, sessions: sessions, logger: logger}
}

// guard rejects callers whose session is absent or not an admin.
func (service *Service) guard() error {
	user, ok := service.sessions.CurrentUser()
	if !ok {
		return apperr.Guard("manage the store")
	}
	if !user.IsAdmin() {
		return apperr.Forbidden("Administrator role required")
	}
	return nil
}

// # Product Management

/*
CreateProduct inserts a new product into the catalog.

Parameters:
  - context: context.Context
  - input: CreateProductInput

Returns:
  - *catalog.Product: The created product
  - error: Guard, validation, or request failures
*/
func (service *Service) CreateProduct(context context.Context, input CreateProductInput) (*catalog.Product, error) {
	if err := service.guard(); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldSKU, input.SKU).
		Required(FieldName, input.Name).
		Custom(FieldPrice, input.Price < 0, "Must not be negative")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var product catalog.Product
	if err := service.apiClient.Post(context, api.Prefix+"/admin/products", input, &product); err != nil {
		return nil, err
	}

	service.logger.Info("admin_product_created",
		slog.String("product_id", product.ID),
		slog.String("sku", input.SKU),
	)
	return &product, nil
}

// UpdateProduct applies a partial update to an existing product.
func (service *Service) UpdateProduct(context context.Context, productID string, input UpdateProductInput) (*catalog.Product, error) {
	if err := service.guard(); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Price != nil {
		validator.Custom(FieldPrice, *input.Price < 0, "Must not be negative")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var product catalog.Product
	path := fmt.Sprintf("%s/admin/products/%s", api.Prefix, productID)
	if err := service.apiClient.Put(context, path, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product from the catalog.
func (service *Service) DeleteProduct(context context.Context, productID string) error {
	if err := service.guard(); err != nil {
		return err
	}

	path := fmt.Sprintf("%s/admin/products/%s", api.Prefix, productID)
	if err := service.apiClient.Delete(context, path); err != nil {
		return err
	}

	service.logger.Info("admin_product_deleted", slog.String("product_id", productID))
	return nil
}

// # Category Management

/*
CreateCategory adds a category node.

Description: When no slug is supplied one is generated from the name; an
explicitly supplied slug must already be in valid slug form.

Parameters:
  - context: context.Context
  - input: CreateCategoryInput

Returns:
  - *catalog.Category: The created category
  - error: Guard, validation, or request failures
*/
func (service *Service) CreateCategory(context context.Context, input CreateCategoryInput) (*catalog.Category, error) {
	if err := service.guard(); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name)
	if input.Slug == "" {
		input.Slug = slug.From(input.Name)
	} else {
		validator.Slug(FieldSlug, input.Slug)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var category catalog.Category
	if err := service.apiClient.Post(context, api.Prefix+"/admin/categories", input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category node.
func (service *Service) DeleteCategory(context context.Context, categoryID int) error {
	if err := service.guard(); err != nil {
		return err
	}

	path := fmt.Sprintf("%s/admin/categories/%d", api.Prefix, categoryID)
	return service.apiClient.Delete(context, path)
}

// # User Management

// ListUsers fetches one page of registered customers, optionally filtered
// by account status.
func (service *Service) ListUsers(context context.Context, page, pageSize int, statusFilter string) (*UserPage, error) {
	if err := service.guard(); err != nil {
		return nil, err
	}

	qp := &query.Params{}
	qp.SetInt("page", page).
		SetInt("page_size", pageSize).
		Set("status_filter", statusFilter)

	var result UserPage
	if err := service.apiClient.Get(context, api.Prefix+"/admin/users"+qp.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

/*
UpdateUserStatus changes a customer's account status.

Description: The status travels as a query parameter, matching the upstream
endpoint's contract rather than a JSON body.

Parameters:
  - context: context.Context
  - userID: string
  - newStatus: string

Returns:
  - error: Guard, validation, or request failures
*/
func (service *Service) UpdateUserStatus(context context.Context, userID, newStatus string) error {
	if err := service.guard(); err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.UUID("user_id", userID).
		Required(FieldNewStatus, newStatus)
	if err := validator.Err(); err != nil {
		return err
	}

	qp := &query.Params{}
	qp.Set("new_status", newStatus)

	path := fmt.Sprintf("%s/admin/users/%s/status%s", api.Prefix, userID, qp.Encode())
	if err := service.apiClient.Put(context, path, nil, nil); err != nil {
		return err
	}

	service.logger.Info("admin_user_status_updated",
		slog.String("user_id", userID),
		slog.String("status", newStatus),
	)
	return nil
}
