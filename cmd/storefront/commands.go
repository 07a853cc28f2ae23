// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/taibuivan/velora/internal/shop/admin"
	"github.com/taibuivan/velora/internal/shop/cart"
	"github.com/taibuivan/velora/internal/shop/catalog"
	"github.com/taibuivan/velora/internal/shop/orders"
	"github.com/taibuivan/velora/internal/users/account"
	"github.com/taibuivan/velora/internal/users/session"
	"github.com/taibuivan/velora/pkg/pointer"
)

const usage = `Usage: storefront <command> [flags]

Session:
  login       -email -password        Authenticate and persist the session
  logout                              Drop the local session
  register    -email -password -first -last
  whoami                              Show the current session

Catalog:
  products    [-page -size -search -category -featured -on-sale -sort -order]
  product     -id                     Show one product
  categories  [-tree]                 List categories
  brands                              List brands

Cart:
  cart show | add | update | remove | clear

Orders:
  checkout    -shipping [-billing -payment]
  orders                              List your orders
  order       -id                     Show one order

Account:
  profile show | update

Admin:
  admin users | set-status | add-product | del-product | add-category | del-category
`

// dispatch routes the subcommand to its handler.
func dispatch(ctx context.Context, application *app, args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}

	command, rest := args[0], args[1:]
	switch command {
	case "login":
		return cmdLogin(ctx, application, rest)
	case "logout":
		return application.sessions.Logout(ctx)
	case "register":
		return cmdRegister(ctx, application, rest)
	case "whoami":
		return cmdWhoami(ctx, application)
	case "products":
		return cmdProducts(ctx, application, rest)
	case "product":
		return cmdProduct(ctx, application, rest)
	case "categories":
		return cmdCategories(ctx, application, rest)
	case "brands":
		return cmdBrands(ctx, application)
	case "cart":
		return cmdCart(ctx, application, rest)
	case "checkout":
		return cmdCheckout(ctx, application, rest)
	case "orders":
		return cmdOrders(ctx, application)
	case "order":
		return cmdOrder(ctx, application, rest)
	case "profile":
		return cmdProfile(ctx, application, rest)
	case "admin":
		return cmdAdmin(ctx, application, rest)
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// print renders any value as indented JSON on stdout.
func print(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// # Session Commands

func cmdLogin(ctx context.Context, application *app, args []string) error {
	flags := flag.NewFlagSet("login", flag.ExitOnError)
	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "account password")
	_ = flags.Parse(args)

	if err := application.sessions.Login(ctx, *email, *password); err != nil {
		return err
	}

	user, _ := application.sessions.CurrentUser()
	fmt.Printf("Logged in as %s\n", user.DisplayName())
	return nil
}

func cmdRegister(ctx context.Context, application *app, args []string) error {
	flags := flag.NewFlagSet("register", flag.ExitOnError)
	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "account password")
	first := flags.String("first", "", "first name")
	last := flags.String("last", "", "last name")
	_ = flags.Parse(args)

	user, err := application.sessions.Register(ctx, session.RegisterInput{
		Email:     *email,
		Password:  *password,
		FirstName: *first,
		LastName:  *last,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Registered %s — log in to start shopping\n", user.Email)
	return nil
}

func cmdWhoami(ctx context.Context, application *app) error {
	user, ok := application.sessions.CurrentUser()
	if !ok {
		fmt.Println("Not logged in")
		return nil
	}

	fmt.Printf("%s <%s> role=%s status=%s\n", user.DisplayName(), user.Email, user.Role, user.Status)

	// Claims are decorative here; a malformed token is not worth failing over.
	if info, err := application.sessions.SessionInfo(ctx); err == nil && !info.ExpiresAt.IsZero() {
		fmt.Printf("Session expires %s\n", info.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// # Catalog Commands

func cmdProducts(ctx context.Context, application *app, args []string) error {
	flags := flag.NewFlagSet("products", flag.ExitOnError)
	page := flags.Int("page", 0, "page number")
	size := flags.Int("size", 0, "page size")
	search := flags.String("search", "", "search term")
	category := flags.Int("category", 0, "category ID filter")
	featured := flags.Bool("featured", false, "only featured products")
	onSale := flags.Bool("on-sale", false, "only discounted products")
	sortBy := flags.String("sort", "", "sort field")
	order := flags.String("order", "", "asc or desc")
	_ = flags.Parse(args)

	params := catalog.ListParams{
		Page:       *page,
		PageSize:   *size,
		Search:     *search,
		CategoryID: *category,
		SortBy:     *sortBy,
		SortOrder:  *order,
	}
	if *featured {
		params.IsFeatured = pointer.To(true)
	}
	if *onSale {
		params.IsOnSale = pointer.To(true)
	}

	result, err := application.catalog.List(ctx, params)
	if err != nil {
		return err
	}

	for _, product := range result.Items {
		fmt.Printf("%-38s %8.2f  %s\n", product.ID, product.EffectivePrice(), product.Name)
	}
	fmt.Printf("(%d of %d products)\n", len(result.Items), result.Total)
	return nil
}

func cmdProduct(ctx context.Context, application *app, args []string) error {
	flags := flag.NewFlagSet("product", flag.ExitOnError)
	id := flags.String("id", "", "product ID")
	_ = flags.Parse(args)

	product, err := application.catalog.Get(ctx, *id)
	if err != nil {
		return err
	}
	return print(product)
}

func cmdCategories(ctx context.Context, application *app, args []string) error {
	flags := flag.NewFlagSet("categories", flag.ExitOnError)
	tree := flags.Bool("tree", false, "render the hierarchy")
	_ = flags.Parse(args)

	var (
		categories []catalog.Category
		err        error
	)
	if *tree {
		categories, err = application.catalog.CategoryTree(ctx)
	} else {
		categories, err = application.catalog.Categories(ctx)
	}
	if err != nil {
		return err
	}
	return print(categories)
}

func cmdBrands(ctx context.Context, application *app) error {
	brands, err := application.catalog.Brands(ctx)
	if err != nil {
		return err
	}
	return print(brands)
}

// # Cart Commands

func cmdCart(ctx context.Context, application *app, args []string) error {
	action := "show"
	if len(args) > 0 {
		action, args = args[0], args[1:]
	}

	switch action {
	case "show":
		return showCart(application)

	case "add":
		flags := flag.NewFlagSet("cart add", flag.ExitOnError)
		productID := flags.String("product", "", "product ID")
		quantity := flags.Int("qty", 1, "quantity")
		_ = flags.Parse(args)

		if err := application.cart.Add(ctx, cart.Product{ID: *productID}, *quantity); err != nil {
			return err
		}
		return showCart(application)

	case "update":
		flags := flag.NewFlagSet("cart update", flag.ExitOnError)
		itemID := flags.String("item", "", "cart line ID")
		quantity := flags.Int("qty", 1, "new quantity")
		_ = flags.Parse(args)

		if err := application.cart.UpdateQuantity(ctx, *itemID, *quantity); err != nil {
			return err
		}
		return showCart(application)

	case "remove":
		flags := flag.NewFlagSet("cart remove", flag.ExitOnError)
		itemID := flags.String("item", "", "cart line ID")
		_ = flags.Parse(args)

		if err := application.cart.Remove(ctx, *itemID); err != nil {
			return err
		}
		return showCart(application)

	case "clear":
		return application.cart.Clear(ctx)

	default:
		return fmt.Errorf("unknown cart action %q", action)
	}
}

func showCart(application *app) error {
	items := application.cart.Items()
	if len(items) == 0 {
		fmt.Println("Cart is empty")
		return nil
	}

	for _, item := range items {
		fmt.Printf("%-38s x%-3d %8.2f  %s\n", item.ID, item.Quantity, item.Price, item.Name)
	}
	fmt.Printf("%d items, subtotal %.2f\n", application.cart.Count(), application.cart.Subtotal())
	return nil
}

// # Order Commands

func cmdCheckout(ctx context.Context, application *app, args []string) error {
	flags := flag.NewFlagSet("checkout", flag.ExitOnError)
	shipping := flags.String("shipping", "", "shipping address ID")
	billing := flags.String("billing", "", "billing address ID (defaults to shipping)")
	payment := flags.String("payment", "", "payment method")
	_ = flags.Parse(args)

	order, err := application.orders.Create(ctx, orders.CreateInput{
		ShippingAddressID: *shipping,
		BillingAddressID:  *billing,
		PaymentMethod:     *payment,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Order %s placed (status=%s, total=%.2f)\n", order.ID, order.Status, order.Total.Float64())
	return nil
}

func cmdOrders(ctx context.Context, application *app) error {
	list, err := application.orders.List(ctx)
	if err != nil {
		return err
	}

	for _, order := range list {
		fmt.Printf("%-38s %-12s %8.2f  %s\n",
			order.ID, order.Status, order.Total.Float64(),
			order.CreatedAt.Local().Format("2006-01-02"))
	}
	return nil
}

func cmdOrder(ctx context.Context, application *app, args []string) error {
	flags := flag.NewFlagSet("order", flag.ExitOnError)
	id := flags.String("id", "", "order ID")
	_ = flags.Parse(args)

	order, err := application.orders.Get(ctx, *id)
	if err != nil {
		return err
	}
	return print(order)
}

// # Account Commands

func cmdProfile(ctx context.Context, application *app, args []string) error {
	action := "show"
	if len(args) > 0 {
		action, args = args[0], args[1:]
	}

	switch action {
	case "show":
		user, err := application.account.Profile(ctx)
		if err != nil {
			return err
		}
		return print(user)

	case "update":
		flags := flag.NewFlagSet("profile update", flag.ExitOnError)
		first := flags.String("first", "", "first name")
		last := flags.String("last", "", "last name")
		_ = flags.Parse(args)

		input := account.UpdateProfileInput{}
		if *first != "" {
			input.FirstName = pointer.To(*first)
		}
		if *last != "" {
			input.LastName = pointer.To(*last)
		}

		user, err := application.account.UpdateProfile(ctx, input)
		if err != nil {
			return err
		}
		return print(user)

	default:
		return fmt.Errorf("unknown profile action %q", action)
	}
}

// # Admin Commands

func cmdAdmin(ctx context.Context, application *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("admin: action required")
	}
	action, rest := args[0], args[1:]

	switch action {
	case "users":
		flags := flag.NewFlagSet("admin users", flag.ExitOnError)
		page := flags.Int("page", 0, "page number")
		size := flags.Int("size", 0, "page size")
		status := flags.String("status", "", "status filter")
		_ = flags.Parse(rest)

		result, err := application.admin.ListUsers(ctx, *page, *size, *status)
		if err != nil {
			return err
		}
		for _, user := range result.Items {
			fmt.Printf("%-38s %-10s %-10s %s\n", user.ID, user.Role, user.Status, user.Email)
		}
		fmt.Printf("(%d of %d users)\n", len(result.Items), result.Total)
		return nil

	case "set-status":
		flags := flag.NewFlagSet("admin set-status", flag.ExitOnError)
		userID := flags.String("user", "", "user ID")
		status := flags.String("status", "", "new status")
		_ = flags.Parse(rest)

		return application.admin.UpdateUserStatus(ctx, *userID, *status)

	case "add-product":
		flags := flag.NewFlagSet("admin add-product", flag.ExitOnError)
		sku := flags.String("sku", "", "stock keeping unit")
		name := flags.String("name", "", "product name")
		description := flags.String("description", "", "description")
		price := flags.Float64("price", 0, "list price")
		stock := flags.Int("stock", 0, "stock quantity")
		brand := flags.String("brand", "", "brand name")
		image := flags.String("image", "", "image URL")
		featured := flags.Bool("featured", false, "feature on the home surface")
		categories := flags.String("categories", "", "comma-separated category IDs")
		_ = flags.Parse(rest)

		product, err := application.admin.CreateProduct(ctx, admin.CreateProductInput{
			SKU:           *sku,
			Name:          *name,
			Description:   *description,
			Price:         *price,
			StockQuantity: *stock,
			Brand:         *brand,
			ImageURL:      *image,
			IsFeatured:    *featured,
			CategoryIDs:   parseIntList(*categories),
		})
		if err != nil {
			return err
		}
		return print(product)

	case "del-product":
		flags := flag.NewFlagSet("admin del-product", flag.ExitOnError)
		id := flags.String("id", "", "product ID")
		_ = flags.Parse(rest)

		return application.admin.DeleteProduct(ctx, *id)

	case "add-category":
		flags := flag.NewFlagSet("admin add-category", flag.ExitOnError)
		name := flags.String("name", "", "category name")
		parent := flags.Int("parent", 0, "parent category ID")
		slugValue := flags.String("slug", "", "explicit slug (generated from name when omitted)")
		_ = flags.Parse(rest)

		input := admin.CreateCategoryInput{Name: *name, Slug: *slugValue}
		if *parent != 0 {
			input.ParentID = pointer.To(*parent)
		}

		category, err := application.admin.CreateCategory(ctx, input)
		if err != nil {
			return err
		}
		return print(category)

	case "del-category":
		flags := flag.NewFlagSet("admin del-category", flag.ExitOnError)
		id := flags.Int("id", 0, "category ID")
		_ = flags.Parse(rest)

		return application.admin.DeleteCategory(ctx, *id)

	default:
		return fmt.Errorf("unknown admin action %q", action)
	}
}

// parseIntList parses "1,2,3" into []int, skipping malformed entries.
func parseIntList(raw string) []int {
	if raw == "" {
		return nil
	}

	var result []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var value int
		if _, err := fmt.Sscanf(part, "%d", &value); err == nil {
			result = append(result, value)
		}
	}
	return result
}
