// Package main provides the storefront CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shop/storefront/internal/application/state"
	"github.com/shop/storefront/internal/domain/order"
	"github.com/shop/storefront/internal/domain/shared"
	"github.com/shop/storefront/internal/infrastructure/api"
	"github.com/shop/storefront/internal/infrastructure/checkout"
	"github.com/shop/storefront/internal/infrastructure/config"
	"github.com/shop/storefront/internal/infrastructure/credentials"
	"github.com/shop/storefront/internal/infrastructure/logger"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `storefront - terminal client for the shop backend

USAGE:
    storefront <command> [arguments]

ACCOUNT:
    register -name <n> -email <e> -password <p>
    login -email <e> -password <p>
    logout
    whoami
    profile [-name n] [-email e] [-phone p]
    password -current <old> -new <new>

ADDRESSES:
    addresses show
    addresses add -alias <a> -details <d> -city <c> -phone <p> -postal <code>
    addresses rm <addressID>

BROWSING:
    products [-keyword s] [-category id] [-brand id] [-sort key] [-page n]
             [-limit n] [-min-price p] [-max-price p] [-min-rating r]
    product <id>
    categories | brands

CART:
    cart show
    cart add <productID> [-color c]
    cart qty <itemID> <quantity>
    cart color <itemID> <color>
    cart rm <itemID>
    cart clear
    cart coupon <code>

WISHLIST:
    wishlist show | wishlist add <productID> | wishlist rm <productID>

ORDERS:
    orders [-page n]
    order <id>
    checkout -address <a> -city <c> -phone <p> [-postal code] [-method cash|online]

Sort keys: -createdAt, createdAt, price, -price, -ratingsAverage, -sold
`)
}

// app bundles the wired client and stores for command handlers
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	client   *api.Client
	creds    *credentials.Store
	auth     *state.AuthStore
	cart     *state.CartStore
	wishlist *state.WishlistStore
	filters  *state.FiltersStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	creds, err := credentials.NewStore(cfg.State.Dir)
	if err != nil {
		log.Fatal("Failed to open state directory", zap.Error(err))
	}

	a := &app{cfg: cfg, log: log, creds: creds}

	a.client, err = api.New(cfg.API.BaseURL,
		api.WithCredentialSource(creds),
		api.WithLogger(log),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetryPolicy(cfg.API.MaxRetries, cfg.API.RetryBase),
		api.WithSessionExpiredHook(func() {
			a.auth.SessionExpired()
			fmt.Fprintln(os.Stderr, "Session expired, please log in again.")
		}),
	)
	if err != nil {
		log.Fatal("Failed to create API client", zap.Error(err))
	}

	a.auth = state.NewAuthStore(a.client, creds, log)
	a.cart = state.NewCartStore(a.client, log)
	a.wishlist = state.NewWishlistStore(a.client, log)
	a.filters = state.NewFiltersStore(creds, log)
	a.auth.OnLogout(func() {
		a.cart.Reset()
		a.wishlist.Reset()
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.filters.Hydrate()
	a.auth.Hydrate(ctx)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", shared.Message(err))
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.cmdRegister(ctx, args)
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		a.auth.Logout()
		fmt.Println("Logged out.")
		return nil
	case "whoami":
		return a.cmdWhoami()
	case "profile":
		return a.cmdProfile(ctx, args)
	case "password":
		return a.cmdPassword(ctx, args)
	case "addresses":
		return a.cmdAddresses(ctx, args)
	case "products":
		return a.cmdProducts(ctx, args)
	case "product":
		return a.cmdProduct(ctx, args)
	case "categories":
		return a.cmdCategories(ctx)
	case "brands":
		return a.cmdBrands(ctx)
	case "cart":
		return a.cmdCart(ctx, args)
	case "wishlist":
		return a.cmdWishlist(ctx, args)
	case "orders":
		return a.cmdOrders(ctx, args)
	case "order":
		return a.cmdOrder(ctx, args)
	case "checkout":
		return a.cmdCheckout(ctx, args)
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	err := a.auth.Register(ctx, api.RegisterInput{
		Name:     *name,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Welcome, %s.\n", a.auth.CurrentUser().Name)
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	if err := a.auth.Login(ctx, api.LoginInput{Email: *email, Password: *password}); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s.\n", a.auth.CurrentUser().Name)
	return nil
}

func (a *app) cmdWhoami() error {
	user := a.auth.CurrentUser()
	if user == nil {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
	return nil
}

func (a *app) cmdProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	fs.Parse(args)

	if *name == "" && *email == "" && *phone == "" {
		return a.cmdWhoami()
	}
	user, err := a.client.UpdateMe(ctx, api.UpdateProfileInput{
		Name:  *name,
		Email: *email,
		Phone: *phone,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Profile updated: %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) cmdPassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("password", flag.ExitOnError)
	current := fs.String("current", "", "current password")
	next := fs.String("new", "", "new password")
	fs.Parse(args)

	session, err := a.client.UpdateMyPassword(ctx, api.UpdatePasswordInput{
		CurrentPassword: *current,
		Password:        *next,
		ConfirmPassword: *next,
	})
	if err != nil {
		return err
	}
	// the old token is dead server-side, keep the reissued one
	if err := a.creds.Save(session); err != nil {
		a.log.Warn("Failed to persist reissued token", zap.Error(err))
	}
	fmt.Println("Password changed.")
	return nil
}

func (a *app) cmdAddresses(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}
	switch args[0] {
	case "show":
		addresses, err := a.client.ListAddresses(ctx)
		if err != nil {
			return err
		}
		if len(addresses) == 0 {
			fmt.Println("No saved addresses.")
			return nil
		}
		for _, ad := range addresses {
			fmt.Printf("%s  %-12s %s, %s %s  %s\n", ad.ID, ad.Alias, ad.Details, ad.City, ad.PostalCode, ad.Phone)
		}
		return nil
	case "add":
		fs := flag.NewFlagSet("addresses add", flag.ExitOnError)
		alias := fs.String("alias", "", "address label")
		details := fs.String("details", "", "street address")
		city := fs.String("city", "", "city")
		phone := fs.String("phone", "", "phone number")
		postal := fs.String("postal", "", "postal code")
		fs.Parse(args[1:])
		addresses, err := a.client.AddAddress(ctx, api.AddressInput{
			Alias:      *alias,
			Details:    *details,
			City:       *city,
			Phone:      *phone,
			PostalCode: *postal,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Saved. %d addresses on file.\n", len(addresses))
		return nil
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("usage: addresses rm <addressID>")
		}
		addresses, err := a.client.RemoveAddress(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Removed. %d addresses on file.\n", len(addresses))
		return nil
	default:
		return fmt.Errorf("unknown addresses subcommand %q", args[0])
	}
}

func (a *app) cmdProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	keyword := fs.String("keyword", "", "search term")
	category := fs.String("category", "", "category id")
	brand := fs.String("brand", "", "brand id")
	sort := fs.String("sort", "", "sort key")
	page := fs.Int("page", 0, "page number")
	limit := fs.Int("limit", 0, "page size")
	minPrice := fs.String("min-price", "", "minimum price")
	maxPrice := fs.String("max-price", "", "maximum price")
	minRating := fs.Float64("min-rating", 0, "minimum rating")
	fs.Parse(args)

	if *keyword != "" {
		a.filters.SetKeyword(*keyword)
	}
	if *category != "" {
		a.filters.SetCategory(*category)
	}
	if *brand != "" {
		a.filters.SetBrand(*brand)
	}
	if *minPrice != "" || *maxPrice != "" {
		min, err := parsePrice(*minPrice)
		if err != nil {
			return err
		}
		max, err := parsePrice(*maxPrice)
		if err != nil {
			return err
		}
		a.filters.SetPriceRange(min, max)
	}
	if *minRating > 0 {
		a.filters.SetRatingMin(minRating)
	}
	if *sort != "" {
		a.filters.SetSort(*sort)
	}
	if *limit > 0 {
		a.filters.SetLimit(*limit)
	}
	if *page > 0 {
		a.filters.SetPage(*page)
	}

	result, err := a.client.ListProducts(ctx, a.filters.Current())
	if err != nil {
		return err
	}
	for _, p := range result.Items {
		line := fmt.Sprintf("%s  %-40s %8s", p.ID, truncate(p.Title, 40), p.EffectivePrice().StringFixed(2))
		if !p.InStock() {
			line += "  (out of stock)"
		}
		fmt.Println(line)
	}
	if pg := result.Pagination; pg != nil {
		fmt.Printf("Page %d of %d (%d results)\n", pg.CurrentPage, pg.NumberOfPages, result.Results)
	}
	return nil
}

func (a *app) cmdProduct(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: product <id>")
	}
	p, err := a.client.GetProduct(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s\n%s\n", p.Title, p.Description)
	fmt.Printf("Price: %s", p.Price.StringFixed(2))
	if p.PriceAfterDiscount != nil {
		fmt.Printf("  Now: %s", p.PriceAfterDiscount.StringFixed(2))
	}
	fmt.Printf("\nRating: %.1f (%d reviews)  Stock: %d  Sold: %d\n",
		p.RatingsAverage, p.RatingsQuantity, p.Quantity, p.Sold)
	if len(p.Colors) > 0 {
		fmt.Printf("Colors: %v\n", p.Colors)
	}
	if a.wishlist.Contains(p.ID) {
		fmt.Println("In your wishlist.")
	}
	return nil
}

func (a *app) cmdCategories(ctx context.Context) error {
	page, err := a.client.ListCategories(ctx, api.ListQuery{})
	if err != nil {
		return err
	}
	for _, c := range page.Items {
		fmt.Printf("%s  %s\n", c.ID, c.Name)
	}
	return nil
}

func (a *app) cmdBrands(ctx context.Context) error {
	page, err := a.client.ListBrands(ctx, api.ListQuery{})
	if err != nil {
		return err
	}
	for _, b := range page.Items {
		fmt.Printf("%s  %s\n", b.ID, b.Name)
	}
	return nil
}

func (a *app) cmdCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}
	switch args[0] {
	case "show":
		a.cart.Fetch(ctx)
		a.printCart()
		return nil
	case "add":
		fs := flag.NewFlagSet("cart add", flag.ExitOnError)
		color := fs.String("color", "", "variant color")
		if len(args) < 2 {
			return fmt.Errorf("usage: cart add <productID> [-color c]")
		}
		fs.Parse(args[2:])
		if err := a.cart.Add(ctx, args[1], *color); err != nil {
			return err
		}
		a.printCart()
		return nil
	case "qty":
		if len(args) < 3 {
			return fmt.Errorf("usage: cart qty <itemID> <quantity>")
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("quantity must be a number: %w", err)
		}
		if err := a.cart.UpdateQuantity(ctx, args[1], qty); err != nil {
			return err
		}
		a.printCart()
		return nil
	case "color":
		if len(args) < 3 {
			return fmt.Errorf("usage: cart color <itemID> <color>")
		}
		if err := a.cart.UpdateColor(ctx, args[1], args[2]); err != nil {
			return err
		}
		a.printCart()
		return nil
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("usage: cart rm <itemID>")
		}
		if err := a.cart.Remove(ctx, args[1]); err != nil {
			return err
		}
		a.printCart()
		return nil
	case "clear":
		if err := a.cart.Clear(ctx); err != nil {
			return err
		}
		fmt.Println("Cart cleared.")
		return nil
	case "coupon":
		if len(args) < 2 {
			return fmt.Errorf("usage: cart coupon <code>")
		}
		if err := a.cart.ApplyCoupon(ctx, args[1]); err != nil {
			return err
		}
		a.printCart()
		return nil
	default:
		return fmt.Errorf("unknown cart subcommand %q", args[0])
	}
}

func (a *app) printCart() {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("Cart is empty.")
		return
	}
	for _, item := range items {
		line := fmt.Sprintf("%s  %-40s x%-3d %8s", item.ID, truncate(item.ProductName, 40), item.Quantity, item.Price.StringFixed(2))
		if item.Color != "" {
			line += "  " + item.Color
		}
		fmt.Println(line)
	}
	fmt.Printf("Total: %s", a.cart.TotalPrice().StringFixed(2))
	if after := a.cart.TotalAfterDiscount(); after != nil {
		fmt.Printf("  After discount: %s", after.StringFixed(2))
	}
	fmt.Printf("  (%d items)\n", a.cart.NumItems())
}

func (a *app) cmdWishlist(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}
	switch args[0] {
	case "show":
		a.wishlist.Fetch(ctx)
		products := a.wishlist.Products()
		if len(products) == 0 {
			fmt.Println("Wishlist is empty.")
			return nil
		}
		for _, p := range products {
			fmt.Printf("%s  %-40s %8s\n", p.ID, truncate(p.Title, 40), p.EffectivePrice().StringFixed(2))
		}
		return nil
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: wishlist add <productID>")
		}
		if err := a.wishlist.Add(ctx, args[1]); err != nil {
			return err
		}
		fmt.Printf("Added. Wishlist has %d products.\n", len(a.wishlist.IDs()))
		return nil
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("usage: wishlist rm <productID>")
		}
		if err := a.wishlist.Remove(ctx, args[1]); err != nil {
			return err
		}
		fmt.Printf("Removed. Wishlist has %d products.\n", len(a.wishlist.IDs()))
		return nil
	default:
		return fmt.Errorf("unknown wishlist subcommand %q", args[0])
	}
}

func (a *app) cmdOrders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	fs.Parse(args)

	result, err := a.client.ListMyOrders(ctx, api.ListQuery{Page: *page})
	if err != nil {
		return err
	}
	if len(result.Items) == 0 {
		fmt.Println("No orders.")
		return nil
	}
	for _, o := range result.Items {
		fmt.Printf("%s  %s  %8s  %s\n", o.ID, o.CreatedAt.Format("2006-01-02"), o.TotalPrice.StringFixed(2), o.Status())
	}
	return nil
}

func (a *app) cmdOrder(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: order <id>")
	}
	o, err := a.client.GetOrder(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Order %s  %s  %s\n", o.ID, o.CreatedAt.Format("2006-01-02 15:04"), o.Status())
	for _, item := range o.Items {
		fmt.Printf("  %-40s x%-3d %8s\n", truncate(item.Product.Title, 40), item.Quantity, item.Price.StringFixed(2))
	}
	fmt.Printf("Tax: %s  Shipping: %s  Total: %s\n",
		o.TaxPrice.StringFixed(2), o.ShippingPrice.StringFixed(2), o.TotalPrice.StringFixed(2))
	fmt.Printf("Ship to: %s, %s  %s\n", o.Shipping.Details, o.Shipping.City, o.Shipping.Phone)
	return nil
}

func (a *app) cmdCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	address := fs.String("address", "", "street address")
	city := fs.String("city", "", "city")
	phone := fs.String("phone", "", "phone number")
	postal := fs.String("postal", "", "postal code")
	method := fs.String("method", "online", "payment method: cash or online")
	fs.Parse(args)

	a.cart.Fetch(ctx)
	cartID := a.cart.ID()
	if cartID == "" {
		return fmt.Errorf("cart is empty")
	}

	in := api.CreateOrderInput{
		Shipping: order.ShippingAddress{
			Details:    *address,
			City:       *city,
			Phone:      *phone,
			PostalCode: *postal,
		},
	}

	switch *method {
	case "cash":
		o, err := a.client.CreateCashOrder(ctx, cartID, in)
		if err != nil {
			return err
		}
		a.cart.Reset()
		fmt.Printf("Order %s placed, pay %s on delivery.\n", o.ID, o.TotalPrice.StringFixed(2))
		return nil
	case "online":
		session, err := a.client.CreateCheckoutSession(ctx, cartID, in)
		if err != nil {
			return err
		}
		listener := checkout.NewListener(a.cfg.Checkout.ListenAddr, a.cfg.Checkout.WaitLimit, a.log)
		fmt.Printf("Open this URL in your browser to pay:\n\n  %s\n\nWaiting for the payment page to redirect back...\n", session.URL)
		outcome, err := listener.Wait(ctx)
		if err != nil {
			return err
		}
		if !outcome.Paid {
			fmt.Println("Payment cancelled, your cart is unchanged.")
			return nil
		}
		a.cart.Reset()
		fmt.Println("Payment complete. Check `storefront orders` for the new order.")
		return nil
	default:
		return fmt.Errorf("unknown payment method %q", *method)
	}
}

func parsePrice(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return &d, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
