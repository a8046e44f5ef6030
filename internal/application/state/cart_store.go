package state

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shop/storefront/internal/domain/cart"
	"github.com/shop/storefront/internal/infrastructure/api"
)

// CartStore mirrors the backend cart. Because pricing, stock and coupon math
// are backend-authoritative, every mutation discards the local copy and
// replaces it with the server response verbatim; the store never merges or
// recomputes. Rejected mutations leave the local state untouched and the
// error is returned for the UI to display.
type CartStore struct {
	client *api.Client
	logger *zap.Logger

	mu                 sync.Mutex
	cartID             string
	items              []cart.Item
	numItems           int
	totalPrice         decimal.Decimal
	totalAfterDiscount *decimal.Decimal
}

// NewCartStore creates a cart store backed by the given client
func NewCartStore(client *api.Client, logger *zap.Logger) *CartStore {
	return &CartStore{client: client, logger: logger}
}

// Fetch loads the cart lazily. A failure (the cart may simply not exist yet)
// is swallowed into an empty cart rather than surfaced, so a broken fetch
// never breaks the page.
func (s *CartStore) Fetch(ctx context.Context) {
	res, err := s.client.GetCart(ctx)
	if err != nil {
		s.logger.Debug("Cart fetch failed, treating as empty", zap.Error(err))
		s.Reset()
		return
	}
	s.replace(res)
}

// Add puts a product (optionally a specific color variant) in the cart
func (s *CartStore) Add(ctx context.Context, productID, color string) error {
	res, err := s.client.AddCartItem(ctx, api.AddCartItemInput{ProductID: productID, Color: color})
	if err != nil {
		return err
	}
	s.replace(res)
	return nil
}

// UpdateQuantity changes a line's quantity. No optimistic value is shown:
// the backend can reject the change on insufficient stock, and a visible
// rollback would be worse than a short pending spinner.
func (s *CartStore) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	res, err := s.client.UpdateCartItemQuantity(ctx, itemID, quantity)
	if err != nil {
		return err
	}
	s.replace(res)
	return nil
}

// UpdateColor changes a line's chosen color variant
func (s *CartStore) UpdateColor(ctx context.Context, itemID, color string) error {
	res, err := s.client.UpdateCartItemColor(ctx, itemID, color)
	if err != nil {
		return err
	}
	s.replace(res)
	return nil
}

// Remove deletes a line
func (s *CartStore) Remove(ctx context.Context, itemID string) error {
	res, err := s.client.RemoveCartItem(ctx, itemID)
	if err != nil {
		return err
	}
	s.replace(res)
	return nil
}

// ApplyCoupon applies a discount code, uppercased before sending. Only the
// two totals change; the line items are left exactly as they were.
func (s *CartStore) ApplyCoupon(ctx context.Context, code string) error {
	res, err := s.client.ApplyCoupon(ctx, strings.ToUpper(code))
	if err != nil {
		return err
	}
	if res.Cart.TotalAfterDiscount == nil {
		// Flagged, not fixed: the backend is trusted on totals shape, but a
		// missing discounted total after a successful apply is worth a trace
		s.logger.Debug("Coupon applied but no discounted total returned")
	}
	s.mu.Lock()
	s.totalPrice = res.Cart.TotalPrice
	s.totalAfterDiscount = res.Cart.TotalAfterDiscount
	s.mu.Unlock()
	return nil
}

// Clear deletes the backend cart, then zeroes local state
func (s *CartStore) Clear(ctx context.Context) error {
	if err := s.client.ClearCart(ctx); err != nil {
		return err
	}
	s.Reset()
	return nil
}

// Reset zeroes local state only. Used after a hosted payment completes: the
// backend cart is already gone by then, so there is nothing left to delete.
func (s *CartStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartID = ""
	s.items = nil
	s.numItems = 0
	s.totalPrice = decimal.Zero
	s.totalAfterDiscount = nil
}

// replace adopts a server cart snapshot wholesale
func (s *CartStore) replace(res *api.CartResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartID = res.Cart.ID
	s.items = res.Cart.Items
	s.numItems = res.NumItems
	s.totalPrice = res.Cart.TotalPrice
	s.totalAfterDiscount = res.Cart.TotalAfterDiscount
}

// ID returns the backend cart id, needed for checkout endpoints
func (s *CartStore) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartID
}

// Items returns a copy of the cart lines
func (s *CartStore) Items() []cart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]cart.Item, len(s.items))
	copy(items, s.items)
	return items
}

// NumItems returns the backend's item count
func (s *CartStore) NumItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.numItems
}

// TotalPrice returns the backend-computed pre-discount total
func (s *CartStore) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPrice
}

// TotalAfterDiscount returns the backend-computed discounted total, nil
// when no coupon applies
func (s *CartStore) TotalAfterDiscount() *decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.totalAfterDiscount == nil {
		return nil
	}
	v := *s.totalAfterDiscount
	return &v
}
