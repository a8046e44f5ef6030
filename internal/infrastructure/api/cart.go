package api

import (
	"context"
	"net/http"

	"github.com/shop/storefront/internal/domain/cart"
)

// CartResult is a cart snapshot plus the backend's item count
type CartResult struct {
	Cart     cart.Cart
	NumItems int
}

// AddCartItemInput adds a product to the cart
type AddCartItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Color     string `json:"color,omitempty"`
}

func (c *Client) decodeCart(env *envelope) (*CartResult, error) {
	var ct cart.Cart
	if err := env.decodeData(&ct); err != nil {
		return nil, err
	}
	return &CartResult{Cart: ct, NumItems: env.NumOfCartItems}, nil
}

// GetCart fetches the current user's cart
func (c *Client) GetCart(ctx context.Context) (*CartResult, error) {
	env, err := c.call(ctx, http.MethodGet, "/my-cart", nil, nil)
	if err != nil {
		return nil, err
	}
	return c.decodeCart(env)
}

// AddCartItem adds a product and returns the whole updated cart
func (c *Client) AddCartItem(ctx context.Context, in AddCartItemInput) (*CartResult, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPost, "/my-cart", nil, in)
	if err != nil {
		return nil, err
	}
	return c.decodeCart(env)
}

// UpdateCartItemQuantity changes a line's quantity. The backend re-validates
// stock, so the call can be rejected.
func (c *Client) UpdateCartItemQuantity(ctx context.Context, itemID string, quantity int) (*CartResult, error) {
	in := struct {
		Quantity int `json:"quantity" validate:"required,min=1"`
	}{Quantity: quantity}
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPatch, "/my-cart/"+itemID, nil, in)
	if err != nil {
		return nil, err
	}
	return c.decodeCart(env)
}

// UpdateCartItemColor changes a line's chosen color variant
func (c *Client) UpdateCartItemColor(ctx context.Context, itemID, color string) (*CartResult, error) {
	in := struct {
		Color string `json:"color" validate:"required"`
	}{Color: color}
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPatch, "/my-cart/"+itemID+"/color", nil, in)
	if err != nil {
		return nil, err
	}
	return c.decodeCart(env)
}

// RemoveCartItem deletes a line and returns the remaining cart
func (c *Client) RemoveCartItem(ctx context.Context, itemID string) (*CartResult, error) {
	env, err := c.call(ctx, http.MethodDelete, "/my-cart/"+itemID, nil, nil)
	if err != nil {
		return nil, err
	}
	return c.decodeCart(env)
}

// ClearCart deletes the whole backend cart
func (c *Client) ClearCart(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodDelete, "/my-cart", nil, nil)
	return err
}

// ApplyCoupon applies a discount code. The backend returns the recomputed
// totals; codes are normalized server-side to uppercase.
func (c *Client) ApplyCoupon(ctx context.Context, code string) (*CartResult, error) {
	in := struct {
		CouponName string `json:"couponName" validate:"required"`
	}{CouponName: code}
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPatch, "/my-cart/applyCoupon", nil, in)
	if err != nil {
		return nil, err
	}
	return c.decodeCart(env)
}
