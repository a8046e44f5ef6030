package api

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shop/storefront/internal/domain/order"
)

// CouponInput creates or updates a discount code. The degree and cap feed the
// backend's discount math; the client never applies them itself.
type CouponInput struct {
	Name           string          `json:"name" validate:"required,min=2"`
	DiscountDegree decimal.Decimal `json:"discountDegree" validate:"required"`
	DiscountMax    decimal.Decimal `json:"discountMAX" validate:"required"`
	ExpiryDate     time.Time       `json:"expiryDate" validate:"required"`
}

// ListCoupons fetches one page of coupons (admin/manager only)
func (c *Client) ListCoupons(ctx context.Context, q ListQuery) (*Page[order.Coupon], error) {
	env, err := c.call(ctx, http.MethodGet, "/coupons", q.values(), nil)
	if err != nil {
		return nil, err
	}
	var coupons []order.Coupon
	if err := env.decodeData(&coupons); err != nil {
		return nil, err
	}
	return &Page[order.Coupon]{
		Items:      coupons,
		Results:    env.Results,
		Pagination: env.pagination(),
	}, nil
}

// GetCoupon fetches a single coupon
func (c *Client) GetCoupon(ctx context.Context, id string) (*order.Coupon, error) {
	env, err := c.call(ctx, http.MethodGet, "/coupons/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	var coupon order.Coupon
	if err := env.decodeData(&coupon); err != nil {
		return nil, err
	}
	return &coupon, nil
}

// CreateCoupon creates a coupon
func (c *Client) CreateCoupon(ctx context.Context, in CouponInput) (*order.Coupon, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPost, "/coupons", nil, in)
	if err != nil {
		return nil, err
	}
	var coupon order.Coupon
	if err := env.decodeData(&coupon); err != nil {
		return nil, err
	}
	return &coupon, nil
}

// UpdateCoupon updates a coupon
func (c *Client) UpdateCoupon(ctx context.Context, id string, in CouponInput) (*order.Coupon, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPut, "/coupons/"+id, nil, in)
	if err != nil {
		return nil, err
	}
	var coupon order.Coupon
	if err := env.decodeData(&coupon); err != nil {
		return nil, err
	}
	return &coupon, nil
}

// DeleteCoupon removes a coupon
func (c *Client) DeleteCoupon(ctx context.Context, id string) error {
	_, err := c.call(ctx, http.MethodDelete, "/coupons/"+id, nil, nil)
	return err
}
