package api

import (
	"context"
	"net/http"

	"github.com/shop/storefront/internal/domain/order"
)

// CreateOrderInput carries the shipping address for a checkout
type CreateOrderInput struct {
	Shipping order.ShippingAddress `json:"shippingAddress" validate:"required"`
}

// ListMyOrders fetches the current user's order history
func (c *Client) ListMyOrders(ctx context.Context, q ListQuery) (*Page[order.Order], error) {
	return c.listOrders(ctx, "/orders/my-orders", q)
}

// ListOrders fetches all orders (admin/manager only)
func (c *Client) ListOrders(ctx context.Context, q ListQuery) (*Page[order.Order], error) {
	return c.listOrders(ctx, "/orders", q)
}

func (c *Client) listOrders(ctx context.Context, path string, q ListQuery) (*Page[order.Order], error) {
	env, err := c.call(ctx, http.MethodGet, path, q.values(), nil)
	if err != nil {
		return nil, err
	}
	var orders []order.Order
	if err := env.decodeData(&orders); err != nil {
		return nil, err
	}
	return &Page[order.Order]{
		Items:      orders,
		Results:    env.Results,
		Pagination: env.pagination(),
	}, nil
}

// GetOrder fetches a single order
func (c *Client) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	env, err := c.call(ctx, http.MethodGet, "/orders/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	var o order.Order
	if err := env.decodeData(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateCashOrder converts the cart into a cash-on-delivery order
func (c *Client) CreateCashOrder(ctx context.Context, cartID string, in CreateOrderInput) (*order.Order, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPost, "/orders/"+cartID, nil, in)
	if err != nil {
		return nil, err
	}
	var o order.Order
	if err := env.decodeData(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateCheckoutSession asks the backend for a hosted payment session. The
// caller navigates the user to the returned URL; payment completion is
// detected only when the user lands back on the success route.
func (c *Client) CreateCheckoutSession(ctx context.Context, cartID string, in CreateOrderInput) (*order.CheckoutSession, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPost, "/orders/checkout-session/"+cartID, nil, in)
	if err != nil {
		return nil, err
	}
	var session order.CheckoutSession
	if len(env.Session) > 0 {
		if err := decodeRaw(env.Session, &session); err != nil {
			return nil, err
		}
	}
	return &session, nil
}

// MarkOrderPaid flips an order's paid flag (admin/manager only)
func (c *Client) MarkOrderPaid(ctx context.Context, id string) (*order.Order, error) {
	env, err := c.call(ctx, http.MethodPatch, "/orders/"+id+"/pay", nil, nil)
	if err != nil {
		return nil, err
	}
	var o order.Order
	if err := env.decodeData(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// MarkOrderDelivered flips an order's delivered flag (admin/manager only)
func (c *Client) MarkOrderDelivered(ctx context.Context, id string) (*order.Order, error) {
	env, err := c.call(ctx, http.MethodPatch, "/orders/"+id+"/deliver", nil, nil)
	if err != nil {
		return nil, err
	}
	var o order.Order
	if err := env.decodeData(&o); err != nil {
		return nil, err
	}
	return &o, nil
}
