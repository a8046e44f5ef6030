package api

import (
	"context"
	"net/http"

	"github.com/shop/storefront/internal/domain/catalog"
)

// GetWishlist returns the full product documents on the wishlist
func (c *Client) GetWishlist(ctx context.Context) ([]catalog.Product, error) {
	env, err := c.call(ctx, http.MethodGet, "/wishlist", nil, nil)
	if err != nil {
		return nil, err
	}
	var products []catalog.Product
	if err := env.decodeData(&products); err != nil {
		return nil, err
	}
	return products, nil
}

// AddToWishlist adds a product and returns the resulting id list. The add
// endpoint returns ids only, not product documents.
func (c *Client) AddToWishlist(ctx context.Context, productID string) ([]string, error) {
	in := struct {
		ProductID string `json:"productId" validate:"required"`
	}{ProductID: productID}
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPost, "/wishlist", nil, in)
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := env.decodeData(&ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// RemoveFromWishlist removes a product and returns the remaining id list
func (c *Client) RemoveFromWishlist(ctx context.Context, productID string) ([]string, error) {
	env, err := c.call(ctx, http.MethodDelete, "/wishlist/"+productID, nil, nil)
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := env.decodeData(&ids); err != nil {
		return nil, err
	}
	return ids, nil
}
