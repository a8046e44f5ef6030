package api

import (
	"context"
	"net/http"

	"github.com/shop/storefront/internal/domain/catalog"
)

// ReviewInput creates or updates a product review
type ReviewInput struct {
	Title   string  `json:"title,omitempty"`
	Content string  `json:"content" validate:"required"`
	Rating  float64 `json:"rating" validate:"required,min=1,max=5"`
}

// ListProductReviews fetches one page of reviews for a product
func (c *Client) ListProductReviews(ctx context.Context, productID string, q ListQuery) (*Page[catalog.Review], error) {
	return c.listReviews(ctx, "/products/"+productID+"/reviews", q)
}

// ListReviews fetches all reviews across products (admin only)
func (c *Client) ListReviews(ctx context.Context, q ListQuery) (*Page[catalog.Review], error) {
	return c.listReviews(ctx, "/reviews", q)
}

func (c *Client) listReviews(ctx context.Context, path string, q ListQuery) (*Page[catalog.Review], error) {
	env, err := c.call(ctx, http.MethodGet, path, q.values(), nil)
	if err != nil {
		return nil, err
	}
	var reviews []catalog.Review
	if err := env.decodeData(&reviews); err != nil {
		return nil, err
	}
	return &Page[catalog.Review]{
		Items:      reviews,
		Results:    env.Results,
		Pagination: env.pagination(),
	}, nil
}

// CreateReview posts a review on a product
func (c *Client) CreateReview(ctx context.Context, productID string, in ReviewInput) (*catalog.Review, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPost, "/products/"+productID+"/reviews", nil, in)
	if err != nil {
		return nil, err
	}
	var review catalog.Review
	if err := env.decodeData(&review); err != nil {
		return nil, err
	}
	return &review, nil
}

// UpdateReview edits the caller's own review
func (c *Client) UpdateReview(ctx context.Context, id string, in ReviewInput) (*catalog.Review, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPut, "/reviews/"+id, nil, in)
	if err != nil {
		return nil, err
	}
	var review catalog.Review
	if err := env.decodeData(&review); err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview removes a review (own review, or any review for admins)
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	_, err := c.call(ctx, http.MethodDelete, "/reviews/"+id, nil, nil)
	return err
}
