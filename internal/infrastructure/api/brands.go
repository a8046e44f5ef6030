package api

import (
	"context"
	"net/http"

	"github.com/shop/storefront/internal/domain/catalog"
)

// BrandInput creates or renames a brand; the image is optional
type BrandInput struct {
	Name  string `json:"name" validate:"required,min=2"`
	Image *File  `json:"-"`
}

// ListBrands fetches one page of brands
func (c *Client) ListBrands(ctx context.Context, q ListQuery) (*Page[catalog.Brand], error) {
	env, err := c.call(ctx, http.MethodGet, "/brands", q.values(), nil)
	if err != nil {
		return nil, err
	}
	var brands []catalog.Brand
	if err := env.decodeData(&brands); err != nil {
		return nil, err
	}
	return &Page[catalog.Brand]{
		Items:      brands,
		Results:    env.Results,
		Pagination: env.pagination(),
	}, nil
}

// GetBrand fetches a single brand
func (c *Client) GetBrand(ctx context.Context, id string) (*catalog.Brand, error) {
	env, err := c.call(ctx, http.MethodGet, "/brands/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	var brand catalog.Brand
	if err := env.decodeData(&brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

// CreateBrand creates a brand, as multipart when an image is attached
func (c *Client) CreateBrand(ctx context.Context, in BrandInput) (*catalog.Brand, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.submitNamed(ctx, http.MethodPost, "/brands", in.Name, in.Image)
	if err != nil {
		return nil, err
	}
	var brand catalog.Brand
	if err := env.decodeData(&brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

// UpdateBrand updates a brand, as multipart when an image is attached
func (c *Client) UpdateBrand(ctx context.Context, id string, in BrandInput) (*catalog.Brand, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.submitNamed(ctx, http.MethodPut, "/brands/"+id, in.Name, in.Image)
	if err != nil {
		return nil, err
	}
	var brand catalog.Brand
	if err := env.decodeData(&brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

// DeleteBrand removes a brand
func (c *Client) DeleteBrand(ctx context.Context, id string) error {
	_, err := c.call(ctx, http.MethodDelete, "/brands/"+id, nil, nil)
	return err
}
