package api

import (
	"context"
	"net/http"

	"github.com/shop/storefront/internal/domain/catalog"
)

// ListCategories fetches one page of categories
func (c *Client) ListCategories(ctx context.Context, q ListQuery) (*Page[catalog.Category], error) {
	env, err := c.call(ctx, http.MethodGet, "/categories", q.values(), nil)
	if err != nil {
		return nil, err
	}
	var categories []catalog.Category
	if err := env.decodeData(&categories); err != nil {
		return nil, err
	}
	return &Page[catalog.Category]{
		Items:      categories,
		Results:    env.Results,
		Pagination: env.pagination(),
	}, nil
}

// GetCategory fetches a single category
func (c *Client) GetCategory(ctx context.Context, id string) (*catalog.Category, error) {
	env, err := c.call(ctx, http.MethodGet, "/categories/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	var category catalog.Category
	if err := env.decodeData(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// ListSubCategories fetches the subcategories under a category
func (c *Client) ListSubCategories(ctx context.Context, categoryID string) ([]catalog.SubCategory, error) {
	env, err := c.call(ctx, http.MethodGet, "/categories/"+categoryID+"/subcategories", nil, nil)
	if err != nil {
		return nil, err
	}
	var subs []catalog.SubCategory
	if err := env.decodeData(&subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// ---------------------------------------------------------------------------
// Admin / manager operations
// ---------------------------------------------------------------------------

// CategoryInput creates or renames a category; the image is optional
type CategoryInput struct {
	Name  string `json:"name" validate:"required,min=2"`
	Image *File  `json:"-"`
}

// CreateCategory creates a category, as multipart when an image is attached
func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*catalog.Category, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.submitNamed(ctx, http.MethodPost, "/categories", in.Name, in.Image)
	if err != nil {
		return nil, err
	}
	var category catalog.Category
	if err := env.decodeData(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory updates a category, as multipart when an image is attached
func (c *Client) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*catalog.Category, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.submitNamed(ctx, http.MethodPut, "/categories/"+id, in.Name, in.Image)
	if err != nil {
		return nil, err
	}
	var category catalog.Category
	if err := env.decodeData(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	_, err := c.call(ctx, http.MethodDelete, "/categories/"+id, nil, nil)
	return err
}

// submitNamed sends a name-plus-optional-image payload, shared by the
// category and brand endpoints which have identical shapes
func (c *Client) submitNamed(ctx context.Context, method, path, name string, image *File) (*envelope, error) {
	if image != nil {
		p := newFormPayload()
		p.set("name", name)
		p.addFile("image", *image)
		return c.callForm(ctx, method, path, p)
	}
	body := map[string]any{"name": name}
	return c.call(ctx, method, path, nil, body)
}

// ---------------------------------------------------------------------------
// Subcategories
// ---------------------------------------------------------------------------

// SubCategoryInput creates or updates a subcategory
type SubCategoryInput struct {
	Name       string `json:"name" validate:"required,min=2"`
	CategoryID string `json:"category" validate:"required"`
}

// ListAllSubCategories fetches one page of subcategories across categories
func (c *Client) ListAllSubCategories(ctx context.Context, q ListQuery) (*Page[catalog.SubCategory], error) {
	env, err := c.call(ctx, http.MethodGet, "/subcategories", q.values(), nil)
	if err != nil {
		return nil, err
	}
	var subs []catalog.SubCategory
	if err := env.decodeData(&subs); err != nil {
		return nil, err
	}
	return &Page[catalog.SubCategory]{
		Items:      subs,
		Results:    env.Results,
		Pagination: env.pagination(),
	}, nil
}

// CreateSubCategory creates a subcategory under a parent category
func (c *Client) CreateSubCategory(ctx context.Context, in SubCategoryInput) (*catalog.SubCategory, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPost, "/subcategories", nil, in)
	if err != nil {
		return nil, err
	}
	var sub catalog.SubCategory
	if err := env.decodeData(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpdateSubCategory updates a subcategory
func (c *Client) UpdateSubCategory(ctx context.Context, id string, in SubCategoryInput) (*catalog.SubCategory, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPut, "/subcategories/"+id, nil, in)
	if err != nil {
		return nil, err
	}
	var sub catalog.SubCategory
	if err := env.decodeData(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// DeleteSubCategory removes a subcategory
func (c *Client) DeleteSubCategory(ctx context.Context, id string) error {
	_, err := c.call(ctx, http.MethodDelete, "/subcategories/"+id, nil, nil)
	return err
}
