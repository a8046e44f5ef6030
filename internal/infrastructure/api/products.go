package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/shop/storefront/internal/domain/catalog"
)

// ListProducts fetches one page of the catalog under the given filter
func (c *Client) ListProducts(ctx context.Context, filter catalog.ProductFilter) (*Page[catalog.Product], error) {
	env, err := c.call(ctx, http.MethodGet, "/products", filter.QueryValues(), nil)
	if err != nil {
		return nil, err
	}
	var products []catalog.Product
	if err := env.decodeData(&products); err != nil {
		return nil, err
	}
	return &Page[catalog.Product]{
		Items:      products,
		Results:    env.Results,
		Pagination: env.pagination(),
	}, nil
}

// GetProduct fetches a single product with its embedded reviews
func (c *Client) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	env, err := c.call(ctx, http.MethodGet, "/products/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	var product catalog.Product
	if err := env.decodeData(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ---------------------------------------------------------------------------
// Admin / manager operations
// ---------------------------------------------------------------------------

// CreateProductInput is the admin product-creation payload. The cover image
// is mandatory and always travels as a multipart part.
type CreateProductInput struct {
	Title              string           `validate:"required,min=3"`
	Description        string           `validate:"required"`
	Quantity           int              `validate:"min=0"`
	Price              decimal.Decimal  `validate:"required"`
	PriceAfterDiscount *decimal.Decimal
	Colors             []string
	CategoryID         string `validate:"required"`
	SubCategoryIDs     []string
	BrandID            string
	ImageCover         File `validate:"required"`
	Images             []File
}

// UpdateProductInput is the admin product-update payload; zero values are
// omitted so the backend treats the request as a partial update
type UpdateProductInput struct {
	Title              string
	Description        string
	Quantity           *int
	Price              *decimal.Decimal
	PriceAfterDiscount *decimal.Decimal
	Colors             []string
	CategoryID         string
	SubCategoryIDs     []string
	BrandID            string
	ImageCover         *File
	Images             []File
}

func (in CreateProductInput) form() *formPayload {
	p := newFormPayload()
	p.set("title", in.Title)
	p.set("description", in.Description)
	p.set("quantity", strconv.Itoa(in.Quantity))
	p.set("price", in.Price.String())
	if in.PriceAfterDiscount != nil {
		p.set("priceAfterDiscount", in.PriceAfterDiscount.String())
	}
	for _, color := range in.Colors {
		p.add("colors", color)
	}
	p.set("category", in.CategoryID)
	for _, id := range in.SubCategoryIDs {
		p.add("subCategory", id)
	}
	p.set("brand", in.BrandID)
	p.addFile("imageCover", in.ImageCover)
	for _, img := range in.Images {
		p.addFile("images", img)
	}
	return p
}

func (in UpdateProductInput) form() *formPayload {
	p := newFormPayload()
	p.set("title", in.Title)
	p.set("description", in.Description)
	if in.Quantity != nil {
		p.set("quantity", strconv.Itoa(*in.Quantity))
	}
	if in.Price != nil {
		p.set("price", in.Price.String())
	}
	if in.PriceAfterDiscount != nil {
		p.set("priceAfterDiscount", in.PriceAfterDiscount.String())
	}
	for _, color := range in.Colors {
		p.add("colors", color)
	}
	p.set("category", in.CategoryID)
	for _, id := range in.SubCategoryIDs {
		p.add("subCategory", id)
	}
	p.set("brand", in.BrandID)
	if in.ImageCover != nil {
		p.addFile("imageCover", *in.ImageCover)
	}
	for _, img := range in.Images {
		p.addFile("images", img)
	}
	return p
}

// CreateProduct creates a product with its images
func (c *Client) CreateProduct(ctx context.Context, in CreateProductInput) (*catalog.Product, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.callForm(ctx, http.MethodPost, "/products", in.form())
	if err != nil {
		return nil, err
	}
	var product catalog.Product
	if err := env.decodeData(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct partially updates a product. A JSON body is used unless the
// payload carries binary image data.
func (c *Client) UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*catalog.Product, error) {
	form := in.form()
	var env *envelope
	var err error
	if form.hasFiles() {
		env, err = c.callForm(ctx, http.MethodPut, "/products/"+id, form)
	} else {
		env, err = c.call(ctx, http.MethodPut, "/products/"+id, nil, in.jsonBody())
	}
	if err != nil {
		return nil, err
	}
	var product catalog.Product
	if err := env.decodeData(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// jsonBody renders the update as a sparse JSON object
func (in UpdateProductInput) jsonBody() map[string]any {
	body := map[string]any{}
	if in.Title != "" {
		body["title"] = in.Title
	}
	if in.Description != "" {
		body["description"] = in.Description
	}
	if in.Quantity != nil {
		body["quantity"] = *in.Quantity
	}
	if in.Price != nil {
		body["price"] = *in.Price
	}
	if in.PriceAfterDiscount != nil {
		body["priceAfterDiscount"] = *in.PriceAfterDiscount
	}
	if len(in.Colors) > 0 {
		body["colors"] = in.Colors
	}
	if in.CategoryID != "" {
		body["category"] = in.CategoryID
	}
	if len(in.SubCategoryIDs) > 0 {
		body["subCategory"] = in.SubCategoryIDs
	}
	if in.BrandID != "" {
		body["brand"] = in.BrandID
	}
	return body
}

// DeleteProduct removes a product from the catalog
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.call(ctx, http.MethodDelete, "/products/"+id, nil, nil)
	return err
}
