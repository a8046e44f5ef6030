package catalog

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// Sort keys accepted by the product list endpoint. A leading dash means
// descending order.
const (
	SortNewest      = "-createdAt"
	SortOldest      = "createdAt"
	SortPriceAsc    = "price"
	SortPriceDesc   = "-price"
	SortTopRated    = "-ratingsAverage"
	SortBestSelling = "-sold"
)

// DefaultPageSize matches the backend's default product page size
const DefaultPageSize = 12

// ProductFilter is the view-side selection of browsing criteria. It has no
// server echo; it only projects into query parameters on each list fetch.
type ProductFilter struct {
	Keyword    string
	CategoryID string
	BrandID    string
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	RatingMin  *float64
	Sort       string
	Page       int
	Limit      int
}

// NewProductFilter returns a filter with backend-compatible defaults
func NewProductFilter() ProductFilter {
	return ProductFilter{
		Sort:  SortNewest,
		Page:  1,
		Limit: DefaultPageSize,
	}
}

// QueryValues projects the filter into list-endpoint query parameters.
// Range criteria use the backend's bracket syntax (price[gte], price[lte]).
func (f ProductFilter) QueryValues() url.Values {
	v := url.Values{}
	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(limit))
	if f.Sort != "" {
		v.Set("sort", f.Sort)
	}
	if f.Keyword != "" {
		v.Set("keyword", f.Keyword)
	}
	if f.CategoryID != "" {
		v.Set("category", f.CategoryID)
	}
	if f.BrandID != "" {
		v.Set("brand", f.BrandID)
	}
	if f.PriceMin != nil {
		v.Set("price[gte]", f.PriceMin.String())
	}
	if f.PriceMax != nil {
		v.Set("price[lte]", f.PriceMax.String())
	}
	if f.RatingMin != nil {
		v.Set("ratingsAverage[gte]", strconv.FormatFloat(*f.RatingMin, 'f', -1, 64))
	}
	return v
}
