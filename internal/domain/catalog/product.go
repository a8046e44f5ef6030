package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the catalog entity as returned by the backend. All monetary and
// rating figures are computed server-side; the client only displays them.
type Product struct {
	ID                 string           `json:"_id"`
	Title              string           `json:"title"`
	Slug               string           `json:"slug"`
	Description        string           `json:"description"`
	Quantity           int              `json:"quantity"`
	Sold               int              `json:"sold"`
	Price              decimal.Decimal  `json:"price"`
	PriceAfterDiscount *decimal.Decimal `json:"priceAfterDiscount,omitempty"`
	Colors             []string         `json:"colors,omitempty"`
	ImageCover         string           `json:"imageCover"`
	Images             []string         `json:"images,omitempty"`
	Category           CategoryRef      `json:"category"`
	SubCategories      []CategoryRef    `json:"subCategory,omitempty"`
	Brand              *BrandRef        `json:"brand,omitempty"`
	RatingsAverage     float64          `json:"ratingsAverage"`
	RatingsQuantity    int              `json:"ratingsQuantity"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          *time.Time       `json:"updatedAt,omitempty"`
}

// EffectivePrice returns the discounted price when the backend set one
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.PriceAfterDiscount != nil {
		return *p.PriceAfterDiscount
	}
	return p.Price
}

// InStock reports whether the backend last saw sellable stock. Stock is
// validated again on every cart mutation, this is a display hint only.
func (p *Product) InStock() bool {
	return p.Quantity > 0
}
