package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon is a discount code managed from the admin back-office. The discount
// math itself runs on the backend when a code is applied to a cart.
type Coupon struct {
	ID             string          `json:"_id"`
	Name           string          `json:"name"`
	DiscountDegree decimal.Decimal `json:"discountDegree"`
	DiscountMax    decimal.Decimal `json:"discountMAX"`
	ExpiryDate     time.Time       `json:"expiryDate"`
	CreatedAt      *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time      `json:"updatedAt,omitempty"`
}

// Expired reports whether the coupon's expiry date has passed
func (c *Coupon) Expired(now time.Time) bool {
	return now.After(c.ExpiryDate)
}
