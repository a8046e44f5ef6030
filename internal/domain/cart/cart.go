package cart

import (
	"github.com/shopspring/decimal"
)

// Item is a single cart line. Product name and image are denormalized copies
// for display so the cart page needs no extra product fetches.
type Item struct {
	ID           string          `json:"_id"`
	ProductID    string          `json:"product"`
	Quantity     int             `json:"quantity"`
	Color        string          `json:"color,omitempty"`
	Price        decimal.Decimal `json:"price"`
	ProductName  string          `json:"nameOfProduct,omitempty"`
	ProductImage string          `json:"productImage,omitempty"`
	Description  string          `json:"description,omitempty"`
}

// Cart is the shopping cart exactly as the backend returned it. Both totals
// are backend-computed and authoritative; the client never derives them from
// the items.
type Cart struct {
	ID                 string           `json:"_id"`
	UserID             string           `json:"user,omitempty"`
	Items              []Item           `json:"cartItems"`
	TotalPrice         decimal.Decimal  `json:"totalCartPrice"`
	TotalAfterDiscount *decimal.Decimal `json:"totalCartPriceAfterDiscount,omitempty"`
}
