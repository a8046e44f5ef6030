package order

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how an order was (or will be) paid
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
)

// ShippingAddress is the delivery target captured at checkout
type ShippingAddress struct {
	Details    string   `json:"details"`
	Phone      string   `json:"phone"`
	City       string   `json:"city"`
	PostalCode string   `json:"postalCode"`
	Country    *Country `json:"country,omitempty"`
}

// Country identifies a supported shipping destination
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Item is an order line frozen at purchase time. The product reference may be
// an id or a denormalized document depending on the endpoint.
type Item struct {
	ID       string          `json:"_id,omitempty"`
	Product  ProductRef      `json:"product"`
	Quantity int             `json:"quantity"`
	Color    string          `json:"color,omitempty"`
	Price    decimal.Decimal `json:"price"`
}

// ProductRef is the denormalized product snapshot on an order line
type ProductRef struct {
	ID         string          `json:"_id"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	ImageCover string          `json:"imageCover"`
}

// UnmarshalJSON accepts either a product id string or an embedded document
func (r *ProductRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	type ref ProductRef
	var v ref
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = ProductRef(v)
	return nil
}

// BuyerRef is the denormalized order owner shown on admin order lists
type BuyerRef struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// UnmarshalJSON accepts either a user id string or an embedded user document
func (r *BuyerRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	type ref BuyerRef
	var v ref
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = BuyerRef(v)
	return nil
}

// Order is a completed checkout. Tax, shipping and the grand total are all
// backend-computed.
type Order struct {
	ID            string          `json:"_id"`
	User          BuyerRef        `json:"user"`
	Items         []Item          `json:"cartItems"`
	TaxPrice      decimal.Decimal `json:"taxPrice"`
	ShippingPrice decimal.Decimal `json:"shippingPrice"`
	Shipping      ShippingAddress `json:"shippingAddress"`
	TotalPrice    decimal.Decimal `json:"totalOrderPrice"`
	PaymentMethod PaymentMethod   `json:"paymentMethodType"`
	IsPaid        bool            `json:"isPaid"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	IsDelivered   bool            `json:"isDelivered"`
	DeliveredAt   *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     *time.Time      `json:"updatedAt,omitempty"`
}

// Status derives the display status from the paid/delivered flags
func (o *Order) Status() string {
	switch {
	case o.IsDelivered:
		return "delivered"
	case o.IsPaid:
		return "paid"
	default:
		return "pending"
	}
}
