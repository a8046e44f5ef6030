package order

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_Status(t *testing.T) {
	tests := []struct {
		name      string
		paid      bool
		delivered bool
		want      string
	}{
		{"fresh order", false, false, "pending"},
		{"paid order", true, false, "paid"},
		{"delivered order", true, true, "delivered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Order{IsPaid: tt.paid, IsDelivered: tt.delivered}
			assert.Equal(t, tt.want, o.Status())
		})
	}
}

func TestOrder_DecodesDenormalizedLines(t *testing.T) {
	data := `{
		"_id": "o1",
		"user": {"_id": "u1", "name": "Dana", "email": "dana@example.com"},
		"cartItems": [
			{"product": {"_id": "p1", "title": "Mug", "price": 12.5, "imageCover": "mug.jpg"}, "quantity": 2, "price": 12.5},
			{"product": "p2", "quantity": 1, "price": 30}
		],
		"taxPrice": 5,
		"shippingPrice": 10,
		"totalOrderPrice": 70,
		"paymentMethodType": "online",
		"isPaid": true,
		"shippingAddress": {"details": "1 Main St", "city": "Cairo", "phone": "0100"}
	}`

	var o Order
	require.NoError(t, json.Unmarshal([]byte(data), &o))
	assert.Equal(t, "Dana", o.User.Name)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "Mug", o.Items[0].Product.Title)
	assert.Equal(t, "p2", o.Items[1].Product.ID)
	assert.Equal(t, "70", o.TotalPrice.String())
	assert.Equal(t, PaymentOnline, o.PaymentMethod)
	assert.Equal(t, "Cairo", o.Shipping.City)
}

func TestOrder_DecodesBuyerIDOnly(t *testing.T) {
	var o Order
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"o2","user":"u9","totalOrderPrice":10}`), &o))
	assert.Equal(t, "u9", o.User.ID)
	assert.Empty(t, o.User.Name)
}

func TestCoupon_Expired(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	c := Coupon{ExpiryDate: now.Add(24 * time.Hour)}
	assert.False(t, c.Expired(now))

	c.ExpiryDate = now.Add(-time.Minute)
	assert.True(t, c.Expired(now))
}
