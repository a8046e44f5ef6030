package api

import (
	"context"
	"net/http"

	"github.com/shop/storefront/internal/domain/identity"
)

// AddressInput saves a new shipping address on the profile
type AddressInput struct {
	Alias      string `json:"alias" validate:"required"`
	Details    string `json:"details" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
}

// ListAddresses fetches the saved addresses
func (c *Client) ListAddresses(ctx context.Context) ([]identity.Address, error) {
	env, err := c.call(ctx, http.MethodGet, "/addresses", nil, nil)
	if err != nil {
		return nil, err
	}
	var addresses []identity.Address
	if err := env.decodeData(&addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// AddAddress saves an address and returns the full updated list
func (c *Client) AddAddress(ctx context.Context, in AddressInput) ([]identity.Address, error) {
	if err := c.checkInput(in); err != nil {
		return nil, err
	}
	env, err := c.call(ctx, http.MethodPost, "/addresses", nil, in)
	if err != nil {
		return nil, err
	}
	var addresses []identity.Address
	if err := env.decodeData(&addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// RemoveAddress deletes an address and returns the remaining list
func (c *Client) RemoveAddress(ctx context.Context, addressID string) ([]identity.Address, error) {
	env, err := c.call(ctx, http.MethodDelete, "/addresses/"+addressID, nil, nil)
	if err != nil {
		return nil, err
	}
	var addresses []identity.Address
	if err := env.decodeData(&addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}
