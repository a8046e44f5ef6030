package identity

// Address is a saved shipping address on the user's profile
type Address struct {
	ID         string `json:"_id,omitempty"`
	Alias      string `json:"alias"`
	Details    string `json:"details"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}
