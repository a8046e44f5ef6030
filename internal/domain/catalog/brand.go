package catalog

import (
	"encoding/json"
	"time"
)

// Brand is a product manufacturer or label
type Brand struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Image     string     `json:"image,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// BrandRef is a denormalized brand reference, decoded from either an id
// string or an embedded document
type BrandRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts either an id string or a brand document
func (r *BrandRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	type ref BrandRef
	var v ref
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = BrandRef(v)
	return nil
}
