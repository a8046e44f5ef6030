package catalog

import (
	"encoding/json"
	"time"
)

// Category groups products for browsing and filtering
type Category struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Image     string     `json:"image,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// SubCategory is a second-level grouping under a parent category
type SubCategory struct {
	ID        string      `json:"_id"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	Category  CategoryRef `json:"category"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt *time.Time  `json:"updatedAt,omitempty"`
}

// CategoryRef is a denormalized category reference. Depending on the endpoint
// the backend returns either a bare object id or an embedded document, so it
// decodes both shapes.
type CategoryRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// UnmarshalJSON accepts either an id string or a category document
func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	type ref CategoryRef
	var v ref
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = CategoryRef(v)
	return nil
}
