package catalog

import (
	"encoding/json"
	"time"
)

// Review is a customer rating with optional text, attached to a product
type Review struct {
	ID        string      `json:"_id"`
	Title     string      `json:"title,omitempty"`
	Content   string      `json:"content"`
	Rating    float64     `json:"rating"`
	User      ReviewerRef `json:"user"`
	ProductID string      `json:"product"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt *time.Time  `json:"updatedAt,omitempty"`
}

// ReviewerRef is the denormalized author of a review
type ReviewerRef struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// UnmarshalJSON accepts either a user id string or an embedded user document
func (r *ReviewerRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	type ref ReviewerRef
	var v ref
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = ReviewerRef(v)
	return nil
}
