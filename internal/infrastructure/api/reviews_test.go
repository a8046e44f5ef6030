package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProductReviews_DecodesMixedReviewerShapes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/p1/reviews", r.URL.Path)
		w.Write([]byte(`{
			"results": 2,
			"paginationResult": {"currentPage": 1, "limit": 10, "numberOfPages": 1},
			"data": [
				{"_id": "r1", "content": "Solid build", "rating": 5,
				 "user": {"_id": "u1", "name": "Dana", "avatar": "dana.jpg"},
				 "product": "p1", "createdAt": "2026-08-01T10:00:00Z"},
				{"_id": "r2", "content": "Arrived late", "rating": 3,
				 "user": "u2", "product": "p1", "createdAt": "2026-08-02T10:00:00Z"}
			]
		}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)

	page, err := client.ListProductReviews(context.Background(), "p1", ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	assert.Equal(t, "Dana", page.Items[0].User.Name)
	assert.Equal(t, "u2", page.Items[1].User.ID)
	assert.Empty(t, page.Items[1].User.Name)
}

func TestCreateReview_PostsToProductPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/products/p1/reviews", r.URL.Path)

		var in ReviewInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Great mug", in.Title)
		assert.Equal(t, 4.0, in.Rating)

		w.Write([]byte(`{"data": {"_id": "r3", "title": "Great mug", "content": "Keeps coffee hot",
			"rating": 4, "user": "u1", "product": "p1", "createdAt": "2026-08-03T10:00:00Z"}}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)

	review, err := client.CreateReview(context.Background(), "p1", ReviewInput{
		Title:   "Great mug",
		Content: "Keeps coffee hot",
		Rating:  4,
	})
	require.NoError(t, err)
	assert.Equal(t, "r3", review.ID)
	assert.Equal(t, "p1", review.ProductID)
}

func TestCreateReview_RejectsOutOfRangeRating(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid rating must not reach the backend")
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)

	_, err := client.CreateReview(context.Background(), "p1", ReviewInput{Content: "way too good", Rating: 6})
	assert.Error(t, err)
}
