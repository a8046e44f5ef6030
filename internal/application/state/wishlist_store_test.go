package state

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shop/storefront/internal/domain/shared"
)

const wishlistBody = `{
	"results": 2,
	"data": [
		{"_id": "p1", "title": "Mug", "price": 10, "quantity": 5, "category": "c1"},
		{"_id": "p2", "title": "Kettle", "price": 30, "quantity": 1, "category": "c1"}
	]
}`

func TestWishlistStore_FetchPopulatesIDsAndProducts(t *testing.T) {
	client := newStateClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(wishlistBody))
	})
	store := NewWishlistStore(client, zap.NewNop())

	store.Fetch(context.Background())

	assert.Equal(t, []string{"p1", "p2"}, store.IDs())
	assert.Len(t, store.Products(), 2)
	assert.True(t, store.Contains("p1"))
	assert.False(t, store.Contains("p9"))
}

func TestWishlistStore_AddRefetchesOnSuccess(t *testing.T) {
	var methods []string
	client := newStateClient(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.Method == http.MethodPost {
			// The add endpoint only returns ids, no product documents
			w.Write([]byte(`{"status":"success","data":["p1","p2","p3"]}`))
			return
		}
		w.Write([]byte(`{
			"results": 3,
			"data": [
				{"_id": "p1", "title": "Mug", "price": 10, "quantity": 5, "category": "c1"},
				{"_id": "p2", "title": "Kettle", "price": 30, "quantity": 1, "category": "c1"},
				{"_id": "p3", "title": "Tray", "price": 15, "quantity": 2, "category": "c1"}
			]
		}`))
	})
	store := NewWishlistStore(client, zap.NewNop())

	require.NoError(t, store.Add(context.Background(), "p3"))

	assert.Equal(t, []string{http.MethodPost, http.MethodGet}, methods)
	assert.True(t, store.Contains("p3"))
	// The refetch filled in the document the id-only response lacked
	products := store.Products()
	require.Len(t, products, 3)
	assert.Equal(t, "Tray", products[2].Title)
}

func TestWishlistStore_AddRevertsOnRejection(t *testing.T) {
	calls := 0
	client := newStateClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(wishlistBody))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"fail","message":"jwt expired"}`))
	})
	store := NewWishlistStore(client, zap.NewNop())
	store.Fetch(context.Background())

	err := store.Add(context.Background(), "p3")
	assert.ErrorIs(t, err, shared.ErrUnauthorized)

	// Pre-mutation state restored exactly, no refetch happened
	assert.Equal(t, []string{"p1", "p2"}, store.IDs())
	assert.False(t, store.Contains("p3"))
	assert.Equal(t, 2, calls)
}

func TestWishlistStore_RemoveTrustsLocalState(t *testing.T) {
	var methods []string
	client := newStateClient(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.Method == http.MethodDelete {
			w.Write([]byte(`{"status":"success","data":["p2"]}`))
			return
		}
		w.Write([]byte(wishlistBody))
	})
	store := NewWishlistStore(client, zap.NewNop())
	store.Fetch(context.Background())

	require.NoError(t, store.Remove(context.Background(), "p1"))

	// One GET from Fetch, one DELETE, and no trailing refetch
	assert.Equal(t, []string{http.MethodGet, http.MethodDelete}, methods)
	assert.Equal(t, []string{"p2"}, store.IDs())
	products := store.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "p2", products[0].ID)
}

func TestWishlistStore_RemoveRevertsOnRejection(t *testing.T) {
	calls := 0
	client := newStateClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(wishlistBody))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})
	store := NewWishlistStore(client, zap.NewNop())
	store.Fetch(context.Background())

	err := store.Remove(context.Background(), "p1")
	assert.ErrorIs(t, err, shared.ErrUnknown)
	assert.Equal(t, []string{"p1", "p2"}, store.IDs())
	assert.Len(t, store.Products(), 2)
}

func TestWishlistStore_FetchFailureMeansEmpty(t *testing.T) {
	calls := 0
	client := newStateClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Write([]byte(wishlistBody))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	})
	store := NewWishlistStore(client, zap.NewNop())

	store.Fetch(context.Background())
	require.True(t, store.Contains("p1"))

	store.Fetch(context.Background())
	assert.Empty(t, store.IDs())
	assert.Empty(t, store.Products())
}
