package state

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shop/storefront/internal/domain/catalog"
	"github.com/shop/storefront/internal/infrastructure/credentials"
)

func newFiltersStore(t *testing.T) (*FiltersStore, *credentials.Store) {
	t.Helper()
	creds, err := credentials.NewStore(t.TempDir())
	require.NoError(t, err)
	return NewFiltersStore(creds, zap.NewNop()), creds
}

func TestFiltersStore_Defaults(t *testing.T) {
	store, _ := newFiltersStore(t)
	f := store.Current()
	assert.Equal(t, catalog.SortNewest, f.Sort)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, catalog.DefaultPageSize, f.Limit)
}

func TestFiltersStore_CriterionChangeResetsPage(t *testing.T) {
	min := decimal.NewFromInt(10)
	rating := 4.0

	tests := []struct {
		name  string
		apply func(s *FiltersStore)
	}{
		{"keyword", func(s *FiltersStore) { s.SetKeyword("lamp") }},
		{"category", func(s *FiltersStore) { s.SetCategory("c1") }},
		{"brand", func(s *FiltersStore) { s.SetBrand("b1") }},
		{"price range", func(s *FiltersStore) { s.SetPriceRange(&min, nil) }},
		{"rating", func(s *FiltersStore) { s.SetRatingMin(&rating) }},
		{"sort", func(s *FiltersStore) { s.SetSort(catalog.SortPriceAsc) }},
		{"limit", func(s *FiltersStore) { s.SetLimit(24) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newFiltersStore(t)
			store.SetPage(5)
			require.Equal(t, 5, store.Current().Page)

			tt.apply(store)
			assert.Equal(t, 1, store.Current().Page)
		})
	}
}

func TestFiltersStore_SetPageKeepsCriteria(t *testing.T) {
	store, _ := newFiltersStore(t)
	store.SetKeyword("lamp")
	store.SetPage(4)

	f := store.Current()
	assert.Equal(t, "lamp", f.Keyword)
	assert.Equal(t, 4, f.Page)
}

func TestFiltersStore_PersistsOnlySortAndLimit(t *testing.T) {
	store, creds := newFiltersStore(t)
	store.SetKeyword("lamp")
	store.SetCategory("c1")
	store.SetSort(catalog.SortPriceDesc)
	store.SetLimit(24)

	// A fresh store over the same state dir sees sort and limit only
	fresh := NewFiltersStore(creds, zap.NewNop())
	fresh.Hydrate()

	f := fresh.Current()
	assert.Equal(t, catalog.SortPriceDesc, f.Sort)
	assert.Equal(t, 24, f.Limit)
	assert.Empty(t, f.Keyword)
	assert.Empty(t, f.CategoryID)
	assert.Equal(t, 1, f.Page)
}

func TestFiltersStore_ResetKeepsPersistedPreferences(t *testing.T) {
	store, _ := newFiltersStore(t)
	store.SetSort(catalog.SortTopRated)
	store.SetLimit(48)
	store.SetKeyword("lamp")
	store.SetBrand("b1")

	store.Reset()

	f := store.Current()
	assert.Empty(t, f.Keyword)
	assert.Empty(t, f.BrandID)
	assert.Equal(t, catalog.SortTopRated, f.Sort)
	assert.Equal(t, 48, f.Limit)
}

func TestFiltersStore_QueryProjection(t *testing.T) {
	store, _ := newFiltersStore(t)
	min := decimal.RequireFromString("9.99")
	max := decimal.NewFromInt(50)
	rating := 4.5
	store.SetPriceRange(&min, &max)
	store.SetRatingMin(&rating)
	store.SetKeyword("mug")

	v := store.Current().QueryValues()
	assert.Equal(t, "9.99", v.Get("price[gte]"))
	assert.Equal(t, "50", v.Get("price[lte]"))
	assert.Equal(t, "4.5", v.Get("ratingsAverage[gte]"))
	assert.Equal(t, "mug", v.Get("keyword"))
	assert.Equal(t, "1", v.Get("page"))
}
