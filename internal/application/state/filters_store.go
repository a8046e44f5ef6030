package state

import (
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shop/storefront/internal/domain/catalog"
	"github.com/shop/storefront/internal/infrastructure/credentials"
)

// FiltersStore holds the product browsing criteria. Changing any criterion
// jumps back to the first page, since the old page number is meaningless
// against a different result set. Only the sort order and page size are
// persisted; search terms and range filters start fresh every session.
type FiltersStore struct {
	creds  *credentials.Store
	logger *zap.Logger

	mu     sync.Mutex
	filter catalog.ProductFilter
}

// NewFiltersStore creates a filter store with backend defaults
func NewFiltersStore(creds *credentials.Store, logger *zap.Logger) *FiltersStore {
	return &FiltersStore{
		creds:  creds,
		logger: logger,
		filter: catalog.NewProductFilter(),
	}
}

// Hydrate restores the persisted sort and page size. A missing or corrupt
// preferences file leaves the defaults in place.
func (s *FiltersStore) Hydrate() {
	prefs, err := s.creds.LoadPreferences()
	if err != nil {
		s.logger.Debug("Preferences load failed, keeping defaults", zap.Error(err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if prefs.Sort != "" {
		s.filter.Sort = prefs.Sort
	}
	if prefs.Limit > 0 {
		s.filter.Limit = prefs.Limit
	}
}

// SetKeyword updates the search term and returns to the first page
func (s *FiltersStore) SetKeyword(keyword string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Keyword = keyword
	s.filter.Page = 1
}

// SetCategory selects a category (empty clears it) and returns to the first
// page
func (s *FiltersStore) SetCategory(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.CategoryID = id
	s.filter.Page = 1
}

// SetBrand selects a brand (empty clears it) and returns to the first page
func (s *FiltersStore) SetBrand(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.BrandID = id
	s.filter.Page = 1
}

// SetPriceRange bounds the price (nil clears a bound) and returns to the
// first page
func (s *FiltersStore) SetPriceRange(min, max *decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.PriceMin = min
	s.filter.PriceMax = max
	s.filter.Page = 1
}

// SetRatingMin bounds the rating (nil clears it) and returns to the first
// page
func (s *FiltersStore) SetRatingMin(min *float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.RatingMin = min
	s.filter.Page = 1
}

// SetSort changes the sort order, returns to the first page, and persists
// the choice
func (s *FiltersStore) SetSort(sort string) {
	s.mu.Lock()
	s.filter.Sort = sort
	s.filter.Page = 1
	s.mu.Unlock()
	s.persist()
}

// SetLimit changes the page size, returns to the first page, and persists
// the choice
func (s *FiltersStore) SetLimit(limit int) {
	if limit < 1 {
		limit = catalog.DefaultPageSize
	}
	s.mu.Lock()
	s.filter.Limit = limit
	s.filter.Page = 1
	s.mu.Unlock()
	s.persist()
}

// SetPage moves within the current result set without touching criteria
func (s *FiltersStore) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Page = page
}

// Reset drops all criteria back to defaults, keeping the persisted sort and
// page size
func (s *FiltersStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fresh := catalog.NewProductFilter()
	fresh.Sort = s.filter.Sort
	fresh.Limit = s.filter.Limit
	s.filter = fresh
}

// Current returns a copy of the active filter
func (s *FiltersStore) Current() catalog.ProductFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *FiltersStore) persist() {
	s.mu.Lock()
	prefs := credentials.Preferences{Sort: s.filter.Sort, Limit: s.filter.Limit}
	s.mu.Unlock()
	if err := s.creds.SavePreferences(prefs); err != nil {
		s.logger.Debug("Preferences save failed", zap.Error(err))
	}
}
