package state

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/shop/storefront/internal/domain/catalog"
	"github.com/shop/storefront/internal/infrastructure/api"
)

// WishlistStore keeps the set of wishlisted product ids plus the
// denormalized product documents for display. Membership toggles are
// optimistic so the heart icon reacts instantly, with a snapshot revert when
// the backend rejects the call.
type WishlistStore struct {
	client *api.Client
	logger *zap.Logger

	mu       sync.Mutex
	ids      []string
	products []catalog.Product
}

// wishlistSnapshot is the pre-mutation state captured for rollback
type wishlistSnapshot struct {
	ids      []string
	products []catalog.Product
}

// NewWishlistStore creates a wishlist store backed by the given client
func NewWishlistStore(client *api.Client, logger *zap.Logger) *WishlistStore {
	return &WishlistStore{client: client, logger: logger}
}

// Fetch loads the full wishlist. Failures collapse to an empty wishlist
// with a diagnostic, never a broken page.
func (s *WishlistStore) Fetch(ctx context.Context) {
	products, err := s.client.GetWishlist(ctx)
	if err != nil {
		s.logger.Debug("Wishlist fetch failed, treating as empty", zap.Error(err))
		s.Reset()
		return
	}
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	s.mu.Lock()
	s.ids = ids
	s.products = products
	s.mu.Unlock()
}

// Add optimistically marks the product as wishlisted, reverting on
// rejection. After the backend confirms, the whole wishlist is refetched:
// the add endpoint returns an id list only, and the local cache cannot
// synthesize the product document it is missing.
func (s *WishlistStore) Add(ctx context.Context, productID string) error {
	err := optimistic(&s.mu,
		s.snapshotLocked,
		func() {
			s.ids = append(s.ids, productID)
		},
		func() error {
			_, err := s.client.AddToWishlist(ctx, productID)
			return err
		},
		s.restoreLocked,
	)
	if err != nil {
		return err
	}
	s.Fetch(ctx)
	return nil
}

// Remove optimistically drops the product from both the id set and the
// displayed list, reverting on rejection. On success the optimistic state is
// already complete, so no refetch happens.
func (s *WishlistStore) Remove(ctx context.Context, productID string) error {
	return optimistic(&s.mu,
		s.snapshotLocked,
		func() {
			s.ids = slices.DeleteFunc(slices.Clone(s.ids), func(id string) bool {
				return id == productID
			})
			s.products = slices.DeleteFunc(slices.Clone(s.products), func(p catalog.Product) bool {
				return p.ID == productID
			})
		},
		func() error {
			_, err := s.client.RemoveFromWishlist(ctx, productID)
			return err
		},
		s.restoreLocked,
	)
}

func (s *WishlistStore) snapshotLocked() wishlistSnapshot {
	return wishlistSnapshot{
		ids:      slices.Clone(s.ids),
		products: slices.Clone(s.products),
	}
}

func (s *WishlistStore) restoreLocked(snap wishlistSnapshot) {
	s.ids = snap.ids
	s.products = snap.products
}

// Contains reports whether the product is currently wishlisted
func (s *WishlistStore) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.ids, productID)
}

// IDs returns a copy of the wishlisted product ids
func (s *WishlistStore) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ids)
}

// Products returns a copy of the denormalized product documents
func (s *WishlistStore) Products() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.products)
}

// Reset empties the wishlist locally, used on logout
func (s *WishlistStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = nil
	s.products = nil
}
