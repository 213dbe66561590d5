package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "github.com/attarhouse/storefront/internal/domain"
	"github.com/attarhouse/storefront/internal/platform/textutil"
)

var (
	errWishlistSlotRequired  = errors.New("wishlist store: snapshot slot is required")
	errWishlistClockRequired = errors.New("wishlist store: clock is required")
)

// ErrWishlistInvalidInput indicates the caller supplied input the store
// rejects; the store state is unchanged.
var ErrWishlistInvalidInput = errors.New("wishlist store: invalid input")

// WishlistStoreDeps wires the persistence slot and ambient dependencies.
type WishlistStoreDeps struct {
	Slot   SnapshotSlot[domain.WishlistItem]
	Clock  func() time.Time
	Logger *zap.Logger
}

// WishlistStore owns the set of favourited products, keyed solely by product
// ID. It follows the same write-through discipline as the cart store but has
// no quantity or variant concept.
type WishlistStore struct {
	mu       sync.Mutex
	items    []domain.WishlistItem
	hydrated bool

	slot   SnapshotSlot[domain.WishlistItem]
	now    func() time.Time
	logger *zap.Logger
}

// NewWishlistStore constructs a WishlistStore enforcing dependency validation.
func NewWishlistStore(deps WishlistStoreDeps) (*WishlistStore, error) {
	if deps.Slot == nil {
		return nil, errWishlistSlotRequired
	}
	if deps.Clock == nil {
		return nil, errWishlistClockRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WishlistStore{
		slot:   deps.Slot,
		now:    func() time.Time { return deps.Clock().UTC() },
		logger: logger,
	}, nil
}

// Hydrate replaces the in-memory set with the persisted snapshot, dropping
// malformed entries and collapsing duplicate product IDs. Safe to call again;
// it can never append duplicates.
func (s *WishlistStore) Hydrate() {
	loaded := s.slot.Load()

	items := make([]domain.WishlistItem, 0, len(loaded))
	for _, item := range loaded {
		item.ProductID = strings.TrimSpace(item.ProductID)
		if item.ProductID == "" {
			continue
		}
		if indexOfWishlistItem(items, item.ProductID) >= 0 {
			continue
		}
		items = append(items, item)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.hydrated = true
}

// Hydrated reports whether Hydrate has completed at least once.
func (s *WishlistStore) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// Add stores a product snapshot. Adding a product already on the list is a
// no-op; the original snapshot is kept.
func (s *WishlistStore) Add(product domain.Product) error {
	id := strings.TrimSpace(product.ID)
	if id == "" {
		return ErrWishlistInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOfWishlistItem(s.items, id) >= 0 {
		return nil
	}
	s.items = append(s.items, s.newItem(id, product))
	s.persistLocked()
	return nil
}

// Remove deletes the product from the list; absent products are a no-op.
func (s *WishlistStore) Remove(productID string) {
	id := strings.TrimSpace(productID)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOfWishlistItem(s.items, id)
	if idx < 0 {
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.persistLocked()
}

// Toggle removes the product when present, otherwise adds it. The
// check-then-act runs under the store lock in one turn, so no intermediate
// state is observable and each call produces exactly one persistence write.
func (s *WishlistStore) Toggle(product domain.Product) error {
	id := strings.TrimSpace(product.ID)
	if id == "" {
		return ErrWishlistInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := indexOfWishlistItem(s.items, id); idx >= 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	} else {
		s.items = append(s.items, s.newItem(id, product))
	}
	s.persistLocked()
	return nil
}

// Clear empties the wishlist.
func (s *WishlistStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return
	}
	s.items = nil
	s.persistLocked()
}

// Contains reports whether the product is on the list.
func (s *WishlistStore) Contains(productID string) bool {
	id := strings.TrimSpace(productID)

	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOfWishlistItem(s.items, id) >= 0
}

// Items returns a copy of the list in insertion order.
func (s *WishlistStore) Items() []domain.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.WishlistItem, len(s.items))
	copy(out, s.items)
	return out
}

// Count returns the number of favourited products.
func (s *WishlistStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *WishlistStore) newItem(id string, product domain.Product) domain.WishlistItem {
	return domain.WishlistItem{
		ProductID: id,
		Name:      textutil.SanitizeDisplay(product.Name),
		ImageURL:  product.ImageURL,
		Category:  textutil.SanitizeDisplay(product.Category),
		UnitPrice: product.Price,
		AddedAt:   s.now(),
	}
}

func (s *WishlistStore) persistLocked() {
	snapshot := make([]domain.WishlistItem, len(s.items))
	copy(snapshot, s.items)
	s.slot.Save(snapshot)
}

func indexOfWishlistItem(items []domain.WishlistItem, productID string) int {
	for i, item := range items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
