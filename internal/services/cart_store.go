package services

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "github.com/attarhouse/storefront/internal/domain"
	"github.com/attarhouse/storefront/internal/platform/textutil"
)

var (
	errCartSlotRequired  = errors.New("cart store: snapshot slot is required")
	errCartClockRequired = errors.New("cart store: clock is required")
)

// ErrCartInvalidInput indicates the caller supplied input the store rejects;
// the store state is unchanged.
var ErrCartInvalidInput = errors.New("cart store: invalid input")

// SnapshotSlot is the persistence contract the stores write through. Load
// never fails and Save never propagates errors; the concrete slot logs and
// swallows them.
type SnapshotSlot[T any] interface {
	Load() []T
	Save(items []T)
}

// CartStoreDeps wires the persistence slot and ambient dependencies.
type CartStoreDeps struct {
	Slot   SnapshotSlot[domain.LineItem]
	Clock  func() time.Time
	Logger *zap.Logger
}

// CartStore owns the authoritative collection of cart line items for the
// session. Every mutation is applied in memory first and then mirrored to the
// snapshot slot in the same critical section, so readers observe mutations in
// the exact order they were applied and the read-modify-write on a line is
// atomic. Persistence failures never roll back memory.
type CartStore struct {
	mu       sync.Mutex
	lines    []domain.LineItem
	hydrated bool

	slot   SnapshotSlot[domain.LineItem]
	now    func() time.Time
	logger *zap.Logger
}

// NewCartStore constructs a CartStore enforcing dependency validation.
func NewCartStore(deps CartStoreDeps) (*CartStore, error) {
	if deps.Slot == nil {
		return nil, errCartSlotRequired
	}
	if deps.Clock == nil {
		return nil, errCartClockRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartStore{
		slot:   deps.Slot,
		now:    func() time.Time { return deps.Clock().UTC() },
		logger: logger,
	}, nil
}

// Hydrate seeds the store from the snapshot slot. It replaces the in-memory
// collection wholesale, so calling it again re-seeds the same value and can
// never append duplicate lines. Duplicate keys found in a persisted snapshot
// are merged the same way AddItem merges: quantities sum, the first line's
// unit price wins.
func (s *CartStore) Hydrate() {
	loaded := s.slot.Load()

	lines := make([]domain.LineItem, 0, len(loaded))
	for _, item := range loaded {
		key := item.Key().Normalise()
		if !key.Valid() {
			continue
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		if item.UnitPrice < 0 {
			continue
		}
		item.ProductID = key.ProductID
		item.VariantKey = key.VariantKey

		if idx := indexOfLine(lines, key); idx >= 0 {
			lines[idx].Quantity += item.Quantity
			continue
		}
		lines = append(lines, item)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = lines
	s.hydrated = true
}

// Hydrated reports whether Hydrate has completed at least once.
func (s *CartStore) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// AddItem inserts a new line or, when a line with the same
// (productID, variantKey) already exists, increments its quantity. The unit
// price is captured from this call only for new lines; an existing line keeps
// the price recorded when it was first added, even if the caller supplies a
// different one. A non-positive quantity is clamped to 1.
func (s *CartStore) AddItem(product domain.Product, quantity int, variantKey string, unitPrice int64) error {
	key := domain.LineKey{ProductID: product.ID, VariantKey: variantKey}.Normalise()
	if !key.Valid() {
		return ErrCartInvalidInput
	}
	if unitPrice < 0 {
		return ErrCartInvalidInput
	}
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := indexOfLine(s.lines, key); idx >= 0 {
		s.lines[idx].Quantity += quantity
		s.persistLocked()
		return nil
	}

	s.lines = append(s.lines, domain.LineItem{
		ProductID:  key.ProductID,
		VariantKey: key.VariantKey,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Name:       textutil.SanitizeDisplay(product.Name),
		ImageURL:   product.ImageURL,
		Category:   textutil.SanitizeDisplay(product.Category),
		AddedAt:    s.now(),
	})
	s.persistLocked()
	return nil
}

// RemoveItem deletes the matching line. A missing line is a no-op, not an
// error.
func (s *CartStore) RemoveItem(productID, variantKey string) {
	key := domain.LineKey{ProductID: productID, VariantKey: variantKey}.Normalise()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOfLine(s.lines, key)
	if idx < 0 {
		return
	}
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	s.persistLocked()
}

// SetQuantity overwrites the quantity of the matching line. A quantity of
// zero or less removes the line.
func (s *CartStore) SetQuantity(productID, variantKey string, quantity int) {
	key := domain.LineKey{ProductID: productID, VariantKey: variantKey}.Normalise()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOfLine(s.lines, key)
	if idx < 0 {
		return
	}
	if quantity <= 0 {
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	} else {
		s.lines[idx].Quantity = quantity
	}
	s.persistLocked()
}

// IncrementQuantity raises the matching line's quantity by one.
func (s *CartStore) IncrementQuantity(productID, variantKey string) {
	key := domain.LineKey{ProductID: productID, VariantKey: variantKey}.Normalise()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOfLine(s.lines, key)
	if idx < 0 {
		return
	}
	s.lines[idx].Quantity++
	s.persistLocked()
}

// DecrementQuantity lowers the matching line's quantity by one; a line at
// quantity one is removed. Absent lines are a no-op.
func (s *CartStore) DecrementQuantity(productID, variantKey string) {
	key := domain.LineKey{ProductID: productID, VariantKey: variantKey}.Normalise()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOfLine(s.lines, key)
	if idx < 0 {
		return
	}
	if s.lines[idx].Quantity <= 1 {
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	} else {
		s.lines[idx].Quantity--
	}
	s.persistLocked()
}

// Clear empties the cart.
func (s *CartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return
	}
	s.lines = nil
	s.persistLocked()
}

// Items returns a copy of the current lines in insertion order.
func (s *CartStore) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.LineItem, len(s.lines))
	copy(out, s.lines)
	return out
}

// Subtotal sums unitPrice times quantity across all lines in exact minor
// units. Rounding happens only when an amount is formatted for display.
func (s *CartStore) Subtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, line := range s.lines {
		total += line.LineTotal()
	}
	return total
}

// ItemsCount returns the sum of quantities across lines, the number shown on
// the cart badge.
func (s *CartStore) ItemsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// IsInCart reports whether a line with the given identity exists.
func (s *CartStore) IsInCart(productID, variantKey string) bool {
	key := domain.LineKey{ProductID: productID, VariantKey: variantKey}.Normalise()

	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOfLine(s.lines, key) >= 0
}

// ItemQuantity returns the quantity of the matching line, or zero when
// absent.
func (s *CartStore) ItemQuantity(productID, variantKey string) int {
	key := domain.LineKey{ProductID: productID, VariantKey: variantKey}.Normalise()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOfLine(s.lines, key)
	if idx < 0 {
		return 0
	}
	return s.lines[idx].Quantity
}

// persistLocked mirrors the full collection to the slot. Callers hold s.mu,
// which keeps the write inside the same mutation turn.
func (s *CartStore) persistLocked() {
	snapshot := make([]domain.LineItem, len(s.lines))
	copy(snapshot, s.lines)
	s.slot.Save(snapshot)
}

func indexOfLine(lines []domain.LineItem, key domain.LineKey) int {
	for i, line := range lines {
		if line.ProductID == key.ProductID && line.VariantKey == key.VariantKey {
			return i
		}
	}
	return -1
}
