package services

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

var (
	errInitializerCartRequired     = errors.New("initializer: cart store is required")
	errInitializerWishlistRequired = errors.New("initializer: wishlist store is required")
)

// hydrator is implemented by both stores.
type hydrator interface {
	Hydrate()
}

// InitializerDeps wires the stores seeded at startup.
type InitializerDeps struct {
	Cart     hydrator
	Wishlist hydrator
	Logger   *zap.Logger
}

// Initializer performs the one-directional seeding of the stores from
// persisted state. The application startup sequence calls Initialize exactly
// once, before any request handler can dispatch a mutation; an internal flag
// makes repeat calls idempotent instead of relying on a lifecycle hook.
type Initializer struct {
	mu       sync.Mutex
	hydrated bool

	cart     hydrator
	wishlist hydrator
	logger   *zap.Logger
}

// NewInitializer constructs an Initializer enforcing dependency validation.
func NewInitializer(deps InitializerDeps) (*Initializer, error) {
	if deps.Cart == nil {
		return nil, errInitializerCartRequired
	}
	if deps.Wishlist == nil {
		return nil, errInitializerWishlistRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Initializer{
		cart:     deps.Cart,
		wishlist: deps.Wishlist,
		logger:   logger,
	}, nil
}

// Initialize hydrates both stores. Calling it again is safe: hydration
// replaces store contents wholesale, so already-hydrated state is re-seeded
// with the same value and duplicates can never accumulate. Re-running after
// a user has cleared items would resurrect them, hence the guard.
func (i *Initializer) Initialize() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.hydrated {
		i.logger.Debug("stores already hydrated, skipping")
		return
	}

	i.cart.Hydrate()
	i.wishlist.Hydrate()
	i.hydrated = true
	i.logger.Info("stores hydrated from persisted snapshots")
}

// Hydrated reports whether Initialize has run.
func (i *Initializer) Hydrated() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.hydrated
}
