package di

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	domain "github.com/attarhouse/storefront/internal/domain"
	"github.com/attarhouse/storefront/internal/orders"
	"github.com/attarhouse/storefront/internal/platform/config"
	"github.com/attarhouse/storefront/internal/services"
	"github.com/attarhouse/storefront/internal/storage"
)

// Slot keys owned exclusively by the two stores. No other component writes
// to these keys.
const (
	cartSlotKey     = "cart-items"
	wishlistSlotKey = "wishlist-items"
)

// Container wires the storage medium, stores, checkout flow, and hydration
// initializer for runtime use. Tests construct stores directly; the
// container exists so the process has exactly one instance of each.
type Container struct {
	Config      config.Config
	Cart        *services.CartStore
	Wishlist    *services.WishlistStore
	Checkout    *services.CheckoutFlow
	Initializer *services.Initializer
}

// NewContainer assembles the process-wide dependencies from configuration.
func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	medium, err := newStorageMedium(cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	cartSlot, err := storage.NewSlot[domain.LineItem](medium, cartSlotKey, logger)
	if err != nil {
		return nil, fmt.Errorf("build cart slot: %w", err)
	}
	wishlistSlot, err := storage.NewSlot[domain.WishlistItem](medium, wishlistSlotKey, logger)
	if err != nil {
		return nil, fmt.Errorf("build wishlist slot: %w", err)
	}

	cart, err := services.NewCartStore(services.CartStoreDeps{
		Slot:   cartSlot,
		Clock:  time.Now,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build cart store: %w", err)
	}

	wishlist, err := services.NewWishlistStore(services.WishlistStoreDeps{
		Slot:   wishlistSlot,
		Clock:  time.Now,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build wishlist store: %w", err)
	}

	shipping, err := services.NewShippingRateTable(cfg.Pricing.ShippingRates)
	if err != nil {
		return nil, fmt.Errorf("build shipping rate table: %w", err)
	}
	tax, err := services.NewFlatTaxPolicy(cfg.Pricing.TaxBasisPts)
	if err != nil {
		return nil, fmt.Errorf("build tax policy: %w", err)
	}

	builder, err := services.NewSnapshotBuilder(services.SnapshotBuilderDeps{
		Cart:     cart,
		Shipping: shipping,
		Tax:      tax,
		Clock:    time.Now,
		Currency: cfg.Pricing.Currency,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build snapshot builder: %w", err)
	}

	submitter, err := newOrderSubmitter(cfg.Orders, logger)
	if err != nil {
		return nil, err
	}

	flow, err := services.NewCheckoutFlow(services.CheckoutFlowDeps{
		Builder:   builder,
		Submitter: submitter,
		Cart:      cart,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build checkout flow: %w", err)
	}

	initializer, err := services.NewInitializer(services.InitializerDeps{
		Cart:     cart,
		Wishlist: wishlist,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build initializer: %w", err)
	}

	return &Container{
		Config:      cfg,
		Cart:        cart,
		Wishlist:    wishlist,
		Checkout:    flow,
		Initializer: initializer,
	}, nil
}

func newStorageMedium(cfg config.StorageConfig, logger *zap.Logger) (storage.Store, error) {
	if cfg.Disabled {
		logger.Info("durable storage disabled, using no-op medium")
		return storage.NewNoopStore(), nil
	}
	store, err := storage.NewFileStore(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("build file store: %w", err)
	}
	return store, nil
}

func newOrderSubmitter(cfg config.OrdersConfig, logger *zap.Logger) (services.OrderSubmitter, error) {
	if cfg.SubmitEndpoint == "" {
		logger.Info("order submission endpoint not configured, checkout submit disabled")
		return disabledSubmitter{}, nil
	}
	client, err := orders.NewClient(orders.ClientDeps{
		Endpoint:   cfg.SubmitEndpoint,
		HTTPClient: &http.Client{Timeout: cfg.SubmitTimeout},
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build orders client: %w", err)
	}
	return client, nil
}
