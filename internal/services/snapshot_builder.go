package services

import (
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	domain "github.com/attarhouse/storefront/internal/domain"
)

var (
	// ErrCheckoutInvalidInput indicates the caller supplied invalid checkout parameters.
	ErrCheckoutInvalidInput = errors.New("checkout: invalid input")
	// ErrCheckoutEmptyCart indicates a snapshot was requested for a cart with no lines.
	ErrCheckoutEmptyCart = errors.New("checkout: cart is empty")
)

var (
	errBuilderCartRequired     = errors.New("snapshot builder: cart store is required")
	errBuilderShippingRequired = errors.New("snapshot builder: shipping policy is required")
	errBuilderTaxRequired      = errors.New("snapshot builder: tax policy is required")
	errBuilderClockRequired    = errors.New("snapshot builder: clock is required")
)

// cartReader is the slice of the cart store the builder needs.
type cartReader interface {
	Items() []domain.LineItem
	Subtotal() int64
}

// SnapshotBuilderDeps wires the cart, pricing policies and ambient
// dependencies for building order drafts.
type SnapshotBuilderDeps struct {
	Cart        cartReader
	Shipping    ShippingPolicy
	Tax         TaxPolicy
	Clock       func() time.Time
	Currency    string
	Logger      *zap.Logger
	IDGenerator func() string
}

// SnapshotBuilder freezes cart state into immutable order drafts. Totals are
// recomputed once at snapshot time; the resulting draft shares no state with
// the live cart, so later mutations cannot leak into a checkout in progress.
type SnapshotBuilder struct {
	cart     cartReader
	shipping ShippingPolicy
	tax      TaxPolicy
	newID    func() string
	now      func() time.Time
	currency string
	logger   *zap.Logger
}

// NewSnapshotBuilder constructs a SnapshotBuilder enforcing dependency
// validation.
func NewSnapshotBuilder(deps SnapshotBuilderDeps) (*SnapshotBuilder, error) {
	if deps.Cart == nil {
		return nil, errBuilderCartRequired
	}
	if deps.Shipping == nil {
		return nil, errBuilderShippingRequired
	}
	if deps.Tax == nil {
		return nil, errBuilderTaxRequired
	}
	if deps.Clock == nil {
		return nil, errBuilderClockRequired
	}

	currency := strings.ToUpper(strings.TrimSpace(deps.Currency))
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string { return ulid.Make().String() }
	}

	return &SnapshotBuilder{
		cart:     deps.Cart,
		shipping: deps.Shipping,
		tax:      deps.Tax,
		newID:    idGen,
		now:      func() time.Time { return deps.Clock().UTC() },
		currency: currency,
		logger:   logger,
	}, nil
}

// CheckoutDetails carries the buyer-entered parameters common to both
// checkout flows.
type CheckoutDetails struct {
	ShippingMethod  string
	PaymentMethod   string
	ShippingAddress *domain.Address
	BillingAddress  *domain.Address
}

// BuildFromCart snapshots the full cart into a draft. An empty cart is an
// explicit error rather than a zero-total draft.
func (b *SnapshotBuilder) BuildFromCart(details CheckoutDetails) (domain.OrderDraft, error) {
	items := b.cart.Items()
	if len(items) == 0 {
		return domain.OrderDraft{}, ErrCheckoutEmptyCart
	}
	return b.build(domain.DraftSourceCart, items, details)
}

// BuildFromSingleItem snapshots a single buy-now item, bypassing the cart.
// The unit price is captured from the product at this moment.
func (b *SnapshotBuilder) BuildFromSingleItem(product domain.Product, quantity int, variantKey string, details CheckoutDetails) (domain.OrderDraft, error) {
	key := domain.LineKey{ProductID: product.ID, VariantKey: variantKey}.Normalise()
	if !key.Valid() || product.Price < 0 {
		return domain.OrderDraft{}, ErrCheckoutInvalidInput
	}
	if quantity < 1 {
		quantity = 1
	}

	line := domain.LineItem{
		ProductID:  key.ProductID,
		VariantKey: key.VariantKey,
		Quantity:   quantity,
		UnitPrice:  product.Price,
		Name:       strings.TrimSpace(product.Name),
		ImageURL:   product.ImageURL,
		Category:   strings.TrimSpace(product.Category),
		AddedAt:    b.now(),
	}
	return b.build(domain.DraftSourceBuyNow, []domain.LineItem{line}, details)
}

func (b *SnapshotBuilder) build(source domain.DraftSource, items []domain.LineItem, details CheckoutDetails) (domain.OrderDraft, error) {
	method := strings.TrimSpace(details.ShippingMethod)
	shippingCost, err := b.shipping.ShippingCost(method)
	if err != nil {
		return domain.OrderDraft{}, err
	}

	lines := make([]domain.LineItem, len(items))
	copy(lines, items)

	var subtotal int64
	for _, line := range lines {
		subtotal += line.LineTotal()
	}
	taxes := b.tax.EstimateTaxes(subtotal)

	draft := domain.OrderDraft{
		ID:             b.newID(),
		Source:         source,
		Status:         domain.DraftStatusDrafted,
		Items:          lines,
		Currency:       b.currency,
		Subtotal:       subtotal,
		ShippingCost:   shippingCost,
		EstimatedTaxes: taxes,
		Total:          subtotal + shippingCost + taxes,
		ShippingMethod: method,
		PaymentMethod:  strings.TrimSpace(details.PaymentMethod),
		CreatedAt:      b.now(),
	}
	if details.ShippingAddress != nil {
		addr := *details.ShippingAddress
		draft.ShippingAddr = &addr
	}
	if details.BillingAddress != nil {
		addr := *details.BillingAddress
		draft.BillingAddr = &addr
	}

	b.logger.Debug("order draft built",
		zap.String("draft_id", draft.ID),
		zap.String("source", string(source)),
		zap.Int64("total", draft.Total),
	)
	return draft, nil
}
