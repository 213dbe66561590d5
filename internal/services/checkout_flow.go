package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	domain "github.com/attarhouse/storefront/internal/domain"
)

var (
	// ErrCheckoutNoDraft indicates no draft is staged for the requested operation.
	ErrCheckoutNoDraft = errors.New("checkout: no draft")
	// ErrCheckoutSubmission indicates the order-creation collaborator rejected
	// the draft. The draft and the cart are left untouched for retry.
	ErrCheckoutSubmission = errors.New("checkout: submission failed")
)

var (
	errFlowBuilderRequired   = errors.New("checkout flow: snapshot builder is required")
	errFlowSubmitterRequired = errors.New("checkout flow: order submitter is required")
	errFlowCartRequired      = errors.New("checkout flow: cart store is required")
)

// OrderSubmitter is the order-creation collaborator: a request/response call
// taking the draft payload and returning an opaque order identifier.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, draft domain.OrderDraft) (string, error)
}

// cartClearer is the slice of the cart store the flow needs after a
// successful full-cart submission.
type cartClearer interface {
	Clear()
}

// CheckoutFlowDeps wires the builder, collaborator and cart for the flow.
type CheckoutFlowDeps struct {
	Builder   *SnapshotBuilder
	Submitter OrderSubmitter
	Cart      cartClearer
	Logger    *zap.Logger
}

// CheckoutFlow owns the single current order draft for the session and
// drives its lifecycle: drafted on "proceed to checkout", submitted when the
// collaborator accepts it, cleared afterwards. Starting a new checkout
// replaces any staged draft; navigating away discards it. No other
// transitions exist.
type CheckoutFlow struct {
	mu    sync.Mutex
	draft *domain.OrderDraft

	builder   *SnapshotBuilder
	submitter OrderSubmitter
	cart      cartClearer
	logger    *zap.Logger
}

// NewCheckoutFlow constructs a CheckoutFlow enforcing dependency validation.
func NewCheckoutFlow(deps CheckoutFlowDeps) (*CheckoutFlow, error) {
	if deps.Builder == nil {
		return nil, errFlowBuilderRequired
	}
	if deps.Submitter == nil {
		return nil, errFlowSubmitterRequired
	}
	if deps.Cart == nil {
		return nil, errFlowCartRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutFlow{
		builder:   deps.Builder,
		submitter: deps.Submitter,
		cart:      deps.Cart,
		logger:    logger,
	}, nil
}

// StartFromCart builds a full-cart draft and stages it, replacing any
// previous draft.
func (f *CheckoutFlow) StartFromCart(details CheckoutDetails) (domain.OrderDraft, error) {
	draft, err := f.builder.BuildFromCart(details)
	if err != nil {
		return domain.OrderDraft{}, err
	}
	f.stage(draft)
	return draft.Clone(), nil
}

// StartBuyNow builds a single-item draft and stages it, replacing any
// previous draft.
func (f *CheckoutFlow) StartBuyNow(product domain.Product, quantity int, variantKey string, details CheckoutDetails) (domain.OrderDraft, error) {
	draft, err := f.builder.BuildFromSingleItem(product, quantity, variantKey, details)
	if err != nil {
		return domain.OrderDraft{}, err
	}
	f.stage(draft)
	return draft.Clone(), nil
}

// Current returns a copy of the staged draft, if any.
func (f *CheckoutFlow) Current() (domain.OrderDraft, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.draft == nil {
		return domain.OrderDraft{}, false
	}
	return f.draft.Clone(), true
}

// Submit sends the staged draft to the order-creation collaborator. On
// acceptance the draft moves to submitted, the cart is cleared for full-cart
// drafts, and the staged draft is released. On rejection both the draft and
// the cart are left untouched so the buyer can retry.
func (f *CheckoutFlow) Submit(ctx context.Context) (string, error) {
	f.mu.Lock()
	if f.draft == nil {
		f.mu.Unlock()
		return "", ErrCheckoutNoDraft
	}
	draft := f.draft.Clone()
	f.mu.Unlock()

	// The collaborator call runs outside the lock; the draft is a stable
	// snapshot regardless of how long it takes.
	orderID, err := f.submitter.SubmitOrder(ctx, draft)
	if err != nil {
		f.logger.Warn("order submission rejected",
			zap.String("draft_id", draft.ID),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %v", ErrCheckoutSubmission, err)
	}

	f.mu.Lock()
	// Only release the staged draft if it is still the one we submitted; a
	// replacement staged mid-flight stays.
	if f.draft != nil && f.draft.ID == draft.ID {
		f.draft.Status = domain.DraftStatusSubmitted
		f.draft = nil
	}
	f.mu.Unlock()

	if draft.Source == domain.DraftSourceCart {
		f.cart.Clear()
	}

	f.logger.Info("order submitted",
		zap.String("draft_id", draft.ID),
		zap.String("order_id", orderID),
		zap.Int64("total", draft.Total),
	)
	return orderID, nil
}

// Discard drops the staged draft, e.g. when the buyer navigates away from
// checkout before submitting. Discarding with nothing staged is a no-op.
func (f *CheckoutFlow) Discard() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.draft == nil {
		return
	}
	f.draft.Status = domain.DraftStatusCleared
	f.draft = nil
}

func (f *CheckoutFlow) stage(draft domain.OrderDraft) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = &draft
}
