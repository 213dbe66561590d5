package services

import (
	"context"
	"errors"
	"testing"

	domain "github.com/attarhouse/storefront/internal/domain"
)

type stubSubmitter struct {
	submitOrderFunc func(ctx context.Context, draft domain.OrderDraft) (string, error)
	calls           []domain.OrderDraft
}

func (s *stubSubmitter) SubmitOrder(ctx context.Context, draft domain.OrderDraft) (string, error) {
	s.calls = append(s.calls, draft)
	if s.submitOrderFunc != nil {
		return s.submitOrderFunc(ctx, draft)
	}
	return "order-1", nil
}

func newTestCheckoutFlow(t *testing.T, cart *CartStore, submitter OrderSubmitter) *CheckoutFlow {
	t.Helper()
	flow, err := NewCheckoutFlow(CheckoutFlowDeps{
		Builder:   newTestBuilder(t, cart),
		Submitter: submitter,
		Cart:      cart,
	})
	if err != nil {
		t.Fatalf("unexpected error constructing checkout flow: %v", err)
	}
	return flow
}

func TestCheckoutFlowSubmitClearsCartAndReleasesDraft(t *testing.T) {
	cart := newTestCartStore(t, &stubSlot[domain.LineItem]{})
	_ = cart.AddItem(attar("P1"), 2, "6 ml", 500)
	submitter := &stubSubmitter{}
	flow := newTestCheckoutFlow(t, cart, submitter)

	draft, err := flow.StartFromCart(CheckoutDetails{ShippingMethod: ShippingMethodInsideDhaka})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := flow.Current(); !ok {
		t.Fatalf("expected a staged draft")
	}

	orderID, err := flow.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID != "order-1" {
		t.Fatalf("expected order-1, got %q", orderID)
	}
	if len(submitter.calls) != 1 || submitter.calls[0].ID != draft.ID {
		t.Fatalf("expected the staged draft submitted once")
	}
	if _, ok := flow.Current(); ok {
		t.Fatalf("expected staged draft released after acceptance")
	}
	if len(cart.Items()) != 0 {
		t.Fatalf("expected cart cleared after full-cart submission")
	}
}

func TestCheckoutFlowSubmitFailureLeavesStateForRetry(t *testing.T) {
	cart := newTestCartStore(t, &stubSlot[domain.LineItem]{})
	_ = cart.AddItem(attar("P1"), 2, "6 ml", 500)
	submitter := &stubSubmitter{
		submitOrderFunc: func(context.Context, domain.OrderDraft) (string, error) {
			return "", errors.New("upstream unavailable")
		},
	}
	flow := newTestCheckoutFlow(t, cart, submitter)

	if _, err := flow.StartFromCart(CheckoutDetails{ShippingMethod: ShippingMethodInsideDhaka}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := flow.Submit(context.Background())
	if !errors.Is(err, ErrCheckoutSubmission) {
		t.Fatalf("expected ErrCheckoutSubmission, got %v", err)
	}
	if _, ok := flow.Current(); !ok {
		t.Fatalf("expected draft kept for retry")
	}
	if len(cart.Items()) != 1 {
		t.Fatalf("expected cart untouched after rejection")
	}

	// Retry succeeds once the collaborator recovers.
	submitter.submitOrderFunc = nil
	if _, err := flow.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
}

func TestCheckoutFlowSubmitWithoutDraft(t *testing.T) {
	cart := newTestCartStore(t, &stubSlot[domain.LineItem]{})
	flow := newTestCheckoutFlow(t, cart, &stubSubmitter{})

	if _, err := flow.Submit(context.Background()); !errors.Is(err, ErrCheckoutNoDraft) {
		t.Fatalf("expected ErrCheckoutNoDraft, got %v", err)
	}
}

func TestCheckoutFlowBuyNowSubmitDoesNotClearCart(t *testing.T) {
	cart := newTestCartStore(t, &stubSlot[domain.LineItem]{})
	_ = cart.AddItem(attar("P1"), 2, "6 ml", 500)
	flow := newTestCheckoutFlow(t, cart, &stubSubmitter{})

	if _, err := flow.StartBuyNow(attar("P2"), 1, "", CheckoutDetails{ShippingMethod: ShippingMethodInsideDhaka}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := flow.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items()) != 1 {
		t.Fatalf("buy-now submission must not clear the cart")
	}
}

func TestCheckoutFlowStartReplacesStagedDraft(t *testing.T) {
	cart := newTestCartStore(t, &stubSlot[domain.LineItem]{})
	_ = cart.AddItem(attar("P1"), 1, "6 ml", 500)
	flow := newTestCheckoutFlow(t, cart, &stubSubmitter{})

	first, err := flow.StartFromCart(CheckoutDetails{ShippingMethod: ShippingMethodInsideDhaka})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := flow.StartFromCart(CheckoutDetails{ShippingMethod: ShippingMethodOutsideDhaka})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected a fresh draft id on restart")
	}

	current, ok := flow.Current()
	if !ok || current.ID != second.ID {
		t.Fatalf("expected the second draft staged")
	}
}

func TestCheckoutFlowDiscard(t *testing.T) {
	cart := newTestCartStore(t, &stubSlot[domain.LineItem]{})
	_ = cart.AddItem(attar("P1"), 1, "6 ml", 500)
	flow := newTestCheckoutFlow(t, cart, &stubSubmitter{})

	if _, err := flow.StartFromCart(CheckoutDetails{ShippingMethod: ShippingMethodInsideDhaka}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	flow.Discard()
	if _, ok := flow.Current(); ok {
		t.Fatalf("expected no draft after discard")
	}
	flow.Discard() // nothing staged: no-op
}
