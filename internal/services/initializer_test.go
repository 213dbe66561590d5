package services

import "testing"

type stubHydrator struct {
	calls int
}

func (s *stubHydrator) Hydrate() { s.calls++ }

func TestInitializerRunsOnce(t *testing.T) {
	cart := &stubHydrator{}
	wishlist := &stubHydrator{}
	init, err := NewInitializer(InitializerDeps{Cart: cart, Wishlist: wishlist})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if init.Hydrated() {
		t.Fatalf("expected not hydrated before Initialize")
	}

	init.Initialize()
	init.Initialize()

	if cart.calls != 1 {
		t.Fatalf("expected cart hydrated exactly once, got %d", cart.calls)
	}
	if wishlist.calls != 1 {
		t.Fatalf("expected wishlist hydrated exactly once, got %d", wishlist.calls)
	}
	if !init.Hydrated() {
		t.Fatalf("expected hydrated flag set")
	}
}

func TestInitializerRequiresStores(t *testing.T) {
	if _, err := NewInitializer(InitializerDeps{Wishlist: &stubHydrator{}}); err == nil {
		t.Fatalf("expected error for missing cart")
	}
	if _, err := NewInitializer(InitializerDeps{Cart: &stubHydrator{}}); err == nil {
		t.Fatalf("expected error for missing wishlist")
	}
}
