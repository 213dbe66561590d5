package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	domain "github.com/attarhouse/storefront/internal/domain"
	"github.com/attarhouse/storefront/internal/services"
	"github.com/attarhouse/storefront/internal/storage"
)

func newWishlistFixture(t *testing.T) http.Handler {
	t.Helper()
	slot, err := storage.NewSlot[domain.WishlistItem](storage.NewMemoryStore(), "wishlist-items", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wishlist, err := services.NewWishlistStore(services.WishlistStoreDeps{
		Slot:  slot,
		Clock: func() time.Time { return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	router := chi.NewRouter()
	router.Route("/wishlist", NewWishlistHandlers(wishlist).Routes)
	return router
}

type wishlistBody struct {
	Items []domain.WishlistItem `json:"items"`
	Count int                   `json:"count"`
}

func decodeWishlist(t *testing.T, rec *httptest.ResponseRecorder) wishlistBody {
	t.Helper()
	var body wishlistBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestWishlistHandlersToggleAndRemove(t *testing.T) {
	router := newWishlistFixture(t)
	payload := `{"productId":"P1","name":"Rose Attar","unitPrice":500}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/wishlist/toggle", strings.NewReader(payload)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body := decodeWishlist(t, rec); body.Count != 1 {
		t.Fatalf("expected 1 item after toggle on, got %d", body.Count)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/wishlist/toggle", strings.NewReader(payload)))
	if body := decodeWishlist(t, rec); body.Count != 0 {
		t.Fatalf("expected empty list after toggle off, got %d", body.Count)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/wishlist/items", strings.NewReader(payload)))
	if body := decodeWishlist(t, rec); body.Count != 1 {
		t.Fatalf("expected 1 item after add, got %d", body.Count)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/wishlist/items/P1", nil))
	if body := decodeWishlist(t, rec); body.Count != 0 {
		t.Fatalf("expected empty list after remove, got %d", body.Count)
	}
}

func TestWishlistHandlersGetEmptyListIsArray(t *testing.T) {
	router := newWishlistFixture(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wishlist", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/wishlist/items", strings.NewReader(`{"productId":"  "}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank product id, got %d", rec.Code)
	}
}
