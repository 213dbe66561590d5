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

func newCartFixture(t *testing.T) (*services.CartStore, http.Handler) {
	t.Helper()
	slot, err := storage.NewSlot[domain.LineItem](storage.NewMemoryStore(), "cart-items", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := services.NewCartStore(services.CartStoreDeps{
		Slot:  slot,
		Clock: func() time.Time { return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	router := chi.NewRouter()
	router.Route("/cart", NewCartHandlers(cart, "BDT").Routes)
	return cart, router
}

type cartBody struct {
	Items []struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
		UnitPrice int64  `json:"unitPrice"`
		LineTotal int64  `json:"lineTotal"`
	} `json:"items"`
	Subtotal   int64  `json:"subtotal"`
	ItemsCount int    `json:"itemsCount"`
	Currency   string `json:"currency"`
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartBody {
	t.Helper()
	var body cartBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestCartHandlersAddAndGet(t *testing.T) {
	_, router := newCartFixture(t)

	payload := `{"productId":"P1","name":"Rose Attar","variantKey":"6 ml","quantity":2,"unitPrice":500}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(payload)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeCart(t, rec)
	if len(body.Items) != 1 || body.Items[0].LineTotal != 1000 {
		t.Fatalf("unexpected items: %+v", body.Items)
	}
	if body.Subtotal != 1000 || body.ItemsCount != 2 || body.Currency != "BDT" {
		t.Fatalf("unexpected totals: %+v", body)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeCart(t, rec); body.Subtotal != 1000 {
		t.Fatalf("expected subtotal 1000, got %d", body.Subtotal)
	}
}

func TestCartHandlersRejectMalformedBody(t *testing.T) {
	_, router := newCartFixture(t)

	for _, payload := range []string{`{`, `{"unknownField":true}`} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(payload)))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", payload, rec.Code)
		}
	}
}

func TestCartHandlersAddInvalidProduct(t *testing.T) {
	_, router := newCartFixture(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"productId":"  ","quantity":1,"unitPrice":500}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCartHandlersRemoveItem(t *testing.T) {
	cart, router := newCartFixture(t)
	_ = cart.AddItem(domain.Product{ID: "P1", Name: "Rose Attar"}, 1, "6 ml", 500)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/cart/items?productId=P1&variantKey=6+ml", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeCart(t, rec); len(body.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", body.Items)
	}

	// productId is mandatory.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/cart/items", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCartHandlersQuantityEndpoints(t *testing.T) {
	cart, router := newCartFixture(t)
	_ = cart.AddItem(domain.Product{ID: "P1", Name: "Rose Attar"}, 1, "6 ml", 500)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/cart/items/quantity", strings.NewReader(`{"productId":"P1","variantKey":"6 ml","quantity":4}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeCart(t, rec); body.ItemsCount != 4 {
		t.Fatalf("expected items count 4, got %d", body.ItemsCount)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items/decrement", strings.NewReader(`{"productId":"P1","variantKey":"6 ml"}`)))
	if body := decodeCart(t, rec); body.ItemsCount != 3 {
		t.Fatalf("expected items count 3, got %d", body.ItemsCount)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items/increment", strings.NewReader(`{"productId":"P1","variantKey":"6 ml"}`)))
	if body := decodeCart(t, rec); body.ItemsCount != 4 {
		t.Fatalf("expected items count 4, got %d", body.ItemsCount)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/cart", nil))
	if body := decodeCart(t, rec); body.ItemsCount != 0 {
		t.Fatalf("expected cleared cart, got %d", body.ItemsCount)
	}
}
