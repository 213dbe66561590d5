package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	domain "github.com/attarhouse/storefront/internal/domain"
)

func testDraft() domain.OrderDraft {
	return domain.OrderDraft{
		ID:       "draft-1",
		Source:   domain.DraftSourceCart,
		Status:   domain.DraftStatusDrafted,
		Currency: "BDT",
		Items: []domain.LineItem{
			{ProductID: "P1", VariantKey: "6 ml", Quantity: 2, UnitPrice: 500},
		},
		Subtotal:     1000,
		ShippingCost: 6000,
		Total:        7000,
	}
}

func TestClientSubmitOrder(t *testing.T) {
	var received domain.OrderDraft
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orderId":"ORD-42"}`))
	}))
	defer server.Close()

	client, err := NewClient(ClientDeps{Endpoint: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orderID, err := client.SubmitOrder(context.Background(), testDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID != "ORD-42" {
		t.Fatalf("expected ORD-42, got %q", orderID)
	}
	if received.ID != "draft-1" || received.Total != 7000 {
		t.Fatalf("unexpected payload received: %+v", received)
	}
}

func TestClientSubmitOrderRejectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client, err := NewClient(ClientDeps{Endpoint: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.SubmitOrder(context.Background(), testDraft()); err == nil {
		t.Fatalf("expected error for non-2xx status")
	}
}

func TestClientSubmitOrderMissingOrderID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := NewClient(ClientDeps{Endpoint: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.SubmitOrder(context.Background(), testDraft()); err == nil {
		t.Fatalf("expected error for missing order id")
	}
}

func TestNewClientRequiresEndpoint(t *testing.T) {
	if _, err := NewClient(ClientDeps{Endpoint: "  "}); err == nil {
		t.Fatalf("expected error for blank endpoint")
	}
}
