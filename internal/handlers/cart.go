package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	domain "github.com/attarhouse/storefront/internal/domain"
	"github.com/attarhouse/storefront/internal/platform/httpx"
	"github.com/attarhouse/storefront/internal/services"
)

const maxCartBodySize = 16 * 1024

// CartHandlers exposes the cart store over HTTP. Handlers translate requests
// into store operations and hold no business rules of their own.
type CartHandlers struct {
	cart     *services.CartStore
	currency string
}

// NewCartHandlers constructs handlers over the given store.
func NewCartHandlers(cart *services.CartStore, currency string) *CartHandlers {
	return &CartHandlers{cart: cart, currency: currency}
}

// Routes wires the /cart endpoints onto the provided router.
func (h *CartHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.getCart)
	r.Delete("/", h.clearCart)
	r.Post("/items", h.addItem)
	r.Put("/items/quantity", h.setQuantity)
	r.Post("/items/increment", h.incrementItem)
	r.Post("/items/decrement", h.decrementItem)
	r.Delete("/items", h.removeItem)
}

type cartItemView struct {
	domain.LineItem
	LineTotal int64 `json:"lineTotal"`
}

type cartResponse struct {
	Items           []cartItemView `json:"items"`
	Subtotal        int64          `json:"subtotal"`
	SubtotalDisplay string         `json:"subtotalDisplay"`
	ItemsCount      int            `json:"itemsCount"`
	Currency        string         `json:"currency"`
}

type addItemRequest struct {
	ProductID  string `json:"productId"`
	Name       string `json:"name"`
	ImageURL   string `json:"image"`
	Category   string `json:"category"`
	VariantKey string `json:"variantKey"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unitPrice"`
}

type lineRequest struct {
	ProductID  string `json:"productId"`
	VariantKey string `json:"variantKey"`
	Quantity   int    `json:"quantity"`
}

func (h *CartHandlers) getCart(w http.ResponseWriter, _ *http.Request) {
	h.writeCart(w)
}

func (h *CartHandlers) addItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addItemRequest
	if !decodeBody(ctx, w, r, maxCartBodySize, &req) {
		return
	}

	product := domain.Product{
		ID:       req.ProductID,
		Name:     req.Name,
		ImageURL: req.ImageURL,
		Category: req.Category,
		Price:    req.UnitPrice,
	}
	if err := h.cart.AddItem(product, req.Quantity, req.VariantKey, req.UnitPrice); err != nil {
		writeStoreError(ctx, w, err)
		return
	}
	h.writeCart(w)
}

func (h *CartHandlers) setQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req lineRequest
	if !decodeBody(ctx, w, r, maxCartBodySize, &req) {
		return
	}
	h.cart.SetQuantity(req.ProductID, req.VariantKey, req.Quantity)
	h.writeCart(w)
}

func (h *CartHandlers) incrementItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req lineRequest
	if !decodeBody(ctx, w, r, maxCartBodySize, &req) {
		return
	}
	h.cart.IncrementQuantity(req.ProductID, req.VariantKey)
	h.writeCart(w)
}

func (h *CartHandlers) decrementItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req lineRequest
	if !decodeBody(ctx, w, r, maxCartBodySize, &req) {
		return
	}
	h.cart.DecrementQuantity(req.ProductID, req.VariantKey)
	h.writeCart(w)
}

func (h *CartHandlers) removeItem(w http.ResponseWriter, r *http.Request) {
	productID := strings.TrimSpace(r.URL.Query().Get("productId"))
	variantKey := strings.TrimSpace(r.URL.Query().Get("variantKey"))
	if productID == "" {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", "productId is required", http.StatusBadRequest))
		return
	}
	h.cart.RemoveItem(productID, variantKey)
	h.writeCart(w)
}

func (h *CartHandlers) clearCart(w http.ResponseWriter, _ *http.Request) {
	h.cart.Clear()
	h.writeCart(w)
}

func (h *CartHandlers) writeCart(w http.ResponseWriter) {
	items := h.cart.Items()
	views := make([]cartItemView, len(items))
	for i, item := range items {
		views[i] = cartItemView{LineItem: item, LineTotal: item.LineTotal()}
	}

	subtotal := h.cart.Subtotal()
	httpx.WriteJSON(w, http.StatusOK, cartResponse{
		Items:           views,
		Subtotal:        subtotal,
		SubtotalDisplay: domain.FormatAmount(subtotal, h.currency),
		ItemsCount:      h.cart.ItemsCount(),
		Currency:        h.currency,
	})
}

// decodeBody reads a size-capped JSON body, writing an error response and
// returning false when decoding fails.
func decodeBody(ctx context.Context, w http.ResponseWriter, r *http.Request, limit int64, target any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body is malformed", http.StatusBadRequest))
		return false
	}
	return true
}

// writeStoreError maps store and checkout errors onto the JSON error envelope.
func writeStoreError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCartInvalidInput),
		errors.Is(err, services.ErrWishlistInvalidInput),
		errors.Is(err, services.ErrCheckoutInvalidInput),
		errors.Is(err, services.ErrUnknownShippingMethod):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrCheckoutEmptyCart):
		httpx.WriteError(ctx, w, httpx.NewError("empty_cart", "cart has no items to check out", http.StatusConflict))
	case errors.Is(err, services.ErrCheckoutNoDraft):
		httpx.WriteError(ctx, w, httpx.NewError("no_draft", "no checkout draft is staged", http.StatusNotFound))
	case errors.Is(err, services.ErrCheckoutSubmission):
		httpx.WriteError(ctx, w, httpx.NewError("order_submission_failed", "order submission failed, cart preserved for retry", http.StatusBadGateway))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("internal_error", "unexpected error", http.StatusInternalServerError))
	}
}
