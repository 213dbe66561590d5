package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	domain "github.com/attarhouse/storefront/internal/domain"
	"github.com/attarhouse/storefront/internal/platform/httpx"
	"github.com/attarhouse/storefront/internal/services"
)

const maxCheckoutBodySize = 32 * 1024

// CheckoutHandlers exposes the checkout flow over HTTP.
type CheckoutHandlers struct {
	flow *services.CheckoutFlow
}

// NewCheckoutHandlers constructs handlers over the given flow.
func NewCheckoutHandlers(flow *services.CheckoutFlow) *CheckoutHandlers {
	return &CheckoutHandlers{flow: flow}
}

// Routes wires the /checkout endpoints onto the provided router.
func (h *CheckoutHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/cart", h.startFromCart)
	r.Post("/buy-now", h.startBuyNow)
	r.Get("/draft", h.getDraft)
	r.Delete("/draft", h.discardDraft)
	r.Post("/submit", h.submit)
}

type checkoutRequest struct {
	ShippingMethod  string          `json:"shippingMethod"`
	PaymentMethod   string          `json:"paymentMethod"`
	ShippingAddress *domain.Address `json:"shippingAddress"`
	BillingAddress  *domain.Address `json:"billingAddress"`
}

type buyNowRequest struct {
	ProductID       string          `json:"productId"`
	Name            string          `json:"name"`
	ImageURL        string          `json:"image"`
	Category        string          `json:"category"`
	UnitPrice       int64           `json:"unitPrice"`
	Quantity        int             `json:"quantity"`
	VariantKey      string          `json:"variantKey"`
	ShippingMethod  string          `json:"shippingMethod"`
	PaymentMethod   string          `json:"paymentMethod"`
	ShippingAddress *domain.Address `json:"shippingAddress"`
	BillingAddress  *domain.Address `json:"billingAddress"`
}

type draftResponse struct {
	Draft domain.OrderDraft `json:"draft"`
}

type submitResponse struct {
	OrderID string `json:"orderId"`
}

func (h *CheckoutHandlers) startFromCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req checkoutRequest
	if !decodeBody(ctx, w, r, maxCheckoutBodySize, &req) {
		return
	}

	draft, err := h.flow.StartFromCart(services.CheckoutDetails{
		ShippingMethod:  req.ShippingMethod,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
	})
	if err != nil {
		writeStoreError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, draftResponse{Draft: draft})
}

func (h *CheckoutHandlers) startBuyNow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req buyNowRequest
	if !decodeBody(ctx, w, r, maxCheckoutBodySize, &req) {
		return
	}

	product := domain.Product{
		ID:       req.ProductID,
		Name:     req.Name,
		ImageURL: req.ImageURL,
		Category: req.Category,
		Price:    req.UnitPrice,
	}
	draft, err := h.flow.StartBuyNow(product, req.Quantity, req.VariantKey, services.CheckoutDetails{
		ShippingMethod:  req.ShippingMethod,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
	})
	if err != nil {
		writeStoreError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, draftResponse{Draft: draft})
}

func (h *CheckoutHandlers) getDraft(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.flow.Current()
	if !ok {
		writeStoreError(r.Context(), w, services.ErrCheckoutNoDraft)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, draftResponse{Draft: draft})
}

func (h *CheckoutHandlers) discardDraft(w http.ResponseWriter, _ *http.Request) {
	h.flow.Discard()
	w.WriteHeader(http.StatusNoContent)
}

func (h *CheckoutHandlers) submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := h.flow.Submit(ctx)
	if err != nil {
		writeStoreError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, submitResponse{OrderID: orderID})
}
