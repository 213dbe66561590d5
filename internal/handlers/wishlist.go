package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	domain "github.com/attarhouse/storefront/internal/domain"
	"github.com/attarhouse/storefront/internal/platform/httpx"
	"github.com/attarhouse/storefront/internal/services"
)

// WishlistHandlers exposes the wishlist store over HTTP.
type WishlistHandlers struct {
	wishlist *services.WishlistStore
}

// NewWishlistHandlers constructs handlers over the given store.
func NewWishlistHandlers(wishlist *services.WishlistStore) *WishlistHandlers {
	return &WishlistHandlers{wishlist: wishlist}
}

// Routes wires the /wishlist endpoints onto the provided router.
func (h *WishlistHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.getWishlist)
	r.Delete("/", h.clearWishlist)
	r.Post("/items", h.addItem)
	r.Post("/toggle", h.toggleItem)
	r.Delete("/items/{productID}", h.removeItem)
}

type wishlistResponse struct {
	Items []domain.WishlistItem `json:"items"`
	Count int                   `json:"count"`
}

type wishlistItemRequest struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	ImageURL  string `json:"image"`
	Category  string `json:"category"`
	UnitPrice int64  `json:"unitPrice"`
}

func (h *WishlistHandlers) getWishlist(w http.ResponseWriter, _ *http.Request) {
	h.writeWishlist(w)
}

func (h *WishlistHandlers) addItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req wishlistItemRequest
	if !decodeBody(ctx, w, r, maxCartBodySize, &req) {
		return
	}
	if err := h.wishlist.Add(h.product(req)); err != nil {
		writeStoreError(ctx, w, err)
		return
	}
	h.writeWishlist(w)
}

func (h *WishlistHandlers) toggleItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req wishlistItemRequest
	if !decodeBody(ctx, w, r, maxCartBodySize, &req) {
		return
	}
	if err := h.wishlist.Toggle(h.product(req)); err != nil {
		writeStoreError(ctx, w, err)
		return
	}
	h.writeWishlist(w)
}

func (h *WishlistHandlers) removeItem(w http.ResponseWriter, r *http.Request) {
	productID := strings.TrimSpace(chi.URLParam(r, "productID"))
	if productID == "" {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", "productID is required", http.StatusBadRequest))
		return
	}
	h.wishlist.Remove(productID)
	h.writeWishlist(w)
}

func (h *WishlistHandlers) clearWishlist(w http.ResponseWriter, _ *http.Request) {
	h.wishlist.Clear()
	h.writeWishlist(w)
}

func (h *WishlistHandlers) product(req wishlistItemRequest) domain.Product {
	return domain.Product{
		ID:       req.ProductID,
		Name:     req.Name,
		ImageURL: req.ImageURL,
		Category: req.Category,
		Price:    req.UnitPrice,
	}
}

func (h *WishlistHandlers) writeWishlist(w http.ResponseWriter) {
	items := h.wishlist.Items()
	if items == nil {
		items = []domain.WishlistItem{}
	}
	httpx.WriteJSON(w, http.StatusOK, wishlistResponse{
		Items: items,
		Count: len(items),
	})
}
