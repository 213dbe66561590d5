package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/attarhouse/storefront/internal/platform/observability"
)

// RouterDeps carries the handler groups mounted on the router.
type RouterDeps struct {
	Logger   *zap.Logger
	Cart     *CartHandlers
	Wishlist *WishlistHandlers
	Checkout *CheckoutHandlers
}

// NewRouter assembles the middleware chain and mounts all endpoint groups.
func NewRouter(deps RouterDeps) chi.Router {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.InjectLoggerMiddleware(logger))
	r.Use(observability.TraceMiddleware())
	r.Use(observability.RequestLoggerMiddleware())
	r.Use(observability.RecoveryMiddleware(logger))

	r.Get("/healthz", healthHandler)

	if deps.Cart != nil {
		r.Route("/cart", deps.Cart.Routes)
	}
	if deps.Wishlist != nil {
		r.Route("/wishlist", deps.Wishlist.Routes)
	}
	if deps.Checkout != nil {
		r.Route("/checkout", deps.Checkout.Routes)
	}

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
