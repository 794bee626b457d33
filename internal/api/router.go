// Package api assembles the storefront HTTP surface: routes, session and
// auth middleware, request logging, metrics and tracing.
package api

import (
	"net/http"

	"github.com/aaravmahajanofficial/storefront-demo/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront-demo/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-demo/internal/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Handlers struct {
	Catalog  *handlers.CatalogHandler
	Cart     *handlers.CartHandler
	Wishlist *handlers.WishlistHandler
	Review   *handlers.ReviewHandler
	Checkout *handlers.CheckoutHandler
	Auth     *handlers.AuthHandler
}

type Options struct {
	ServiceName string
	Session     *middleware.Session
	Auth        *middleware.AuthMiddleware
	Health      http.Handler
}

func NewRouter(h *Handlers, opts Options) http.Handler {
	mux := http.NewServeMux()
	session := opts.Session.Handler

	mux.HandleFunc("GET /api/v1/products", h.Catalog.ListProducts())
	mux.HandleFunc("GET /api/v1/products/facets", h.Catalog.Facets())
	mux.Handle("GET /api/v1/products/{id}", session(h.Catalog.GetProduct()))
	mux.Handle("GET /api/v1/products/{id}/reviews", session(h.Review.ListReviews()))
	mux.Handle("GET /api/v1/products/{id}/reviews/summary", session(h.Review.ReviewSummary()))
	mux.Handle("POST /api/v1/products/{id}/reviews", session(h.Review.CreateReview()))

	mux.Handle("GET /api/v1/cart", session(h.Cart.GetCart()))
	mux.Handle("DELETE /api/v1/cart", session(h.Cart.ClearCart()))
	mux.Handle("POST /api/v1/cart/items", session(h.Cart.AddItem()))
	mux.Handle("PUT /api/v1/cart/items/{id}", session(h.Cart.UpdateQuantity()))
	mux.Handle("DELETE /api/v1/cart/items/{id}", session(h.Cart.RemoveItem()))

	mux.Handle("GET /api/v1/wishlist", session(h.Wishlist.List()))
	mux.Handle("POST /api/v1/wishlist", session(h.Wishlist.Add()))
	mux.Handle("DELETE /api/v1/wishlist/{id}", session(h.Wishlist.Remove()))
	mux.Handle("POST /api/v1/wishlist/{id}/move-to-cart", session(h.Wishlist.MoveToCart()))

	mux.Handle("GET /api/v1/checkout", session(h.Checkout.GetState()))
	mux.Handle("POST /api/v1/checkout/shipping", session(h.Checkout.SubmitShipping()))
	mux.Handle("POST /api/v1/checkout/payment", session(h.Checkout.SubmitPayment()))
	mux.Handle("POST /api/v1/checkout/place-order", session(h.Checkout.PlaceOrder()))

	mux.HandleFunc("POST /api/v1/auth/signup", h.Auth.SignUp())
	mux.HandleFunc("POST /api/v1/auth/signin", h.Auth.SignIn())
	mux.HandleFunc("GET /api/v1/auth/me", opts.Auth.Authenticate(h.Auth.Me()))

	mux.Handle("GET /metrics", metrics.Handler())
	if opts.Health != nil {
		mux.Handle("GET /health", opts.Health)
	}

	// Middleware chaining; metrics must wrap the mux to see r.Pattern.
	var handler http.Handler = mux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, opts.ServiceName)

	return handler
}
