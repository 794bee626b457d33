package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-demo/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-demo/internal/catalog"
	service "github.com/aaravmahajanofficial/storefront-demo/internal/services"
	"github.com/aaravmahajanofficial/storefront-demo/internal/utils/response"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	defaults       catalog.Defaults
}

func NewCatalogHandler(catalogService service.CatalogService, defaults catalog.Defaults) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, defaults: defaults}
}

// ListProducts answers GET /products?search=&category=&brand=&rating=&discount=&min_price=&max_price=&include_out_of_stock=&sort=&page=
func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		spec := catalog.ParseFilterSpec(r.URL.Query(), h.defaults)

		result, err := h.catalogService.ListProducts(r.Context(), spec)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

func (h *CatalogHandler) Facets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		facets, err := h.catalogService.Facets(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to build facets", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, facets)
	}
}

func (h *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		id, ok := productID(w, r)
		if !ok {
			return
		}

		detail, err := h.catalogService.GetProduct(r.Context(), sid, id)
		if err != nil {
			logger.Warn("Failed to get product", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, detail)
	}
}
