package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-demo/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
	service "github.com/aaravmahajanofficial/storefront-demo/internal/services"
	"github.com/aaravmahajanofficial/storefront-demo/internal/utils"
	"github.com/aaravmahajanofficial/storefront-demo/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), sid)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to get cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem adds one unit of the product to the cart.
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), sid, req.ProductID)
		if err != nil {
			logger.Warn("Failed to add item to cart", slog.Int64("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.Int64("productId", req.ProductID))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
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

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart quantity input")
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), sid, id, *req.Quantity)
		if err != nil {
			logger.Warn("Failed to update cart quantity", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		id, ok := productID(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), sid, id)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to remove cart item", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		if err := h.cartService.ClearCart(r.Context(), sid); err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.Cart{Lines: []models.CartLineView{}})
	}
}
