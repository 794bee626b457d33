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

type WishlistHandler struct {
	wishlistService service.WishlistService
	validator       *validator.Validate
}

func NewWishlistHandler(wishlistService service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService, validator: validator.New()}
}

func (h *WishlistHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		list, err := h.wishlistService.List(r.Context(), sid)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to get wishlist", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, list)
	}
}

func (h *WishlistHandler) Add() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.AddToWishlistRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid wishlist input")
			return
		}

		list, err := h.wishlistService.Add(r.Context(), sid, req.ProductID)
		if err != nil {
			logger.Warn("Failed to add to wishlist", slog.Int64("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, list)
	}
}

func (h *WishlistHandler) Remove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		id, ok := productID(w, r)
		if !ok {
			return
		}

		list, err := h.wishlistService.Remove(r.Context(), sid, id)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to remove from wishlist", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, list)
	}
}

// MoveToCart moves one wishlist entry into the cart and answers with the cart.
func (h *WishlistHandler) MoveToCart() http.HandlerFunc {
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

		cart, err := h.wishlistService.MoveToCart(r.Context(), sid, id)
		if err != nil {
			logger.Warn("Failed to move wishlist item to cart", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Wishlist item moved to cart", slog.Int64("productId", id))
		response.Success(w, http.StatusOK, cart)
	}
}
