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

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

func (h *CheckoutHandler) GetState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		view, err := h.checkoutService.GetState(r.Context(), sid)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to get checkout state", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *CheckoutHandler) SubmitShipping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.ShippingDetails
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid shipping details")
			return
		}

		view, err := h.checkoutService.SubmitShipping(r.Context(), sid, &req)
		if err != nil {
			logger.Warn("Failed to submit shipping details", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *CheckoutHandler) SubmitPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.PaymentDetails
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid payment details")
			return
		}

		view, err := h.checkoutService.SubmitPayment(r.Context(), sid, &req)
		if err != nil {
			logger.Warn("Failed to submit payment details", slog.String("method", string(req.Method)), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

func (h *CheckoutHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		confirmation, err := h.checkoutService.PlaceOrder(r.Context(), sid)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to place order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, confirmation)
	}
}
