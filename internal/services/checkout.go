package service

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront-demo/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-demo/internal/errors"
	"github.com/aaravmahajanofficial/storefront-demo/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
	"github.com/aaravmahajanofficial/storefront-demo/internal/session"
	"github.com/google/uuid"
)

// OrderReward is the loyalty reward shown on every confirmation.
const OrderReward = "12 SuperCoins"

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)

type CheckoutService interface {
	GetState(ctx context.Context, sessionID string) (*models.CheckoutView, error)
	SubmitShipping(ctx context.Context, sessionID string, details *models.ShippingDetails) (*models.CheckoutView, error)
	SubmitPayment(ctx context.Context, sessionID string, details *models.PaymentDetails) (*models.CheckoutView, error)
	PlaceOrder(ctx context.Context, sessionID string) (*models.OrderConfirmation, error)
}

type checkoutService struct {
	sessions *session.Manager
	now      func() time.Time
}

func NewCheckoutService(sessions *session.Manager) CheckoutService {
	return &checkoutService{sessions: sessions, now: time.Now}
}

func checkoutView(st *session.Store) *models.CheckoutView {
	return &models.CheckoutView{
		State:   st.Checkout(),
		Cart:    st.Cart(),
		Options: models.PaymentOptions,
	}
}

func (s *checkoutService) GetState(ctx context.Context, sessionID string) (*models.CheckoutView, error) {
	var view *models.CheckoutView

	err := s.sessions.View(ctx, sessionID, func(st *session.Store) error {
		view = checkoutView(st)
		return nil
	})

	return view, sessionError(err)
}

// SubmitShipping records step 1. It may be resubmitted from any step, which
// sends the shopper back to the payment step.
func (s *checkoutService) SubmitShipping(ctx context.Context, sessionID string, details *models.ShippingDetails) (*models.CheckoutView, error) {
	var view *models.CheckoutView

	err := s.sessions.Update(ctx, sessionID, func(st *session.Store) error {
		if st.Cart().Empty() {
			return errors.BadRequestError("Your cart is empty")
		}

		shipping := *details
		st.SetCheckout(models.CheckoutState{Step: models.StepPayment, Shipping: &shipping})
		view = checkoutView(st)
		return nil
	})
	if err != nil {
		return nil, sessionError(err)
	}

	return view, nil
}

func (s *checkoutService) SubmitPayment(ctx context.Context, sessionID string, details *models.PaymentDetails) (*models.CheckoutView, error) {
	if err := validatePayment(details); err != nil {
		return nil, err
	}

	var view *models.CheckoutView
	err := s.sessions.Update(ctx, sessionID, func(st *session.Store) error {
		state := st.Checkout()
		if state.Shipping == nil || state.Step < models.StepPayment {
			return errors.CheckoutStepError("Shipping details are required before payment")
		}

		payment := details.Masked()
		state.Payment = &payment
		state.Step = models.StepReview
		st.SetCheckout(state)
		view = checkoutView(st)
		return nil
	})
	if err != nil {
		return nil, sessionError(err)
	}

	return view, nil
}

func validatePayment(p *models.PaymentDetails) error {
	switch p.Method {
	case models.PaymentCard:
		if strings.TrimSpace(p.CardNumber) == "" {
			return errors.AddValidationError("card_number", "is required for card payments")
		}
		if !expiryPattern.MatchString(p.ExpiryDate) {
			return errors.AddValidationError("expiry_date", "must be in MM/YY format")
		}
		if strings.TrimSpace(p.CVV) == "" {
			return errors.AddValidationError("cvv", "is required for card payments")
		}
	case models.PaymentUPI:
		if strings.TrimSpace(p.UPIID) == "" {
			return errors.AddValidationError("upi_id", "is required for UPI payments")
		}
	case models.PaymentNetBanking, models.PaymentCOD:
	default:
		return errors.AddValidationError("method", "unsupported payment method")
	}

	return nil
}

// PlaceOrder simulates a successful payment, clears the cart and resets the
// checkout flow.
func (s *checkoutService) PlaceOrder(ctx context.Context, sessionID string) (*models.OrderConfirmation, error) {
	var confirmation *models.OrderConfirmation

	err := s.sessions.Update(ctx, sessionID, func(st *session.Store) error {
		state := st.Checkout()
		if state.Step != models.StepReview || state.Shipping == nil || state.Payment == nil {
			return errors.CheckoutStepError("Complete shipping and payment before placing the order")
		}

		cart := st.Cart()
		if cart.Empty() {
			return errors.BadRequestError("Your cart is empty")
		}

		confirmation = &models.OrderConfirmation{
			OrderID:       uuid.New(),
			Lines:         cart.Lines,
			ItemCount:     cart.ItemCount,
			Total:         cart.Subtotal,
			PaymentMethod: state.Payment.Method,
			Shipping:      *state.Shipping,
			Reward:        OrderReward,
			PlacedAt:      s.now().UTC(),
		}

		st.ClearCart()
		st.ResetCheckout()
		return nil
	})
	if err != nil {
		return nil, sessionError(err)
	}

	metrics.RecordOrder(string(confirmation.PaymentMethod))
	middleware.LoggerFromContext(ctx).Info("Order placed",
		slog.String("order_id", confirmation.OrderID.String()),
		slog.Int64("total", confirmation.Total),
		slog.String("payment_method", string(confirmation.PaymentMethod)),
	)

	return confirmation, nil
}
