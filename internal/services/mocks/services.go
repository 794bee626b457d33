// Package mocks holds testify mocks of the service interfaces used by the
// HTTP handlers.
package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
	"github.com/aaravmahajanofficial/storefront-demo/internal/photos"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) ListProducts(ctx context.Context, spec models.FilterSpec) (*models.PaginatedResponse, error) {
	args := m.Called(ctx, spec)
	if res, ok := args.Get(0).(*models.PaginatedResponse); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogService) GetProduct(ctx context.Context, sessionID string, id int64) (*models.ProductDetail, error) {
	args := m.Called(ctx, sessionID, id)
	if detail, ok := args.Get(0).(*models.ProductDetail); ok {
		return detail, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogService) Facets(ctx context.Context) (*models.Facets, error) {
	args := m.Called(ctx)
	if facets, ok := args.Get(0).(*models.Facets); ok {
		return facets, args.Error(1)
	}
	return nil, args.Error(1)
}

type CartService struct {
	mock.Mock
}

func (m *CartService) cart(args mock.Arguments) (*models.Cart, error) {
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CartService) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	return m.cart(m.Called(ctx, sessionID))
}

func (m *CartService) AddItem(ctx context.Context, sessionID string, productID int64) (*models.Cart, error) {
	return m.cart(m.Called(ctx, sessionID, productID))
}

func (m *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*models.Cart, error) {
	return m.cart(m.Called(ctx, sessionID, productID, quantity))
}

func (m *CartService) RemoveItem(ctx context.Context, sessionID string, productID int64) (*models.Cart, error) {
	return m.cart(m.Called(ctx, sessionID, productID))
}

func (m *CartService) ClearCart(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type WishlistService struct {
	mock.Mock
}

func (m *WishlistService) wishlist(args mock.Arguments) (*models.Wishlist, error) {
	if list, ok := args.Get(0).(*models.Wishlist); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WishlistService) List(ctx context.Context, sessionID string) (*models.Wishlist, error) {
	return m.wishlist(m.Called(ctx, sessionID))
}

func (m *WishlistService) Add(ctx context.Context, sessionID string, productID int64) (*models.Wishlist, error) {
	return m.wishlist(m.Called(ctx, sessionID, productID))
}

func (m *WishlistService) Remove(ctx context.Context, sessionID string, productID int64) (*models.Wishlist, error) {
	return m.wishlist(m.Called(ctx, sessionID, productID))
}

func (m *WishlistService) Contains(ctx context.Context, sessionID string, productID int64) (bool, error) {
	args := m.Called(ctx, sessionID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *WishlistService) MoveToCart(ctx context.Context, sessionID string, productID int64) (*models.Cart, error) {
	args := m.Called(ctx, sessionID, productID)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}
	return nil, args.Error(1)
}

type ReviewService struct {
	mock.Mock
}

func (m *ReviewService) Create(ctx context.Context, sessionID string, productID int64, req *models.CreateReviewRequest, files []photos.Upload) (*models.Review, error) {
	args := m.Called(ctx, sessionID, productID, req, files)
	if review, ok := args.Get(0).(*models.Review); ok {
		return review, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReviewService) List(ctx context.Context, sessionID string, productID int64, opts models.ReviewListOptions) (*models.ReviewList, error) {
	args := m.Called(ctx, sessionID, productID, opts)
	if list, ok := args.Get(0).(*models.ReviewList); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReviewService) Summary(ctx context.Context, sessionID string, productID int64) (*models.RatingSummary, error) {
	args := m.Called(ctx, sessionID, productID)
	if summary, ok := args.Get(0).(*models.RatingSummary); ok {
		return summary, args.Error(1)
	}
	return nil, args.Error(1)
}

type CheckoutService struct {
	mock.Mock
}

func (m *CheckoutService) view(args mock.Arguments) (*models.CheckoutView, error) {
	if view, ok := args.Get(0).(*models.CheckoutView); ok {
		return view, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CheckoutService) GetState(ctx context.Context, sessionID string) (*models.CheckoutView, error) {
	return m.view(m.Called(ctx, sessionID))
}

func (m *CheckoutService) SubmitShipping(ctx context.Context, sessionID string, details *models.ShippingDetails) (*models.CheckoutView, error) {
	return m.view(m.Called(ctx, sessionID, details))
}

func (m *CheckoutService) SubmitPayment(ctx context.Context, sessionID string, details *models.PaymentDetails) (*models.CheckoutView, error) {
	return m.view(m.Called(ctx, sessionID, details))
}

func (m *CheckoutService) PlaceOrder(ctx context.Context, sessionID string) (*models.OrderConfirmation, error) {
	args := m.Called(ctx, sessionID)
	if confirmation, ok := args.Get(0).(*models.OrderConfirmation); ok {
		return confirmation, args.Error(1)
	}
	return nil, args.Error(1)
}

type AuthService struct {
	mock.Mock
}

func (m *AuthService) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if res, ok := args.Get(0).(*models.AuthResponse); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AuthService) SignIn(ctx context.Context, req *models.SignInRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if res, ok := args.Get(0).(*models.AuthResponse); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}
