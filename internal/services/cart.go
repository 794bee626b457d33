package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront-demo/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-demo/internal/catalog"
	"github.com/aaravmahajanofficial/storefront-demo/internal/errors"
	"github.com/aaravmahajanofficial/storefront-demo/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
	"github.com/aaravmahajanofficial/storefront-demo/internal/session"
)

type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*models.Cart, error)
	AddItem(ctx context.Context, sessionID string, productID int64) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, sessionID string, productID int64) (*models.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
}

type cartService struct {
	catalog  *catalog.Catalog
	sessions *session.Manager
}

func NewCartService(c *catalog.Catalog, sessions *session.Manager) CartService {
	return &cartService{catalog: c, sessions: sessions}
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	var cart models.Cart

	err := s.sessions.View(ctx, sessionID, func(st *session.Store) error {
		cart = st.Cart()
		return nil
	})
	if err != nil {
		return nil, sessionError(err)
	}

	return &cart, nil
}

func (s *cartService) AddItem(ctx context.Context, sessionID string, productID int64) (*models.Cart, error) {
	p, err := lookupProduct(s.catalog, productID)
	if err != nil {
		return nil, err
	}

	if !p.InStock() {
		return nil, errors.OutOfStockError("Product is out of stock")
	}

	var cart models.Cart
	err = s.sessions.Update(ctx, sessionID, func(st *session.Store) error {
		qty := st.AddToCart(p)
		middleware.LoggerFromContext(ctx).Info("Added to cart",
			slog.Int64("product_id", productID),
			slog.Int("quantity", qty),
		)
		cart = st.Cart()
		return nil
	})
	if err != nil {
		return nil, sessionError(err)
	}

	metrics.RecordCartOperation("add")
	return &cart, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*models.Cart, error) {
	var cart models.Cart

	err := s.sessions.Update(ctx, sessionID, func(st *session.Store) error {
		if !st.UpdateQuantity(productID, quantity) {
			return errors.NotFoundError("Item not found in cart")
		}
		cart = st.Cart()
		return nil
	})
	if err != nil {
		return nil, sessionError(err)
	}

	metrics.RecordCartOperation("update_quantity")
	return &cart, nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID string, productID int64) (*models.Cart, error) {
	var cart models.Cart

	err := s.sessions.Update(ctx, sessionID, func(st *session.Store) error {
		st.RemoveFromCart(productID)
		cart = st.Cart()
		return nil
	})
	if err != nil {
		return nil, sessionError(err)
	}

	metrics.RecordCartOperation("remove")
	return &cart, nil
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) error {
	err := s.sessions.Update(ctx, sessionID, func(st *session.Store) error {
		st.ClearCart()
		return nil
	})
	if err != nil {
		return sessionError(err)
	}

	metrics.RecordCartOperation("clear")
	return nil
}
